package utils

import (
	"strings"

	"github.com/rivo/uniseg"
)

// stepState is based off of rivo/tview's strings.go:stepState struct without
// the styling, tag parsing and line breaking logic. Only cell widths matter
// when slicing table cells.
// https://github.com/rivo/tview/blob/8a0aeb0aa377d2009202dc3111f17f13cd9f22ce/strings.go
type stepState struct {
	unisegState int
	boundaries  int
}

func newStepState() *stepState {
	return &stepState{unisegState: -1}
}

// Width returns the last grapheme cluster's width in cells.
func (s *stepState) Width() int {
	return s.boundaries >> uniseg.ShiftWidth
}

// step returns the next grapheme cluster of str and the remainder.
func step(str string, state *stepState) (cluster, rest string) {
	cluster, rest, state.boundaries, state.unisegState = uniseg.StepString(str, state.unisegState)
	return
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	if isASCII(s) {
		return len(s)
	}
	return uniseg.StringWidth(s)
}

// Wrap hard-wraps s into chunks of at most width cells. Grapheme clusters are
// never split; a cluster wider than width gets a chunk of its own. An empty
// string yields no chunks.
func Wrap(s string, width int) []string {
	if width <= 0 || s == "" {
		return nil
	}

	if isASCII(s) {
		lines := make([]string, 0, (len(s)+width-1)/width)
		for len(s) > width {
			lines = append(lines, s[:width])
			s = s[width:]
		}
		return append(lines, s)
	}

	var (
		lines                        []string
		start, lineLength, lineWidth int
	)
	state := newStepState()
	str := s
	for len(str) > 0 {
		var cluster string
		cluster, str = step(str, state)
		cWidth := state.Width()

		if lineWidth+cWidth > width && lineWidth > 0 {
			lines = append(lines, s[start:start+lineLength])
			start += lineLength
			lineLength, lineWidth = 0, 0
		}

		lineLength += len(cluster)
		lineWidth += cWidth
	}
	if lineLength > 0 {
		lines = append(lines, s[start:start+lineLength])
	}

	return lines
}

// WrapCount returns len(Wrap(s, width)) without building the chunks.
func WrapCount(s string, width int) int {
	if width <= 0 || s == "" {
		return 0
	}

	// No cluster is narrower in bytes than in cells.
	if len(s) <= width {
		return 1
	}
	if isASCII(s) {
		return (len(s) + width - 1) / width
	}

	count, lineWidth := 1, 0
	state := newStepState()
	str := s
	for len(str) > 0 {
		_, str = step(str, state)
		cWidth := state.Width()
		if lineWidth+cWidth > width && lineWidth > 0 {
			count++
			lineWidth = 0
		}
		lineWidth += cWidth
	}

	return count
}

// Chunk returns the n-th chunk of Wrap(s, width), or "" if there is none.
func Chunk(s string, width, n int) string {
	if n < 0 {
		return ""
	}
	if isASCII(s) {
		from := n * width
		if width <= 0 || from >= len(s) {
			return ""
		}
		return s[from:min(from+width, len(s))]
	}

	chunks := Wrap(s, width)
	if n >= len(chunks) {
		return ""
	}
	return chunks[n]
}

// Slice returns the cells [from, to) of s, always exactly to-from cells wide.
// Wide clusters cut by either edge are replaced by spaces and missing cells
// are padded with spaces.
func Slice(s string, from, to int) string {
	if to <= from {
		return ""
	}
	if from < 0 {
		from = 0
	}

	var sb strings.Builder
	sb.Grow(to - from)

	if isASCII(s) {
		if from < len(s) {
			sb.WriteString(s[from:min(to, len(s))])
		}
		for sb.Len() < to-from {
			sb.WriteByte(' ')
		}
		return sb.String()
	}

	written, pos := 0, 0
	state := newStepState()
	str := s
	for len(str) > 0 && pos < to {
		var cluster string
		cluster, str = step(str, state)
		cWidth := state.Width()

		switch {
		case pos >= from && pos+cWidth <= to:
			sb.WriteString(cluster)
			written += cWidth
		case pos+cWidth > from:
			cut := min(pos+cWidth, to) - max(pos, from)
			sb.WriteString(strings.Repeat(" ", cut))
			written += cut
		}
		pos += cWidth
	}
	if written < to-from {
		sb.WriteString(strings.Repeat(" ", to-from-written))
	}

	return sb.String()
}

// PadRight left-justifies s in a field of width cells.
func PadRight(s string, width int) string {
	w := Width(s)
	if w >= width {
		return Slice(s, 0, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// Center centres s in a field of width cells. Odd leftovers go to the right.
func Center(s string, width int) string {
	w := Width(s)
	if w >= width {
		return Slice(s, 0, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

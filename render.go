package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YLivay/tcol/utils"
)

// Screen rows outside the body: the column header on top and the status line
// at the bottom.
const reservedRows = 2

// span is a half-open range of screen cells.
type span struct {
	Start, End int
}

// Frame is one full screen worth of text. Every line is exactly as wide as the
// screen, and Body has exactly as many lines as the body region is high.
type Frame struct {
	Header string
	Body   []string
	Status string

	// Header cells covered by the active column.
	Active []span
}

type Renderer struct {
	session *Session
}

// BodyHeight returns the height of the body region on a screen height rows
// tall.
func BodyHeight(height int) int {
	return max(height-reservedRows, 0)
}

// Render lays out the current view on a width x height screen.
func (r *Renderer) Render(width, height int) Frame {
	width = max(width, 0)
	return Frame{
		Header: r.window(r.header(), width),
		Body:   r.body(width, BodyHeight(height)),
		Status: utils.Slice(r.status(), 0, width),
		Active: r.activeSpans(width),
	}
}

func (r *Renderer) body(width, height int) []string {
	buffer := r.session.buffer
	view := r.session.view
	freeze := r.session.freeze

	lines := make([]string, 0, height)
	emit := func(rec *record, from int) {
		n := view.LinesNeeded(rec)
		for sub := from; sub < n && len(lines) < height; sub++ {
			lines = append(lines, r.window(r.compose(rec, sub), width))
		}
	}

	for i := max(freeze.RowStart, 0); i <= freeze.RowEnd && len(lines) < height; i++ {
		rec, ok := buffer.Record(i)
		if !ok {
			break
		}
		emit(rec, 0)
	}

	for i, sub := view.y, view.ysub; len(lines) < height; i, sub = i+1, 0 {
		rec, ok := buffer.Record(i)
		if !ok {
			break
		}
		emit(rec, sub)
	}

	// Records that haven't been read yet show up blank.
	blank := strings.Repeat(" ", width)
	for len(lines) < height {
		lines = append(lines, blank)
	}
	return lines
}

// compose returns sub-line sub of rec as a full composed line, before
// horizontal scrolling.
func (r *Renderer) compose(rec *record, sub int) string {
	if !rec.data {
		return rec.raw(r.session.cfg.Delimiter())
	}

	columns := r.session.columns
	var sb strings.Builder
	first := true
	for i, field := range rec.fields {
		if !columns.Visible(i) {
			continue
		}
		if !first {
			sb.WriteString(strings.Repeat(" ", ColumnPad))
		}
		first = false

		w := columns.Width(i)
		sb.WriteString(utils.PadRight(utils.Chunk(field, w, sub), w))
	}
	return sb.String()
}

// header numbers every visible column, centred in its width plus padding and
// closed with a bar.
func (r *Renderer) header() string {
	columns := r.session.columns
	var sb strings.Builder
	for i := 0; i < columns.Len(); i++ {
		if !columns.Visible(i) {
			continue
		}
		sb.WriteString(utils.Center(strconv.Itoa(i+1), columns.Width(i)+ColumnPad-1))
		sb.WriteByte('|')
	}
	return sb.String()
}

// window cuts a composed line down to the screen: the frozen cells on the left
// followed by the cells from x onwards.
func (r *Renderer) window(line string, width int) string {
	pinned := min(r.session.view.minX(), width)
	x := r.session.view.x
	return utils.Slice(line, 0, pinned) + utils.Slice(line, x, x+width-pinned)
}

// toScreen maps the composed-line cells [start, end) to the screen cells they
// are drawn on.
func (r *Renderer) toScreen(start, end, width int) []span {
	pinned := min(r.session.view.minX(), width)
	x := r.session.view.x

	var spans []span
	if s, e := max(start, 0), min(end, pinned); s < e {
		spans = append(spans, span{s, e})
	}
	if s, e := max(start, x), min(end, x+width-pinned); s < e {
		spans = append(spans, span{s - x + pinned, e - x + pinned})
	}
	return spans
}

func (r *Renderer) activeSpans(width int) []span {
	col := r.session.view.activeColumn
	columns := r.session.columns
	if col == NoColumn || !columns.Visible(col) {
		return nil
	}

	start := columns.Offset(col)
	return r.toScreen(start, start+columns.Width(col)+ColumnPad, width)
}

func (r *Renderer) status() string {
	buffer := r.session.buffer
	view := r.session.view

	state := "reading"
	if buffer.EOF() {
		state = "EOF"
	}

	active := "none"
	if view.activeColumn != NoColumn {
		active = fmt.Sprintf("%d (width %d)", view.activeColumn+1, r.session.columns.Width(view.activeColumn))
	}

	return fmt.Sprintf(" %d records [%s] | record %d.%d | x %d | column %s",
		buffer.Len(), state, view.y+1, view.ysub+1, view.x, active)
}

package main

import (
	"github.com/YLivay/tcol/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Terminal is the part of a screen the viewer draws on. tcell.Screen
// satisfies it.
type Terminal interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
}

type styles struct {
	body   tcell.Style
	header tcell.Style
	active tcell.Style
	status tcell.Style
}

func defaultStyles() styles {
	return styles{
		body:   tcell.StyleDefault,
		header: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGreen).Bold(true),
		active: tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorRed).Bold(true),
		status: tcell.StyleDefault.Reverse(true),
	}
}

// writeAt draws text from cell (col, row) onwards, one grapheme cluster per
// cell, and returns the column after the last cell drawn.
func writeAt(t Terminal, row, col int, text string, style tcell.Style) int {
	state := -1
	for text != "" {
		var (
			cluster    string
			boundaries int
		)
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		width := boundaries >> uniseg.ShiftWidth
		if width == 0 {
			continue
		}

		runes := []rune(cluster)
		t.SetContent(col, row, runes[0], runes[1:], style)
		col += width
	}
	return col
}

// drawFrame blits a rendered frame: the header on the first row, the body
// under it and the status line on the last row.
func drawFrame(t Terminal, frame Frame, st styles) {
	t.Clear()

	writeAt(t, 0, 0, frame.Header, st.header)
	for _, s := range frame.Active {
		writeAt(t, 0, s.Start, utils.Slice(frame.Header, s.Start, s.End), st.active)
	}

	for i, line := range frame.Body {
		writeAt(t, i+1, 0, line, st.body)
	}

	if _, height := t.Size(); height > len(frame.Body)+1 {
		writeAt(t, height-1, 0, frame.Status, st.status)
	}
}

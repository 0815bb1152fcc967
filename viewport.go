package main

import (
	"context"

	"github.com/YLivay/tcol/log"
	"github.com/YLivay/tcol/utils"
)

// NoColumn is the active column when none is selected.
const NoColumn = -1

// Cells moved by a single horizontal scroll.
const HorizontalStride = 20

// FreezeBounds describes the records and composed-line cells that never scroll
// out of view. RowStart/RowEnd are record indexes and ColStart/ColEnd cell
// offsets, all inclusive. -1 everywhere means nothing is frozen.
type FreezeBounds struct {
	RowStart, RowEnd int
	ColStart, ColEnd int
}

func NoFreeze() FreezeBounds {
	return FreezeBounds{RowStart: -1, RowEnd: -1, ColStart: -1, ColEnd: -1}
}

// Viewport is the scroll state. The top of the scrolling region shows sub-line
// ysub of record y, and the composed lines are shown from cell x onwards.
//
// ysub is always a valid sub-line of record y at the current column widths.
type Viewport struct {
	session *Session

	y            int
	ysub         int
	x            int
	activeColumn int
}

func newViewport(session *Session) *Viewport {
	v := &Viewport{session: session, activeColumn: NoColumn}
	v.y = v.minY()
	v.x = v.minX()
	return v
}

func (v *Viewport) minY() int {
	return max(v.session.freeze.RowEnd+1, 0)
}

func (v *Viewport) minX() int {
	return max(v.session.freeze.ColEnd+1, 0)
}

// LinesNeeded returns how many sub-lines rec takes up on screen: enough for
// its longest visible field to be shown whole at the current widths.
func (v *Viewport) LinesNeeded(rec *record) int {
	if rec == nil || !rec.data || v.session.cfg.HideOverflow {
		return 1
	}

	columns := v.session.columns
	lines := 1
	for i, field := range rec.fields {
		if !columns.Visible(i) {
			continue
		}
		lines = max(lines, utils.WrapCount(field, columns.Width(i)))
	}
	return lines
}

// linesAt returns LinesNeeded for record i, or 1 if it hasn't been read.
func (v *Viewport) linesAt(i int) int {
	rec, _ := v.session.buffer.Record(i)
	return v.LinesNeeded(rec)
}

// MoveVertical scrolls by offset sub-lines. Scrolling down reads another chunk
// when fewer than max(chunk size, offset) records are buffered past the top
// record. Scrolling stops quietly at the first unfrozen record and at the last
// sub-line read so far.
func (v *Viewport) MoveVertical(ctx context.Context, offset int) error {
	if offset == 0 {
		return nil
	}

	buffer := v.session.buffer
	chunk := v.session.cfg.ChunkSize
	if offset > 0 && !buffer.EOF() && buffer.Len()-v.y < max(chunk, offset) {
		if _, err := buffer.Read(ctx, chunk); err != nil {
			v.normalize()
			return err
		}
		v.normalize()
	}

	if buffer.Len() == 0 {
		return nil
	}

	if offset > 0 {
		v.stepDown(offset)
	} else {
		v.stepUp(-offset)
	}
	return nil
}

func (v *Viewport) stepDown(count int) {
	buffer := v.session.buffer
	lines := v.linesAt(v.y)
	for ; count > 0; count-- {
		if v.ysub+1 < lines {
			v.ysub++
			continue
		}

		next, ok := buffer.Record(v.y + 1)
		if !ok {
			// Nothing more to show yet. ysub stays on the last sub-line.
			return
		}
		v.y++
		v.ysub = 0
		lines = v.LinesNeeded(next)
	}
}

func (v *Viewport) stepUp(count int) {
	buffer := v.session.buffer
	minY := v.minY()
	for ; count > 0; count-- {
		if v.ysub > 0 {
			v.ysub--
			continue
		}

		if v.y-1 < minY {
			v.y, v.ysub = minY, 0
			return
		}

		prev, ok := buffer.Record(v.y - 1)
		if !ok {
			return
		}
		v.y--
		v.ysub = v.LinesNeeded(prev) - 1
	}
}

// MoveToEnd reads the rest of the input and scrolls to the last sub-line of the
// last record. If the read is interrupted, it scrolls to the last record read
// and returns the read's error.
func (v *Viewport) MoveToEnd(ctx context.Context) error {
	buffer := v.session.buffer
	_, err := buffer.Read(ctx, -1)

	last := buffer.Len() - 1
	if last < v.minY() {
		v.y, v.ysub = v.minY(), 0
	} else {
		v.y = last
		v.ysub = v.linesAt(last) - 1
	}
	log.Debugf("Moved to end: y=%d ysub=%d", v.y, v.ysub)
	return err
}

// MoveToHead scrolls to the first unfrozen record.
func (v *Viewport) MoveToHead() {
	v.y, v.ysub = v.minY(), 0
}

// MoveHorizontal scrolls by offset cells. It stops at the frozen cells on the
// left and at the last cell of the widest line on the right.
func (v *Viewport) MoveHorizontal(offset int) {
	minX := v.minX()
	if offset < 0 && v.x+offset <= minX {
		v.x = minX
		return
	}

	v.x += offset
	lineWidth := max(v.session.columns.TotalWidth(), v.session.buffer.rawWidth)
	if maxX := max(minX, lineWidth-1); v.x > maxX {
		v.x = maxX
	}
}

// ChangeActiveColumnWidth widens (delta > 0) or narrows (delta < 0) the active
// column. It does nothing when no column is active.
func (v *Viewport) ChangeActiveColumnWidth(delta int) {
	if v.activeColumn == NoColumn || delta == 0 {
		return
	}

	columns := v.session.columns
	if delta > 0 {
		columns.Increase(v.activeColumn, delta)
	} else if !columns.Decrease(v.activeColumn, -delta) {
		log.Debugf("Column %d is already at its minimum width", v.activeColumn+1)
	}
	v.normalize()
}

// SelectNextColumn moves the active column to the next (dir > 0) or previous
// (dir < 0) visible column, wrapping around. With no active column it starts
// from the first or last one.
func (v *Viewport) SelectNextColumn(dir int) {
	columns := v.session.columns
	n := columns.Len()
	if n == 0 {
		return
	}
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}

	col := v.activeColumn
	if col == NoColumn && dir < 0 {
		col = n
	}
	for i := 0; i < n; i++ {
		col = ((col+dir)%n + n) % n
		if columns.Visible(col) {
			v.activeColumn = col
			return
		}
	}
	v.activeColumn = NoColumn
}

func (v *Viewport) ClearActiveColumn() {
	v.activeColumn = NoColumn
}

// HideActiveColumn hides the active column and selects the next visible one.
func (v *Viewport) HideActiveColumn() {
	if v.activeColumn == NoColumn {
		return
	}
	v.session.columns.Hide(v.activeColumn)
	v.SelectNextColumn(1)
	v.normalize()
}

func (v *Viewport) ShowAllColumns() {
	v.session.columns.ShowAll()
	v.normalize()
}

// RevealColumn scrolls horizontally so that as much of the active column as
// possible is inside a window width cells wide.
func (v *Viewport) RevealColumn(width int) {
	if v.activeColumn == NoColumn {
		return
	}

	columns := v.session.columns
	minX := v.minX()
	avail := width - minX
	if avail <= 0 {
		return
	}

	start := columns.Offset(v.activeColumn)
	end := start + columns.Width(v.activeColumn)
	switch {
	case start < v.x:
		v.x = max(start, minX)
	case end > v.x+avail:
		v.x = max(min(start, end-avail), minX)
	}
}

// PageSize returns the number of sub-lines a page scroll moves in a body of
// the given height: what is left once the frozen records are drawn.
func (v *Viewport) PageSize(bodyHeight int) int {
	return max(bodyHeight-v.frozenLines(bodyHeight), 1)
}

// frozenLines returns how many body lines the frozen records take up, at most
// limit.
func (v *Viewport) frozenLines(limit int) int {
	freeze := v.session.freeze
	lines := 0
	for i := max(freeze.RowStart, 0); i <= freeze.RowEnd && lines < limit; i++ {
		rec, ok := v.session.buffer.Record(i)
		if !ok {
			break
		}
		lines += v.LinesNeeded(rec)
	}
	return min(lines, limit)
}

// normalize restores the scroll invariants after widths or visibility changed.
func (v *Viewport) normalize() {
	if minY := v.minY(); v.y < minY {
		v.y, v.ysub = minY, 0
	}
	if lines := v.linesAt(v.y); v.ysub >= lines {
		v.ysub = lines - 1
	}
	if v.ysub < 0 {
		v.ysub = 0
	}
}

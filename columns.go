package main

import "github.com/YLivay/tcol/utils"

const (
	// Interactive narrowing stops at this width.
	MinColumnWidth = 5
	// Blank cells between two columns.
	ColumnPad = 4
)

// ColumnLayout holds the display width and visibility of every column seen so
// far. Columns are indexed densely from 0 and only ever added.
type ColumnLayout struct {
	widths []int
	mask   []bool

	// Cap for widths derived from the data. 0 or less means no cap.
	maxWidth int
}

func NewColumnLayout(maxWidth int) *ColumnLayout {
	return &ColumnLayout{maxWidth: maxWidth}
}

// Len returns the number of columns observed so far.
func (c *ColumnLayout) Len() int {
	return len(c.widths)
}

// Width returns the width of column i, or 0 if it has not been observed.
func (c *ColumnLayout) Width(i int) int {
	if i < 0 || i >= len(c.widths) {
		return 0
	}
	return c.widths[i]
}

func (c *ColumnLayout) Visible(i int) bool {
	return i >= 0 && i < len(c.mask) && c.mask[i]
}

// Observe widens the columns to fit fields. Each column is at least as wide as
// its 1-based number so the header stays legible. The cap only bounds what the
// data asks for, so a column widened by hand is never narrowed here.
func (c *ColumnLayout) Observe(fields []string) {
	for i, field := range fields {
		if i >= len(c.widths) {
			c.widths = append(c.widths, 0)
			c.mask = append(c.mask, true)
		}

		want := max(utils.Width(field), i+1)
		if c.maxWidth > 0 {
			want = min(want, c.maxWidth)
		}
		c.widths[i] = max(c.widths[i], want)
	}
}

// Increase widens column col by delta cells.
func (c *ColumnLayout) Increase(col, delta int) bool {
	if col < 0 || col >= len(c.widths) || delta < 0 {
		return false
	}
	c.widths[col] += delta
	return true
}

// Decrease narrows column col by delta cells. It is a no-op if the column
// would become narrower than MinColumnWidth.
func (c *ColumnLayout) Decrease(col, delta int) bool {
	if col < 0 || col >= len(c.widths) || delta < 0 {
		return false
	}
	if c.widths[col]-delta < MinColumnWidth {
		return false
	}
	c.widths[col] -= delta
	return true
}

func (c *ColumnLayout) Hide(col int) {
	if col >= 0 && col < len(c.mask) {
		c.mask[col] = false
	}
}

func (c *ColumnLayout) ShowAll() {
	for i := range c.mask {
		c.mask[i] = true
	}
}

// Offset returns the cell offset at which column col starts in a composed
// line.
func (c *ColumnLayout) Offset(col int) int {
	offset := 0
	for i := 0; i < col && i < len(c.widths); i++ {
		if c.mask[i] {
			offset += c.widths[i] + ColumnPad
		}
	}
	return offset
}

// TotalWidth returns the width of a composed line holding every visible
// column, including the padding after the last one.
func (c *ColumnLayout) TotalWidth() int {
	return c.Offset(len(c.widths))
}

package main

import "strings"

type record struct {
	// The fields of the record, after collapsing and whitespace splitting for
	// data records, or exactly as read otherwise.
	fields []string

	// False for comment and empty records. These are shown verbatim instead of
	// being laid out in columns.
	data bool
}

// raw returns the fields joined back into a line. Control characters never
// reach the screen, so a tab delimiter is shown as a space.
func (r *record) raw(delimiter rune) string {
	sep := string(delimiter)
	if isControl(delimiter) {
		sep = " "
	}
	return strings.Join(r.fields, sep)
}

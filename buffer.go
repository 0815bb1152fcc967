package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/YLivay/tcol/log"
	"github.com/YLivay/tcol/reader"
	"github.com/YLivay/tcol/utils"
)

// How many records are read between two checks for a cancelled read.
const readCancelCheckInterval = 256

// Buffer holds every record read so far, in input order. Records are only
// ever appended, so an index into the buffer stays valid for the whole session.
type Buffer struct {
	session *Session

	scanner  reader.Scanner
	comments []string

	records []*record
	eof     bool

	// Width of the widest record shown verbatim.
	rawWidth int
}

func newBuffer(session *Session, scanner reader.Scanner) *Buffer {
	return &Buffer{
		session:  session,
		scanner:  scanner,
		comments: session.cfg.Comments(),
	}
}

// Read appends up to n more records from the scanner. A negative n reads
// until the end of the input. Reaching the end sets EOF and makes later calls
// no-ops.
//
// The context is checked while reading, so a long read can be interrupted. In
// that case the records read so far are kept and ctx.Err() is returned.
func (b *Buffer) Read(ctx context.Context, n int) (int, error) {
	if b.eof {
		return 0, nil
	}

	read := 0
	for n < 0 || read < n {
		if read%readCancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				log.Debugf("Read interrupted after %d records", read)
				return read, err
			}
		}

		if !b.scanner.Scan() {
			b.eof = true
			if err := b.scanner.Err(); err != nil {
				return read, fmt.Errorf("failed to read record %d: %w", len(b.records)+1, err)
			}
			log.Debugf("Reached end of input after %d records", len(b.records))
			break
		}

		b.records = append(b.records, b.ingest(b.scanner.Record()))
		read++
	}

	return read, nil
}

func (b *Buffer) ingest(fields []string) *record {
	if !b.isValidRow(fields) {
		rec := &record{fields: sanitize(fields)}
		b.rawWidth = max(b.rawWidth, utils.Width(rec.raw(b.session.cfg.Delimiter())))
		return rec
	}

	if b.session.cfg.CollapseDelimiters {
		fields = dropEmpty(fields)
	}
	if b.session.cfg.Whitespace() {
		fields = splitWhitespace(fields)
	}
	fields = sanitize(fields)

	b.session.columns.Observe(fields)
	return &record{fields: fields, data: true}
}

// isValidRow reports whether fields should be laid out in columns. Empty
// records and comments are not.
func (b *Buffer) isValidRow(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, prefix := range b.comments {
		if strings.HasPrefix(fields[0], prefix) {
			return false
		}
	}
	return true
}

func dropEmpty(fields []string) []string {
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return kept
}

func splitWhitespace(fields []string) []string {
	split := make([]string, 0, len(fields))
	for _, f := range fields {
		for _, sub := range strings.Split(f, " ") {
			if sub != "" {
				split = append(split, sub)
			}
		}
	}
	return split
}

// sanitize replaces control characters, which would corrupt the screen, with
// spaces.
func sanitize(fields []string) []string {
	for i, f := range fields {
		if strings.IndexFunc(f, isControl) >= 0 {
			fields[i] = strings.Map(func(r rune) rune {
				if isControl(r) {
					return ' '
				}
				return r
			}, f)
		}
	}
	return fields
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// Len returns the number of records read so far, comments included.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Record returns the i-th record, or false if it hasn't been read.
func (b *Buffer) Record(i int) (*record, bool) {
	if i < 0 || i >= len(b.records) {
		return nil, false
	}
	return b.records[i], true
}

// EOF reports whether the whole input has been read.
func (b *Buffer) EOF() bool {
	return b.eof
}

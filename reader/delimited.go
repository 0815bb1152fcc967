package reader

import (
	"encoding/csv"
	"errors"
	"io"
)

// DelimitedScanner reads delimiter separated records. Quoted fields are
// resolved by encoding/csv, records may have any number of fields and stray
// quotes inside unquoted fields are kept as-is.
type DelimitedScanner struct {
	r      *csv.Reader
	record []string
	err    error
	done   bool
}

func NewDelimitedScanner(r io.Reader, delimiter rune) *DelimitedScanner {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	return &DelimitedScanner{r: cr}
}

func (s *DelimitedScanner) Scan() bool {
	if s.done {
		return false
	}

	record, err := s.r.Read()
	if err != nil {
		s.done = true
		s.record = nil
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return false
	}

	s.record = record
	return true
}

func (s *DelimitedScanner) Record() []string {
	return s.record
}

func (s *DelimitedScanner) Err() error {
	return s.err
}

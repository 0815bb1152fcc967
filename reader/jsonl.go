package reader

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/YLivay/tcol/log"
	"github.com/itchyny/gojq"
)

// DefaultQuery turns objects into their values (in key order), keeps arrays
// and wraps scalars.
const DefaultQuery = `if type == "object" then [.[]] elif type == "array" then . else [.] end`

const maxLineSize = 16 * 1024 * 1024

// JSONLScanner reads one JSON document per line and projects it into fields
// with a jq query. If the query yields a single array, its elements are the
// fields. Otherwise every value the query yields becomes one field.
//
// Lines starting with one of the comment prefixes, lines that aren't valid
// JSON and lines the query fails on are passed through as a single raw field.
// Blank lines are skipped.
type JSONLScanner struct {
	lines    *bufio.Scanner
	code     *gojq.Code
	comments []string
	record   []string
}

func NewJSONLScanner(r io.Reader, query string, commentPrefixes []string) (*JSONLScanner, error) {
	if query == "" {
		query = DefaultQuery
	}

	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jq query %q: %w", query, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq query %q: %w", query, err)
	}

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lines.Split(bufio.ScanLines)

	return &JSONLScanner{lines: lines, code: code, comments: commentPrefixes}, nil
}

func (s *JSONLScanner) Scan() bool {
	for s.lines.Scan() {
		line := s.lines.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		s.record = s.project(line)
		return true
	}

	s.record = nil
	return false
}

func (s *JSONLScanner) Record() []string {
	return s.record
}

func (s *JSONLScanner) Err() error {
	return s.lines.Err()
}

func (s *JSONLScanner) project(line string) []string {
	for _, prefix := range s.comments {
		if strings.HasPrefix(line, prefix) {
			return []string{line}
		}
	}

	doc, err := decodeLine(line)
	if err != nil {
		log.Debugf("Passing through non-JSON line: %v", err)
		return []string{line}
	}

	var results []any
	iter := s.code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			log.Debugf("jq query failed on line, passing it through: %v", err)
			return []string{line}
		}
		results = append(results, v)
	}

	if len(results) == 1 {
		if arr, ok := results[0].([]any); ok {
			results = arr
		}
	}

	fields := make([]string, len(results))
	for i, v := range results {
		fields[i] = stringify(v)
	}
	return fields
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// decodeLine decodes a line holding exactly one JSON value. Numbers are kept
// as json.Number so gojq sees large integers exactly.
func decodeLine(line string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return doc, nil
}

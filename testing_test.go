package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sliceScanner yields records from memory, optionally failing at the end.
type sliceScanner struct {
	records [][]string
	next    int
	err     error
	scans   int
}

func (s *sliceScanner) Scan() bool {
	s.scans++
	if s.next >= len(s.records) {
		return false
	}
	s.next++
	return true
}

func (s *sliceScanner) Record() []string {
	return append([]string(nil), s.records[s.next-1]...)
}

func (s *sliceScanner) Err() error {
	if s.next >= len(s.records) {
		return s.err
	}
	return nil
}

// tsv splits every line of a tab separated text into a record.
func tsv(lines ...string) [][]string {
	records := make([][]string, len(lines))
	for i, line := range lines {
		records[i] = strings.Split(line, "\t")
	}
	return records
}

func newTestSession(t *testing.T, cfg *Config, records [][]string) (*Session, *sliceScanner) {
	t.Helper()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	require.NoError(t, cfg.Validate())

	scanner := &sliceScanner{records: records}
	return NewSession(cfg, scanner), scanner
}

// newLoadedSession is newTestSession with the whole input already read.
func newLoadedSession(t *testing.T, cfg *Config, records [][]string) *Session {
	t.Helper()

	s, _ := newTestSession(t, cfg, records)
	_, err := s.buffer.Read(context.Background(), -1)
	require.NoError(t, err)
	return s
}

// createTestFile writes contents to a file in a temporary directory and
// returns its path.
func createTestFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}

package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, s Scanner) [][]string {
	t.Helper()

	var records [][]string
	for s.Scan() {
		records = append(records, s.Record())
	}
	require.NoError(t, s.Err())
	return records
}

func TestDelimitedScanner_ReadsTabSeparatedRecords(t *testing.T) {
	s := NewDelimitedScanner(strings.NewReader("a\tbb\tccc\ndddd\te\tf\n"), '\t')

	assert.Equal(t, [][]string{{"a", "bb", "ccc"}, {"dddd", "e", "f"}}, scanAll(t, s))
}

func TestDelimitedScanner_AllowsVaryingFieldCounts(t *testing.T) {
	s := NewDelimitedScanner(strings.NewReader("a,b\nc\nd,e,f"), ',')

	assert.Equal(t, [][]string{{"a", "b"}, {"c"}, {"d", "e", "f"}}, scanAll(t, s))
}

func TestDelimitedScanner_ResolvesQuotes(t *testing.T) {
	s := NewDelimitedScanner(strings.NewReader("\"x,y\",z\nsay \"hi\",ok\n"), ',')

	assert.Equal(t, [][]string{{"x,y", "z"}, {"say \"hi\"", "ok"}}, scanAll(t, s))
}

func TestDelimitedScanner_KeepsEmptyFields(t *testing.T) {
	s := NewDelimitedScanner(strings.NewReader("a  b\n"), ' ')

	assert.Equal(t, [][]string{{"a", "", "b"}}, scanAll(t, s))
}

func TestDelimitedScanner_StaysDoneAfterEOF(t *testing.T) {
	s := NewDelimitedScanner(strings.NewReader("a\n"), '\t')

	assert.True(t, s.Scan())
	assert.False(t, s.Scan())
	assert.False(t, s.Scan())
	assert.Nil(t, s.Record())
	assert.NoError(t, s.Err())
}

func TestDelimitedScanner_ReportsInvalidDelimiter(t *testing.T) {
	s := NewDelimitedScanner(strings.NewReader("a\n"), '"')

	assert.False(t, s.Scan())
	assert.Error(t, s.Err())
}

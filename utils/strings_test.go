package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 0, Width(""))
	assert.Equal(t, 5, Width("hello"))
	assert.Equal(t, 4, Width("日本"))
	assert.Equal(t, 4, Width("café"))
}

func TestWrap_ASCII(t *testing.T) {
	assert.Nil(t, Wrap("", 3))
	assert.Equal(t, []string{"abc"}, Wrap("abc", 3))
	assert.Equal(t, []string{"abc", "def", "g"}, Wrap("abcdefg", 3))
}

func TestWrap_DoesNotSplitWideClusters(t *testing.T) {
	assert.Equal(t, []string{"a", "日", "本"}, Wrap("a日本", 2))
	assert.Equal(t, []string{"日", "本"}, Wrap("日本", 1))
}

func TestWrapCount_MatchesWrap(t *testing.T) {
	for _, s := range []string{"", "a", "abcdefg", "a日本b", "café au lait", "日本語のテキスト"} {
		for width := 1; width <= 6; width++ {
			assert.Equal(t, len(Wrap(s, width)), WrapCount(s, width), "%q width %d", s, width)
		}
	}
}

func TestChunk(t *testing.T) {
	assert.Equal(t, "def", Chunk("abcdefg", 3, 1))
	assert.Equal(t, "g", Chunk("abcdefg", 3, 2))
	assert.Equal(t, "", Chunk("abcdefg", 3, 3))
	assert.Equal(t, "本", Chunk("a日本", 2, 2))
	assert.Equal(t, "", Chunk("a日本", 2, 3))
}

func TestSlice_PadsAndTruncates(t *testing.T) {
	assert.Equal(t, "llo  ", Slice("hello", 2, 7))
	assert.Equal(t, "   ", Slice("hello", 10, 13))
	assert.Equal(t, "", Slice("hello", 3, 3))
}

func TestSlice_ReplacesCutWideClusters(t *testing.T) {
	// "日" spans cells 0-1 and "本" cells 2-3.
	assert.Equal(t, " 本", Slice("日本", 1, 4))
	assert.Equal(t, "日 ", Slice("日本", 0, 3))
	assert.Equal(t, 3, Width(Slice("日本", 1, 4)))
}

func TestPadRightAndCenter(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abc", PadRight("abcdef", 3))
	assert.Equal(t, "  1  ", Center("1", 5))
	assert.Equal(t, " 12  ", Center("12", 5))
}

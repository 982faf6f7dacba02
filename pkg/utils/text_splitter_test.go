package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"hello world"}, SplitText("  hello world ", 100, 10))
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		assert.Empty(t, SplitText("   ", 100, 10))
	})

	t.Run("chunks respect size and cover the text", func(t *testing.T) {
		text := strings.Repeat("mowing edging trimming ", 200)
		chunks := SplitText(text, 300, 50)
		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), 300)
		}
		assert.True(t, strings.HasPrefix(strings.TrimSpace(text), chunks[0]))
		assert.True(t, strings.HasSuffix(strings.TrimSpace(text), chunks[len(chunks)-1]))
	})

	t.Run("cuts on whitespace when available", func(t *testing.T) {
		text := strings.Repeat("abcd ", 100)
		for _, c := range SplitText(text, 42, 0) {
			assert.True(t, strings.HasSuffix(c, "abcd"), c)
		}
	})

	t.Run("oversized overlap is ignored", func(t *testing.T) {
		text := strings.Repeat("x", 250)
		chunks := SplitText(text, 100, 100)
		assert.Len(t, chunks, 3)
	})
}

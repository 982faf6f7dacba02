package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	text := "Mowing prices: weekly mowing is $45, bi-weekly mowing is $55. Edging is extra and the edging fee is $10."

	assert.Equal(t, []string{"mowing", "weekly", "edging"}, ExtractKeywords(text, 3))
	assert.Empty(t, ExtractKeywords("the and for", 5))
}

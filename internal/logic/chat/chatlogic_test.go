package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCutsOnRuneBoundaries(t *testing.T) {
	long := strings.Repeat("老後資金の積立投資", 50)
	got := truncate(long, 200)

	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.Equal(t, 200, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateLeavesShortStringsAlone(t *testing.T) {
	assert.Equal(t, "NISAと貯蓄", truncate("NISAと貯蓄", 200))
	assert.Equal(t, "", truncate("", 200))
}

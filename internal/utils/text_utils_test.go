package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestProcessor() *TextProcessor {
	return NewTextProcessor(zap.NewNop())
}

func TestNormalize_ComposesDecomposedAccents(t *testing.T) {
	tp := newTestProcessor()

	// "reçu" with the cedilla as a combining mark
	decomposed := "reçu de paiement"
	composed := "reçu de paiement"

	assert.Equal(t, composed, tp.Normalize(decomposed))
	assert.Equal(t, composed, tp.Normalize(composed))
}

func TestBoundForScan(t *testing.T) {
	tp := newTestProcessor()

	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "hello", tp.BoundForScan("hello", 100))
	})

	t.Run("zero max disables bounding", func(t *testing.T) {
		assert.Equal(t, "hello", tp.BoundForScan("hello", 0))
	})

	t.Run("cuts at byte limit", func(t *testing.T) {
		out := tp.BoundForScan(strings.Repeat("a", 50), 10)
		assert.Len(t, out, 10)
	})

	t.Run("never splits a multibyte rune", func(t *testing.T) {
		// "é" is two bytes; a cut at byte 3 would land mid-rune
		out := tp.BoundForScan("ééé", 3)
		assert.True(t, utf8.ValidString(out))
		assert.Equal(t, "é", out)
	})
}

func TestTruncateText_MarksTheCut(t *testing.T) {
	tp := newTestProcessor()

	long := strings.Repeat("x", 200)
	out := tp.TruncateText(long, 50)

	assert.True(t, strings.HasPrefix(out, strings.Repeat("x", 50)))
	assert.Contains(t, out, "Content truncated")

	assert.Equal(t, "short", tp.TruncateText("short", 50))
}

func TestSanitizeUTF8_DropsInvalidBytes(t *testing.T) {
	tp := newTestProcessor()

	assert.Equal(t, "bonjour", tp.SanitizeUTF8("bonjour"))

	broken := "bon\xffjour"
	out := tp.SanitizeUTF8(broken)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "bonjour", out)
}

func TestProcessText_TruncatesAndSanitizes(t *testing.T) {
	tp := newTestProcessor()

	out := tp.ProcessText(strings.Repeat("a", 100)+"\xff", 20)
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Content truncated")
}

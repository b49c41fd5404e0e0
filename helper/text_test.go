package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWindow(t *testing.T) {
	text := "0123456789"

	t.Run("Window around a mid-text span", func(t *testing.T) {
		snippet := ContextWindow(text, 4, 2, 2)
		assert.Equal(t, "234567", snippet, "Expected two characters on each side of the span")
	})

	t.Run("Clipped left side extends the window right", func(t *testing.T) {
		snippet := ContextWindow(text, 1, 2, 3)
		assert.Equal(t, "01234567", snippet, "Expected the snippet to span length plus twice the window")
	})

	t.Run("Snippet length is preserved near the text start", func(t *testing.T) {
		long := strings.Repeat("x", 1000)
		snippet := ContextWindow(long, 50, 5, 100)
		assert.Len(t, snippet, 205, "Expected the full budget of 5+2*100 characters")
	})

	t.Run("Window clipped at text end", func(t *testing.T) {
		snippet := ContextWindow(text, 7, 2, 5)
		assert.Equal(t, "23456789", snippet, "Expected window to clip at the end of the text")
	})

	t.Run("Window larger than text returns whole text", func(t *testing.T) {
		snippet := ContextWindow(text, 4, 2, 100)
		assert.Equal(t, text, snippet, "Expected whole text when window exceeds bounds")
	})

	t.Run("Zero window returns the span itself", func(t *testing.T) {
		snippet := ContextWindow(text, 3, 4, 0)
		assert.Equal(t, "3456", snippet, "Expected the bare span for a zero window")
	})

	t.Run("Invalid span returns empty string", func(t *testing.T) {
		assert.Equal(t, "", ContextWindow(text, -1, 2, 5), "Expected empty snippet for a negative start")
		assert.Equal(t, "", ContextWindow(text, 20, 2, 5), "Expected empty snippet for a start past the end")
	})
}

package helper

// ContextWindow returns the snippet of text surrounding the span starting at
// start with the given length, including up to window characters on each side.
// When the left side is clipped at the text start, the unused budget extends
// the snippet to the right, so the snippet always spans length+2*window
// characters unless the text itself ends first.
func ContextWindow(text string, start, length, window int) string {
	if start < 0 || length < 0 || start > len(text) {
		return ""
	}

	ctxStart := start - window
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := ctxStart + length + 2*window
	if ctxEnd > len(text) {
		ctxEnd = len(text)
	}

	return text[ctxStart:ctxEnd]
}

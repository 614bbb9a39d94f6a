package utils

// TruncateMiddle shortens s for display by replacing its middle with
// an ellipsis, keeping the head and tail. The head keeps one more rune
// than the tail when maxLen is even: TruncateMiddle("0123456789", 6)
// is "012...89". Rune-safe.
func TruncateMiddle(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}

	head := (maxLen + 1) / 2
	tail := maxLen - head - 1
	if tail < 0 {
		tail = 0
	}
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}

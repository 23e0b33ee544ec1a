package types

// TruncateChars bounds s to at most n characters. The bound counts
// runes, not bytes, so the cut never lands inside a multibyte sequence.
func TruncateChars(s string, n int) string {
	if n <= 0 {
		return ""
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

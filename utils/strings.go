package utils

// TruncateRunes bounds s to max runes. Slicing by rune keeps the cut off a
// multi-byte character boundary.
func TruncateRunes(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

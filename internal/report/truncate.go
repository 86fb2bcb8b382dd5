package report

const ellipsis = "..."

// Truncate shortens value to at most limit characters. Longer values keep
// their first limit-3 characters followed by "...".
func Truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit < len(ellipsis) {
		if limit < 0 {
			limit = 0
		}
		return string(runes[:limit])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

package sequence

// SplitText returns n progressively longer rune prefixes of text
// prefix[i] holds ceil((i+1)*L/n) runes and the last prefix is always the whole text
func SplitText(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	runes := []rune(text)
	l := len(runes)

	prefixes := make([]string, n)
	for i := 0; i < n; i++ {
		end := ((i+1)*l + n - 1) / n
		prefixes[i] = string(runes[:min(end, l)])
	}
	prefixes[n-1] = text
	return prefixes
}

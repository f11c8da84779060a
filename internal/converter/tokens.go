package converter

// EstimateTokens approximates the LLM token count of text at roughly four
// bytes per token, rounding up so any non-empty text counts at least one.
// Deterministic and monotonically non-decreasing under append.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

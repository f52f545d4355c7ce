package risk

// Severity labels for the score bands of likelihood times impact.
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
	SeverityVeryLow  = "Very Low"
)

// Score multiplies likelihood by impact. Both are constrained to 1..5 at
// the request boundary; anything below zero is treated as zero so the
// derivation never fails on missing input.
func Score(likelihood, impact int) int {
	if likelihood < 0 {
		likelihood = 0
	}
	if impact < 0 {
		impact = 0
	}
	return likelihood * impact
}

// SeverityLabel bands a score into its human-readable severity.
func SeverityLabel(score int) string {
	switch {
	case score >= 20:
		return SeverityCritical
	case score >= 12:
		return SeverityHigh
	case score >= 8:
		return SeverityMedium
	case score >= 4:
		return SeverityLow
	default:
		return SeverityVeryLow
	}
}

package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	for likelihood := 1; likelihood <= 5; likelihood++ {
		for impact := 1; impact <= 5; impact++ {
			assert.Equal(t, likelihood*impact, Score(likelihood, impact))
		}
	}
}

func TestScoreTreatsMissingValuesAsZero(t *testing.T) {
	assert.Equal(t, 0, Score(0, 5))
	assert.Equal(t, 0, Score(5, 0))
	assert.Equal(t, 0, Score(-1, 3))
}

func TestSeverityLabelBoundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{25, SeverityCritical},
		{20, SeverityCritical},
		{19, SeverityHigh},
		{12, SeverityHigh},
		{11, SeverityMedium},
		{8, SeverityMedium},
		{7, SeverityLow},
		{4, SeverityLow},
		{3, SeverityVeryLow},
		{0, SeverityVeryLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SeverityLabel(tt.score), "score %d", tt.score)
	}
}

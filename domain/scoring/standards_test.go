package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndisaudit/domain/audit"
)

func TestStandardFor(t *testing.T) {
	tests := []struct {
		name          string
		indicatorText string
		wantNumber    string
		wantMatch     bool
	}{
		{
			name:          "police check maps to human resource management",
			indicatorText: "Police check records are current for all staff",
			wantNumber:    "17",
			wantMatch:     true,
		},
		{
			name:          "case insensitive match",
			indicatorText: "MEDICATION is stored securely",
			wantNumber:    "27",
			wantMatch:     true,
		},
		{
			name:          "complaints register",
			indicatorText: "A complaints register is maintained and reviewed",
			wantNumber:    "15",
			wantMatch:     true,
		},
		{
			name:          "unrelated text has no standard",
			indicatorText: "completely unrelated text",
			wantMatch:     false,
		},
		{
			name:          "empty text has no standard",
			indicatorText: "",
			wantMatch:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standard, ok := StandardFor(tt.indicatorText)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantNumber, standard.Number)
			}
		})
	}
}

func TestStandardFor_HumanResourceName(t *testing.T) {
	standard, ok := StandardFor("Police check records are current for all staff")
	require.True(t, ok)
	assert.Equal(t, "Human Resource Management", standard.Name)
}

// Ambiguous text resolves to the earliest declared keyword group, not the
// most specific one. Declaration order is part of the classification contract.
func TestStandardFor_FirstDeclaredGroupWins(t *testing.T) {
	// "privacy" (standard 8) is declared before "incident" (standard 16).
	standard, ok := StandardFor("Privacy breaches are handled as incidents")
	require.True(t, ok)
	assert.Equal(t, "8", standard.Number)
}

func TestDivision(t *testing.T) {
	assert.Equal(t, "Provider Governance and Operational Management", Division("17"))
	assert.Equal(t, "Rights and Responsibilities", Division("8"))
	assert.Equal(t, "Support Provision Environment", Division("27"))
	assert.Equal(t, "", Division("99"))
}

func TestAverageByStandard(t *testing.T) {
	responses := []*audit.IndicatorResponse{
		{IndicatorText: "Police check records are current", Rating: audit.RatingConformity},
		{IndicatorText: "Staff training is up to date", Rating: audit.RatingMajorNC},
		{IndicatorText: "Medication charts are reviewed monthly", Rating: audit.RatingBestPractice},
		{IndicatorText: "completely unrelated text", Rating: audit.RatingConformity},
	}

	scores := AverageByStandard(responses)
	require.Len(t, scores, 2)

	// Ordered by standard number: 17 before 27.
	hr := scores[0]
	assert.Equal(t, "17", hr.Standard.Number)
	assert.Equal(t, 2, hr.Responses)
	assert.Equal(t, 1.0, hr.AverageScore) // (2 + 0) / 2

	meds := scores[1]
	assert.Equal(t, "27", meds.Standard.Number)
	assert.Equal(t, 1, meds.Responses)
	assert.Equal(t, 3.0, meds.AverageScore)
	assert.Equal(t, "Support Provision Environment", meds.Division)
}

func TestAverageByStandard_RoundsToOneDecimal(t *testing.T) {
	responses := []*audit.IndicatorResponse{
		{IndicatorText: "Police check records", Rating: audit.RatingConformity},
		{IndicatorText: "Worker screening clearances", Rating: audit.RatingConformity},
		{IndicatorText: "Supervision sessions held", Rating: audit.RatingMinorNC},
	}

	scores := AverageByStandard(responses)
	require.Len(t, scores, 1)
	assert.Equal(t, 1.7, scores[0].AverageScore) // round(5/3, 1dp)
}

func TestAverageByStandard_Empty(t *testing.T) {
	assert.Empty(t, AverageByStandard(nil))
}

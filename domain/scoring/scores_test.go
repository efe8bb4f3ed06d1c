package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"ndisaudit/domain/audit"
)

func responsesWithRatings(ratings ...audit.Rating) []*audit.IndicatorResponse {
	responses := make([]*audit.IndicatorResponse, 0, len(ratings))
	for i, rating := range ratings {
		responses = append(responses, &audit.IndicatorResponse{
			TemplateIndicatorID: int64(i + 1),
			IndicatorText:       "indicator",
			Rating:              rating,
		})
	}
	return responses
}

func TestCalculateScores_Empty(t *testing.T) {
	summary := CalculateScores(nil)

	assert.Equal(t, ScoreSummary{}, summary)
	assert.Equal(t, 0, summary.Percentage)
}

func TestCalculateScores_Counts(t *testing.T) {
	summary := CalculateScores(responsesWithRatings(
		audit.RatingBestPractice,
		audit.RatingConformity,
		audit.RatingConformity,
		audit.RatingMinorNC,
		audit.RatingMajorNC,
	))

	assert.Equal(t, 1, summary.BestPractice)
	assert.Equal(t, 2, summary.Conformity)
	assert.Equal(t, 1, summary.MinorNC)
	assert.Equal(t, 1, summary.MajorNC)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3+4+1, summary.Points)
	assert.Equal(t, 15, summary.MaxPoints)
	assert.Equal(t, 53, summary.Percentage) // round(8/15*100)
}

func TestCalculateScores_AllBestPracticeIsFullScore(t *testing.T) {
	summary := CalculateScores(responsesWithRatings(
		audit.RatingBestPractice, audit.RatingBestPractice, audit.RatingBestPractice,
	))

	assert.Equal(t, 100, summary.Percentage)
	assert.Equal(t, summary.MaxPoints, summary.Points)
}

func TestCalculateScores_AllMajorNCIsZero(t *testing.T) {
	summary := CalculateScores(responsesWithRatings(
		audit.RatingMajorNC, audit.RatingMajorNC, audit.RatingMajorNC, audit.RatingMajorNC,
	))

	assert.Equal(t, 0, summary.Points)
	assert.Equal(t, 0, summary.Percentage)
	assert.Equal(t, 4, summary.Total)
}

func TestCalculateScores_OrderIndependent(t *testing.T) {
	responses := responsesWithRatings(
		audit.RatingBestPractice, audit.RatingConformity, audit.RatingMinorNC,
		audit.RatingMajorNC, audit.RatingConformity, audit.RatingBestPractice,
		audit.RatingMinorNC, audit.RatingConformity,
	)
	expected := CalculateScores(responses)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]*audit.IndicatorResponse, len(responses))
		copy(shuffled, responses)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, expected, CalculateScores(shuffled))
	}
}

func TestCalculateScores_UnknownRatingCountsTowardTotalOnly(t *testing.T) {
	responses := responsesWithRatings(audit.RatingConformity)
	responses = append(responses, &audit.IndicatorResponse{Rating: audit.Rating("UNRATED")})

	summary := CalculateScores(responses)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Points)
	assert.Equal(t, 6, summary.MaxPoints)
	assert.Equal(t, 33, summary.Percentage)
}

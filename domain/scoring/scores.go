// Package scoring aggregates indicator ratings into audit compliance scores
// and maps indicators onto the NDIS Practice Standards.
package scoring

import (
	"math"

	"ndisaudit/domain/audit"
)

// ScoreSummary holds the aggregate conformity counts and weighted score for
// a set of indicator responses.
type ScoreSummary struct {
	BestPractice int `json:"best_practice"`
	Conformity   int `json:"conformity"`
	MinorNC      int `json:"minor_nc"`
	MajorNC      int `json:"major_nc"`
	Total        int `json:"total"`
	Points       int `json:"points"`
	MaxPoints    int `json:"max_points"`
	Percentage   int `json:"percentage"`
}

// CalculateScores buckets responses by rating and computes the weighted
// score. Best practice earns 3 points, conformity 2, minor non-conformity 1
// and major non-conformity 0; the maximum is 3 points per response. The
// result is independent of input order, and an empty input yields a zero
// summary rather than a division by zero.
func CalculateScores(responses []*audit.IndicatorResponse) ScoreSummary {
	var s ScoreSummary

	for _, r := range responses {
		switch r.Rating {
		case audit.RatingBestPractice:
			s.BestPractice++
		case audit.RatingConformity:
			s.Conformity++
		case audit.RatingMinorNC:
			s.MinorNC++
		case audit.RatingMajorNC:
			s.MajorNC++
		}
		s.Total++
	}

	s.Points = s.BestPractice*3 + s.Conformity*2 + s.MinorNC*1
	s.MaxPoints = s.Total * 3

	if s.Total > 0 {
		s.Percentage = int(math.Round(float64(s.Points) / float64(s.MaxPoints) * 100))
	}

	return s
}

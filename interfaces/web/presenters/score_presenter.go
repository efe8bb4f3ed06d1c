// Package presenters transforms domain data into the JSON view models served
// by the handler layer.
package presenters

import (
	"ndisaudit/application"
	"ndisaudit/domain/scoring"
)

// ScoreSummaryView is the overall conformity score for API responses
type ScoreSummaryView struct {
	BestPractice int `json:"best_practice"`
	Conformity   int `json:"conformity"`
	MinorNC      int `json:"minor_nc"`
	MajorNC      int `json:"major_nc"`
	Total        int `json:"total"`
	Points       int `json:"points"`
	MaxPoints    int `json:"max_points"`
	Percentage   int `json:"percentage"`
}

// StandardScoreView is one practice standard's average for API responses
type StandardScoreView struct {
	StandardNumber string  `json:"standard_number"`
	StandardName   string  `json:"standard_name"`
	Division       string  `json:"division"`
	Responses      int     `json:"responses"`
	AverageScore   float64 `json:"average_score"`
}

// AuditScoresView bundles the summary with per-standard averages
type AuditScoresView struct {
	AuditID   int64                `json:"audit_id"`
	Summary   ScoreSummaryView     `json:"summary"`
	Standards []*StandardScoreView `json:"standards"`
}

// ScorePresenter transforms scoring results into view models.
type ScorePresenter struct{}

// NewScorePresenter creates a new score presenter.
func NewScorePresenter() *ScorePresenter {
	return &ScorePresenter{}
}

// FormatAuditScores converts computed scores into the API view.
func (p *ScorePresenter) FormatAuditScores(auditID int64, scores *application.AuditScores) *AuditScoresView {
	standards := make([]*StandardScoreView, 0, len(scores.Standards))
	for _, s := range scores.Standards {
		standards = append(standards, p.formatStandardScore(s))
	}

	return &AuditScoresView{
		AuditID: auditID,
		Summary: ScoreSummaryView{
			BestPractice: scores.Summary.BestPractice,
			Conformity:   scores.Summary.Conformity,
			MinorNC:      scores.Summary.MinorNC,
			MajorNC:      scores.Summary.MajorNC,
			Total:        scores.Summary.Total,
			Points:       scores.Summary.Points,
			MaxPoints:    scores.Summary.MaxPoints,
			Percentage:   scores.Summary.Percentage,
		},
		Standards: standards,
	}
}

func (p *ScorePresenter) formatStandardScore(s *scoring.StandardScore) *StandardScoreView {
	return &StandardScoreView{
		StandardNumber: s.Standard.Number,
		StandardName:   s.Standard.Name,
		Division:       s.Division,
		Responses:      s.Responses,
		AverageScore:   s.AverageScore,
	}
}

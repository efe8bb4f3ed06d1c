package audit

import "time"

// IndicatorResponse is an auditor's rating of a single checklist indicator.
// Each template indicator has at most one response per audit; recording a
// second response replaces the first.
type IndicatorResponse struct {
	ID                  int64
	AuditID             int64
	TemplateIndicatorID int64
	IndicatorText       string
	Rating              Rating
	Comment             string
	ScorePoints         int
	RecordedAt          time.Time
}

// NewIndicatorResponse builds a response with the score points derived from
// the rating.
func NewIndicatorResponse(auditID, templateIndicatorID int64, indicatorText string, rating Rating, comment string) *IndicatorResponse {
	return &IndicatorResponse{
		AuditID:             auditID,
		TemplateIndicatorID: templateIndicatorID,
		IndicatorText:       indicatorText,
		Rating:              rating,
		Comment:             comment,
		ScorePoints:         rating.Points(),
		RecordedAt:          time.Now(),
	}
}

package presenters

import (
	"time"

	"ndisaudit/domain/audit"
)

// AuditView represents an audit engagement for API responses
type AuditView struct {
	ID               int64  `json:"id"`
	CompanyID        int64  `json:"company_id"`
	Title            string `json:"title"`
	AuditType        string `json:"audit_type"`
	AuditPurpose     string `json:"audit_purpose"`
	Methodology      string `json:"methodology"`
	ScopeTimeFrom    string `json:"scope_time_from,omitempty"`
	ScopeTimeTo      string `json:"scope_time_to,omitempty"`
	ScopeLocked      bool   `json:"scope_locked"`
	ExecutiveSummary string `json:"executive_summary,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// IndicatorResponseView represents one recorded rating for API responses
type IndicatorResponseView struct {
	ID                  int64  `json:"id"`
	TemplateIndicatorID int64  `json:"template_indicator_id"`
	IndicatorText       string `json:"indicator_text"`
	Rating              string `json:"rating"`
	RatingLabel         string `json:"rating_label"`
	Comment             string `json:"comment,omitempty"`
	ScorePoints         int    `json:"score_points"`
	RecordedAt          string `json:"recorded_at"`
}

// AuditPresenter transforms audit domain data into view models.
type AuditPresenter struct{}

// NewAuditPresenter creates a new audit presenter.
func NewAuditPresenter() *AuditPresenter {
	return &AuditPresenter{}
}

// FormatAudit converts an audit aggregate to its API view.
func (p *AuditPresenter) FormatAudit(a *audit.Audit) *AuditView {
	if a == nil {
		return nil
	}

	view := &AuditView{
		ID:               a.ID,
		CompanyID:        a.CompanyID,
		Title:            a.Title,
		AuditType:        string(a.AuditType),
		AuditPurpose:     string(a.AuditPurpose),
		Methodology:      string(a.Methodology),
		ScopeLocked:      a.ScopeLocked,
		ExecutiveSummary: a.ExecutiveSummary,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
	}

	if !a.ScopeTimeFrom.IsZero() {
		view.ScopeTimeFrom = a.ScopeTimeFrom.Format("2006-01-02")
	}
	if !a.ScopeTimeTo.IsZero() {
		view.ScopeTimeTo = a.ScopeTimeTo.Format("2006-01-02")
	}

	return view
}

// FormatIndicatorResponse converts one recorded rating to its API view.
func (p *AuditPresenter) FormatIndicatorResponse(r *audit.IndicatorResponse) *IndicatorResponseView {
	if r == nil {
		return nil
	}

	return &IndicatorResponseView{
		ID:                  r.ID,
		TemplateIndicatorID: r.TemplateIndicatorID,
		IndicatorText:       r.IndicatorText,
		Rating:              string(r.Rating),
		RatingLabel:         r.Rating.DisplayName(),
		Comment:             r.Comment,
		ScorePoints:         r.ScorePoints,
		RecordedAt:          r.RecordedAt.Format(time.RFC3339),
	}
}

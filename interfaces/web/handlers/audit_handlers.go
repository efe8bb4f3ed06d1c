package handlers

import (
	"net/http"
	"time"

	"ndisaudit/application"
	"ndisaudit/domain/audit"
	"ndisaudit/interfaces/web/presenters"
	"ndisaudit/logging"
)

// AuditHandlers handles HTTP requests for audit operations.
type AuditHandlers struct {
	auditService   application.AuditService
	auditPresenter *presenters.AuditPresenter
	scorePresenter *presenters.ScorePresenter
	logger         *logging.Logger
}

// NewAuditHandlers creates a new audit handlers instance.
func NewAuditHandlers(
	auditService application.AuditService,
	auditPresenter *presenters.AuditPresenter,
	scorePresenter *presenters.ScorePresenter,
) *AuditHandlers {
	return &AuditHandlers{
		auditService:   auditService,
		auditPresenter: auditPresenter,
		scorePresenter: scorePresenter,
		logger:         logging.Default().WithComponent("audit_handler"),
	}
}

// createAuditRequest is the POST /audits body
type createAuditRequest struct {
	CompanyID     int64  `json:"company_id"`
	Title         string `json:"title"`
	AuditType     string `json:"audit_type"`
	AuditPurpose  string `json:"audit_purpose"`
	Methodology   string `json:"methodology"`
	ScopeTimeFrom string `json:"scope_time_from,omitempty"`
	ScopeTimeTo   string `json:"scope_time_to,omitempty"`
}

// CreateAudit creates a new audit engagement.
// POST /audits
func (h *AuditHandlers) CreateAudit(w http.ResponseWriter, r *http.Request) {
	var req createAuditRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" || req.CompanyID <= 0 {
		writeBadRequest(w, "company_id and title are required")
		return
	}

	a := &audit.Audit{
		CompanyID:    req.CompanyID,
		Title:        req.Title,
		AuditType:    audit.AuditType(req.AuditType),
		AuditPurpose: audit.AuditPurpose(req.AuditPurpose),
		Methodology:  audit.Methodology(req.Methodology),
	}
	a.ScopeTimeFrom, _ = parseDate(req.ScopeTimeFrom)
	a.ScopeTimeTo, _ = parseDate(req.ScopeTimeTo)

	if err := h.auditService.CreateAudit(r.Context(), a); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.auditPresenter.FormatAudit(a))
}

// GetAudit returns one audit.
// GET /audits/{auditID}
func (h *AuditHandlers) GetAudit(w http.ResponseWriter, r *http.Request) {
	auditID, ok := int64Param(r, "auditID")
	if !ok {
		writeBadRequest(w, "invalid audit id")
		return
	}

	a, err := h.auditService.GetAudit(r.Context(), auditID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.auditPresenter.FormatAudit(a))
}

// LockScope freezes the audit scope.
// POST /audits/{auditID}/lock
func (h *AuditHandlers) LockScope(w http.ResponseWriter, r *http.Request) {
	auditID, ok := int64Param(r, "auditID")
	if !ok {
		writeBadRequest(w, "invalid audit id")
		return
	}

	if err := h.auditService.LockScope(r.Context(), auditID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"scope_locked": true})
}

// recordResponseRequest is the POST /audits/{auditID}/responses body
type recordResponseRequest struct {
	TemplateIndicatorID int64  `json:"template_indicator_id"`
	IndicatorText       string `json:"indicator_text"`
	Rating              string `json:"rating"`
	Comment             string `json:"comment,omitempty"`
	PerformedBy         string `json:"performed_by,omitempty"`
}

// RecordResponse upserts an indicator rating.
// POST /audits/{auditID}/responses
func (h *AuditHandlers) RecordResponse(w http.ResponseWriter, r *http.Request) {
	auditID, ok := int64Param(r, "auditID")
	if !ok {
		writeBadRequest(w, "invalid audit id")
		return
	}

	var req recordResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.TemplateIndicatorID <= 0 || req.IndicatorText == "" {
		writeBadRequest(w, "template_indicator_id and indicator_text are required")
		return
	}

	response, err := h.auditService.RecordIndicatorResponse(
		r.Context(), auditID, req.TemplateIndicatorID,
		req.IndicatorText, audit.Rating(req.Rating), req.Comment, req.PerformedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.auditPresenter.FormatIndicatorResponse(response))
}

// GetScores returns the score summary and per-standard averages.
// GET /audits/{auditID}/scores
func (h *AuditHandlers) GetScores(w http.ResponseWriter, r *http.Request) {
	auditID, ok := int64Param(r, "auditID")
	if !ok {
		writeBadRequest(w, "invalid audit id")
		return
	}

	scores, err := h.auditService.GetScores(r.Context(), auditID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.scorePresenter.FormatAuditScores(auditID, scores))
}

// parseDate parses a yyyy-mm-dd date, returning the zero time for empty input.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

package handlers

import (
	"net/http"

	"ndisaudit/application"
	"ndisaudit/domain/findings"
	"ndisaudit/interfaces/web/presenters"
	"ndisaudit/logging"
)

// FindingHandlers handles HTTP requests for the corrective-action workflow.
type FindingHandlers struct {
	findingService   application.FindingService
	findingPresenter *presenters.FindingPresenter
	logger           *logging.Logger
}

// NewFindingHandlers creates a new finding handlers instance.
func NewFindingHandlers(
	findingService application.FindingService,
	findingPresenter *presenters.FindingPresenter,
) *FindingHandlers {
	return &FindingHandlers{
		findingService:   findingService,
		findingPresenter: findingPresenter,
		logger:           logging.Default().WithComponent("finding_handler"),
	}
}

// ListFindings returns all findings for an audit.
// GET /audits/{auditID}/findings
func (h *FindingHandlers) ListFindings(w http.ResponseWriter, r *http.Request) {
	auditID, ok := int64Param(r, "auditID")
	if !ok {
		writeBadRequest(w, "invalid audit id")
		return
	}

	list, err := h.findingService.ListFindings(r.Context(), auditID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.findingPresenter.FormatFindingList(auditID, list))
}

// GetFinding returns one finding with its evidence requests.
// GET /findings/{findingID}
func (h *FindingHandlers) GetFinding(w http.ResponseWriter, r *http.Request) {
	findingID, ok := int64Param(r, "findingID")
	if !ok {
		writeBadRequest(w, "invalid finding id")
		return
	}

	finding, err := h.findingService.GetFinding(r.Context(), findingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.findingPresenter.FormatFinding(finding))
}

// ListActivities returns a finding's append-only timeline.
// GET /findings/{findingID}/activities
func (h *FindingHandlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	findingID, ok := int64Param(r, "findingID")
	if !ok {
		writeBadRequest(w, "invalid finding id")
		return
	}

	activities, err := h.findingService.ListActivities(r.Context(), findingID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.findingPresenter.FormatActivities(activities))
}

// closeFindingRequest is the POST /findings/{findingID}/close body
type closeFindingRequest struct {
	ClosureNote string `json:"closure_note"`
	PerformedBy string `json:"performed_by,omitempty"`
}

// CloseFinding closes a finding with a closure note.
// POST /findings/{findingID}/close
func (h *FindingHandlers) CloseFinding(w http.ResponseWriter, r *http.Request) {
	findingID, ok := int64Param(r, "findingID")
	if !ok {
		writeBadRequest(w, "invalid finding id")
		return
	}

	var req closeFindingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.findingService.CloseFinding(r.Context(), findingID, req.ClosureNote, req.PerformedBy); err != nil {
		writeError(w, err)
		return
	}

	h.respondWithFinding(w, r, findingID)
}

// reopenFindingRequest is the POST /findings/{findingID}/reopen body
type reopenFindingRequest struct {
	PerformedBy string `json:"performed_by,omitempty"`
}

// ReopenFinding returns a closed finding to the open state.
// POST /findings/{findingID}/reopen
func (h *FindingHandlers) ReopenFinding(w http.ResponseWriter, r *http.Request) {
	findingID, ok := int64Param(r, "findingID")
	if !ok {
		writeBadRequest(w, "invalid finding id")
		return
	}

	var req reopenFindingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.findingService.ReopenFinding(r.Context(), findingID, req.PerformedBy); err != nil {
		writeError(w, err)
		return
	}

	h.respondWithFinding(w, r, findingID)
}

// requestEvidenceRequest is the POST /findings/{findingID}/evidence body
type requestEvidenceRequest struct {
	EvidenceType string `json:"evidence_type"`
	RequestNote  string `json:"request_note,omitempty"`
	PerformedBy  string `json:"performed_by,omitempty"`
}

// RequestEvidence creates an evidence request for a finding.
// POST /findings/{findingID}/evidence
func (h *FindingHandlers) RequestEvidence(w http.ResponseWriter, r *http.Request) {
	findingID, ok := int64Param(r, "findingID")
	if !ok {
		writeBadRequest(w, "invalid finding id")
		return
	}

	var req requestEvidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.EvidenceType == "" {
		writeBadRequest(w, "evidence_type is required")
		return
	}

	request, err := h.findingService.RequestEvidence(
		r.Context(), findingID, findings.EvidenceType(req.EvidenceType), req.RequestNote, req.PerformedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.findingPresenter.FormatEvidenceRequest(request))
}

// submitEvidenceRequest is the POST /evidence-requests/{requestID}/items body
type submitEvidenceRequest struct {
	FileName    string `json:"file_name"`
	Note        string `json:"note,omitempty"`
	PerformedBy string `json:"performed_by,omitempty"`
}

// SubmitEvidence records a document against an evidence request.
// POST /evidence-requests/{requestID}/items
func (h *FindingHandlers) SubmitEvidence(w http.ResponseWriter, r *http.Request) {
	requestID, ok := int64Param(r, "requestID")
	if !ok {
		writeBadRequest(w, "invalid evidence request id")
		return
	}

	var req submitEvidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.FileName == "" {
		writeBadRequest(w, "file_name is required")
		return
	}

	item, err := h.findingService.SubmitEvidence(r.Context(), requestID, req.FileName, req.Note, req.PerformedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        item.ID,
		"file_name": item.FileName,
	})
}

// reviewEvidenceRequest is the POST /evidence-requests/{requestID}/review body
type reviewEvidenceRequest struct {
	Accepted    bool   `json:"accepted"`
	PerformedBy string `json:"performed_by,omitempty"`
}

// ReviewEvidence resolves an evidence request as accepted or rejected.
// POST /evidence-requests/{requestID}/review
func (h *FindingHandlers) ReviewEvidence(w http.ResponseWriter, r *http.Request) {
	requestID, ok := int64Param(r, "requestID")
	if !ok {
		writeBadRequest(w, "invalid evidence request id")
		return
	}

	var req reviewEvidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.findingService.ReviewEvidence(r.Context(), requestID, req.Accepted, req.PerformedBy); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"reviewed": true})
}

// respondWithFinding writes the current state of a finding after a workflow op.
func (h *FindingHandlers) respondWithFinding(w http.ResponseWriter, r *http.Request, findingID int64) {
	finding, err := h.findingService.GetFinding(r.Context(), findingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.findingPresenter.FormatFinding(finding))
}

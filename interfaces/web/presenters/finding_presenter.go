package presenters

import (
	"time"

	"ndisaudit/domain/findings"
)

// FindingView represents one finding for API responses
type FindingView struct {
	ID                  int64  `json:"id"`
	AuditID             int64  `json:"audit_id"`
	TemplateIndicatorID int64  `json:"template_indicator_id"`
	FindingText         string `json:"finding_text"`
	Severity            string `json:"severity"`
	SeverityLabel       string `json:"severity_label"`
	Status              string `json:"status"`
	ClosureNote         string `json:"closure_note,omitempty"`
	OwnerName           string `json:"owner_name,omitempty"`
	DueDate             string `json:"due_date,omitempty"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`

	EvidenceRequests []*EvidenceRequestView `json:"evidence_requests,omitempty"`
}

// FindingListView represents all findings for an audit
type FindingListView struct {
	AuditID  int64          `json:"audit_id"`
	Open     int            `json:"open"`
	Closed   int            `json:"closed"`
	Findings []*FindingView `json:"findings"`
}

// ActivityView represents one timeline entry for API responses
type ActivityView struct {
	ID              int64  `json:"id"`
	ActivityType    string `json:"activity_type"`
	PreviousValue   string `json:"previous_value,omitempty"`
	NewValue        string `json:"new_value,omitempty"`
	Comment         string `json:"comment,omitempty"`
	PerformedByUser string `json:"performed_by,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// EvidenceRequestView represents an evidence request for API responses
type EvidenceRequestView struct {
	ID           int64               `json:"id"`
	EvidenceType string              `json:"evidence_type"`
	RequestNote  string              `json:"request_note,omitempty"`
	Status       string              `json:"status"`
	PublicToken  string              `json:"public_token,omitempty"`
	CreatedAt    string              `json:"created_at"`
	Items        []*EvidenceItemView `json:"items,omitempty"`
}

// EvidenceItemView represents a submitted document for API responses
type EvidenceItemView struct {
	ID          int64  `json:"id"`
	FileName    string `json:"file_name"`
	Note        string `json:"note,omitempty"`
	SubmittedAt string `json:"submitted_at"`
}

// FindingPresenter transforms finding domain data into view models.
type FindingPresenter struct{}

// NewFindingPresenter creates a new finding presenter.
func NewFindingPresenter() *FindingPresenter {
	return &FindingPresenter{}
}

// FormatFinding converts one finding to its API view.
func (p *FindingPresenter) FormatFinding(f *findings.Finding) *FindingView {
	if f == nil {
		return nil
	}

	view := &FindingView{
		ID:                  f.ID,
		AuditID:             f.AuditID,
		TemplateIndicatorID: f.TemplateIndicatorID,
		FindingText:         f.FindingText,
		Severity:            string(f.Severity),
		SeverityLabel:       f.Severity.DisplayName(),
		Status:              string(f.Status),
		ClosureNote:         f.ClosureNote,
		OwnerName:           f.OwnerName,
		CreatedAt:           f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           f.UpdatedAt.Format(time.RFC3339),
	}

	if f.DueDate != nil {
		view.DueDate = f.DueDate.Format("2006-01-02")
	}

	for _, req := range f.EvidenceRequests {
		view.EvidenceRequests = append(view.EvidenceRequests, p.FormatEvidenceRequest(req))
	}

	return view
}

// FormatFindingList converts an audit's findings with open/closed counts.
func (p *FindingPresenter) FormatFindingList(auditID int64, list []*findings.Finding) *FindingListView {
	view := &FindingListView{
		AuditID:  auditID,
		Findings: make([]*FindingView, 0, len(list)),
	}

	for _, f := range list {
		if f.IsOpen() {
			view.Open++
		} else {
			view.Closed++
		}
		view.Findings = append(view.Findings, p.FormatFinding(f))
	}

	return view
}

// FormatActivities converts a finding's timeline entries.
func (p *FindingPresenter) FormatActivities(activities []*findings.Activity) []*ActivityView {
	views := make([]*ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, &ActivityView{
			ID:              a.ID,
			ActivityType:    string(a.ActivityType),
			PreviousValue:   a.PreviousValue,
			NewValue:        a.NewValue,
			Comment:         a.Comment,
			PerformedByUser: a.PerformedByUser,
			CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		})
	}
	return views
}

// FormatEvidenceRequest converts one evidence request to its API view.
func (p *FindingPresenter) FormatEvidenceRequest(req *findings.EvidenceRequest) *EvidenceRequestView {
	if req == nil {
		return nil
	}

	view := &EvidenceRequestView{
		ID:           req.ID,
		EvidenceType: string(req.EvidenceType),
		RequestNote:  req.RequestNote,
		Status:       string(req.Status),
		PublicToken:  req.PublicToken,
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}

	for _, item := range req.Items {
		view.Items = append(view.Items, &EvidenceItemView{
			ID:          item.ID,
			FileName:    item.FileName,
			Note:        item.Note,
			SubmittedAt: item.SubmittedAt.Format(time.RFC3339),
		})
	}

	return view
}

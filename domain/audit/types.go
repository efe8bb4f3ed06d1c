package audit

import "time"

// Company is the NDIS provider organisation under audit.
type Company struct {
	ID                 int64
	Name               string
	ABN                string
	RegistrationNumber string
	ContactName        string
	ContactEmail       string
	Address            string
}

// Site is a physical service location included in the audit scope.
type Site struct {
	ID      int64
	AuditID int64
	Name    string
	Address string
}

// Audit is the top-level aggregate for a single compliance audit engagement.
type Audit struct {
	ID               int64
	CompanyID        int64
	Title            string
	AuditType        AuditType
	AuditPurpose     AuditPurpose
	Methodology      Methodology
	ScopeTimeFrom    time.Time
	ScopeTimeTo      time.Time
	ScopeLocked      bool
	ExecutiveSummary string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Interview records a conversation held during the audit.
type Interview struct {
	ID      int64
	AuditID int64
	Name    string
	Role    string
	Type    InterviewType
	Method  InterviewMethod
	HeldAt  time.Time
	Summary string
}

// SiteVisit records an attendance at a service location.
type SiteVisit struct {
	ID        int64
	AuditID   int64
	SiteName  string
	Address   string
	VisitedAt time.Time
	Notes     string
}

// RegistrationGroupItem is a per-scope-line-item witnessing record for an
// NDIS registration group.
type RegistrationGroupItem struct {
	ID          int64
	AuditID     int64
	ItemCode    string
	ItemLabel   string
	Recommended bool
	Status      ScopeItemStatus
	Witnessed   WitnessedStatus
}

// ConclusionData holds the sign-off block of the audit report.
type ConclusionData struct {
	AuditID               int64
	ConclusionText        string
	ReviewersNote         string
	EndorsedByLeadAuditor bool
	EndorsedByReviewer    bool
	EndorsedByProvider    bool
	FollowUpRequired      bool
	LeadAuditorName       string
	LeadAuditorSignature  string
	SignatureDate         time.Time
}

// Endorsements returns the three endorsement flags in sign-off order.
func (c *ConclusionData) Endorsements() [3]bool {
	return [3]bool{c.EndorsedByLeadAuditor, c.EndorsedByReviewer, c.EndorsedByProvider}
}

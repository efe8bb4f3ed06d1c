package audit

// Rating is the conformity rating an auditor assigns to a single indicator.
type Rating string

const (
	RatingBestPractice Rating = "CONFORMITY_BEST_PRACTICE"
	RatingConformity   Rating = "CONFORMITY"
	RatingMinorNC      Rating = "MINOR_NC"
	RatingMajorNC      Rating = "MAJOR_NC"
)

// Points returns the score contribution of the rating.
// Best practice 3, conformity 2, minor non-conformity 1, major non-conformity 0.
func (r Rating) Points() int {
	switch r {
	case RatingBestPractice:
		return 3
	case RatingConformity:
		return 2
	case RatingMinorNC:
		return 1
	case RatingMajorNC:
		return 0
	default:
		return 0
	}
}

// IsValid reports whether the rating is one of the known values.
func (r Rating) IsValid() bool {
	switch r {
	case RatingBestPractice, RatingConformity, RatingMinorNC, RatingMajorNC:
		return true
	default:
		return false
	}
}

// IsNonConforming reports whether the rating should raise a finding.
func (r Rating) IsNonConforming() bool {
	return r == RatingMinorNC || r == RatingMajorNC
}

// DisplayName returns the human-readable rating label used in reports.
func (r Rating) DisplayName() string {
	switch r {
	case RatingBestPractice:
		return "Conformity with Best Practice"
	case RatingConformity:
		return "Conformity"
	case RatingMinorNC:
		return "Minor Non-Conformity"
	case RatingMajorNC:
		return "Major Non-Conformity"
	default:
		return string(r)
	}
}

// AuditType describes the kind of certification audit being performed.
type AuditType string

const (
	AuditTypeCertification   AuditType = "CERTIFICATION"
	AuditTypeVerification    AuditType = "VERIFICATION"
	AuditTypeMidTerm         AuditType = "MID_TERM"
	AuditTypeRecertification AuditType = "RECERTIFICATION"
)

// AuditPurpose describes why the audit is being conducted.
type AuditPurpose string

const (
	PurposeInitialRegistration AuditPurpose = "INITIAL_REGISTRATION"
	PurposeRenewal             AuditPurpose = "RENEWAL"
	PurposeVariation           AuditPurpose = "VARIATION"
	PurposeSurveillance        AuditPurpose = "SURVEILLANCE"
)

// Methodology describes how audit evidence was gathered.
type Methodology string

const (
	MethodologyOnSite  Methodology = "ON_SITE"
	MethodologyRemote  Methodology = "REMOTE"
	MethodologyHybrid  Methodology = "HYBRID"
	MethodologyDesktop Methodology = "DESKTOP"
)

// InterviewType identifies who was interviewed during the audit.
type InterviewType string

const (
	InterviewParticipant InterviewType = "PARTICIPANT"
	InterviewWorker      InterviewType = "WORKER"
	InterviewManagement  InterviewType = "MANAGEMENT"
	InterviewFamily      InterviewType = "FAMILY_ADVOCATE"
)

// InterviewMethod identifies how an interview was conducted.
type InterviewMethod string

const (
	InterviewInPerson InterviewMethod = "IN_PERSON"
	InterviewPhone    InterviewMethod = "PHONE"
	InterviewVideo    InterviewMethod = "VIDEO"
)

// ScopeItemStatus tracks whether a registration group line item is kept in,
// added to, or removed from the audit scope.
type ScopeItemStatus string

const (
	ScopeItemKeep   ScopeItemStatus = "KEEP"
	ScopeItemAdd    ScopeItemStatus = "ADD"
	ScopeItemRemove ScopeItemStatus = "REMOVE"
)

// WitnessedStatus records whether a registration group was witnessed during the audit.
type WitnessedStatus string

const (
	WitnessedYes WitnessedStatus = "YES"
	WitnessedNo  WitnessedStatus = "NO"
	WitnessedNA  WitnessedStatus = "NA"
)

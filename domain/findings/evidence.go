package findings

import "time"

// EvidenceStatus tracks an evidence request through submission and review.
type EvidenceStatus string

const (
	EvidenceRequested   EvidenceStatus = "REQUESTED"
	EvidenceSubmitted   EvidenceStatus = "SUBMITTED"
	EvidenceUnderReview EvidenceStatus = "UNDER_REVIEW"
	EvidenceAccepted    EvidenceStatus = "ACCEPTED"
	EvidenceRejected    EvidenceStatus = "REJECTED"
)

// EvidenceType is the document category being requested from the provider.
type EvidenceType string

const (
	EvidencePolicyDocument       EvidenceType = "POLICY_DOCUMENT"
	EvidenceProcedureDocument    EvidenceType = "PROCEDURE_DOCUMENT"
	EvidenceTrainingRecord       EvidenceType = "TRAINING_RECORD"
	EvidencePoliceCheck          EvidenceType = "POLICE_CHECK"
	EvidenceWorkerScreening      EvidenceType = "NDIS_WORKER_SCREENING"
	EvidenceWorkingWithChildren  EvidenceType = "WORKING_WITH_CHILDREN_CHECK"
	EvidenceInsuranceCertificate EvidenceType = "INSURANCE_CERTIFICATE"
	EvidenceRegistrationCert     EvidenceType = "REGISTRATION_CERTIFICATE"
	EvidenceComplaintsRegister   EvidenceType = "COMPLAINTS_REGISTER"
	EvidenceIncidentRegister     EvidenceType = "INCIDENT_REGISTER"
	EvidenceRiskRegister         EvidenceType = "RISK_REGISTER"
	EvidenceStaffRoster          EvidenceType = "STAFF_ROSTER"
	EvidencePositionDescription  EvidenceType = "POSITION_DESCRIPTION"
	EvidenceEmploymentContract   EvidenceType = "EMPLOYMENT_CONTRACT"
	EvidenceServiceAgreement     EvidenceType = "SERVICE_AGREEMENT"
	EvidenceSupportPlan          EvidenceType = "SUPPORT_PLAN"
	EvidenceMedicationChart      EvidenceType = "MEDICATION_CHART"
	EvidenceFinancialRecord      EvidenceType = "FINANCIAL_RECORD"
	EvidenceInternalAuditReport  EvidenceType = "INTERNAL_AUDIT_REPORT"
	EvidenceMeetingMinutes       EvidenceType = "MEETING_MINUTES"
	EvidenceOrganisationalChart  EvidenceType = "ORGANISATIONAL_CHART"
	EvidenceContinuityPlan       EvidenceType = "BUSINESS_CONTINUITY_PLAN"
	EvidenceEmergencyPlan        EvidenceType = "EMERGENCY_PLAN"
	EvidenceVehicleRecord        EvidenceType = "VEHICLE_RECORD"
	EvidenceMaintenanceRecord    EvidenceType = "MAINTENANCE_RECORD"
	EvidenceConsentForm          EvidenceType = "CONSENT_FORM"
	EvidenceFeedbackSurvey       EvidenceType = "FEEDBACK_SURVEY"
	EvidenceQualificationCert    EvidenceType = "QUALIFICATION_CERTIFICATE"
	EvidenceFirstAidCertificate  EvidenceType = "FIRST_AID_CERTIFICATE"
	EvidenceCodeOfConductAck     EvidenceType = "CODE_OF_CONDUCT_ACKNOWLEDGEMENT"
	EvidenceOther                EvidenceType = "OTHER"
)

// EvidenceRequest asks the provider for a supporting document, optionally
// shareable through a public upload token.
type EvidenceRequest struct {
	ID           int64
	FindingID    int64
	EvidenceType EvidenceType
	RequestNote  string
	Status       EvidenceStatus
	PublicToken  string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []*EvidenceItem
}

// EvidenceItem is a document submitted against an evidence request.
type EvidenceItem struct {
	ID                int64
	EvidenceRequestID int64
	FileName          string
	Note              string
	SubmittedAt       time.Time
}

// NewEvidenceRequest creates a pending evidence request for a finding.
func NewEvidenceRequest(findingID int64, evidenceType EvidenceType, requestNote, publicToken string) *EvidenceRequest {
	now := time.Now()
	return &EvidenceRequest{
		FindingID:    findingID,
		EvidenceType: evidenceType,
		RequestNote:  requestNote,
		Status:       EvidenceRequested,
		PublicToken:  publicToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsResolved reports whether the request has reached a terminal review state.
func (e *EvidenceRequest) IsResolved() bool {
	return e.Status == EvidenceAccepted || e.Status == EvidenceRejected
}

package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ndisaudit/domain/audit"
	"ndisaudit/domain/contracts"
	"ndisaudit/domain/events"
	"ndisaudit/domain/findings"
	"ndisaudit/test/mocks"
)

func newAuditServiceUnderTest() (AuditService, *mocks.MockAuditRepository, *mocks.MockFindingRepository, *mocks.MockFindingEventPublisher) {
	auditRepo := &mocks.MockAuditRepository{}
	findingRepo := &mocks.MockFindingRepository{}
	publisher := &mocks.MockFindingEventPublisher{}
	service := NewAuditService(auditRepo, findingRepo, publisher)
	return service, auditRepo, findingRepo, publisher
}

func testAudit(id int64, locked bool) *audit.Audit {
	return &audit.Audit{
		ID:           id,
		CompanyID:    1,
		Title:        "Certification Audit - Sunrise Care",
		AuditType:    audit.AuditTypeCertification,
		AuditPurpose: audit.PurposeInitialRegistration,
		Methodology:  audit.MethodologyOnSite,
		ScopeLocked:  locked,
	}
}

func TestRecordIndicatorResponse_NonConformingRaisesFinding(t *testing.T) {
	// Arrange
	service, auditRepo, findingRepo, publisher := newAuditServiceUnderTest()

	auditRepo.On("GetAudit", mock.Anything, int64(1)).Return(testAudit(1, false), nil)
	auditRepo.On("UpsertIndicatorResponse", mock.Anything, mock.Anything).Return(nil)
	findingRepo.On("GetOpenForIndicator", mock.Anything, int64(1), int64(42)).
		Return(nil, contracts.ErrNotFound)
	findingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishFindingOpened", mock.Anything).Return()

	// Act
	response, err := service.RecordIndicatorResponse(
		context.Background(), 1, 42,
		"Police check records are current for all staff",
		audit.RatingMajorNC, "Two workers without current checks", "auditor@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, response.ScorePoints)

	findingRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(f *findings.Finding) bool {
		return f.Severity == findings.SeverityMajorNC && f.TemplateIndicatorID == 42
	}))
	publisher.AssertCalled(t, "PublishFindingOpened", mock.MatchedBy(func(e events.FindingOpenedEvent) bool {
		return e.PerformedBy == "auditor@example.com"
	}))
}

func TestRecordIndicatorResponse_ConformingDoesNotRaiseFinding(t *testing.T) {
	// Arrange
	service, auditRepo, findingRepo, publisher := newAuditServiceUnderTest()

	auditRepo.On("GetAudit", mock.Anything, int64(1)).Return(testAudit(1, false), nil)
	auditRepo.On("UpsertIndicatorResponse", mock.Anything, mock.Anything).Return(nil)

	// Act
	response, err := service.RecordIndicatorResponse(
		context.Background(), 1, 42,
		"Medication charts are reviewed monthly",
		audit.RatingBestPractice, "", "auditor@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, response.ScorePoints)
	findingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishFindingOpened", mock.Anything)
}

func TestRecordIndicatorResponse_ExistingOpenFindingNotDuplicated(t *testing.T) {
	// Arrange
	service, auditRepo, findingRepo, publisher := newAuditServiceUnderTest()

	openFinding := findings.NewFinding(1, 42, "Police checks missing", findings.SeverityMinorNC)
	openFinding.ID = 9

	auditRepo.On("GetAudit", mock.Anything, int64(1)).Return(testAudit(1, false), nil)
	auditRepo.On("UpsertIndicatorResponse", mock.Anything, mock.Anything).Return(nil)
	findingRepo.On("GetOpenForIndicator", mock.Anything, int64(1), int64(42)).
		Return(openFinding, nil)

	// Act
	_, err := service.RecordIndicatorResponse(
		context.Background(), 1, 42,
		"Police check records are current for all staff",
		audit.RatingMinorNC, "", "auditor@example.com")

	// Assert
	require.NoError(t, err)
	findingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishFindingOpened", mock.Anything)
}

func TestRecordIndicatorResponse_RejectsInvalidRating(t *testing.T) {
	// Arrange
	service, auditRepo, _, _ := newAuditServiceUnderTest()

	// Act
	_, err := service.RecordIndicatorResponse(
		context.Background(), 1, 42, "Some indicator", audit.Rating("NOT_A_RATING"), "", "")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidRating)
	auditRepo.AssertNotCalled(t, "UpsertIndicatorResponse", mock.Anything, mock.Anything)
}

func TestUpdateRegistrationGroupItem_RejectedWhenScopeLocked(t *testing.T) {
	// Arrange
	service, auditRepo, _, _ := newAuditServiceUnderTest()
	auditRepo.On("GetAudit", mock.Anything, int64(1)).Return(testAudit(1, true), nil)

	item := &audit.RegistrationGroupItem{
		AuditID:   1,
		ItemCode:  "0104",
		ItemLabel: "High Intensity Daily Personal Activities",
		Status:    audit.ScopeItemAdd,
	}

	// Act
	err := service.UpdateRegistrationGroupItem(context.Background(), item)

	// Assert
	assert.ErrorIs(t, err, contracts.ErrScopeLocked)
	auditRepo.AssertNotCalled(t, "UpsertRegistrationGroupItem", mock.Anything, mock.Anything)
}

func TestUpdateRegistrationGroupItem_AllowedWhenUnlocked(t *testing.T) {
	// Arrange
	service, auditRepo, _, _ := newAuditServiceUnderTest()
	auditRepo.On("GetAudit", mock.Anything, int64(1)).Return(testAudit(1, false), nil)
	auditRepo.On("UpsertRegistrationGroupItem", mock.Anything, mock.Anything).Return(nil)

	item := &audit.RegistrationGroupItem{AuditID: 1, ItemCode: "0104", ItemLabel: "x"}

	// Act
	err := service.UpdateRegistrationGroupItem(context.Background(), item)

	// Assert
	require.NoError(t, err)
	auditRepo.AssertCalled(t, "UpsertRegistrationGroupItem", mock.Anything, item)
}

func TestGetScores_ComputesSummaryAndStandards(t *testing.T) {
	// Arrange
	service, auditRepo, _, _ := newAuditServiceUnderTest()

	responses := []*audit.IndicatorResponse{
		audit.NewIndicatorResponse(1, 1, "Police check records are current for all staff", audit.RatingConformity, ""),
		audit.NewIndicatorResponse(1, 2, "Staff receive regular supervision", audit.RatingBestPractice, ""),
	}

	auditRepo.On("GetAudit", mock.Anything, int64(1)).Return(testAudit(1, false), nil)
	auditRepo.On("ListIndicatorResponses", mock.Anything, int64(1)).Return(responses, nil)

	// Act
	scores, err := service.GetScores(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, scores.Summary.Total)
	assert.Equal(t, 5, scores.Summary.Points)
	assert.Equal(t, 6, scores.Summary.MaxPoints)
	require.Len(t, scores.Standards, 1)
	assert.Equal(t, "17", scores.Standards[0].Standard.Number)
}

func TestGetScores_UnknownAuditFails(t *testing.T) {
	// Arrange
	service, auditRepo, _, _ := newAuditServiceUnderTest()
	auditRepo.On("GetAudit", mock.Anything, int64(404)).Return(nil, contracts.ErrNotFound)

	// Act
	_, err := service.GetScores(context.Background(), 404)

	// Assert
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestCreateAudit_RequiresTitle(t *testing.T) {
	// Arrange
	service, auditRepo, _, _ := newAuditServiceUnderTest()

	// Act
	err := service.CreateAudit(context.Background(), &audit.Audit{Title: "   "})

	// Assert
	assert.Error(t, err)
	auditRepo.AssertNotCalled(t, "CreateAudit", mock.Anything, mock.Anything)
}

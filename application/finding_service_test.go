package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ndisaudit/domain/events"
	"ndisaudit/domain/findings"
	"ndisaudit/test/mocks"
)

func newFindingServiceUnderTest() (FindingService, *mocks.MockFindingRepository, *mocks.MockFindingEventPublisher) {
	findingRepo := &mocks.MockFindingRepository{}
	publisher := &mocks.MockFindingEventPublisher{}
	service := NewFindingService(findingRepo, publisher)
	return service, findingRepo, publisher
}

func openFinding(id int64) *findings.Finding {
	f := findings.NewFinding(1, 42, "Police checks missing for two workers", findings.SeverityMajorNC)
	f.ID = id
	return f
}

func TestCloseFinding_Success(t *testing.T) {
	// Arrange
	service, findingRepo, publisher := newFindingServiceUnderTest()
	finding := openFinding(5)

	findingRepo.On("GetByID", mock.Anything, int64(5)).Return(finding, nil)
	findingRepo.On("UpdateStatus", mock.Anything, finding).Return(nil)
	publisher.On("PublishFindingClosed", mock.Anything).Return()

	// Act
	err := service.CloseFinding(context.Background(), 5,
		"Updated police checks sighted for both workers", "auditor@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, findings.StatusClosed, finding.Status)
	publisher.AssertCalled(t, "PublishFindingClosed", mock.MatchedBy(func(e events.FindingClosedEvent) bool {
		return e.Finding.ID == 5 && e.ClosureNote == "Updated police checks sighted for both workers"
	}))
}

func TestCloseFinding_FromReviewCarriesPriorStatus(t *testing.T) {
	// Arrange
	service, findingRepo, publisher := newFindingServiceUnderTest()

	finding := openFinding(10)
	require.NoError(t, finding.MarkUnderReview())

	findingRepo.On("GetByID", mock.Anything, int64(10)).Return(finding, nil)
	findingRepo.On("UpdateStatus", mock.Anything, finding).Return(nil)
	publisher.On("PublishFindingClosed", mock.Anything).Return()

	// Act
	err := service.CloseFinding(context.Background(), 10,
		"Accepted evidence resolves the non-conformity", "reviewer@example.com")

	// Assert
	require.NoError(t, err)
	publisher.AssertCalled(t, "PublishFindingClosed", mock.MatchedBy(func(e events.FindingClosedEvent) bool {
		return e.PreviousStatus == findings.StatusUnderReview
	}))
}

func TestCloseFinding_RejectsShortNote(t *testing.T) {
	// Arrange
	service, findingRepo, publisher := newFindingServiceUnderTest()
	findingRepo.On("GetByID", mock.Anything, int64(5)).Return(openFinding(5), nil)

	// Act
	err := service.CloseFinding(context.Background(), 5, "fixed", "auditor@example.com")

	// Assert
	assert.ErrorIs(t, err, findings.ErrClosureNoteTooShort)
	findingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishFindingClosed", mock.Anything)
}

func TestReopenFinding_Success(t *testing.T) {
	// Arrange
	service, findingRepo, publisher := newFindingServiceUnderTest()

	finding := openFinding(6)
	require.NoError(t, finding.Close("Corrective action verified on site"))

	findingRepo.On("GetByID", mock.Anything, int64(6)).Return(finding, nil)
	findingRepo.On("UpdateStatus", mock.Anything, finding).Return(nil)
	publisher.On("PublishFindingReopened", mock.Anything).Return()

	// Act
	err := service.ReopenFinding(context.Background(), 6, "reviewer@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, findings.StatusOpen, finding.Status)
	// The earlier closure note stays on the record
	assert.Equal(t, "Corrective action verified on site", finding.ClosureNote)
	publisher.AssertCalled(t, "PublishFindingReopened", mock.MatchedBy(func(e events.FindingReopenedEvent) bool {
		return e.PreviousStatus == findings.StatusClosed
	}))
}

func TestReopenFinding_RejectsOpenFinding(t *testing.T) {
	// Arrange
	service, findingRepo, publisher := newFindingServiceUnderTest()
	findingRepo.On("GetByID", mock.Anything, int64(7)).Return(openFinding(7), nil)

	// Act
	err := service.ReopenFinding(context.Background(), 7, "reviewer@example.com")

	// Assert
	assert.ErrorIs(t, err, findings.ErrNotClosed)
	publisher.AssertNotCalled(t, "PublishFindingReopened", mock.Anything)
}

func TestRequestEvidence_MintsPublicToken(t *testing.T) {
	// Arrange
	service, findingRepo, publisher := newFindingServiceUnderTest()

	findingRepo.On("GetByID", mock.Anything, int64(8)).Return(openFinding(8), nil)
	findingRepo.On("CreateEvidenceRequest", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishEvidenceRequested", mock.Anything).Return()

	// Act
	request, err := service.RequestEvidence(context.Background(), 8,
		findings.EvidencePoliceCheck, "Provide current checks for both workers", "auditor@example.com")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, request.PublicToken)
	assert.Equal(t, findings.EvidenceRequested, request.Status)
	publisher.AssertCalled(t, "PublishEvidenceRequested", mock.Anything)
}

func TestSubmitEvidence_MovesFindingUnderReview(t *testing.T) {
	// Arrange
	service, findingRepo, publisher := newFindingServiceUnderTest()

	finding := openFinding(9)
	request := findings.NewEvidenceRequest(9, findings.EvidencePoliceCheck, "Provide checks", "token-1")
	request.ID = 3

	findingRepo.On("GetEvidenceRequest", mock.Anything, int64(3)).Return(request, nil)
	findingRepo.On("RecordEvidenceSubmission", mock.Anything, mock.Anything, findings.EvidenceSubmitted).Return(nil)
	findingRepo.On("GetByID", mock.Anything, int64(9)).Return(finding, nil)
	findingRepo.On("UpdateStatus", mock.Anything, finding).Return(nil)
	publisher.On("PublishEvidenceSubmitted", mock.Anything).Return()

	// Act
	item, err := service.SubmitEvidence(context.Background(), 3,
		"police-check-jsmith.pdf", "Check issued March 2025", "provider@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "police-check-jsmith.pdf", item.FileName)
	assert.Equal(t, findings.StatusUnderReview, finding.Status)
	publisher.AssertCalled(t, "PublishEvidenceSubmitted", mock.Anything)
}

func TestReviewEvidence_AcceptedAppendsActivity(t *testing.T) {
	// Arrange
	service, findingRepo, _ := newFindingServiceUnderTest()

	request := findings.NewEvidenceRequest(9, findings.EvidencePoliceCheck, "Provide checks", "token-2")
	request.ID = 4
	request.Status = findings.EvidenceSubmitted

	findingRepo.On("GetEvidenceRequest", mock.Anything, int64(4)).Return(request, nil)
	findingRepo.On("UpdateEvidenceRequestStatus", mock.Anything, int64(4), findings.EvidenceAccepted).Return(nil)
	findingRepo.On("AppendActivity", mock.Anything, mock.Anything).Return(nil)

	// Act
	err := service.ReviewEvidence(context.Background(), 4, true, "reviewer@example.com")

	// Assert
	require.NoError(t, err)
	findingRepo.AssertCalled(t, "AppendActivity", mock.Anything, mock.MatchedBy(func(a *findings.Activity) bool {
		return a.ActivityType == findings.ActivityEvidenceReviewed &&
			a.NewValue == string(findings.EvidenceAccepted) &&
			a.PerformedByUser == "reviewer@example.com"
	}))
}

package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ndisaudit/application"
	"ndisaudit/domain/findings"
	"ndisaudit/test/mocks"
)

// recorderUnderTest wires a real bus and recorder against a mock repository
// that captures appended timeline entries.
func recorderUnderTest() (*FindingEventBus, *mocks.MockFindingRepository, chan *findings.Activity) {
	findingRepo := &mocks.MockFindingRepository{}
	eventBus := NewFindingEventBus()
	NewActivityRecorder(findingRepo).RegisterHandlers(eventBus)

	recorded := make(chan *findings.Activity, 1)
	findingRepo.On("AppendActivity", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recorded <- args.Get(1).(*findings.Activity)
	}).Return(nil)

	return eventBus, findingRepo, recorded
}

func TestActivityRecorder_CloseFromReview_RecordsPriorStatus(t *testing.T) {
	// Arrange
	eventBus, findingRepo, recorded := recorderUnderTest()
	service := application.NewFindingService(findingRepo, eventBus)

	finding := createTestFinding(11, findings.StatusUnderReview)
	findingRepo.On("GetByID", mock.Anything, int64(11)).Return(finding, nil)
	findingRepo.On("UpdateStatus", mock.Anything, finding).Return(nil)

	// Act
	err := service.CloseFinding(context.Background(), 11,
		"Accepted evidence resolves the non-conformity", "reviewer@example.com")

	// Assert
	require.NoError(t, err)
	select {
	case activity := <-recorded:
		assert.Equal(t, findings.ActivityClosed, activity.ActivityType)
		assert.Equal(t, string(findings.StatusUnderReview), activity.PreviousValue)
		assert.Equal(t, string(findings.StatusClosed), activity.NewValue)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeline entry was not recorded within timeout")
	}
}

func TestActivityRecorder_CloseFromOpen_RecordsPriorStatus(t *testing.T) {
	// Arrange
	eventBus, findingRepo, recorded := recorderUnderTest()
	service := application.NewFindingService(findingRepo, eventBus)

	finding := createTestFinding(12, findings.StatusOpen)
	findingRepo.On("GetByID", mock.Anything, int64(12)).Return(finding, nil)
	findingRepo.On("UpdateStatus", mock.Anything, finding).Return(nil)

	// Act
	err := service.CloseFinding(context.Background(), 12,
		"Updated police checks sighted for both workers", "auditor@example.com")

	// Assert
	require.NoError(t, err)
	select {
	case activity := <-recorded:
		assert.Equal(t, findings.ActivityClosed, activity.ActivityType)
		assert.Equal(t, string(findings.StatusOpen), activity.PreviousValue)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeline entry was not recorded within timeout")
	}
}

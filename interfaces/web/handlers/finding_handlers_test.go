package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ndisaudit/domain/contracts"
	"ndisaudit/domain/findings"
	"ndisaudit/interfaces/web/presenters"
)

// Mock implementations for testing
type MockFindingService struct {
	mock.Mock
}

func (m *MockFindingService) GetFinding(ctx context.Context, findingID int64) (*findings.Finding, error) {
	args := m.Called(ctx, findingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*findings.Finding), args.Error(1)
}

func (m *MockFindingService) ListFindings(ctx context.Context, auditID int64) ([]*findings.Finding, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*findings.Finding), args.Error(1)
}

func (m *MockFindingService) ListActivities(ctx context.Context, findingID int64) ([]*findings.Activity, error) {
	args := m.Called(ctx, findingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*findings.Activity), args.Error(1)
}

func (m *MockFindingService) CloseFinding(ctx context.Context, findingID int64, closureNote, performedBy string) error {
	args := m.Called(ctx, findingID, closureNote, performedBy)
	return args.Error(0)
}

func (m *MockFindingService) ReopenFinding(ctx context.Context, findingID int64, performedBy string) error {
	args := m.Called(ctx, findingID, performedBy)
	return args.Error(0)
}

func (m *MockFindingService) RequestEvidence(ctx context.Context, findingID int64, evidenceType findings.EvidenceType, requestNote, performedBy string) (*findings.EvidenceRequest, error) {
	args := m.Called(ctx, findingID, evidenceType, requestNote, performedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*findings.EvidenceRequest), args.Error(1)
}

func (m *MockFindingService) SubmitEvidence(ctx context.Context, requestID int64, fileName, note, performedBy string) (*findings.EvidenceItem, error) {
	args := m.Called(ctx, requestID, fileName, note, performedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*findings.EvidenceItem), args.Error(1)
}

func (m *MockFindingService) ReviewEvidence(ctx context.Context, requestID int64, accepted bool, performedBy string) error {
	args := m.Called(ctx, requestID, accepted, performedBy)
	return args.Error(0)
}

func newFindingRouter(service *MockFindingService) http.Handler {
	handlers := NewFindingHandlers(service, presenters.NewFindingPresenter())

	r := chi.NewRouter()
	r.Get("/findings/{findingID}", handlers.GetFinding)
	r.Post("/findings/{findingID}/close", handlers.CloseFinding)
	r.Post("/findings/{findingID}/reopen", handlers.ReopenFinding)
	r.Post("/findings/{findingID}/evidence", handlers.RequestEvidence)
	return r
}

func TestCloseFinding_Success(t *testing.T) {
	// Setup
	service := new(MockFindingService)

	closed := findings.NewFinding(1, 42, "Police checks missing", findings.SeverityMajorNC)
	closed.ID = 5
	require.NoError(t, closed.Close("Updated checks sighted for both workers"))

	service.On("CloseFinding", mock.Anything, int64(5), "Updated checks sighted for both workers", "auditor@example.com").Return(nil)
	service.On("GetFinding", mock.Anything, int64(5)).Return(closed, nil)

	// Act
	body := `{"closure_note":"Updated checks sighted for both workers","performed_by":"auditor@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/findings/5/close", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newFindingRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var view presenters.FindingView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "CLOSED", view.Status)
}

func TestCloseFinding_ShortNoteRejected(t *testing.T) {
	// Setup
	service := new(MockFindingService)
	service.On("CloseFinding", mock.Anything, int64(5), "fixed", "").
		Return(findings.ErrClosureNoteTooShort)

	// Act
	req := httptest.NewRequest(http.MethodPost, "/findings/5/close", strings.NewReader(`{"closure_note":"fixed"}`))
	rec := httptest.NewRecorder()
	newFindingRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReopenFinding_AlreadyOpenConflicts(t *testing.T) {
	// Setup
	service := new(MockFindingService)
	service.On("ReopenFinding", mock.Anything, int64(5), "").Return(findings.ErrNotClosed)

	// Act
	req := httptest.NewRequest(http.MethodPost, "/findings/5/reopen", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	newFindingRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetFinding_NotFound(t *testing.T) {
	// Setup
	service := new(MockFindingService)
	service.On("GetFinding", mock.Anything, int64(404)).Return(nil, contracts.ErrNotFound)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/findings/404", nil)
	rec := httptest.NewRecorder()
	newFindingRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestEvidence_ReturnsToken(t *testing.T) {
	// Setup
	service := new(MockFindingService)

	request := findings.NewEvidenceRequest(5, findings.EvidencePoliceCheck, "Provide current checks", "token-abc")
	request.ID = 3
	service.On("RequestEvidence", mock.Anything, int64(5), findings.EvidencePoliceCheck, "Provide current checks", "").
		Return(request, nil)

	// Act
	body := `{"evidence_type":"POLICE_CHECK","request_note":"Provide current checks"}`
	req := httptest.NewRequest(http.MethodPost, "/findings/5/evidence", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newFindingRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var view presenters.EvidenceRequestView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "token-abc", view.PublicToken)
}

func TestRequestEvidence_MissingTypeRejected(t *testing.T) {
	// Setup
	service := new(MockFindingService)

	// Act
	req := httptest.NewRequest(http.MethodPost, "/findings/5/evidence", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	newFindingRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "RequestEvidence", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ndisaudit/domain/contracts"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateReport(ctx context.Context, auditID int64) ([]byte, string, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func newReportRouter(service *MockReportService) http.Handler {
	handlers := NewReportHandlers(service)

	r := chi.NewRouter()
	r.Get("/audits/{auditID}/report.pdf", handlers.GetReportPDF)
	return r
}

func TestGetReportPDF_StreamsDocument(t *testing.T) {
	// Setup
	service := new(MockReportService)
	service.On("GenerateReport", mock.Anything, int64(1)).
		Return([]byte("%PDF-1.3 fake"), "sunrise-care-audit-report-1.pdf", nil)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/audits/1/report.pdf", nil)
	rec := httptest.NewRecorder()
	newReportRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sunrise-care-audit-report-1.pdf")
	assert.Equal(t, "%PDF-1.3 fake", rec.Body.String())
}

func TestGetReportPDF_UnknownAudit(t *testing.T) {
	// Setup
	service := new(MockReportService)
	service.On("GenerateReport", mock.Anything, int64(404)).
		Return(nil, "", contracts.ErrNotFound)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/audits/404/report.pdf", nil)
	rec := httptest.NewRecorder()
	newReportRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReportPDF_InvalidID(t *testing.T) {
	// Setup
	service := new(MockReportService)

	// Act
	req := httptest.NewRequest(http.MethodGet, "/audits/abc/report.pdf", nil)
	rec := httptest.NewRecorder()
	newReportRouter(service).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "GenerateReport", mock.Anything, mock.Anything)
}

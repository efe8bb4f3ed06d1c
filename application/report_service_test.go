package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ndisaudit/domain/audit"
	"ndisaudit/domain/contracts"
	"ndisaudit/domain/report"
	"ndisaudit/infrastructure/pdf"
	"ndisaudit/test/mocks"
)

func TestGenerateReport_ReturnsPDFAndFilename(t *testing.T) {
	// Arrange
	reportData := &mocks.MockReportDataRepository{}
	service := NewReportService(reportData, pdf.NewGenerator())

	snapshot := &report.Data{
		Audit: &audit.Audit{
			ID:            1,
			Title:         "Certification Audit - Sunrise Care",
			AuditType:     audit.AuditTypeCertification,
			AuditPurpose:  audit.PurposeInitialRegistration,
			Methodology:   audit.MethodologyOnSite,
			ScopeTimeFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ScopeTimeTo:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		Company: &audit.Company{ID: 1, Name: "Sunrise Care Services Pty Ltd"},
	}
	reportData.On("GetReportData", mock.Anything, int64(1)).Return(snapshot, nil)

	// Act
	output, filename, err := service.GenerateReport(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, output)
	assert.Equal(t, "%PDF", string(output[:4]))
	assert.Equal(t, "sunrise-care-services-pty-ltd-audit-report-1.pdf", filename)
}

func TestGenerateReport_UnknownAuditFails(t *testing.T) {
	// Arrange
	reportData := &mocks.MockReportDataRepository{}
	service := NewReportService(reportData, pdf.NewGenerator())

	reportData.On("GetReportData", mock.Anything, int64(404)).Return(nil, contracts.ErrNotFound)

	// Act
	_, _, err := service.GenerateReport(context.Background(), 404)

	// Assert
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestReportFilename_SanitisesCompanyName(t *testing.T) {
	assert.Equal(t, "sunrise-care-audit-report-7.pdf", reportFilename("Sunrise Care", 7))
	assert.Equal(t, "abc-123-audit-report-2.pdf", reportFilename("  ABC & 123!  ", 2))
	assert.Equal(t, "audit-audit-report-3.pdf", reportFilename("***", 3))
}

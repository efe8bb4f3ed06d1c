package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ndisaudit/domain/contracts"
	"ndisaudit/infrastructure/pdf"
	"ndisaudit/logging"
)

// ReportService compiles audit reports.
type ReportService interface {
	// GenerateReport assembles the snapshot for an audit, compiles the PDF
	// and returns the document bytes with a download filename.
	GenerateReport(ctx context.Context, auditID int64) ([]byte, string, error)
}

// ReportServiceImpl is the production implementation of ReportService.
type ReportServiceImpl struct {
	reportData contracts.ReportDataRepository
	generator  *pdf.Generator
	logger     *logging.Logger
}

// NewReportService creates a new report service.
func NewReportService(reportData contracts.ReportDataRepository, generator *pdf.Generator) ReportService {
	return &ReportServiceImpl{
		reportData: reportData,
		generator:  generator,
		logger:     logging.Default().WithComponent("report_service"),
	}
}

// GenerateReport produces the audit report PDF for one audit.
func (s *ReportServiceImpl) GenerateReport(ctx context.Context, auditID int64) ([]byte, string, error) {
	start := time.Now()

	data, err := s.reportData.GetReportData(ctx, auditID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load report data for audit %d: %w", auditID, err)
	}

	output, err := s.generator.Generate(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate report for audit %d: %w", auditID, err)
	}

	filename := reportFilename(data.Company.Name, auditID)

	s.logger.Performance("generate_report", time.Since(start))
	s.logger.Report("Report generated",
		"audit_id", auditID,
		"filename", filename,
		"bytes", len(output))

	return output, filename, nil
}

// reportFilename builds a filesystem-safe download name from the provider
// name and audit ID.
func reportFilename(companyName string, auditID int64) string {
	slug := strings.ToLower(strings.TrimSpace(companyName))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "audit"
	}

	return fmt.Sprintf("%s-audit-report-%d.pdf", slug, auditID)
}

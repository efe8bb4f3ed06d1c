package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"ndisaudit/application"
	"ndisaudit/logging"
)

// ReportHandlers handles HTTP requests for report generation.
type ReportHandlers struct {
	reportService application.ReportService
	logger        *logging.Logger
}

// NewReportHandlers creates a new report handlers instance.
func NewReportHandlers(reportService application.ReportService) *ReportHandlers {
	return &ReportHandlers{
		reportService: reportService,
		logger:        logging.Default().WithComponent("report_handler"),
	}
}

// GetReportPDF compiles and streams the audit report.
// GET /audits/{auditID}/report.pdf
func (h *ReportHandlers) GetReportPDF(w http.ResponseWriter, r *http.Request) {
	auditID, ok := int64Param(r, "auditID")
	if !ok {
		writeBadRequest(w, "invalid audit id")
		return
	}

	output, filename, err := h.reportService.GenerateReport(r.Context(), auditID)
	if err != nil {
		h.logger.Error("Report generation failed", "audit_id", auditID, "error", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(output)))
	if _, err := w.Write(output); err != nil {
		h.logger.Error("Failed to stream report", "audit_id", auditID, "error", err)
	}
}

// Package pdf compiles a fully-materialised audit snapshot into a paginated
// PDF report. Generation is single-pass and synchronous: each call receives
// its own snapshot and owns its own document state, so no locking is needed.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ndisaudit/domain/report"
	"ndisaudit/domain/scoring"
	"ndisaudit/logging"
)

// Generator compiles audit report documents.
type Generator struct {
	logger *logging.Logger
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{
		logger: logging.Default().WithComponent("report_generator"),
	}
}

// tocEntry is a rendered section and the content page it starts on. Content
// numbering excludes the cover page.
type tocEntry struct {
	title string
	page  int
}

// run holds the mutable state of one generation pass.
type run struct {
	doc       *gofpdf.Fpdf
	layout    *layout
	data      *report.Data
	scores    scoring.ScoreSummary
	standards []*scoring.StandardScore
	toc       []tocEntry
	tocPage   int
	tocStartY float64
}

// beginSection starts a top-level section on a fresh page and registers it
// in the table of contents.
func (r *run) beginSection(title string) {
	r.doc.AddPage()
	r.toc = append(r.toc, tocEntry{title: title, page: r.doc.PageNo() - 1})
	r.layout.SectionHeading(title)
}

// Generate renders the report and returns the document bytes. Generation is
// all-or-nothing: any failure aborts the document and no partial output is
// produced.
func (g *Generator) Generate(data *report.Data) ([]byte, error) {
	started := time.Now()

	r, err := g.build(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report output: %w", err)
	}

	g.logger.Report("Report generated",
		"audit_id", data.Audit.ID,
		"pages", r.doc.PageCount(),
		"bytes", buf.Len(),
		"duration_ms", time.Since(started).Milliseconds())

	return buf.Bytes(), nil
}

// build runs the section pipeline and returns the finished pass. Kept
// separate from Generate so tests can inspect page counts and the table of
// contents before the document is serialised.
func (g *Generator) build(data *report.Data) (*run, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validate report data: %w", err)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(orFallback(data.Audit.Title, "NDIS Certification Audit Report"), true)
	doc.SetAuthor(data.Company.Name, true)
	doc.SetMargins(15, 15, 15)
	// Safety net for long wrapped text; sections still break explicitly
	// through EnsureSpace before each block.
	doc.SetAutoPageBreak(true, footerGuard)

	r := &run{
		doc:       doc,
		layout:    newLayout(doc),
		data:      data,
		scores:    scoring.CalculateScores(data.IndicatorResponses),
		standards: scoring.AverageByStandard(data.IndicatorResponses),
	}

	r.coverPage()
	r.reserveTableOfContents()
	r.executiveSummary()
	r.auditOverview()
	r.auditResults()
	if len(data.Findings) > 0 {
		r.findingsSection()
	}
	if len(data.Interviews) > 0 {
		r.interviewsSection()
	}
	if len(data.SiteVisits) > 0 {
		r.siteVisitsSection()
	}
	if len(data.RegistrationGroups) > 0 {
		r.registrationGroupsSection()
	}
	if data.Conclusion != nil {
		r.conclusionSection()
	}
	r.fillTableOfContents()
	r.footerPass()

	if doc.Err() {
		return nil, fmt.Errorf("compile report: %w", doc.Error())
	}
	return r, nil
}

// footerPass revisits every page after the cover and draws the
// confidentiality line and running page number. The cover is excluded from
// the count, so the first content page is numbered 1 and the printed total
// is one less than the physical page count.
func (r *run) footerPass() {
	total := r.doc.PageCount()
	r.doc.SetAutoPageBreak(false, 0)

	for page := 2; page <= total; page++ {
		r.doc.SetPage(page)
		r.doc.SetY(r.layout.pageHeight - 14)
		r.doc.SetFont("Helvetica", "I", 8)
		r.layout.setTextColor(colorMuted)
		r.doc.CellFormat(r.layout.ContentWidth()/2, 5, "Commercial in Confidence", "", 0, "L", false, 0, "")
		r.doc.CellFormat(r.layout.ContentWidth()/2, 5, footerPageLabel(page, total), "", 0, "R", false, 0, "")
	}
}

// footerPageLabel formats the running page number for a physical page.
func footerPageLabel(page, total int) string {
	return fmt.Sprintf("Page %d of %d", page-1, total-1)
}

package pdf

import (
	"github.com/jung-kurt/gofpdf"

	"ndisaudit/domain/audit"
	"ndisaudit/domain/findings"
)

// Space requirements declared by sections before writing a block. Each block
// asks for the height it actually needs instead of guessing a page-break
// threshold.
const (
	sectionHeaderSpace = 40.0
	tableHeaderSpace   = 24.0
	tableRowSpace      = 9.0
	findingBlockSpace  = 48.0
	signatureSpace     = 55.0
)

// footerGuard reserves room at the bottom of every page for the running
// footer drawn in the final pass.
const footerGuard = 22.0

// rgb is a fixed-palette colour.
type rgb struct {
	r, g, b int
}

var (
	colorHeading   = rgb{31, 41, 55}    // slate
	colorBody      = rgb{55, 65, 81}
	colorMuted     = rgb{107, 114, 128}
	colorTableHead = rgb{31, 41, 55}
	colorRowShade  = rgb{243, 244, 246} // alternating row background
	colorRuleLine  = rgb{209, 213, 219}

	colorRed   = rgb{192, 57, 43}
	colorAmber = rgb{230, 126, 34}
	colorGreen = rgb{39, 174, 96}
	colorBlue  = rgb{41, 128, 185}
	colorGray  = rgb{127, 140, 141}
)

// ratingColor maps an indicator rating onto the section palette. The switch
// is exhaustive over the closed rating set; unknown values fall back to gray.
func ratingColor(r audit.Rating) rgb {
	switch r {
	case audit.RatingBestPractice:
		return colorBlue
	case audit.RatingConformity:
		return colorGreen
	case audit.RatingMinorNC:
		return colorAmber
	case audit.RatingMajorNC:
		return colorRed
	default:
		return colorGray
	}
}

// severityColor maps a finding severity onto the palette.
func severityColor(s findings.Severity) rgb {
	switch s {
	case findings.SeverityMinorNC:
		return colorAmber
	case findings.SeverityMajorNC:
		return colorRed
	default:
		return colorGray
	}
}

// statusColor maps a finding status onto the palette.
func statusColor(s findings.Status) rgb {
	switch s {
	case findings.StatusOpen:
		return colorRed
	case findings.StatusUnderReview:
		return colorAmber
	case findings.StatusClosed:
		return colorGreen
	default:
		return colorGray
	}
}

// layout owns the document cursor for one generation pass. Sections declare
// the vertical space they need through EnsureSpace instead of reading and
// comparing raw Y positions at call sites.
type layout struct {
	doc        *gofpdf.Fpdf
	pageWidth  float64
	pageHeight float64
	marginL    float64
	marginR    float64
}

func newLayout(doc *gofpdf.Fpdf) *layout {
	w, h := doc.GetPageSize()
	l, _, r, _ := doc.GetMargins()
	return &layout{
		doc:        doc,
		pageWidth:  w,
		pageHeight: h,
		marginL:    l,
		marginR:    r,
	}
}

// ContentWidth is the printable width between the side margins.
func (l *layout) ContentWidth() float64 {
	return l.pageWidth - l.marginL - l.marginR
}

// EnsureSpace forces a page break when fewer than height units remain above
// the footer guard. Returns true when a break was inserted.
func (l *layout) EnsureSpace(height float64) bool {
	if l.doc.GetY()+height > l.pageHeight-footerGuard {
		l.doc.AddPage()
		return true
	}
	return false
}

// SectionHeading writes a section title with a rule underneath, breaking the
// page first if the heading would sit too close to the bottom.
func (l *layout) SectionHeading(title string) {
	l.EnsureSpace(sectionHeaderSpace)
	l.doc.SetFont("Helvetica", "B", 15)
	l.setTextColor(colorHeading)
	l.doc.CellFormat(l.ContentWidth(), 10, title, "", 1, "L", false, 0, "")
	l.setDrawColor(colorRuleLine)
	y := l.doc.GetY()
	l.doc.Line(l.marginL, y, l.pageWidth-l.marginR, y)
	l.doc.Ln(4)
}

// ColorBar draws a filled header bar with white label text, used for
// rating/severity groupings.
func (l *layout) ColorBar(label string, color rgb) {
	l.EnsureSpace(tableHeaderSpace)
	l.setFillColor(color)
	l.doc.SetTextColor(255, 255, 255)
	l.doc.SetFont("Helvetica", "B", 10)
	l.doc.CellFormat(l.ContentWidth(), 8, "  "+label, "", 1, "L", true, 0, "")
	l.doc.Ln(1)
}

// BodyText writes wrapped paragraph text.
func (l *layout) BodyText(text string) {
	l.doc.SetFont("Helvetica", "", 10)
	l.setTextColor(colorBody)
	l.doc.MultiCell(l.ContentWidth(), 5, text, "", "L", false)
	l.doc.Ln(2)
}

// KeyValueRow writes a two-column label/value row.
func (l *layout) KeyValueRow(label, value string) {
	l.EnsureSpace(tableRowSpace)
	labelWidth := 55.0
	l.doc.SetFont("Helvetica", "B", 10)
	l.setTextColor(colorBody)
	l.doc.CellFormat(labelWidth, 7, label, "", 0, "L", false, 0, "")
	l.doc.SetFont("Helvetica", "", 10)
	l.doc.MultiCell(l.ContentWidth()-labelWidth, 7, value, "", "L", false)
}

// TableHeader writes a dark header row for a table with the given column
// labels and widths.
func (l *layout) TableHeader(labels []string, widths []float64) {
	l.EnsureSpace(tableHeaderSpace)
	l.setFillColor(colorTableHead)
	l.doc.SetTextColor(255, 255, 255)
	l.doc.SetFont("Helvetica", "B", 9)
	for i, label := range labels {
		l.doc.CellFormat(widths[i], 8, label, "", 0, "L", true, 0, "")
	}
	l.doc.Ln(-1)
}

// TableRow writes a table row, shading alternate rows.
func (l *layout) TableRow(cells []string, widths []float64, shaded bool) {
	if l.EnsureSpace(tableRowSpace) {
		// A fresh page keeps the table readable without re-drawing headers.
		shaded = false
	}
	if shaded {
		l.setFillColor(colorRowShade)
	}
	l.doc.SetFont("Helvetica", "", 9)
	l.setTextColor(colorBody)
	for i, cell := range cells {
		l.doc.CellFormat(widths[i], 7, cell, "", 0, "L", shaded, 0, "")
	}
	l.doc.Ln(-1)
}

func (l *layout) setFillColor(c rgb) { l.doc.SetFillColor(c.r, c.g, c.b) }
func (l *layout) setTextColor(c rgb) { l.doc.SetTextColor(c.r, c.g, c.b) }
func (l *layout) setDrawColor(c rgb) { l.doc.SetDrawColor(c.r, c.g, c.b) }

package pdf

import (
	"fmt"
	"strings"

	"ndisaudit/domain/audit"
)

// Section order is fixed: cover, table of contents, executive summary,
// overview, results, then the conditional sections, then sign-off. Each
// section after the cover starts on a fresh page and registers itself in the
// table of contents.

func (r *run) coverPage() {
	doc := r.doc
	doc.AddPage()

	doc.Ln(45)
	doc.SetFont("Helvetica", "B", 24)
	r.layout.setTextColor(colorHeading)
	doc.MultiCell(r.layout.ContentWidth(), 12, r.data.Company.Name, "", "C", false)
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 17)
	doc.MultiCell(r.layout.ContentWidth(), 9, orFallback(r.data.Audit.Title, "NDIS Certification Audit Report"), "", "C", false)
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	r.layout.setTextColor(colorBody)
	doc.CellFormat(r.layout.ContentWidth(), 7, titleCaseEnum(string(r.data.Audit.AuditType))+" Audit", "", 1, "C", false, 0, "")
	doc.CellFormat(r.layout.ContentWidth(), 7, formatDateRange(r.data.Audit.ScopeTimeFrom, r.data.Audit.ScopeTimeTo), "", 1, "C", false, 0, "")

	doc.Ln(25)
	doc.SetFont("Helvetica", "", 10)
	r.layout.setTextColor(colorMuted)
	doc.CellFormat(r.layout.ContentWidth(), 6, "ABN: "+orFallback(r.data.Company.ABN, fallbackNotSpecified), "", 1, "C", false, 0, "")
	doc.CellFormat(r.layout.ContentWidth(), 6, "NDIS Registration: "+orFallback(r.data.Company.RegistrationNumber, fallbackNotSpecified), "", 1, "C", false, 0, "")

	doc.SetY(r.layout.pageHeight - 40)
	doc.SetFont("Helvetica", "I", 10)
	doc.CellFormat(r.layout.ContentWidth(), 6, "Commercial in Confidence", "", 1, "C", false, 0, "")
}

// reserveTableOfContents adds the contents page and records its number so
// the entries can be filled in once every section has settled on a page.
func (r *run) reserveTableOfContents() {
	r.doc.AddPage()
	r.tocPage = r.doc.PageNo()
	r.layout.SectionHeading("Table of Contents")
	// Entries resume exactly where the heading left the cursor.
	r.tocStartY = r.doc.GetY()
}

// fillTableOfContents revisits the reserved contents page and writes one
// line per rendered section. Sections that were skipped never registered an
// entry, so they are absent here as well.
func (r *run) fillTableOfContents() {
	doc := r.doc
	doc.SetAutoPageBreak(false, 0)
	doc.SetPage(r.tocPage)
	doc.SetY(r.tocStartY)

	for _, entry := range r.toc {
		doc.SetFont("Helvetica", "", 11)
		r.layout.setTextColor(colorBody)
		doc.CellFormat(r.layout.ContentWidth()-18, 8, entry.title, "", 0, "L", false, 0, "")
		doc.CellFormat(18, 8, fmt.Sprintf("%d", entry.page), "", 1, "R", false, 0, "")
	}
}

func (r *run) executiveSummary() {
	r.beginSection("Executive Summary")
	r.layout.BodyText(orFallback(r.data.Audit.ExecutiveSummary, "No executive summary has been provided."))
}

func (r *run) auditOverview() {
	r.beginSection("Audit Overview")

	company := r.data.Company
	a := r.data.Audit

	r.layout.KeyValueRow("Provider", company.Name)
	r.layout.KeyValueRow("ABN", orFallback(company.ABN, fallbackNotSpecified))
	r.layout.KeyValueRow("NDIS Registration", orFallback(company.RegistrationNumber, fallbackNotSpecified))
	r.layout.KeyValueRow("Contact", orFallback(company.ContactName, fallbackNotSpecified))
	r.layout.KeyValueRow("Address", orFallback(company.Address, fallbackNotSpecified))
	r.layout.KeyValueRow("Audit type", titleCaseEnum(string(a.AuditType)))
	r.layout.KeyValueRow("Audit purpose", titleCaseEnum(string(a.AuditPurpose)))
	r.layout.KeyValueRow("Methodology", titleCaseEnum(string(a.Methodology)))
	r.layout.KeyValueRow("Scope period", formatDateRange(a.ScopeTimeFrom, a.ScopeTimeTo))
	r.layout.KeyValueRow("Sites", siteList(r.data.Sites))
	r.layout.KeyValueRow("Indicators assessed", fmt.Sprintf("%d", len(r.data.IndicatorResponses)))
}

func siteList(sites []*audit.Site) string {
	if len(sites) == 0 {
		return fallbackNA
	}
	names := make([]string, 0, len(sites))
	for _, s := range sites {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func (r *run) auditResults() {
	r.beginSection("Audit Results")

	// Conformity summary table.
	widths := []float64{100, 40, 40}
	r.layout.TableHeader([]string{"Rating", "Count", "Points"}, widths)
	rows := []struct {
		rating audit.Rating
		count  int
	}{
		{audit.RatingBestPractice, r.scores.BestPractice},
		{audit.RatingConformity, r.scores.Conformity},
		{audit.RatingMinorNC, r.scores.MinorNC},
		{audit.RatingMajorNC, r.scores.MajorNC},
	}
	for i, row := range rows {
		r.layout.TableRow([]string{
			row.rating.DisplayName(),
			fmt.Sprintf("%d", row.count),
			fmt.Sprintf("%d", row.count*row.rating.Points()),
		}, widths, i%2 == 1)
	}
	r.doc.Ln(4)
	r.layout.KeyValueRow("Overall score", fmt.Sprintf("%d%% (%d of %d points)",
		r.scores.Percentage, r.scores.Points, r.scores.MaxPoints))
	r.doc.Ln(4)

	// Per-standard compliance, grouped by practice standards division.
	if len(r.standards) > 0 {
		r.subheading("Compliance by Practice Standard")
		stdWidths := []float64{18, 102, 28, 32}
		division := ""
		headerDrawn := false
		for _, score := range r.standards {
			if score.Division != division {
				division = score.Division
				r.layout.ColorBar(division, rgb{75, 85, 99})
				headerDrawn = false
			}
			if !headerDrawn {
				r.layout.TableHeader([]string{"No.", "Standard", "Indicators", "Average"}, stdWidths)
				headerDrawn = true
			}
			r.layout.TableRow([]string{
				score.Standard.Number,
				score.Standard.Name,
				fmt.Sprintf("%d", score.Responses),
				fmt.Sprintf("%.1f / 3.0", score.AverageScore),
			}, stdWidths, false)
		}
		r.doc.Ln(4)
	}

	// Indicator detail, grouped by rating with the worst ratings first.
	r.subheading("Indicators by Rating")
	for _, rating := range []audit.Rating{
		audit.RatingMajorNC, audit.RatingMinorNC, audit.RatingConformity, audit.RatingBestPractice,
	} {
		responses := responsesWithRating(r.data.IndicatorResponses, rating)
		if len(responses) == 0 {
			continue
		}
		r.layout.ColorBar(fmt.Sprintf("%s (%d)", rating.DisplayName(), len(responses)), ratingColor(rating))
		for _, response := range responses {
			r.layout.EnsureSpace(16)
			r.doc.SetFont("Helvetica", "B", 9)
			r.layout.setTextColor(colorBody)
			r.doc.MultiCell(r.layout.ContentWidth(), 5, response.IndicatorText, "", "L", false)
			if response.Comment != "" {
				r.doc.SetFont("Helvetica", "I", 9)
				r.layout.setTextColor(colorMuted)
				r.doc.MultiCell(r.layout.ContentWidth(), 5, CleanComment(response.Comment), "", "L", false)
			}
			r.doc.Ln(2)
		}
		r.doc.Ln(2)
	}
}

func responsesWithRating(responses []*audit.IndicatorResponse, rating audit.Rating) []*audit.IndicatorResponse {
	var out []*audit.IndicatorResponse
	for _, response := range responses {
		if response.Rating == rating {
			out = append(out, response)
		}
	}
	return out
}

func (r *run) findingsSection() {
	r.beginSection("Findings and Corrective Actions")

	for i, finding := range r.data.Findings {
		r.layout.EnsureSpace(findingBlockSpace)
		r.layout.ColorBar(fmt.Sprintf("Finding %d - %s", i+1, finding.Severity.DisplayName()),
			severityColor(finding.Severity))

		r.layout.KeyValueRow("Status", titleCaseEnum(string(finding.Status)))
		if finding.OwnerName != "" {
			r.layout.KeyValueRow("Owner", finding.OwnerName)
		}
		if finding.DueDate != nil {
			r.layout.KeyValueRow("Due date", formatDatePtr(finding.DueDate))
		}
		r.layout.BodyText(finding.FindingText)

		if len(finding.EvidenceRequests) > 0 {
			r.layout.KeyValueRow("Evidence requested", fmt.Sprintf("%d request(s)", len(finding.EvidenceRequests)))
		}
		if finding.ClosureNote != "" {
			r.layout.KeyValueRow("Closure note", CleanComment(finding.ClosureNote))
		}
		r.doc.Ln(3)
	}
}

func (r *run) interviewsSection() {
	r.beginSection("Interviews")

	widths := []float64{45, 40, 32, 28, 35}
	r.layout.TableHeader([]string{"Name", "Role", "Type", "Method", "Date"}, widths)
	for i, interview := range r.data.Interviews {
		r.layout.TableRow([]string{
			orFallback(interview.Name, fallbackNotSpecified),
			orFallback(interview.Role, fallbackNotSpecified),
			titleCaseEnum(string(interview.Type)),
			titleCaseEnum(string(interview.Method)),
			formatDate(interview.HeldAt),
		}, widths, i%2 == 1)
	}
}

func (r *run) siteVisitsSection() {
	r.beginSection("Site Visits")

	widths := []float64{50, 90, 40}
	r.layout.TableHeader([]string{"Site", "Address", "Date"}, widths)
	for i, visit := range r.data.SiteVisits {
		r.layout.TableRow([]string{
			orFallback(visit.SiteName, fallbackNotSpecified),
			orFallback(visit.Address, fallbackNotSpecified),
			formatDate(visit.VisitedAt),
		}, widths, i%2 == 1)
		if visit.Notes != "" {
			r.doc.SetFont("Helvetica", "I", 9)
			r.layout.setTextColor(colorMuted)
			r.doc.MultiCell(r.layout.ContentWidth(), 5, CleanComment(visit.Notes), "", "L", false)
		}
	}
}

func (r *run) registrationGroupsSection() {
	r.beginSection("Registration Groups and Witnessing")

	widths := []float64{28, 92, 28, 32}
	r.layout.TableHeader([]string{"Item Code", "Registration Group", "Status", "Witnessed"}, widths)
	for i, item := range r.data.RegistrationGroups {
		r.layout.TableRow([]string{
			item.ItemCode,
			item.ItemLabel,
			titleCaseEnum(string(item.Status)),
			witnessedLabel(item.Witnessed),
		}, widths, i%2 == 1)
	}
}

func witnessedLabel(w audit.WitnessedStatus) string {
	switch w {
	case audit.WitnessedYes:
		return "Witnessed"
	case audit.WitnessedNo:
		return "Not witnessed"
	case audit.WitnessedNA:
		return fallbackNA
	default:
		return string(w)
	}
}

func (r *run) conclusionSection() {
	r.beginSection("Conclusion and Sign-off")

	conclusion := r.data.Conclusion
	r.layout.BodyText(orFallback(conclusion.ConclusionText, "No conclusion has been recorded."))

	if conclusion.ReviewersNote != "" {
		r.subheading("Reviewer's Note")
		r.layout.BodyText(conclusion.ReviewersNote)
	}

	r.layout.KeyValueRow("Endorsed by lead auditor", yesNo(conclusion.EndorsedByLeadAuditor))
	r.layout.KeyValueRow("Endorsed by reviewer", yesNo(conclusion.EndorsedByReviewer))
	r.layout.KeyValueRow("Acknowledged by provider", yesNo(conclusion.EndorsedByProvider))
	r.layout.KeyValueRow("Follow-up required", yesNo(conclusion.FollowUpRequired))

	r.layout.EnsureSpace(signatureSpace)
	r.doc.Ln(8)
	r.layout.KeyValueRow("Lead auditor", orFallback(conclusion.LeadAuditorName, fallbackNotSpecified))
	r.layout.KeyValueRow("Signature", orFallback(conclusion.LeadAuditorSignature, fallbackNotSet))
	r.layout.KeyValueRow("Date", formatDate(conclusion.SignatureDate))
}

// subheading writes a bold intra-section heading.
func (r *run) subheading(title string) {
	r.layout.EnsureSpace(tableHeaderSpace)
	r.doc.SetFont("Helvetica", "B", 12)
	r.layout.setTextColor(colorHeading)
	r.doc.CellFormat(r.layout.ContentWidth(), 8, title, "", 1, "L", false, 0, "")
	r.doc.Ln(1)
}

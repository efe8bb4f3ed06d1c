package pdf

import (
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndisaudit/domain/audit"
	"ndisaudit/domain/findings"
	"ndisaudit/domain/report"
)

func minimalReportData() *report.Data {
	return &report.Data{
		Audit: &audit.Audit{
			ID:            1,
			Title:         "Mid Term Audit - Sunrise Care",
			AuditType:     audit.AuditTypeMidTerm,
			AuditPurpose:  audit.PurposeSurveillance,
			Methodology:   audit.MethodologyOnSite,
			ScopeTimeFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ScopeTimeTo:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		Company: &audit.Company{
			ID:   1,
			Name: "Sunrise Care Services Pty Ltd",
			ABN:  "12 345 678 901",
		},
		IndicatorResponses: []*audit.IndicatorResponse{
			{IndicatorText: "Police check records are current", Rating: audit.RatingConformity},
			{IndicatorText: "Medication charts are reviewed", Rating: audit.RatingBestPractice},
		},
	}
}

func sectionTitles(entries []tocEntry) []string {
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		titles = append(titles, e.title)
	}
	return titles
}

func TestGenerate_ProducesPDFBytes(t *testing.T) {
	out, err := NewGenerator().Generate(minimalReportData())

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerate_RejectsInvalidSnapshot(t *testing.T) {
	_, err := NewGenerator().Generate(&report.Data{Company: &audit.Company{Name: "x"}})
	assert.ErrorIs(t, err, report.ErrMissingAudit)

	_, err = NewGenerator().Generate(&report.Data{Audit: &audit.Audit{ID: 1}})
	assert.ErrorIs(t, err, report.ErrMissingCompany)
}

func TestBuild_OmitsEmptySections(t *testing.T) {
	r, err := NewGenerator().build(minimalReportData())
	require.NoError(t, err)

	titles := sectionTitles(r.toc)
	assert.Equal(t, []string{"Executive Summary", "Audit Overview", "Audit Results"}, titles)
	assert.NotContains(t, titles, "Findings and Corrective Actions")
	assert.NotContains(t, titles, "Interviews")
	assert.NotContains(t, titles, "Site Visits")
}

func TestBuild_IncludesConditionalSections(t *testing.T) {
	data := minimalReportData()
	data.Findings = []*findings.Finding{
		findings.NewFinding(1, 10, "Police checks missing for two workers", findings.SeverityMajorNC),
	}
	data.Interviews = []*audit.Interview{
		{Name: "A. Participant", Type: audit.InterviewParticipant, Method: audit.InterviewInPerson},
	}
	data.SiteVisits = []*audit.SiteVisit{
		{SiteName: "Main Office", Address: "1 High St", VisitedAt: time.Now()},
	}
	data.RegistrationGroups = []*audit.RegistrationGroupItem{
		{ItemCode: "0104", ItemLabel: "High Intensity Daily Personal Activities", Status: audit.ScopeItemKeep, Witnessed: audit.WitnessedYes},
	}
	data.Conclusion = &audit.ConclusionData{
		ConclusionText:  "The provider conforms with the assessed standards.",
		LeadAuditorName: "J. Lead",
	}

	r, err := NewGenerator().build(data)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Executive Summary",
		"Audit Overview",
		"Audit Results",
		"Findings and Corrective Actions",
		"Interviews",
		"Site Visits",
		"Registration Groups and Witnessing",
		"Conclusion and Sign-off",
	}, sectionTitles(r.toc))
}

// Content page numbering excludes the cover: the table of contents is
// content page 1, and every section entry records its physical page minus
// one.
func TestBuild_TOCNumbersExcludeCover(t *testing.T) {
	r, err := NewGenerator().build(minimalReportData())
	require.NoError(t, err)

	require.NotEmpty(t, r.toc)
	// Cover is physical page 1, TOC physical page 2, first section physical
	// page 3 and therefore content page 2.
	assert.Equal(t, 2, r.toc[0].page)

	for i := 1; i < len(r.toc); i++ {
		assert.Greater(t, r.toc[i].page, r.toc[i-1].page)
	}
}

// The contents entries resume where the heading left the cursor, so a
// heading layout change can never overlap the entry rows.
func TestBuild_TOCEntriesStartBelowHeading(t *testing.T) {
	r, err := NewGenerator().build(minimalReportData())
	require.NoError(t, err)

	// Render the same heading on a scratch page to find where it ends.
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	l := newLayout(doc)
	doc.AddPage()
	l.SectionHeading("Table of Contents")

	assert.InDelta(t, doc.GetY(), r.tocStartY, 0.1)
}

func TestFooterPageLabel(t *testing.T) {
	// Physical page 2 of a 6-page document is content page 1 of 5.
	assert.Equal(t, "Page 1 of 5", footerPageLabel(2, 6))
	assert.Equal(t, "Page 5 of 5", footerPageLabel(6, 6))
}

func TestBuild_PageCountCoversAllSections(t *testing.T) {
	r, err := NewGenerator().build(minimalReportData())
	require.NoError(t, err)

	// Cover + TOC + three sections, one page each.
	assert.Equal(t, 5, r.doc.PageCount())
}

func TestEnsureSpace_BreaksNearPageBottom(t *testing.T) {
	r, err := NewGenerator().build(minimalReportData())
	require.NoError(t, err)

	doc := r.doc
	doc.SetAutoPageBreak(true, footerGuard)
	doc.AddPage()
	before := doc.PageCount()

	l := newLayout(doc)
	assert.False(t, l.EnsureSpace(20))

	doc.SetY(l.pageHeight - footerGuard - 10)
	assert.True(t, l.EnsureSpace(20))
	assert.Equal(t, before+1, doc.PageCount())
}

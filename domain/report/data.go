// Package report defines the fully-materialised data snapshot a single
// report generation pass consumes. The snapshot is assembled by the data
// access layer before compilation begins and is treated as immutable input.
package report

import (
	"errors"

	"ndisaudit/domain/audit"
	"ndisaudit/domain/findings"
)

var (
	// ErrMissingAudit occurs when a snapshot has no audit record.
	ErrMissingAudit = errors.New("report data has no audit")

	// ErrMissingCompany occurs when a snapshot has no provider company record.
	ErrMissingCompany = errors.New("report data has no company")
)

// Data is the complete input for one report generation pass.
type Data struct {
	Audit              *audit.Audit
	Company            *audit.Company
	Sites              []*audit.Site
	Interviews         []*audit.Interview
	SiteVisits         []*audit.SiteVisit
	IndicatorResponses []*audit.IndicatorResponse
	Findings           []*findings.Finding
	RegistrationGroups []*audit.RegistrationGroupItem
	Conclusion         *audit.ConclusionData
}

// Validate checks the structural requirements of the snapshot. Optional
// collections may be empty, but the audit and company must be present;
// generation fails fast rather than producing a partial document.
func (d *Data) Validate() error {
	if d.Audit == nil {
		return ErrMissingAudit
	}
	if d.Company == nil {
		return ErrMissingCompany
	}
	return nil
}

// OpenFindings returns the findings still requiring corrective action.
func (d *Data) OpenFindings() []*findings.Finding {
	var open []*findings.Finding
	for _, f := range d.Findings {
		if f.IsOpen() {
			open = append(open, f)
		}
	}
	return open
}

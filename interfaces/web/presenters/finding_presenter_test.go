package presenters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndisaudit/domain/findings"
)

func TestFormatFinding_IncludesSeverityLabelAndDueDate(t *testing.T) {
	due := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)

	f := findings.NewFinding(1, 42, "Police checks missing for two workers", findings.SeverityMajorNC)
	f.ID = 5
	f.OwnerName = "J. Manager"
	f.DueDate = &due

	view := NewFindingPresenter().FormatFinding(f)

	require.NotNil(t, view)
	assert.Equal(t, int64(5), view.ID)
	assert.Equal(t, "MAJOR_NC", view.Severity)
	assert.Equal(t, "Major Non-Conformity", view.SeverityLabel)
	assert.Equal(t, "OPEN", view.Status)
	assert.Equal(t, "2025-11-30", view.DueDate)
}

func TestFormatFinding_NilReturnsNil(t *testing.T) {
	assert.Nil(t, NewFindingPresenter().FormatFinding(nil))
}

func TestFormatFindingList_CountsOpenAndClosed(t *testing.T) {
	open := findings.NewFinding(1, 1, "Open finding", findings.SeverityMinorNC)
	closed := findings.NewFinding(1, 2, "Closed finding", findings.SeverityMinorNC)
	require.NoError(t, closed.Close("Corrective action verified on site"))

	view := NewFindingPresenter().FormatFindingList(1, []*findings.Finding{open, closed})

	assert.Equal(t, 1, view.Open)
	assert.Equal(t, 1, view.Closed)
	assert.Len(t, view.Findings, 2)
}

func TestFormatEvidenceRequest_IncludesItems(t *testing.T) {
	req := findings.NewEvidenceRequest(5, findings.EvidencePoliceCheck, "Provide current checks", "token-abc")
	req.ID = 3
	req.Items = []*findings.EvidenceItem{
		{ID: 1, EvidenceRequestID: 3, FileName: "police-check.pdf", SubmittedAt: time.Now()},
	}

	view := NewFindingPresenter().FormatEvidenceRequest(req)

	require.NotNil(t, view)
	assert.Equal(t, "POLICE_CHECK", view.EvidenceType)
	assert.Equal(t, "REQUESTED", view.Status)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "police-check.pdf", view.Items[0].FileName)
}

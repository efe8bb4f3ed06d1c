// Package mocks provides testify mock implementations of the domain
// persistence contracts for service-level tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ndisaudit/domain/audit"
	"ndisaudit/domain/findings"
	"ndisaudit/domain/report"
)

// MockAuditRepository is a mock implementation of contracts.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) CreateAudit(ctx context.Context, a *audit.Audit) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAuditRepository) GetAudit(ctx context.Context, auditID int64) (*audit.Audit, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Audit), args.Error(1)
}

func (m *MockAuditRepository) SetScopeLocked(ctx context.Context, auditID int64, locked bool) error {
	args := m.Called(ctx, auditID, locked)
	return args.Error(0)
}

func (m *MockAuditRepository) UpdateExecutiveSummary(ctx context.Context, auditID int64, summary string) error {
	args := m.Called(ctx, auditID, summary)
	return args.Error(0)
}

func (m *MockAuditRepository) GetCompany(ctx context.Context, companyID int64) (*audit.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Company), args.Error(1)
}

func (m *MockAuditRepository) UpsertIndicatorResponse(ctx context.Context, response *audit.IndicatorResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockAuditRepository) ListIndicatorResponses(ctx context.Context, auditID int64) ([]*audit.IndicatorResponse, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.IndicatorResponse), args.Error(1)
}

func (m *MockAuditRepository) UpsertRegistrationGroupItem(ctx context.Context, item *audit.RegistrationGroupItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockAuditRepository) ListRegistrationGroupItems(ctx context.Context, auditID int64) ([]*audit.RegistrationGroupItem, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.RegistrationGroupItem), args.Error(1)
}

func (m *MockAuditRepository) UpsertConclusion(ctx context.Context, conclusion *audit.ConclusionData) error {
	args := m.Called(ctx, conclusion)
	return args.Error(0)
}

func (m *MockAuditRepository) GetConclusion(ctx context.Context, auditID int64) (*audit.ConclusionData, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.ConclusionData), args.Error(1)
}

// MockFindingRepository is a mock implementation of contracts.FindingRepository
type MockFindingRepository struct {
	mock.Mock
}

func (m *MockFindingRepository) Create(ctx context.Context, finding *findings.Finding) error {
	args := m.Called(ctx, finding)
	return args.Error(0)
}

func (m *MockFindingRepository) GetByID(ctx context.Context, findingID int64) (*findings.Finding, error) {
	args := m.Called(ctx, findingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*findings.Finding), args.Error(1)
}

func (m *MockFindingRepository) ListByAudit(ctx context.Context, auditID int64) ([]*findings.Finding, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*findings.Finding), args.Error(1)
}

func (m *MockFindingRepository) GetOpenForIndicator(ctx context.Context, auditID, templateIndicatorID int64) (*findings.Finding, error) {
	args := m.Called(ctx, auditID, templateIndicatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*findings.Finding), args.Error(1)
}

func (m *MockFindingRepository) UpdateStatus(ctx context.Context, finding *findings.Finding) error {
	args := m.Called(ctx, finding)
	return args.Error(0)
}

func (m *MockFindingRepository) AppendActivity(ctx context.Context, activity *findings.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockFindingRepository) ListActivities(ctx context.Context, findingID int64) ([]*findings.Activity, error) {
	args := m.Called(ctx, findingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*findings.Activity), args.Error(1)
}

func (m *MockFindingRepository) CreateEvidenceRequest(ctx context.Context, request *findings.EvidenceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockFindingRepository) GetEvidenceRequest(ctx context.Context, requestID int64) (*findings.EvidenceRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*findings.EvidenceRequest), args.Error(1)
}

func (m *MockFindingRepository) UpdateEvidenceRequestStatus(ctx context.Context, requestID int64, status findings.EvidenceStatus) error {
	args := m.Called(ctx, requestID, status)
	return args.Error(0)
}

func (m *MockFindingRepository) RecordEvidenceSubmission(ctx context.Context, item *findings.EvidenceItem, status findings.EvidenceStatus) error {
	args := m.Called(ctx, item, status)
	return args.Error(0)
}

func (m *MockFindingRepository) ListEvidenceRequests(ctx context.Context, findingID int64) ([]*findings.EvidenceRequest, error) {
	args := m.Called(ctx, findingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*findings.EvidenceRequest), args.Error(1)
}

// MockReportDataRepository is a mock implementation of contracts.ReportDataRepository
type MockReportDataRepository struct {
	mock.Mock
}

func (m *MockReportDataRepository) GetReportData(ctx context.Context, auditID int64) (*report.Data, error) {
	args := m.Called(ctx, auditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Data), args.Error(1)
}

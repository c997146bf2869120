package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
)

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FetchEntries(ctx context.Context, companyID string, start, end time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockDeclarationRepository is a mock type for the DeclarationRepository interface
type MockDeclarationRepository struct {
	mock.Mock
}

func (m *MockDeclarationRepository) InsertDeclaration(ctx context.Context, declaration domain.FiscalDeclaration) (string, error) {
	args := m.Called(ctx, declaration)
	return args.String(0), args.Error(1)
}

func (m *MockDeclarationRepository) FindDeclarationByID(ctx context.Context, declarationID string) (*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, declarationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockDeclarationRepository) ListDeclarations(ctx context.Context, companyID string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalDeclaration), args.Error(1)
}

func (m *MockDeclarationRepository) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	args := m.Called(ctx, declarationID, status, metadata)
	return args.Error(0)
}

// --- Test data helpers ---

func debitLine(account string, amount int64) domain.LedgerLine {
	return domain.LedgerLine{
		AccountNumber: account,
		Debit:         decimal.NewFromInt(amount),
		Credit:        decimal.Zero,
	}
}

func creditLine(account string, amount int64) domain.LedgerLine {
	return domain.LedgerLine{
		AccountNumber: account,
		Debit:         decimal.Zero,
		Credit:        decimal.NewFromInt(amount),
	}
}

func ledgerEntry(companyID string, date time.Time, lines ...domain.LedgerLine) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:   "entry-" + date.Format("20060102"),
		CompanyID: companyID,
		EntryDate: date,
		Lines:     lines,
	}
}

package services

import (
	"context"
	"time"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
)

// BalanceAggregator reduces ledger lines into per-account debit/credit/
// balance totals for a company and date range.
type BalanceAggregator interface {
	// Aggregate folds every matching ledger line into a balance map keyed by
	// account number. An empty accountNumbers slice means "all accounts".
	Aggregate(ctx context.Context, companyID string, accountNumbers []string, start, end time.Time) (map[string]domain.AccountBalance, error)
}

// StandardStrategy assembles legally mandated statements for one accounting
// standard. Each variant owns its country registry and its mapping from
// chart-of-accounts class ranges to statement sections; the mappings are not
// shared between standards.
type StandardStrategy interface {
	// Standard identifies the standard family this strategy implements.
	Standard() domain.Standard

	GenerateBalanceSheet(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error)
	GenerateIncomeStatement(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error)
	GenerateVATDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error)
	GenerateCorporateTaxDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error)

	// GetCountryConfig returns the country's reference data, if the country
	// uses this standard.
	GetCountryConfig(country string) (domain.CountryConfig, bool)

	// ListDeclarations lists a company's persisted declarations for a
	// country under this standard, most imminent due date first.
	ListDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error)

	// UpdateDeclarationStatus exposes the lifecycle transition contract the
	// engine does not drive autonomously.
	UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error
}

// FiscalFactorySvc resolves countries and standards to strategy instances,
// caching one instance per standard.
type FiscalFactorySvc interface {
	GetService(standard domain.Standard) (StandardStrategy, error)
	GetServiceForCountry(country string) (StandardStrategy, error)
	IsCountrySupported(country string) bool
	GetStandardForCountry(country string) (domain.Standard, bool)
	GetSupportedCountries() []string
	GetCountriesByStandard(standard domain.Standard) []string
	// ClearCache drops all cached strategy instances; the next GetService
	// call reconstructs them.
	ClearCache()
}

// FiscalSvcFacade is the engine's public surface: type dispatch, composite
// generation and declaration retrieval.
type FiscalSvcFacade interface {
	// GenerateFiscalDeclaration validates the period token, resolves the
	// country's strategy and dispatches to the generator matching kind.
	GenerateFiscalDeclaration(ctx context.Context, kind domain.DeclarationKind, companyID, period, country string) (*domain.FiscalDeclaration, error)

	// GenerateStatisticalBundle sequentially generates balance sheet, income
	// statement and a provisional cash-flow statement. The first failing
	// sub-generation aborts the bundle.
	GenerateStatisticalBundle(ctx context.Context, companyID, period, country string) ([]*domain.FiscalDeclaration, error)

	GetDeclaration(ctx context.Context, declarationID string) (*domain.FiscalDeclaration, error)
	ListCompanyDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error)
	UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portsrepo "github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/utils/classify"
	"github.com/shopspring/decimal"
)

// fiscalService is the engine's public facade: it validates the period token
// at the boundary, resolves the country's strategy through the factory and
// dispatches to the matching generator.
type fiscalService struct {
	BaseService
	factory    portssvc.FiscalFactorySvc
	aggregator portssvc.BalanceAggregator
	repos      portsrepo.RepositoryProvider
}

// NewFiscalService creates the facade service.
func NewFiscalService(factory portssvc.FiscalFactorySvc, repos portsrepo.RepositoryProvider) portssvc.FiscalSvcFacade {
	return &fiscalService{
		factory:    factory,
		aggregator: NewBalanceAggregator(repos.LedgerRepo),
		repos:      repos,
	}
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// GenerateFiscalDeclaration dispatches a generation request by declaration
// kind. Configuration errors (country, standard, type, period format) are
// raised before any aggregation work begins.
func (s *fiscalService) GenerateFiscalDeclaration(ctx context.Context, kind domain.DeclarationKind, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	if _, err := domain.ParsePeriod(period); err != nil {
		return nil, err
	}

	strategy, err := s.factory.GetServiceForCountry(country)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Generating fiscal declaration",
		slog.String("kind", string(kind)),
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("standard", string(strategy.Standard())))

	switch kind {
	case domain.KindBalanceSheet:
		return strategy.GenerateBalanceSheet(ctx, companyID, period, country)
	case domain.KindIncomeStatement:
		return strategy.GenerateIncomeStatement(ctx, companyID, period, country)
	case domain.KindVATReturn:
		return strategy.GenerateVATDeclaration(ctx, companyID, period, country)
	case domain.KindCorporateTaxReturn:
		return strategy.GenerateCorporateTaxDeclaration(ctx, companyID, period, country)
	case domain.KindCashFlow:
		return s.generateCashFlow(ctx, strategy, companyID, period, country)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedDeclarationType, kind)
	}
}

// CashFlowStatement is a provisional statement derived from the treasury
// class only. It stands in for a full cash-flow statement inside the
// statistical bundle until indirect-method support lands.
type CashFlowStatement struct {
	Currency            string          `json:"currency"`
	TreasuryInflows     decimal.Decimal `json:"treasuryInflows"`
	TreasuryOutflows    decimal.Decimal `json:"treasuryOutflows"`
	NetTreasuryMovement decimal.Decimal `json:"netTreasuryMovement"`
	Provisional         bool            `json:"provisional"`
}

func (s *fiscalService) generateCashFlow(ctx context.Context, strategy portssvc.StandardStrategy, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, ok := strategy.GetCountryConfig(country)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCountry, country)
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, nil, start, end)
	if err != nil {
		return nil, err
	}

	inflows := classify.SumByPrefix("5", balances, true)
	outflows := classify.SumByPrefix("5", balances, false)

	data := CashFlowStatement{
		Currency:            cfg.CurrencyCode,
		TreasuryInflows:     inflows,
		TreasuryOutflows:    outflows,
		NetTreasuryMovement: inflows.Sub(outflows),
		Provisional:         true,
	}

	validation := domain.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{}}
	warnings := []string{"cash-flow statement is provisional: derived from treasury movements only"}
	declaration := buildDeclaration(domain.KindCashFlow, strategy.Standard(), cfg, companyID, p, data, validation, warnings)
	return persistDeclaration(ctx, s.repos.DeclarationRepo, declaration)
}

// GenerateStatisticalBundle produces the annual statistical filing set:
// balance sheet, income statement and the provisional cash-flow statement,
// sequentially. The first failing sub-generation aborts the bundle; already
// persisted sub-results are left in place as independent declarations.
func (s *fiscalService) GenerateStatisticalBundle(ctx context.Context, companyID, period, country string) ([]*domain.FiscalDeclaration, error) {
	if _, err := domain.ParsePeriod(period); err != nil {
		return nil, err
	}
	strategy, err := s.factory.GetServiceForCountry(country)
	if err != nil {
		return nil, err
	}

	bundle := make([]*domain.FiscalDeclaration, 0, 3)

	balanceSheet, err := strategy.GenerateBalanceSheet(ctx, companyID, period, country)
	if err != nil {
		return nil, fmt.Errorf("statistical bundle aborted on balance sheet: %w", err)
	}
	bundle = append(bundle, balanceSheet)

	incomeStatement, err := strategy.GenerateIncomeStatement(ctx, companyID, period, country)
	if err != nil {
		return nil, fmt.Errorf("statistical bundle aborted on income statement: %w", err)
	}
	bundle = append(bundle, incomeStatement)

	cashFlow, err := s.generateCashFlow(ctx, strategy, companyID, period, country)
	if err != nil {
		return nil, fmt.Errorf("statistical bundle aborted on cash flow: %w", err)
	}
	bundle = append(bundle, cashFlow)

	s.LogInfo(ctx, "Statistical bundle generated",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.Int("declarations", len(bundle)))
	return bundle, nil
}

func (s *fiscalService) GetDeclaration(ctx context.Context, declarationID string) (*domain.FiscalDeclaration, error) {
	return s.repos.DeclarationRepo.FindDeclarationByID(ctx, declarationID)
}

// ListCompanyDeclarations delegates to the repository through the country's
// resolved strategy.
func (s *fiscalService) ListCompanyDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	strategy, err := s.factory.GetServiceForCountry(country)
	if err != nil {
		return nil, err
	}
	return strategy.ListDeclarations(ctx, companyID, country, filter)
}

// UpdateDeclarationStatus exposes the lifecycle transition contract. The
// engine validates the target status but does not police the workflow order;
// that belongs to the external filing actor.
func (s *fiscalService) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	switch status {
	case domain.StatusDraft, domain.StatusReady, domain.StatusFiled, domain.StatusAccepted, domain.StatusRejected:
	default:
		return fmt.Errorf("%w: unknown declaration status %q", apperrors.ErrValidation, status)
	}
	return s.repos.DeclarationRepo.UpdateDeclarationStatus(ctx, declarationID, status, metadata)
}

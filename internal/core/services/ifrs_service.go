package services

import (
	"context"
	"log/slog"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portsrepo "github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/utils/classify"
	"github.com/afrocompta/fiscal_engine/internal/utils/statements"
	"github.com/shopspring/decimal"
)

// ifrsService implements the IAS 1 statement layouts with an explicit
// current / non-current split by class digit. The IFRS-family charts in
// scope do not mandate sub-account granularity, so enumerations iterate
// three-digit codes.
type ifrsService struct {
	BaseService
	aggregator      portssvc.BalanceAggregator
	declarationRepo portsrepo.DeclarationRepository
	countries       map[string]domain.CountryConfig
}

// NewIFRSService creates the IFRS strategy with its country registry
// populated at construction.
func NewIFRSService(aggregator portssvc.BalanceAggregator, declarationRepo portsrepo.DeclarationRepository) portssvc.StandardStrategy {
	return &ifrsService{
		aggregator:      aggregator,
		declarationRepo: declarationRepo,
		countries:       ifrsCountryConfigs(),
	}
}

var _ portssvc.StandardStrategy = (*ifrsService)(nil)

func (s *ifrsService) Standard() domain.Standard {
	return domain.StandardIFRS
}

func (s *ifrsService) GetCountryConfig(country string) (domain.CountryConfig, bool) {
	cfg, ok := s.countries[country]
	return cfg, ok
}

// IFRSBalanceSheet is the statement of financial position: non-current and
// current assets against equity, non-current and current liabilities.
type IFRSBalanceSheet struct {
	Currency              string           `json:"currency"`
	NonCurrentAssets      StatementSection `json:"nonCurrentAssets"`
	CurrentAssets         StatementSection `json:"currentAssets"`
	TotalAssets           decimal.Decimal  `json:"totalAssets"`
	Equity                StatementSection `json:"equity"`
	NonCurrentLiabilities StatementSection `json:"nonCurrentLiabilities"`
	CurrentLiabilities    StatementSection `json:"currentLiabilities"`
	TotalEquityAndLiab    decimal.Decimal  `json:"totalEquityAndLiabilities"`
}

func (s *ifrsService) GenerateBalanceSheet(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(1, 5, 3), start, end)
	if err != nil {
		return nil, err
	}

	nonCurrentAssets := newSection("Non-current assets",
		StatementLine{Code: "20", Label: "Intangible assets", Amount: classify.ClassBalanceSigned("20", balances, true)},
		StatementLine{Code: "21-24", Label: "Property, plant and equipment", Amount: sumSigned(balances, true, "21", "22", "23", "24")},
		StatementLine{Code: "26-27", Label: "Non-current financial assets", Amount: sumSigned(balances, true, "26", "27")},
		StatementLine{Code: "28-29", Label: "Accumulated depreciation and impairment", Amount: sumSigned(balances, true, "28", "29")},
	)

	currentAssets := newSection("Current assets",
		StatementLine{Code: "3", Label: "Inventories", Amount: classify.ClassBalanceSigned("3", balances, true)},
		StatementLine{Code: "41", Label: "Trade receivables", Amount: classify.SumByPrefix("41", balances, true)},
		StatementLine{Code: "42-47", Label: "Other receivables", Amount: sumPrefixes(balances, true, "42", "43", "44", "45", "46", "47")},
		StatementLine{Code: "5", Label: "Cash and cash equivalents", Amount: classify.SumByPrefix("5", balances, true)},
	)

	equity := newSection("Equity",
		StatementLine{Code: "10", Label: "Share capital", Amount: classify.ClassBalanceSigned("10", balances, false)},
		StatementLine{Code: "11", Label: "Share premium and reserves", Amount: classify.ClassBalanceSigned("11", balances, false)},
		StatementLine{Code: "12", Label: "Retained earnings", Amount: classify.ClassBalanceSigned("12", balances, false)},
		StatementLine{Code: "13", Label: "Profit for the year", Amount: classify.ClassBalanceSigned("13", balances, false)},
		StatementLine{Code: "14", Label: "Other equity instruments", Amount: classify.ClassBalanceSigned("14", balances, false)},
	)

	nonCurrentLiabilities := newSection("Non-current liabilities",
		StatementLine{Code: "16", Label: "Borrowings", Amount: classify.ClassBalanceSigned("16", balances, false)},
		StatementLine{Code: "17", Label: "Lease liabilities", Amount: classify.ClassBalanceSigned("17", balances, false)},
		StatementLine{Code: "18-19", Label: "Provisions and deferred liabilities", Amount: sumSigned(balances, false, "18", "19")},
	)

	currentLiabilities := newSection("Current liabilities",
		StatementLine{Code: "40", Label: "Trade payables", Amount: classify.SumByPrefix("40", balances, false)},
		StatementLine{Code: "42-44", Label: "Current tax and social liabilities", Amount: sumPrefixes(balances, false, "42", "43", "44")},
		StatementLine{Code: "45-47", Label: "Other payables", Amount: sumPrefixes(balances, false, "45", "46", "47")},
		StatementLine{Code: "5", Label: "Bank overdrafts", Amount: classify.SumByPrefix("5", balances, false)},
	)

	sheet := IFRSBalanceSheet{
		Currency:              cfg.CurrencyCode,
		NonCurrentAssets:      nonCurrentAssets,
		CurrentAssets:         currentAssets,
		TotalAssets:           nonCurrentAssets.Total.Add(currentAssets.Total),
		Equity:                equity,
		NonCurrentLiabilities: nonCurrentLiabilities,
		CurrentLiabilities:    currentLiabilities,
	}
	sheet.TotalEquityAndLiab = equity.Total.Add(nonCurrentLiabilities.Total).Add(currentLiabilities.Total)

	liabilities := nonCurrentLiabilities.Total.Add(currentLiabilities.Total)
	validation := statements.ValidateBalanceEquation(sheet.TotalAssets, liabilities, equity.Total)

	declaration := buildDeclaration(domain.KindBalanceSheet, domain.StandardIFRS, cfg, companyID, p, sheet, validation, nil)
	s.LogInfo(ctx, "IFRS statement of financial position assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.Bool("balanced", validation.IsValid))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

// IFRSIncomeStatement is the statement of profit or loss, presented by
// function down to gross profit and by nature below it.
type IFRSIncomeStatement struct {
	Currency             string          `json:"currency"`
	Revenue              decimal.Decimal `json:"revenue"`
	CostOfSales          decimal.Decimal `json:"costOfSales"`
	GrossProfit          decimal.Decimal `json:"grossProfit"`
	OtherOperatingIncome decimal.Decimal `json:"otherOperatingIncome"`
	OperatingExpenses    StatementSection `json:"operatingExpenses"`
	OperatingProfit      decimal.Decimal `json:"operatingProfit"`
	FinanceIncome        decimal.Decimal `json:"financeIncome"`
	FinanceCosts         decimal.Decimal `json:"financeCosts"`
	ProfitBeforeTax      decimal.Decimal `json:"profitBeforeTax"`
	IncomeTaxExpense     decimal.Decimal `json:"incomeTaxExpense"`
	ProfitForTheYear     decimal.Decimal `json:"profitForTheYear"`
}

func (s *ifrsService) GenerateIncomeStatement(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(6, 7, 3), start, end)
	if err != nil {
		return nil, err
	}

	statement := s.assembleIncomeStatement(cfg, balances)

	totalRevenue := statement.Revenue.Add(statement.OtherOperatingIncome).Add(statement.FinanceIncome)
	totalExpense := statement.CostOfSales.Add(statement.OperatingExpenses.Total).Add(statement.FinanceCosts).Add(statement.IncomeTaxExpense)
	validation := statements.ValidateIncomeStatement(totalRevenue, totalExpense, statement.ProfitForTheYear)

	declaration := buildDeclaration(domain.KindIncomeStatement, domain.StandardIFRS, cfg, companyID, p, statement, validation, nil)
	s.LogInfo(ctx, "IFRS statement of profit or loss assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("profit_for_the_year", statement.ProfitForTheYear.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

func (s *ifrsService) assembleIncomeStatement(cfg domain.CountryConfig, balances map[string]domain.AccountBalance) IFRSIncomeStatement {
	operatingExpenses := newSection("Operating expenses",
		StatementLine{Code: "61", Label: "Distribution costs", Amount: classify.ClassBalanceSigned("61", balances, true)},
		StatementLine{Code: "62-63", Label: "Administrative expenses", Amount: sumSigned(balances, true, "62", "63")},
		StatementLine{Code: "64", Label: "Taxes other than income tax", Amount: classify.ClassBalanceSigned("64", balances, true)},
		StatementLine{Code: "65", Label: "Other operating expenses", Amount: classify.ClassBalanceSigned("65", balances, true)},
		StatementLine{Code: "66", Label: "Employee benefits expense", Amount: classify.ClassBalanceSigned("66", balances, true)},
		StatementLine{Code: "68", Label: "Depreciation and amortisation", Amount: classify.ClassBalanceSigned("68", balances, true)},
	)

	statement := IFRSIncomeStatement{
		Currency:             cfg.CurrencyCode,
		Revenue:              classify.ClassBalanceSigned("70", balances, false),
		CostOfSales:          classify.ClassBalanceSigned("60", balances, true),
		OtherOperatingIncome: sumSigned(balances, false, "71", "72", "73", "74", "75", "78", "79"),
		OperatingExpenses:    operatingExpenses,
		FinanceIncome:        classify.ClassBalanceSigned("77", balances, false),
		FinanceCosts:         classify.ClassBalanceSigned("67", balances, true),
		IncomeTaxExpense:     classify.ClassBalanceSigned("69", balances, true),
	}
	statement.GrossProfit = statement.Revenue.Sub(statement.CostOfSales)
	statement.OperatingProfit = statement.GrossProfit.Add(statement.OtherOperatingIncome).Sub(operatingExpenses.Total)
	statement.ProfitBeforeTax = statement.OperatingProfit.Add(statement.FinanceIncome).Sub(statement.FinanceCosts)
	statement.ProfitForTheYear = statement.ProfitBeforeTax.Sub(statement.IncomeTaxExpense)
	return statement
}

// IFRSVATReturn reports output VAT against input VAT on the three-digit 44x
// control accounts.
type IFRSVATReturn struct {
	Currency      string          `json:"currency"`
	StandardRate  decimal.Decimal `json:"standardRate"`
	VATCollected  decimal.Decimal `json:"vatCollected"`
	VATDeductible decimal.Decimal `json:"vatDeductible"`
	NetVAT        decimal.Decimal `json:"netVAT"`
	VATPayable    decimal.Decimal `json:"vatPayable"`
	VATRefund     decimal.Decimal `json:"vatRefund"`
	TaxAuthority  string          `json:"taxAuthority"`
}

// ifrsVATAccounts are three-digit control accounts: 443 output VAT, 445
// input VAT.
var ifrsVATAccounts = []string{"443", "445"}

func (s *ifrsService) GenerateVATDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, ifrsVATAccounts, start, end)
	if err != nil {
		return nil, err
	}

	collected := classify.SumByPrefix("443", balances, false)
	deductible := classify.SumByPrefix("445", balances, true)
	position, warnings := computeVATPosition(collected, deductible)

	data := IFRSVATReturn{
		Currency:      cfg.CurrencyCode,
		StandardRate:  cfg.VATStandardRate,
		VATCollected:  collected,
		VATDeductible: deductible,
		NetVAT:        position.Net,
		VATPayable:    position.Payable,
		VATRefund:     position.Refund,
		TaxAuthority:  cfg.TaxAuthorityName,
	}

	validation := domain.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{}}
	declaration := buildDeclaration(domain.KindVATReturn, domain.StandardIFRS, cfg, companyID, p, data, validation, warnings)
	s.LogInfo(ctx, "IFRS VAT return assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("net_vat", position.Net.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

// IFRSCorporateTaxReturn is the company income tax computation.
type IFRSCorporateTaxReturn struct {
	Currency      string          `json:"currency"`
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	CorporateTax  decimal.Decimal `json:"corporateTax"`
	TaxAuthority  string          `json:"taxAuthority"`
}

func (s *ifrsService) GenerateCorporateTaxDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(6, 7, 3), start, end)
	if err != nil {
		return nil, err
	}

	statement := s.assembleIncomeStatement(cfg, balances)
	taxableIncome := statement.ProfitBeforeTax
	tax, warnings := computeCorporateTax(taxableIncome, cfg.CorporateTaxRate)

	data := IFRSCorporateTaxReturn{
		Currency:      cfg.CurrencyCode,
		TaxableIncome: taxableIncome,
		TaxRate:       cfg.CorporateTaxRate,
		CorporateTax:  tax,
		TaxAuthority:  cfg.TaxAuthorityName,
	}

	validation := domain.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{}}
	declaration := buildDeclaration(domain.KindCorporateTaxReturn, domain.StandardIFRS, cfg, companyID, p, data, validation, warnings)
	s.LogInfo(ctx, "IFRS corporate tax return assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("corporate_tax", tax.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

func (s *ifrsService) ListDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	if _, err := resolveCountry(s.countries, country); err != nil {
		return nil, err
	}
	filter.Country = country
	return s.declarationRepo.ListDeclarations(ctx, companyID, filter)
}

func (s *ifrsService) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	return s.declarationRepo.UpdateDeclarationStatus(ctx, declarationID, status, metadata)
}

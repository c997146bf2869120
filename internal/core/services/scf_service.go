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

// scfService implements the SCF (Système Comptable Financier) and PCM
// layouts used in the Maghreb. The income statement is presented through the
// soldes intermédiaires de gestion cascade. Like SYSCOHADA the charts book
// at four-digit granularity, but the class semantics differ: 63 is
// personnel, 66 is finance costs and 76 finance income.
type scfService struct {
	BaseService
	aggregator      portssvc.BalanceAggregator
	declarationRepo portsrepo.DeclarationRepository
	countries       map[string]domain.CountryConfig
}

// NewSCFService creates the SCF/PCM strategy with its country registry
// populated at construction.
func NewSCFService(aggregator portssvc.BalanceAggregator, declarationRepo portsrepo.DeclarationRepository) portssvc.StandardStrategy {
	return &scfService{
		aggregator:      aggregator,
		declarationRepo: declarationRepo,
		countries:       scfCountryConfigs(),
	}
}

var _ portssvc.StandardStrategy = (*scfService)(nil)

func (s *scfService) Standard() domain.Standard {
	return domain.StandardSCF
}

func (s *scfService) GetCountryConfig(country string) (domain.CountryConfig, bool) {
	cfg, ok := s.countries[country]
	return cfg, ok
}

// SCFBalanceSheet separates courant from non courant with the SCF class
// boundaries: 15-17 carry the non-current debts, unlike IFRS's 16-19.
type SCFBalanceSheet struct {
	Currency           string           `json:"currency"`
	ActifNonCourant    StatementSection `json:"actifNonCourant"`
	ActifCourant       StatementSection `json:"actifCourant"`
	TotalActif         decimal.Decimal  `json:"totalActif"`
	CapitauxPropres    StatementSection `json:"capitauxPropres"`
	PassifsNonCourants StatementSection `json:"passifsNonCourants"`
	PassifsCourants    StatementSection `json:"passifsCourants"`
	TotalPassif        decimal.Decimal  `json:"totalPassif"`
}

func (s *scfService) GenerateBalanceSheet(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(1, 5, 4), start, end)
	if err != nil {
		return nil, err
	}

	actifNonCourant := newSection("Actif non courant",
		StatementLine{Code: "20", Label: "Immobilisations incorporelles", Amount: classify.ClassBalanceSigned("20", balances, true)},
		StatementLine{Code: "21-23", Label: "Immobilisations corporelles", Amount: sumSigned(balances, true, "21", "22", "23")},
		StatementLine{Code: "26-27", Label: "Immobilisations financières", Amount: sumSigned(balances, true, "26", "27")},
		StatementLine{Code: "28-29", Label: "Amortissements et pertes de valeur", Amount: sumSigned(balances, true, "28", "29")},
	)

	actifCourant := newSection("Actif courant",
		StatementLine{Code: "3", Label: "Stocks et encours", Amount: classify.ClassBalanceSigned("3", balances, true)},
		StatementLine{Code: "41", Label: "Clients", Amount: classify.SumByPrefix("41", balances, true)},
		StatementLine{Code: "42-47", Label: "Autres débiteurs", Amount: sumPrefixes(balances, true, "42", "43", "44", "45", "46", "47")},
		StatementLine{Code: "5", Label: "Disponibilités et assimilés", Amount: classify.SumByPrefix("5", balances, true)},
	)

	capitauxPropres := newSection("Capitaux propres",
		StatementLine{Code: "10", Label: "Capital émis", Amount: classify.ClassBalanceSigned("10", balances, false)},
		StatementLine{Code: "11", Label: "Primes et réserves", Amount: classify.ClassBalanceSigned("11", balances, false)},
		StatementLine{Code: "12", Label: "Résultat net", Amount: classify.ClassBalanceSigned("12", balances, false)},
		StatementLine{Code: "13-14", Label: "Autres capitaux propres", Amount: sumSigned(balances, false, "13", "14")},
	)

	passifsNonCourants := newSection("Passifs non courants",
		StatementLine{Code: "15", Label: "Provisions et produits constatés d'avance", Amount: classify.ClassBalanceSigned("15", balances, false)},
		StatementLine{Code: "16", Label: "Emprunts et dettes financières", Amount: classify.ClassBalanceSigned("16", balances, false)},
		StatementLine{Code: "17", Label: "Dettes rattachées à des participations", Amount: classify.ClassBalanceSigned("17", balances, false)},
	)

	passifsCourants := newSection("Passifs courants",
		StatementLine{Code: "40", Label: "Fournisseurs et comptes rattachés", Amount: classify.SumByPrefix("40", balances, false)},
		StatementLine{Code: "42-44", Label: "Impôts et dettes sociales", Amount: sumPrefixes(balances, false, "42", "43", "44")},
		StatementLine{Code: "45-47", Label: "Autres dettes", Amount: sumPrefixes(balances, false, "45", "46", "47")},
		StatementLine{Code: "5", Label: "Trésorerie passif", Amount: classify.SumByPrefix("5", balances, false)},
	)

	sheet := SCFBalanceSheet{
		Currency:           cfg.CurrencyCode,
		ActifNonCourant:    actifNonCourant,
		ActifCourant:       actifCourant,
		TotalActif:         actifNonCourant.Total.Add(actifCourant.Total),
		CapitauxPropres:    capitauxPropres,
		PassifsNonCourants: passifsNonCourants,
		PassifsCourants:    passifsCourants,
	}
	sheet.TotalPassif = capitauxPropres.Total.Add(passifsNonCourants.Total).Add(passifsCourants.Total)

	liabilities := passifsNonCourants.Total.Add(passifsCourants.Total)
	validation := statements.ValidateBalanceEquation(sheet.TotalActif, liabilities, capitauxPropres.Total)

	declaration := buildDeclaration(domain.KindBalanceSheet, domain.StandardSCF, cfg, companyID, p, sheet, validation, nil)
	s.LogInfo(ctx, "SCF bilan assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.Bool("balanced", validation.IsValid))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

// SCFIncomeStatement is the compte de résultat par nature with the soldes
// intermédiaires de gestion: production, valeur ajoutée, excédent brut
// d'exploitation, then the operating, financial and pre-tax results.
type SCFIncomeStatement struct {
	Currency                     string          `json:"currency"`
	ProductionExercice           decimal.Decimal `json:"productionExercice"`
	ConsommationsExercice        decimal.Decimal `json:"consommationsExercice"`
	ValeurAjoutee                decimal.Decimal `json:"valeurAjoutee"`
	ChargesPersonnel             decimal.Decimal `json:"chargesPersonnel"`
	ImpotsTaxes                  decimal.Decimal `json:"impotsTaxes"`
	ExcedentBrutExploitation     decimal.Decimal `json:"excedentBrutExploitation"`
	AutresProduitsOperationnels  decimal.Decimal `json:"autresProduitsOperationnels"`
	AutresChargesOperationnelles decimal.Decimal `json:"autresChargesOperationnelles"`
	DotationsAmortissements      decimal.Decimal `json:"dotationsAmortissements"`
	ReprisesProvisions           decimal.Decimal `json:"reprisesProvisions"`
	ResultatOperationnel         decimal.Decimal `json:"resultatOperationnel"`
	ProduitsFinanciers           decimal.Decimal `json:"produitsFinanciers"`
	ChargesFinancieres           decimal.Decimal `json:"chargesFinancieres"`
	ResultatFinancier            decimal.Decimal `json:"resultatFinancier"`
	ResultatAvantImpots          decimal.Decimal `json:"resultatAvantImpots"`
	ImpotsSurResultats           decimal.Decimal `json:"impotsSurResultats"`
	ResultatNet                  decimal.Decimal `json:"resultatNet"`
}

func (s *scfService) GenerateIncomeStatement(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(6, 7, 4), start, end)
	if err != nil {
		return nil, err
	}

	statement := s.assembleIncomeStatement(cfg, balances)

	totalRevenue := statement.ProductionExercice.Add(statement.AutresProduitsOperationnels).Add(statement.ReprisesProvisions).Add(statement.ProduitsFinanciers)
	totalExpense := statement.ConsommationsExercice.Add(statement.ChargesPersonnel).Add(statement.ImpotsTaxes).
		Add(statement.AutresChargesOperationnelles).Add(statement.DotationsAmortissements).
		Add(statement.ChargesFinancieres).Add(statement.ImpotsSurResultats)
	validation := statements.ValidateIncomeStatement(totalRevenue, totalExpense, statement.ResultatNet)

	declaration := buildDeclaration(domain.KindIncomeStatement, domain.StandardSCF, cfg, companyID, p, statement, validation, nil)
	s.LogInfo(ctx, "SCF compte de résultat assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("resultat_net", statement.ResultatNet.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

func (s *scfService) assembleIncomeStatement(cfg domain.CountryConfig, balances map[string]domain.AccountBalance) SCFIncomeStatement {
	statement := SCFIncomeStatement{
		Currency:                     cfg.CurrencyCode,
		ProductionExercice:           sumSigned(balances, false, "70", "72", "73", "74"),
		ConsommationsExercice:        sumSigned(balances, true, "60", "61", "62"),
		ChargesPersonnel:             classify.ClassBalanceSigned("63", balances, true),
		ImpotsTaxes:                  classify.ClassBalanceSigned("64", balances, true),
		AutresProduitsOperationnels:  classify.ClassBalanceSigned("75", balances, false),
		AutresChargesOperationnelles: classify.ClassBalanceSigned("65", balances, true),
		DotationsAmortissements:      classify.ClassBalanceSigned("68", balances, true),
		ReprisesProvisions:           classify.ClassBalanceSigned("78", balances, false),
		ProduitsFinanciers:           classify.ClassBalanceSigned("76", balances, false),
		ChargesFinancieres:           classify.ClassBalanceSigned("66", balances, true),
		ImpotsSurResultats:           classify.ClassBalanceSigned("69", balances, true),
	}
	statement.ValeurAjoutee = statement.ProductionExercice.Sub(statement.ConsommationsExercice)
	statement.ExcedentBrutExploitation = statement.ValeurAjoutee.Sub(statement.ChargesPersonnel).Sub(statement.ImpotsTaxes)
	statement.ResultatOperationnel = statement.ExcedentBrutExploitation.
		Add(statement.AutresProduitsOperationnels).
		Add(statement.ReprisesProvisions).
		Sub(statement.AutresChargesOperationnelles).
		Sub(statement.DotationsAmortissements)
	statement.ResultatFinancier = statement.ProduitsFinanciers.Sub(statement.ChargesFinancieres)
	statement.ResultatAvantImpots = statement.ResultatOperationnel.Add(statement.ResultatFinancier)
	statement.ResultatNet = statement.ResultatAvantImpots.Sub(statement.ImpotsSurResultats)
	return statement
}

// SCFVATReturn is the G50-style monthly TVA declaration on the 4456/4457
// control accounts inherited from the French plan.
type SCFVATReturn struct {
	Currency      string          `json:"currency"`
	StandardRate  decimal.Decimal `json:"standardRate"`
	VATCollected  decimal.Decimal `json:"vatCollected"`
	VATDeductible decimal.Decimal `json:"vatDeductible"`
	NetVAT        decimal.Decimal `json:"netVAT"`
	VATPayable    decimal.Decimal `json:"vatPayable"`
	VATRefund     decimal.Decimal `json:"vatRefund"`
	TaxAuthority  string          `json:"taxAuthority"`
}

// scfVATAccounts: 4457 TVA collectée, 4456 TVA déductible.
var scfVATAccounts = []string{"4456", "4457"}

func (s *scfService) GenerateVATDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, scfVATAccounts, start, end)
	if err != nil {
		return nil, err
	}

	collected := classify.SumByExactAccounts([]string{"4457"}, balances, false)
	deductible := classify.SumByExactAccounts([]string{"4456"}, balances, true)
	position, warnings := computeVATPosition(collected, deductible)

	data := SCFVATReturn{
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
	declaration := buildDeclaration(domain.KindVATReturn, domain.StandardSCF, cfg, companyID, p, data, validation, warnings)
	s.LogInfo(ctx, "SCF VAT declaration assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("net_vat", position.Net.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

// SCFCorporateTaxReturn is the IBS (impôt sur les bénéfices des sociétés)
// computation.
type SCFCorporateTaxReturn struct {
	Currency      string          `json:"currency"`
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	CorporateTax  decimal.Decimal `json:"corporateTax"`
	TaxAuthority  string          `json:"taxAuthority"`
}

func (s *scfService) GenerateCorporateTaxDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(6, 7, 4), start, end)
	if err != nil {
		return nil, err
	}

	statement := s.assembleIncomeStatement(cfg, balances)
	taxableIncome := statement.ResultatAvantImpots
	tax, warnings := computeCorporateTax(taxableIncome, cfg.CorporateTaxRate)

	data := SCFCorporateTaxReturn{
		Currency:      cfg.CurrencyCode,
		TaxableIncome: taxableIncome,
		TaxRate:       cfg.CorporateTaxRate,
		CorporateTax:  tax,
		TaxAuthority:  cfg.TaxAuthorityName,
	}

	validation := domain.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{}}
	declaration := buildDeclaration(domain.KindCorporateTaxReturn, domain.StandardSCF, cfg, companyID, p, data, validation, warnings)
	s.LogInfo(ctx, "SCF corporate tax declaration assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("corporate_tax", tax.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

func (s *scfService) ListDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	if _, err := resolveCountry(s.countries, country); err != nil {
		return nil, err
	}
	filter.Country = country
	return s.declarationRepo.ListDeclarations(ctx, companyID, filter)
}

func (s *scfService) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	return s.declarationRepo.UpdateDeclarationStatus(ctx, declarationID, status, metadata)
}

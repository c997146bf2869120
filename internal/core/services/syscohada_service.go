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

// syscohadaService implements the SYSCOHADA (OHADA revised chart) statement
// layouts. SYSCOHADA charts book at four-digit granularity, so every
// enumeration fed to the aggregator iterates four-digit codes.
type syscohadaService struct {
	BaseService
	aggregator      portssvc.BalanceAggregator
	declarationRepo portsrepo.DeclarationRepository
	countries       map[string]domain.CountryConfig
}

// NewSYSCOHADAService creates the SYSCOHADA strategy with its country
// registry populated at construction.
func NewSYSCOHADAService(aggregator portssvc.BalanceAggregator, declarationRepo portsrepo.DeclarationRepository) portssvc.StandardStrategy {
	return &syscohadaService{
		aggregator:      aggregator,
		declarationRepo: declarationRepo,
		countries:       syscohadaCountryConfigs(),
	}
}

var _ portssvc.StandardStrategy = (*syscohadaService)(nil)

func (s *syscohadaService) Standard() domain.Standard {
	return domain.StandardSYSCOHADA
}

func (s *syscohadaService) GetCountryConfig(country string) (domain.CountryConfig, bool) {
	cfg, ok := s.countries[country]
	return cfg, ok
}

// SyscohadaBalanceSheet is the bilan mandated by the revised SYSCOHADA:
// actif immobilisé / circulant / trésorerie against capitaux propres,
// dettes financières, passif circulant and trésorerie-passif.
type SyscohadaBalanceSheet struct {
	Currency          string           `json:"currency"`
	ActifImmobilise   StatementSection `json:"actifImmobilise"`
	ActifCirculant    StatementSection `json:"actifCirculant"`
	TresorerieActif   StatementSection `json:"tresorerieActif"`
	TotalActif        decimal.Decimal  `json:"totalActif"`
	CapitauxPropres   StatementSection `json:"capitauxPropres"`
	DettesFinancieres StatementSection `json:"dettesFinancieres"`
	PassifCirculant   StatementSection `json:"passifCirculant"`
	TresoreriePassif  StatementSection `json:"tresoreriePassif"`
	TotalPassif       decimal.Decimal  `json:"totalPassif"`
}

func (s *syscohadaService) GenerateBalanceSheet(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
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

	actifImmobilise := newSection("Actif immobilisé",
		StatementLine{Code: "20", Label: "Charges immobilisées", Amount: classify.ClassBalanceSigned("20", balances, true)},
		StatementLine{Code: "21", Label: "Immobilisations incorporelles", Amount: classify.ClassBalanceSigned("21", balances, true)},
		StatementLine{Code: "22", Label: "Terrains", Amount: classify.ClassBalanceSigned("22", balances, true)},
		StatementLine{Code: "23", Label: "Bâtiments et installations", Amount: classify.ClassBalanceSigned("23", balances, true)},
		StatementLine{Code: "24", Label: "Matériel, mobilier et actifs biologiques", Amount: classify.ClassBalanceSigned("24", balances, true)},
		StatementLine{Code: "25", Label: "Avances et acomptes sur immobilisations", Amount: classify.ClassBalanceSigned("25", balances, true)},
		StatementLine{Code: "26", Label: "Titres de participation", Amount: classify.ClassBalanceSigned("26", balances, true)},
		StatementLine{Code: "27", Label: "Autres immobilisations financières", Amount: classify.ClassBalanceSigned("27", balances, true)},
		StatementLine{Code: "28", Label: "Amortissements", Amount: classify.ClassBalanceSigned("28", balances, true)},
		StatementLine{Code: "29", Label: "Provisions pour dépréciation", Amount: classify.ClassBalanceSigned("29", balances, true)},
	)

	actifCirculant := newSection("Actif circulant",
		StatementLine{Code: "3", Label: "Stocks et en-cours", Amount: classify.ClassBalanceSigned("3", balances, true)},
		StatementLine{Code: "41", Label: "Clients et comptes rattachés", Amount: classify.SumByPrefix("41", balances, true)},
		StatementLine{Code: "42-47", Label: "Autres créances", Amount: sumPrefixes(balances, true, "42", "43", "44", "45", "46", "47")},
	)

	tresorerieActif := newSection("Trésorerie - Actif",
		StatementLine{Code: "50", Label: "Titres de placement", Amount: classify.SumByPrefix("50", balances, true)},
		StatementLine{Code: "51", Label: "Valeurs à encaisser", Amount: classify.SumByPrefix("51", balances, true)},
		StatementLine{Code: "52-58", Label: "Banques, établissements financiers et caisse", Amount: sumPrefixes(balances, true, "52", "53", "54", "55", "56", "57", "58")},
		StatementLine{Code: "59", Label: "Dépréciations des comptes de trésorerie", Amount: classify.ClassBalanceSigned("59", balances, true)},
	)

	capitauxPropres := newSection("Capitaux propres et ressources assimilées",
		StatementLine{Code: "10", Label: "Capital", Amount: classify.ClassBalanceSigned("10", balances, false)},
		StatementLine{Code: "11", Label: "Réserves", Amount: classify.ClassBalanceSigned("11", balances, false)},
		StatementLine{Code: "12", Label: "Report à nouveau", Amount: classify.ClassBalanceSigned("12", balances, false)},
		StatementLine{Code: "13", Label: "Résultat net de l'exercice", Amount: classify.ClassBalanceSigned("13", balances, false)},
		StatementLine{Code: "14", Label: "Subventions d'investissement", Amount: classify.ClassBalanceSigned("14", balances, false)},
		StatementLine{Code: "15", Label: "Provisions réglementées", Amount: classify.ClassBalanceSigned("15", balances, false)},
	)

	dettesFinancieres := newSection("Dettes financières et ressources assimilées",
		StatementLine{Code: "16", Label: "Emprunts et dettes assimilées", Amount: classify.ClassBalanceSigned("16", balances, false)},
		StatementLine{Code: "17", Label: "Dettes de crédit-bail", Amount: classify.ClassBalanceSigned("17", balances, false)},
		StatementLine{Code: "18", Label: "Dettes liées à des participations", Amount: classify.ClassBalanceSigned("18", balances, false)},
		StatementLine{Code: "19", Label: "Provisions pour risques et charges", Amount: classify.ClassBalanceSigned("19", balances, false)},
	)

	passifCirculant := newSection("Passif circulant",
		StatementLine{Code: "40", Label: "Fournisseurs et comptes rattachés", Amount: classify.SumByPrefix("40", balances, false)},
		StatementLine{Code: "42-44", Label: "Dettes fiscales et sociales", Amount: sumPrefixes(balances, false, "42", "43", "44")},
		StatementLine{Code: "45-47", Label: "Autres dettes", Amount: sumPrefixes(balances, false, "45", "46", "47")},
	)

	tresoreriePassif := newSection("Trésorerie - Passif",
		StatementLine{Code: "52", Label: "Banques, découverts", Amount: classify.SumByPrefix("52", balances, false)},
		StatementLine{Code: "53-58", Label: "Crédits de trésorerie et d'escompte", Amount: sumPrefixes(balances, false, "53", "54", "55", "56", "57", "58")},
	)

	sheet := SyscohadaBalanceSheet{
		Currency:          cfg.CurrencyCode,
		ActifImmobilise:   actifImmobilise,
		ActifCirculant:    actifCirculant,
		TresorerieActif:   tresorerieActif,
		TotalActif:        actifImmobilise.Total.Add(actifCirculant.Total).Add(tresorerieActif.Total),
		CapitauxPropres:   capitauxPropres,
		DettesFinancieres: dettesFinancieres,
		PassifCirculant:   passifCirculant,
		TresoreriePassif:  tresoreriePassif,
	}
	sheet.TotalPassif = capitauxPropres.Total.Add(dettesFinancieres.Total).Add(passifCirculant.Total).Add(tresoreriePassif.Total)

	liabilities := dettesFinancieres.Total.Add(passifCirculant.Total).Add(tresoreriePassif.Total)
	validation := statements.ValidateBalanceEquation(sheet.TotalActif, liabilities, capitauxPropres.Total)

	declaration := buildDeclaration(domain.KindBalanceSheet, domain.StandardSYSCOHADA, cfg, companyID, p, sheet, validation, nil)
	s.LogInfo(ctx, "SYSCOHADA balance sheet assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.Bool("balanced", validation.IsValid))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

// SyscohadaIncomeStatement is the compte de résultat: operating, financial
// and HAO (hors activités ordinaires) results cascade into the net result.
type SyscohadaIncomeStatement struct {
	Currency                    string           `json:"currency"`
	ProduitsExploitation        StatementSection `json:"produitsExploitation"`
	ChargesExploitation         StatementSection `json:"chargesExploitation"`
	ResultatExploitation        decimal.Decimal  `json:"resultatExploitation"`
	ProduitsFinanciers          decimal.Decimal  `json:"produitsFinanciers"`
	ChargesFinancieres          decimal.Decimal  `json:"chargesFinancieres"`
	ResultatFinancier           decimal.Decimal  `json:"resultatFinancier"`
	ResultatActivitesOrdinaires decimal.Decimal  `json:"resultatActivitesOrdinaires"`
	ProduitsHAO                 decimal.Decimal  `json:"produitsHAO"`
	ChargesHAO                  decimal.Decimal  `json:"chargesHAO"`
	ResultatHAO                 decimal.Decimal  `json:"resultatHAO"`
	ImpotsSurResultat           decimal.Decimal  `json:"impotsSurResultat"`
	ResultatNet                 decimal.Decimal  `json:"resultatNet"`
}

func (s *syscohadaService) GenerateIncomeStatement(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(6, 8, 4), start, end)
	if err != nil {
		return nil, err
	}

	statement := s.assembleIncomeStatement(cfg, balances)

	totalRevenue := statement.ProduitsExploitation.Total.Add(statement.ProduitsFinanciers).Add(statement.ProduitsHAO)
	totalExpense := statement.ChargesExploitation.Total.Add(statement.ChargesFinancieres).Add(statement.ChargesHAO).Add(statement.ImpotsSurResultat)
	validation := statements.ValidateIncomeStatement(totalRevenue, totalExpense, statement.ResultatNet)

	declaration := buildDeclaration(domain.KindIncomeStatement, domain.StandardSYSCOHADA, cfg, companyID, p, statement, validation, nil)
	s.LogInfo(ctx, "SYSCOHADA income statement assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("resultat_net", statement.ResultatNet.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

// assembleIncomeStatement rolls classified class 6-8 balances into the
// SYSCOHADA result cascade. Shared by the income statement and the corporate
// tax return, which taxes the pre-tax result of the same cascade.
func (s *syscohadaService) assembleIncomeStatement(cfg domain.CountryConfig, balances map[string]domain.AccountBalance) SyscohadaIncomeStatement {
	produitsExploitation := newSection("Produits des activités ordinaires",
		StatementLine{Code: "70", Label: "Ventes", Amount: classify.ClassBalanceSigned("70", balances, false)},
		StatementLine{Code: "71", Label: "Subventions d'exploitation", Amount: classify.ClassBalanceSigned("71", balances, false)},
		StatementLine{Code: "72", Label: "Production immobilisée", Amount: classify.ClassBalanceSigned("72", balances, false)},
		StatementLine{Code: "73", Label: "Variations de stocks de produits", Amount: classify.ClassBalanceSigned("73", balances, false)},
		StatementLine{Code: "75", Label: "Autres produits", Amount: classify.ClassBalanceSigned("75", balances, false)},
		StatementLine{Code: "78", Label: "Transferts de charges", Amount: classify.ClassBalanceSigned("78", balances, false)},
		StatementLine{Code: "79", Label: "Reprises de provisions", Amount: classify.ClassBalanceSigned("79", balances, false)},
	)

	chargesExploitation := newSection("Charges des activités ordinaires",
		StatementLine{Code: "60", Label: "Achats et variations de stocks", Amount: classify.ClassBalanceSigned("60", balances, true)},
		StatementLine{Code: "61", Label: "Transports", Amount: classify.ClassBalanceSigned("61", balances, true)},
		StatementLine{Code: "62", Label: "Services extérieurs A", Amount: classify.ClassBalanceSigned("62", balances, true)},
		StatementLine{Code: "63", Label: "Services extérieurs B", Amount: classify.ClassBalanceSigned("63", balances, true)},
		StatementLine{Code: "64", Label: "Impôts et taxes", Amount: classify.ClassBalanceSigned("64", balances, true)},
		StatementLine{Code: "65", Label: "Autres charges", Amount: classify.ClassBalanceSigned("65", balances, true)},
		StatementLine{Code: "66", Label: "Charges de personnel", Amount: classify.ClassBalanceSigned("66", balances, true)},
		StatementLine{Code: "68", Label: "Dotations aux amortissements", Amount: classify.ClassBalanceSigned("68", balances, true)},
		StatementLine{Code: "69", Label: "Dotations aux provisions", Amount: classify.ClassBalanceSigned("69", balances, true)},
	)

	statement := SyscohadaIncomeStatement{
		Currency:             cfg.CurrencyCode,
		ProduitsExploitation: produitsExploitation,
		ChargesExploitation:  chargesExploitation,
		ProduitsFinanciers:   classify.ClassBalanceSigned("77", balances, false),
		ChargesFinancieres:   classify.ClassBalanceSigned("67", balances, true),
		ProduitsHAO:          sumSigned(balances, false, "82", "84", "86", "88"),
		ChargesHAO:           sumSigned(balances, true, "81", "83", "85"),
		ImpotsSurResultat:    classify.ClassBalanceSigned("89", balances, true),
	}
	statement.ResultatExploitation = produitsExploitation.Total.Sub(chargesExploitation.Total)
	statement.ResultatFinancier = statement.ProduitsFinanciers.Sub(statement.ChargesFinancieres)
	statement.ResultatActivitesOrdinaires = statement.ResultatExploitation.Add(statement.ResultatFinancier)
	statement.ResultatHAO = statement.ProduitsHAO.Sub(statement.ChargesHAO)
	statement.ResultatNet = statement.ResultatActivitesOrdinaires.Add(statement.ResultatHAO).Sub(statement.ImpotsSurResultat)
	return statement
}

// SyscohadaVATReturn is the monthly TVA declaration: collected output VAT
// against deductible input VAT on the 443x/445x control accounts.
type SyscohadaVATReturn struct {
	Currency      string          `json:"currency"`
	StandardRate  decimal.Decimal `json:"standardRate"`
	VATCollected  decimal.Decimal `json:"vatCollected"`
	VATDeductible decimal.Decimal `json:"vatDeductible"`
	NetVAT        decimal.Decimal `json:"netVAT"`
	VATPayable    decimal.Decimal `json:"vatPayable"`
	VATRefund     decimal.Decimal `json:"vatRefund"`
	TaxAuthority  string          `json:"taxAuthority"`
}

// syscohadaVATAccounts are the four-digit TVA control accounts of the OHADA
// chart: 443x TVA facturée, 445x TVA récupérable.
var syscohadaVATAccounts = []string{
	"4431", "4432", "4433", "4434",
	"4451", "4452", "4453", "4454", "4455", "4456",
}

func (s *syscohadaService) GenerateVATDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, syscohadaVATAccounts, start, end)
	if err != nil {
		return nil, err
	}

	// TVA facturée sits on the credit side of the 443x liability accounts;
	// TVA récupérable on the debit side of 445x.
	collected := classify.SumByPrefix("443", balances, false)
	deductible := classify.SumByPrefix("445", balances, true)
	position, warnings := computeVATPosition(collected, deductible)

	data := SyscohadaVATReturn{
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
	declaration := buildDeclaration(domain.KindVATReturn, domain.StandardSYSCOHADA, cfg, companyID, p, data, validation, warnings)
	s.LogInfo(ctx, "SYSCOHADA VAT declaration assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("net_vat", position.Net.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

// SyscohadaCorporateTaxReturn is the impôt sur les sociétés declaration.
type SyscohadaCorporateTaxReturn struct {
	Currency      string          `json:"currency"`
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	CorporateTax  decimal.Decimal `json:"corporateTax"`
	TaxAuthority  string          `json:"taxAuthority"`
}

func (s *syscohadaService) GenerateCorporateTaxDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	cfg, err := resolveCountry(s.countries, country)
	if err != nil {
		return nil, err
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	start, end := p.Window()
	balances, err := s.aggregator.Aggregate(ctx, companyID, enumerateClassAccounts(6, 8, 4), start, end)
	if err != nil {
		return nil, err
	}

	// Taxable income is the pre-tax result of the ordinary and HAO cascade.
	statement := s.assembleIncomeStatement(cfg, balances)
	taxableIncome := statement.ResultatActivitesOrdinaires.Add(statement.ResultatHAO)
	tax, warnings := computeCorporateTax(taxableIncome, cfg.CorporateTaxRate)

	data := SyscohadaCorporateTaxReturn{
		Currency:      cfg.CurrencyCode,
		TaxableIncome: taxableIncome,
		TaxRate:       cfg.CorporateTaxRate,
		CorporateTax:  tax,
		TaxAuthority:  cfg.TaxAuthorityName,
	}

	validation := domain.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{}}
	declaration := buildDeclaration(domain.KindCorporateTaxReturn, domain.StandardSYSCOHADA, cfg, companyID, p, data, validation, warnings)
	s.LogInfo(ctx, "SYSCOHADA corporate tax declaration assembled",
		slog.String("company_id", companyID),
		slog.String("period", period),
		slog.String("country", country),
		slog.String("corporate_tax", tax.StringFixed(2)))
	return persistDeclaration(ctx, s.declarationRepo, declaration)
}

func (s *syscohadaService) ListDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	if _, err := resolveCountry(s.countries, country); err != nil {
		return nil, err
	}
	filter.Country = country
	return s.declarationRepo.ListDeclarations(ctx, companyID, filter)
}

func (s *syscohadaService) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	return s.declarationRepo.UpdateDeclarationStatus(ctx, declarationID, status, metadata)
}

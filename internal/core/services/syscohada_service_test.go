package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/core/services"
)

type SyscohadaServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo      *MockLedgerRepository
	mockDeclarationRepo *MockDeclarationRepository
	strategy            portssvc.StandardStrategy
}

func (suite *SyscohadaServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockDeclarationRepo = new(MockDeclarationRepository)
	suite.strategy = services.NewSYSCOHADAService(
		services.NewBalanceAggregator(suite.mockLedgerRepo),
		suite.mockDeclarationRepo,
	)
}

func (suite *SyscohadaServiceTestSuite) expectLedger(entries ...domain.LedgerEntry) {
	suite.mockLedgerRepo.On("FetchEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(entries, nil)
}

func (suite *SyscohadaServiceTestSuite) expectInsert(id string) {
	suite.mockDeclarationRepo.On("InsertDeclaration", mock.Anything, mock.AnythingOfType("domain.FiscalDeclaration")).
		Return(id, nil)
}

func (suite *SyscohadaServiceTestSuite) TestStandard() {
	suite.Equal(domain.StandardSYSCOHADA, suite.strategy.Standard())
}

func (suite *SyscohadaServiceTestSuite) TestGetCountryConfig() {
	cfg, ok := suite.strategy.GetCountryConfig("CI")
	suite.True(ok)
	suite.Equal("XOF", cfg.CurrencyCode)
	suite.True(decimal.NewFromInt(18).Equal(cfg.VATStandardRate))
	suite.True(decimal.NewFromInt(25).Equal(cfg.CorporateTaxRate))

	_, ok = suite.strategy.GetCountryConfig("NG")
	suite.False(ok)
}

func (suite *SyscohadaServiceTestSuite) TestGenerateBalanceSheet_Balanced() {
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			debitLine("5200", 1000),
			creditLine("1010", 1000),
		),
	)
	suite.expectInsert("decl-bs-1")

	declaration, err := suite.strategy.GenerateBalanceSheet(context.Background(), "company-1", "2025", "CI")

	suite.Require().NoError(err)
	suite.Equal("decl-bs-1", declaration.DeclarationID)
	suite.Equal("BALANCE_SHEET_SYSCOHADA", declaration.Type)
	suite.Equal(domain.StatusReady, declaration.Status)
	suite.Empty(declaration.ValidationErrors)

	sheet, ok := declaration.Data.(services.SyscohadaBalanceSheet)
	suite.Require().True(ok)
	suite.True(decimal.NewFromInt(1000).Equal(sheet.TotalActif))
	suite.True(decimal.NewFromInt(1000).Equal(sheet.TotalPassif))
	suite.True(decimal.NewFromInt(1000).Equal(sheet.CapitauxPropres.Total))
}

func (suite *SyscohadaServiceTestSuite) TestGenerateBalanceSheet_FullTreasuryClassBalances() {
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	// Treasury spread over valeurs à encaisser, établissements financiers
	// and virements internes, not just banks and cash.
	suite.expectLedger(
		ledgerEntry("company-1", date,
			debitLine("5110", 400),
			debitLine("5300", 250),
			debitLine("5200", 250),
			debitLine("5800", 100),
			creditLine("1010", 1000),
		),
	)
	suite.expectInsert("decl-bs-3")

	declaration, err := suite.strategy.GenerateBalanceSheet(context.Background(), "company-1", "2025", "CI")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusReady, declaration.Status)
	suite.Empty(declaration.ValidationErrors)

	sheet, ok := declaration.Data.(services.SyscohadaBalanceSheet)
	suite.Require().True(ok)
	suite.True(decimal.NewFromInt(1000).Equal(sheet.TresorerieActif.Total))
	suite.True(decimal.NewFromInt(1000).Equal(sheet.TotalActif))
	suite.True(decimal.NewFromInt(1000).Equal(sheet.TotalPassif))
}

func (suite *SyscohadaServiceTestSuite) TestGenerateBalanceSheet_UnbalancedBecomesDraft() {
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	// Counterpart booked outside classes 1-5, so the sheet cannot balance.
	suite.expectLedger(
		ledgerEntry("company-1", date, debitLine("5200", 500)),
	)
	suite.expectInsert("decl-bs-2")

	declaration, err := suite.strategy.GenerateBalanceSheet(context.Background(), "company-1", "2025", "CI")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, declaration.Status)
	suite.Require().Len(declaration.ValidationErrors, 1)
	suite.Contains(declaration.ValidationErrors[0], "does not balance")
}

func (suite *SyscohadaServiceTestSuite) TestGenerateBalanceSheet_UnsupportedCountry() {
	_, err := suite.strategy.GenerateBalanceSheet(context.Background(), "company-1", "2025", "NG")
	suite.Require().Error(err)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FetchEntries")
	suite.mockDeclarationRepo.AssertNotCalled(suite.T(), "InsertDeclaration")
}

func (suite *SyscohadaServiceTestSuite) TestGenerateIncomeStatement() {
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			creditLine("7010", 1000),
			debitLine("6010", 600),
			debitLine("6710", 50),
		),
	)
	suite.expectInsert("decl-is-1")

	declaration, err := suite.strategy.GenerateIncomeStatement(context.Background(), "company-1", "2025", "SN")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusReady, declaration.Status)

	statement, ok := declaration.Data.(services.SyscohadaIncomeStatement)
	suite.Require().True(ok)
	suite.True(decimal.NewFromInt(1000).Equal(statement.ProduitsExploitation.Total))
	suite.True(decimal.NewFromInt(600).Equal(statement.ChargesExploitation.Total))
	suite.True(decimal.NewFromInt(400).Equal(statement.ResultatExploitation))
	suite.True(decimal.NewFromInt(-50).Equal(statement.ResultatFinancier))
	suite.True(decimal.NewFromInt(350).Equal(statement.ResultatNet))
}

func (suite *SyscohadaServiceTestSuite) TestGenerateVATDeclaration_Payable() {
	date := time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			creditLine("4431", 100),
			debitLine("4451", 40),
		),
	)
	suite.expectInsert("decl-vat-1")

	declaration, err := suite.strategy.GenerateVATDeclaration(context.Background(), "company-1", "2025-04", "CI")

	suite.Require().NoError(err)
	suite.Equal("VAT_RETURN_SYSCOHADA", declaration.Type)
	suite.Equal(domain.StatusReady, declaration.Status)
	suite.Empty(declaration.Warnings)

	data, ok := declaration.Data.(services.SyscohadaVATReturn)
	suite.Require().True(ok)
	suite.True(decimal.NewFromInt(100).Equal(data.VATCollected))
	suite.True(decimal.NewFromInt(40).Equal(data.VATDeductible))
	suite.True(decimal.NewFromInt(60).Equal(data.NetVAT))
	suite.True(decimal.NewFromInt(60).Equal(data.VATPayable))
	suite.True(data.VATRefund.IsZero())
}

func (suite *SyscohadaServiceTestSuite) TestGenerateVATDeclaration_CreditCarriesForward() {
	date := time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			creditLine("4431", 40),
			debitLine("4451", 100),
		),
	)
	suite.expectInsert("decl-vat-2")

	declaration, err := suite.strategy.GenerateVATDeclaration(context.Background(), "company-1", "2025-04", "CI")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusReady, declaration.Status)
	suite.Require().Len(declaration.Warnings, 1)
	suite.Contains(declaration.Warnings[0], "carry forward")

	data, ok := declaration.Data.(services.SyscohadaVATReturn)
	suite.Require().True(ok)
	suite.True(decimal.NewFromInt(-60).Equal(data.NetVAT))
	suite.True(data.VATPayable.IsZero())
	suite.True(decimal.NewFromInt(60).Equal(data.VATRefund))
}

func (suite *SyscohadaServiceTestSuite) TestGenerateCorporateTax() {
	date := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			creditLine("7010", 1000),
			debitLine("6010", 600),
		),
	)
	suite.expectInsert("decl-ct-1")

	declaration, err := suite.strategy.GenerateCorporateTaxDeclaration(context.Background(), "company-1", "2025", "CI")

	suite.Require().NoError(err)
	data, ok := declaration.Data.(services.SyscohadaCorporateTaxReturn)
	suite.Require().True(ok)
	suite.True(decimal.NewFromInt(400).Equal(data.TaxableIncome))
	// 400 at the Ivorian 25% rate.
	suite.True(decimal.NewFromInt(100).Equal(data.CorporateTax))
	suite.Empty(declaration.Warnings)
}

func (suite *SyscohadaServiceTestSuite) TestGenerateCorporateTax_LossCarriedForward() {
	date := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			creditLine("7010", 400),
			debitLine("6010", 1000),
		),
	)
	suite.expectInsert("decl-ct-2")

	declaration, err := suite.strategy.GenerateCorporateTaxDeclaration(context.Background(), "company-1", "2025", "CI")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusReady, declaration.Status)
	suite.Require().Len(declaration.Warnings, 1)
	suite.Contains(declaration.Warnings[0], "loss carried forward")

	data, ok := declaration.Data.(services.SyscohadaCorporateTaxReturn)
	suite.Require().True(ok)
	suite.True(decimal.NewFromInt(-600).Equal(data.TaxableIncome))
	suite.True(data.CorporateTax.IsZero())
}

func (suite *SyscohadaServiceTestSuite) TestListDeclarations_ScopesCountryFilter() {
	expected := []domain.FiscalDeclaration{{DeclarationID: "d-1"}}
	suite.mockDeclarationRepo.On("ListDeclarations", mock.Anything, "company-1",
		domain.DeclarationFilter{Country: "CI", Year: 2025}).
		Return(expected, nil).Once()

	declarations, err := suite.strategy.ListDeclarations(
		context.Background(), "company-1", "CI", domain.DeclarationFilter{Year: 2025})

	suite.Require().NoError(err)
	suite.Equal(expected, declarations)
	suite.mockDeclarationRepo.AssertExpectations(suite.T())
}

func TestSyscohadaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyscohadaServiceTestSuite))
}

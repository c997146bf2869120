package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portsrepo "github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/core/services"
)

type FiscalServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo      *MockLedgerRepository
	mockDeclarationRepo *MockDeclarationRepository
	facade              portssvc.FiscalSvcFacade
}

func (suite *FiscalServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockDeclarationRepo = new(MockDeclarationRepository)
	repos := portsrepo.RepositoryProvider{
		LedgerRepo:      suite.mockLedgerRepo,
		DeclarationRepo: suite.mockDeclarationRepo,
	}
	suite.facade = services.NewFiscalService(services.NewFiscalServiceFactory(repos), repos)
}

func (suite *FiscalServiceTestSuite) expectLedger(entries ...domain.LedgerEntry) {
	suite.mockLedgerRepo.On("FetchEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(entries, nil)
}

func (suite *FiscalServiceTestSuite) TestGenerate_DispatchesByKind() {
	date := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			creditLine("4431", 100),
			debitLine("4451", 40),
		),
	)
	suite.mockDeclarationRepo.On("InsertDeclaration", mock.Anything, mock.AnythingOfType("domain.FiscalDeclaration")).
		Return("decl-1", nil).Once()

	declaration, err := suite.facade.GenerateFiscalDeclaration(
		context.Background(), domain.KindVATReturn, "company-1", "2025-05", "CI")

	suite.Require().NoError(err)
	suite.Equal("VAT_RETURN_SYSCOHADA", declaration.Type)
	suite.Equal("decl-1", declaration.DeclarationID)
	suite.Equal(domain.StandardSYSCOHADA, declaration.Standard)
	suite.mockDeclarationRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestGenerate_InvalidPeriodRejectedEarly() {
	_, err := suite.facade.GenerateFiscalDeclaration(
		context.Background(), domain.KindBalanceSheet, "company-1", "05-2025", "CI")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FetchEntries")
}

func (suite *FiscalServiceTestSuite) TestGenerate_UnsupportedCountry() {
	_, err := suite.facade.GenerateFiscalDeclaration(
		context.Background(), domain.KindBalanceSheet, "company-1", "2025", "XX")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrUnsupportedCountry))
}

func (suite *FiscalServiceTestSuite) TestGenerate_UnsupportedKind() {
	_, err := suite.facade.GenerateFiscalDeclaration(
		context.Background(), domain.DeclarationKind("AUDIT_REPORT"), "company-1", "2025", "CI")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrUnsupportedDeclarationType))
}

func (suite *FiscalServiceTestSuite) TestGenerate_PersistenceFailure() {
	suite.expectLedger()
	repoErr := errors.New("insert failed")
	suite.mockDeclarationRepo.On("InsertDeclaration", mock.Anything, mock.AnythingOfType("domain.FiscalDeclaration")).
		Return("", repoErr)

	_, err := suite.facade.GenerateFiscalDeclaration(
		context.Background(), domain.KindVATReturn, "company-1", "2025-05", "CI")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrPersistence))
}

func (suite *FiscalServiceTestSuite) TestGenerate_CashFlow() {
	date := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			debitLine("5200", 700),
			creditLine("5200", 300),
		),
	)
	suite.mockDeclarationRepo.On("InsertDeclaration", mock.Anything, mock.AnythingOfType("domain.FiscalDeclaration")).
		Return("decl-cf", nil).Once()

	declaration, err := suite.facade.GenerateFiscalDeclaration(
		context.Background(), domain.KindCashFlow, "company-1", "2025", "CI")

	suite.Require().NoError(err)
	suite.Equal("CASH_FLOW_SYSCOHADA", declaration.Type)

	data, ok := declaration.Data.(services.CashFlowStatement)
	suite.Require().True(ok)
	suite.True(data.Provisional)
	suite.True(decimal.NewFromInt(700).Equal(data.TreasuryInflows))
	suite.True(decimal.NewFromInt(300).Equal(data.TreasuryOutflows))
	suite.True(decimal.NewFromInt(400).Equal(data.NetTreasuryMovement))
	suite.Require().NotEmpty(declaration.Warnings)
	suite.Contains(declaration.Warnings[0], "provisional")
}

func (suite *FiscalServiceTestSuite) TestGenerateStatisticalBundle() {
	date := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	suite.expectLedger(
		ledgerEntry("company-1", date,
			debitLine("5200", 1000),
			creditLine("1010", 1000),
		),
	)
	suite.mockDeclarationRepo.On("InsertDeclaration", mock.Anything, mock.AnythingOfType("domain.FiscalDeclaration")).
		Return("decl-n", nil).Times(3)

	bundle, err := suite.facade.GenerateStatisticalBundle(context.Background(), "company-1", "2025", "CI")

	suite.Require().NoError(err)
	suite.Require().Len(bundle, 3)
	suite.Equal("BALANCE_SHEET_SYSCOHADA", bundle[0].Type)
	suite.Equal("INCOME_STATEMENT_SYSCOHADA", bundle[1].Type)
	suite.Equal("CASH_FLOW_SYSCOHADA", bundle[2].Type)
	suite.mockDeclarationRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestGenerateStatisticalBundle_AbortsOnFirstFailure() {
	suite.mockLedgerRepo.On("FetchEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("ledger unavailable"))

	bundle, err := suite.facade.GenerateStatisticalBundle(context.Background(), "company-1", "2025", "CI")

	suite.Require().Error(err)
	suite.Nil(bundle)
	suite.Contains(err.Error(), "balance sheet")
	suite.True(errors.Is(err, apperrors.ErrAggregation))
	suite.mockDeclarationRepo.AssertNotCalled(suite.T(), "InsertDeclaration")
}

func (suite *FiscalServiceTestSuite) TestGetDeclaration() {
	expected := &domain.FiscalDeclaration{DeclarationID: "decl-9"}
	suite.mockDeclarationRepo.On("FindDeclarationByID", mock.Anything, "decl-9").
		Return(expected, nil).Once()

	declaration, err := suite.facade.GetDeclaration(context.Background(), "decl-9")

	suite.Require().NoError(err)
	suite.Equal(expected, declaration)
}

func (suite *FiscalServiceTestSuite) TestGetDeclaration_NotFound() {
	suite.mockDeclarationRepo.On("FindDeclarationByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.facade.GetDeclaration(context.Background(), "missing")

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *FiscalServiceTestSuite) TestUpdateDeclarationStatus() {
	filedAt := time.Now().UTC()
	metadata := domain.StatusMetadata{FiledAt: &filedAt, FiledBy: "user-1"}
	suite.mockDeclarationRepo.On("UpdateDeclarationStatus", mock.Anything, "decl-1", domain.StatusFiled, metadata).
		Return(nil).Once()

	err := suite.facade.UpdateDeclarationStatus(context.Background(), "decl-1", domain.StatusFiled, metadata)

	suite.Require().NoError(err)
	suite.mockDeclarationRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestUpdateDeclarationStatus_UnknownStatus() {
	err := suite.facade.UpdateDeclarationStatus(
		context.Background(), "decl-1", domain.DeclarationStatus("ARCHIVED"), domain.StatusMetadata{})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockDeclarationRepo.AssertNotCalled(suite.T(), "UpdateDeclarationStatus")
}

func (suite *FiscalServiceTestSuite) TestListCompanyDeclarations() {
	expected := []domain.FiscalDeclaration{{DeclarationID: "d-1"}, {DeclarationID: "d-2"}}
	suite.mockDeclarationRepo.On("ListDeclarations", mock.Anything, "company-1",
		domain.DeclarationFilter{Country: "GH", Status: domain.StatusReady}).
		Return(expected, nil).Once()

	declarations, err := suite.facade.ListCompanyDeclarations(
		context.Background(), "company-1", "GH", domain.DeclarationFilter{Status: domain.StatusReady})

	suite.Require().NoError(err)
	suite.Equal(expected, declarations)
}

func TestFiscalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalServiceTestSuite))
}

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/dto"
)

// --- Mock StandardStrategy ---

type MockStandardStrategy struct {
	mock.Mock
}

func (m *MockStandardStrategy) Standard() domain.Standard {
	return m.Called().Get(0).(domain.Standard)
}

func (m *MockStandardStrategy) GenerateBalanceSheet(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, period, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockStandardStrategy) GenerateIncomeStatement(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, period, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockStandardStrategy) GenerateVATDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, period, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockStandardStrategy) GenerateCorporateTaxDeclaration(ctx context.Context, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, period, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockStandardStrategy) GetCountryConfig(country string) (domain.CountryConfig, bool) {
	args := m.Called(country)
	return args.Get(0).(domain.CountryConfig), args.Bool(1)
}

func (m *MockStandardStrategy) ListDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, country, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalDeclaration), args.Error(1)
}

func (m *MockStandardStrategy) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	args := m.Called(ctx, declarationID, status, metadata)
	return args.Error(0)
}

var _ portssvc.StandardStrategy = (*MockStandardStrategy)(nil)

// --- Test Cases ---

func (suite *FiscalHandlerTestSuite) TestListCountries_All() {
	strategy := new(MockStandardStrategy)
	cfg := domain.CountryConfig{
		CountryCode:      "CI",
		DisplayName:      "Côte d'Ivoire",
		CurrencyCode:     "XOF",
		VATStandardRate:  decimal.NewFromInt(18),
		CorporateTaxRate: decimal.NewFromInt(25),
	}
	suite.mockFactory.On("GetSupportedCountries").Return([]string{"CI"}).Once()
	suite.mockFactory.On("GetStandardForCountry", "CI").
		Return(domain.StandardSYSCOHADA, true).Once()
	suite.mockFactory.On("GetService", domain.StandardSYSCOHADA).
		Return(strategy, nil).Once()
	strategy.On("GetCountryConfig", "CI").Return(cfg, true).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/fiscal/countries", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCountriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Countries, 1)
	suite.Equal("CI", resp.Countries[0].CountryCode)
	suite.Equal("SYSCOHADA", resp.Countries[0].Standard)
	suite.Equal("XOF", resp.Countries[0].CurrencyCode)
	suite.mockFactory.AssertExpectations(suite.T())
	strategy.AssertExpectations(suite.T())
}

func (suite *FiscalHandlerTestSuite) TestListCountries_FilteredByStandard() {
	strategy := new(MockStandardStrategy)
	cfg := domain.CountryConfig{
		CountryCode:     "NG",
		DisplayName:     "Nigeria",
		CurrencyCode:    "NGN",
		VATStandardRate: decimal.NewFromFloat(7.5),
	}
	suite.mockFactory.On("GetCountriesByStandard", domain.StandardIFRS).
		Return([]string{"NG"}).Once()
	suite.mockFactory.On("GetStandardForCountry", "NG").
		Return(domain.StandardIFRS, true).Once()
	suite.mockFactory.On("GetService", domain.StandardIFRS).
		Return(strategy, nil).Once()
	strategy.On("GetCountryConfig", "NG").Return(cfg, true).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/fiscal/countries?standard=IFRS", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListCountriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Countries, 1)
	suite.Equal("NG", resp.Countries[0].CountryCode)
	suite.Equal("IFRS", resp.Countries[0].Standard)
	suite.mockFactory.AssertNotCalled(suite.T(), "GetSupportedCountries")
	suite.mockFactory.AssertExpectations(suite.T())
}

func (suite *FiscalHandlerTestSuite) TestListCountries_UnknownStandardFilter() {
	w := suite.performJSON(http.MethodGet, "/api/v1/fiscal/countries?standard=GAAP", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFactory.AssertNotCalled(suite.T(), "GetSupportedCountries")
	suite.mockFactory.AssertNotCalled(suite.T(), "GetCountriesByStandard", mock.Anything)
}

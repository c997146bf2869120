package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/dto"
	"github.com/afrocompta/fiscal_engine/internal/handlers"
	"github.com/afrocompta/fiscal_engine/internal/platform/config"
)

// --- Mock FiscalSvcFacade ---

type MockFiscalService struct {
	mock.Mock
}

func (m *MockFiscalService) GenerateFiscalDeclaration(ctx context.Context, kind domain.DeclarationKind, companyID, period, country string) (*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, kind, companyID, period, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockFiscalService) GenerateStatisticalBundle(ctx context.Context, companyID, period, country string) ([]*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, period, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockFiscalService) GetDeclaration(ctx context.Context, declarationID string) (*domain.FiscalDeclaration, error) {
	args := m.Called(ctx, declarationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalDeclaration), args.Error(1)
}

func (m *MockFiscalService) ListCompanyDeclarations(ctx context.Context, companyID, country string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	args := m.Called(ctx, companyID, country, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalDeclaration), args.Error(1)
}

func (m *MockFiscalService) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	args := m.Called(ctx, declarationID, status, metadata)
	return args.Error(0)
}

var _ portssvc.FiscalSvcFacade = (*MockFiscalService)(nil)

// --- Mock FiscalFactorySvc ---

type MockFactoryService struct {
	mock.Mock
}

func (m *MockFactoryService) GetService(standard domain.Standard) (portssvc.StandardStrategy, error) {
	args := m.Called(standard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portssvc.StandardStrategy), args.Error(1)
}

func (m *MockFactoryService) GetServiceForCountry(country string) (portssvc.StandardStrategy, error) {
	args := m.Called(country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portssvc.StandardStrategy), args.Error(1)
}

func (m *MockFactoryService) IsCountrySupported(country string) bool {
	return m.Called(country).Bool(0)
}

func (m *MockFactoryService) GetStandardForCountry(country string) (domain.Standard, bool) {
	args := m.Called(country)
	return args.Get(0).(domain.Standard), args.Bool(1)
}

func (m *MockFactoryService) GetSupportedCountries() []string {
	return m.Called().Get(0).([]string)
}

func (m *MockFactoryService) GetCountriesByStandard(standard domain.Standard) []string {
	return m.Called(standard).Get(0).([]string)
}

func (m *MockFactoryService) ClearCache() {
	m.Called()
}

var _ portssvc.FiscalFactorySvc = (*MockFactoryService)(nil)

// --- Test Suite Setup ---

type FiscalHandlerTestSuite struct {
	suite.Suite
	mockFiscal  *MockFiscalService
	mockFactory *MockFactoryService
	router      *gin.Engine
}

func (suite *FiscalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockFiscal = new(MockFiscalService)
	suite.mockFactory = new(MockFactoryService)

	suite.router = gin.New()
	cfg := &config.Config{IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Fiscal:  suite.mockFiscal,
		Factory: suite.mockFactory,
	})
}

func (suite *FiscalHandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FiscalHandlerTestSuite) TestGenerateDeclaration_Success() {
	declaration := &domain.FiscalDeclaration{
		DeclarationID: "decl-1",
		Type:          "VAT_RETURN_SYSCOHADA",
		Standard:      domain.StandardSYSCOHADA,
		Country:       "CI",
		Period:        "2025-05",
		Status:        domain.StatusReady,
		CompanyID:     "company-1",
	}
	suite.mockFiscal.On("GenerateFiscalDeclaration", mock.Anything, domain.KindVATReturn, "company-1", "2025-05", "CI").
		Return(declaration, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/fiscal/declarations", dto.GenerateDeclarationRequest{
		CompanyID: "company-1",
		Type:      "VAT_RETURN",
		Country:   "CI",
		Period:    "2025-05",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.DeclarationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("decl-1", response.DeclarationID)
	suite.Equal("VAT_RETURN_SYSCOHADA", response.Type)
	suite.Equal("READY", response.Status)
	suite.mockFiscal.AssertExpectations(suite.T())
}

func (suite *FiscalHandlerTestSuite) TestGenerateDeclaration_MalformedPeriod() {
	w := suite.performJSON(http.MethodPost, "/api/v1/fiscal/declarations", dto.GenerateDeclarationRequest{
		CompanyID: "company-1",
		Type:      "VAT_RETURN",
		Country:   "CI",
		Period:    "May 2025",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFiscal.AssertNotCalled(suite.T(), "GenerateFiscalDeclaration")
}

func (suite *FiscalHandlerTestSuite) TestGenerateDeclaration_UnknownType() {
	w := suite.performJSON(http.MethodPost, "/api/v1/fiscal/declarations", dto.GenerateDeclarationRequest{
		CompanyID: "company-1",
		Type:      "AUDIT_REPORT",
		Country:   "CI",
		Period:    "2025",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFiscal.AssertNotCalled(suite.T(), "GenerateFiscalDeclaration")
}

func (suite *FiscalHandlerTestSuite) TestGenerateDeclaration_UnsupportedCountry() {
	suite.mockFiscal.On("GenerateFiscalDeclaration", mock.Anything, domain.KindBalanceSheet, "company-1", "2025", "EG").
		Return(nil, fmt.Errorf("%w: EG", apperrors.ErrUnsupportedCountry)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/fiscal/declarations", dto.GenerateDeclarationRequest{
		CompanyID: "company-1",
		Type:      "BALANCE_SHEET",
		Country:   "EG",
		Period:    "2025",
	})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *FiscalHandlerTestSuite) TestGetDeclaration_NotFound() {
	suite.mockFiscal.On("GetDeclaration", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: declaration missing", apperrors.ErrNotFound)).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/fiscal/declarations/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *FiscalHandlerTestSuite) TestListDeclarations_RequiresCompanyID() {
	w := suite.performJSON(http.MethodGet, "/api/v1/fiscal/declarations?country=CI", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFiscal.AssertNotCalled(suite.T(), "ListCompanyDeclarations")
}

func (suite *FiscalHandlerTestSuite) TestListDeclarations_Success() {
	declarations := []domain.FiscalDeclaration{
		{DeclarationID: "d-1", Country: "CI"},
		{DeclarationID: "d-2", Country: "CI"},
	}
	suite.mockFiscal.On("ListCompanyDeclarations", mock.Anything, "company-1", "CI",
		domain.DeclarationFilter{Country: "CI", Status: domain.StatusReady}).
		Return(declarations, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/fiscal/declarations?companyID=company-1&country=CI&status=READY", nil)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.ListDeclarationsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Declarations, 2)
}

func (suite *FiscalHandlerTestSuite) TestUpdateStatus_Success() {
	suite.mockFiscal.On("UpdateDeclarationStatus", mock.Anything, "decl-1", domain.StatusFiled,
		mock.AnythingOfType("domain.StatusMetadata")).
		Return(nil).Once()

	w := suite.performJSON(http.MethodPatch, "/api/v1/fiscal/declarations/decl-1/status", dto.UpdateDeclarationStatusRequest{
		Status:  "FILED",
		FiledBy: "user-1",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockFiscal.AssertExpectations(suite.T())
}

func (suite *FiscalHandlerTestSuite) TestUpdateStatus_UnknownStatus() {
	w := suite.performJSON(http.MethodPatch, "/api/v1/fiscal/declarations/decl-1/status", dto.UpdateDeclarationStatusRequest{
		Status: "ARCHIVED",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockFiscal.AssertNotCalled(suite.T(), "UpdateDeclarationStatus")
}

func (suite *FiscalHandlerTestSuite) TestGenerateBundle_Success() {
	bundle := []*domain.FiscalDeclaration{
		{DeclarationID: "d-1", Type: "BALANCE_SHEET_SYSCOHADA"},
		{DeclarationID: "d-2", Type: "INCOME_STATEMENT_SYSCOHADA"},
		{DeclarationID: "d-3", Type: "CASH_FLOW_SYSCOHADA"},
	}
	suite.mockFiscal.On("GenerateStatisticalBundle", mock.Anything, "company-1", "2025", "CI").
		Return(bundle, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/fiscal/declarations/bundle", dto.GenerateBundleRequest{
		CompanyID: "company-1",
		Country:   "CI",
		Period:    "2025",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.BundleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Declarations, 3)
	suite.Equal("CI", response.Country)
}

func (suite *FiscalHandlerTestSuite) TestHealthCheck() {
	w := suite.performJSON(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestFiscalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalHandlerTestSuite))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/dto"
	"github.com/afrocompta/fiscal_engine/internal/middleware"
)

// fiscalHandler handles HTTP requests for fiscal declaration generation and
// lifecycle management.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func newFiscalHandler(fs portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{
		fiscalService: fs,
	}
}

// registerFiscalRoutes registers routes related to fiscal declarations
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	fiscalGroup := rg.Group("/fiscal")
	{
		fiscalGroup.POST("/declarations", h.generateDeclaration)
		fiscalGroup.GET("/declarations", h.listDeclarations)
		fiscalGroup.GET("/declarations/:declaration_id", h.getDeclaration)
		fiscalGroup.PATCH("/declarations/:declaration_id/status", h.updateDeclarationStatus)
		fiscalGroup.POST("/declarations/bundle", h.generateBundle)
	}
}

// respondServiceError translates a service error into the matching HTTP status.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnsupportedDeclarationType):
		logger.Warn("Invalid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnsupportedCountry),
		errors.Is(err, apperrors.ErrUnsupportedStandard):
		logger.Warn("Unsupported jurisdiction", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// generateDeclaration godoc
// @Summary Generate a fiscal declaration
// @Description Generates a fiscal statement for a company, period and country; the accounting standard is resolved from the country
// @Tags fiscal
// @Accept json
// @Produce json
// @Param declaration body dto.GenerateDeclarationRequest true "Declaration generation details"
// @Success 201 {object} dto.DeclarationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Unsupported country"
// @Failure 500 {object} map[string]string "Failed to generate declaration"
// @Router /fiscal/declarations [post]
func (h *fiscalHandler) generateDeclaration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateDeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid generate declaration request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("company_id", req.CompanyID),
		slog.String("type", req.Type),
		slog.String("country", req.Country),
		slog.String("period", req.Period),
	)
	logger.Info("Received request to generate fiscal declaration")

	declaration, err := h.fiscalService.GenerateFiscalDeclaration(
		c.Request.Context(), domain.DeclarationKind(req.Type), req.CompanyID, req.Period, req.Country,
	)
	if err != nil {
		respondServiceError(c, logger, err, "generate declaration")
		return
	}

	logger.Info("Fiscal declaration generated",
		slog.String("declaration_id", declaration.DeclarationID),
		slog.String("status", string(declaration.Status)),
	)
	c.JSON(http.StatusCreated, dto.ToDeclarationResponse(declaration))
}

// generateBundle godoc
// @Summary Generate the statistical statement bundle
// @Description Generates the balance sheet, income statement and provisional cash-flow statement for a company and period in one call
// @Tags fiscal
// @Accept json
// @Produce json
// @Param bundle body dto.GenerateBundleRequest true "Bundle generation details"
// @Success 201 {object} dto.BundleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Unsupported country"
// @Failure 500 {object} map[string]string "Failed to generate bundle"
// @Router /fiscal/declarations/bundle [post]
func (h *fiscalHandler) generateBundle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GenerateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid generate bundle request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("company_id", req.CompanyID),
		slog.String("country", req.Country),
		slog.String("period", req.Period),
	)
	logger.Info("Received request to generate statistical bundle")

	declarations, err := h.fiscalService.GenerateStatisticalBundle(c.Request.Context(), req.CompanyID, req.Period, req.Country)
	if err != nil {
		respondServiceError(c, logger, err, "generate statistical bundle")
		return
	}

	logger.Info("Statistical bundle generated", slog.Int("statement_count", len(declarations)))
	c.JSON(http.StatusCreated, dto.ToBundleResponse(req.CompanyID, req.Country, req.Period, declarations))
}

// getDeclaration godoc
// @Summary Get a fiscal declaration
// @Description Retrieves a previously generated declaration by its ID
// @Tags fiscal
// @Produce json
// @Param declaration_id path string true "Declaration ID"
// @Success 200 {object} dto.DeclarationResponse
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 500 {object} map[string]string "Failed to fetch declaration"
// @Router /fiscal/declarations/{declaration_id} [get]
func (h *fiscalHandler) getDeclaration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	declarationID := c.Param("declaration_id")
	logger = logger.With(slog.String("declaration_id", declarationID))

	declaration, err := h.fiscalService.GetDeclaration(c.Request.Context(), declarationID)
	if err != nil {
		respondServiceError(c, logger, err, "fetch declaration")
		return
	}

	c.JSON(http.StatusOK, dto.ToDeclarationResponse(declaration))
}

// listDeclarations godoc
// @Summary List a company's fiscal declarations
// @Description Lists a company's declarations for a country, optionally filtered by type, status and year; ordered by due date descending
// @Tags fiscal
// @Produce json
// @Param companyID query string true "Company ID"
// @Param country query string true "ISO 3166-1 alpha-2 country code"
// @Param type query string false "Standard-qualified declaration type, e.g. VAT_RETURN_SYSCOHADA"
// @Param status query string false "Declaration status" Enums(DRAFT, READY, FILED, ACCEPTED, REJECTED)
// @Param year query int false "Fiscal year"
// @Success 200 {object} dto.ListDeclarationsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list declarations"
// @Router /fiscal/declarations [get]
func (h *fiscalHandler) listDeclarations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companyID := c.Query("companyID")
	if companyID == "" {
		logger.Warn("Company ID missing from declaration listing request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "companyID query parameter is required"})
		return
	}

	var query struct {
		Country string `form:"country" binding:"required,len=2"`
		Type    string `form:"type"`
		Status  string `form:"status" binding:"omitempty,oneof=DRAFT READY FILED ACCEPTED REJECTED"`
		Year    int    `form:"year" binding:"omitempty,min=1900,max=2200"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid declaration listing query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.DeclarationFilter{
		Type:    query.Type,
		Country: query.Country,
		Status:  domain.DeclarationStatus(query.Status),
		Year:    query.Year,
	}

	logger = logger.With(slog.String("company_id", companyID))
	declarations, err := h.fiscalService.ListCompanyDeclarations(c.Request.Context(), companyID, query.Country, filter)
	if err != nil {
		respondServiceError(c, logger, err, "list declarations")
		return
	}

	logger.Info("Declarations listed", slog.Int("count", len(declarations)))
	c.JSON(http.StatusOK, dto.ListDeclarationsResponse{Declarations: dto.ToDeclarationResponses(declarations)})
}

// updateDeclarationStatus godoc
// @Summary Update a declaration's lifecycle status
// @Description Transitions a declaration to a new status and records the associated filing metadata
// @Tags fiscal
// @Accept json
// @Produce json
// @Param declaration_id path string true "Declaration ID"
// @Param status body dto.UpdateDeclarationStatusRequest true "New status and filing metadata"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 500 {object} map[string]string "Failed to update status"
// @Router /fiscal/declarations/{declaration_id}/status [patch]
func (h *fiscalHandler) updateDeclarationStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	declarationID := c.Param("declaration_id")

	var req dto.UpdateDeclarationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid status update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("declaration_id", declarationID),
		slog.String("status", req.Status),
	)

	err := h.fiscalService.UpdateDeclarationStatus(
		c.Request.Context(), declarationID, domain.DeclarationStatus(req.Status), req.ToStatusMetadata(),
	)
	if err != nil {
		respondServiceError(c, logger, err, "update declaration status")
		return
	}

	logger.Info("Declaration status updated")
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

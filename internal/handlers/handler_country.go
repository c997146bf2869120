package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portssvc "github.com/afrocompta/fiscal_engine/internal/core/ports/services"
	"github.com/afrocompta/fiscal_engine/internal/dto"
	"github.com/afrocompta/fiscal_engine/internal/middleware"
)

// countryHandler exposes the supported-country catalogue.
type countryHandler struct {
	factory portssvc.FiscalFactorySvc
}

func newCountryHandler(factory portssvc.FiscalFactorySvc) *countryHandler {
	return &countryHandler{factory: factory}
}

func registerCountryRoutes(rg *gin.RouterGroup, factory portssvc.FiscalFactorySvc) {
	h := newCountryHandler(factory)
	rg.GET("/fiscal/countries", h.listCountries)
}

// listCountries godoc
// @Summary List supported countries
// @Description Lists every supported jurisdiction with its accounting standard, tax rates and filing calendar, optionally filtered to one standard
// @Tags fiscal
// @Produce json
// @Param standard query string false "Accounting standard filter" Enums(SYSCOHADA, IFRS, SCF)
// @Success 200 {object} dto.ListCountriesResponse
// @Failure 400 {object} map[string]string "Invalid standard filter"
// @Router /fiscal/countries [get]
func (h *countryHandler) listCountries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query struct {
		Standard string `form:"standard" binding:"omitempty,oneof=SYSCOHADA IFRS SCF"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid list countries request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var codes []string
	if query.Standard != "" {
		codes = h.factory.GetCountriesByStandard(domain.Standard(query.Standard))
	} else {
		codes = h.factory.GetSupportedCountries()
	}
	countries := make([]dto.CountryResponse, 0, len(codes))
	for _, code := range codes {
		standard, ok := h.factory.GetStandardForCountry(code)
		if !ok {
			continue
		}
		strategy, err := h.factory.GetService(standard)
		if err != nil {
			continue
		}
		cfg, ok := strategy.GetCountryConfig(code)
		if !ok {
			continue
		}
		countries = append(countries, dto.ToCountryResponse(cfg, standard))
	}

	logger.Debug("Supported countries listed")
	c.JSON(http.StatusOK, dto.ListCountriesResponse{Countries: countries})
}

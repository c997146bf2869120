package dto

import (
	"github.com/shopspring/decimal"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
)

// CountryResponse describes one supported jurisdiction and its resolved
// accounting standard.
type CountryResponse struct {
	CountryCode      string            `json:"countryCode"`
	DisplayName      string            `json:"displayName"`
	Standard         string            `json:"standard"`
	CurrencyCode     string            `json:"currencyCode"`
	VATStandardRate  decimal.Decimal   `json:"vatStandardRate"`
	VATReducedRates  []decimal.Decimal `json:"vatReducedRates"`
	CorporateTaxRate decimal.Decimal   `json:"corporateTaxRate"`
	FiscalYearEnd    string            `json:"fiscalYearEnd"`
	FilingDeadline   string            `json:"filingDeadline"`
	TaxAuthorityName string            `json:"taxAuthorityName"`
	OnlinePortalURL  string            `json:"onlinePortalURL,omitempty"`
}

// ToCountryResponse converts a domain.CountryConfig and its standard to a DTO.
func ToCountryResponse(cfg domain.CountryConfig, standard domain.Standard) CountryResponse {
	return CountryResponse{
		CountryCode:      cfg.CountryCode,
		DisplayName:      cfg.DisplayName,
		Standard:         string(standard),
		CurrencyCode:     cfg.CurrencyCode,
		VATStandardRate:  cfg.VATStandardRate,
		VATReducedRates:  cfg.VATReducedRates,
		CorporateTaxRate: cfg.CorporateTaxRate,
		FiscalYearEnd:    cfg.FiscalYearEnd,
		FilingDeadline:   cfg.FilingDeadline,
		TaxAuthorityName: cfg.TaxAuthorityName,
		OnlinePortalURL:  cfg.OnlinePortalURL,
	}
}

// ListCountriesResponse wraps the supported-country catalogue.
type ListCountriesResponse struct {
	Countries []CountryResponse `json:"countries"`
}

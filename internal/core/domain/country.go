package domain

import "github.com/shopspring/decimal"

// CountryConfig is immutable reference data describing one supported
// jurisdiction: its currency, tax rates, fiscal calendar and tax authority.
// Absence of a config for a requested country is a hard failure, never a
// silent default.
type CountryConfig struct {
	CountryCode      string            `json:"countryCode"` // ISO 3166-1 alpha-2
	DisplayName      string            `json:"displayName"`
	CurrencyCode     string            `json:"currencyCode"` // ISO 4217
	VATStandardRate  decimal.Decimal   `json:"vatStandardRate"`
	VATReducedRates  []decimal.Decimal `json:"vatReducedRates"`
	CorporateTaxRate decimal.Decimal   `json:"corporateTaxRate"`
	FiscalYearEnd    string            `json:"fiscalYearEnd"`  // "MM-DD"
	FilingDeadline   string            `json:"filingDeadline"` // "MM-DD", annual filing
	TaxAuthorityName string            `json:"taxAuthorityName"`
	OnlinePortalURL  string            `json:"onlinePortalURL,omitempty"` // Optional
}

package services

import (
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Per-standard country reference tables. Each strategy registers only the
// countries that use its standard, at construction time; the tables are
// never mutated afterwards.

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func syscohadaCountryConfigs() map[string]domain.CountryConfig {
	return map[string]domain.CountryConfig{
		"CI": {
			CountryCode:      "CI",
			DisplayName:      "Côte d'Ivoire",
			CurrencyCode:     "XOF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{pct("9")},
			CorporateTaxRate: pct("25"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
			OnlinePortalURL:  "https://e-impots.gouv.ci",
		},
		"SN": {
			CountryCode:      "SN",
			DisplayName:      "Sénégal",
			CurrencyCode:     "XOF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{pct("10")},
			CorporateTaxRate: pct("30"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Direction Générale des Impôts et des Domaines (DGID)",
			OnlinePortalURL:  "https://etax.dgid.sn",
		},
		"CM": {
			CountryCode:      "CM",
			DisplayName:      "Cameroun",
			CurrencyCode:     "XAF",
			VATStandardRate:  pct("19.25"),
			VATReducedRates:  []decimal.Decimal{},
			CorporateTaxRate: pct("33"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "03-15",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
			OnlinePortalURL:  "https://teledeclaration-dgi.cm",
		},
		"BF": {
			CountryCode:      "BF",
			DisplayName:      "Burkina Faso",
			CurrencyCode:     "XOF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{pct("10")},
			CorporateTaxRate: pct("27.5"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
			OnlinePortalURL:  "https://esintax.bf",
		},
		"ML": {
			CountryCode:      "ML",
			DisplayName:      "Mali",
			CurrencyCode:     "XOF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{pct("5")},
			CorporateTaxRate: pct("30"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
		},
		"TG": {
			CountryCode:      "TG",
			DisplayName:      "Togo",
			CurrencyCode:     "XOF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{pct("10")},
			CorporateTaxRate: pct("27"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Office Togolais des Recettes (OTR)",
		},
		"BJ": {
			CountryCode:      "BJ",
			DisplayName:      "Bénin",
			CurrencyCode:     "XOF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{},
			CorporateTaxRate: pct("30"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
			OnlinePortalURL:  "https://impots.finances.bj",
		},
		"GA": {
			CountryCode:      "GA",
			DisplayName:      "Gabon",
			CurrencyCode:     "XAF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{pct("10"), pct("5")},
			CorporateTaxRate: pct("30"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
		},
	}
}

func ifrsCountryConfigs() map[string]domain.CountryConfig {
	return map[string]domain.CountryConfig{
		"NG": {
			CountryCode:      "NG",
			DisplayName:      "Nigeria",
			CurrencyCode:     "NGN",
			VATStandardRate:  pct("7.5"),
			VATReducedRates:  []decimal.Decimal{},
			CorporateTaxRate: pct("30"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "06-30",
			TaxAuthorityName: "Federal Inland Revenue Service (FIRS)",
			OnlinePortalURL:  "https://taxpromax.firs.gov.ng",
		},
		"GH": {
			CountryCode:      "GH",
			DisplayName:      "Ghana",
			CurrencyCode:     "GHS",
			VATStandardRate:  pct("15"),
			VATReducedRates:  []decimal.Decimal{pct("3")},
			CorporateTaxRate: pct("25"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Ghana Revenue Authority (GRA)",
			OnlinePortalURL:  "https://taxportal.gra.gov.gh",
		},
		"KE": {
			CountryCode:      "KE",
			DisplayName:      "Kenya",
			CurrencyCode:     "KES",
			VATStandardRate:  pct("16"),
			VATReducedRates:  []decimal.Decimal{pct("8")},
			CorporateTaxRate: pct("30"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "06-30",
			TaxAuthorityName: "Kenya Revenue Authority (KRA)",
			OnlinePortalURL:  "https://itax.kra.go.ke",
		},
		"ZA": {
			CountryCode:      "ZA",
			DisplayName:      "South Africa",
			CurrencyCode:     "ZAR",
			VATStandardRate:  pct("15"),
			VATReducedRates:  []decimal.Decimal{},
			CorporateTaxRate: pct("27"),
			FiscalYearEnd:    "02-28",
			FilingDeadline:   "01-31",
			TaxAuthorityName: "South African Revenue Service (SARS)",
			OnlinePortalURL:  "https://www.sarsefiling.co.za",
		},
		"RW": {
			CountryCode:      "RW",
			DisplayName:      "Rwanda",
			CurrencyCode:     "RWF",
			VATStandardRate:  pct("18"),
			VATReducedRates:  []decimal.Decimal{},
			CorporateTaxRate: pct("30"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "03-31",
			TaxAuthorityName: "Rwanda Revenue Authority (RRA)",
			OnlinePortalURL:  "https://etax.rra.gov.rw",
		},
	}
}

func scfCountryConfigs() map[string]domain.CountryConfig {
	return map[string]domain.CountryConfig{
		"DZ": {
			CountryCode:      "DZ",
			DisplayName:      "Algérie",
			CurrencyCode:     "DZD",
			VATStandardRate:  pct("19"),
			VATReducedRates:  []decimal.Decimal{pct("9")},
			CorporateTaxRate: pct("26"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "04-30",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
			OnlinePortalURL:  "https://jibayatic.dz",
		},
		"MA": {
			CountryCode:      "MA",
			DisplayName:      "Maroc",
			CurrencyCode:     "MAD",
			VATStandardRate:  pct("20"),
			VATReducedRates:  []decimal.Decimal{pct("14"), pct("10"), pct("7")},
			CorporateTaxRate: pct("31"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "03-31",
			TaxAuthorityName: "Direction Générale des Impôts (DGI)",
			OnlinePortalURL:  "https://www.tax.gov.ma",
		},
		"TN": {
			CountryCode:      "TN",
			DisplayName:      "Tunisie",
			CurrencyCode:     "TND",
			VATStandardRate:  pct("19"),
			VATReducedRates:  []decimal.Decimal{pct("13"), pct("7")},
			CorporateTaxRate: pct("15"),
			FiscalYearEnd:    "12-31",
			FilingDeadline:   "03-25",
			TaxAuthorityName: "Direction Générale des Impôts",
		},
	}
}

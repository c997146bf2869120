// Package statements checks the accounting identities a generated statement
// must satisfy. Identity mismatches are reported as data on the declaration,
// not raised as errors: an out-of-balance statement is still useful output
// for a bookkeeper to fix.
package statements

import (
	"fmt"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the absolute currency-unit tolerance shared by every
// identity check. It absorbs rounding, not real errors.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// ValidateBalanceEquation checks the balance-sheet identity
// Assets = Liabilities + Equity within BalanceTolerance.
func ValidateBalanceEquation(assets, liabilities, equity decimal.Decimal) domain.ValidationResult {
	result := domain.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{}}

	difference := assets.Sub(liabilities.Add(equity))
	if difference.Abs().GreaterThan(BalanceTolerance) {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"balance sheet does not balance: assets %s vs liabilities+equity %s (difference %s)",
			assets.StringFixed(2), liabilities.Add(equity).StringFixed(2), difference.StringFixed(2)))
	}

	return result
}

// ValidateIncomeStatement checks that the stated net income equals total
// revenue minus total expenses within BalanceTolerance. A reported loss adds
// a warning but never invalidates the statement.
func ValidateIncomeStatement(totalRevenue, totalExpense, statedNetIncome decimal.Decimal) domain.ValidationResult {
	result := domain.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{}}

	difference := totalRevenue.Sub(totalExpense).Sub(statedNetIncome)
	if difference.Abs().GreaterThan(BalanceTolerance) {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"income statement does not reconcile: revenue %s - expenses %s does not match stated net income %s (difference %s)",
			totalRevenue.StringFixed(2), totalExpense.StringFixed(2), statedNetIncome.StringFixed(2), difference.StringFixed(2)))
	}

	if statedNetIncome.IsNegative() {
		result.Warnings = append(result.Warnings, "entity reports a loss for the period")
	}

	return result
}

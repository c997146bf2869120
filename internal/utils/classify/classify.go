// Package classify provides pure selector functions over aggregated account
// balances. Each accounting standard rolls flat balances into its own
// statement sections using these selectors; none of them mutates the input
// map, and all of them return zero when nothing matches.
package classify

import (
	"strings"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// side picks the requested side of a matched account.
func side(b domain.AccountBalance, useDebit bool) decimal.Decimal {
	if useDebit {
		return b.Debit
	}
	return b.Credit
}

// SumByExactAccounts sums one side of the accounts whose numbers appear in
// the given list. Unknown account numbers contribute nothing.
func SumByExactAccounts(accounts []string, balances map[string]domain.AccountBalance, useDebit bool) decimal.Decimal {
	total := decimal.Zero
	for _, number := range accounts {
		if b, ok := balances[number]; ok {
			total = total.Add(side(b, useDebit))
		}
	}
	return total
}

// SumByPrefix sums one side of every account whose number starts with the
// given prefix.
func SumByPrefix(prefix string, balances map[string]domain.AccountBalance, useDebit bool) decimal.Decimal {
	total := decimal.Zero
	for number, b := range balances {
		if strings.HasPrefix(number, prefix) {
			total = total.Add(side(b, useDebit))
		}
	}
	return total
}

// SumByRange sums one side of every account whose leading digit falls in
// [firstDigit, lastDigit]. Used for whole-class totals such as classes 6-7.
func SumByRange(firstDigit, lastDigit byte, balances map[string]domain.AccountBalance, useDebit bool) decimal.Decimal {
	total := decimal.Zero
	for number, b := range balances {
		if number == "" {
			continue
		}
		if number[0] >= firstDigit && number[0] <= lastDigit {
			total = total.Add(side(b, useDebit))
		}
	}
	return total
}

// ClassBalance sums one side of a single account class. Alias of SumByPrefix
// kept for call sites that read as class totals.
func ClassBalance(prefix string, balances map[string]domain.AccountBalance, useDebit bool) decimal.Decimal {
	return SumByPrefix(prefix, balances, useDebit)
}

// ClassBalanceSigned sums the net balance (debit minus credit) of a class,
// flipping the sign for credit-normal classes so that liability, equity and
// revenue classes yield a positive magnitude when healthy, the same as asset
// and expense classes.
func ClassBalanceSigned(prefix string, balances map[string]domain.AccountBalance, isDebitNormal bool) decimal.Decimal {
	total := decimal.Zero
	for number, b := range balances {
		if strings.HasPrefix(number, prefix) {
			total = total.Add(b.Balance)
		}
	}
	if !isDebitNormal {
		return total.Neg()
	}
	return total
}

package domain

import "github.com/shopspring/decimal"

// AccountBalance holds the accumulated debit, credit and net balance of a
// single account over a reporting window. It is computed per request and
// never persisted on its own.
type AccountBalance struct {
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// Accumulate folds one ledger line into the balance and returns the updated
// value. Balance is recomputed as debit minus credit after every fold, so the
// invariant holds at every intermediate step and summation order is
// irrelevant.
func (b AccountBalance) Accumulate(debit, credit decimal.Decimal) AccountBalance {
	b.Debit = b.Debit.Add(debit)
	b.Credit = b.Credit.Add(credit)
	b.Balance = b.Debit.Sub(b.Credit)
	return b
}

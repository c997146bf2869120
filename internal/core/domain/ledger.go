package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a single debit/credit movement against one account within a
// ledger entry. Amounts are carried on the side they were booked; a line
// never holds both a debit and a credit.
type LedgerLine struct {
	LineID        string          `json:"lineID"`        // Primary Key (e.g., UUID)
	EntryID       string          `json:"entryID"`       // FK -> LedgerEntry.entryID (Not Null)
	AccountNumber string          `json:"accountNumber"` // Chart-of-accounts code, e.g. "4431"
	Label         string          `json:"label"`         // Nullable description
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// LedgerEntry is one recorded accounting event for a company, composed of
// balanced ledger lines. The engine only ever reads entries.
type LedgerEntry struct {
	EntryID   string       `json:"entryID"`   // Primary Key (e.g., UUID)
	CompanyID string       `json:"companyID"` // Owning company (Not Null)
	EntryDate time.Time    `json:"entryDate"` // Date the event occurred
	Reference string       `json:"reference"` // Nullable external reference
	Lines     []LedgerLine `json:"lines"`
	AuditFields
}

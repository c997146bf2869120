package domain

import "time"

// Standard identifies one of the supported accounting-standard families.
type Standard string

const (
	StandardSYSCOHADA Standard = "SYSCOHADA"
	StandardIFRS      Standard = "IFRS"
	StandardSCF       Standard = "SCF"
)

// DeclarationKind is the unqualified statement type requested by callers.
// The persisted declaration type is standard-qualified, see Qualified.
type DeclarationKind string

const (
	KindBalanceSheet       DeclarationKind = "BALANCE_SHEET"
	KindIncomeStatement    DeclarationKind = "INCOME_STATEMENT"
	KindVATReturn          DeclarationKind = "VAT_RETURN"
	KindCorporateTaxReturn DeclarationKind = "CORPORATE_TAX_RETURN"
	KindCashFlow           DeclarationKind = "CASH_FLOW"
)

// Qualified returns the persisted declaration type for a standard, e.g.
// "BALANCE_SHEET_IFRS".
func (k DeclarationKind) Qualified(std Standard) string {
	return string(k) + "_" + string(std)
}

// DeclarationStatus tracks a declaration through its filing lifecycle.
// The engine itself only ever produces Draft or Ready; later transitions are
// driven by an external workflow actor through UpdateStatus.
type DeclarationStatus string

const (
	StatusDraft    DeclarationStatus = "DRAFT"
	StatusReady    DeclarationStatus = "READY"
	StatusFiled    DeclarationStatus = "FILED"
	StatusAccepted DeclarationStatus = "ACCEPTED"
	StatusRejected DeclarationStatus = "REJECTED"
)

// FiscalDeclaration is the unit of work and persistence: one generated
// statement instance for a company and period under one standard.
type FiscalDeclaration struct {
	DeclarationID    string            `json:"declarationID"` // Assigned by the repository on insert
	Type             string            `json:"type"`          // Standard-qualified, e.g. "VAT_RETURN_SYSCOHADA"
	Standard         Standard          `json:"standard"`
	Country          string            `json:"country"` // ISO 3166-1 alpha-2
	Period           string            `json:"period"`  // "YYYY" or "YYYY-MM"
	DueDate          time.Time         `json:"dueDate"`
	Status           DeclarationStatus `json:"status"`
	CompanyID        string            `json:"companyID"`
	Data             any               `json:"data"` // Standard-specific statement payload
	ValidationErrors []string          `json:"validationErrors"`
	Warnings         []string          `json:"warnings"`
	FiledAt          *time.Time        `json:"filedAt,omitempty"`
	FiledBy          string            `json:"filedBy,omitempty"`
	AcceptanceDate   *time.Time        `json:"acceptanceDate,omitempty"`
	ReferenceNumber  string            `json:"referenceNumber,omitempty"`
	AuditFields
}

// StatusMetadata carries the optional attributes set alongside a lifecycle
// transition.
type StatusMetadata struct {
	FiledAt         *time.Time `json:"filedAt,omitempty"`
	FiledBy         string     `json:"filedBy,omitempty"`
	AcceptanceDate  *time.Time `json:"acceptanceDate,omitempty"`
	ReferenceNumber string     `json:"referenceNumber,omitempty"`
}

// DeclarationFilter narrows a declaration listing. Zero values mean "no
// filter" for that attribute.
type DeclarationFilter struct {
	Type    string
	Country string
	Status  DeclarationStatus
	Year    int
}

package dto

import (
	"time"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
)

// GenerateDeclarationRequest is the payload for generating a single fiscal
// declaration. Country is resolved to an accounting standard server-side.
type GenerateDeclarationRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=BALANCE_SHEET INCOME_STATEMENT VAT_RETURN CORPORATE_TAX_RETURN CASH_FLOW"`
	Country   string `json:"country" binding:"required,len=2"`
	Period    string `json:"period" binding:"required,fiscalperiod"` // "YYYY" or "YYYY-MM"
}

// GenerateBundleRequest is the payload for the statistical bundle endpoint.
type GenerateBundleRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	Country   string `json:"country" binding:"required,len=2"`
	Period    string `json:"period" binding:"required,fiscalperiod"`
}

// UpdateDeclarationStatusRequest carries a lifecycle transition and its
// optional filing metadata.
type UpdateDeclarationStatusRequest struct {
	Status          string     `json:"status" binding:"required,oneof=DRAFT READY FILED ACCEPTED REJECTED"`
	FiledAt         *time.Time `json:"filedAt,omitempty"`
	FiledBy         string     `json:"filedBy,omitempty"`
	AcceptanceDate  *time.Time `json:"acceptanceDate,omitempty"`
	ReferenceNumber string     `json:"referenceNumber,omitempty"`
}

// ToStatusMetadata converts the request metadata to its domain counterpart.
func (r UpdateDeclarationStatusRequest) ToStatusMetadata() domain.StatusMetadata {
	return domain.StatusMetadata{
		FiledAt:         r.FiledAt,
		FiledBy:         r.FiledBy,
		AcceptanceDate:  r.AcceptanceDate,
		ReferenceNumber: r.ReferenceNumber,
	}
}

// DeclarationResponse is the API representation of a fiscal declaration.
type DeclarationResponse struct {
	DeclarationID    string     `json:"declarationID"`
	CompanyID        string     `json:"companyID"`
	Type             string     `json:"type"`
	Standard         string     `json:"standard"`
	Country          string     `json:"country"`
	Period           string     `json:"period"`
	DueDate          time.Time  `json:"dueDate"`
	Status           string     `json:"status"`
	Data             any        `json:"data"`
	ValidationErrors []string   `json:"validationErrors"`
	Warnings         []string   `json:"warnings"`
	FiledAt          *time.Time `json:"filedAt,omitempty"`
	FiledBy          string     `json:"filedBy,omitempty"`
	AcceptanceDate   *time.Time `json:"acceptanceDate,omitempty"`
	ReferenceNumber  string     `json:"referenceNumber,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
}

// ToDeclarationResponse converts a domain.FiscalDeclaration to its DTO.
func ToDeclarationResponse(decl *domain.FiscalDeclaration) DeclarationResponse {
	return DeclarationResponse{
		DeclarationID:    decl.DeclarationID,
		CompanyID:        decl.CompanyID,
		Type:             decl.Type,
		Standard:         string(decl.Standard),
		Country:          decl.Country,
		Period:           decl.Period,
		DueDate:          decl.DueDate,
		Status:           string(decl.Status),
		Data:             decl.Data,
		ValidationErrors: decl.ValidationErrors,
		Warnings:         decl.Warnings,
		FiledAt:          decl.FiledAt,
		FiledBy:          decl.FiledBy,
		AcceptanceDate:   decl.AcceptanceDate,
		ReferenceNumber:  decl.ReferenceNumber,
		CreatedAt:        decl.CreatedAt,
		LastUpdatedAt:    decl.LastUpdatedAt,
	}
}

// ToDeclarationResponses converts a slice of declarations to DTOs.
func ToDeclarationResponses(decls []domain.FiscalDeclaration) []DeclarationResponse {
	responses := make([]DeclarationResponse, len(decls))
	for i := range decls {
		responses[i] = ToDeclarationResponse(&decls[i])
	}
	return responses
}

// ListDeclarationsResponse wraps a declaration listing.
type ListDeclarationsResponse struct {
	Declarations []DeclarationResponse `json:"declarations"`
}

// BundleResponse wraps the statements produced by a statistical bundle run.
type BundleResponse struct {
	CompanyID    string                `json:"companyID"`
	Country      string                `json:"country"`
	Period       string                `json:"period"`
	Declarations []DeclarationResponse `json:"declarations"`
}

// ToBundleResponse assembles the bundle DTO from the generated declarations.
func ToBundleResponse(companyID, country, period string, decls []*domain.FiscalDeclaration) BundleResponse {
	responses := make([]DeclarationResponse, len(decls))
	for i, decl := range decls {
		responses[i] = ToDeclarationResponse(decl)
	}
	return BundleResponse{
		CompanyID:    companyID,
		Country:      country,
		Period:       period,
		Declarations: responses,
	}
}

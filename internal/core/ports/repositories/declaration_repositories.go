package repositories

import (
	"context"

	"github.com/afrocompta/fiscal_engine/internal/core/domain"
)

// DeclarationRepository defines persistence operations for fiscal
// declarations.
type DeclarationRepository interface {
	// InsertDeclaration persists a newly generated declaration and returns
	// the assigned declaration ID.
	InsertDeclaration(ctx context.Context, declaration domain.FiscalDeclaration) (string, error)

	// FindDeclarationByID retrieves a declaration by its ID. Returns
	// apperrors.ErrNotFound when no declaration exists.
	FindDeclarationByID(ctx context.Context, declarationID string) (*domain.FiscalDeclaration, error)

	// ListDeclarations returns the company's declarations matching the
	// filter, ordered by due date descending.
	ListDeclarations(ctx context.Context, companyID string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error)

	// UpdateDeclarationStatus transitions a declaration's lifecycle status
	// and records the associated filing metadata.
	UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error
}

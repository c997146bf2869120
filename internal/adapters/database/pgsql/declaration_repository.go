package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	"github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
)

type PgxDeclarationRepository struct {
	*BaseRepository
}

func NewPgxDeclarationRepository(pool *pgxpool.Pool) repositories.DeclarationRepository {
	return &PgxDeclarationRepository{BaseRepository: NewBaseRepository(pool)}
}

// declarationRow mirrors the fiscal_declarations table. The generated
// statement payload is stored as JSONB and round-tripped through it.
type declarationRow struct {
	DeclarationID    string
	CompanyID        string
	DeclarationType  string
	Country          string
	Standard         string
	PeriodToken      string
	Status           string
	Data             []byte
	ValidationErrors []string
	Warnings         []string
	DueDate          time.Time
	FiledAt          *time.Time
	FiledBy          *string
	AcceptanceDate   *time.Time
	ReferenceNumber  *string
	CreatedAt        time.Time
	LastUpdatedAt    time.Time
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDeclarationRow(decl domain.FiscalDeclaration) (*declarationRow, error) {
	payload, err := json.Marshal(decl.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal declaration payload: %w", err)
	}
	return &declarationRow{
		DeclarationID:    decl.DeclarationID,
		CompanyID:        decl.CompanyID,
		DeclarationType:  decl.Type,
		Country:          decl.Country,
		Standard:         string(decl.Standard),
		PeriodToken:      decl.Period,
		Status:           string(decl.Status),
		Data:             payload,
		ValidationErrors: decl.ValidationErrors,
		Warnings:         decl.Warnings,
		DueDate:          decl.DueDate,
		FiledAt:          decl.FiledAt,
		FiledBy:          nullableString(decl.FiledBy),
		AcceptanceDate:   decl.AcceptanceDate,
		ReferenceNumber:  nullableString(decl.ReferenceNumber),
		CreatedAt:        decl.CreatedAt,
		LastUpdatedAt:    decl.LastUpdatedAt,
	}, nil
}

func (row *declarationRow) toDomain() (*domain.FiscalDeclaration, error) {
	var payload any
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal declaration payload: %w", err)
		}
	}
	decl := &domain.FiscalDeclaration{
		DeclarationID:    row.DeclarationID,
		CompanyID:        row.CompanyID,
		Type:             row.DeclarationType,
		Country:          row.Country,
		Standard:         domain.Standard(row.Standard),
		Period:           row.PeriodToken,
		Status:           domain.DeclarationStatus(row.Status),
		Data:             payload,
		ValidationErrors: row.ValidationErrors,
		Warnings:         row.Warnings,
		DueDate:          row.DueDate,
		FiledAt:          row.FiledAt,
		AcceptanceDate:   row.AcceptanceDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt,
			LastUpdatedAt: row.LastUpdatedAt,
		},
	}
	if row.FiledBy != nil {
		decl.FiledBy = *row.FiledBy
	}
	if row.ReferenceNumber != nil {
		decl.ReferenceNumber = *row.ReferenceNumber
	}
	return decl, nil
}

const declarationColumns = `declaration_id, company_id, declaration_type, country_code, standard,
		period_token, status, data, validation_errors, warnings, due_date,
		filed_at, filed_by, acceptance_date, reference_number, created_at, last_updated_at`

func scanDeclaration(row pgx.Row) (*domain.FiscalDeclaration, error) {
	var r declarationRow
	err := row.Scan(
		&r.DeclarationID, &r.CompanyID, &r.DeclarationType, &r.Country, &r.Standard,
		&r.PeriodToken, &r.Status, &r.Data, &r.ValidationErrors, &r.Warnings, &r.DueDate,
		&r.FiledAt, &r.FiledBy, &r.AcceptanceDate, &r.ReferenceNumber, &r.CreatedAt, &r.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.toDomain()
}

// InsertDeclaration persists a freshly generated declaration and returns the
// assigned identifier. Regenerating a period inserts a new row; earlier
// declarations for the same period are kept as history.
func (r *PgxDeclarationRepository) InsertDeclaration(ctx context.Context, decl domain.FiscalDeclaration) (string, error) {
	if decl.DeclarationID == "" {
		decl.DeclarationID = uuid.NewString()
	}
	row, err := toDeclarationRow(decl)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO fiscal_declarations (` + declarationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`

	_, err = r.Pool.Exec(ctx, query,
		row.DeclarationID, row.CompanyID, row.DeclarationType, row.Country, row.Standard,
		row.PeriodToken, row.Status, row.Data, row.ValidationErrors, row.Warnings, row.DueDate,
		row.FiledAt, row.FiledBy, row.AcceptanceDate, row.ReferenceNumber, row.CreatedAt, row.LastUpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert fiscal declaration: %w", err)
	}
	return row.DeclarationID, nil
}

func (r *PgxDeclarationRepository) FindDeclarationByID(ctx context.Context, declarationID string) (*domain.FiscalDeclaration, error) {
	query := `
		SELECT ` + declarationColumns + `
		FROM fiscal_declarations
		WHERE declaration_id = $1;`

	decl, err := scanDeclaration(r.Pool.QueryRow(ctx, query, declarationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: declaration %s", apperrors.ErrNotFound, declarationID)
		}
		return nil, fmt.Errorf("failed to fetch fiscal declaration: %w", err)
	}
	return decl, nil
}

// ListDeclarations returns the company's declarations matching the filter,
// newest filing deadline first. Zero-valued filter fields are ignored.
func (r *PgxDeclarationRepository) ListDeclarations(ctx context.Context, companyID string, filter domain.DeclarationFilter) ([]domain.FiscalDeclaration, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}

	addCondition := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.Type != "" {
		addCondition("declaration_type", filter.Type)
	}
	if filter.Country != "" {
		addCondition("country_code", filter.Country)
	}
	if filter.Status != "" {
		addCondition("status", string(filter.Status))
	}
	if filter.Year != 0 {
		args = append(args, fmt.Sprintf("%04d", filter.Year))
		conditions = append(conditions, fmt.Sprintf("period_token LIKE $%d || '%%'", len(args)))
	}

	query := `
		SELECT ` + declarationColumns + `
		FROM fiscal_declarations
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY due_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal declarations: %w", err)
	}
	defer rows.Close()

	var declarations []domain.FiscalDeclaration
	for rows.Next() {
		decl, err := scanDeclaration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal declaration: %w", err)
		}
		declarations = append(declarations, *decl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal declarations: %w", err)
	}
	return declarations, nil
}

// UpdateDeclarationStatus applies a lifecycle transition together with its
// metadata. Attributes not carried by the transition are left untouched.
func (r *PgxDeclarationRepository) UpdateDeclarationStatus(ctx context.Context, declarationID string, status domain.DeclarationStatus, metadata domain.StatusMetadata) error {
	query := `
		UPDATE fiscal_declarations
		SET status = $2,
		    filed_at = COALESCE($3, filed_at),
		    filed_by = COALESCE($4, filed_by),
		    acceptance_date = COALESCE($5, acceptance_date),
		    reference_number = COALESCE($6, reference_number),
		    last_updated_at = $7
		WHERE declaration_id = $1;`

	tag, err := r.Pool.Exec(ctx, query,
		declarationID, string(status),
		metadata.FiledAt, nullableString(metadata.FiledBy),
		metadata.AcceptanceDate, nullableString(metadata.ReferenceNumber),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to update declaration status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: declaration %s", apperrors.ErrNotFound, declarationID)
	}
	return nil
}

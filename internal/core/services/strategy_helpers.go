package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/afrocompta/fiscal_engine/internal/apperrors"
	"github.com/afrocompta/fiscal_engine/internal/core/domain"
	portsrepo "github.com/afrocompta/fiscal_engine/internal/core/ports/repositories"
	"github.com/afrocompta/fiscal_engine/internal/utils/classify"
	"github.com/shopspring/decimal"
)

// StatementLine is one labelled figure inside a statement section.
type StatementLine struct {
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// StatementSection groups statement lines under a mandated heading.
type StatementSection struct {
	Label string          `json:"label"`
	Lines []StatementLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// newSection builds a section whose total is the sum of its lines.
func newSection(label string, lines ...StatementLine) StatementSection {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return StatementSection{Label: label, Lines: lines, Total: total}
}

// sumPrefixes sums one side of every account matching any of the prefixes.
func sumPrefixes(balances map[string]domain.AccountBalance, useDebit bool, prefixes ...string) decimal.Decimal {
	total := decimal.Zero
	for _, prefix := range prefixes {
		total = total.Add(classify.SumByPrefix(prefix, balances, useDebit))
	}
	return total
}

// sumSigned sums the signed class balances of every matching prefix.
func sumSigned(balances map[string]domain.AccountBalance, isDebitNormal bool, prefixes ...string) decimal.Decimal {
	total := decimal.Zero
	for _, prefix := range prefixes {
		total = total.Add(classify.ClassBalanceSigned(prefix, balances, isDebitNormal))
	}
	return total
}

// resolveCountry looks a country up in a strategy's registry; absence is a
// hard failure raised before any aggregation work begins.
func resolveCountry(countries map[string]domain.CountryConfig, code string) (domain.CountryConfig, error) {
	cfg, ok := countries[code]
	if !ok {
		return domain.CountryConfig{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCountry, code)
	}
	return cfg, nil
}

// enumerateClassAccounts generates every numeric account code of the given
// digit width whose class (leading digit) lies in [firstClass, lastClass].
// Each standard enumerates at its own chart-of-accounts granularity; the
// widths deliberately differ between strategies.
func enumerateClassAccounts(firstClass, lastClass int, digits int) []string {
	perClass := 1
	for i := 1; i < digits; i++ {
		perClass *= 10
	}

	codes := make([]string, 0, (lastClass-firstClass+1)*perClass)
	for class := firstClass; class <= lastClass; class++ {
		base := class * perClass
		for offset := 0; offset < perClass; offset++ {
			codes = append(codes, strconv.Itoa(base+offset))
		}
	}
	return codes
}

// vatPosition is the common net-VAT arithmetic shared by every standard:
// the classification of the control accounts differs per standard, the
// payable/refund split does not.
type vatPosition struct {
	Net     decimal.Decimal
	Payable decimal.Decimal
	Refund  decimal.Decimal
}

func computeVATPosition(collected, deductible decimal.Decimal) (vatPosition, []string) {
	net := collected.Sub(deductible)
	position := vatPosition{Net: net, Payable: decimal.Zero, Refund: decimal.Zero}

	var warnings []string
	if net.IsNegative() {
		position.Refund = net.Neg()
		warnings = append(warnings, fmt.Sprintf("VAT credit of %s to carry forward to the next period", position.Refund.StringFixed(2)))
	} else {
		position.Payable = net
	}
	return position, warnings
}

// computeCorporateTax applies the country rate to the positive part of the
// taxable income. The engine takes taxable income directly as the pre-tax
// result, with no book-to-tax adjustments.
func computeCorporateTax(taxableIncome, ratePercent decimal.Decimal) (decimal.Decimal, []string) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, []string{fmt.Sprintf("taxable income is negative (%s): loss carried forward", taxableIncome.StringFixed(2))}
	}
	tax := taxableIncome.Mul(ratePercent).Div(decimal.NewFromInt(100))
	return tax, nil
}

// buildDeclaration assembles the persistable declaration envelope around a
// statement payload. Status is Ready only when validation produced no
// errors; warnings never demote a declaration.
func buildDeclaration(kind domain.DeclarationKind, standard domain.Standard, cfg domain.CountryConfig, companyID string, period domain.Period, data any, validation domain.ValidationResult, extraWarnings []string) domain.FiscalDeclaration {
	status := domain.StatusReady
	if len(validation.Errors) > 0 {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	return domain.FiscalDeclaration{
		Type:             kind.Qualified(standard),
		Standard:         standard,
		Country:          cfg.CountryCode,
		Period:           period.Token,
		DueDate:          period.DueDate(cfg),
		Status:           status,
		CompanyID:        companyID,
		Data:             data,
		ValidationErrors: validation.Errors,
		Warnings:         append(append([]string{}, validation.Warnings...), extraWarnings...),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

// persistDeclaration writes the declaration and returns it with the
// repository-assigned ID. A write failure means the computed statement is
// not durably recorded.
func persistDeclaration(ctx context.Context, repo portsrepo.DeclarationRepository, declaration domain.FiscalDeclaration) (*domain.FiscalDeclaration, error) {
	id, err := repo.InsertDeclaration(ctx, declaration)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	declaration.DeclarationID = id
	return &declaration, nil
}

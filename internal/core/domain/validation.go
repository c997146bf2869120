package domain

// ValidationResult captures the outcome of an accounting-identity check.
// It is produced fresh per validation call and only ever embedded into a
// declaration, never persisted independently. Warnings never flip IsValid.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Merge folds another result into this one. Validity is the conjunction of
// both results.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.IsValid = r.IsValid && other.IsValid
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

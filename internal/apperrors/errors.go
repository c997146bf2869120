package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnsupportedCountry indicates that the requested country has no entry in
// the standard-membership table or no country configuration.
var ErrUnsupportedCountry = errors.New("unsupported country")

// ErrUnsupportedStandard indicates that no strategy is registered for the
// requested accounting standard.
var ErrUnsupportedStandard = errors.New("unsupported accounting standard")

// ErrUnsupportedDeclarationType indicates that the requested declaration type
// has no matching generator.
var ErrUnsupportedDeclarationType = errors.New("unsupported declaration type")

// ErrAggregation indicates that the ledger data source read failed.
var ErrAggregation = errors.New("ledger aggregation failed")

// ErrPersistence indicates that a repository write failed after the statement
// was assembled; the caller must treat the result as not durably recorded.
var ErrPersistence = errors.New("declaration persistence failed")

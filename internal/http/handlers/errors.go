// Package handlers – error codes.
//
// Codes are lowercase snake_case and stable; clients branch on them. Generic
// codes mirror HTTP semantics, the rest name the operation that failed.
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeValidation  = "validation_failed"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeListFailed          = "list_failed"
	ErrCodeCreateFailed        = "create_failed"
	ErrCodeUpdateFailed        = "update_failed"
	ErrCodeDeleteFailed        = "delete_failed"
	ErrCodeImportFailed        = "import_failed"
	ErrCodeNothingToSeed       = "nothing_to_seed"
	ErrCodeBaselineUnavailable = "baseline_unavailable"
	ErrCodeBackfillFailed      = "backfill_failed"
	ErrCodeExportFailed        = "export_failed"
	ErrCodeMethodNotAllowed    = "method_not_allowed"
)

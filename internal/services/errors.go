// Package services holds the business logic for reschedule records: CRUD with
// validation, baseline reconciliation, and the date backfill.
//
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
// Translation into HTTP status codes happens in the handler layer.
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRescheduleNotFound indicates that no record has the requested id.
	ErrRescheduleNotFound = errors.New("reschedule not found")

	// ErrBaselineUnavailable wraps failures to load the baseline snapshot.
	ErrBaselineUnavailable = errors.New("baseline unavailable")

	// ErrNothingToSeed is returned by Seed when the baseline holds no records.
	ErrNothingToSeed = errors.New("baseline is empty")
)

// FieldIssue describes one failed rule on one input field.
type FieldIssue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when input fails validation. Nothing has been
// written when it is returned.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", is.Field, is.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

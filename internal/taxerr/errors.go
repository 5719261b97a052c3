// Package taxerr holds the error types returned while reconciling tax rates.
// Callers match them with errors.Is against the sentinels, or errors.As to
// get at the country and class that failed.
package taxerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoDeclaration means no rate table is declared for a country
	ErrNoDeclaration = errors.New("no tax rate declaration")

	// ErrInvalidDeclaration means a declaration exists but cannot be parsed
	ErrInvalidDeclaration = errors.New("invalid tax rate declaration")

	// ErrStorageWrite means the rate store rejected an insert or update
	ErrStorageWrite = errors.New("tax rate storage write failed")

	// ErrRateNotFound means an update matched no stored rate
	ErrRateNotFound = errors.New("tax rate not found")
)

// ConfigurationError is returned when the active country cannot be reconciled
// because its declared rates are missing or broken.
type ConfigurationError struct {
	Country string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tax configuration for country %q: %v", e.Country, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(country string, err error) *ConfigurationError {
	return &ConfigurationError{Country: country, Err: err}
}

// Operation names used in StorageWriteError
const (
	OpInsert = "insert"
	OpUpdate = "update"
)

// StorageWriteError describes one rejected insert or update.
type StorageWriteError struct {
	Country string
	Class   string
	Op      string
	ID      uint // zero for inserts
	Err     error
}

func (e *StorageWriteError) Error() string {
	if e.Op == OpUpdate {
		return fmt.Sprintf("%s tax rate %d (country %q, class %q): %v", e.Op, e.ID, e.Country, e.Class, e.Err)
	}
	return fmt.Sprintf("%s tax rate (country %q, class %q): %v", e.Op, e.Country, e.Class, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StorageWriteError) Is(target error) bool {
	return target == ErrStorageWrite
}

// ReconcileError collects the per-class failures of a reconciliation.
// Operations that succeeded before or after a failure are not rolled back.
type ReconcileError struct {
	Country  string
	Failures []*StorageWriteError
	// Err is set when a step after the rate writes failed (the class list).
	Err error
}

func (e *ReconcileError) Error() string {
	msgs := make([]string, 0, len(e.Failures)+1)
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	if e.Err != nil {
		msgs = append(msgs, e.Err.Error())
	}
	return fmt.Sprintf("reconcile tax rates for country %q: %d failure(s): %s",
		e.Country, len(msgs), strings.Join(msgs, "; "))
}

func (e *ReconcileError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Classes returns the class labels that failed, in failure order.
func (e *ReconcileError) Classes() []string {
	classes := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		classes = append(classes, f.Class)
	}
	return classes
}

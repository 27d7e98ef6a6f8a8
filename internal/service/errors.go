package service

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrTenantRequired = errors.New("tenant ID not found in request")
	ErrNoContent      = errors.New("no content found to publish, please save changes first")
	ErrTenantNotFound = errors.New("tenant record not found in central database")
	ErrNotPublished   = errors.New("no published career page found")
)

// ValidationError reports a rejected authoring input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PayloadTooLargeError reports content over a size cap.
type PayloadTooLargeError struct {
	Subject string
	Size    int
	Limit   int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("%s too large (%d bytes, max %d)", e.Subject, e.Size, e.Limit)
}

// PersistenceError is returned when at least one store rejected a publish write.
// A nil field means that store was written.
type PersistenceError struct {
	AggregateErr error
	SnapshotErr  error
}

func (e *PersistenceError) Error() string {
	parts := make([]string, 0, 2)
	if e.AggregateErr != nil {
		parts = append(parts, "aggregate: "+e.AggregateErr.Error())
	}
	if e.SnapshotErr != nil {
		parts = append(parts, "snapshot: "+e.SnapshotErr.Error())
	}
	return "persist career page: " + strings.Join(parts, "; ")
}

func (e *PersistenceError) Unwrap() []error {
	var errs []error
	if e.AggregateErr != nil {
		errs = append(errs, e.AggregateErr)
	}
	if e.SnapshotErr != nil {
		errs = append(errs, e.SnapshotErr)
	}
	return errs
}

// Partial reports whether exactly one store was written.
func (e *PersistenceError) Partial() bool {
	return (e.AggregateErr == nil) != (e.SnapshotErr == nil)
}

// PublishError wraps any publish failure with what the caller needs for diagnostics.
type PublishError struct {
	Stage      string
	HasCompany bool
	Err        error
}

func (e *PublishError) Error() string { return e.Err.Error() }

func (e *PublishError) Unwrap() error { return e.Err }

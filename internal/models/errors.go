// internal/models/errors.go
package models

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrReportNotFound  = errors.New("report not found")
	ErrUnknownSource   = errors.New("unknown data source")
)

// MalformedRecordError describes a journal or account row that could not be
// converted into its typed record. It matches ErrMalformedRecord with errors.Is.
type MalformedRecordError struct {
	Source string
	Line   int
	Field  string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("%s: %s line %d", ErrMalformedRecord, e.Source, e.Line)
	if e.Field != "" {
		msg += fmt.Sprintf(" field %s=%q", e.Field, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

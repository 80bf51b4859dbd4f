// pkg/model/errors.go
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind categorizes pipeline failures so the operator shell can render
// each one distinctly: fix configuration, fix the spreadsheet, or retry later.
type ErrorKind int

const (
	// KindConfiguration means a required external identifier is absent
	KindConfiguration ErrorKind = iota
	// KindSchemaResolution means a mandatory column could not be located
	KindSchemaResolution
	// KindEmptyInput means a required table had no rows after filtering
	KindEmptyInput
	// KindNoQuestionsFound means the reaction form exposes no answer columns
	KindNoQuestionsFound
	// KindNoMatchingRows means answer columns exist but no row survived validation
	KindNoMatchingRows
	// KindTransport means the external store read or write failed
	KindTransport
)

// String returns a string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "Configuration"
	case KindSchemaResolution:
		return "SchemaResolution"
	case KindEmptyInput:
		return "EmptyInput"
	case KindNoQuestionsFound:
		return "NoQuestionsFound"
	case KindNoMatchingRows:
		return "NoMatchingRows"
	case KindTransport:
		return "Transport"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// DataError is a typed, synchronous pipeline failure. None of these are
// retried automatically: they signal a configuration or schema mismatch that
// needs human correction at the source.
type DataError struct {
	Kind       ErrorKind
	Message    string
	Resolution map[string]string // concept -> column found (or "not found")
	Err        error             // wrapped cause, set for transport failures
}

// NewDataError creates a data error of the given kind
func NewDataError(kind ErrorKind, format string, args ...interface{}) *DataError {
	return &DataError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapTransport wraps an external store failure without altering it
func WrapTransport(err error, context string) *DataError {
	return &DataError{Kind: KindTransport, Message: context, Err: err}
}

// WithResolution records the attempted resolution state for one concept
func (e *DataError) WithResolution(concept, column string) *DataError {
	if e.Resolution == nil {
		e.Resolution = make(map[string]string)
	}
	if column == "" {
		column = "not found"
	}
	e.Resolution[concept] = column
	return e
}

// Error formats the failure with its kind and any resolution state
func (e *DataError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if len(e.Resolution) > 0 {
		concepts := make([]string, 0, len(e.Resolution))
		for concept := range e.Resolution {
			concepts = append(concepts, concept)
		}
		sort.Strings(concepts)
		parts := make([]string, 0, len(concepts))
		for _, concept := range concepts {
			parts = append(parts, fmt.Sprintf("%s=%s", concept, e.Resolution[concept]))
		}
		sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(parts, ", ")))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As
func (e *DataError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a DataError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var de *DataError
	return errors.As(err, &de) && de.Kind == kind
}

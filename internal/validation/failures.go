package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Failure is a single validation failure: a human-readable message plus the
// JSON names of the offending fields. Cross-field rules name every field
// involved.
type Failure struct {
	Fields  []string `json:"fields"`
	Message string   `json:"message"`
}

// Failures collects the failures produced by one validation pass. DTOs return
// it from Validate instead of failing on the first broken rule.
type Failures []Failure

// Error implements the error interface so a failure list can travel through
// service and handler layers like any other error.
func (f Failures) Error() string {
	msgs := make([]string, 0, len(f))
	for _, fail := range f {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.Join(fail.Fields, ","), fail.Message))
	}
	return strings.Join(msgs, "; ")
}

// Add appends a failure for the given fields.
func (f *Failures) Add(message string, fields ...string) {
	*f = append(*f, Failure{Fields: fields, Message: message})
}

// Prefixed returns a copy with every field name prefixed. Collection checks
// use it to report element failures as "documents[3].file_name".
func (f Failures) Prefixed(prefix string) Failures {
	if len(f) == 0 {
		return nil
	}
	out := make(Failures, len(f))
	for i, fail := range f {
		fields := make([]string, len(fail.Fields))
		for j, name := range fail.Fields {
			fields[j] = prefix + name
		}
		out[i] = Failure{Fields: fields, Message: fail.Message}
	}
	return out
}

// Validatable is implemented by DTOs that can validate themselves.
type Validatable interface {
	Validate() Failures
}

// AsFailures extracts a failure list from an error chain, so handlers can
// distinguish validation errors from everything else.
func AsFailures(err error) (Failures, bool) {
	var f Failures
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

package wiki

import (
	"fmt"
	"strings"
)

// ValidationError indicates a tool argument that failed shape validation.
type ValidationError struct {
	Field   string // field name that failed validation
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid arguments: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid arguments: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates no page exists for the given lookup key after all
// normalization attempts. Attempts lists the path variants tried; it is
// diagnostic detail only and never appears in the error text.
type NotFoundError struct {
	Key      string // "id" or "path"
	Value    string
	Attempts []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no page found for %s %q", e.Key, e.Value)
}

// UpstreamError indicates a transport or GraphQL-level failure from the wiki.
type UpstreamError struct {
	Operation string // "list", "single", "singleByPath", "create", "update"
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("wiki API %s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// CreateFailedError reports a create mutation that did not succeed on any
// attempted path variant. The "after multiple attempts" phrasing appears
// only when more than one variant was actually tried.
type CreateFailedError struct {
	Path        string
	Attempts    int
	LastMessage string
}

func (e *CreateFailedError) Error() string {
	detail := e.LastMessage
	if detail == "" {
		detail = "the wiki rejected the page"
	}
	if e.Attempts > 1 {
		return fmt.Sprintf("failed to create page %q after multiple attempts: %s", e.Path, detail)
	}
	return fmt.Sprintf("failed to create page %q: %s", e.Path, detail)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// Wiki.js ships a defect where a successful page update still reports a
// failed responseResult carrying a TypeError from the server's own code.
// Updates whose failure message matches one of these signatures are
// reclassified as success. The signature set is deliberately narrow so
// unrelated future error messages are never swallowed; both the pre- and
// post-V8-9.0 phrasings of the TypeError are listed.
var knownUpdateQuirkSignatures = []string{
	"Cannot read property 'map' of undefined",
	"Cannot read properties of undefined (reading 'map')",
}

// IsKnownUpdateQuirk reports whether message matches the known Wiki.js
// update defect signature.
func IsKnownUpdateQuirk(message string) bool {
	for _, sig := range knownUpdateQuirkSignatures {
		if strings.Contains(message, sig) {
			return true
		}
	}
	return false
}

// Package errs defines the error taxonomy shared by the repositories,
// services and handlers. Callers branch with errors.Is instead of comparing
// message strings.
package errs

import "errors"

var (
	// ErrNotFound means the requested identifier resolved to no live row.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken means the email is already used by another live account.
	ErrEmailTaken = errors.New("email already in use")

	// ErrForbidden means the caller lacks permission for the operation.
	ErrForbidden = errors.New("no permission")

	// ErrPasswordMismatch means old-password verification failed.
	ErrPasswordMismatch = errors.New("password not correct")

	// ErrSupplierNotFound means a product referenced a missing supplier.
	ErrSupplierNotFound = errors.New("supplier not found")
)

// FieldError is a single failed validation rule on a named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ValidationError aggregates per-field failures for a 422 response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package domain

// FormatError reports a malformed user-supplied value, such as a date string
// that does not parse under the expected layout.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

// NotFoundError reports a reference to an entity that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConstraintError reports a write-time invariant violation, either detected
// before persistence or surfaced by the store.
type ConstraintError struct {
	Message string
	Err     error
}

func (e *ConstraintError) Error() string { return e.Message }

func (e *ConstraintError) Unwrap() error { return e.Err }

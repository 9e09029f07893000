package models

import "fmt"

// ValidationError reports bad input at the model boundary: a disallowed image
// MIME type, an oversized file, or a missing required field before packaging.
// Always recoverable locally: the offending element is simply not created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError reports a cart exclusivity violation: a cart may contain
// either standard (priced) items or exactly one custom design, never both.
// Blocking names the kind of line that blocks the operation.
type ConflictError struct {
	Blocking string // "standard" or "custom"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cart already contains %s items; clear them before adding the other kind", e.Blocking)
}

// UploadError reports an object storage failure during finalization. It aborts
// the whole order submission; no partial design is persisted.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// NotFoundError reports a missing resource. Element-level lookups during an
// editing session are deliberately NOT reported with this type (they are
// no-ops, see canvas.Session); this is for carts, products, orders and designs.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

package templater

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-pathtemplate/pkg/format"
)

// ErrNotInitialized is returned by rendering operations on a templater that
// still lacks a top directory, directory, or filename template.
var ErrNotInitialized = errors.New("templater: not fully initialized")

// ErrAlreadyInitialized is returned by Create and CreateFromParts when the
// receiver was already initialized.
var ErrAlreadyInitialized = errors.New("templater: already initialized")

// MissingPlaceholderError reports the first placeholder a full substitution
// could not resolve. It aliases the format package error so callers can use
// errors.As against either package.
type MissingPlaceholderError = format.MissingKeyError

// UnknownOperationError reports a preset call-spec that named an operation
// the templater does not provide, or supplied arguments the operation cannot
// accept.
type UnknownOperationError struct {
	// Op is the operation name the call-spec tried to resolve.
	Op string
	// Spec is the offending call-spec.
	Spec CallSpec
	// Reason is empty for a plain lookup miss.
	Reason string
}

func (e *UnknownOperationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("templater: preset field %s:%s cannot invoke operation %q: %s", e.Op, e.Spec, e.Op, e.Reason)
	}
	return fmt.Sprintf("templater: preset field %s:%s provided but no operation %q exists", e.Op, e.Spec, e.Op)
}

// UnknownVariantError reports a variant shortcut lookup miss.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("templater: variant %q not registered", e.Name)
}

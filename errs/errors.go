// Package errs defines the sentinel errors shared across strata packages.
//
// All fallible operations return one of these values, possibly wrapped with
// additional context via fmt.Errorf("%w: ...", err). Callers should match
// them with errors.Is rather than comparing directly, since corruption
// errors wrap both the generic ErrCorrupted sentinel and a more specific
// cause (ErrInvalidHeader or ErrInvalidSectionRecord).
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupted is returned when persisted layer bytes are short,
	// truncated, or fail to parse as declared. It always wraps a more
	// specific cause and is never silently recovered from.
	ErrCorrupted = errors.New("layer data corrupted")

	// ErrInvalidHeader is returned when the fixed-size layer header is
	// short or malformed.
	ErrInvalidHeader = errors.New("invalid layer header")

	// ErrInvalidSectionRecord is returned when a section record read from
	// the persistent resource is short, malformed, or inconsistent with the
	// declared layer size.
	ErrInvalidSectionRecord = errors.New("invalid section record")

	// ErrOutOfBounds is returned when a read request does not fall fully
	// within exactly one stored section. Recoverable: the caller may retry
	// the read against a different layer in the stack.
	ErrOutOfBounds = errors.New("read out of bounds")

	// ErrReadOnlyLayer is returned when a write is attempted against a
	// disk-backed layer. Always a caller logic error, never transient.
	ErrReadOnlyLayer = errors.New("layer is read-only")

	// ErrSectionOverlap is returned by the checked write path when the
	// requested range overlaps an existing section.
	ErrSectionOverlap = errors.New("write overlaps existing section")

	// ErrInvalidSnapshot is returned when snapshot envelope bytes are short
	// or carry an unknown magic number.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrChecksumMismatch is returned when a snapshot's payload checksum
	// does not match the checksum recorded in its envelope.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
)

// Corrupt wraps cause under ErrCorrupted so callers can match either the
// generic corruption condition or the specific cause with errors.Is.
func Corrupt(cause error) error {
	return fmt.Errorf("%w: %w", ErrCorrupted, cause)
}

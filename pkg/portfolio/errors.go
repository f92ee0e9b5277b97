package portfolio

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField indicates a required entry field was absent
	ErrMissingField = errors.New("missing field")

	// ErrInvalidField indicates an entry field had the wrong shape
	ErrInvalidField = errors.New("invalid field")

	// ErrUnresolvedLink indicates an asset reference was not included in the response
	ErrUnresolvedLink = errors.New("unresolved link")

	// ErrInvalidAssetURL indicates a stored asset path cannot be made absolute
	ErrInvalidAssetURL = errors.New("invalid asset url")

	// ErrFetchPanicked indicates a concurrent sub-fetch aborted
	ErrFetchPanicked = errors.New("fetch panicked")

	// ErrAssetNotFound indicates a local asset does not exist
	ErrAssetNotFound = errors.New("asset not found")

	// ErrDirectAccess indicates an asset store has no direct URL and must be streamed
	ErrDirectAccess = errors.New("direct access not supported")
)

// EntryError reports a remote entry that could not be parsed.
type EntryError struct {
	EntryID     string
	ContentType string
	Field       string
	Err         error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s entry %s: field %q: %v", e.ContentType, e.EntryID, e.Field, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// QueryError reports a failed query for one content type.
type QueryError struct {
	ContentType string
	Op          string
	Err         error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.ContentType, e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

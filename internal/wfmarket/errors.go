package wfmarket

import (
	"errors"
	"fmt"
)

// Typed failures for the non-200 statuses warframe.market is known to
// return. The presentation layer matches these with errors.Is to pick a
// user-facing message.
var (
	// ErrUnauthorized corresponds to HTTP 401.
	ErrUnauthorized = errors.New("error 401: insufficient credentials for this request")
	// ErrForbidden corresponds to HTTP 403.
	ErrForbidden = errors.New("error 403: access to the requested resource is forbidden")
	// ErrItemNotFound corresponds to HTTP 404, which for this endpoint means
	// the item name does not exist on the marketplace.
	ErrItemNotFound = errors.New("error 404: this item does not exist; check the spelling, and quote multi-word names")
	// ErrMethodNotAllowed corresponds to HTTP 405.
	ErrMethodNotAllowed = errors.New("error 405: the target resource does not support this method")
	// ErrServer corresponds to HTTP 500.
	ErrServer = errors.New("error 500: warframe.market encountered an internal error")
)

// StatusError reports an HTTP status outside the known set.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from warframe.market", e.Code)
}

// SchemaError reports a required field missing from the fetched payload.
// It names the full JSON path so an API contract change is diagnosable from
// the message alone. Never swallowed: extraction aborts the query.
type SchemaError struct {
	Path string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("marketplace payload is missing required field %q", e.Path)
}

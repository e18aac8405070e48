package resolve

import "errors"

var (
	// ErrUnknownRole means the role has no selector in the table. Programming
	// error, not page state.
	ErrUnknownRole = errors.New("resolve: unknown role")

	// ErrNotFound means no element resolved for the role right now.
	ErrNotFound = errors.New("resolve: element not found")

	// ErrElementNotReady means the target did not become attached, visible
	// and enabled within the bounded wait. Callers decide whether to retry;
	// the resolver never does.
	ErrElementNotReady = errors.New("resolve: element not ready")
)

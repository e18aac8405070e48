package roominglist

import "errors"

var (
	// ErrStateTransitionTimeout means a commit or close action's expected
	// post-condition never became true within the wait bound. Fatal for the
	// scenario; never retried here.
	ErrStateTransitionTimeout = errors.New("roominglist: state transition timeout")

	// ErrPreconditionViolated means a read was attempted against a component
	// in an incompatible state, e.g. booking fields while the detail modal is
	// hidden. Programming error, not page flakiness.
	ErrPreconditionViolated = errors.New("roominglist: precondition violated")
)

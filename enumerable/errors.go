package enumerable

import (
	"errors"
)

var (
	// ErrInvalidSourceType is returned when a pipeline source, or an argument to concatenate/zip,
	// is neither an ordered sequence, a keyed map nor enumerable.
	ErrInvalidSourceType = errors.New("source is neither a sequence nor enumerable")

	// ErrIndexOutOfBounds is returned when a positional operation is given a position outside [0, length).
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrEndlessCycleDetected is returned when the diff engine's safety counter is exhausted.
	ErrEndlessCycleDetected = errors.New("endless cycle detected while analyzing changes")

	// ErrReentrantResetBlocked is returned when a mutation tries to notify while a RESET notification is in flight.
	ErrReentrantResetBlocked = errors.New("collection is being reset, mutation is not allowed")

	// ErrChainDestroyed is returned when a destroyed pipeline node is consumed.
	ErrChainDestroyed = errors.New("chain node has been destroyed")

	// ErrUnknownOperator is returned when the factory table has no constructor for an operator.
	ErrUnknownOperator = errors.New("no factory registered for operator")

	// ErrSessionAlreadyAnalyzed is returned when a finished change session is analyzed a second time.
	ErrSessionAlreadyAnalyzed = errors.New("change session has already been analyzed")

	// ErrSessionNotFinished is returned when a change session is analyzed before its "after" state was captured.
	ErrSessionNotFinished = errors.New("change session is not finished")

	// ErrNilSource is returned when a nil source or resolver is supplied.
	ErrNilSource = errors.New("nil source supplied")
)

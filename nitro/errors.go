package nitro

import (
	"errors"
	"fmt"
)

var (
	ErrArgument              = errors.New("invalid argument")
	ErrDuplicateSubscription = errors.New("duplicate subscription")
	ErrEffectFailed          = errors.New("effect failed")
)

// ArgumentError is returned when a constructor or combinator receives a
// missing or mistyped argument. Nothing is mutated when it is returned.
type ArgumentError struct {
	Op     string
	Arg    string
	Reason string
}

func newArgumentError(op, arg, reason string) *ArgumentError {
	return &ArgumentError{Op: op, Arg: arg, Reason: reason}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %q %s", e.Op, e.Arg, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrArgument
}

// DuplicateSubscriptionError is returned by On and Reset when the store already
// listens to the signal in the same registry.
type DuplicateSubscriptionError struct {
	Op     string
	Store  ID
	Signal ID
}

func (e *DuplicateSubscriptionError) Error() string {
	return fmt.Sprintf("%s: store %s already listens to signal %s", e.Op, e.Store, e.Signal)
}

func (e *DuplicateSubscriptionError) Unwrap() error {
	return ErrDuplicateSubscription
}

// EffectFailure is the payload of an effect's Fail signal.
type EffectFailure struct {
	Effect ID
	Params any
	Err    error
}

func (e *EffectFailure) Error() string {
	return fmt.Sprintf("effect %s: %v", e.Effect, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is.
func (e *EffectFailure) Unwrap() []error {
	return []error{ErrEffectFailed, e.Err}
}

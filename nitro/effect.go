package nitro

import (
	"fmt"
	"sync/atomic"
)

// Effect wraps an asynchronous unit of work. Calling it emits Exec; the work
// then runs on its own goroutine. Its outcome is queued on the System and
// emitted through Done or Fail by the goroutine that drains the System with
// Settle or Wait, so watchers never run in parallel with other emissions.
//
// Invocations are independent: there is no deduplication, no queueing and no
// cancellation.
type Effect[P, R any] struct {
	sys *System
	id  ID
	fn  func(P) (R, error)

	Exec *Signal[P]
	Done *Signal[R]
	// Fail carries an *EffectFailure.
	Fail *Signal[error]

	running atomic.Int64
}

func NewEffect[P, R any](sys *System, fn func(P) (R, error)) (*Effect[P, R], error) {
	const op = "NewEffect"
	if sys == nil {
		return nil, newArgumentError(op, "sys", "must not be nil")
	}
	if fn == nil {
		return nil, newArgumentError(op, "fn", "must not be nil")
	}

	e := &Effect[P, R]{
		sys:  sys,
		id:   sys.generateID(),
		fn:   fn,
		Exec: NewSignal[P](sys),
		Done: NewSignal[R](sys),
		Fail: NewSignal[error](sys),
	}
	e.Exec.Watch(e.run)
	sys.created(topicEffectCreated, e)
	return e, nil
}

func (e *Effect[P, R]) ID() ID {
	return e.id
}

func (e *Effect[P, R]) Kind() Kind {
	if e == nil {
		return KindInvalid
	}
	return KindEffect
}

// Call emits Exec with params and returns them. It never fails: errors of the
// wrapped function only reach watchers of Fail.
func (e *Effect[P, R]) Call(params P) P {
	return e.Exec.Emit(params)
}

// Wait settles the System until every invocation of this effect started so
// far went through Done or Fail. Settlements of other effects that arrive
// meanwhile are emitted too.
func (e *Effect[P, R]) Wait() {
	e.sys.settleUntil(func() bool {
		return e.running.Load() == 0
	})
}

// InFlight reports how many invocations have not settled yet.
func (e *Effect[P, R]) InFlight() int {
	return int(e.running.Load())
}

func (e *Effect[P, R]) run(params P) {
	e.running.Add(1)
	e.sys.outstanding.Add(1)

	go func() {
		result, err := e.invoke(params)
		e.sys.enqueue(func() {
			e.running.Add(-1)
			e.sys.outstanding.Add(-1)
			e.settle(params, result, err)
		})
	}()
}

func (e *Effect[P, R]) invoke(params P) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cause, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", cause)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.fn(params)
}

func (e *Effect[P, R]) settle(params P, result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.sys.reportPanic(e, r)
		}
	}()

	if err != nil {
		e.Fail.Emit(&EffectFailure{Effect: e.id, Params: params, Err: err})
		return
	}
	e.Done.Emit(result)
}

// NewEffectState derives a pending flag for e: true on Exec, back to false on
// Done or Fail.
//
// The flag is coarse. With overlapping invocations it turns false as soon as
// the first one settles, even if others are still running.
func NewEffectState[P, R any](e *Effect[P, R]) (*Store[bool], error) {
	if e.Kind() != KindEffect {
		return nil, newArgumentError("NewEffectState", "effect", "must be an effect")
	}

	pending := NewStore(e.sys, false)
	if err := On(pending, e.Exec, func(bool, P) bool {
		return true
	}); err != nil {
		return nil, err
	}
	if err := pending.Reset(e.Done); err != nil {
		return nil, err
	}
	if err := pending.Reset(e.Fail); err != nil {
		return nil, err
	}
	return pending, nil
}

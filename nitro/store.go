package nitro

import (
	"sync"

	"go.uber.org/zap"
)

// Store is a memoized value cell. Its state only moves through reducers
// registered with On and through Reset, and watchers are only notified when
// the new state is not equal to the previous one.
type Store[S any] struct {
	sys     *System
	id      ID
	changed *Signal[any]

	mu        sync.Mutex
	initial   S
	current   S
	onSubs    map[ID]Unsubscribe
	resetSubs map[ID]Unsubscribe
}

// NewStore creates a store holding initial. Construction never notifies watchers.
func NewStore[S any](sys *System, initial S) *Store[S] {
	mustSystem("NewStore", sys)
	s := &Store[S]{
		sys:       sys,
		id:        sys.generateID(),
		changed:   NewSignal[any](sys),
		initial:   initial,
		current:   initial,
		onSubs:    map[ID]Unsubscribe{},
		resetSubs: map[ID]Unsubscribe{},
	}
	sys.created(topicStoreCreated, s)
	return s
}

func (s *Store[S]) ID() ID {
	return s.id
}

func (s *Store[S]) Kind() Kind {
	if s == nil {
		return KindInvalid
	}
	return KindStore
}

func (s *Store[S]) Value() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// GetState is an alias of Value.
func (s *Store[S]) GetState() S {
	return s.Value()
}

func (s *Store[S]) Initial() S {
	return s.initial
}

func (s *Store[S]) state() any {
	return s.Value()
}

// On subscribes store to signal. Every emission runs reduce on the current
// state and the payload; an unequal result becomes the new state and
// notifies the store's watchers with the payload.
//
// reduce runs while the store is locked and must not call back into store.
func On[S, P any](store *Store[S], signal *Signal[P], reduce func(S, P) S) error {
	const op = "On"
	if store.Kind() != KindStore {
		return newArgumentError(op, "store", "must be a store")
	}
	if signal.Kind() != KindSignal {
		return newArgumentError(op, "signal", "must be a signal")
	}
	if reduce == nil {
		return newArgumentError(op, "reduce", "must not be nil")
	}

	return store.subscribe(op, store.onSubs, signal, func(payload any) {
		p := asPayload[P](payload)
		store.apply(func(current S) S {
			return reduce(current, p)
		}, payload)
	})
}

// Reset subscribes the store so that every emission of trigger restores the
// initial state. Watchers are notified with a nil payload when the state
// actually changed.
func (s *Store[S]) Reset(trigger Trigger) error {
	const op = "Store.Reset"
	if trigger == nil || trigger.Kind() != KindSignal {
		return newArgumentError(op, "trigger", "must be a signal")
	}
	return s.subscribe(op, s.resetSubs, trigger, func(any) {
		s.apply(func(S) S {
			return s.initial
		}, nil)
	})
}

// Off drops both the On and the Reset registration for trigger, if any.
func (s *Store[S]) Off(trigger Trigger) *Store[S] {
	if trigger == nil || trigger.Kind() != KindSignal {
		return s
	}
	id := trigger.ID()

	s.mu.Lock()
	onUnsub, hasOn := s.onSubs[id]
	resetUnsub, hasReset := s.resetSubs[id]
	delete(s.onSubs, id)
	delete(s.resetSubs, id)
	s.mu.Unlock()

	if hasOn {
		onUnsub()
	}
	if hasReset {
		resetUnsub()
	}
	return s
}

// Watch registers handler to run after every accepted state change with the
// new state and the payload that triggered it.
func (s *Store[S]) Watch(handler func(state S, payload any)) Unsubscribe {
	return s.changed.Watch(func(payload any) {
		handler(s.Value(), payload)
	})
}

// WatchAny is Watch without the state type, for tooling.
func (s *Store[S]) WatchAny(handler func(state any, payload any)) Unsubscribe {
	return s.changed.Watch(func(payload any) {
		handler(s.Value(), payload)
	})
}

// Subscriptions reports the number of live On and Reset registrations.
func (s *Store[S]) Subscriptions() (on, reset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.onSubs), len(s.resetSubs)
}

func (s *Store[S]) subscribe(op string, registry map[ID]Unsubscribe, trigger Trigger, handler Handler) error {
	id := trigger.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := registry[id]; ok {
		s.sys.logger.Debug("duplicate subscription rejected",
			zap.String("op", op),
			zap.String("store", string(s.id)),
			zap.String("signal", string(id)),
		)
		return &DuplicateSubscriptionError{Op: op, Store: s.id, Signal: id}
	}
	registry[id] = s.sys.bus.Subscribe(trigger.busTopic(), handler)
	return nil
}

func (s *Store[S]) apply(next func(S) S, payload any) {
	s.mu.Lock()
	current := s.current
	updated := next(current)
	if s.sys.equal(current, updated) {
		s.mu.Unlock()
		return
	}
	s.current = updated
	s.mu.Unlock()

	s.changed.Emit(payload)
}

// MapStore derives a store seeded with fn(parent's state) that follows every
// accepted change of parent.
func MapStore[S, R any](parent *Store[S], fn func(S) R) (*Store[R], error) {
	const op = "MapStore"
	if parent.Kind() != KindStore {
		return nil, newArgumentError(op, "parent", "must be a store")
	}
	if fn == nil {
		return nil, newArgumentError(op, "fn", "must not be nil")
	}

	parentChanged := NewSignal[S](parent.sys)
	child := NewStore(parent.sys, fn(parent.Value()))
	if err := On(child, parentChanged, func(_ R, state S) R {
		return fn(state)
	}); err != nil {
		return nil, err
	}
	parent.Watch(func(state S, _ any) {
		parentChanged.Emit(state)
	})
	return child, nil
}

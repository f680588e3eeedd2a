package nitro

// Signal is a stateless, payload carrying event channel.
type Signal[T any] struct {
	sys   *System
	id    ID
	topic Topic
}

func NewSignal[T any](sys *System) *Signal[T] {
	mustSystem("NewSignal", sys)
	id := sys.generateID()
	s := &Signal[T]{
		sys:   sys,
		id:    id,
		topic: topicOf(id),
	}
	sys.created(topicSignalCreated, s)
	return s
}

func (s *Signal[T]) ID() ID {
	return s.id
}

func (s *Signal[T]) Kind() Kind {
	if s == nil {
		return KindInvalid
	}
	return KindSignal
}

func (s *Signal[T]) busTopic() Topic {
	return s.topic
}

// Emit synchronously runs every watcher of the signal with payload and returns it.
func (s *Signal[T]) Emit(payload T) T {
	s.sys.bus.Emit(s.topic, payload)
	return payload
}

// Watch registers handler for every future emission.
func (s *Signal[T]) Watch(handler func(T)) Unsubscribe {
	return s.sys.bus.Subscribe(s.topic, func(payload any) {
		handler(asPayload[T](payload))
	})
}

// WatchAny is Watch without the payload type, for tooling.
func (s *Signal[T]) WatchAny(handler func(any)) Unsubscribe {
	return s.sys.bus.Subscribe(s.topic, Handler(handler))
}

// Filter returns a signal that re-emits the payloads keep accepts.
func (s *Signal[T]) Filter(keep func(T) bool) (*Signal[T], error) {
	if s.Kind() != KindSignal {
		return nil, newArgumentError("Signal.Filter", "signal", "must be a signal")
	}
	if keep == nil {
		return nil, newArgumentError("Signal.Filter", "fn", "must not be nil")
	}
	child := NewSignal[T](s.sys)
	s.Watch(func(payload T) {
		if keep(payload) {
			child.Emit(payload)
		}
	})
	return child, nil
}

// MapSignal returns a signal emitting fn(payload) for every emission of parent.
func MapSignal[T, R any](parent *Signal[T], fn func(T) R) (*Signal[R], error) {
	if parent.Kind() != KindSignal {
		return nil, newArgumentError("MapSignal", "parent", "must be a signal")
	}
	if fn == nil {
		return nil, newArgumentError("MapSignal", "fn", "must not be nil")
	}
	child := NewSignal[R](parent.sys)
	parent.Watch(func(payload T) {
		child.Emit(fn(payload))
	})
	return child, nil
}

// asPayload converts a bus payload back to T. A nil payload, as sent by
// resets, becomes the zero value.
func asPayload[T any](payload any) T {
	if payload == nil {
		var zero T
		return zero
	}
	return payload.(T)
}

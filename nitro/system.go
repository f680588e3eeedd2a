package nitro

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	topicSignalCreated = reservedTopic | iota
	topicStoreCreated
	topicEffectCreated
)

// System is the context every signal, store and effect is created in. It owns
// the event bus, identity generation, the equality check and the lifecycle
// hooks used by external tooling.
type System struct {
	bus     *EventBus
	logger  *zap.Logger
	equal   EqualFunc
	newID   func() string
	onError OnErrorFunc

	// effect outcomes waiting to be emitted by Settle or Wait
	mu          sync.Mutex
	settlements []func()
	ready       chan struct{}
	outstanding atomic.Int64
}

type Option func(*System)

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEqual replaces the deep equality used to suppress unchanged states.
func WithEqual(equal EqualFunc) Option {
	return func(s *System) {
		if equal != nil {
			s.equal = equal
		}
	}
}

// WithIDGenerator replaces the random UUIDs used as unit identities.
func WithIDGenerator(fn func() string) Option {
	return func(s *System) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithOnError registers the callback receiving panics from Done and Fail
// watchers run while settling effects.
func WithOnError(fn OnErrorFunc) Option {
	return func(s *System) {
		s.onError = fn
	}
}

// NewSystem creates an empty System configured by opts.
func NewSystem(opts ...Option) *System {
	s := &System{
		bus:    NewEventBus(),
		logger: zap.NewNop(),
		equal:  reflect.DeepEqual,
		newID:  uuid.NewString,
		ready:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bus exposes the underlying event bus.
func (s *System) Bus() *EventBus {
	return s.bus
}

// Logger returns the logger configured with WithLogger.
func (s *System) Logger() *zap.Logger {
	return s.logger
}

// Ready receives a value when effect outcomes may be waiting for Settle. It
// lets an event loop select on settlements next to its other inputs.
func (s *System) Ready() <-chan struct{} {
	return s.ready
}

// Settle emits the Done or Fail signal of every effect invocation that
// finished, in completion order, on the calling goroutine. It does not block
// and reports how many outcomes it emitted.
func (s *System) Settle() int {
	settled := 0
	for {
		s.mu.Lock()
		if len(s.settlements) == 0 {
			s.mu.Unlock()
			return settled
		}
		next := s.settlements[0]
		s.settlements = s.settlements[1:]
		s.mu.Unlock()

		next()
		settled++
	}
}

// Wait settles until every effect invocation started in this system went
// through Done or Fail.
func (s *System) Wait() {
	s.settleUntil(func() bool {
		return s.outstanding.Load() == 0
	})
}

// Outstanding reports how many effect invocations have not settled yet.
func (s *System) Outstanding() int {
	return int(s.outstanding.Load())
}

func (s *System) settleUntil(done func() bool) {
	for {
		s.Settle()
		if done() {
			return
		}
		<-s.ready
	}
}

func (s *System) enqueue(settle func()) {
	s.mu.Lock()
	s.settlements = append(s.settlements, settle)
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// OnSignalCreated registers fn to run every time a signal is constructed,
// including the internal signals of stores and effects.
func (s *System) OnSignalCreated(fn func(Unit)) Unsubscribe {
	return s.onCreated(topicSignalCreated, fn)
}

// OnStoreCreated registers fn to run every time a store is constructed.
func (s *System) OnStoreCreated(fn func(Unit)) Unsubscribe {
	return s.onCreated(topicStoreCreated, fn)
}

// OnEffectCreated registers fn to run every time an effect is constructed.
func (s *System) OnEffectCreated(fn func(Unit)) Unsubscribe {
	return s.onCreated(topicEffectCreated, fn)
}

func (s *System) onCreated(topic Topic, fn func(Unit)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	return s.bus.Subscribe(topic, func(payload any) {
		fn(payload.(Unit))
	})
}

func (s *System) created(topic Topic, u Unit) {
	if ce := s.logger.Check(zap.DebugLevel, u.Kind().String()+" created"); ce != nil {
		ce.Write(zap.String("id", string(u.ID())))
	}
	s.bus.Emit(topic, u)
}

func (s *System) generateID() ID {
	return ID(s.newID())
}

func (s *System) reportPanic(from Unit, r any) {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	s.logger.Error("watcher panicked while settling effect",
		zap.String("unit", string(from.ID())),
		zap.Error(err),
	)
	if s.onError != nil {
		s.onError(from, err)
	}
}

func mustSystem(op string, sys *System) {
	if sys == nil {
		panic(newArgumentError(op, "sys", "must not be nil"))
	}
}

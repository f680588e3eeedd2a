package nitro

import "github.com/cespare/xxhash/v2"

// ID is the opaque identity of a signal, store or effect.
type ID string

// Topic keys a subscription list on the EventBus.
//
// Unit topics are the xxhash of the unit's ID with the top bit cleared, so two
// distinct IDs share a topic with probability 2^-63. Topics with the top bit
// set are reserved for the lifecycle hooks and never derived from an ID.
type Topic uint64

const reservedTopic Topic = 1 << 63

func topicOf(id ID) Topic {
	return Topic(xxhash.Sum64String(string(id))) &^ reservedTopic
}

// Kind tells which constructor produced a unit.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSignal
	KindStore
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindStore:
		return "store"
	case KindEffect:
		return "effect"
	default:
		return "invalid"
	}
}

// Unit is anything built by a System: signals, stores and effects.
type Unit interface {
	ID() ID
	Kind() Kind
}

// Trigger is a unit whose emissions a store can subscribe to without caring
// about the payload type. Only signals are triggers.
type Trigger interface {
	Unit
	busTopic() Topic
}

// Unsubscribe removes one registration. Calling it more than once is a no-op.
type Unsubscribe func()

// EqualFunc reports whether two states are the same value.
type EqualFunc func(a, b any) bool

// OnErrorFunc receives panics raised by Done and Fail watchers while a System
// settles effects.
type OnErrorFunc func(from Unit, err error)

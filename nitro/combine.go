package nitro

import "strconv"

type readable interface {
	Unit
	state() any
	WatchAny(handler func(state any, payload any)) Unsubscribe
}

// CombineStores derives a store holding fn applied to the states of stores, in
// order. Any accepted change of any parent recomputes fn over all parents'
// current states. The derived store starts at the zero value of R.
//
// Combining a store with one of its own descendants is not detected.
func CombineStores[R any](sys *System, fn func(states []any) R, stores ...Unit) (*Store[R], error) {
	return combine("CombineStores", sys, fn, stores)
}

// Combine is CombineStores.
func Combine[R any](sys *System, fn func(states []any) R, stores ...Unit) (*Store[R], error) {
	return combine("Combine", sys, fn, stores)
}

func combine[R any](op string, sys *System, fn func([]any) R, stores []Unit) (*Store[R], error) {
	if sys == nil {
		return nil, newArgumentError(op, "sys", "must not be nil")
	}
	if fn == nil {
		return nil, newArgumentError(op, "fn", "must not be nil")
	}
	parents := make([]readable, len(stores))
	for i, u := range stores {
		r, ok := u.(readable)
		if !ok || u.Kind() != KindStore {
			return nil, newArgumentError(op, "stores["+strconv.Itoa(i)+"]", "must be a store")
		}
		parents[i] = r
	}

	storeChanged := NewSignal[R](sys)
	store := NewStore(sys, *new(R))
	if err := On(store, storeChanged, func(_ R, next R) R {
		return next
	}); err != nil {
		return nil, err
	}

	recompute := func(any, any) {
		states := make([]any, len(parents))
		for i, p := range parents {
			states[i] = p.state()
		}
		storeChanged.Emit(fn(states))
	}
	for _, p := range parents {
		p.WatchAny(recompute)
	}
	return store, nil
}

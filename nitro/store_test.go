package nitro_test

import (
	"testing"

	"github.com/delaneyj/nitro/nitro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	state   any
	payload any
}

func recordChanges[S any](store *nitro.Store[S]) *[]change {
	changes := &[]change{}
	store.Watch(func(state S, payload any) {
		*changes = append(*changes, change{state: state, payload: payload})
	})
	return changes
}

func add(state, payload int) int {
	return state + payload
}

func TestStoreStartsAtInitialValue(t *testing.T) {
	sys := nitro.NewSystem()
	store := nitro.NewStore(sys, 3)
	changes := recordChanges(store)

	assert.Equal(t, 3, store.Value())
	assert.Equal(t, 3, store.GetState())
	assert.Equal(t, 3, store.Initial())
	assert.Empty(t, *changes)
	assert.Equal(t, nitro.KindStore, store.Kind())
}

func TestStoreOnAppliesReducer(t *testing.T) {
	sys := nitro.NewSystem()
	inc := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(store, inc, add))
	changes := recordChanges(store)

	inc.Emit(2)
	inc.Emit(3)
	assert.Equal(t, 5, store.Value())
	assert.Equal(t, []change{{state: 2, payload: 2}, {state: 5, payload: 3}}, *changes)
}

func TestStoreSuppressesEqualStates(t *testing.T) {
	sys := nitro.NewSystem()
	set := nitro.NewSignal[[]string](sys)
	store := nitro.NewStore(sys, []string{"a"})
	require.NoError(t, nitro.On(store, set, func(_ []string, next []string) []string {
		return next
	}))
	changes := recordChanges(store)

	// a fresh slice with the same contents is not a change
	set.Emit([]string{"a"})
	set.Emit([]string{"a"})
	assert.Empty(t, *changes)
	assert.Equal(t, []string{"a"}, store.Value())

	set.Emit([]string{"a", "b"})
	assert.Len(t, *changes, 1)
}

func TestStoreZeroReducerNeverNotifies(t *testing.T) {
	sys := nitro.NewSystem()
	noop := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 42)
	require.NoError(t, nitro.On(store, noop, func(state, _ int) int { return state }))
	changes := recordChanges(store)

	for i := 0; i < 10; i++ {
		noop.Emit(i)
	}
	assert.Empty(t, *changes)
	assert.Equal(t, 42, store.Value())
}

func TestStoreReset(t *testing.T) {
	sys := nitro.NewSystem()
	inc := nitro.NewSignal[int](sys)
	reset := nitro.NewSignal[struct{}](sys)
	store := nitro.NewStore(sys, 10)
	require.NoError(t, nitro.On(store, inc, add))
	require.NoError(t, store.Reset(reset))

	inc.Emit(1)
	inc.Emit(1)
	changes := recordChanges(store)

	reset.Emit(struct{}{})
	assert.Equal(t, 10, store.Value())
	assert.Equal(t, []change{{state: 10, payload: nil}}, *changes)

	// already at the initial value
	reset.Emit(struct{}{})
	assert.Len(t, *changes, 1)
}

func TestStoreRejectsDuplicateOn(t *testing.T) {
	sys := nitro.NewSystem()
	inc := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(store, inc, add))

	err := nitro.On(store, inc, add)
	var dupErr *nitro.DuplicateSubscriptionError
	require.ErrorAs(t, err, &dupErr)
	assert.ErrorIs(t, err, nitro.ErrDuplicateSubscription)
	assert.Equal(t, store.ID(), dupErr.Store)
	assert.Equal(t, inc.ID(), dupErr.Signal)

	// the reducer is still applied once per emission
	inc.Emit(1)
	assert.Equal(t, 1, store.Value())

	store.Off(inc)
	require.NoError(t, nitro.On(store, inc, add))
	inc.Emit(1)
	assert.Equal(t, 2, store.Value())
}

func TestStoreRejectsDuplicateReset(t *testing.T) {
	sys := nitro.NewSystem()
	reset := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 0)
	require.NoError(t, store.Reset(reset))
	assert.ErrorIs(t, store.Reset(reset), nitro.ErrDuplicateSubscription)

	store.Off(reset)
	assert.NoError(t, store.Reset(reset))
}

func TestStoreOnAndResetRegistriesAreIndependent(t *testing.T) {
	sys := nitro.NewSystem()
	sig := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(store, sig, add))
	require.NoError(t, store.Reset(sig))

	on, reset := store.Subscriptions()
	assert.Equal(t, 1, on)
	assert.Equal(t, 1, reset)

	// the reducer runs first, then the reset restores the initial value
	sig.Emit(5)
	assert.Equal(t, 0, store.Value())
}

func TestStoreOff(t *testing.T) {
	sys := nitro.NewSystem()
	sig := nitro.NewSignal[int](sys)
	other := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(store, sig, add))
	require.NoError(t, store.Reset(sig))

	// not registered, nothing to do
	assert.Same(t, store, store.Off(other))

	store.Off(sig)
	on, reset := store.Subscriptions()
	assert.Zero(t, on)
	assert.Zero(t, reset)

	sig.Emit(5)
	assert.Equal(t, 0, store.Value())

	// twice is fine
	store.Off(sig)
}

func TestStoreWatchUnsubscribe(t *testing.T) {
	sys := nitro.NewSystem()
	inc := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(store, inc, add))

	calls := 0
	stop := store.Watch(func(int, any) { calls++ })
	inc.Emit(1)
	stop()
	stop()
	inc.Emit(1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, store.Value())
}

func TestStoreArgumentErrors(t *testing.T) {
	sys := nitro.NewSystem()
	sig := nitro.NewSignal[int](sys)
	store := nitro.NewStore(sys, 0)

	assert.ErrorIs(t, nitro.On[int, int](store, sig, nil), nitro.ErrArgument)

	var missing *nitro.Signal[int]
	assert.ErrorIs(t, nitro.On(store, missing, add), nitro.ErrArgument)
	assert.ErrorIs(t, store.Reset(missing), nitro.ErrArgument)
	assert.ErrorIs(t, store.Reset(nil), nitro.ErrArgument)

	var noStore *nitro.Store[int]
	assert.ErrorIs(t, nitro.On(noStore, sig, add), nitro.ErrArgument)

	on, reset := store.Subscriptions()
	assert.Zero(t, on+reset)
}

func TestMapStore(t *testing.T) {
	sys := nitro.NewSystem()
	inc := nitro.NewSignal[int](sys)
	parent := nitro.NewStore(sys, 1)
	require.NoError(t, nitro.On(parent, inc, add))

	doubled, err := nitro.MapStore(parent, func(v int) int { return v * 2 })
	require.NoError(t, err)
	assert.Equal(t, 2, doubled.Value())
	changes := recordChanges(doubled)

	inc.Emit(2)
	assert.Equal(t, 6, doubled.Value())
	assert.Equal(t, []change{{state: 6, payload: 3}}, *changes)
}

func TestMapStoreSuppressesEqualOutputs(t *testing.T) {
	sys := nitro.NewSystem()
	inc := nitro.NewSignal[int](sys)
	parent := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(parent, inc, add))

	parity, err := nitro.MapStore(parent, func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	changes := recordChanges(parity)

	inc.Emit(2)
	assert.Empty(t, *changes)
	inc.Emit(1)
	assert.Equal(t, false, parity.Value())
	assert.Len(t, *changes, 1)
}

func TestMapStoreArgumentErrors(t *testing.T) {
	sys := nitro.NewSystem()
	store := nitro.NewStore(sys, 0)

	_, err := nitro.MapStore[int, int](store, nil)
	assert.ErrorIs(t, err, nitro.ErrArgument)

	var missing *nitro.Store[int]
	_, err = nitro.MapStore(missing, func(v int) int { return v })
	assert.ErrorIs(t, err, nitro.ErrArgument)
}

// a store listening to a store's derived signal follows it
func TestStoreWatchersMayEmit(t *testing.T) {
	sys := nitro.NewSystem()
	inc := nitro.NewSignal[int](sys)
	total := nitro.NewSignal[int](sys)
	counter := nitro.NewStore(sys, 0)
	mirror := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(counter, inc, add))
	require.NoError(t, nitro.On(mirror, total, func(_, v int) int { return v }))

	counter.Watch(func(state int, _ any) {
		total.Emit(state)
		assert.Equal(t, state, mirror.Value())
	})

	inc.Emit(4)
	inc.Emit(4)
	assert.Equal(t, 8, mirror.Value())
}

// Package nitro is a small push-based reactive state engine.
//
// Signals are stateless event channels. Stores hold a value that only changes
// through reducers subscribed to signals, and notify their watchers only when
// the new value is not deeply equal to the old one. Effects run a function on
// its own goroutine every time they are called; the outcome is queued on the
// System and reported through the effect's Done and Fail signals when the
// owner of the System calls Settle or Wait.
//
//	sys := nitro.NewSystem()
//	inc := nitro.NewSignal[int](sys)
//	count := nitro.NewStore(sys, 0)
//	if err := nitro.On(count, inc, func(state, by int) int { return state + by }); err != nil {
//		return err
//	}
//	count.Watch(func(state int, payload any) {
//		fmt.Println("count is now", state)
//	})
//	inc.Emit(2) // count is now 2
//
// Propagation is synchronous and depth first on the emitting goroutine, and
// watchers never run in parallel as long as emissions, Settle and Wait are
// called from one goroutine. There is no cycle detection: stores watching each
// other recurse until the stack runs out.
package nitro

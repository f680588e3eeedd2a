// Package inspector records what happens inside a nitro.System for debugging:
// every unit constructed after Attach, and every accepted store change.
package inspector

import (
	"fmt"
	"io"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/nitro/nitro"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

type storeWatcher interface {
	WatchAny(handler func(state any, payload any)) nitro.Unsubscribe
}

type inFlighter interface {
	InFlight() int
}

type storeRecord struct {
	changes int64
	last    any
}

type Inspector struct {
	signals mapset.Set[nitro.ID]
	stores  mapset.Set[nitro.ID]
	effects mapset.Set[nitro.ID]

	mu       sync.Mutex
	records  map[nitro.ID]*storeRecord
	running  map[nitro.ID]inFlighter
	unsubs   []nitro.Unsubscribe
	detached bool
}

// Attach starts recording sys. Units built before the call are not seen.
func Attach(sys *nitro.System) *Inspector {
	i := &Inspector{
		signals: mapset.NewSet[nitro.ID](),
		stores:  mapset.NewSet[nitro.ID](),
		effects: mapset.NewSet[nitro.ID](),
		records: map[nitro.ID]*storeRecord{},
		running: map[nitro.ID]inFlighter{},
	}
	i.unsubs = append(i.unsubs,
		sys.OnSignalCreated(func(u nitro.Unit) {
			i.signals.Add(u.ID())
		}),
		sys.OnStoreCreated(i.storeCreated),
		sys.OnEffectCreated(i.effectCreated),
	)
	return i
}

func (i *Inspector) storeCreated(u nitro.Unit) {
	i.stores.Add(u.ID())
	w, ok := u.(storeWatcher)
	if !ok {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.detached {
		return
	}
	rec := &storeRecord{}
	i.records[u.ID()] = rec
	i.unsubs = append(i.unsubs, w.WatchAny(func(state any, _ any) {
		i.mu.Lock()
		rec.changes++
		rec.last = state
		i.mu.Unlock()
	}))
}

func (i *Inspector) effectCreated(u nitro.Unit) {
	i.effects.Add(u.ID())
	if f, ok := u.(inFlighter); ok {
		i.mu.Lock()
		i.running[u.ID()] = f
		i.mu.Unlock()
	}
}

// Detach stops recording. What was recorded so far stays readable.
func (i *Inspector) Detach() {
	i.mu.Lock()
	unsubs := i.unsubs
	i.unsubs = nil
	i.detached = true
	i.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// Count reports how many units of kind were constructed.
func (i *Inspector) Count(kind nitro.Kind) int {
	switch kind {
	case nitro.KindSignal:
		return i.signals.Cardinality()
	case nitro.KindStore:
		return i.stores.Cardinality()
	case nitro.KindEffect:
		return i.effects.Cardinality()
	default:
		return 0
	}
}

// KindOf reports the kind of a recorded unit, KindInvalid if unknown.
func (i *Inspector) KindOf(id nitro.ID) nitro.Kind {
	switch {
	case i.signals.Contains(id):
		return nitro.KindSignal
	case i.stores.Contains(id):
		return nitro.KindStore
	case i.effects.Contains(id):
		return nitro.KindEffect
	default:
		return nitro.KindInvalid
	}
}

// Changes reports how many accepted state changes a store went through and
// the last state seen.
func (i *Inspector) Changes(id nitro.ID) (count int64, last any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	rec, ok := i.records[id]
	if !ok {
		return 0, nil
	}
	return rec.changes, rec.last
}

func sortedIDs(set mapset.Set[nitro.ID]) []nitro.ID {
	ids := set.ToSlice()
	sort.Slice(ids, func(a, b int) bool {
		return ids[a] < ids[b]
	})
	return ids
}

// Render writes a table of stores and effects to w.
func (i *Inspector) Render(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("%s signals, %s stores, %s effects",
		humanize.Comma(int64(i.signals.Cardinality())),
		humanize.Comma(int64(i.stores.Cardinality())),
		humanize.Comma(int64(i.effects.Cardinality())),
	))
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"kind", "id", "changes", "state / in flight"})

	i.mu.Lock()
	for _, id := range sortedIDs(i.stores) {
		rec, ok := i.records[id]
		if !ok {
			continue
		}
		tbl.AppendRow(table.Row{nitro.KindStore, id, humanize.Comma(rec.changes), fmt.Sprintf("%v", rec.last)})
	}
	for _, id := range sortedIDs(i.effects) {
		inFlight := 0
		if f, ok := i.running[id]; ok {
			inFlight = f.InFlight()
		}
		tbl.AppendRow(table.Row{nitro.KindEffect, id, "", inFlight})
	}
	i.mu.Unlock()

	tbl.Render()
}

package inspector_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/delaneyj/nitro/nitro"
	"github.com/delaneyj/nitro/pkg/inspector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectorRecordsUnits(t *testing.T) {
	sys := nitro.NewSystem()
	before := nitro.NewSignal[int](sys)
	in := inspector.Attach(sys)

	inc := nitro.NewSignal[int](sys)
	count := nitro.NewStore(sys, 0)
	eff, err := nitro.NewEffect(sys, func(v int) (int, error) { return v, nil })
	require.NoError(t, err)

	// inc, the store's change signal, exec, done and fail
	assert.Equal(t, 5, in.Count(nitro.KindSignal))
	assert.Equal(t, 1, in.Count(nitro.KindStore))
	assert.Equal(t, 1, in.Count(nitro.KindEffect))
	assert.Zero(t, in.Count(nitro.KindInvalid))

	assert.Equal(t, nitro.KindInvalid, in.KindOf(before.ID()))
	assert.Equal(t, nitro.KindSignal, in.KindOf(inc.ID()))
	assert.Equal(t, nitro.KindStore, in.KindOf(count.ID()))
	assert.Equal(t, nitro.KindEffect, in.KindOf(eff.ID()))
}

func TestInspectorCountsStoreChanges(t *testing.T) {
	sys := nitro.NewSystem()
	in := inspector.Attach(sys)

	inc := nitro.NewSignal[int](sys)
	count := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(count, inc, func(s, p int) int { return s + p }))

	inc.Emit(1)
	inc.Emit(0)
	inc.Emit(2)

	changes, last := in.Changes(count.ID())
	assert.EqualValues(t, 2, changes)
	assert.Equal(t, 3, last)

	in.Detach()
	inc.Emit(1)
	changes, _ = in.Changes(count.ID())
	assert.EqualValues(t, 2, changes)

	// units built after Detach are not recorded
	nitro.NewStore(sys, 0)
	assert.Equal(t, 1, in.Count(nitro.KindStore))
}

func TestInspectorRender(t *testing.T) {
	sys := nitro.NewSystem()
	in := inspector.Attach(sys)

	inc := nitro.NewSignal[int](sys)
	count := nitro.NewStore(sys, 0)
	require.NoError(t, nitro.On(count, inc, func(s, p int) int { return s + p }))
	_, err := nitro.NewEffect(sys, func(v int) (int, error) { return v, nil })
	require.NoError(t, err)
	inc.Emit(1234)

	var buf bytes.Buffer
	in.Render(&buf)
	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "5 signals, 1 stores, 1 effects")
	assert.Contains(t, out, strings.ToLower(string(count.ID())))
	assert.Contains(t, out, "1234")
}

package tensors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamml/streamml/errdefs"
)

func TestInfosBasics(t *testing.T) {
	ti := NewInfos()
	require.Equal(t, 0, ti.NumTensors())

	require.NoError(t, ti.SetNumTensors(2))
	require.Equal(t, 2, ti.NumTensors())

	ti.SetName(0, "input")
	ti.SetType(0, UInt8)
	require.NoError(t, ti.SetDimensions(0, []uint32{3, 224, 224}))

	name, ok := ti.Name(0)
	require.True(t, ok)
	require.Equal(t, "input", name)
	require.Equal(t, UInt8, ti.Type(0))
	require.Equal(t, [MaxRank]uint32{3, 224, 224, 1, 1, 1, 1, 1}, ti.Dimensions(0))

	// Slot 1 was never touched: unnamed, unknown type.
	_, ok = ti.Name(1)
	require.False(t, ok)
	require.Equal(t, Unknown, ti.Type(1))

	ti.SetName(1, "")
	_, ok = ti.Name(1)
	require.True(t, ok, "a tensor named \"\" is named, not unnamed")
	ti.ClearName(1)
	_, ok = ti.Name(1)
	require.False(t, ok)
}

func TestInfosSetNumTensorsRange(t *testing.T) {
	ti := NewInfos()
	require.ErrorIs(t, ti.SetNumTensors(-1), errdefs.ErrInvalidParameter)
	require.ErrorIs(t, ti.SetNumTensors(MaxTensors+1), errdefs.ErrInvalidParameter)
	require.NoError(t, ti.SetNumTensors(MaxTensors))

	// Shrinking preserves the surviving slots.
	ti.SetName(0, "kept")
	require.NoError(t, ti.SetNumTensors(1))
	name, ok := ti.Name(0)
	require.True(t, ok)
	require.Equal(t, "kept", name)
}

func TestInfosIndexPanics(t *testing.T) {
	ti := NewInfos()
	require.NoError(t, ti.SetNumTensors(1))
	require.Panics(t, func() { ti.SetName(1, "oob") })
	require.Panics(t, func() { _ = ti.Type(-1) })
	require.Panics(t, func() { _ = ti.Dimensions(1) })
}

func TestInfosSetDimensionsRank(t *testing.T) {
	ti := NewInfos()
	require.NoError(t, ti.SetNumTensors(1))
	tooMany := make([]uint32, MaxRank+1)
	require.ErrorIs(t, ti.SetDimensions(0, tooMany), errdefs.ErrInvalidParameter)
}

func TestInfosCloneIsDeep(t *testing.T) {
	ti := NewInfos()
	require.NoError(t, ti.SetNumTensors(1))
	ti.SetName(0, "original")
	ti.SetType(0, Float32)
	require.NoError(t, ti.SetDimensions(0, []uint32{10}))

	clone := ti.Clone()
	require.True(t, ti.Equal(clone))

	ti.SetName(0, "changed")
	name, ok := clone.Name(0)
	require.True(t, ok)
	require.Equal(t, "original", name)
	require.False(t, ti.Equal(clone))
}

func TestInfosEqual(t *testing.T) {
	a, b := NewInfos(), NewInfos()
	require.True(t, a.Equal(b))

	require.NoError(t, a.SetNumTensors(1))
	require.False(t, a.Equal(b))

	require.NoError(t, b.SetNumTensors(1))
	a.SetType(0, Int32)
	b.SetType(0, Int32)
	require.True(t, a.Equal(b))

	// Unnamed vs named "" are different descriptors.
	a.SetName(0, "")
	require.False(t, a.Equal(b))
	b.SetName(0, "")
	require.True(t, a.Equal(b))

	require.False(t, a.Equal(nil))
}

func TestInfosValidate(t *testing.T) {
	ti := NewInfos()
	require.ErrorIs(t, ti.Validate(), errdefs.ErrInvalidParameter)

	require.NoError(t, ti.SetNumTensors(1))
	require.ErrorIs(t, ti.Validate(), errdefs.ErrInvalidParameter) // unknown type

	ti.SetType(0, Int8)
	require.ErrorIs(t, ti.Validate(), errdefs.ErrInvalidParameter) // zero dims

	require.NoError(t, ti.SetDimensions(0, []uint32{4, 4}))
	require.NoError(t, ti.Validate())
}

func TestInfoSize(t *testing.T) {
	ti := NewInfos()
	require.NoError(t, ti.SetNumTensors(2))
	ti.SetType(0, Float32)
	require.NoError(t, ti.SetDimensions(0, []uint32{2, 3}))
	require.Equal(t, uint64(4*2*3), ti.Size(0))

	// Unknown type has no element size.
	require.NoError(t, ti.SetDimensions(1, []uint32{7}))
	require.Equal(t, uint64(0), ti.Size(1))
}

func TestElementTypeStringAndSize(t *testing.T) {
	require.Equal(t, "uint16", UInt16.String())
	require.Equal(t, "unknown", Unknown.String())
	require.Equal(t, "unknown", ElementType(99).String())
	require.Equal(t, 2, Int16.Size())
	require.Equal(t, 8, Float64.Size())
	require.Equal(t, 0, ElementType(99).Size())
}

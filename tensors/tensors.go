// Package tensors defines the public tensor descriptor representation used by
// the streamml API.
//
// A descriptor carries the metadata of one tensor slot -- an optional name, an
// element type and a dimension vector -- independently of any data buffer.
// Descriptors are grouped in an Infos set, where the index of an entry is the
// tensor slot it describes.
//
// ## Glossary
//
//   - Rank: number of dimension entries of a descriptor. The public
//     representation supports up to MaxRank dimensions.
//   - Element type: the numeric type of the unit element of the tensor,
//     enumeration defined by ElementType.
//   - Slot: the position of a tensor within a set; slot order is significant
//     and preserved by every conversion.
//
// An Infos set guards its data with a reader-writer lock: the raw data can
// only be observed through Read and Write, which hold the lock for the whole
// callback. Conversions to the pipeline-internal representation (see package
// pipeline) use Read, so a concurrently mutated source set can never be
// observed mid-update.
package tensors

import (
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/streamml/streamml/errdefs"
)

const (
	// MaxRank is the maximum number of dimensions of a public descriptor.
	MaxRank = 8

	// MaxTensors is the maximum number of tensor slots in one Infos set.
	MaxTensors = 16
)

// ElementType enumerates the numeric types an element of a tensor may have.
//
// The zero value is Unknown, so a zero-initialized descriptor is explicitly
// typeless rather than aliasing a valid type.
type ElementType int

const (
	Unknown ElementType = iota
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
)

// String implements fmt.Stringer.
func (t ElementType) String() string {
	switch t {
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Size returns the size in bytes of one element of type t, or 0 for Unknown.
func (t ElementType) Size() int {
	switch t {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64:
		return 8
	default:
		return 0
	}
}

// Info describes one tensor slot.
//
// Name is nil when the tensor has no name; the distinction between an unnamed
// tensor and one named "" is preserved by copies and conversions.
type Info struct {
	Name       *string
	Type       ElementType
	Dimensions [MaxRank]uint32
}

// Size returns the number of bytes a data buffer for this descriptor
// requires, or 0 when the element type is Unknown.
func (info *Info) Size() uint64 {
	size := uint64(info.Type.Size())
	for i := 0; i < MaxRank; i++ {
		size *= uint64(info.Dimensions[i])
	}
	return size
}

// InfosData is the raw content of an Infos set, only reachable through
// Infos.Read and Infos.Write while the corresponding lock is held.
type InfosData struct {
	Tensors []Info
}

// Infos is an ordered set of tensor descriptors. The slot order is
// significant and each set exclusively owns the name strings of its entries.
//
// All accessors lock internally; use Read or Write for multi-field access
// under one lock acquisition.
type Infos struct {
	mu   sync.RWMutex
	data InfosData
}

// NewInfos returns an empty descriptor set.
func NewInfos() *Infos {
	return &Infos{}
}

// Read calls f with the set's data while holding the read lock.
// f must not retain the *InfosData nor any of its name pointers.
func (ti *Infos) Read(f func(data *InfosData)) {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	f(&ti.data)
}

// Write calls f with the set's data while holding the write lock.
// f must not retain the *InfosData nor any of its name pointers.
func (ti *Infos) Write(f func(data *InfosData)) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	f(&ti.data)
}

// NumTensors returns the number of tensor slots in the set.
func (ti *Infos) NumTensors() int {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	return len(ti.data.Tensors)
}

// SetNumTensors resizes the set to n slots. Existing slots below n are
// preserved, new slots are zero descriptors.
func (ti *Infos) SetNumTensors(n int) error {
	if n < 0 || n > MaxTensors {
		return errors.Wrapf(errdefs.ErrInvalidParameter,
			"number of tensors %d is out of range [0, %d]", n, MaxTensors)
	}
	ti.mu.Lock()
	defer ti.mu.Unlock()
	tensors := make([]Info, n)
	for i := 0; i < n && i < len(ti.data.Tensors); i++ {
		tensors[i] = ti.data.Tensors[i]
		if src := ti.data.Tensors[i].Name; src != nil {
			name := *src
			tensors[i].Name = &name
		}
	}
	ti.data.Tensors = tensors
	return nil
}

// checkIndex panics on an out-of-range slot index: like slice indexing this
// is a caller bug, not a runtime condition.
func (ti *Infos) checkIndex(index int) {
	if index < 0 || index >= len(ti.data.Tensors) {
		exceptions.Panicf("tensors: slot index %d out of range for set with %d tensors",
			index, len(ti.data.Tensors))
	}
}

// SetName sets the name of the tensor at the given slot.
func (ti *Infos) SetName(index int, name string) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	ti.checkIndex(index)
	owned := name
	ti.data.Tensors[index].Name = &owned
}

// ClearName removes the name of the tensor at the given slot, returning the
// slot to the unnamed state.
func (ti *Infos) ClearName(index int) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	ti.checkIndex(index)
	ti.data.Tensors[index].Name = nil
}

// Name returns the name of the tensor at the given slot, and whether the slot
// is named at all.
func (ti *Infos) Name(index int) (name string, ok bool) {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	ti.checkIndex(index)
	if ti.data.Tensors[index].Name == nil {
		return "", false
	}
	return *ti.data.Tensors[index].Name, true
}

// SetType sets the element type of the tensor at the given slot.
func (ti *Infos) SetType(index int, t ElementType) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	ti.checkIndex(index)
	ti.data.Tensors[index].Type = t
}

// Type returns the element type of the tensor at the given slot.
func (ti *Infos) Type(index int) ElementType {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	ti.checkIndex(index)
	return ti.data.Tensors[index].Type
}

// SetDimensions sets the dimension vector of the tensor at the given slot.
// Dimension entries beyond len(dims) are set to 1, the identity for
// size-product purposes.
func (ti *Infos) SetDimensions(index int, dims []uint32) error {
	if len(dims) > MaxRank {
		return errors.Wrapf(errdefs.ErrInvalidParameter,
			"rank %d exceeds the maximum supported rank %d", len(dims), MaxRank)
	}
	ti.mu.Lock()
	defer ti.mu.Unlock()
	ti.checkIndex(index)
	j := 0
	for ; j < len(dims); j++ {
		ti.data.Tensors[index].Dimensions[j] = dims[j]
	}
	for ; j < MaxRank; j++ {
		ti.data.Tensors[index].Dimensions[j] = 1
	}
	return nil
}

// Dimensions returns a copy of the full dimension vector of the tensor at the
// given slot.
func (ti *Infos) Dimensions(index int) [MaxRank]uint32 {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	ti.checkIndex(index)
	return ti.data.Tensors[index].Dimensions
}

// snapshot returns a deep copy of the set's data.
func (ti *Infos) snapshot() InfosData {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	out := InfosData{Tensors: make([]Info, len(ti.data.Tensors))}
	for i := range ti.data.Tensors {
		out.Tensors[i] = ti.data.Tensors[i]
		if src := ti.data.Tensors[i].Name; src != nil {
			name := *src
			out.Tensors[i].Name = &name
		}
	}
	return out
}

// Clone returns a deep copy of the set, including owned copies of all names.
func (ti *Infos) Clone() *Infos {
	return &Infos{data: ti.snapshot()}
}

// Equal reports whether both sets describe the same tensors: same count, and
// per slot the same name (or both unnamed), type and dimension vector.
func (ti *Infos) Equal(other *Infos) bool {
	if ti == other {
		return true
	}
	if ti == nil || other == nil {
		return false
	}
	a, b := ti.snapshot(), other.snapshot()
	if len(a.Tensors) != len(b.Tensors) {
		return false
	}
	for i := range a.Tensors {
		ta, tb := &a.Tensors[i], &b.Tensors[i]
		if (ta.Name == nil) != (tb.Name == nil) {
			return false
		}
		if ta.Name != nil && *ta.Name != *tb.Name {
			return false
		}
		if ta.Type != tb.Type || ta.Dimensions != tb.Dimensions {
			return false
		}
	}
	return true
}

// Validate checks that the set is ready to describe model inputs or outputs:
// at least one tensor, every slot has a known element type and no dimension
// entry is zero.
func (ti *Infos) Validate() error {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	if len(ti.data.Tensors) == 0 {
		return errors.Wrap(errdefs.ErrInvalidParameter, "the descriptor set is empty")
	}
	for i := range ti.data.Tensors {
		if ti.data.Tensors[i].Type == Unknown {
			return errors.Wrapf(errdefs.ErrInvalidParameter,
				"tensor %d has unknown element type", i)
		}
		for j, d := range ti.data.Tensors[i].Dimensions {
			if d == 0 {
				return errors.Wrapf(errdefs.ErrInvalidParameter,
					"tensor %d has zero dimension at axis %d", i, j)
			}
		}
	}
	return nil
}

// Size returns the byte size of the data buffer required by the tensor at the
// given slot.
func (ti *Infos) Size(index int) uint64 {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	ti.checkIndex(index)
	return ti.data.Tensors[index].Size()
}

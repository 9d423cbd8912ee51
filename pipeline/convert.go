package pipeline

import (
	"github.com/streamml/streamml/tensors"
)

const (
	// MaxRank is the maximum number of dimensions of an engine-internal
	// tensor descriptor. It is larger than the public tensors.MaxRank; the
	// extra axes are padded with 1 on conversion.
	MaxRank = 16

	// MaxTensors is the maximum number of tensor slots the engine transports
	// in one frame.
	MaxTensors = 16
)

// commonRank is the number of dimension entries shared by the public and the
// internal representation. Axes beyond it are defined to be 1.
const commonRank = min(tensors.MaxRank, MaxRank)

// TensorType is the engine-internal element type enumeration. It is distinct
// from tensors.ElementType: the engine orders its values differently and
// terminates the set with the TypeEnd sentinel, which is also where element
// types without a public equivalent land.
type TensorType int

const (
	TypeEnd TensorType = iota
	TypeInt32
	TypeUInt32
	TypeInt16
	TypeUInt16
	TypeInt8
	TypeUInt8
	TypeFloat64
	TypeFloat32
	TypeInt64
	TypeUInt64
)

// String implements fmt.Stringer.
func (t TensorType) String() string {
	switch t {
	case TypeInt32:
		return "int32"
	case TypeUInt32:
		return "uint32"
	case TypeInt16:
		return "int16"
	case TypeUInt16:
		return "uint16"
	case TypeInt8:
		return "int8"
	case TypeUInt8:
		return "uint8"
	case TypeFloat64:
		return "float64"
	case TypeFloat32:
		return "float32"
	case TypeInt64:
		return "int64"
	case TypeUInt64:
		return "uint64"
	default:
		return "end"
	}
}

// TensorInfo is the engine-internal descriptor of one tensor slot.
// Name is nil for unnamed tensors.
type TensorInfo struct {
	Name       *string
	Type       TensorType
	Dimensions [MaxRank]uint32
}

// TensorsInfo is the engine-internal ordered descriptor set. Unlike
// tensors.Infos it carries no lock: a TensorsInfo is always freshly
// constructed for, and owned by, a single caller.
type TensorsInfo struct {
	NumTensors int
	Info       [MaxTensors]TensorInfo
}

// toTensorType maps a public element type to the engine's enumeration.
// Types without an engine equivalent map to the TypeEnd sentinel; this is a
// declared lossy edge, not an error.
func toTensorType(t tensors.ElementType) TensorType {
	switch t {
	case tensors.Int32:
		return TypeInt32
	case tensors.UInt32:
		return TypeUInt32
	case tensors.Int16:
		return TypeInt16
	case tensors.UInt16:
		return TypeUInt16
	case tensors.Int8:
		return TypeInt8
	case tensors.UInt8:
		return TypeUInt8
	case tensors.Float64:
		return TypeFloat64
	case tensors.Float32:
		return TypeFloat32
	case tensors.Int64:
		return TypeInt64
	case tensors.UInt64:
		return TypeUInt64
	default:
		return TypeEnd
	}
}

// toElementType maps an engine element type to the public enumeration.
// Types without a public equivalent map to tensors.Unknown.
func toElementType(t TensorType) tensors.ElementType {
	switch t {
	case TypeInt32:
		return tensors.Int32
	case TypeUInt32:
		return tensors.UInt32
	case TypeInt16:
		return tensors.Int16
	case TypeUInt16:
		return tensors.UInt16
	case TypeInt8:
		return tensors.Int8
	case TypeUInt8:
		return tensors.UInt8
	case TypeFloat64:
		return tensors.Float64
	case TypeFloat32:
		return tensors.Float32
	case TypeInt64:
		return tensors.Int64
	case TypeUInt64:
		return tensors.UInt64
	default:
		return tensors.Unknown
	}
}

// FromTensors builds the engine-internal descriptor set from a public one.
//
// The source is observed under its read lock for the whole conversion, so a
// concurrently mutated set is never seen mid-update. Count and slot order
// are preserved; names are deep-copied; dimension axes beyond the public
// rank are set to 1. A nil source yields an empty set.
func FromTensors(src *tensors.Infos) *TensorsInfo {
	dst := &TensorsInfo{}
	if src == nil {
		return dst
	}
	src.Read(func(data *tensors.InfosData) {
		// Both representations cap at 16 slots; a set grown beyond that
		// through Write is truncated here.
		dst.NumTensors = min(len(data.Tensors), MaxTensors)
		for i := 0; i < dst.NumTensors; i++ {
			t := &data.Tensors[i]
			if t.Name != nil {
				name := *t.Name
				dst.Info[i].Name = &name
			}
			dst.Info[i].Type = toTensorType(t.Type)
			j := 0
			for ; j < commonRank; j++ {
				dst.Info[i].Dimensions[j] = t.Dimensions[j]
			}
			for ; j < MaxRank; j++ {
				dst.Info[i].Dimensions[j] = 1
			}
		}
	})
	return dst
}

// ToTensors builds a public descriptor set from the engine-internal one.
//
// Count and slot order are preserved; names are deep-copied; dimension axes
// beyond commonRank are dropped, and any public axis beyond the internal
// rank would be set to 1.
func (ti *TensorsInfo) ToTensors() *tensors.Infos {
	dst := tensors.NewInfos()
	if ti == nil {
		return dst
	}
	n := min(ti.NumTensors, MaxTensors)
	dst.Write(func(data *tensors.InfosData) {
		data.Tensors = make([]tensors.Info, n)
		for i := 0; i < n; i++ {
			src := &ti.Info[i]
			if src.Name != nil {
				name := *src.Name
				data.Tensors[i].Name = &name
			}
			data.Tensors[i].Type = toElementType(src.Type)
			j := 0
			for ; j < commonRank; j++ {
				data.Tensors[i].Dimensions[j] = src.Dimensions[j]
			}
			for ; j < tensors.MaxRank; j++ {
				data.Tensors[i].Dimensions[j] = 1
			}
		}
	})
	return dst
}

// Package frameworks enumerates the native inference engines ("frameworks")
// streamml can dispatch a model to, and maps them to and from the canonical
// names used by the pipeline engine's filter plugins.
//
// The set of frameworks is closed: ID is a variant over every supported
// engine plus two special tags, Any (no framework resolved yet) and
// CustomFilter (a user-supplied filter function). SNAP is platform-gated and
// only usable on Android builds; its name is intentionally absent from the
// canonical table and resolved by a separate case-insensitive check.
package frameworks

import (
	"sort"
	"strings"

	"github.com/gomlx/exceptions"
	"golang.org/x/exp/maps"
	"k8s.io/klog/v2"
)

// ID identifies one supported inference framework.
//
// The zero value is Any, meaning "not resolved to a concrete framework".
// Any must never be used as a lookup key for a plugin name.
type ID int

const (
	Any ID = iota
	CustomFilter
	TensorFlowLite
	TensorFlow
	NNFW
	MovidiusNCSDK2
	OpenVINO
	Vivante
	EdgeTPU
	ArmNN
	SNPE
	PyTorch
	NNTrainer
	VendorAIFW
	TrixEngine

	// SNAP is only available on Android (arm64-v8a) builds.
	SNAP
)

// Name returns the canonical name of the framework's filter plugin.
//
// It is total over all concrete frameworks; calling it on Any is a caller
// bug and panics.
func (id ID) Name() string {
	switch id {
	case CustomFilter:
		return "custom"
	case TensorFlowLite:
		return "tensorflow-lite"
	case TensorFlow:
		return "tensorflow"
	case NNFW:
		return "nnfw"
	case MovidiusNCSDK2:
		return "movidius-ncsdk2"
	case OpenVINO:
		return "openvino"
	case Vivante:
		return "vivante"
	case EdgeTPU:
		return "edgetpu"
	case ArmNN:
		return "armnn"
	case SNPE:
		return "snpe"
	case PyTorch:
		return "pytorch"
	case NNTrainer:
		return "nntrainer"
	case VendorAIFW:
		return "vd_aifw"
	case TrixEngine:
		return "trix-engine"
	case SNAP:
		// Platform-gated, resolved outside the canonical table.
		return "snap"
	case Any:
		exceptions.Panicf("frameworks: ID.Name() must not be called on frameworks.Any")
	}
	exceptions.Panicf("frameworks: ID.Name() called on invalid id %d", int(id))
	return ""
}

// idByName is the reverse of Name over the canonical table. SNAP is handled
// separately in FromName.
var idByName = map[string]ID{
	"custom":          CustomFilter,
	"tensorflow-lite": TensorFlowLite,
	"tensorflow":      TensorFlow,
	"nnfw":            NNFW,
	"movidius-ncsdk2": MovidiusNCSDK2,
	"openvino":        OpenVINO,
	"vivante":         Vivante,
	"edgetpu":         EdgeTPU,
	"armnn":           ArmNN,
	"snpe":            SNPE,
	"pytorch":         PyTorch,
	"nntrainer":       NNTrainer,
	"vd_aifw":         VendorAIFW,
	"trix-engine":     TrixEngine,
}

// FromName resolves a canonical plugin name to its framework ID.
//
// Lookup is case-sensitive for the canonical table; "snap" is matched
// case-insensitively. An unknown or empty name resolves to Any with a
// warning, it is not an error: unresolved names degrade rather than fail.
func FromName(name string) ID {
	if name == "" {
		return Any
	}
	if id, found := idByName[name]; found {
		return id
	}
	if strings.EqualFold(name, "snap") {
		return SNAP
	}
	klog.Warningf("Cannot find a framework named %q, treating it as unresolved.", name)
	return Any
}

// Names returns the canonical names of all frameworks in the table, sorted.
// Meant for diagnostics; it does not include "snap".
func Names() []string {
	names := maps.Keys(idByName)
	sort.Strings(names)
	return names
}

package pipeline

import (
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/streamml/streamml/errdefs"
	"github.com/streamml/streamml/internal/nnconf"
)

const (
	// firstPartyPlugin is the name prefix of streamml's own plugin family.
	// Its elements are trusted unconditionally.
	firstPartyPlugin = "streamml"

	// firstPartyElementPrefix is the naming convention of first-party
	// elements.
	firstPartyElementPrefix = "tensor_"
)

// restrictionPolicy is the operator-configured allow-list limiting which
// non-first-party elements may be instantiated. Loaded at most once per
// process; sync.Once makes the exactly-once guarantee hold under concurrent
// first callers.
type restrictionPolicy struct {
	once    sync.Once
	conf    nnconf.Source
	allowed []string // nil: restriction disabled, everything is available.
}

var restriction = &restrictionPolicy{conf: nnconf.Default()}

func (p *restrictionPolicy) load() {
	if !p.conf.GetBool("element-restriction", "enable_element_restriction", false) {
		return
	}
	elements := p.conf.GetString("element-restriction", "restricted_elements")
	if elements == "" {
		return
	}
	p.allowed = strings.FieldsFunc(elements, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';'
	})
}

// elementAllowed reports whether the restriction policy permits the element.
func (p *restrictionPolicy) elementAllowed(element string) bool {
	p.once.Do(p.load)
	if p.allowed == nil {
		return true
	}
	return slices.Contains(p.allowed, element)
}

// checkPluginAvailability applies the restriction policy to an element and
// the plugin providing it. Elements of streamml's own plugin family pass
// unconditionally. A restricted element wraps errdefs.ErrNotSupported.
func checkPluginAvailability(plugin, element string) error {
	if plugin == "" || element == "" {
		klog.Errorf("The name is invalid, failed to check the availability.")
		return errors.Wrap(errdefs.ErrInvalidParameter, "empty plugin or element name")
	}

	if strings.HasPrefix(plugin, firstPartyPlugin) &&
		strings.HasPrefix(element, firstPartyElementPrefix) {
		return nil
	}

	if !restriction.elementAllowed(element) {
		klog.Warningf("The element %s is restricted.", element)
		return errors.Wrapf(errdefs.ErrNotSupported, "element %q is restricted", element)
	}
	return nil
}

// ElementAvailable reports whether the named pipeline element is registered
// and permitted on this system.
//
// An element missing from the engine's registry is not an error: the call
// succeeds with available=false. The same holds for an element excluded by
// the restriction policy. Errors are only returned for invalid input and for
// an engine that fails to initialize.
func ElementAvailable(eng Engine, name string) (bool, error) {
	if eng == nil || name == "" {
		return false, errors.Wrap(errdefs.ErrInvalidParameter, "no element name given")
	}

	if err := eng.Init(); err != nil {
		klog.Errorf("Cannot initialize the %s engine: %v", eng.Name(), err)
		return false, errors.WithMessagef(errdefs.ErrEngineInit,
			"initializing the %s engine: %v", eng.Name(), err)
	}

	plugin, found := eng.FindElement(name)
	if !found {
		return false, nil
	}

	if err := checkPluginAvailability(plugin, name); err != nil {
		if errdefs.IsNotSupported(err) {
			// Restricted, logged at detection: unavailable but not an error.
			return false, nil
		}
		return false, err
	}
	return true, nil
}

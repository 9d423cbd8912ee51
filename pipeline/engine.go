// Package pipeline bridges the streamml API to the underlying data-flow
// pipeline engine: it resolves which framework should execute a given model,
// converts tensor descriptors between the public representation (package
// tensors) and the engine's internal one, and gates which pipeline elements a
// caller may instantiate.
//
// The engine itself is an external collaborator behind the Engine interface.
// Engine implementations register themselves with Register, typically from an
// init function, the same way filter plugins register with the engine.
package pipeline

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/streamml/streamml/errdefs"
	"github.com/streamml/streamml/frameworks"
)

// Engine is the API a pipeline engine binding needs to implement to be used
// by streamml.
type Engine interface {
	// Name returns the short name of the engine binding.
	Name() string

	// Init initializes the engine. It is idempotent and safe to call
	// repeatedly; after the first success it returns nil immediately.
	Init() error

	// DetectFramework inspects the model paths and returns the canonical name
	// of the framework most likely to load them, or "" when the heuristic is
	// inconclusive. With strict set, only high-confidence matches are
	// returned. Detection never fails, it only abstains.
	DetectFramework(paths []string, strict bool) string

	// FrameworkAvailable reports whether the framework's filter plugin is
	// loaded in this process and can execute on the given accelerator.
	FrameworkAvailable(id frameworks.ID, hw frameworks.AccelHW) bool

	// FindElement looks up a pipeline element factory by name and returns the
	// name of the plugin providing it.
	FindElement(name string) (plugin string, ok bool)
}

// Constructor takes a config string (optionally empty) and returns an Engine.
type Constructor func(config string) (Engine, error)

var (
	registeredConstructors = make(map[string]Constructor)
	firstRegistered        string
)

// Register an engine binding under the given name, with a constructor that
// receives the binding-specific part of the configuration string.
//
// To be safe, call Register during initialization of a package.
func Register(name string, constructor Constructor) {
	if len(registeredConstructors) == 0 {
		firstRegistered = name
	}
	registeredConstructors[name] = constructor
}

// DefaultConfig is the engine configuration to use if none is given through
// the environment.
//
// See NewWithConfig for the format of the configuration string.
var DefaultConfig string

// ConfigEnv is the environment variable with the default engine
// configuration, formatted as "<engine_name>:<engine_configuration>".
const ConfigEnv = "STREAMML_ENGINE"

// New returns a new Engine from the default configuration: the ConfigEnv
// environment variable if set, else DefaultConfig, else the first registered
// engine with an empty configuration.
func New() (Engine, error) {
	if config, found := os.LookupEnv(ConfigEnv); found {
		return NewWithConfig(config)
	}
	if DefaultConfig != "" {
		return NewWithConfig(DefaultConfig)
	}
	return NewWithConfig("")
}

// NewWithConfig creates an Engine from a configuration string formatted as
// "<engine_name>:<engine_configuration>". An empty name selects the first
// registered engine.
func NewWithConfig(config string) (Engine, error) {
	if len(registeredConstructors) == 0 {
		return nil, errors.Wrap(errdefs.ErrEngineInit,
			"no pipeline engine registered -- import an engine binding package")
	}
	engineName := firstRegistered
	engineConfig := config
	if idx := strings.Index(config, ":"); idx != -1 {
		engineName = config[:idx]
		engineConfig = config[idx+1:]
	}
	constructor, found := registeredConstructors[engineName]
	if !found {
		return nil, errors.Wrapf(errdefs.ErrInvalidParameter,
			"no pipeline engine named %q registered (configuration %q)", engineName, config)
	}
	eng, err := constructor(engineConfig)
	if err != nil {
		return nil, errors.WithMessagef(errdefs.ErrEngineInit,
			"creating %q engine: %v", engineName, err)
	}
	return eng, nil
}

// Engines returns the names of all registered engine bindings, sorted.
func Engines() []string {
	names := maps.Keys(registeredConstructors)
	sort.Strings(names)
	return names
}

package builtin

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/algo-harness/plugin"
)

// Scheme prefixes every builtin plugin path.
const Scheme = "builtin:"

// FormatName is the name reported by the builtin Format.
const FormatName = "builtin"

var (
	// ErrUnknownPlugin is returned for a builtin path naming no registered plugin.
	ErrUnknownPlugin = errors.New("builtin: unknown plugin")

	errDuplicatePlugin = errors.New("builtin: duplicate plugin name")
)

// Factory builds one plugin instance.
type Factory func(sampleRate float64, blockSize int) (plugin.Instance, error)

// Registry maps plugin names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding the passthrough, gain and
// delay plugins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("passthrough", NewPassthrough)
	r.MustRegister("gain", NewGain)
	r.MustRegister("delay", NewDelay)
	return r
}

// Register adds a factory under a case-insensitive name.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.ToLower(name)
	if name == "" {
		return errors.New("builtin: empty plugin name")
	}
	if factory == nil {
		return errors.New("builtin: nil factory")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicatePlugin, name)
	}

	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the factory for name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[strings.ToLower(name)]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format exposes a Registry as a plugin.Format.
type Format struct {
	registry *Registry
}

// NewFormat returns a Format resolving "builtin:<name>" paths against r.
func NewFormat(r *Registry) *Format {
	return &Format{registry: r}
}

// Name returns FormatName.
func (f *Format) Name() string { return FormatName }

// FindTypes returns one description for a known builtin path, nothing for
// paths outside the scheme and ErrUnknownPlugin otherwise.
func (f *Format) FindTypes(path string) ([]plugin.Description, error) {
	if len(path) < len(Scheme) || !strings.EqualFold(path[:len(Scheme)], Scheme) {
		return nil, nil
	}

	name := strings.ToLower(path[len(Scheme):])
	if f.registry.Lookup(name) == nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPlugin, name,
			strings.Join(f.registry.Names(), ", "))
	}

	return []plugin.Description{{Name: name, Format: FormatName, Identifier: Scheme + name}}, nil
}

// CreateInstance builds the described plugin.
func (f *Format) CreateInstance(desc plugin.Description, sampleRate float64, blockSize int) (plugin.Instance, error) {
	factory := f.registry.Lookup(desc.Name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, desc.Name)
	}
	return factory(sampleRate, blockSize)
}

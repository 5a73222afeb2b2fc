// Package goplugin loads harness plugins built as Go shared objects with
// -buildmode=plugin. Such a plugin exports
//
//	func NewHarnessPlugin() plugin.Instance
//
// where plugin is github.com/cwbudde/algo-harness/plugin. Loading is only
// available where the Go runtime supports it (linux and darwin with cgo);
// elsewhere the format recognises no files.
package goplugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/plugin"
)

const (
	// FormatName is the name reported by Format.
	FormatName = "goplugin"
	// Extension is the file extension of loadable plugins.
	Extension = ".so"
	// SymbolName is the constructor every plugin must export.
	SymbolName = "NewHarnessPlugin"
)

var (
	// ErrBadSymbol is returned when the constructor has the wrong type.
	ErrBadSymbol = errors.New("goplugin: NewHarnessPlugin has the wrong type")
	// ErrUnsupported is returned on platforms without the Go plugin loader.
	ErrUnsupported = errors.New("goplugin: plugin loading is not supported on this platform")
	// ErrNilInstance is returned when the constructor returns nil.
	ErrNilInstance = errors.New("goplugin: NewHarnessPlugin returned nil")
)

// Constructor is the signature of the exported symbol.
type Constructor = func() plugin.Instance

// Format finds and instantiates Go shared-object plugins.
type Format struct{}

// NewFormat returns a Format.
func NewFormat() *Format {
	return &Format{}
}

// Name returns FormatName.
func (f *Format) Name() string { return FormatName }

// FindTypes returns one description for a loadable shared object at path
// and nothing for other files.
func (f *Format) FindTypes(path string) ([]plugin.Description, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errkind.Wrap(errkind.Resource, err, "plugin not found: %s", path)
	}
	if !supported {
		return nil, nil
	}

	if _, err := lookup(path); err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []plugin.Description{{Name: name, Format: FormatName, Identifier: path}}, nil
}

// CreateInstance opens the shared object and calls its constructor.
func (f *Format) CreateInstance(desc plugin.Description, _ float64, _ int) (plugin.Instance, error) {
	ctor, err := lookup(desc.Identifier)
	if err != nil {
		return nil, err
	}

	inst := ctor()
	if inst == nil {
		return nil, ErrNilInstance
	}
	return inst, nil
}

// resolve converts a looked-up symbol into a Constructor. Exported
// functions arrive as values, exported variables as pointers.
func resolve(sym any) (Constructor, error) {
	switch fn := sym.(type) {
	case func() plugin.Instance:
		return fn, nil
	case *func() plugin.Instance:
		if fn == nil || *fn == nil {
			return nil, ErrBadSymbol
		}
		return *fn, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadSymbol, sym)
	}
}

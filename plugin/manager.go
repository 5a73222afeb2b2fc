package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cwbudde/algo-harness/internal/errkind"
)

// FormatManager resolves a plugin path against an explicit list of formats.
type FormatManager struct {
	formats []Format
	cfg     config
}

// NewFormatManager returns a manager searching formats in order.
func NewFormatManager(formats []Format, opts ...Option) *FormatManager {
	m := &FormatManager{cfg: applyOptions(opts)}
	for _, f := range formats {
		if f != nil {
			m.formats = append(m.formats, f)
		}
	}
	return m
}

// Formats returns the registered formats in search order.
func (m *FormatManager) Formats() []Format {
	return m.formats
}

// FindTypes returns the descriptions of the first format that recognises
// path.
func (m *FormatManager) FindTypes(path string) (Format, []Description, error) {
	if len(m.formats) == 0 {
		return nil, nil, errkind.Classify(errkind.Plugin, ErrNoFormats)
	}

	for _, f := range m.formats {
		descs, err := f.FindTypes(path)
		if err != nil {
			return nil, nil, classify(errkind.Plugin, err)
		}
		if len(descs) > 0 {
			return f, descs, nil
		}
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil, errkind.Wrap(errkind.Resource, err, "plugin not found: %s", path)
	}

	return nil, nil, errkind.Classify(errkind.Plugin, fmt.Errorf("%w in: %s", ErrNoTypes, path))
}

// Load instantiates the first plugin type found at path.
func (m *FormatManager) Load(path string, sampleRate float64, blockSize int) (Instance, error) {
	f, descs, err := m.FindTypes(path)
	if err != nil {
		return nil, err
	}

	desc := descs[0]
	m.cfg.logger.Debug("loading plugin", "path", path, "format", f.Name(),
		"name", desc.Name, "types", len(descs))

	inst, err := f.CreateInstance(desc, sampleRate, blockSize)
	if err != nil {
		return nil, classify(errkind.Plugin, fmt.Errorf("plugin: failed to instantiate %s: %w", desc.Name, err))
	}

	return inst, nil
}

// classify tags err with kind unless it already carries one.
func classify(kind errkind.Kind, err error) error {
	if errkind.Of(err) != errkind.Unknown {
		return err
	}
	return errkind.Classify(kind, err)
}

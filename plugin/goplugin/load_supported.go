//go:build (linux || darwin) && cgo

package goplugin

import (
	"fmt"
	stdplugin "plugin"
)

const supported = true

func lookup(path string) (Constructor, error) {
	p, err := stdplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("goplugin: open %s: %w", path, err)
	}

	sym, err := p.Lookup(SymbolName)
	if err != nil {
		return nil, fmt.Errorf("goplugin: %s: %w", path, err)
	}

	return resolve(sym)
}

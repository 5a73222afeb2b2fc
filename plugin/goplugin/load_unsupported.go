//go:build !((linux || darwin) && cgo)

package goplugin

const supported = false

func lookup(string) (Constructor, error) {
	return nil, ErrUnsupported
}

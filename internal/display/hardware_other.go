//go:build !windows

package display

func newHardware(Options) (Controller, error) {
	return nil, ErrUnsupportedPlatform
}

package display

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"windisplay/internal/ddc"
)

// Controller is the single control surface over every display. All methods
// are synchronous and every write may be repeated with the same value.
type Controller interface {
	// List rebuilds the full record of every display.
	List(ctx context.Context) ([]Display, error)
	// Names returns device names in enumeration order without probing modes
	// or monitors.
	Names() ([]string, error)

	SetResolution(name string, width, height uint32, refresh *uint32) error
	SetOrientation(name string, degrees uint32) error

	Brightness(ctx context.Context, name string) (ddc.BrightnessRange, error)
	SetBrightness(ctx context.Context, name string, percent uint32) error

	ScaleOptions(name string) ([]ScaleOption, error)
	SetScale(name string, percent uint32) error

	EnableHDR(name string, enable bool) error

	InputSource(name string) (string, error)
	SetInputSource(name, input string) error
	Capabilities(name string) (string, error)

	Power(name string) (ddc.PowerStatus, error)
	SetPower(name string, on bool) error
}

// Backend selects the Controller implementation.
type Backend string

const (
	BackendAuto     Backend = "auto"
	BackendHardware Backend = "hardware"
	BackendFake     Backend = "fake"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendAuto, BackendHardware, BackendFake:
		return b, nil
	case "":
		return BackendAuto, nil
	}
	return "", fmt.Errorf("unknown backend %q (want auto, hardware or fake)", s)
}

// Options configures the hardware backend.
type Options struct {
	// ScriptTimeout bounds each PowerShell metadata or brightness query.
	ScriptTimeout time.Duration
}

// New builds the Controller for backend. Auto picks the hardware backend on
// Windows and the synthetic one elsewhere.
func New(backend Backend, opts Options) (Controller, error) {
	switch backend {
	case BackendFake:
		return NewFake(), nil
	case BackendHardware:
		return newHardware(opts)
	case BackendAuto, "":
		if runtime.GOOS == "windows" {
			return newHardware(opts)
		}
		return NewFake(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

// NameAt resolves a zero-based monitor index to its device name.
func NameAt(c Controller, index int) (string, error) {
	names, err := c.Names()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(names) {
		return "", fmt.Errorf("%w: monitor index %d out of range (found %d)", ErrNotFound, index, len(names))
	}
	return names[index], nil
}

func normalizeDegrees(deg uint32) (code uint32, err error) {
	code, ok := orientationCode(deg % 360)
	if !ok {
		return 0, fmt.Errorf("%w: orientation must be 0, 90, 180 or 270, got %d", ErrRejected, deg)
	}
	return code, nil
}

func isPortrait(deg uint32) bool {
	return deg == 90 || deg == 270
}

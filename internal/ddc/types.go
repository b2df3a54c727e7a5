package ddc

import (
	"context"
	"errors"
)

// VCP feature codes used by windisplay.
const (
	VCPBrightness  byte = 0x10
	VCPInputSource byte = 0x60
	VCPPowerMode   byte = 0xD6
)

// VCP 0xD6 values.
const (
	PowerModeOn      uint32 = 0x01
	PowerModeHardOff uint32 = 0x05
)

const (
	inputCodeMask     = 0xFF
	defaultBrightness = 50
)

var (
	// ErrNoMonitorHandle is returned when no HMONITOR matches a device name.
	ErrNoMonitorHandle = errors.New("monitor handle not found")
	// ErrNoPhysicalMonitor is returned when the monitor exposes no DDC/CI handle.
	ErrNoPhysicalMonitor = errors.New("no physical monitors found or operation unsupported")
	// ErrInputIgnored is returned when the monitor did not switch to the requested input.
	ErrInputIgnored = errors.New("monitor ignored input change, it might not support DDC/CI or connection method is not supported")
	// ErrUnknownInput is returned for labels that are neither known nor numeric.
	ErrUnknownInput = errors.New("unknown input label")
)

// PhysicalMonitor is one DDC/CI-addressable monitor handle.
type PhysicalMonitor interface {
	Brightness() (lo, current, hi uint32, err error)
	SetBrightness(value uint32) error
	VCP(code byte) (current, maximum uint32, err error)
	SetVCP(code byte, value uint32) error
	Capabilities() (string, error)
}

// Opener resolves a GDI device name to its first physical monitor. The
// returned release func must be called on every path once err is nil.
type Opener interface {
	Open(device string) (PhysicalMonitor, func(), error)
}

// BrightnessFallback is the OS-level brightness path used when DDC/CI is
// unavailable, typically for internal panels.
type BrightnessFallback interface {
	Brightness(ctx context.Context) (uint32, error)
	SetBrightness(ctx context.Context, percent uint32) error
}

// DDCClient is the contract for DDC/CI monitor control keyed by device name.
type DDCClient interface {
	Brightness(ctx context.Context, device string) BrightnessRange
	SetBrightness(ctx context.Context, device string, percent uint32) error
	InputSource(device string) (string, error)
	SetInputSource(device, input string) error
	Capabilities(device string) (string, error)
	SupportsInputSwitch(device string) (bool, error)
	Power(device string) PowerStatus
	SetPower(device string, on bool) error
}

// BrightnessRange is a brightness reading. Min <= Current <= Max.
type BrightnessRange struct {
	Min     uint32 `json:"min"`
	Current uint32 `json:"current"`
	Max     uint32 `json:"max"`
}

// DefaultBrightness is reported when neither DDC/CI nor WMI answer.
var DefaultBrightness = BrightnessRange{Min: 0, Current: defaultBrightness, Max: 100}

func normalize(lo, cur, hi uint32) BrightnessRange {
	if hi < lo {
		lo, hi = hi, lo
	}
	return BrightnessRange{Min: lo, Current: min(max(cur, lo), hi), Max: hi}
}

// PowerStatus is the result of a VCP 0xD6 read.
type PowerStatus int

const (
	// PowerNoDDC means the display has no DDC/CI handle at all.
	PowerNoDDC PowerStatus = iota
	PowerOn
	PowerOff
)

func (p PowerStatus) String() string {
	switch p {
	case PowerOn:
		return "on"
	case PowerOff:
		return "off"
	}
	return "no DDC/CI"
}

// Enabled maps the status to an enabled flag; displays without DDC/CI are
// treated as enabled.
func (p PowerStatus) Enabled() bool {
	return p != PowerOff
}

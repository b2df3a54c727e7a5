//go:build windows

package win32

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// ErrNoPhysicalMonitor means the HMONITOR exposes no DDC/CI monitor.
var ErrNoPhysicalMonitor = errors.New("no physical monitor")

// PHYSICAL_MONITOR, pack(1). On both 386 and amd64 the natural layout has no
// padding.
type physicalMonitor struct {
	Handle      windows.Handle
	Description [128]uint16
}

// PhysicalMonitor is a DDC/CI-addressable handle. It must be released with
// DestroyPhysicalMonitors.
type PhysicalMonitor struct {
	handle      windows.Handle
	Description string
}

// PhysicalMonitors returns every physical monitor behind h.
func PhysicalMonitors(h win.HMONITOR) ([]PhysicalMonitor, error) {
	var count uint32
	r, _, _ := procGetNumberOfPhysicalMonitorsFromHMONITOR.Call(uintptr(h), uintptr(unsafe.Pointer(&count)))
	if r == 0 || count == 0 {
		return nil, ErrNoPhysicalMonitor
	}

	raw := make([]physicalMonitor, count)
	r, _, err := procGetPhysicalMonitorsFromHMONITOR.Call(uintptr(h), uintptr(count), uintptr(unsafe.Pointer(&raw[0])))
	if r == 0 {
		return nil, fmt.Errorf("GetPhysicalMonitorsFromHMONITOR: %w", err)
	}

	out := make([]PhysicalMonitor, len(raw))
	for i, pm := range raw {
		out[i] = PhysicalMonitor{
			handle:      pm.Handle,
			Description: windows.UTF16ToString(pm.Description[:]),
		}
	}
	return out, nil
}

// DestroyPhysicalMonitors releases handles obtained from PhysicalMonitors.
func DestroyPhysicalMonitors(monitors []PhysicalMonitor) {
	if len(monitors) == 0 {
		return
	}
	raw := make([]physicalMonitor, len(monitors))
	for i, pm := range monitors {
		raw[i].Handle = pm.handle
	}
	procDestroyPhysicalMonitors.Call(uintptr(len(raw)), uintptr(unsafe.Pointer(&raw[0])))
}

func (p PhysicalMonitor) Brightness() (lo, current, hi uint32, err error) {
	r, _, e := procGetMonitorBrightness.Call(
		uintptr(p.handle),
		uintptr(unsafe.Pointer(&lo)),
		uintptr(unsafe.Pointer(&current)),
		uintptr(unsafe.Pointer(&hi)),
	)
	if r == 0 {
		return 0, 0, 0, fmt.Errorf("GetMonitorBrightness: %w", e)
	}
	return lo, current, hi, nil
}

func (p PhysicalMonitor) SetBrightness(value uint32) error {
	r, _, e := procSetMonitorBrightness.Call(uintptr(p.handle), uintptr(value))
	if r == 0 {
		return fmt.Errorf("SetMonitorBrightness: %w", e)
	}
	return nil
}

// VCP reads a VCP feature and returns its current and maximum value.
func (p PhysicalMonitor) VCP(code byte) (current, maximum uint32, err error) {
	var codeType uint32
	r, _, e := procGetVCPFeatureAndVCPFeatureReply.Call(
		uintptr(p.handle),
		uintptr(code),
		uintptr(unsafe.Pointer(&codeType)),
		uintptr(unsafe.Pointer(&current)),
		uintptr(unsafe.Pointer(&maximum)),
	)
	if r == 0 {
		return 0, 0, fmt.Errorf("GetVCPFeatureAndVCPFeatureReply(0x%02X): %w", code, e)
	}
	return current, maximum, nil
}

func (p PhysicalMonitor) SetVCP(code byte, value uint32) error {
	r, _, e := procSetVCPFeature.Call(uintptr(p.handle), uintptr(code), uintptr(value))
	if r == 0 {
		return fmt.Errorf("SetVCPFeature(0x%02X): %w", code, e)
	}
	return nil
}

// Capabilities returns the MCCS capability string, cut at the first NUL.
func (p PhysicalMonitor) Capabilities() (string, error) {
	var length uint32
	r, _, e := procGetCapabilitiesStringLength.Call(uintptr(p.handle), uintptr(unsafe.Pointer(&length)))
	if r == 0 {
		return "", fmt.Errorf("GetCapabilitiesStringLength: %w", e)
	}
	if length == 0 {
		return "", errors.New("empty capabilities string")
	}

	buf := make([]byte, length)
	r, _, e = procCapabilitiesRequestAndCapabilitiesReply.Call(uintptr(p.handle), uintptr(unsafe.Pointer(&buf[0])), uintptr(length))
	if r == 0 {
		return "", fmt.Errorf("CapabilitiesRequestAndCapabilitiesReply: %w", e)
	}
	return cutNUL(buf), nil
}

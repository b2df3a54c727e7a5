//go:build windows

package win32

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// MONITORINFOEXW; win.MONITORINFO is its prefix.
type monitorInfoEx struct {
	win.MONITORINFO
	Device [32]uint16
}

// Monitor is one HMONITOR reported by EnumDisplayMonitors.
type Monitor struct {
	Handle  win.HMONITOR
	Device  string
	Bounds  win.RECT
	Primary bool
}

var (
	enumMu       sync.Mutex
	enumFound    []Monitor
	enumCallback uintptr
	enumOnce     sync.Once
)

// syscall.NewCallback slots are never freed, so one callback is shared by all
// enumerations under enumMu.
func monitorEnumProc(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, lparam uintptr) uintptr {
	var info monitorInfoEx
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(hMonitor, &info.MONITORINFO) {
		return 1
	}
	enumFound = append(enumFound, Monitor{
		Handle:  hMonitor,
		Device:  windows.UTF16ToString(info.Device[:]),
		Bounds:  info.RcMonitor,
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	})
	return 1
}

// Monitors lists every display monitor with its GDI device name.
func Monitors() ([]Monitor, error) {
	enumOnce.Do(func() {
		enumCallback = syscall.NewCallback(monitorEnumProc)
	})

	enumMu.Lock()
	defer enumMu.Unlock()

	enumFound = nil
	r, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, 0)
	if r == 0 {
		return nil, err
	}
	found := enumFound
	enumFound = nil
	return found, nil
}

// FindMonitor returns the HMONITOR whose device name equals device.
func FindMonitor(device string) (win.HMONITOR, bool) {
	monitors, err := Monitors()
	if err != nil {
		return 0, false
	}
	for _, m := range monitors {
		if m.Device == device {
			return m.Handle, true
		}
	}
	return 0, false
}

// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 is (HANDLE)(-4)
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

var dpiOnce sync.Once

// EnablePerMonitorDPI opts the process into per-monitor DPI awareness once.
// Without it GetDpiForMonitor reports 96 for every monitor.
func EnablePerMonitorDPI() error {
	var err error
	dpiOnce.Do(func() {
		if e := procSetProcessDpiAwarenessContext.Find(); e != nil {
			err = e
			return
		}
		if r, _, e := procSetProcessDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2); r == 0 {
			err = e
		}
	})
	return err
}

// EffectiveDPI returns MDT_EFFECTIVE_DPI for the monitor.
func EffectiveDPI(h win.HMONITOR) (uint32, error) {
	if err := procGetDpiForMonitor.Find(); err != nil {
		return 0, err
	}
	var dx, dy uint32
	r, _, _ := procGetDpiForMonitor.Call(uintptr(h), 0, uintptr(unsafe.Pointer(&dx)), uintptr(unsafe.Pointer(&dy)))
	if r != 0 {
		return 0, fmt.Errorf("GetDpiForMonitor: HRESULT 0x%08X", uint32(r))
	}
	if dx == 0 {
		return 0, errors.New("GetDpiForMonitor returned 0")
	}
	return dx, nil
}

package ddc

import (
	"errors"

	"windisplay/internal/win32"
)

// SystemOpener opens physical monitors through dxva2.
type SystemOpener struct{}

func (SystemOpener) Open(device string) (PhysicalMonitor, func(), error) {
	hmon, ok := win32.FindMonitor(device)
	if !ok {
		return nil, nil, ErrNoMonitorHandle
	}

	monitors, err := win32.PhysicalMonitors(hmon)
	if errors.Is(err, win32.ErrNoPhysicalMonitor) {
		return nil, nil, ErrNoPhysicalMonitor
	}
	if err != nil {
		return nil, nil, err
	}

	return monitors[0], func() { win32.DestroyPhysicalMonitors(monitors) }, nil
}

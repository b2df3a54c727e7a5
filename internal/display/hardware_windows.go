package display

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"windisplay/internal/ddc"
	"windisplay/internal/win32"
	"windisplay/internal/wmi"
)

func newHardware(opts Options) (Controller, error) {
	if err := win32.EnablePerMonitorDPI(); err != nil {
		logrus.WithError(err).Debugln("per-monitor DPI awareness unavailable")
	}

	runner := wmi.NewRunner(opts.ScriptTimeout)
	paths := systemDisplayConfig{}
	return &Hardware{
		Devices:        systemDevices{},
		Modes:          systemDevices{},
		Scale:          &ScaleController{Config: paths, Store: registryDPIStore{}},
		HDR:            &HDRController{Config: paths, Color: paths},
		DDC:            ddc.NewClient(ddc.SystemOpener{}, ddc.WMIBrightness{Runner: runner}),
		Edid:           WMIEdidSource{Runner: runner},
		EffectiveScale: effectiveScale,
	}, nil
}

// systemDevices implements DeviceAPI and ModeSetter over GDI.
type systemDevices struct{}

func (systemDevices) Device(parent string, index uint32) (Device, bool) {
	d, ok := win32.DisplayDevice(parent, index)
	return Device{Name: d.Name, String: d.String, ID: d.ID, StateFlags: d.StateFlags}, ok
}

func fromWin32Mode(m win32.Mode, ok bool) (Mode, bool) {
	return Mode{
		Resolution: Resolution{
			Width:        m.Width,
			Height:       m.Height,
			BitsPerPixel: m.BitsPerPixel,
			RefreshRate:  m.Frequency,
		},
		X:           m.X,
		Y:           m.Y,
		Orientation: m.Orientation,
	}, ok
}

func (systemDevices) CurrentMode(device string) (Mode, bool) {
	return fromWin32Mode(win32.CurrentMode(device))
}

func (systemDevices) RegistryMode(device string) (Mode, bool) {
	return fromWin32Mode(win32.RegistryMode(device))
}

func (systemDevices) ModeAt(device string, index uint32) (Mode, bool) {
	return fromWin32Mode(win32.ModeAt(device, index))
}

func (systemDevices) SetMode(device string, r Resolution) error {
	return win32.SetMode(device, win32.Mode{
		Width:        r.Width,
		Height:       r.Height,
		BitsPerPixel: r.BitsPerPixel,
		Frequency:    r.RefreshRate,
	})
}

func (systemDevices) SetOrientation(device string, code, width, height uint32) error {
	return win32.SetOrientation(device, code, width, height)
}

// systemDisplayConfig implements DisplayConfig and AdvancedColor.
type systemDisplayConfig struct{}

func luid(a AdapterID) windows.LUID {
	return windows.LUID{LowPart: a.Low, HighPart: a.High}
}

func (systemDisplayConfig) Sources() ([]SourceRef, error) {
	paths, err := win32.ActivePaths()
	if err != nil {
		return nil, err
	}
	out := make([]SourceRef, 0, len(paths))
	for _, p := range paths {
		out = append(out, SourceRef{
			Adapter:    AdapterID{Low: p.Adapter.LowPart, High: p.Adapter.HighPart},
			SourceID:   p.SourceID,
			TargetID:   p.TargetID,
			GDIName:    p.GDIName,
			DevicePath: p.DevicePath,
		})
	}
	return out, nil
}

func (systemDisplayConfig) DPI(src SourceRef) (DPIRange, error) {
	lo, cur, hi, err := win32.DPIScale(luid(src.Adapter), src.SourceID)
	return DPIRange{MinRel: lo, CurRel: cur, MaxRel: hi}, err
}

func (systemDisplayConfig) SetDPI(src SourceRef, rel int32) error {
	return win32.SetDPIScale(luid(src.Adapter), src.SourceID, rel)
}

func (systemDisplayConfig) AdvancedColor(src SourceRef) (bool, bool, error) {
	return win32.AdvancedColor(luid(src.Adapter), src.TargetID)
}

func (systemDisplayConfig) SetAdvancedColor(src SourceRef, enable bool) error {
	return win32.SetAdvancedColor(luid(src.Adapter), src.TargetID, enable)
}

func effectiveScale(name string) (float64, error) {
	h, ok := win32.FindMonitor(name)
	if !ok {
		return 0, ddc.ErrNoMonitorHandle
	}
	dpi, err := win32.EffectiveDPI(h)
	if err != nil {
		return 0, err
	}
	return float64(dpi) / 96, nil
}

package display

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"windisplay/internal/fallback"
)

// DISPLAY_DEVICE state flags.
const (
	stateAttachedToDesktop uint32 = 0x1
	statePrimaryDevice     uint32 = 0x4
	stateMirroringDriver   uint32 = 0x8
)

// Device is one EnumDisplayDevices entry.
type Device struct {
	Name       string
	String     string
	ID         string
	StateFlags uint32
}

// Mode is a DEVMODE reduced to what the enumerator reads.
type Mode struct {
	Resolution
	X           int32
	Y           int32
	Orientation uint32 // DMDO_* code
}

// DeviceAPI is the GDI device and mode enumeration surface. Every method
// reports ok=false once its index runs past the end or the call fails.
type DeviceAPI interface {
	Device(parent string, index uint32) (Device, bool)
	CurrentMode(device string) (Mode, bool)
	RegistryMode(device string) (Mode, bool)
	ModeAt(device string, index uint32) (Mode, bool)
}

var orientations = map[uint32]uint32{0: 0, 1: 90, 2: 180, 3: 270}

// orientationDegrees maps a DMDO code to degrees; unknown codes are 0.
func orientationDegrees(code uint32) uint32 {
	return orientations[code]
}

// orientationCode maps degrees back to a DMDO code.
func orientationCode(deg uint32) (uint32, bool) {
	for code, d := range orientations {
		if d == deg {
			return code, true
		}
	}
	return 0, false
}

// desktopDevice is an attached, non-mirroring device whose current mode
// could be read.
type desktopDevice struct {
	Device
	current Mode
}

// desktopDevices applies the filter shared by ListDisplays and deviceNames,
// so an index into either refers to the same display.
func desktopDevices(api DeviceAPI) []desktopDevice {
	var out []desktopDevice
	seen := mapset.NewThreadUnsafeSet[string]()

	for i := uint32(0); ; i++ {
		dev, ok := api.Device("", i)
		if !ok {
			break
		}

		log := logrus.WithField("display", dev.Name)
		if dev.StateFlags&stateAttachedToDesktop == 0 || dev.StateFlags&stateMirroringDriver != 0 {
			log.WithField("flags", dev.StateFlags).Debugln("skipping detached or mirroring device")
			continue
		}
		if dev.Name == "" || !seen.Add(dev.Name) {
			continue
		}

		cur, ok := api.CurrentMode(dev.Name)
		if !ok {
			log.Warnln("could not read current mode, skipping display")
			continue
		}
		out = append(out, desktopDevice{Device: dev, current: cur})
	}
	return out
}

// ListDisplays walks the desktop-attached, non-mirroring display devices.
// Identity, scale, HDR and DDC fields are left for the caller to fill in.
func ListDisplays(api DeviceAPI) []Display {
	var displays []Display
	for _, dev := range desktopDevices(api) {
		cur := dev.current
		d := Display{
			DeviceName:   dev.Name,
			FriendlyName: dev.String,
			DeviceID:     dev.ID,
			Primary:      dev.StateFlags&statePrimaryDevice != 0,
			Position:     Position{X: cur.X, Y: cur.Y},
			Orientation:  orientationDegrees(cur.Orientation),
			Current:      cur.Resolution,
		}

		// The adapter entry names the GPU; its first child is the monitor.
		if mon, ok := api.Device(dev.Name, 0); ok {
			if mon.String != "" {
				d.FriendlyName = mon.String
			}
			if mon.ID != "" {
				d.DeviceID = mon.ID
			}
		}

		d.Modes = advertisedModes(api, dev.Name, cur.Resolution)
		d.Native = nativeMode(api, dev.Name, d.Modes, cur.Resolution)
		displays = append(displays, d)
	}

	return displays
}

// advertisedModes returns the deduplicated mode list, always including
// current.
func advertisedModes(api DeviceAPI, device string, current Resolution) []Resolution {
	var modes []Resolution
	seen := mapset.NewThreadUnsafeSet[Resolution]()

	for i := uint32(0); ; i++ {
		m, ok := api.ModeAt(device, i)
		if !ok {
			break
		}
		if seen.Add(m.Resolution) {
			modes = append(modes, m.Resolution)
		}
	}
	if seen.Add(current) {
		modes = append(modes, current)
	}
	return modes
}

// nativeMode prefers the registry-stored mode size at its highest advertised
// refresh, then the largest advertised area, then the current mode.
func nativeMode(api DeviceAPI, device string, modes []Resolution, current Resolution) Resolution {
	native, step, _ := fallback.New[Resolution]().
		Then("registry-preferred", func() (Resolution, fallback.Outcome, error) {
			pref, ok := api.RegistryMode(device)
			if !ok || pref.Width == 0 || pref.Height == 0 {
				return Resolution{}, fallback.NotApplicable, nil
			}
			return preferredMode(modes, pref.Width, pref.Height, current), fallback.Applied, nil
		}).
		Then("largest-area", func() (Resolution, fallback.Outcome, error) {
			if len(modes) == 0 {
				return Resolution{}, fallback.NotApplicable, nil
			}
			return largestMode(modes), fallback.Applied, nil
		}).
		Then("current", fallback.Const(current)).
		Run()

	logrus.WithFields(logrus.Fields{"display": device, "source": step}).Debugf("native mode %s", native)
	return native
}

// preferredMode and largestMode keep the last of equal candidates; drivers
// list bit depths in ascending order, so that is the deepest one.
func preferredMode(modes []Resolution, width, height uint32, current Resolution) Resolution {
	best := Resolution{Width: width, Height: height, BitsPerPixel: current.BitsPerPixel, RefreshRate: current.RefreshRate}
	found := false
	for _, m := range modes {
		if m.Width != width || m.Height != height {
			continue
		}
		if !found || m.RefreshRate >= best.RefreshRate {
			best, found = m, true
		}
	}
	return best
}

func largestMode(modes []Resolution) Resolution {
	best := modes[0]
	for _, m := range modes[1:] {
		if m.area() >= best.area() {
			best = m
		}
	}
	return best
}

// bestMatch picks the advertised mode for a resolution request: exact
// refresh when given, otherwise the highest refresh at that size. Equal
// refresh rates resolve to the deepest bit depth.
func bestMatch(modes []Resolution, width, height uint32, refresh *uint32) (Resolution, bool) {
	var best Resolution
	found := false
	for _, m := range modes {
		if m.Width != width || m.Height != height {
			continue
		}
		if refresh != nil && m.RefreshRate != *refresh {
			continue
		}
		if !found || m.RefreshRate > best.RefreshRate ||
			(m.RefreshRate == best.RefreshRate && m.BitsPerPixel >= best.BitsPerPixel) {
			best, found = m, true
		}
	}
	return best, found
}

// deviceNames lists the names ListDisplays would visit, in the same order,
// without reading mode lists or monitor children.
func deviceNames(api DeviceAPI) []string {
	devices := desktopDevices(api)
	names := make([]string, 0, len(devices))
	for _, dev := range devices {
		names = append(names, dev.Name)
	}
	return names
}

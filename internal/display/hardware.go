package display

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"windisplay/internal/ddc"
	"windisplay/internal/fallback"
)

// ModeSetter applies display settings through ChangeDisplaySettingsEx.
type ModeSetter interface {
	SetMode(device string, mode Resolution) error
	SetOrientation(device string, code, width, height uint32) error
}

// Hardware composes the GDI, DisplayConfig and DDC/CI controllers into a
// Controller. The Windows constructor wires the system implementations.
type Hardware struct {
	Devices DeviceAPI
	Modes   ModeSetter
	Scale   *ScaleController
	HDR     *HDRController
	DDC     ddc.DDCClient
	Edid    EdidSource
	// EffectiveScale reports the scale from the monitor's effective DPI. It
	// is used when the DPI packet is unavailable and may be nil.
	EffectiveScale func(name string) (float64, error)
}

var _ Controller = (*Hardware)(nil)

func (h *Hardware) List(ctx context.Context) ([]Display, error) {
	displays := ListDisplays(h.Devices)
	if h.Edid != nil {
		correlateDisplays(displays, h.Edid.Entries(ctx))
	}

	hdr := h.HDR.Statuses(displays)
	for i := range displays {
		d := &displays[i]
		log := logrus.WithField("display", d.DeviceName)

		d.HDR = hdr[i]
		d.Scale = h.currentScale(d.DeviceName)
		if opts, err := h.Scale.Options(d.DeviceName); err == nil {
			d.ScaleOptions = opts
		} else {
			log.WithError(err).Debugln("scale options unavailable")
		}
		if ok, err := h.DDC.SupportsInputSwitch(d.DeviceName); err == nil {
			d.SupportsInputSwitch = &ok
		} else {
			log.WithError(err).Debugln("input switch probe failed")
		}
		d.Enabled = h.DDC.Power(d.DeviceName).Enabled()

		log.WithFields(logrus.Fields{
			"friendly":   d.FriendlyName,
			"primary":    d.Primary,
			"current":    d.Current.String(),
			"scale":      d.Scale,
			"connection": d.Connection,
			"hdr":        d.HDR.String(),
		}).Debugln("display assembled")
	}
	return displays, nil
}

// currentScale reads the DPI packet, then the effective DPI clamped to
// [0.5, 4], and reports 1.0 when neither is known.
func (h *Hardware) currentScale(name string) float64 {
	chain := fallback.New[float64]().
		Then("dpi-packet", fallback.Value(func() (float64, error) { return h.Scale.Current(name) }))
	if h.EffectiveScale != nil {
		chain.Then("effective-dpi", fallback.Value(func() (float64, error) {
			s, err := h.EffectiveScale(name)
			return min(max(s, 0.5), 4), err
		}))
	}
	scale, _, _ := chain.Then("default", fallback.Const(1.0)).Run()
	return scale
}

func (h *Hardware) Names() ([]string, error) {
	return deviceNames(h.Devices), nil
}

// index returns the enumeration index of name or ErrNotFound.
func (h *Hardware) index(name string) (int, error) {
	idx := slices.Index(deviceNames(h.Devices), name)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return idx, nil
}

func (h *Hardware) find(name string) (Display, error) {
	for _, d := range ListDisplays(h.Devices) {
		if d.DeviceName == name {
			return d, nil
		}
	}
	return Display{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (h *Hardware) SetResolution(name string, width, height uint32, refresh *uint32) error {
	d, err := h.find(name)
	if err != nil {
		return err
	}
	mode, ok := bestMatch(d.Modes, width, height, refresh)
	if !ok {
		return fmt.Errorf("%w: requested resolution not supported", ErrRejected)
	}
	if err := h.Modes.SetMode(name, mode); err != nil {
		return fmt.Errorf("set resolution of %s: %w", name, err)
	}
	return nil
}

func (h *Hardware) SetOrientation(name string, degrees uint32) error {
	code, err := normalizeDegrees(degrees)
	if err != nil {
		return err
	}
	d, err := h.find(name)
	if err != nil {
		return err
	}

	w, ht := d.Current.Width, d.Current.Height
	if isPortrait(d.Orientation) != isPortrait(degrees%360) {
		w, ht = ht, w
	}
	if err := h.Modes.SetOrientation(name, code, w, ht); err != nil {
		return fmt.Errorf("set orientation of %s: %w", name, err)
	}
	return nil
}

func (h *Hardware) Brightness(ctx context.Context, name string) (ddc.BrightnessRange, error) {
	if _, err := h.index(name); err != nil {
		return ddc.BrightnessRange{}, err
	}
	return h.DDC.Brightness(ctx, name), nil
}

func (h *Hardware) SetBrightness(ctx context.Context, name string, percent uint32) error {
	if _, err := h.index(name); err != nil {
		return err
	}
	return h.DDC.SetBrightness(ctx, name, percent)
}

func (h *Hardware) ScaleOptions(name string) ([]ScaleOption, error) {
	if _, err := h.index(name); err != nil {
		return nil, err
	}
	return h.Scale.Options(name)
}

func (h *Hardware) SetScale(name string, percent uint32) error {
	if _, err := h.index(name); err != nil {
		return err
	}
	return h.Scale.SetScale(name, percent)
}

func (h *Hardware) EnableHDR(name string, enable bool) error {
	// The index must follow ListDisplays order for the path fallback.
	idx := -1
	for i, d := range ListDisplays(h.Devices) {
		if d.DeviceName == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	status, err := h.HDR.Set(name, idx, enable)
	if err != nil {
		return err
	}
	logrus.WithField("display", name).Debugf("HDR now %s", status)
	return nil
}

func (h *Hardware) InputSource(name string) (string, error) {
	if _, err := h.index(name); err != nil {
		return "", err
	}
	return h.DDC.InputSource(name)
}

func (h *Hardware) SetInputSource(name, input string) error {
	if _, err := h.index(name); err != nil {
		return err
	}
	return h.DDC.SetInputSource(name, input)
}

func (h *Hardware) Capabilities(name string) (string, error) {
	if _, err := h.index(name); err != nil {
		return "", err
	}
	return h.DDC.Capabilities(name)
}

func (h *Hardware) Power(name string) (ddc.PowerStatus, error) {
	if _, err := h.index(name); err != nil {
		return ddc.PowerNoDDC, err
	}
	return h.DDC.Power(name), nil
}

func (h *Hardware) SetPower(name string, on bool) error {
	if _, err := h.index(name); err != nil {
		return err
	}
	return h.DDC.SetPower(name, on)
}

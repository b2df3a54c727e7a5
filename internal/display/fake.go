package display

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"windisplay/internal/ddc"
)

var fakeModes = []Resolution{
	{Width: 1920, Height: 1080, BitsPerPixel: 32, RefreshRate: 60},
	{Width: 2560, Height: 1440, BitsPerPixel: 32, RefreshRate: 60},
	{Width: 3840, Height: 2160, BitsPerPixel: 32, RefreshRate: 60},
}

type fakeDisplay struct {
	name        string
	friendly    string
	primary     bool
	position    Position
	orientation uint32
	current     Resolution
	modes       []Resolution
	native      Resolution
	dpi         DPIRange
	brightness  uint32
	input       string
	power       bool
	hdr         HDRStatus
}

// Fake is a deterministic four-monitor backend holding its state in memory.
type Fake struct {
	mu       sync.Mutex
	displays []*fakeDisplay
	scale    *ScaleController
}

var _ Controller = (*Fake)(nil)

func NewFake() *Fake {
	f := &Fake{}
	for i := range 4 {
		d := &fakeDisplay{
			name:       fmt.Sprintf(`\\.\DISPLAY%d`, i+1),
			friendly:   fmt.Sprintf("Fake Monitor %d", i+1),
			primary:    i == 0,
			position:   Position{X: int32(i) * 1920},
			current:    fakeModes[0],
			modes:      slices.Clone(fakeModes),
			native:     fakeModes[2],
			brightness: 50,
			input:      "hdmi1",
			power:      true,
			hdr:        HDRUnsupported,
			// 100-200 %, recommended 100 %.
			dpi: DPIRange{MinRel: 0, CurRel: 0, MaxRel: 4},
		}
		if i == 0 {
			// 100-150 %, recommended and current 125 %.
			d.dpi = DPIRange{MinRel: -1, CurRel: 0, MaxRel: 1}
			d.hdr = HDROff
		}
		f.displays = append(f.displays, d)
	}
	f.scale = &ScaleController{Config: fakeDisplayConfig{f}}
	return f
}

// lookup must be called with f.mu held.
func (f *Fake) lookup(name string) (*fakeDisplay, error) {
	for _, d := range f.displays {
		if d.name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// with runs fn on the named display under the lock.
func (f *Fake) with(name string, fn func(*fakeDisplay) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, err := f.lookup(name)
	if err != nil {
		return err
	}
	return fn(d)
}

func (f *Fake) List(context.Context) ([]Display, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Display, 0, len(f.displays))
	for _, d := range f.displays {
		supportsInput := true
		out = append(out, Display{
			DeviceName:          d.name,
			FriendlyName:        d.friendly,
			Position:            d.position,
			Orientation:         d.orientation,
			Current:             d.current,
			Modes:               slices.Clone(d.modes),
			Native:              d.native,
			Scale:               float64(scaleLadder[-d.dpi.MinRel+d.dpi.CurRel]) / 100,
			ScaleOptions:        scaleOptions(d.dpi),
			HDR:                 d.hdr,
			Enabled:             d.power,
			Primary:             d.primary,
			SupportsInputSwitch: &supportsInput,
		})
	}
	return out, nil
}

func (f *Fake) Names() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.displays))
	for _, d := range f.displays {
		names = append(names, d.name)
	}
	return names, nil
}

func (f *Fake) SetResolution(name string, width, height uint32, refresh *uint32) error {
	return f.with(name, func(d *fakeDisplay) error {
		mode, ok := bestMatch(d.modes, width, height, refresh)
		if !ok {
			return fmt.Errorf("%w: requested resolution not supported", ErrRejected)
		}
		d.current = mode
		return nil
	})
}

func swapDims(r Resolution) Resolution {
	r.Width, r.Height = r.Height, r.Width
	return r
}

func (f *Fake) SetOrientation(name string, degrees uint32) error {
	if _, err := normalizeDegrees(degrees); err != nil {
		return err
	}
	deg := degrees % 360

	return f.with(name, func(d *fakeDisplay) error {
		if isPortrait(d.orientation) != isPortrait(deg) {
			d.current = swapDims(d.current)
			d.native = swapDims(d.native)
			for i := range d.modes {
				d.modes[i] = swapDims(d.modes[i])
			}
		}
		d.orientation = deg
		return nil
	})
}

func (f *Fake) Brightness(_ context.Context, name string) (ddc.BrightnessRange, error) {
	var r ddc.BrightnessRange
	err := f.with(name, func(d *fakeDisplay) error {
		r = ddc.BrightnessRange{Min: 0, Current: d.brightness, Max: 100}
		return nil
	})
	return r, err
}

func (f *Fake) SetBrightness(_ context.Context, name string, percent uint32) error {
	return f.with(name, func(d *fakeDisplay) error {
		d.brightness = min(percent, 100)
		return nil
	})
}

func (f *Fake) exists(name string) error {
	return f.with(name, func(*fakeDisplay) error { return nil })
}

func (f *Fake) ScaleOptions(name string) ([]ScaleOption, error) {
	if err := f.exists(name); err != nil {
		return nil, err
	}
	return f.scale.Options(name)
}

func (f *Fake) SetScale(name string, percent uint32) error {
	if err := f.exists(name); err != nil {
		return err
	}
	return f.scale.SetScale(name, percent)
}

func (f *Fake) EnableHDR(name string, enable bool) error {
	return f.with(name, func(d *fakeDisplay) error {
		if d.hdr == HDRUnsupported {
			return fmt.Errorf("%w: HDR unsupported on %s", ErrUnsupported, name)
		}
		d.hdr = HDROff
		if enable {
			d.hdr = HDROn
		}
		return nil
	})
}

func (f *Fake) InputSource(name string) (string, error) {
	var input string
	err := f.with(name, func(d *fakeDisplay) error {
		input = d.input
		return nil
	})
	return input, err
}

func (f *Fake) SetInputSource(name, input string) error {
	code, err := ddc.ParseInput(input)
	if err != nil {
		return err
	}
	return f.with(name, func(d *fakeDisplay) error {
		d.input = ddc.InputLabel(code)
		return nil
	})
}

func (f *Fake) Capabilities(name string) (string, error) {
	var caps string
	err := f.with(name, func(d *fakeDisplay) error {
		caps = fmt.Sprintf("(prot(monitor)type(LCD)model(%s)cmds(01 02 03 0C E3 F3)vcp(10 12 60(0F 11 12) D6(01 05))mccs_ver(2.2))", d.friendly)
		return nil
	})
	return caps, err
}

func (f *Fake) Power(name string) (ddc.PowerStatus, error) {
	status := ddc.PowerOff
	err := f.with(name, func(d *fakeDisplay) error {
		if d.power {
			status = ddc.PowerOn
		}
		return nil
	})
	return status, err
}

func (f *Fake) SetPower(name string, on bool) error {
	return f.with(name, func(d *fakeDisplay) error {
		d.power = on
		return nil
	})
}

// fakeDisplayConfig serves the relative DPI protocol from Fake state.
type fakeDisplayConfig struct {
	f *Fake
}

func (c fakeDisplayConfig) Sources() ([]SourceRef, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()

	out := make([]SourceRef, 0, len(c.f.displays))
	for i, d := range c.f.displays {
		out = append(out, SourceRef{SourceID: uint32(i), TargetID: uint32(i), GDIName: d.name})
	}
	return out, nil
}

func (c fakeDisplayConfig) DPI(src SourceRef) (DPIRange, error) {
	var r DPIRange
	err := c.f.with(src.GDIName, func(d *fakeDisplay) error {
		r = d.dpi
		return nil
	})
	return r, err
}

func (c fakeDisplayConfig) SetDPI(src SourceRef, rel int32) error {
	return c.f.with(src.GDIName, func(d *fakeDisplay) error {
		if rel < d.dpi.MinRel || rel > d.dpi.MaxRel {
			return fmt.Errorf("%w: relative DPI %d outside [%d, %d]", ErrRejected, rel, d.dpi.MinRel, d.dpi.MaxRel)
		}
		d.dpi.CurRel = rel
		return nil
	})
}

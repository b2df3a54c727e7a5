package ddc

import (
	"context"
	"errors"
	"testing"
)

type fakeMonitor struct {
	lo, cur, hi   uint32
	brightnessErr error

	vcp       map[byte]uint32
	vcpErr    map[byte]error
	setErr    error
	ignoreSet bool
	writes    []uint32

	caps    string
	capsErr error
}

func (m *fakeMonitor) Brightness() (uint32, uint32, uint32, error) {
	if m.brightnessErr != nil {
		return 0, 0, 0, m.brightnessErr
	}
	return m.lo, m.cur, m.hi, nil
}

func (m *fakeMonitor) SetBrightness(v uint32) error {
	if m.brightnessErr != nil {
		return m.brightnessErr
	}
	m.cur = v
	m.writes = append(m.writes, v)
	return nil
}

func (m *fakeMonitor) VCP(code byte) (uint32, uint32, error) {
	if err := m.vcpErr[code]; err != nil {
		return 0, 0, err
	}
	v, ok := m.vcp[code]
	if !ok {
		return 0, 0, errors.New("unsupported VCP code")
	}
	return v, 0xFF, nil
}

func (m *fakeMonitor) SetVCP(code byte, v uint32) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.writes = append(m.writes, v)
	if !m.ignoreSet {
		m.vcp[code] = v
	}
	return nil
}

func (m *fakeMonitor) Capabilities() (string, error) {
	return m.caps, m.capsErr
}

type fakeOpener struct {
	monitor  *fakeMonitor
	err      error
	opened   int
	released int
}

func (o *fakeOpener) Open(string) (PhysicalMonitor, func(), error) {
	if o.err != nil {
		return nil, nil, o.err
	}
	o.opened++
	return o.monitor, func() { o.released++ }, nil
}

type fakeFallback struct {
	cur    uint32
	err    error
	setErr error
	set    []uint32
}

func (f *fakeFallback) Brightness(context.Context) (uint32, error) {
	return f.cur, f.err
}

func (f *fakeFallback) SetBrightness(_ context.Context, pct uint32) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.set = append(f.set, pct)
	return nil
}

func newTestMonitor(t *testing.T) *fakeMonitor {
	t.Helper()
	return &fakeMonitor{
		lo:     0,
		cur:    70,
		hi:     100,
		vcp:    map[byte]uint32{VCPInputSource: 0x0F, VCPPowerMode: PowerModeOn},
		vcpErr: map[byte]error{},
	}
}

func TestBrightnessDDC(t *testing.T) {
	m := newTestMonitor(t)
	o := &fakeOpener{monitor: m}
	c := NewClient(o, &fakeFallback{cur: 10})

	got := c.Brightness(context.Background(), `\\.\DISPLAY1`)
	if got != (BrightnessRange{Min: 0, Current: 70, Max: 100}) {
		t.Errorf("Brightness() = %+v", got)
	}
	if o.opened != o.released {
		t.Errorf("opened %d handles, released %d", o.opened, o.released)
	}
}

func TestBrightnessFallsBackToWMI(t *testing.T) {
	c := NewClient(&fakeOpener{err: ErrNoPhysicalMonitor}, &fakeFallback{cur: 40})

	got := c.Brightness(context.Background(), `\\.\DISPLAY1`)
	want := BrightnessRange{Min: 0, Current: 40, Max: 100}
	if got != want {
		t.Errorf("Brightness() = %+v, want %+v", got, want)
	}
}

func TestBrightnessDefault(t *testing.T) {
	c := NewClient(&fakeOpener{err: ErrNoMonitorHandle}, &fakeFallback{err: errors.New("no wmi")})
	if got := c.Brightness(context.Background(), "x"); got != DefaultBrightness {
		t.Errorf("Brightness() = %+v, want default", got)
	}

	c = NewClient(&fakeOpener{err: ErrNoMonitorHandle}, nil)
	if got := c.Brightness(context.Background(), "x"); got != DefaultBrightness {
		t.Errorf("Brightness() without fallback = %+v, want default", got)
	}
}

func TestBrightnessInvariant(t *testing.T) {
	tests := []struct {
		name        string
		lo, cur, hi uint32
	}{
		{"in range", 10, 50, 90},
		{"current above max", 0, 150, 100},
		{"current below min", 20, 5, 80},
		{"inverted range", 100, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMonitor(t)
			m.lo, m.cur, m.hi = tt.lo, tt.cur, tt.hi
			got := NewClient(&fakeOpener{monitor: m}, nil).Brightness(context.Background(), "x")
			if !(got.Min <= got.Current && got.Current <= got.Max) {
				t.Errorf("Brightness() = %+v violates min <= current <= max", got)
			}
		})
	}
}

func TestScaleBrightness(t *testing.T) {
	tests := []struct {
		lo, hi, pct, want uint32
	}{
		{0, 100, 50, 50},
		{0, 100, 150, 100},
		{0, 255, 50, 128},
		{20, 80, 0, 20},
		{20, 80, 100, 80},
		{0, 3, 50, 2},
	}
	for _, tt := range tests {
		if got := scaleBrightness(tt.lo, tt.hi, tt.pct); got != tt.want {
			t.Errorf("scaleBrightness(%d, %d, %d) = %d, want %d", tt.lo, tt.hi, tt.pct, got, tt.want)
		}
	}
}

func TestSetBrightness(t *testing.T) {
	m := newTestMonitor(t)
	m.hi = 200
	fb := &fakeFallback{}
	c := NewClient(&fakeOpener{monitor: m}, fb)

	if err := c.SetBrightness(context.Background(), "x", 25); err != nil {
		t.Fatalf("SetBrightness() error = %v", err)
	}
	if m.cur != 50 {
		t.Errorf("DDC value = %d, want 50", m.cur)
	}
	if len(fb.set) != 0 {
		t.Errorf("fallback used although DDC/CI succeeded")
	}
}

func TestSetBrightnessFallback(t *testing.T) {
	fb := &fakeFallback{}
	c := NewClient(&fakeOpener{err: ErrNoPhysicalMonitor}, fb)

	if err := c.SetBrightness(context.Background(), "x", 140); err != nil {
		t.Fatalf("SetBrightness() error = %v", err)
	}
	if len(fb.set) != 1 || fb.set[0] != 100 {
		t.Errorf("fallback writes = %v, want [100]", fb.set)
	}

	fb.setErr = errors.New("no instance")
	if err := c.SetBrightness(context.Background(), "x", 10); err == nil {
		t.Error("expected error when both paths fail")
	}
}

func TestSetInputSource(t *testing.T) {
	m := newTestMonitor(t)
	o := &fakeOpener{monitor: m}
	c := NewClient(o, nil)

	if err := c.SetInputSource("x", "hdmi2"); err != nil {
		t.Fatalf("SetInputSource() error = %v", err)
	}
	if m.vcp[VCPInputSource] != 0x12 {
		t.Errorf("VCP 0x60 = 0x%02X, want 0x12", m.vcp[VCPInputSource])
	}
	if o.opened != o.released {
		t.Errorf("opened %d handles, released %d", o.opened, o.released)
	}
}

func TestSetInputSourceReadbackMismatch(t *testing.T) {
	m := newTestMonitor(t)
	m.ignoreSet = true
	o := &fakeOpener{monitor: m}
	c := NewClient(o, nil)

	err := c.SetInputSource("x", "0x11")
	if !errors.Is(err, ErrInputIgnored) {
		t.Fatalf("SetInputSource() error = %v, want ErrInputIgnored", err)
	}
	if o.opened != o.released {
		t.Errorf("handle leaked on error path: opened %d, released %d", o.opened, o.released)
	}
}

func TestSetInputSourceReadbackUnavailable(t *testing.T) {
	m := newTestMonitor(t)
	m.ignoreSet = true
	m.vcpErr[VCPInputSource] = errors.New("timeout")

	if err := NewClient(&fakeOpener{monitor: m}, nil).SetInputSource("x", "dp1"); err != nil {
		t.Errorf("SetInputSource() error = %v, want nil when read-back is unavailable", err)
	}
}

func TestSetInputSourceHighBitsIgnored(t *testing.T) {
	m := newTestMonitor(t)
	c := NewClient(&fakeOpener{monitor: m}, nil)
	if err := c.SetInputSource("x", "11"); err != nil {
		t.Fatal(err)
	}
	m.vcp[VCPInputSource] = 0x0311
	m.ignoreSet = true
	if err := c.SetInputSource("x", "hdmi1"); err != nil {
		t.Errorf("SetInputSource() error = %v, want high bits ignored", err)
	}
}

func TestSetInputSourceUnknownLabel(t *testing.T) {
	o := &fakeOpener{monitor: newTestMonitor(t)}
	err := NewClient(o, nil).SetInputSource("x", "toaster")
	if !errors.Is(err, ErrUnknownInput) {
		t.Fatalf("error = %v, want ErrUnknownInput", err)
	}
	if o.opened != 0 {
		t.Error("monitor opened for an invalid label")
	}
}

func TestInputSource(t *testing.T) {
	m := newTestMonitor(t)
	got, err := NewClient(&fakeOpener{monitor: m}, nil).InputSource("x")
	if err != nil || got != "dp1" {
		t.Errorf("InputSource() = %q, %v; want dp1", got, err)
	}

	_, err = NewClient(&fakeOpener{err: ErrNoMonitorHandle}, nil).InputSource("x")
	if !errors.Is(err, ErrNoMonitorHandle) {
		t.Errorf("error = %v, want ErrNoMonitorHandle", err)
	}
}

func TestPower(t *testing.T) {
	tests := []struct {
		name  string
		open  error
		setup func(*fakeMonitor)
		want  PowerStatus
	}{
		{"on", nil, func(*fakeMonitor) {}, PowerOn},
		{"standby", nil, func(m *fakeMonitor) { m.vcp[VCPPowerMode] = 0x04 }, PowerOff},
		{"read fails", nil, func(m *fakeMonitor) { m.vcpErr[VCPPowerMode] = errors.New("timeout") }, PowerOff},
		{"no hmonitor", ErrNoMonitorHandle, nil, PowerNoDDC},
		{"no physical monitor", ErrNoPhysicalMonitor, nil, PowerNoDDC},
		{"physical monitors unavailable", errors.New("GetPhysicalMonitorsFromHMONITOR failed"), nil, PowerOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMonitor(t)
			if tt.setup != nil {
				tt.setup(m)
			}
			got := NewClient(&fakeOpener{monitor: m, err: tt.open}, nil).Power("x")
			if got != tt.want {
				t.Errorf("Power() = %v, want %v", got, tt.want)
			}
		})
	}

	if !PowerNoDDC.Enabled() || !PowerOn.Enabled() || PowerOff.Enabled() {
		t.Error("Enabled() mapping is wrong")
	}
}

func TestSetPower(t *testing.T) {
	m := newTestMonitor(t)
	c := NewClient(&fakeOpener{monitor: m}, nil)

	if err := c.SetPower("x", false); err != nil {
		t.Fatal(err)
	}
	if m.vcp[VCPPowerMode] != PowerModeHardOff {
		t.Errorf("VCP 0xD6 = 0x%02X, want 0x05", m.vcp[VCPPowerMode])
	}
	if err := c.SetPower("x", true); err != nil {
		t.Fatal(err)
	}
	if m.vcp[VCPPowerMode] != PowerModeOn {
		t.Errorf("VCP 0xD6 = 0x%02X, want 0x01", m.vcp[VCPPowerMode])
	}
}

func TestSupportsInputSwitch(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeMonitor)
		want  bool
	}{
		{"vcp readable", func(*fakeMonitor) {}, true},
		{"caps lists 60", func(m *fakeMonitor) {
			delete(m.vcp, VCPInputSource)
			m.caps = "(prot(monitor)type(lcd)vcp(02 04 10 12 60(0F 11 12) D6))"
		}, true},
		{"caps without 60", func(m *fakeMonitor) {
			delete(m.vcp, VCPInputSource)
			m.caps = "(prot(monitor)vcp(02 04 10 12))"
		}, false},
		{"caps unavailable", func(m *fakeMonitor) {
			delete(m.vcp, VCPInputSource)
			m.capsErr = errors.New("no caps")
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMonitor(t)
			tt.setup(m)
			got, err := NewClient(&fakeOpener{monitor: m}, nil).SupportsInputSwitch("x")
			if err != nil {
				t.Fatalf("SupportsInputSwitch() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SupportsInputSwitch() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := NewClient(&fakeOpener{err: ErrNoPhysicalMonitor}, nil).SupportsInputSwitch("x"); err == nil {
		t.Error("expected error without a physical monitor")
	}
}

func TestCapabilities(t *testing.T) {
	m := newTestMonitor(t)
	m.caps = "(vcp(10))"
	got, err := NewClient(&fakeOpener{monitor: m}, nil).Capabilities("x")
	if err != nil || got != "(vcp(10))" {
		t.Errorf("Capabilities() = %q, %v", got, err)
	}
}

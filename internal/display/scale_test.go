package display

import (
	"errors"
	"reflect"
	"testing"
)

type recordingConfig struct {
	sources []SourceRef
	dpi     map[string]DPIRange
	calls   []string
	setRel  []int32
	dpiErr  error
}

func (c *recordingConfig) Sources() ([]SourceRef, error) {
	c.calls = append(c.calls, "Sources")
	return c.sources, nil
}

func (c *recordingConfig) DPI(src SourceRef) (DPIRange, error) {
	c.calls = append(c.calls, "DPI")
	if c.dpiErr != nil {
		return DPIRange{}, c.dpiErr
	}
	return c.dpi[src.GDIName], nil
}

func (c *recordingConfig) SetDPI(src SourceRef, rel int32) error {
	c.calls = append(c.calls, "SetDPI")
	c.setRel = append(c.setRel, rel)
	r := c.dpi[src.GDIName]
	r.CurRel = rel
	c.dpi[src.GDIName] = r
	return nil
}

type recordingStore struct {
	fragment string
	dpi      uint32
	err      error
}

func (s *recordingStore) PersistDPI(fragment string, dpi uint32) error {
	s.fragment, s.dpi = fragment, dpi
	return s.err
}

func newTestScale(t *testing.T) (*ScaleController, *recordingConfig, *recordingStore) {
	t.Helper()
	cfg := &recordingConfig{
		sources: []SourceRef{{
			GDIName:    `\\.\DISPLAY1`,
			DevicePath: `\\?\DISPLAY#DELA0FB#5&1a2b3c&0&UID4353#{e6f07b5f-ee97-4a90-b076-33f57bf4eaa7}`,
		}},
		// Window 100-150 %, recommended 125 %, currently 100 %.
		dpi: map[string]DPIRange{`\\.\DISPLAY1`: {MinRel: -1, CurRel: -1, MaxRel: 1}},
	}
	store := &recordingStore{}
	return &ScaleController{Config: cfg, Store: store}, cfg, store
}

func TestScaleWindow(t *testing.T) {
	tests := []struct {
		in          DPIRange
		rec, lo, hi int
	}{
		{DPIRange{MinRel: -1, MaxRel: 1}, 1, 0, 2},
		{DPIRange{MinRel: 0, MaxRel: 4}, 0, 0, 4},
		{DPIRange{MinRel: -3, MaxRel: 20}, 3, 0, 11},
		{DPIRange{MinRel: 2, MaxRel: -5}, -2, 0, 0},
	}
	for _, tt := range tests {
		rec, lo, hi := scaleWindow(tt.in)
		if rec != tt.rec || lo != tt.lo || hi != tt.hi {
			t.Errorf("scaleWindow(%+v) = %d,%d,%d want %d,%d,%d", tt.in, rec, lo, hi, tt.rec, tt.lo, tt.hi)
		}
	}
}

func TestScaleOptions(t *testing.T) {
	s, _, _ := newTestScale(t)

	got, err := s.Options(`\\.\DISPLAY1`)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	want := []ScaleOption{{Factor: 1.0}, {Factor: 1.25, Recommended: true}, {Factor: 1.5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Options() = %v, want %v", got, want)
	}
}

func TestSetScaleRoundTrip(t *testing.T) {
	s, cfg, store := newTestScale(t)
	name := `\\.\DISPLAY1`

	if err := s.SetScale(name, 125); err != nil {
		t.Fatalf("SetScale(125) error = %v", err)
	}
	if want := []int32{0}; !reflect.DeepEqual(cfg.setRel, want) {
		t.Errorf("relative steps = %v, want %v", cfg.setRel, want)
	}

	opts, err := s.Options(name)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	found := false
	for _, o := range opts {
		if o.Percent() == 125 {
			found = o.Recommended
		}
	}
	if !found {
		t.Errorf("125%% not reported as recommended in %v", opts)
	}
	if cur, _ := s.Current(name); cur != 1.25 {
		t.Errorf("Current() = %v, want 1.25", cur)
	}

	if store.fragment != "dela0fb" || store.dpi != 120 {
		t.Errorf("persisted %q=%d, want dela0fb=120", store.fragment, store.dpi)
	}
}

func TestSetScaleRejectedBeforeDeviceCall(t *testing.T) {
	s, cfg, _ := newTestScale(t)

	err := s.SetScale(`\\.\DISPLAY1`, 999)
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("SetScale(999) error = %v, want ErrRejected", err)
	}
	if len(cfg.calls) != 0 {
		t.Errorf("device calls = %v, want none", cfg.calls)
	}
}

func TestSetScaleOutsideWindow(t *testing.T) {
	s, cfg, _ := newTestScale(t)

	if err := s.SetScale(`\\.\DISPLAY1`, 200); !errors.Is(err, ErrRejected) {
		t.Fatalf("SetScale(200) error = %v, want ErrRejected", err)
	}
	if len(cfg.setRel) != 0 {
		t.Errorf("SetDPI called with %v", cfg.setRel)
	}
}

func TestSetScaleUnknownSource(t *testing.T) {
	s, _, _ := newTestScale(t)
	if err := s.SetScale(`\\.\DISPLAY9`, 100); !errors.Is(err, ErrUnsupported) {
		t.Errorf("SetScale() error = %v, want ErrUnsupported", err)
	}
}

func TestSetScalePersistFailureIgnored(t *testing.T) {
	s, _, store := newTestScale(t)
	store.err = errors.New("access denied")

	if err := s.SetScale(`\\.\DISPLAY1`, 100); err != nil {
		t.Errorf("SetScale() error = %v, want nil", err)
	}
}

func TestDPIKeyFragment(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{`\\?\DISPLAY#DELA0FB#5&1a2b3c&0&UID4353#{e6f07b5f-ee97-4a90-b076-33f57bf4eaa7}`, "dela0fb", true},
		{`\\?\DISPLAY#BOE0A1C#4&abc#{guid}`, "boe0a1c", true},
		{`\\?\DISPLAY#SAM0F00#{guid}`, "sam0f00", true},
		{`\\?\DISPLAY#DELA0FB#5&1a2b3c`, "", false},
		{`\\?\MONITOR#DELA0FB#{guid}`, "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := dpiKeyFragment(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("dpiKeyFragment(%q) = %q, %v want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

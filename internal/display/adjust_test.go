package display

import (
	"context"
	"errors"
	"testing"

	"windisplay/internal/ddc"
)

type flakyBrightness struct {
	*Fake
	failRead string
	writes   []string
}

func (f *flakyBrightness) Brightness(ctx context.Context, name string) (ddc.BrightnessRange, error) {
	if name == f.failRead {
		return ddc.BrightnessRange{}, errors.New("i2c timeout")
	}
	return f.Fake.Brightness(ctx, name)
}

func (f *flakyBrightness) SetBrightness(ctx context.Context, name string, pct uint32) error {
	f.writes = append(f.writes, name)
	return f.Fake.SetBrightness(ctx, name, pct)
}

func TestAdjustBrightnessAll(t *testing.T) {
	ctx := context.Background()
	f := NewFake()
	if err := f.SetBrightness(ctx, `\\.\DISPLAY2`, 98); err != nil {
		t.Fatal(err)
	}

	if err := AdjustBrightnessAll(ctx, f, 5); err != nil {
		t.Fatalf("AdjustBrightnessAll() error = %v", err)
	}
	want := map[string]uint32{`\\.\DISPLAY1`: 55, `\\.\DISPLAY2`: 100}
	for name, pct := range want {
		if r, _ := f.Brightness(ctx, name); r.Current != pct {
			t.Errorf("%s = %d, want %d", name, r.Current, pct)
		}
	}
}

func TestAdjustBrightnessAllSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	c := &flakyBrightness{Fake: NewFake()}
	for _, name := range []string{`\\.\DISPLAY1`, `\\.\DISPLAY2`, `\\.\DISPLAY3`, `\\.\DISPLAY4`} {
		_ = c.Fake.SetBrightness(ctx, name, 0)
	}

	if err := AdjustBrightnessAll(ctx, c, -5); err != nil {
		t.Fatalf("AdjustBrightnessAll() error = %v", err)
	}
	if len(c.writes) != 0 {
		t.Errorf("writes = %v, want none", c.writes)
	}
}

func TestAdjustBrightnessAllJoinsErrors(t *testing.T) {
	ctx := context.Background()
	c := &flakyBrightness{Fake: NewFake(), failRead: `\\.\DISPLAY3`}

	err := AdjustBrightnessAll(ctx, c, -10)
	if err == nil {
		t.Fatal("AdjustBrightnessAll() error = nil")
	}
	if len(c.writes) != 3 {
		t.Errorf("writes = %v, want the three readable displays", c.writes)
	}
}

type rangedBrightness struct {
	*Fake
	ranges map[string]ddc.BrightnessRange
	set    map[string]uint32
}

func (r *rangedBrightness) Brightness(_ context.Context, name string) (ddc.BrightnessRange, error) {
	return r.ranges[name], nil
}

func (r *rangedBrightness) SetBrightness(_ context.Context, name string, pct uint32) error {
	r.set[name] = pct
	return nil
}

func TestAdjustBrightnessAllClampsToReportedRange(t *testing.T) {
	c := &rangedBrightness{
		Fake: NewFake(),
		ranges: map[string]ddc.BrightnessRange{
			`\\.\DISPLAY1`: {Min: 20, Current: 25, Max: 80},
			`\\.\DISPLAY2`: {Min: 0, Current: 5, Max: 100},
			`\\.\DISPLAY3`: {Min: 20, Current: 20, Max: 80},
			`\\.\DISPLAY4`: {Min: 10, Current: 60, Max: 90},
		},
		set: map[string]uint32{},
	}

	if err := AdjustBrightnessAll(context.Background(), c, -10); err != nil {
		t.Fatalf("AdjustBrightnessAll() error = %v", err)
	}
	want := map[string]uint32{`\\.\DISPLAY1`: 20, `\\.\DISPLAY2`: 0, `\\.\DISPLAY4`: 50}
	if len(c.set) != len(want) {
		t.Errorf("writes = %v, want %v", c.set, want)
	}
	for name, pct := range want {
		if got := c.set[name]; got != pct {
			t.Errorf("%s = %d, want %d", name, got, pct)
		}
	}
}

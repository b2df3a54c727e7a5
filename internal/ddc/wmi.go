package ddc

import (
	"context"

	"windisplay/internal/wmi"
)

// WMIBrightness reads and writes the active WmiMonitorBrightness instance.
type WMIBrightness struct {
	Runner wmi.ScriptRunner
}

func (w WMIBrightness) Brightness(ctx context.Context) (uint32, error) {
	return wmi.Brightness(ctx, w.Runner)
}

func (w WMIBrightness) SetBrightness(ctx context.Context, percent uint32) error {
	return wmi.SetBrightness(ctx, w.Runner, percent)
}

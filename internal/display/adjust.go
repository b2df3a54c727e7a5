package display

import (
	"context"
	"errors"
	"fmt"
)

// AdjustBrightnessAll shifts every display's brightness by delta, clamped to
// the range the display reports. Displays are visited one at a time and only written
// when the value changes; per-display failures are joined.
func AdjustBrightnessAll(ctx context.Context, c Controller, delta int) error {
	names, err := c.Names()
	if err != nil {
		return fmt.Errorf("list displays: %w", err)
	}

	var errs []error
	for _, name := range names {
		r, err := c.Brightness(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		next := uint32(min(max(int(r.Current)+delta, int(r.Min)), int(r.Max)))
		if next == r.Current {
			continue
		}
		if err := c.SetBrightness(ctx, name, next); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

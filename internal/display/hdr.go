package display

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// AdvancedColor reads and writes the advanced-color state of a path target.
type AdvancedColor interface {
	AdvancedColor(src SourceRef) (supported, enabled bool, err error)
	SetAdvancedColor(src SourceRef, enable bool) error
}

// HDRController reports and toggles HDR for the targets behind a display.
type HDRController struct {
	Config DisplayConfig
	Color  AdvancedColor
}

func hdrStatus(supported, enabled bool) HDRStatus {
	switch {
	case !supported:
		return HDRUnsupported
	case enabled:
		return HDROn
	}
	return HDROff
}

// mostOn orders On > Off > Unsupported.
func mostOn(a, b HDRStatus) HDRStatus {
	return max(a, b)
}

func (h *HDRController) targetStatus(src SourceRef) HDRStatus {
	supported, enabled, err := h.Color.AdvancedColor(src)
	if err != nil {
		logrus.WithError(err).WithField("target", src.TargetID).Debugln("advanced color info unavailable")
		return HDRUnsupported
	}
	return hdrStatus(supported, enabled)
}

// targetsFor returns the paths driven by the display. Paths are matched by
// GDI name; a display no path names falls back to the path at its
// enumeration index, but only when that path carries no name of its own.
func targetsFor(sources []SourceRef, name string, index int) []SourceRef {
	var out []SourceRef
	for _, src := range sources {
		if src.GDIName == name {
			out = append(out, src)
		}
	}
	if len(out) == 0 && index >= 0 && index < len(sources) && sources[index].GDIName == "" {
		out = append(out, sources[index])
	}
	return out
}

// Statuses returns the aggregated status of every display, in order.
func (h *HDRController) Statuses(displays []Display) []HDRStatus {
	out := make([]HDRStatus, len(displays))
	sources, err := h.Config.Sources()
	if err != nil {
		logrus.WithError(err).Debugln("display paths unavailable, HDR unsupported")
		return out
	}
	for i, d := range displays {
		for _, src := range targetsFor(sources, d.DeviceName, i) {
			out[i] = mostOn(out[i], h.targetStatus(src))
		}
	}
	return out
}

// Set enables or disables HDR on every supported target of the display and
// returns the re-read, aggregated status.
func (h *HDRController) Set(name string, index int, enable bool) (HDRStatus, error) {
	sources, err := h.Config.Sources()
	if err != nil {
		return HDRUnsupported, fmt.Errorf("query display paths: %w", err)
	}
	targets := targetsFor(sources, name, index)
	if len(targets) == 0 {
		return HDRUnsupported, fmt.Errorf("%w: no display path for %s", ErrUnsupported, name)
	}

	result := HDRUnsupported
	var errs []error
	for _, src := range targets {
		if h.targetStatus(src) == HDRUnsupported {
			continue
		}
		if err := h.Color.SetAdvancedColor(src, enable); err != nil {
			errs = append(errs, fmt.Errorf("set advanced color on target %d: %w", src.TargetID, err))
			continue
		}
		result = mostOn(result, h.targetStatus(src))
	}

	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}
	if result == HDRUnsupported {
		return result, fmt.Errorf("%w: HDR unsupported on %s", ErrUnsupported, name)
	}
	return result, nil
}

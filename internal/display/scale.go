package display

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// scaleLadder is every DPI percentage Windows offers, in order.
var scaleLadder = []uint32{100, 125, 150, 175, 200, 225, 250, 300, 350, 400, 450, 500}

// AdapterID is a display adapter LUID.
type AdapterID struct {
	Low  uint32
	High int32
}

// SourceRef is one active DisplayConfig path.
type SourceRef struct {
	Adapter    AdapterID
	SourceID   uint32
	TargetID   uint32
	GDIName    string // e.g. \\.\DISPLAY1
	DevicePath string // monitor device interface path
}

// DPIRange is the relative DPI descriptor of a source. Every value counts
// ladder steps away from the recommended scale.
type DPIRange struct {
	MinRel int32
	CurRel int32
	MaxRel int32
}

// DisplayConfig reads and writes the per-source DPI scale.
type DisplayConfig interface {
	Sources() ([]SourceRef, error)
	DPI(src SourceRef) (DPIRange, error)
	SetDPI(src SourceRef, rel int32) error
}

// DPIStore persists an absolute DPI for the monitor whose registry subkey
// contains fragment. It must not create keys.
type DPIStore interface {
	PersistDPI(fragment string, dpi uint32) error
}

// errNoDPIKey is returned by a DPIStore when no subkey matches.
var errNoDPIKey = errors.New("no PerMonitorSettings key for monitor")

// ScaleController drives the relative DPI protocol for one backend.
type ScaleController struct {
	Config DisplayConfig
	Store  DPIStore
}

// scaleWindow returns the recommended ladder index and the inclusive
// supported window, clamped to the ladder.
func scaleWindow(r DPIRange) (rec, lo, hi int) {
	last := len(scaleLadder) - 1
	rec = int(-r.MinRel)
	lo = max(rec+int(r.MinRel), 0)
	hi = min(rec+int(r.MaxRel), last)
	if lo > hi {
		lo, hi = hi, lo
	}
	return rec, max(lo, 0), min(hi, last)
}

func (s *ScaleController) source(name string) (SourceRef, error) {
	sources, err := s.Config.Sources()
	if err != nil {
		return SourceRef{}, fmt.Errorf("query display paths: %w", err)
	}
	for _, src := range sources {
		if src.GDIName == name {
			return src, nil
		}
	}
	return SourceRef{}, fmt.Errorf("%w: no DisplayConfig source for %s", ErrUnsupported, name)
}

func (s *ScaleController) read(name string) (SourceRef, DPIRange, error) {
	src, err := s.source(name)
	if err != nil {
		return src, DPIRange{}, err
	}
	r, err := s.Config.DPI(src)
	if err != nil {
		return src, DPIRange{}, fmt.Errorf("get DPI scale of %s: %w", name, err)
	}
	return src, r, nil
}

// Options returns the ladder entries inside the supported window.
func (s *ScaleController) Options(name string) ([]ScaleOption, error) {
	_, r, err := s.read(name)
	if err != nil {
		return nil, err
	}
	return scaleOptions(r), nil
}

func scaleOptions(r DPIRange) []ScaleOption {
	rec, lo, hi := scaleWindow(r)
	opts := make([]ScaleOption, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		opts = append(opts, ScaleOption{
			Factor:      float64(scaleLadder[i]) / 100,
			Recommended: i == rec,
		})
	}
	return opts
}

// Current returns the active scale factor as reported by the DPI packet.
func (s *ScaleController) Current(name string) (float64, error) {
	_, r, err := s.read(name)
	if err != nil {
		return 0, err
	}
	idx := int(-r.MinRel + r.CurRel)
	if idx < 0 || idx >= len(scaleLadder) {
		return 0, fmt.Errorf("%w: DPI index %d outside ladder", ErrUnsupported, idx)
	}
	return float64(scaleLadder[idx]) / 100, nil
}

// SetScale applies percent to name and best-effort persists it.
func (s *ScaleController) SetScale(name string, percent uint32) error {
	target := slices.Index(scaleLadder, percent)
	if target < 0 {
		return fmt.Errorf("%w: unsupported DPI %d%%, supported: %v", ErrRejected, percent, scaleLadder)
	}

	src, r, err := s.read(name)
	if err != nil {
		return err
	}
	rec, lo, hi := scaleWindow(r)
	if target < lo || target > hi {
		return fmt.Errorf("%w: unsupported DPI %d%% for %s, supported range: %d%%-%d%%",
			ErrRejected, percent, name, scaleLadder[lo], scaleLadder[hi])
	}

	if err := s.Config.SetDPI(src, int32(target-rec)); err != nil {
		return fmt.Errorf("set DPI scale of %s: %w", name, err)
	}

	s.persist(name, src, percent)
	return nil
}

// persist writes the absolute DPI so the scale survives a restart. Failures
// are logged only; the scale is already applied.
func (s *ScaleController) persist(name string, src SourceRef, percent uint32) {
	log := logrus.WithField("display", name)
	if s.Store == nil {
		return
	}
	frag, ok := dpiKeyFragment(src.DevicePath)
	if !ok {
		log.WithField("path", src.DevicePath).Infoln("no monitor id in device path, DPI may not persist")
		return
	}

	err := s.Store.PersistDPI(frag, percent*96/100)
	switch {
	case errors.Is(err, errNoDPIKey):
		log.Infoln("no existing PerMonitorSettings key for monitor, DPI may not persist")
	case err != nil:
		log.WithError(err).Warnln("failed to persist DPI to registry")
	}
}

// dpiKeyFragment extracts the vendor/product code from a monitor device path
// such as \\?\DISPLAY#DELA0FB#5&1a2b&0&UID256#{e6f07b5f-...}.
func dpiKeyFragment(path string) (string, bool) {
	lower := strings.ToLower(path)
	start := strings.Index(lower, "display#")
	if start < 0 {
		return "", false
	}
	rest := lower[start+len("display#"):]
	end := strings.Index(rest, "#{")
	if end < 0 {
		return "", false
	}
	frag, _, _ := strings.Cut(rest[:end], "#")
	return frag, frag != ""
}

// Package display enumerates attached monitors, correlates them with their
// EDID metadata and exposes one control surface over GDI, DisplayConfig and
// DDC/CI.
package display

import (
	"fmt"
	"math"
)

// Resolution is one display mode. Equality is structural.
type Resolution struct {
	Width        uint32
	Height       uint32
	BitsPerPixel uint32
	RefreshRate  uint32
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d @ %dHz (%d bpp)", r.Width, r.Height, r.RefreshRate, r.BitsPerPixel)
}

func (r Resolution) area() uint64 {
	return uint64(r.Width) * uint64(r.Height)
}

// ScaleOption is one selectable DPI step; Factor 1.25 means 125 %.
type ScaleOption struct {
	Factor      float64
	Recommended bool
}

// Percent returns the option as a whole percentage.
func (o ScaleOption) Percent() uint32 {
	return uint32(math.Round(o.Factor * 100))
}

// HDRStatus is the advanced-color state of a display.
type HDRStatus int

const (
	HDRUnsupported HDRStatus = iota
	HDROff
	HDROn
)

func (s HDRStatus) String() string {
	switch s {
	case HDROff:
		return "off"
	case HDROn:
		return "on"
	}
	return "unsupported"
}

// Position is the top-left corner of a display on the virtual desktop.
type Position struct {
	X int32
	Y int32
}

// Display is the unified record for one logical display. It is rebuilt on
// every List call.
type Display struct {
	DeviceName   string // e.g. \\.\DISPLAY1
	FriendlyName string
	DeviceID     string

	Manufacturer    string
	Model           string
	Serial          string
	ManufactureWeek int
	ManufactureYear int

	Position    Position
	Orientation uint32 // degrees

	Current Resolution
	Modes   []Resolution
	Native  Resolution

	Scale        float64
	ScaleOptions []ScaleOption
	HDR          HDRStatus

	Enabled    bool
	Active     bool
	Connection string
	BuiltIn    bool
	Primary    bool

	// SupportsInputSwitch is nil when the probe could not reach the monitor.
	SupportsInputSwitch *bool
}

// EdidEntry is one monitor identity reported by the metadata source.
type EdidEntry struct {
	InstanceName     string
	Manufacturer     string
	Model            string
	Serial           string
	ProductCode      string
	Week             int
	Year             int
	OutputTechnology *int64
	Active           bool
}

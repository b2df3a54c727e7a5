package ddc

import (
	"fmt"
	"strconv"
	"strings"
)

// InputSources maps lower-case labels to VCP 0x60 values.
var InputSources = map[string]uint32{
	// VGA
	"vga": 0x01, "vga1": 0x01, "01": 0x01,
	"vga2": 0x02, "02": 0x02,
	// DVI
	"dvi": 0x03, "dvi1": 0x03, "03": 0x03,
	"dvi2": 0x04, "04": 0x04,
	// DisplayPort
	"displayport": 0x0F, "dp": 0x0F, "dp1": 0x0F, "0f": 0x0F,
	"dp2": 0x10, "10": 0x10,
	// HDMI
	"hdmi": 0x11, "hdmi1": 0x11, "11": 0x11,
	"hdmi2": 0x12, "12": 0x12,
	"hdmi3": 0x13, "13": 0x13,
	// USB-C / Thunderbolt
	"usbc": 0x19, "usb-c": 0x19, "tb": 0x19, "thunderbolt": 0x19, "usbc1": 0x19, "19": 0x19,
	"usbc2": 0x1A, "1a": 0x1A,
	"usbc3": 0x1B, "1b": 0x1B,
	"usbc4": 0x31, "31": 0x31,
	// LG
	"dp1_lg": 0xD0, "d0": 0xD0,
	"dp2_usbc_lg": 0xD1, "d1": 0xD1,
	"usbc_lg": 0xD2, "d2": 0xD2,
	"hdmi1_lg": 0x90, "90": 0x90,
	"hdmi2_lg": 0x91, "91": 0x91,
	// Analog
	"component": 0x0C, "component1": 0x0C, "0c": 0x0C,
	"component2": 0x0D, "0d": 0x0D,
	"component3": 0x0E, "0e": 0x0E,
	"composite": 0x05, "composite1": 0x05, "05": 0x05,
	"composite2": 0x06, "06": 0x06,
	"s-video": 0x07, "svideo1": 0x07, "07": 0x07,
	"svideo2": 0x08, "08": 0x08,
	// Tuner
	"tuner": 0x09, "tuner1": 0x09, "09": 0x09,
	"tuner2": 0x0A, "0a": 0x0A,
	"tuner3": 0x0B, "0b": 0x0B,
}

var inputLabels = map[uint32]string{
	0x01: "vga1",
	0x02: "vga2",
	0x03: "dvi1",
	0x04: "dvi2",
	0x0F: "dp1",
	0x10: "dp2",
	0x11: "hdmi1",
	0x12: "hdmi2",
	0x13: "hdmi3",
}

// ParseInput maps a label or a hex/decimal string to a VCP 0x60 value.
// Numeric strings are read as hex first.
func ParseInput(input string) (uint32, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	if code, ok := InputSources[key]; ok {
		return code, nil
	}

	if v, err := strconv.ParseUint(strings.TrimPrefix(key, "0x"), 16, 8); err == nil {
		return uint32(v), nil
	}
	if v, err := strconv.ParseUint(key, 10, 8); err == nil {
		return uint32(v), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInput, input)
}

// InputLabel returns the short label for a VCP 0x60 value, or 0x%02X.
func InputLabel(code uint32) string {
	code &= inputCodeMask
	if label, ok := inputLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("0x%02X", code)
}

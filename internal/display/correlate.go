package display

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Identity is what correlation knows about an enumerated display.
type Identity struct {
	FriendlyName string
	DeviceID     string
}

// Correlate assigns at most one EDID entry to each display and returns a
// display index to entry index map. Displays claim entries greedily in
// order: instance-name match first, then model or manufacturer text, then
// the first unused entry.
func Correlate(displays []Identity, entries []EdidEntry) map[int]int {
	assigned := make(map[int]int, len(displays))
	used := mapset.NewThreadUnsafeSet[int]()

	for di, d := range displays {
		friendly := strings.ToLower(d.FriendlyName)
		devID := strings.ToLower(d.DeviceID)

		pick := func(match func(EdidEntry) bool) (int, bool) {
			for ei, e := range entries {
				if !used.Contains(ei) && match(e) {
					return ei, true
				}
			}
			return 0, false
		}

		ei, ok := pick(func(e EdidEntry) bool { return instanceMatch(devID, strings.ToLower(e.InstanceName)) })
		if !ok {
			ei, ok = pick(func(e EdidEntry) bool { return textMatch(friendly, devID, e) })
		}
		if !ok {
			ei, ok = pick(func(EdidEntry) bool { return true })
		}
		if ok {
			used.Add(ei)
			assigned[di] = ei
		}
	}
	return assigned
}

func instanceMatch(devID, instance string) bool {
	if devID == "" || instance == "" {
		return false
	}
	if strings.Contains(devID, instance) || strings.Contains(instance, devID) {
		return true
	}
	frag := vendorProductFragment(instance)
	return frag != "" && strings.Contains(devID, frag)
}

// vendorProductFragment returns the segment between the first and second
// backslash, e.g. "dela0fb" in display\dela0fb\5&1a2b&0&uid4353_0.
func vendorProductFragment(instance string) string {
	_, rest, ok := strings.Cut(instance, `\`)
	if !ok {
		return ""
	}
	frag, _, _ := strings.Cut(rest, `\`)
	return frag
}

func textMatch(friendly, devID string, e EdidEntry) bool {
	for _, s := range []string{strings.ToLower(e.Model), strings.ToLower(e.Manufacturer)} {
		if s != "" && (strings.Contains(friendly, s) || strings.Contains(devID, s)) {
			return true
		}
	}
	return false
}

// applyEdid copies the identity fields of e onto d.
func applyEdid(d *Display, e EdidEntry) {
	d.Manufacturer = e.Manufacturer
	d.Model = e.Model
	d.Serial = e.Serial
	d.ManufactureWeek = e.Week
	d.ManufactureYear = e.Year
	d.Active = e.Active
	if e.OutputTechnology != nil {
		d.Connection = ConnectionLabel(*e.OutputTechnology)
		d.BuiltIn = IsBuiltIn(*e.OutputTechnology)
	}
}

// correlateDisplays fills identity fields in place. Unmatched displays keep
// them empty.
func correlateDisplays(displays []Display, entries []EdidEntry) {
	ids := make([]Identity, len(displays))
	for i, d := range displays {
		ids[i] = Identity{FriendlyName: d.FriendlyName, DeviceID: d.DeviceID}
	}
	for di, ei := range Correlate(ids, entries) {
		applyEdid(&displays[di], entries[ei])
	}
}

// D3DKMDT_VIDEO_OUTPUT_TECHNOLOGY labels.
var connectionLabels = map[int64]string{
	-2:         "Uninitialized",
	-1:         "Other",
	0:          "VGA",
	1:          "S-Video",
	2:          "Composite",
	3:          "Component",
	4:          "DVI",
	5:          "HDMI",
	6:          "LVDS / MIPI-DSI",
	8:          "D-Jpn",
	9:          "SDI",
	10:         "DisplayPort (external)",
	11:         "DisplayPort (embedded)",
	12:         "UDI (external)",
	13:         "UDI (embedded)",
	14:         "SDTV dongle",
	15:         "Miracast (wireless)",
	16:         "Indirect (wired)",
	0x80000000: "Internal (adapter)",
}

var builtInTechnologies = mapset.NewSet[int64](6, 11, 13, 0x80000000)

// ConnectionLabel names a video output technology code.
func ConnectionLabel(code int64) string {
	if label, ok := connectionLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%d)", code)
}

// IsBuiltIn reports whether the output technology is an internal panel link.
func IsBuiltIn(code int64) bool {
	return builtInTechnologies.Contains(code)
}

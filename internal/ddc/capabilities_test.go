package ddc

import (
	"reflect"
	"testing"
)

const dellCaps = "(prot(monitor)type(LCD)model(U2720Q)cmds(01 02 03 07 0C E3 F3)vcp(02 04 05 08 10 12 14(01 04 05 06 08 09 0B 0C) 16 18 1A 52 60(0F 11 12 1B) AA(01 02 04) AC AE B2 B6 C6 C8 C9 D6(01 04 05) DC(00 03 05) DF E0 E1 E2(00 1D 02 04 0E 12 14 23 24 27) F0(00 0C) F1 F2 FD)mswhql(1)asset_eep(40)mccs_ver(2.1))"

func TestParseCapabilities(t *testing.T) {
	caps := ParseCapabilities(dellCaps)

	if caps.Model != "U2720Q" {
		t.Errorf("Model = %q, want U2720Q", caps.Model)
	}
	if caps.Type != "LCD" {
		t.Errorf("Type = %q, want LCD", caps.Type)
	}
	for _, code := range []byte{0x10, 0x60, 0xD6, 0xFD} {
		if !caps.Supports(code) {
			t.Errorf("Supports(0x%02X) = false", code)
		}
	}
	if caps.Supports(0x01) {
		t.Error("cmds section leaked into VCP codes")
	}
	if got, want := caps.Values[VCPInputSource], []byte{0x0F, 0x11, 0x12, 0x1B}; !reflect.DeepEqual(got, want) {
		t.Errorf("input values = %v, want %v", got, want)
	}
	if got, want := caps.Inputs(), []string{"dp1", "hdmi1", "hdmi2", "0x1B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Inputs() = %v, want %v", got, want)
	}
	codes := caps.SortedCodes()
	if codes[0] != 0x02 || codes[len(codes)-1] != 0xFD {
		t.Errorf("SortedCodes() = %v", codes)
	}
}

func TestParseCapabilitiesWithoutVCP(t *testing.T) {
	caps := ParseCapabilities("(prot(monitor)type(lcd))")
	if caps.Codes.Cardinality() != 0 {
		t.Errorf("Codes = %v, want empty", caps.Codes)
	}
	if len(caps.Inputs()) != 0 {
		t.Errorf("Inputs() = %v, want empty", caps.Inputs())
	}
}

func TestCapsListInput(t *testing.T) {
	tests := map[string]bool{
		"vcp(10 60)":     true,
		"vcp(60(11 12))": true,
		"vcp(10,60)":     true,
		"VCP(10 12 60)":  true,
		"vcp(10 12)":     false,
		"model(60) x 60": false,
		"":               false,
	}
	for in, want := range tests {
		if got := capsListInput(in); got != want {
			t.Errorf("capsListInput(%q) = %v, want %v", in, got, want)
		}
	}
}

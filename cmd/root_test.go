package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"windisplay/internal/display"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	monitor, monitorIdx, listScales, rawCaps, verbose = "", 0, false, false, false
	cfgFile := filepath.Join(t.TempDir(), "config.toml")
	rootCmd.SetArgs(append([]string{"--backend", "fake", "--config", cfgFile}, args...))
	return rootCmd.ExecuteContext(context.Background())
}

func TestCommandsAgainstFake(t *testing.T) {
	tests := [][]string{
		{"list"},
		{"list", "-v"},
		{"detect"},
		{"status", "-m", "1"},
		{"switch", "dp1"},
		{"set-input", "hdmi2", "-m", "3"},
		{"get-input"},
		{"brightness", "get"},
		{"brightness", "set", "80", "-m", "2"},
		{"brightness", "adjust", "--", "-10"},
		{"brightness", "adjust", "+5"},
		{"resolution", "2560", "1440"},
		{"resolution", "3840", "2160", "--refresh", "60"},
		{"orientation", "90"},
		{"scale", "--list"},
		{"scale", "150%"},
		{"hdr", "on"},
		{"power"},
		{"power", "off", "-m", "1"},
		{"caps"},
		{"caps", "--raw"},
	}
	for _, args := range tests {
		if err := run(t, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"status", "-m", "9"}, display.ErrNotFound},
		{[]string{"resolution", "1024", "768"}, display.ErrRejected},
		{[]string{"orientation", "45"}, display.ErrRejected},
		{[]string{"scale", "175"}, display.ErrRejected},
		{[]string{"hdr", "on", "-m", "1"}, display.ErrUnsupported},
		{[]string{"power", "--monitor", `\\.\DISPLAY7`}, display.ErrNotFound},
	}
	for _, tt := range tests {
		if err := run(t, tt.args...); !errors.Is(err, tt.want) {
			t.Errorf("%v: error = %v, want %v", tt.args, err, tt.want)
		}
	}

	for _, args := range [][]string{
		{"brightness", "set", "101"},
		{"hdr", "maybe"},
		{"resolution", "0", "1080"},
		{"switch", "toaster"},
	} {
		if err := run(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestOnOff(t *testing.T) {
	for in, want := range map[string]bool{"on": true, "OFF": false, "enable": true, "0": false} {
		got, err := onOff(in)
		if err != nil || got != want {
			t.Errorf("onOff(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := onOff("dim"); err == nil {
		t.Error("onOff(dim) succeeded")
	}
}

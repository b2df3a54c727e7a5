package wmi

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type scriptedRunner struct {
	out     string
	err     error
	scripts []string
}

func (s *scriptedRunner) Run(_ context.Context, script string) (string, error) {
	s.scripts = append(s.scripts, script)
	return s.out, s.err
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace", "  \r\n", nil},
		{"single object", `{"InstanceName":"DISPLAY\\DEL4321\\5&1"}`, []string{`DISPLAY\DEL4321\5&1`}},
		{"array", `[{"InstanceName":"a"},{"InstanceName":"b"}]`, []string{"a", "b"}},
		{"bom", "\ufeff[{\"InstanceName\":\"c\"}]", []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecords[MonitorID](tt.input)
			if err != nil {
				t.Fatalf("DecodeRecords() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].InstanceName != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, got[i].InstanceName, tt.want[i])
				}
			}
		})
	}
}

func TestDecodeRecordsInvalid(t *testing.T) {
	if _, err := DecodeRecords[MonitorID]("not json"); err == nil {
		t.Error("expected error for invalid output")
	}
}

func TestMonitorIDsNullableFields(t *testing.T) {
	r := &scriptedRunner{out: `{"InstanceName":"x","VideoOutputTechnology":2147483648,"Active":null}`}

	ids, err := MonitorIDs(context.Background(), r)
	if err != nil {
		t.Fatalf("MonitorIDs() error = %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("len = %d, want 1", len(ids))
	}
	if ids[0].VideoOutputTechnology == nil || *ids[0].VideoOutputTechnology != 0x80000000 {
		t.Errorf("VideoOutputTechnology = %v", ids[0].VideoOutputTechnology)
	}
	if ids[0].Active != nil {
		t.Errorf("Active = %v, want nil", *ids[0].Active)
	}
}

func TestBrightness(t *testing.T) {
	r := &scriptedRunner{out: `{"Current":40}`}
	got, err := Brightness(context.Background(), r)
	if err != nil || got != 40 {
		t.Fatalf("Brightness() = %d, %v; want 40", got, err)
	}

	r.out = `{"Current":180}`
	if got, _ := Brightness(context.Background(), r); got != 100 {
		t.Errorf("Brightness() = %d, want clamped 100", got)
	}

	r.out = ""
	if _, err := Brightness(context.Background(), r); err == nil {
		t.Error("expected error on empty output")
	}
}

func TestSetBrightness(t *testing.T) {
	r := &scriptedRunner{out: "OK\r\n"}
	if err := SetBrightness(context.Background(), r, 250); err != nil {
		t.Fatalf("SetBrightness() error = %v", err)
	}
	if !strings.Contains(r.scripts[0], "[byte](100)") {
		t.Errorf("script did not clamp percent: %s", r.scripts[0])
	}

	r.out = ""
	if err := SetBrightness(context.Background(), r, 10); err == nil {
		t.Error("expected error without OK")
	}

	r.err = ErrNoPowerShell
	if err := SetBrightness(context.Background(), r, 10); !errors.Is(err, ErrNoPowerShell) {
		t.Errorf("error = %v, want ErrNoPowerShell", err)
	}
}

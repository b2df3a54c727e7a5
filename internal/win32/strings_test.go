package win32

import "testing"

func TestCutNUL(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("(prot(monitor)vcp(10 60))\x00\x00junk"), "(prot(monitor)vcp(10 60))"},
		{[]byte("no terminator"), "no terminator"},
		{[]byte{0, 'a'}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := cutNUL(tt.in); got != tt.want {
			t.Errorf("cutNUL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

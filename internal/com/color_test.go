package com

import (
	"testing"
)

func TestColor(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      int
		wantError bool
	}{
		{name: "red", input: "#FF0000", want: 0x0000FF},
		{name: "blue", input: "#0000FF", want: 0xFF0000},
		{name: "without hash", input: "0066CC", want: 0xCC6600},
		{name: "lower case", input: "#e0e0e0", want: 0xE0E0E0},
		{name: "surrounding spaces", input: " #FFFF00 ", want: 0x00FFFF},
		{name: "short form", input: "#FFF", wantError: true},
		{name: "not hex", input: "#GGHHII", wantError: true},
		{name: "empty", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Color(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("Color(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Color(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("Color(%q) = %#06x, want %#06x", tt.input, got, tt.want)
			}
			if back := HexColor(got); back != "#"+upperHex(tt.input) {
				t.Errorf("HexColor(%#06x) = %q", got, back)
			}
		})
	}
}

func upperHex(s string) string {
	out := make([]byte, 0, 6)
	for _, c := range []byte(s) {
		switch {
		case c >= 'a' && c <= 'f':
			out = append(out, c-'a'+'A')
		case (c >= 'A' && c <= 'F') || (c >= '0' && c <= '9'):
			out = append(out, c)
		}
	}
	return string(out)
}

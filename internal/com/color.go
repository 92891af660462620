package com

import (
	"fmt"
	"strconv"
	"strings"
)

// Color converts "#RRGGBB" (or "RRGGBB") to the BGR long that Office
// color properties expect.
func Color(hex string) (int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q: expected #RRGGBB", hex)
	}
	rgb, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: expected #RRGGBB", hex)
	}
	r := int(rgb>>16) & 0xff
	g := int(rgb>>8) & 0xff
	b := int(rgb) & 0xff
	return r | g<<8 | b<<16, nil
}

// HexColor is the inverse of Color.
func HexColor(bgr int) string {
	r := bgr & 0xff
	g := (bgr >> 8) & 0xff
	b := (bgr >> 16) & 0xff
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

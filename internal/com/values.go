package com

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// String reads a property and formats it as a string. Empty VARIANTs yield "".
func String(o Object, name string, args ...any) (string, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return "", err
	}
	return ToString(v), nil
}

// Int reads a numeric property.
func Int(o Object, name string, args ...any) (int, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return 0, err
	}
	n, ok := ToInt(v)
	if !ok {
		return 0, memberError(name, fmt.Errorf("unexpected value %v (%T)", v, v))
	}
	return n, nil
}

// Float reads a numeric property as float64.
func Float(o Object, name string, args ...any) (float64, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return 0, err
	}
	f, ok := ToFloat(v)
	if !ok {
		return 0, memberError(name, fmt.Errorf("unexpected value %v (%T)", v, v))
	}
	return f, nil
}

// Bool reads a boolean property. Office uses both VARIANT_BOOL and
// MsoTriState (-1 true, 0 false) for flags; both are accepted.
func Bool(o Object, name string, args ...any) (bool, error) {
	v, err := o.Get(name, args...)
	if err != nil {
		return false, err
	}
	return ToBool(v), nil
}

func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

func ToInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		return int(t), true
	case float64:
		return int(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	}
	return 0, false
}

func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	n, ok := ToInt(v)
	return float64(n), ok
}

func ToBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	n, ok := ToInt(v)
	return ok && n != 0
}

// JSONValue normalises a cell value for JSON output. Whole floats stay
// floats; NaN and infinities are not representable in JSON and become nil.
func JSONValue(v any) any {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	case float32:
		return JSONValue(float64(t))
	case time.Time:
		return t.Format(time.RFC3339)
	case int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		n, _ := ToInt(t)
		return n
	}
	return v
}

// TriState converts a Go bool to an MsoTriState value.
func TriState(b bool) int {
	if b {
		return -1
	}
	return 0
}

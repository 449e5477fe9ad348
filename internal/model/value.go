package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value holds either a string or a number.
type Value struct {
	num   float64
	text  string
	isNum bool
}

func Text(s string) Value    { return Value{text: s} }
func Number(f float64) Value { return Value{num: f, isNum: true} }

// ParseValue turns raw input into a Value for a parameter of type t.
// Number params keep text that does not parse to a finite number; nothing
// is rejected.
func ParseValue(t ParamType, s string) Value {
	if t == TypeNumber {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && finite(f) {
			return Number(f)
		}
	}
	return Text(s)
}

// finite excludes NaN and the infinities, which JSON cannot carry.
func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (v Value) IsNumber() bool { return v.isNum }

// IsZero is true for the empty string value.
func (v Value) IsZero() bool { return !v.isNum && v.text == "" }

// Float returns the numeric value and whether v is a number.
func (v Value) Float() (float64, bool) { return v.num, v.isNum }

// Equal reports whether v and o hold the same kind and content.
func (v Value) Equal(o Value) bool { return v == o }

func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*v = Text("")
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("value: want string or number: %w", err)
	}
	*v = Number(f)
	return nil
}

// ValueOf converts a decoded YAML/JSON scalar.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Text(""), nil
	case string:
		return Text(t), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case float64:
		if !finite(t) {
			return Value{}, fmt.Errorf("value: %v is not a finite number", t)
		}
		return Number(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	}
	return Value{}, fmt.Errorf("value: unsupported %T", x)
}

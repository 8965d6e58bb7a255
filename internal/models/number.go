package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Number is a numeric task field. The campaign form submits numbers as
// strings ("10", "0"), so decoding accepts a JSON number or a string and
// keeps the raw text. Whether the text is numeric is decided by Validate,
// not by decoding.
type Number struct {
	raw string
}

func NewNumber(v float64) Number {
	return Number{raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// ParseNumber wraps raw text without checking it.
func ParseNumber(raw string) Number {
	return Number{raw: raw}
}

func (n Number) String() string {
	return n.raw
}

func (n Number) IsEmpty() bool {
	return strings.TrimSpace(n.raw) == ""
}

func (n Number) Float64() (float64, error) {
	s := strings.TrimSpace(n.raw)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", n.raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", n.raw)
	}
	return v, nil
}

// Normalized returns the canonical form of a valid number. Empty becomes
// zero; invalid text is returned unchanged.
func (n Number) Normalized() Number {
	if n.IsEmpty() {
		return NewNumber(0)
	}
	v, err := n.Float64()
	if err != nil {
		return n
	}
	return NewNumber(v)
}

// Equal compares by value when both sides are numeric, by text otherwise.
func (n Number) Equal(other Number) bool {
	a, errA := n.Float64()
	b, errB := other.Float64()
	if errA == nil && errB == nil {
		return a == b
	}
	return n.raw == other.raw
}

func (n Number) MarshalJSON() ([]byte, error) {
	v, err := n.Float64()
	if err != nil {
		return json.Marshal(n.raw)
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		n.raw = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.raw = s
	default:
		// numbers, and anything else validation should reject (true, {}, [])
		n.raw = string(data)
	}
	return nil
}

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	if value.Tag == "!!null" {
		n.raw = ""
		return nil
	}
	n.raw = value.Value
	return nil
}

package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// PropertyKind tags the scalar kind stored in a PropertyValue.
type PropertyKind int

const (
	PropertyString PropertyKind = iota
	PropertyNumber
	PropertyBool
)

// PropertyValue is one entry of a node's open-ended property bag. The bag is
// restricted to a closed set of scalar kinds so every export format can carry
// it faithfully.
type PropertyValue struct {
	Kind PropertyKind
	Str  string
	Num  float64
	Bool bool
}

// StringProperty wraps s as a property value.
func StringProperty(s string) PropertyValue {
	return PropertyValue{Kind: PropertyString, Str: s}
}

// NumberProperty wraps f as a property value.
func NumberProperty(f float64) PropertyValue {
	return PropertyValue{Kind: PropertyNumber, Num: f}
}

// BoolProperty wraps b as a property value.
func BoolProperty(b bool) PropertyValue {
	return PropertyValue{Kind: PropertyBool, Bool: b}
}

// String renders the value for display and text-based exports.
func (v PropertyValue) String() string {
	switch v.Kind {
	case PropertyNumber:
		return trimFloat(v.Num)
	case PropertyBool:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return v.Str
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// MarshalJSON emits the bare scalar, so property bags serialize as plain
// JSON objects ({"lines": 120, "exported": true}).
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case PropertyNumber:
		return json.Marshal(v.Num)
	case PropertyBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON accepts any JSON scalar; non-scalar values are rejected.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case string:
		*v = StringProperty(val)
	case float64:
		*v = NumberProperty(val)
	case bool:
		*v = BoolProperty(val)
	case nil:
		*v = StringProperty("")
	default:
		return fmt.Errorf("property value must be a scalar, got %T", raw)
	}
	return nil
}

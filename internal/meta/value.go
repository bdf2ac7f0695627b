// Package meta models note header metadata as an ordered mapping from
// string keys to tagged values, so unrecognized fields survive a
// read-modify-write cycle without a fixed schema.
package meta

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeLayout is the serialization layout for timestamp values:
// ISO-8601 with millisecond precision, Z-suffixed UTC.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Value is a tagged variant: string, number, bool, timestamp, list,
// nested mapping, or null.
type Value struct {
	value interface{}
}

// Internal wrapper types distinguishing variants that share a Go
// representation.
type numberValue struct {
	raw string // original lexeme, preserved for round-trip
	f   float64
}

type timeValue struct {
	raw string // original lexeme, preserved for round-trip
	t   time.Time
}

// String creates a string Value.
func String(s string) Value {
	return Value{value: s}
}

// Bool creates a boolean Value.
func Bool(b bool) Value {
	return Value{value: b}
}

// Time creates a timestamp Value.
func Time(t time.Time) Value {
	u := t.UTC()
	return Value{value: timeValue{raw: u.Format(TimeLayout), t: u}}
}

// Number creates a numeric Value.
func Number(f float64) Value {
	return Value{value: numberValue{raw: formatNumber(f), f: f}}
}

// List creates a list Value.
func List(items []Value) Value {
	return Value{value: items}
}

// Nested creates a nested-mapping Value.
func Nested(m *Map) Value {
	return Value{value: m}
}

// Null creates a null Value.
func Null() Value {
	return Value{}
}

// StringList creates a list Value from plain strings.
func StringList(items []string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = String(s)
	}
	return List(vals)
}

// IsNull returns true if the value is null.
func (v Value) IsNull() bool {
	return v.value == nil
}

// AsString returns the value as a string, if possible.
// Timestamps stringify in their original lexeme.
func (v Value) AsString() (string, bool) {
	switch x := v.value.(type) {
	case string:
		return x, true
	case timeValue:
		return x.raw, true
	}
	return "", false
}

// AsBool returns the value as a boolean, if possible.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.value.(bool)
	return b, ok
}

// AsTime returns the value as a timestamp, if possible. String values
// that parse as ISO-8601 timestamps are accepted.
func (v Value) AsTime() (time.Time, bool) {
	switch x := v.value.(type) {
	case timeValue:
		return x.t, true
	case string:
		if t, err := ParseTime(x); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AsNumber returns the value as a float64, if possible.
func (v Value) AsNumber() (float64, bool) {
	if n, ok := v.value.(numberValue); ok {
		return n.f, true
	}
	return 0, false
}

// AsList returns the value as a list, if possible.
func (v Value) AsList() ([]Value, bool) {
	l, ok := v.value.([]Value)
	return l, ok
}

// AsStringList returns the value as a list of strings. A scalar string
// is treated as a one-element list.
func (v Value) AsStringList() ([]string, bool) {
	if s, ok := v.value.(string); ok {
		return []string{s}, true
	}
	items, ok := v.value.([]Value)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// AsMap returns the value as a nested mapping, if possible.
func (v Value) AsMap() (*Map, bool) {
	m, ok := v.value.(*Map)
	return m, ok
}

// Equal reports whether two values are equal. Lists and nested maps
// compare element-wise.
func (v Value) Equal(other Value) bool {
	switch a := v.value.(type) {
	case nil:
		return other.value == nil
	case string:
		b, ok := other.value.(string)
		return ok && a == b
	case bool:
		b, ok := other.value.(bool)
		return ok && a == b
	case timeValue:
		b, ok := other.value.(timeValue)
		return ok && a.t.Equal(b.t)
	case numberValue:
		b, ok := other.value.(numberValue)
		return ok && a.f == b.f
	case []Value:
		b, ok := other.value.([]Value)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case *Map:
		b, ok := other.value.(*Map)
		return ok && a.Equal(b)
	}
	return false
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch x := v.value.(type) {
	case []Value:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = item.Clone()
		}
		return Value{value: items}
	case *Map:
		return Value{value: x.Clone()}
	default:
		return v
	}
}

// Display returns a human-readable rendering of the value.
func (v Value) Display() string {
	switch x := v.value.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return fmt.Sprintf("%t", x)
	case timeValue:
		return x.raw
	case numberValue:
		return x.raw
	case []Value:
		out := ""
		for i, item := range x {
			if i > 0 {
				out += ", "
			}
			out += item.Display()
		}
		return out
	case *Map:
		out := ""
		for i, key := range x.Keys() {
			if i > 0 {
				out += ", "
			}
			val, _ := x.Get(key)
			out += key + ": " + val.Display()
		}
		return out
	}
	return ""
}

// ParseTime parses an ISO-8601 timestamp string. Several precision
// variants are accepted; output always normalizes to TimeLayout.
func ParseTime(s string) (time.Time, error) {
	layouts := []string{
		TimeLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// yamlNode converts the value to a yaml.Node for serialization.
func (v Value) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{}
	switch x := v.value.(type) {
	case nil:
		node.Kind = yaml.ScalarNode
		node.Tag = "!!null"
		node.Value = "null"
	case string:
		node.Kind = yaml.ScalarNode
		node.Tag = "!!str"
		node.Value = x
	case bool:
		node.Kind = yaml.ScalarNode
		node.Tag = "!!bool"
		node.Value = fmt.Sprintf("%t", x)
	case timeValue:
		// Plain scalar with the original lexeme; resolves back to
		// !!timestamp on parse.
		node.Kind = yaml.ScalarNode
		node.Value = x.raw
	case numberValue:
		node.Kind = yaml.ScalarNode
		node.Value = x.raw
	case []Value:
		node.Kind = yaml.SequenceNode
		node.Tag = "!!seq"
		for _, item := range x {
			child, err := item.yamlNode()
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
	case *Map:
		return x.yamlNode()
	default:
		return nil, fmt.Errorf("unsupported metadata value type %T", x)
	}
	return node, nil
}

// valueFromNode converts a decoded yaml.Node to a Value.
func valueFromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return Null(), nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return Value{}, err
			}
			return Bool(b), nil
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return Value{}, err
			}
			return Value{value: numberValue{raw: node.Value, f: f}}, nil
		case "!!timestamp":
			// Keep the lexeme: a date-only "2021-03-04" must not
			// round-trip as a normalized full timestamp.
			if t, err := ParseTime(node.Value); err == nil {
				return Value{value: timeValue{raw: node.Value, t: t}}, nil
			}
			return String(node.Value), nil
		default:
			return String(node.Value), nil
		}
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return List(items), nil
	case yaml.MappingNode:
		m := NewMap()
		if err := m.fromNode(node); err != nil {
			return Value{}, err
		}
		return Nested(m), nil
	case yaml.AliasNode:
		return valueFromNode(node.Alias)
	}
	return Value{}, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
}

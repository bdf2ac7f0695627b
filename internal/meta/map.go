package meta

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map is an ordered string-keyed mapping of metadata values. Key order
// is insertion order and is preserved through YAML round-trips.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value for key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Set stores a value, appending the key if it is new.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Delete removes a key.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Equal reports whether two maps hold the same keys in the same order
// with equal values.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, key := range m.keys {
		if other.keys[i] != key {
			return false
		}
		if !m.vals[key].Equal(other.vals[key]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := NewMap()
	for _, key := range m.keys {
		out.Set(key, m.vals[key].Clone())
	}
	return out
}

// Path addresses a value inside nested mappings as an explicit sequence
// of key segments.
type Path []string

// ParsePath splits a dotted key expression into a Path.
func ParsePath(expr string) Path {
	if expr == "" {
		return nil
	}
	return Path(strings.Split(expr, "."))
}

// String renders the path in dotted form.
func (p Path) String() string {
	return strings.Join([]string(p), ".")
}

// Lookup resolves a path against the map, descending through nested
// mappings one segment at a time.
func (m *Map) Lookup(p Path) (Value, bool) {
	if len(p) == 0 {
		return Value{}, false
	}
	cur := m
	for i, seg := range p {
		v, ok := cur.Get(seg)
		if !ok {
			return Value{}, false
		}
		if i == len(p)-1 {
			return v, true
		}
		cur, ok = v.AsMap()
		if !ok {
			return Value{}, false
		}
	}
	return Value{}, false
}

// SetPath stores a value at a path, creating intermediate nested
// mappings as needed. It fails if an intermediate segment exists but is
// not a mapping.
func (m *Map) SetPath(p Path, v Value) error {
	if len(p) == 0 {
		return fmt.Errorf("empty metadata path")
	}
	cur := m
	for _, seg := range p[:len(p)-1] {
		existing, ok := cur.Get(seg)
		if !ok {
			child := NewMap()
			cur.Set(seg, Nested(child))
			cur = child
			continue
		}
		child, ok := existing.AsMap()
		if !ok {
			return fmt.Errorf("metadata key %q is not a mapping", seg)
		}
		cur = child
	}
	cur.Set(p[len(p)-1], v)
	return nil
}

// Decode parses a YAML document into the map.
func Decode(data []byte) (*Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	m := NewMap()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document (or comments only) decodes to an empty map.
		return m, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("metadata header is not a mapping")
	}
	if err := m.fromNode(root); err != nil {
		return nil, err
	}
	return m, nil
}

// Encode serializes the map as a YAML document, keys in order.
func (m *Map) Encode() ([]byte, error) {
	if m.Len() == 0 {
		return []byte{}, nil
	}
	node, err := m.yamlNode()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func (m *Map) fromNode(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		val, err := valueFromNode(node.Content[i+1])
		if err != nil {
			return err
		}
		m.Set(keyNode.Value, val)
	}
	return nil
}

func (m *Map) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valNode, err := m.vals[key].yamlNode()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// MarshalYAML implements yaml.Marshaler.
func (m *Map) MarshalYAML() (interface{}, error) {
	return m.yamlNode()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("metadata header is not a mapping")
	}
	if m.vals == nil {
		m.vals = make(map[string]Value)
	}
	return m.fromNode(node)
}

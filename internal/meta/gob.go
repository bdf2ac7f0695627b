package meta

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// Gob support for cache persistence. Values are flattened into an
// exported wire struct keyed by a kind byte.

const (
	wireNull = iota
	wireString
	wireBool
	wireTime
	wireNumber
	wireList
	wireMap
)

type wireValue struct {
	Kind int
	Str  string
	Bool bool
	Time time.Time
	Raw  string // number lexeme
	Num  float64
	List []wireValue
	Keys []string
	Vals []wireValue
}

func (v Value) wire() (wireValue, error) {
	switch x := v.value.(type) {
	case nil:
		return wireValue{Kind: wireNull}, nil
	case string:
		return wireValue{Kind: wireString, Str: x}, nil
	case bool:
		return wireValue{Kind: wireBool, Bool: x}, nil
	case timeValue:
		return wireValue{Kind: wireTime, Time: x.t, Raw: x.raw}, nil
	case numberValue:
		return wireValue{Kind: wireNumber, Raw: x.raw, Num: x.f}, nil
	case []Value:
		w := wireValue{Kind: wireList}
		for _, item := range x {
			iw, err := item.wire()
			if err != nil {
				return wireValue{}, err
			}
			w.List = append(w.List, iw)
		}
		return w, nil
	case *Map:
		w := wireValue{Kind: wireMap}
		for _, key := range x.keys {
			vw, err := x.vals[key].wire()
			if err != nil {
				return wireValue{}, err
			}
			w.Keys = append(w.Keys, key)
			w.Vals = append(w.Vals, vw)
		}
		return w, nil
	}
	return wireValue{}, fmt.Errorf("unsupported metadata value type %T", v.value)
}

func fromWire(w wireValue) (Value, error) {
	switch w.Kind {
	case wireNull:
		return Null(), nil
	case wireString:
		return String(w.Str), nil
	case wireBool:
		return Bool(w.Bool), nil
	case wireTime:
		raw := w.Raw
		if raw == "" {
			raw = w.Time.UTC().Format(TimeLayout)
		}
		return Value{value: timeValue{raw: raw, t: w.Time}}, nil
	case wireNumber:
		return Value{value: numberValue{raw: w.Raw, f: w.Num}}, nil
	case wireList:
		items := make([]Value, 0, len(w.List))
		for _, iw := range w.List {
			item, err := fromWire(iw)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return List(items), nil
	case wireMap:
		m := NewMap()
		for i, key := range w.Keys {
			val, err := fromWire(w.Vals[i])
			if err != nil {
				return Value{}, err
			}
			m.Set(key, val)
		}
		return Nested(m), nil
	}
	return Value{}, fmt.Errorf("unknown metadata wire kind %d", w.Kind)
}

// GobEncode implements gob.GobEncoder.
func (m *Map) GobEncode() ([]byte, error) {
	w, err := Nested(m).wire()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (m *Map) GobDecode(data []byte) error {
	var w wireValue
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	v, err := fromWire(w)
	if err != nil {
		return err
	}
	decoded, ok := v.AsMap()
	if !ok {
		return fmt.Errorf("metadata gob payload is not a mapping")
	}
	*m = *decoded
	return nil
}

package meta

import (
	"bytes"
	"encoding/gob"
	"strings"
	"testing"
	"time"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	src := `title: Apple
created: 2020-05-08T17:28:35.772Z
tags:
  - Fruit
  - Notebooks/Kitchen
pinned: true
rating: 5
nested:
  inner: value
  deep:
    leaf: 1
free text: "quoted: value"
`
	m, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	wantKeys := []string{"title", "created", "tags", "pinned", "rating", "nested", "free text"}
	if got := m.Keys(); strings.Join(got, ",") != strings.Join(wantKeys, ",") {
		t.Errorf("key order = %v, want %v", got, wantKeys)
	}

	out, err := m.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := Decode(out)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if !m.Equal(again) {
		t.Errorf("round-trip not equal:\n--- in ---\n%s\n--- out ---\n%s", src, out)
	}
}

func TestDecodeTypes(t *testing.T) {
	m, err := Decode([]byte("s: text\nb: false\nn: 3.5\nts: 2021-02-03T04:05:06.000Z\nempty:\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if v, _ := m.Get("s"); !mustString(v, "text") {
		t.Errorf("s = %v", v)
	}
	if v, _ := m.Get("b"); !mustBoolFalse(v) {
		t.Errorf("b = %v", v)
	}
	v, _ := m.Get("n")
	if f, ok := v.AsNumber(); !ok || f != 3.5 {
		t.Errorf("n = %v", v)
	}
	v, _ = m.Get("ts")
	ts, ok := v.AsTime()
	if !ok || !ts.Equal(time.Date(2021, 2, 3, 4, 5, 6, 0, time.UTC)) {
		t.Errorf("ts = %v", v)
	}
	if v, _ := m.Get("empty"); !v.IsNull() {
		t.Errorf("empty = %v, want null", v)
	}
}

func mustString(v Value, want string) bool {
	s, ok := v.AsString()
	return ok && s == want
}

func mustBoolFalse(v Value) bool {
	b, ok := v.AsBool()
	return ok && !b
}

func TestTimestampLexemePreserved(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"date only", "due: 2021-03-04\n"},
		{"millisecond zulu", "at: 2020-05-08T17:28:35.772Z\n"},
		{"second zulu", "at: 2020-05-08T17:28:35Z\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.in))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			out, err := m.Encode()
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if string(out) != tt.in {
				t.Errorf("round-trip rewrote the lexeme: %q -> %q", tt.in, out)
			}
		})
	}
}

func TestDecodeRejectsNonMapping(t *testing.T) {
	if _, err := Decode([]byte("- a\n- b\n")); err == nil {
		t.Error("expected error for sequence header")
	}
	if _, err := Decode([]byte("[broken: yaml\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDecodeEmpty(t *testing.T) {
	m, err := Decode([]byte(""))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("len = %d, want 0", m.Len())
	}
}

func TestPathLookupAndSet(t *testing.T) {
	m := NewMap()
	if err := m.SetPath(ParsePath("a.b.c"), String("deep")); err != nil {
		t.Fatalf("set path: %v", err)
	}
	v, ok := m.Lookup(ParsePath("a.b.c"))
	if !ok || !mustString(v, "deep") {
		t.Errorf("a.b.c = %v", v)
	}
	if _, ok := m.Lookup(ParsePath("a.missing")); ok {
		t.Error("expected miss for absent path")
	}
	if _, ok := m.Lookup(ParsePath("a.b.c.d")); ok {
		t.Error("expected miss when descending through a scalar")
	}
	if err := m.SetPath(ParsePath("a.b.c.d"), String("x")); err == nil {
		t.Error("expected error setting below a scalar")
	}
}

func TestMapDelete(t *testing.T) {
	m := NewMap()
	m.Set("a", String("1"))
	m.Set("b", String("2"))
	m.Set("c", String("3"))
	m.Delete("b")
	if got := strings.Join(m.Keys(), ","); got != "a,c" {
		t.Errorf("keys = %s", got)
	}
}

func TestGobRoundTrip(t *testing.T) {
	m := NewMap()
	m.Set("title", String("Apple"))
	m.Set("when", Time(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))
	m.Set("tags", StringList([]string{"a", "b"}))
	m.Set("count", Number(7))
	m.Set("flag", Bool(true))
	nested := NewMap()
	nested.Set("inner", String("v"))
	m.Set("nested", Nested(nested))
	m.Set("nothing", Null())

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		t.Fatalf("gob encode: %v", err)
	}
	decoded := NewMap()
	if err := gob.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(decoded); err != nil {
		t.Fatalf("gob decode: %v", err)
	}
	if !m.Equal(decoded) {
		t.Errorf("gob round-trip not equal: %v vs %v", m.Keys(), decoded.Keys())
	}
}

func TestValueEqual(t *testing.T) {
	if !String("a").Equal(String("a")) || String("a").Equal(String("b")) {
		t.Error("string equality broken")
	}
	if !Number(2).Equal(Number(2)) || Number(2).Equal(Number(3)) {
		t.Error("number equality broken")
	}
	if String("true").Equal(Bool(true)) {
		t.Error("cross-type values must not compare equal")
	}
	if !StringList([]string{"x"}).Equal(StringList([]string{"x"})) {
		t.Error("list equality broken")
	}
}

package graph_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/goliatone/go-external-content/graph"
)

func TestConvertScalars(t *testing.T) {
	cases := []struct {
		name string
		in   any
		kind graph.Kind
		text string
	}{
		{"string", "hello", graph.KindString, "hello"},
		{"bool", true, graph.KindBool, "true"},
		{"integral float", float64(42), graph.KindInt, "42"},
		{"fractional float", 3.25, graph.KindFloat, "3.25"},
		{"int", 7, graph.KindInt, "7"},
		{"null", nil, graph.KindString, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := graph.Convert(tc.in)
			if got.Kind() != tc.kind {
				t.Fatalf("expected kind %v got %v", tc.kind, got.Kind())
			}
			if got.Text() != tc.text {
				t.Fatalf("expected text %q got %q", tc.text, got.Text())
			}
		})
	}
}

func TestConvertJSONNumberPreservesInt64(t *testing.T) {
	decoder := json.NewDecoder(strings.NewReader(`{"big": 9007199254740993, "ratio": 0.5}`))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	entries := graph.ConvertMap(raw)
	if entries["big"].Kind() != graph.KindInt {
		t.Fatalf("expected KindInt got %v", entries["big"].Kind())
	}
	if entries["big"].IntVal() != 9007199254740993 {
		t.Fatalf("expected exact int64 got %d", entries["big"].IntVal())
	}
	if entries["ratio"].Kind() != graph.KindFloat {
		t.Fatalf("expected KindFloat got %v", entries["ratio"].Kind())
	}
}

func TestConvertFloatInt64Boundaries(t *testing.T) {
	// float64(math.MaxInt64) rounds up to 2^63 and would overflow int64, so
	// values at or above the limit stay floats.
	overflow := graph.Convert(float64(math.MaxInt64))
	if overflow.Kind() != graph.KindFloat {
		t.Fatalf("expected KindFloat got %v", overflow.Kind())
	}
	if overflow.FloatVal() != float64(math.MaxInt64) {
		t.Fatalf("expected value preserved got %v", overflow.FloatVal())
	}

	// The minimum is exactly representable and converts cleanly.
	min := graph.Convert(float64(math.MinInt64))
	if min.Kind() != graph.KindInt {
		t.Fatalf("expected KindInt got %v", min.Kind())
	}
	if min.IntVal() != math.MinInt64 {
		t.Fatalf("expected math.MinInt64 got %d", min.IntVal())
	}
}

func TestConvertNesting(t *testing.T) {
	value := graph.Convert(map[string]any{
		"author": map[string]any{"name": "John"},
		"tags":   []any{"go", "web"},
		"gone":   nil,
	})

	if value.Kind() != graph.KindMap {
		t.Fatalf("expected map got %v", value.Kind())
	}
	entries := value.MapVal()
	if entries["author"].MapVal()["name"].Text() != "John" {
		t.Fatalf("nested map entry lost")
	}
	tags := entries["tags"].ListVal()
	if len(tags) != 2 || tags[1].Text() != "web" {
		t.Fatalf("list entries lost: %v", tags)
	}
	if entries["gone"].Kind() != graph.KindString || entries["gone"].Text() != "" {
		t.Fatalf("null map entry should degrade to empty string")
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	first := graph.Convert(map[string]any{
		"title": "X",
		"meta":  map[string]any{"count": float64(3)},
	})
	second := graph.Convert(first)

	if second.Kind() != graph.KindMap {
		t.Fatalf("expected map got %v", second.Kind())
	}
	if second.MapVal()["title"].Text() != first.MapVal()["title"].Text() {
		t.Fatalf("idempotent conversion changed payload")
	}
	if second.MapVal()["meta"].MapVal()["count"].IntVal() != 3 {
		t.Fatalf("idempotent conversion changed nested number")
	}
}

func TestConvertUnknownShapeDegradesToText(t *testing.T) {
	type opaque struct{ A int }
	value := graph.Convert(opaque{A: 1})
	if value.Kind() != graph.KindString {
		t.Fatalf("expected string fallback got %v", value.Kind())
	}
	if value.Text() == "" {
		t.Fatalf("expected raw textual representation")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		name   string
		value  graph.Value
		truthy bool
	}{
		{"null", graph.Null(), false},
		{"false", graph.Bool(false), false},
		{"empty string", graph.String(""), false},
		{"empty list", graph.List(nil), false},
		{"zero int", graph.Int(0), true},
		{"empty map", graph.Map(map[string]graph.Value{}), true},
		{"string", graph.String("x"), true},
		{"list", graph.List([]graph.Value{graph.String("a")}), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.value.Truthy() != tc.truthy {
				t.Fatalf("expected truthy=%v", tc.truthy)
			}
		})
	}
}

package css

import (
	"reflect"
	"testing"
)

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Transform
	}{
		{"translateX px", "translateX(10px)", Transform{{"translateX", Number(10)}}},
		{"translateY percent", "translateY(50%)", Transform{{"translateY", String("50%")}}},
		{"scale unitless", "scale(1.5)", Transform{{"scale", Number(1.5)}}},
		{"rotate deg", "rotate(45deg)", Transform{{"rotate", String("45deg")}}},
		{"rotate zero", "rotate(0)", Transform{{"rotate", String("0deg")}}},
		{"skew turn", "skewX(0.25turn)", Transform{{"skewX", String("0.25turn")}}},
		{"perspective", "perspective(100px)", Transform{{"perspective", Number(100)}}},
		{
			"list keeps order", "scale(2) translateX(-5px) rotateZ(1rad)",
			Transform{{"scale", Number(2)}, {"translateX", Number(-5)}, {"rotateZ", String("1rad")}},
		},
		{
			"matrix", "matrix(1, 0, 0, 1, 10, 20)",
			Transform{{"matrix", Matrix{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 10, 20, 0, 1}}},
		},
		{
			"malformed dropped", "translateX(10px) matrix(1, 2) scale(foo) rotate(10) unknown(1)",
			Transform{{"translateX", Number(10)}},
		},
		{"scale percent rejected", "scale(50%)", nil},
		{"translate em rejected", "translateX(2em)", nil},
		{"empty", "", nil},
		{"garbage", "none", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTransform(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestTransformRoundTrip(t *testing.T) {
	inputs := []string{
		"translateX(10px)",
		"translateY(-2.5px)",
		"translateX(25%)",
		"scale(2)",
		"scaleX(0.5)",
		"scaleY(3)",
		"scaleZ(1)",
		"perspective(500px)",
		"rotate(45deg)",
		"rotateX(1rad)",
		"rotateY(100grad)",
		"rotateZ(0.5turn)",
		"skewX(10deg)",
		"skewY(-10deg)",
		"matrix(1, 0.5, -0.5, 1, 10, 20)",
		"scale(2) translateX(10px) rotate(90deg)",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			parsed := ParseTransform(in)
			if len(parsed) == 0 {
				t.Fatalf("failed to parse %q", in)
			}
			text := FormatTransform(parsed)
			if text != in {
				t.Errorf("expected %q, got %q", in, text)
			}
			if again := ParseTransform(text); !reflect.DeepEqual(again, parsed) {
				t.Errorf("round trip mismatch: %+v != %+v", again, parsed)
			}
		})
	}
}

func TestExpand2D(t *testing.T) {
	m := Expand2D(1, 2, 3, 4, 5, 6)
	expected := []float64{1, 2, 0, 0, 3, 4, 0, 0, 0, 0, 1, 0, 5, 6, 0, 1}
	if !reflect.DeepEqual(m.Slice(), expected) {
		t.Errorf("expected %v, got %v", expected, m.Slice())
	}
}

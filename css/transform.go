package css

import (
	"strings"

	lex "github.com/tdewolff/parse/v2/css"
)

// TransformOp is a single transform function, e.g. {translateX 10}.
// Arg is Number for numeric functions, String for angles and percentages
// and Matrix for matrix().
type TransformOp struct {
	Name string
	Arg  Value
}

// Transform is an ordered transform function list. Order matters: the same
// functions in different order produce different results.
type Transform []TransformOp

// Matrix is a 4x4 column-major matrix.
type Matrix [16]float64

// Expand2D expands 2D matrix(a, b, c, d, e, f) into 4x4 column-major form:
// 2D sub-block populated, identity elsewhere.
func Expand2D(a, b, c, d, e, f float64) Matrix {
	return Matrix{
		a, b, 0, 0,
		c, d, 0, 0,
		0, 0, 1, 0,
		e, f, 0, 1,
	}
}

// Slice returns matrix elements as a slice.
func (m Matrix) Slice() []float64 {
	return m[:]
}

// transformShape tells how arguments of transform function are parsed.
type transformShape int

const (
	shapeNumeric transformShape = iota // number or px length, translate also takes percentage
	shapeAngle                         // angle with unit
	shapeMatrix                        // six numbers
)

var transformFunctions = map[string]transformShape{
	"perspective": shapeNumeric,
	"scale":       shapeNumeric,
	"scaleX":      shapeNumeric,
	"scaleY":      shapeNumeric,
	"scaleZ":      shapeNumeric,
	"translateX":  shapeNumeric,
	"translateY":  shapeNumeric,
	"rotate":      shapeAngle,
	"rotateX":     shapeAngle,
	"rotateY":     shapeAngle,
	"rotateZ":     shapeAngle,
	"skewX":       shapeAngle,
	"skewY":       shapeAngle,
	"matrix":      shapeMatrix,
}

// IsTransformFunction returns true for supported transform function names.
func IsTransformFunction(name string) bool {
	_, ok := transformFunctions[name]
	return ok
}

var transformCache = newMemo[Transform](defaultMemoSize)

// ParseTransform parses transform list. Unrecognized or malformed functions
// are discarded, the rest of the list is kept. Result is empty when nothing
// could be parsed. Returned slice is shared, callers must not modify it.
func ParseTransform(s string) Transform {
	return transformCache.get(s, parseTransform)
}

func parseTransform(s string) Transform {
	toks := tokenize(s)
	var out Transform
	for i := 0; i < len(toks); {
		t := toks[i]
		if t.tt != lex.FunctionToken {
			// whitespace between functions and any garbage in between
			i++
			continue
		}
		c, next, ok := nextCall(toks, i)
		if !ok {
			break
		}
		i = next
		if op, ok := transformOp(c); ok {
			out = append(out, op)
		}
	}
	return out
}

func transformOp(c call) (TransformOp, bool) {
	shape, known := transformFunctions[c.name]
	if !known {
		return TransformOp{}, false
	}
	switch shape {
	case shapeNumeric:
		if len(c.args) != 1 || len(c.args[0]) != 1 {
			return TransformOp{}, false
		}
		arg := c.args[0][0]
		switch arg.tt {
		case lex.NumberToken:
			if v, ok := ParseNumber(arg.text); ok {
				return TransformOp{Name: c.name, Arg: Number(v)}, true
			}
		case lex.DimensionToken:
			if l, ok := ParseLength(arg.text); ok && l.Unit == UnitPx {
				return TransformOp{Name: c.name, Arg: Number(l.Magnitude)}, true
			}
		case lex.PercentageToken:
			if strings.HasPrefix(c.name, "translate") {
				return TransformOp{Name: c.name, Arg: String(arg.text)}, true
			}
		}
	case shapeAngle:
		if len(c.args) != 1 || len(c.args[0]) != 1 {
			return TransformOp{}, false
		}
		arg := c.args[0][0]
		switch arg.tt {
		case lex.DimensionToken:
			if isAngle(arg.text) {
				return TransformOp{Name: c.name, Arg: String(arg.text)}, true
			}
		case lex.NumberToken:
			// unitless zero is the only angle allowed without unit
			if v, ok := ParseNumber(arg.text); ok && v == 0 {
				return TransformOp{Name: c.name, Arg: String("0deg")}, true
			}
		}
	case shapeMatrix:
		if len(c.args) != 6 {
			return TransformOp{}, false
		}
		var n [6]float64
		for i, a := range c.args {
			if len(a) != 1 || a[0].tt != lex.NumberToken {
				return TransformOp{}, false
			}
			v, ok := ParseNumber(a[0].text)
			if !ok {
				return TransformOp{}, false
			}
			n[i] = v
		}
		return TransformOp{Name: c.name, Arg: Expand2D(n[0], n[1], n[2], n[3], n[4], n[5])}, true
	}
	return TransformOp{}, false
}

// angleUnits lists CSS angle units.
var angleUnits = []string{"deg", "grad", "rad", "turn"}

func isAngle(s string) bool {
	for _, u := range angleUnits {
		if num, found := strings.CutSuffix(s, u); found {
			_, ok := ParseNumber(num)
			return ok
		}
	}
	return false
}

// FormatTransform serializes transform list back to CSS text. Parsing the
// result yields the same list.
func FormatTransform(t Transform) string {
	parts := make([]string, 0, len(t))
	for _, op := range t {
		var arg string
		switch v := op.Arg.(type) {
		case Number:
			arg = FormatNumber(float64(v))
			if strings.HasPrefix(op.Name, "translate") || op.Name == "perspective" {
				arg += "px"
			}
		case String:
			arg = string(v)
		case Matrix:
			args := []string{
				FormatNumber(v[0]), FormatNumber(v[1]),
				FormatNumber(v[4]), FormatNumber(v[5]),
				FormatNumber(v[12]), FormatNumber(v[13]),
			}
			arg = strings.Join(args, ", ")
		default:
			continue
		}
		parts = append(parts, op.Name+"("+arg+")")
	}
	return strings.Join(parts, " ")
}

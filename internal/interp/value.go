package interp

import (
	"fmt"
	"strconv"
)

// ValueKind tags which variant of Value is populated, the runtime
// counterpart of ast.LiteralKind.
type ValueKind int

const (
	IntVal ValueKind = iota
	FloatVal
	BoolVal
	StringVal
)

// Value is a runtime FlowLang value: exactly one of Int, Float, Bool or
// String is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind

	Int    int64
	Float  float64
	Bool   bool
	String string
}

func Int(n int64) Value     { return Value{Kind: IntVal, Int: n} }
func Float(f float64) Value { return Value{Kind: FloatVal, Float: f} }
func Bool(b bool) Value     { return Value{Kind: BoolVal, Bool: b} }
func Str(s string) Value    { return Value{Kind: StringVal, String: s} }

// Display renders a Value the way OUTPUT and INPUT echoing do.
func (v Value) Display() string {
	switch v.Kind {
	case IntVal:
		return strconv.FormatInt(v.Int, 10)
	case FloatVal:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case BoolVal:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case StringVal:
		return v.String
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.Kind)
	}
}

func (v Value) isNumeric() bool {
	return v.Kind == IntVal || v.Kind == FloatVal
}

// asFloat widens an Int or Float value to float64; callers check
// isNumeric first.
func (v Value) asFloat() float64 {
	if v.Kind == IntVal {
		return float64(v.Int)
	}
	return v.Float
}

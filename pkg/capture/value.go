package capture

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a typed configuration value exchanged with a device.
type Value interface {
	Type() DataType
	String() string
}

type (
	Bool    bool
	Int64   int64
	Uint64  uint64
	Float64 float64
	String  string
)

// Rational is a p/q pair, used for periods (seconds) and voltages (volts).
type Rational struct {
	P, Q uint64
}

// DoubleRange is a pair of floating point bounds.
type DoubleRange struct {
	Lo, Hi float64
}

func (Bool) Type() DataType        { return TypeBool }
func (Int64) Type() DataType       { return TypeInt64 }
func (Uint64) Type() DataType      { return TypeUint64 }
func (Float64) Type() DataType     { return TypeFloat }
func (String) Type() DataType      { return TypeString }
func (Rational) Type() DataType    { return TypeRational }
func (DoubleRange) Type() DataType { return TypeDoubleRange }

func (v Bool) String() string    { return strconv.FormatBool(bool(v)) }
func (v Int64) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Uint64) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Float64) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v String) String() string  { return string(v) }

func (v Rational) String() string {
	return fmt.Sprintf("%d/%d", v.P, v.Q)
}

func (v DoubleRange) String() string {
	return fmt.Sprintf("(%g, %g)", v.Lo, v.Hi)
}

// Equal reports whether two values have the same type and content.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type() && a == b
}

// AsInt64 converts integer-like values to int64.
func AsInt64(v Value) (int64, error) {
	switch x := v.(type) {
	case Int64:
		return int64(x), nil
	case Uint64:
		if uint64(x) > math.MaxInt64 {
			return 0, fmt.Errorf("capture: value %d overflows int64", uint64(x))
		}
		return int64(x), nil
	case nil:
		return 0, fmt.Errorf("capture: nil value")
	default:
		return 0, fmt.Errorf("capture: %s value is not an integer", v.Type())
	}
}

// IntLike builds an integer value with the same representation as ref. A nil
// or non-integer ref yields an Int64.
func IntLike(ref Value, v int64) (Value, error) {
	if _, ok := ref.(Uint64); ok {
		if v < 0 {
			return nil, fmt.Errorf("capture: %d is negative, want unsigned", v)
		}
		return Uint64(v), nil
	}
	return Int64(v), nil
}

// IntOfType converts v to a value of type t. Negative values are rejected
// for unsigned and rational types.
func IntOfType(t DataType, v int64) (Value, error) {
	switch t {
	case TypeInt64:
		return Int64(v), nil
	case TypeUint64:
		if v < 0 {
			return nil, fmt.Errorf("capture: %d is negative, want unsigned", v)
		}
		return Uint64(v), nil
	case TypeFloat:
		return Float64(v), nil
	case TypeRational:
		if v < 0 {
			return nil, fmt.Errorf("capture: %d is negative, want rational", v)
		}
		return Rational{P: uint64(v), Q: 1}, nil
	}
	return nil, fmt.Errorf("capture: cannot store integer in %s value", t)
}

// ParseValue parses text into a value of the given type. Rationals are written
// "p/q", ranges "lo:hi".
func ParseValue(t DataType, s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch t {
	case TypeBool:
		switch strings.ToLower(s) {
		case "1", "true", "on", "yes":
			return Bool(true), nil
		case "0", "false", "off", "no":
			return Bool(false), nil
		}
		return nil, fmt.Errorf("capture: invalid bool %q", s)
	case TypeInt64:
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("capture: invalid integer %q: %w", s, err)
		}
		return Int64(n), nil
	case TypeUint64:
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("capture: invalid unsigned integer %q: %w", s, err)
		}
		return Uint64(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("capture: invalid float %q: %w", s, err)
		}
		return Float64(f), nil
	case TypeString:
		return String(s), nil
	case TypeRational:
		ps, qs, ok := strings.Cut(s, "/")
		if !ok {
			qs = "1"
		}
		p, err := strconv.ParseUint(strings.TrimSpace(ps), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("capture: invalid rational %q: %w", s, err)
		}
		q, err := strconv.ParseUint(strings.TrimSpace(qs), 10, 64)
		if err != nil || q == 0 {
			return nil, fmt.Errorf("capture: invalid rational %q", s)
		}
		return Rational{P: p, Q: q}, nil
	case TypeDoubleRange:
		los, his, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("capture: invalid range %q, want lo:hi", s)
		}
		lo, err := strconv.ParseFloat(strings.TrimSpace(los), 64)
		if err != nil {
			return nil, fmt.Errorf("capture: invalid range %q: %w", s, err)
		}
		hi, err := strconv.ParseFloat(strings.TrimSpace(his), 64)
		if err != nil {
			return nil, fmt.Errorf("capture: invalid range %q: %w", s, err)
		}
		return DoubleRange{Lo: lo, Hi: hi}, nil
	}
	return nil, fmt.Errorf("capture: cannot parse %s values", t)
}

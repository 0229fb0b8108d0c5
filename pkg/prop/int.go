package prop

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// Range is an inclusive integer range.
type Range struct {
	Min, Max int64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Int is an integer property with an optional range. When SpecialValueText is
// set it is displayed instead of the range minimum, e.g. "No Limit" for 0.
type Int struct {
	base
	suffix      string
	rng         *Range
	specialText string
	dataType    capture.DataType
}

// NewInt creates an Int property. rng may be nil for an unbounded value.
func NewInt(name, desc, suffix string, rng *Range, getter Getter, setter Setter, specialValueText string) *Int {
	return &Int{
		base:        base{name: name, desc: desc, getter: getter, setter: setter},
		suffix:      suffix,
		rng:         rng,
		specialText: specialValueText,
	}
}

func (*Int) Kind() Kind { return KindInt }

// WithDataType fixes the value type written by SetInt, usually the declared
// type of the configuration key.
func (p *Int) WithDataType(t capture.DataType) *Int {
	p.dataType = t
	return p
}

// DataType returns the value type written by SetInt, TypeUnknown when it
// follows the current value.
func (p *Int) DataType() capture.DataType { return p.dataType }

func (p *Int) Suffix() string           { return p.suffix }
func (p *Int) SpecialValueText() string { return p.specialText }

// Range returns the allowed range and whether one is set.
func (p *Int) Range() (Range, bool) {
	if p.rng == nil {
		return Range{}, false
	}
	return *p.rng, true
}

// Validate rejects values outside the range. Values are never clamped.
func (p *Int) Validate(v int64) error {
	if p.rng != nil && !p.rng.Contains(v) {
		return fmt.Errorf("prop: %s: %d not in %s: %w", p.name, v, p.rng, ErrOutOfRange)
	}
	return nil
}

// Value returns the current value as an int64.
func (p *Int) Value() (int64, error) {
	v, err := p.Get()
	if err != nil {
		return 0, err
	}
	n, err := capture.AsInt64(v)
	if err != nil {
		return 0, fmt.Errorf("prop: %s: %w", p.name, err)
	}
	return n, nil
}

// SetInt validates v and writes it as the property's data type. Without
// one, the representation of the current value is used.
func (p *Int) SetInt(v int64) error {
	if err := p.Validate(v); err != nil {
		return err
	}
	var (
		val capture.Value
		err error
	)
	if p.dataType != capture.TypeUnknown {
		val, err = capture.IntOfType(p.dataType, v)
	} else {
		var ref capture.Value
		if p.getter != nil {
			if ref, err = p.getter(); err != nil {
				return fmt.Errorf("prop: %s: %w", p.name, err)
			}
		}
		val, err = capture.IntLike(ref, v)
	}
	if err != nil {
		return fmt.Errorf("prop: %s: %w", p.name, err)
	}
	return p.Set(val)
}

// Format renders v with the special value text and suffix applied.
func (p *Int) Format(v int64) string {
	if p.specialText != "" && p.rng != nil && v == p.rng.Min {
		return p.specialText
	}
	s := strconv.FormatInt(v, 10)
	if p.suffix != "" {
		s += p.suffix
	}
	return s
}

func (p *Int) Label() (string, error) {
	v, err := p.Value()
	if err != nil {
		return "", err
	}
	return p.Format(v), nil
}

package prop

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// EnumValue pairs a raw device value with its display label.
type EnumValue struct {
	Value capture.Value
	Label string
}

// Enum is a property whose value is one of a fixed, ordered set of choices.
type Enum struct {
	base
	values []EnumValue
}

// NewEnum creates an Enum property. The order of values is kept.
func NewEnum(name, desc string, values []EnumValue, getter Getter, setter Setter) *Enum {
	return &Enum{
		base:   base{name: name, desc: desc, getter: getter, setter: setter},
		values: append([]EnumValue(nil), values...),
	}
}

func (*Enum) Kind() Kind { return KindEnum }

// Values returns a copy of the choices.
func (e *Enum) Values() []EnumValue {
	return append([]EnumValue(nil), e.values...)
}

// Index returns the position of v among the choices, or -1.
func (e *Enum) Index(v capture.Value) int {
	for i, ev := range e.values {
		if capture.Equal(ev.Value, v) {
			return i
		}
	}
	return -1
}

// Selected returns the index of the current value, or -1 when the device
// reports a value that is not one of the choices.
func (e *Enum) Selected() (int, error) {
	v, err := e.Get()
	if err != nil {
		return -1, err
	}
	return e.Index(v), nil
}

// SetIndex writes the i-th choice.
func (e *Enum) SetIndex(i int) error {
	if i < 0 || i >= len(e.values) {
		return fmt.Errorf("prop: %s: index %d: %w", e.name, i, ErrNoChoice)
	}
	return e.Set(e.values[i].Value)
}

// SetLabel writes the choice with the given label.
func (e *Enum) SetLabel(label string) error {
	for i, ev := range e.values {
		if ev.Label == label {
			return e.SetIndex(i)
		}
	}
	return fmt.Errorf("prop: %s: %q: %w", e.name, label, ErrNoChoice)
}

func (e *Enum) Label() (string, error) {
	v, err := e.Get()
	if err != nil {
		return "", err
	}
	if i := e.Index(v); i >= 0 {
		return e.values[i].Label, nil
	}
	if v == nil {
		return "", nil
	}
	return v.String(), nil
}

package prop

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// Bool is an on/off property.
type Bool struct {
	base
}

// NewBool creates a Bool property.
func NewBool(name, desc string, getter Getter, setter Setter) *Bool {
	return &Bool{base{name: name, desc: desc, getter: getter, setter: setter}}
}

func (*Bool) Kind() Kind { return KindBool }

// Value returns the current state.
func (b *Bool) Value() (bool, error) {
	v, err := b.Get()
	if err != nil {
		return false, err
	}
	bv, ok := v.(capture.Bool)
	if !ok {
		return false, fmt.Errorf("prop: %s: want bool, got %v", b.name, v)
	}
	return bool(bv), nil
}

// SetBool writes the state.
func (b *Bool) SetBool(on bool) error {
	return b.Set(capture.Bool(on))
}

func (b *Bool) Label() (string, error) {
	on, err := b.Value()
	if err != nil {
		return "", err
	}
	if on {
		return "on", nil
	}
	return "off", nil
}

package prop

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// Double is a floating point property, used for input/output module options.
type Double struct {
	base
	suffix string
}

// NewDouble creates a Double property.
func NewDouble(name, desc, suffix string, getter Getter, setter Setter) *Double {
	return &Double{base: base{name: name, desc: desc, getter: getter, setter: setter}, suffix: suffix}
}

func (*Double) Kind() Kind { return KindDouble }

func (d *Double) Suffix() string { return d.suffix }

// SetFloat writes v.
func (d *Double) SetFloat(v float64) error {
	return d.Set(capture.Float64(v))
}

func (d *Double) Label() (string, error) {
	v, err := d.Get()
	if err != nil {
		return "", err
	}
	f, ok := v.(capture.Float64)
	if !ok {
		return "", fmt.Errorf("prop: %s: want float, got %v", d.name, v)
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64) + d.suffix, nil
}

// String is a free text property, used for input/output module options.
type String struct {
	base
}

// NewString creates a String property.
func NewString(name, desc string, getter Getter, setter Setter) *String {
	return &String{base{name: name, desc: desc, getter: getter, setter: setter}}
}

func (*String) Kind() Kind { return KindString }

// SetText writes s.
func (s *String) SetText(text string) error {
	return s.Set(capture.String(text))
}

func (s *String) Label() (string, error) {
	v, err := s.Get()
	if err != nil || v == nil {
		return "", err
	}
	return v.String(), nil
}

// Package prop provides typed, UI-bindable property descriptors. A property
// reads its value through a Getter and writes it through a Setter; both are
// closures supplied by a binding.
package prop

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// Kind names the property variant.
type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindEnum   Kind = "enum"
	KindDouble Kind = "double"
	KindString Kind = "string"
)

// Getter reads the current value.
type Getter func() (capture.Value, error)

// Setter writes a new value.
type Setter func(capture.Value) error

var (
	// ErrOutOfRange is returned when an Int value lies outside its range.
	ErrOutOfRange = errors.New("prop: value out of range")
	// ErrReadOnly is returned by Set on a property without a setter.
	ErrReadOnly = errors.New("prop: property is read-only")
	// ErrNoChoice is returned when an Enum value or index is not offered.
	ErrNoChoice = errors.New("prop: value is not one of the choices")
)

// Property is the common interface of all descriptors.
type Property interface {
	Name() string
	Desc() string
	Kind() Kind
	Get() (capture.Value, error)
	Set(capture.Value) error
	// Label renders the current value for display.
	Label() (string, error)
}

type base struct {
	name   string
	desc   string
	getter Getter
	setter Setter
}

func (b *base) Name() string { return b.name }
func (b *base) Desc() string { return b.desc }

func (b *base) Get() (capture.Value, error) {
	if b.getter == nil {
		return nil, fmt.Errorf("prop: %s: no getter", b.name)
	}
	v, err := b.getter()
	if err != nil {
		return nil, fmt.Errorf("prop: %s: %w", b.name, err)
	}
	return v, nil
}

func (b *base) Set(v capture.Value) error {
	if b.setter == nil {
		return fmt.Errorf("prop: %s: %w", b.name, ErrReadOnly)
	}
	if err := b.setter(v); err != nil {
		return fmt.Errorf("prop: %s: %w", b.name, err)
	}
	return nil
}

// Package binding turns configurable objects into ordered sets of property
// descriptors.
//
// A binding owns the descriptors it creates. Getter and setter closures hold
// a non-owning reference back to the binding, so descriptors must not be used
// after the binding (and the device behind it) has been released.
//
// Device binds a capture device's configuration keys:
//
//	dev := binding.NewDevice(configurable, binding.WithLogger(logger))
//	dev.OnChanged(func() { redraw() })
//	for _, p := range dev.Properties() {
//		label, _ := p.Label()
//		fmt.Println(p.Name(), label)
//	}
//
// InputOutput binds the options of an input or output module and keeps the
// selected values in a map.
package binding

import "github.com/OpenTraceLab/OpenTraceView/pkg/prop"

// Binding holds the properties of one bound object and the listeners for its
// change notifications. It is not safe for concurrent use.
type Binding struct {
	properties []prop.Property
	byName     map[string]prop.Property

	listeners []*listener
}

type listener struct {
	fn func()
}

// Properties returns the bound properties in binding order.
func (b *Binding) Properties() []prop.Property {
	return append([]prop.Property(nil), b.properties...)
}

// Property looks a property up by its display name.
func (b *Binding) Property(name string) (prop.Property, bool) {
	p, ok := b.byName[name]
	return p, ok
}

// OnChanged registers fn to be called after every property write. The
// returned function removes the registration.
func (b *Binding) OnChanged(fn func()) (cancel func()) {
	l := &listener{fn: fn}
	b.listeners = append(b.listeners, l)
	return func() {
		for i, x := range b.listeners {
			if x == l {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Binding) add(p prop.Property) {
	if b.byName == nil {
		b.byName = make(map[string]prop.Property)
	}
	b.properties = append(b.properties, p)
	if _, dup := b.byName[p.Name()]; !dup {
		b.byName[p.Name()] = p
	}
}

// configChanged notifies every listener once.
func (b *Binding) configChanged() {
	for _, l := range append([]*listener(nil), b.listeners...) {
		l.fn()
	}
}

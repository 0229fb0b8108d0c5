package binding

import (
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

// Option configures a Device binding.
type Option func(*Device)

// WithLogger sets the logger used for device-developer diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		if l != nil {
			d.logger = l
		}
	}
}

// Device binds the configuration keys of a capture device to properties.
// Binding never fails: keys that cannot be bound are skipped.
type Device struct {
	Binding

	configurable capture.Configurable
	logger       *slog.Logger

	keys map[prop.Property]*capture.ConfigKey
}

// NewDevice binds every eligible key of c, in the order c reports them.
func NewDevice(c capture.Configurable, opts ...Option) *Device {
	d := &Device{
		configurable: c,
		logger:       slog.Default(),
		keys:         make(map[prop.Property]*capture.ConfigKey),
	}
	for _, opt := range opts {
		opt(d)
	}
	if c == nil {
		return d
	}

	for _, key := range c.ConfigKeys() {
		if p, ok := d.bindKey(key); ok {
			d.add(p)
			d.keys[p] = key
		}
	}
	return d
}

// Configurable returns the bound device.
func (d *Device) Configurable() capture.Configurable { return d.configurable }

// Key returns the configuration key behind p.
func (d *Device) Key(p prop.Property) (*capture.ConfigKey, bool) {
	k, ok := d.keys[p]
	return k, ok
}

// PropertyByKey returns the property bound to the key with the given short
// name, e.g. "limit_frames".
func (d *Device) PropertyByKey(name string) (prop.Property, bool) {
	for _, p := range d.properties {
		if d.keys[p].Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (d *Device) bindKey(key *capture.ConfigKey) (prop.Property, bool) {
	descr, err := key.Description()
	if err != nil {
		descr = key.Name()
	}

	caps := d.configurable.ConfigCapabilities(key)
	if !caps.ReadWrite() {
		if !IsCommonReadOnly(key.ID()) {
			d.logger.Debug("note for device developers: ignoring device configuration capability as it is missing GET and/or SET",
				"key", descr)
		}
		return nil, false
	}

	get := func() (capture.Value, error) {
		return d.configurable.ConfigGet(key)
	}
	set := func(v capture.Value) error {
		if err := d.configurable.ConfigSet(key, v); err != nil {
			return err
		}
		d.configChanged()
		return nil
	}

	s, ok := strategyFor(key.ID())
	if !ok {
		return nil, false
	}

	switch s.kind {
	case strategyBool:
		return prop.NewBool(descr, "", get, set), true
	case strategyInt:
		return prop.NewInt(descr, "", s.suffix, s.rng, get, set, s.special).WithDataType(key.DataType()), true
	case strategyEnum:
		return d.bindEnum(descr, key, caps, get, set, s.printer)
	case strategyConditional:
		if caps.Has(capture.CapList) {
			return d.bindEnum(descr, key, caps, get, set, s.printer)
		}
		return prop.NewInt(descr, "", "", s.fallback, get, set, "").WithDataType(key.DataType()), true
	}
	return nil, false
}

func (d *Device) bindEnum(name string, key *capture.ConfigKey, caps capture.Capabilities,
	get prop.Getter, set prop.Setter, printer Printer) (prop.Property, bool) {
	if !caps.Has(capture.CapList) {
		return nil, false
	}
	if printer == nil {
		printer = PrintValue
	}

	raw, err := d.configurable.ConfigList(key)
	if err != nil {
		d.logger.Debug("listing device key failed", "key", name, "error", err)
		return nil, false
	}

	values := make([]prop.EnumValue, 0, len(raw))
	for _, v := range raw {
		values = append(values, prop.EnumValue{Value: v, Label: printer(v)})
	}
	return prop.NewEnum(name, "", values, get, set), true
}

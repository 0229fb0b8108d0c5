package capture

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotSupported is returned when a device does not offer the requested
// operation on a key.
var ErrNotSupported = errors.New("capture: operation not supported")

// Configurable exposes a device's configuration interface. Calls are
// synchronous; callers serialize access to a single device.
type Configurable interface {
	ConfigKeys() []*ConfigKey
	ConfigCapabilities(key *ConfigKey) Capabilities
	ConfigGet(key *ConfigKey) (Value, error)
	ConfigSet(key *ConfigKey, v Value) error
	ConfigList(key *ConfigKey) ([]Value, error)
}

// Device is a configurable capture source that can be opened and closed.
type Device interface {
	Configurable
	Info() DeviceInfo
	Open() error
	Close() error
}

// DeviceInfo carries the identification strings of a device.
type DeviceInfo struct {
	Driver       string
	Vendor       string
	Model        string
	Version      string
	SerialNumber string
	Connection   string
}

// DisplayNames names every device of a list, comparing each entry with the
// entries at the other positions.
func DisplayNames(infos []DeviceInfo) []string {
	names := make([]string, len(infos))
	others := make([]DeviceInfo, 0, len(infos))
	for idx, info := range infos {
		others = append(others[:0], infos[:idx]...)
		others = append(others, infos[idx+1:]...)
		names[idx] = info.DisplayName(others)
	}
	return names
}

// FullName joins every identification field.
func (i DeviceInfo) FullName() string {
	parts := i.baseParts(true)
	if i.SerialNumber != "" {
		parts = append(parts, "[S/N: "+i.SerialNumber+"]")
	}
	if i.Connection != "" {
		parts = append(parts, "("+i.Connection+")")
	}
	return strings.Join(parts, " ")
}

// DisplayName returns the vendor and model, adding the serial number or
// connection only when a device in others shares vendor and model. others
// must not contain the device itself.
func (i DeviceInfo) DisplayName(others []DeviceInfo) string {
	multiple := false
	for _, o := range others {
		if o.Vendor == i.Vendor && o.Model == i.Model {
			multiple = true
			break
		}
	}

	parts := i.baseParts(false)
	if multiple {
		if i.SerialNumber != "" {
			parts = append(parts, "[S/N: "+i.SerialNumber+"]")
		}
		if i.Connection != "" {
			parts = append(parts, "("+i.Connection+")")
		}
	}
	if len(parts) == 0 {
		return i.Driver
	}
	return strings.Join(parts, " ")
}

func (i DeviceInfo) baseParts(withVersion bool) []string {
	var parts []string
	for _, s := range []string{i.Vendor, i.Model} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if withVersion && i.Version != "" {
		parts = append(parts, i.Version)
	}
	return parts
}

// FindKey returns the key with the given id among c's keys.
func FindKey(c Configurable, id KeyID) (*ConfigKey, bool) {
	for _, k := range c.ConfigKeys() {
		if k.ID() == id {
			return k, true
		}
	}
	return nil, false
}

// ReadConfig reads the value of key id from c, returning def when the key is
// absent, not readable, fails or holds a value of another type.
func ReadConfig[T Value](c Configurable, id KeyID, def T) T {
	key, ok := FindKey(c, id)
	if !ok || !c.ConfigCapabilities(key).Has(CapGet) {
		return def
	}
	v, err := c.ConfigGet(key)
	if err != nil {
		return def
	}
	typed, ok := v.(T)
	if !ok {
		return def
	}
	return typed
}

// SetConfig writes v to key id on c.
func SetConfig(c Configurable, id KeyID, v Value) error {
	key, ok := FindKey(c, id)
	if !ok {
		return fmt.Errorf("capture: key %d: %w", id, ErrNotSupported)
	}
	if !c.ConfigCapabilities(key).Has(CapSet) {
		return fmt.Errorf("capture: set %s: %w", key.Name(), ErrNotSupported)
	}
	return c.ConfigSet(key, v)
}

package capture

import "fmt"

// SimKey describes one key exposed by a SimDevice.
type SimKey struct {
	Key   *ConfigKey
	Caps  Capabilities
	Value Value
	List  []Value

	// ListErr, when set, is returned by ConfigList for this key.
	ListErr error
}

// SetOp records a ConfigSet call.
type SetOp struct {
	Key   KeyID
	Name  string
	Value Value
}

// SetHook lets tests intercept writes; a non-nil error rejects the value.
type SetHook func(key *ConfigKey, v Value) error

// SimDevice is an in-memory device. It keeps key order, records every write
// and can be scripted through OnSet and SimKey.ListErr.
type SimDevice struct {
	InfoData DeviceInfo

	OnSet SetHook

	keys   []*SimKey
	byKey  map[*ConfigKey]*SimKey
	sets   []SetOp
	opened bool
}

// NewSimDevice constructs a simulator exposing keys in the given order.
func NewSimDevice(info DeviceInfo, keys ...*SimKey) *SimDevice {
	d := &SimDevice{
		InfoData: info,
		byKey:    make(map[*ConfigKey]*SimKey, len(keys)),
	}
	for _, k := range keys {
		d.AddKey(k)
	}
	return d
}

// AddKey appends a key, replacing an earlier entry for the same key.
func (d *SimDevice) AddKey(k *SimKey) {
	if old, ok := d.byKey[k.Key]; ok {
		*old = *k
		return
	}
	d.keys = append(d.keys, k)
	d.byKey[k.Key] = k
}

// Key returns the simulator entry for id.
func (d *SimDevice) Key(id KeyID) (*SimKey, bool) {
	for _, k := range d.keys {
		if k.Key.ID() == id {
			return k, true
		}
	}
	return nil, false
}

// Sets returns a copy of the recorded writes.
func (d *SimDevice) Sets() []SetOp {
	return append([]SetOp(nil), d.sets...)
}

func (d *SimDevice) Info() DeviceInfo { return d.InfoData }

func (d *SimDevice) Open() error {
	d.opened = true
	return nil
}

func (d *SimDevice) Close() error {
	d.opened = false
	return nil
}

// IsOpen reports whether Open has been called without a matching Close.
func (d *SimDevice) IsOpen() bool { return d.opened }

func (d *SimDevice) ConfigKeys() []*ConfigKey {
	out := make([]*ConfigKey, len(d.keys))
	for i, k := range d.keys {
		out[i] = k.Key
	}
	return out
}

func (d *SimDevice) ConfigCapabilities(key *ConfigKey) Capabilities {
	if k, ok := d.byKey[key]; ok {
		return k.Caps
	}
	return 0
}

func (d *SimDevice) ConfigGet(key *ConfigKey) (Value, error) {
	k, ok := d.byKey[key]
	if !ok || !k.Caps.Has(CapGet) {
		return nil, fmt.Errorf("capture: get %s: %w", key.Name(), ErrNotSupported)
	}
	return k.Value, nil
}

func (d *SimDevice) ConfigSet(key *ConfigKey, v Value) error {
	k, ok := d.byKey[key]
	if !ok || !k.Caps.Has(CapSet) {
		return fmt.Errorf("capture: set %s: %w", key.Name(), ErrNotSupported)
	}
	if d.OnSet != nil {
		if err := d.OnSet(key, v); err != nil {
			return err
		}
	}
	k.Value = v
	d.sets = append(d.sets, SetOp{Key: key.ID(), Name: key.Name(), Value: v})
	return nil
}

func (d *SimDevice) ConfigList(key *ConfigKey) ([]Value, error) {
	k, ok := d.byKey[key]
	if !ok || !k.Caps.Has(CapList) {
		return nil, fmt.Errorf("capture: list %s: %w", key.Name(), ErrNotSupported)
	}
	if k.ListErr != nil {
		return nil, k.ListErr
	}
	return append([]Value(nil), k.List...), nil
}

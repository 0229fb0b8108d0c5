// Package profile loads simulated capture devices from profile files.
//
// A profile declares the device information and every configuration key the
// device exposes, with capabilities, current value and listed values:
//
//	device "Demo" "Logic" serial "0001" conn "usb/1.4" {
//	  key samplerate get set list = 1000000 [20000, 1000000];
//	  key limit_frames get set = 0;
//	  key voltage_threshold get set list = (-5.0, 5.0) [(-5.0, 5.0), (0.0, 3.3)];
//	  key timebase get set list = 1/1000 [1/1000000, 1/1000];
//	  key conn get = "usb/1.4";
//	}
//
// A key marked "fails" reports an error when its values are listed.
package profile

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

//go:embed demo.otp
var demoProfile string

var (
	// ErrUnknownKey is returned for key names the capture library does not define.
	ErrUnknownKey = errors.New("profile: unknown configuration key")

	// ErrListFailed is returned by ConfigList for keys declared with "fails".
	ErrListFailed = errors.New("profile: listing values failed")
)

// DefaultDriver is the driver name of devices built from a profile.
const DefaultDriver = "profile"

// Load parses the profile at path and builds its devices.
func Load(path string) ([]*capture.SimDevice, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// LoadString parses profile text and builds its devices.
func LoadString(src string) ([]*capture.SimDevice, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.ParseString(src)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// Demo builds the built-in demo device.
func Demo() (*capture.SimDevice, error) {
	devs, err := LoadString(demoProfile)
	if err != nil {
		return nil, fmt.Errorf("demo profile: %w", err)
	}
	if len(devs) == 0 {
		return nil, fmt.Errorf("demo profile: no device")
	}
	return devs[0], nil
}

// Build creates a simulator for every device in the file.
func (f *File) Build() ([]*capture.SimDevice, error) {
	devs := make([]*capture.SimDevice, 0, len(f.Devices))
	for _, d := range f.Devices {
		dev, err := d.Build()
		if err != nil {
			return nil, err
		}
		devs = append(devs, dev)
	}
	return devs, nil
}

// Build creates the simulator for one device declaration.
func (d *DeviceDecl) Build() (*capture.SimDevice, error) {
	info := capture.DeviceInfo{
		Driver: DefaultDriver,
		Vendor: d.Vendor,
		Model:  d.Model,
	}
	for _, a := range d.Attrs {
		switch a.Name {
		case "driver":
			info.Driver = a.Value
		case "serial":
			info.SerialNumber = a.Value
		case "conn":
			info.Connection = a.Value
		case "version":
			info.Version = a.Value
		default:
			return nil, fmt.Errorf("%s: unknown device attribute %q", a.Pos, a.Name)
		}
	}

	dev := capture.NewSimDevice(info)
	seen := make(map[string]bool, len(d.Keys))
	for _, k := range d.Keys {
		if seen[k.Name] {
			return nil, fmt.Errorf("%s: key %q declared twice", k.Pos, k.Name)
		}
		seen[k.Name] = true

		sk, err := k.build()
		if err != nil {
			return nil, err
		}
		dev.AddKey(sk)
	}
	return dev, nil
}

func (k *KeyDecl) build() (*capture.SimKey, error) {
	key, ok := capture.KeyByName(k.Name)
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", k.Pos, ErrUnknownKey, k.Name)
	}

	var caps []capture.Capability
	for _, c := range k.Caps {
		switch c {
		case "get":
			caps = append(caps, capture.CapGet)
		case "set":
			caps = append(caps, capture.CapSet)
		case "list":
			caps = append(caps, capture.CapList)
		}
	}
	sk := &capture.SimKey{Key: key, Caps: capture.Caps(caps...)}

	if k.Value != nil {
		v, err := k.Value.value(key.DataType())
		if err != nil {
			return nil, fmt.Errorf("%s: key %s: %w", k.Value.Pos, k.Name, err)
		}
		sk.Value = v
	}
	for _, lit := range k.Choices {
		v, err := lit.value(key.DataType())
		if err != nil {
			return nil, fmt.Errorf("%s: key %s: %w", lit.Pos, k.Name, err)
		}
		sk.List = append(sk.List, v)
	}
	if k.Fails {
		sk.ListErr = ErrListFailed
	}
	return sk, nil
}

// value converts the literal to the key's data type.
func (l *Literal) value(t capture.DataType) (capture.Value, error) {
	switch {
	case l.Range != nil:
		if t == capture.TypeDoubleRange {
			return capture.DoubleRange{Lo: l.Range.Lo, Hi: l.Range.Hi}, nil
		}
		return nil, mismatch("range", t)

	case l.Rational != nil:
		if t == capture.TypeRational {
			return capture.ParseValue(t, l.Rational.P+"/"+l.Rational.Q)
		}
		return nil, mismatch("rational", t)

	case l.Float != nil:
		if t == capture.TypeFloat {
			return capture.Float64(*l.Float), nil
		}
		return nil, mismatch("float", t)

	case l.Int != nil:
		switch t {
		case capture.TypeInt64, capture.TypeUint64, capture.TypeFloat, capture.TypeRational:
			return capture.ParseValue(t, *l.Int)
		}
		return nil, mismatch("integer", t)

	case l.Str != nil:
		if t == capture.TypeString {
			return capture.String(*l.Str), nil
		}
		return nil, mismatch("string", t)

	case l.Bool != nil:
		if t == capture.TypeBool {
			return capture.Bool(*l.Bool == "true"), nil
		}
		return nil, mismatch("bool", t)
	}
	return nil, errors.New("empty value")
}

func mismatch(lit string, t capture.DataType) error {
	return fmt.Errorf("%s value does not fit type %s", lit, t)
}

package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/gousb"
)

func TestCapabilities(t *testing.T) {
	caps := Caps(CapGet, CapList)
	if !caps.Has(CapGet) || !caps.Has(CapList) {
		t.Fatalf("caps %v missing GET or LIST", caps)
	}
	if caps.Has(CapSet) || caps.ReadWrite() {
		t.Fatalf("caps %v should not be read/write", caps)
	}
	if got := Caps(CapGet, CapSet, CapList).String(); got != "GET|SET|LIST" {
		t.Fatalf("String() = %q", got)
	}
	if got := Capabilities(0).String(); got != "-" {
		t.Fatalf("empty String() = %q", got)
	}
}

func TestKeyLookup(t *testing.T) {
	k, ok := KeyByName("limit_frames")
	if !ok || k.ID() != KeyLimitFrames {
		t.Fatalf("KeyByName(limit_frames) = %v, %v", k, ok)
	}
	if d, err := k.Description(); err != nil || d != "Frame limit" {
		t.Fatalf("Description() = %q, %v", d, err)
	}
	if _, ok := LookupKey(KeyID(1)); ok {
		t.Fatalf("expected unknown id to miss")
	}

	custom := NewKey(KeyID(90000), "vendor_mode", "", TypeString)
	if _, err := custom.Description(); !errors.Is(err, ErrNoDescription) {
		t.Fatalf("expected ErrNoDescription, got %v", err)
	}

	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1].ID() >= keys[i].ID() {
			t.Fatalf("Keys() not sorted at %d", i)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		typ  DataType
		in   string
		want Value
	}{
		{TypeBool, "on", Bool(true)},
		{TypeBool, "0", Bool(false)},
		{TypeInt64, "-12", Int64(-12)},
		{TypeUint64, "0x10", Uint64(16)},
		{TypeFloat, "3.3", Float64(3.3)},
		{TypeString, " rising ", String("rising")},
		{TypeRational, "1/1000", Rational{P: 1, Q: 1000}},
		{TypeRational, "5", Rational{P: 5, Q: 1}},
		{TypeDoubleRange, "-5:5", DoubleRange{Lo: -5, Hi: 5}},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.typ, tt.in)
		if err != nil {
			t.Fatalf("ParseValue(%s, %q) error: %v", tt.typ, tt.in, err)
		}
		if !Equal(got, tt.want) {
			t.Errorf("ParseValue(%s, %q) = %v, want %v", tt.typ, tt.in, got, tt.want)
		}
	}

	bad := []struct {
		typ DataType
		in  string
	}{
		{TypeBool, "maybe"},
		{TypeUint64, "-1"},
		{TypeRational, "1/0"},
		{TypeDoubleRange, "5"},
		{TypeUnknown, "x"},
	}
	for _, tt := range bad {
		if _, err := ParseValue(tt.typ, tt.in); err == nil {
			t.Errorf("ParseValue(%s, %q) expected error", tt.typ, tt.in)
		}
	}
}

func TestIntConversions(t *testing.T) {
	if n, err := AsInt64(Uint64(42)); err != nil || n != 42 {
		t.Fatalf("AsInt64(Uint64) = %d, %v", n, err)
	}
	if _, err := AsInt64(String("x")); err == nil {
		t.Fatalf("expected error for string")
	}
	if _, err := AsInt64(Uint64(1 << 63)); err == nil {
		t.Fatalf("expected overflow error")
	}

	v, err := IntLike(Uint64(3), 7)
	if err != nil || v != Uint64(7) {
		t.Fatalf("IntLike(Uint64) = %v, %v", v, err)
	}
	if _, err := IntLike(Uint64(3), -1); err == nil {
		t.Fatalf("expected error for negative unsigned")
	}
	if v, _ := IntLike(nil, -1); v != Int64(-1) {
		t.Fatalf("IntLike(nil) = %v", v)
	}
}

func TestIntOfType(t *testing.T) {
	tests := []struct {
		typ     DataType
		in      int64
		want    Value
		wantErr bool
	}{
		{TypeInt64, -4, Int64(-4), false},
		{TypeUint64, 4, Uint64(4), false},
		{TypeUint64, -4, nil, true},
		{TypeFloat, 2, Float64(2), false},
		{TypeRational, 3, Rational{P: 3, Q: 1}, false},
		{TypeRational, -3, nil, true},
		{TypeString, 1, nil, true},
	}
	for _, tt := range tests {
		got, err := IntOfType(tt.typ, tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("IntOfType(%s, %d) error = %v, wantErr %v", tt.typ, tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("IntOfType(%s, %d) = %#v, want %#v", tt.typ, tt.in, got, tt.want)
		}
	}
}

func TestPeriodString(t *testing.T) {
	tests := []struct {
		p, q uint64
		want string
	}{
		{1, 1000, "1 ms"},
		{1, 1_000_000, "1 us"},
		{10, 1, "10 s"},
	}
	for _, tt := range tests {
		if got := PeriodString(tt.p, tt.q); got != tt.want {
			t.Errorf("PeriodString(%d, %d) = %q, want %q", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestVoltageString(t *testing.T) {
	tests := []struct {
		p, q uint64
		want string
	}{
		{500, 1000, "500mV"},
		{5, 1, "5V"},
		{1, 2, "0.5V"},
		{1, 0, "invalid voltage"},
	}
	for _, tt := range tests {
		if got := VoltageString(tt.p, tt.q); got != tt.want {
			t.Errorf("VoltageString(%d, %d) = %q, want %q", tt.p, tt.q, got, tt.want)
		}
	}
}

func newTestDevice() *SimDevice {
	rw := Caps(CapGet, CapSet)
	return NewSimDevice(
		DeviceInfo{Driver: "sim", Vendor: "OpenTrace", Model: "Test logic", Connection: "sim"},
		&SimKey{Key: MustKey(KeySampleRate), Caps: Caps(CapGet, CapSet, CapList), Value: Uint64(1_000_000),
			List: []Value{Uint64(20_000), Uint64(1_000_000)}},
		&SimKey{Key: MustKey(KeyLimitFrames), Caps: rw, Value: Uint64(0)},
		&SimKey{Key: MustKey(KeyRLE), Caps: rw, Value: Bool(true)},
		&SimKey{Key: MustKey(KeyConn), Caps: Caps(CapGet), Value: String("sim")},
		&SimKey{Key: MustKey(KeyNumLogicChannels), Caps: Caps(CapGet), Value: Int64(8)},
	)
}

func TestSimDevice(t *testing.T) {
	dev := newTestDevice()
	tf := MustKey(KeyLimitFrames)

	if err := dev.ConfigSet(tf, Uint64(5)); err != nil {
		t.Fatalf("ConfigSet returned error: %v", err)
	}
	v, err := dev.ConfigGet(tf)
	if err != nil || v != Uint64(5) {
		t.Fatalf("ConfigGet = %v, %v", v, err)
	}
	if sets := dev.Sets(); len(sets) != 1 || sets[0].Key != KeyLimitFrames || sets[0].Name != "limit_frames" {
		t.Fatalf("unexpected recorded sets: %+v", sets)
	}

	conn := MustKey(KeyConn)
	if err := dev.ConfigSet(conn, String("x")); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for read-only key, got %v", err)
	}
	if _, err := dev.ConfigList(tf); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported for list, got %v", err)
	}

	dev.OnSet = func(key *ConfigKey, v Value) error { return errors.New("rejected") }
	if err := dev.ConfigSet(tf, Uint64(6)); err == nil {
		t.Fatalf("expected hook rejection")
	}
	if v, _ := dev.ConfigGet(tf); v != Uint64(5) {
		t.Fatalf("rejected write changed value to %v", v)
	}
}

func TestSimDeviceRecordsCustomKeyName(t *testing.T) {
	k := NewKey(KeyID(90001), "vendor_gain", "Vendor gain", TypeUint64)
	dev := NewSimDevice(DeviceInfo{}, &SimKey{Key: k, Caps: Caps(CapGet, CapSet), Value: Uint64(1)})
	if err := dev.ConfigSet(k, Uint64(2)); err != nil {
		t.Fatalf("ConfigSet returned error: %v", err)
	}
	sets := dev.Sets()
	if len(sets) != 1 || sets[0].Name != "vendor_gain" || sets[0].Key != KeyID(90001) {
		t.Fatalf("unexpected recorded sets: %+v", sets)
	}
}

func TestSimDeviceListError(t *testing.T) {
	boom := errors.New("boom")
	k := MustKey(KeyCoupling)
	dev := NewSimDevice(DeviceInfo{}, &SimKey{Key: k, Caps: Caps(CapGet, CapSet, CapList), ListErr: boom})
	if _, err := dev.ConfigList(k); !errors.Is(err, boom) {
		t.Fatalf("ConfigList error = %v, want boom", err)
	}
}

func TestReadConfig(t *testing.T) {
	dev := newTestDevice()
	if got := ReadConfig(dev, KeySampleRate, Uint64(0)); got != 1_000_000 {
		t.Fatalf("samplerate = %d", got)
	}
	if got := ReadConfig(dev, KeyBufferSize, Uint64(99)); got != 99 {
		t.Fatalf("missing key should give default, got %d", got)
	}
	// Stored as Int64, asked as Uint64.
	if got := ReadConfig(dev, KeyNumLogicChannels, Uint64(3)); got != 3 {
		t.Fatalf("type mismatch should give default, got %d", got)
	}
	if err := SetConfig(dev, KeyRLE, Bool(false)); err != nil {
		t.Fatalf("SetConfig returned error: %v", err)
	}
	if got := ReadConfig(dev, KeyRLE, Bool(true)); got != false {
		t.Fatalf("rle = %v after SetConfig", got)
	}
	if err := SetConfig(dev, KeyConn, String("x")); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestDeviceNames(t *testing.T) {
	a := DeviceInfo{Vendor: "Saleae", Model: "Logic", Version: "1.0", SerialNumber: "42", Connection: "usb/1.4"}
	b := DeviceInfo{Vendor: "Saleae", Model: "Logic", Connection: "usb/1.5"}
	c := DeviceInfo{Vendor: "Hantek", Model: "6022BE"}

	if got := a.FullName(); got != "Saleae Logic 1.0 [S/N: 42] (usb/1.4)" {
		t.Fatalf("FullName() = %q", got)
	}
	if got := a.DisplayName([]DeviceInfo{c}); got != "Saleae Logic" {
		t.Fatalf("DisplayName() single = %q", got)
	}
	if got := a.DisplayName([]DeviceInfo{b, c}); got != "Saleae Logic [S/N: 42] (usb/1.4)" {
		t.Fatalf("DisplayName() multiple = %q", got)
	}
	if got := (DeviceInfo{Driver: "demo"}).DisplayName(nil); got != "demo" {
		t.Fatalf("DisplayName() fallback = %q", got)
	}
}

func TestDisplayNamesIdenticalDevices(t *testing.T) {
	twin := DeviceInfo{Vendor: "Saleae", Model: "Logic", Connection: "usb/1.4"}
	c := DeviceInfo{Vendor: "Hantek", Model: "6022BE"}

	got := DisplayNames([]DeviceInfo{twin, twin, c})
	want := []string{"Saleae Logic (usb/1.4)", "Saleae Logic (usb/1.4)", "Hantek 6022BE"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := DisplayNames([]DeviceInfo{twin}); got[0] != "Saleae Logic" {
		t.Errorf("single device name = %q", got[0])
	}
}

func TestInputFileRejectsNilValue(t *testing.T) {
	f := NewInputFile("capture.csv", "csv", nil)
	if err := f.ConfigSet(MustKey(KeySampleRate), nil); err == nil {
		t.Fatalf("expected error for nil value")
	}
}

func TestInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.csv")
	if err := os.WriteFile(path, []byte("0,1\n1,0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f := NewInputFile(path, "csv", map[string]Value{
		"numchannels": Uint64(12),
		"samplerate":  Uint64(1000),
	})
	if err := f.Open(); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if f.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", f.Size())
	}

	if got := ReadConfig(f, KeyCaptureUnitSize, Uint64(0)); got != 2 {
		t.Fatalf("unit size = %d, want 2", got)
	}
	if got := ReadConfig(f, KeyCaptureFile, String("")); string(got) != path {
		t.Fatalf("capture file = %q", got)
	}
	if got := ReadConfig(f, KeyNumLogicChannels, Int64(0)); got != 12 {
		t.Fatalf("num channels = %d", got)
	}
	if got := ReadConfig(f, KeySampleRate, Uint64(0)); got != 1000 {
		t.Fatalf("samplerate = %d", got)
	}
	if err := SetConfig(f, KeyCaptureFile, String("other")); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("expected read-only capture file, got %v", err)
	}

	missing := NewInputFile(filepath.Join(t.TempDir(), "nope"), "csv", nil)
	if err := missing.Open(); err == nil {
		t.Fatalf("expected error opening missing file")
	}
}

func TestClassifyUSBDevice(t *testing.T) {
	info, ok := classifyUSBDevice(&gousb.DeviceDesc{Bus: 1, Address: 4, Vendor: 0x0925, Product: 0x3881})
	if !ok {
		t.Fatalf("expected Saleae Logic to be recognised")
	}
	if info.Driver != "fx2lafw" || info.Connection != "usb/1.4" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if _, ok := classifyUSBDevice(&gousb.DeviceDesc{Vendor: 0x1234, Product: 0x5678}); ok {
		t.Fatalf("unknown device should not match")
	}
}

package profile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/binding"
	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

func TestParseDevice(t *testing.T) {
	input := `
	# logic analyzer
	device "Demo" "Logic" serial "0001" conn "usb/1.4" {
	  key samplerate get set list = 1000000 [20000, 1000000];
	  key limit_frames get set = 0;
	  key voltage_threshold get set list = (-5.0, 5.0) [(-5.0, 5.0), (0.0, 3.3)];
	  key timebase get set list = 1/1000 [1/1000000, 1/1000];
	  key conn get = "usb/1.4";
	}
	`

	devs, err := LoadString(input)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(devs) != 1 {
		t.Fatalf("Expected 1 device, got %d", len(devs))
	}
	dev := devs[0]

	info := dev.Info()
	if info.Vendor != "Demo" || info.Model != "Logic" {
		t.Errorf("Expected Demo Logic, got %s %s", info.Vendor, info.Model)
	}
	if info.SerialNumber != "0001" || info.Connection != "usb/1.4" || info.Driver != DefaultDriver {
		t.Errorf("Unexpected info %+v", info)
	}

	var names []string
	for _, k := range dev.ConfigKeys() {
		names = append(names, k.Name())
	}
	if got := strings.Join(names, " "); got != "samplerate limit_frames voltage_threshold timebase conn" {
		t.Errorf("Keys in declaration order, got %q", got)
	}

	sr, _ := dev.Key(capture.KeySampleRate)
	if sr.Value != capture.Uint64(1000000) {
		t.Errorf("samplerate = %v (%T)", sr.Value, sr.Value)
	}
	if !sr.Caps.Has(capture.CapList) || len(sr.List) != 2 {
		t.Errorf("samplerate caps %s list %v", sr.Caps, sr.List)
	}

	vt, _ := dev.Key(capture.KeyVoltageThreshold)
	if vt.Value != (capture.DoubleRange{Lo: -5, Hi: 5}) {
		t.Errorf("voltage_threshold = %v", vt.Value)
	}
	if vt.List[1] != (capture.DoubleRange{Lo: 0, Hi: 3.3}) {
		t.Errorf("voltage_threshold list = %v", vt.List)
	}

	tb, _ := dev.Key(capture.KeyTimebase)
	if tb.Value != (capture.Rational{P: 1, Q: 1000}) {
		t.Errorf("timebase = %v", tb.Value)
	}

	conn, _ := dev.Key(capture.KeyConn)
	if conn.Caps != capture.Caps(capture.CapGet) || conn.Value != capture.String("usb/1.4") {
		t.Errorf("conn = %s %v", conn.Caps, conn.Value)
	}
}

func TestParseMultipleDevices(t *testing.T) {
	input := `
	device "A" { key rle get set = true; }
	device "B" "Scope" version "1.2" driver "rigol-ds" {}
	`
	devs, err := LoadString(input)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(devs) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devs))
	}
	if got := devs[1].Info(); got.Driver != "rigol-ds" || got.Version != "1.2" {
		t.Errorf("Unexpected info %+v", got)
	}
	rle, _ := devs[0].Key(capture.KeyRLE)
	if rle.Value != capture.Bool(true) {
		t.Errorf("rle = %v", rle.Value)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		text  string
	}{
		{"unknown key", `device "A" { key warp_drive get = 1; }`, ErrUnknownKey, ""},
		{"type mismatch", `device "A" { key rle get = "yes"; }`, nil, "does not fit type bool"},
		{"range on integer key", `device "A" { key samplerate get = (1.0, 2.0); }`, nil, "does not fit type uint64"},
		{"negative unsigned", `device "A" { key samplerate get = -1; }`, nil, "invalid unsigned"},
		{"unknown attribute", `device "A" colour "red" {}`, nil, "unknown device attribute"},
		{"duplicate key", `device "A" { key rle get = true; key rle get = false; }`, nil, "declared twice"},
		{"syntax", `device "A" { key rle get = true }`, nil, "parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString(tt.input)
			if err == nil {
				t.Fatalf("Expected error for %q", tt.input)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error %v is not %v", err, tt.want)
			}
			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Errorf("error %q does not mention %q", err, tt.text)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.otp")
	src := `device "Bench" "PSU" { key probe_factor get set list = 10 [1, 10]; }`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	devs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(devs) != 1 || devs[0].Info().Model != "PSU" {
		t.Fatalf("Unexpected devices %v", devs)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.otp")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDemoProfileBinding(t *testing.T) {
	dev, err := Demo()
	if err != nil {
		t.Fatalf("Demo: %v", err)
	}

	avg, _ := dev.Key(capture.KeyAvgSamples)
	if !errors.Is(avg.ListErr, ErrListFailed) {
		t.Errorf("avg_samples should fail listing, got %v", avg.ListErr)
	}

	b := binding.NewDevice(dev)
	var names []string
	for _, p := range b.Properties() {
		names = append(names, p.Name())
	}
	want := []string{
		"Pre-trigger capture ratio",
		"Frame limit",
		"Pattern",
		"Time base",
		"Volts/div",
		"Voltage threshold",
		"Coupling",
		"Probe factor",
		"Averaging",
		"Run length encoding",
	}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("properties = %q, want %q", names, want)
	}
}

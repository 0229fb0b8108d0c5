package binding

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

func TestInputOutputBindsByDefaultType(t *testing.T) {
	io := NewInputOutput(map[string]IOOption{
		"samplerate":  {ID: "samplerate", Name: "Sample rate", Default: capture.Uint64(0)},
		"header":      {ID: "header", Name: "Header", Default: capture.Bool(true)},
		"format":      {ID: "format", Name: "Format", Default: capture.String("bin"), Values: []capture.Value{capture.String("bin"), capture.String("hex")}},
		"scale":       {ID: "scale", Default: capture.Float64(1.0)},
		"column_fmts": {ID: "column_fmts", Name: "Column formats", Default: capture.String("*l")},
		"opaque":      {ID: "opaque", Name: "Opaque", Default: capture.Rational{P: 1, Q: 2}},
	})

	props := io.Properties()
	want := []struct {
		name string
		kind prop.Kind
	}{
		{"Column formats", prop.KindString},
		{"Format", prop.KindEnum},
		{"Header", prop.KindBool},
		{"Sample rate", prop.KindInt},
		{"scale", prop.KindDouble},
	}
	if len(props) != len(want) {
		t.Fatalf("got %d properties (%v), want %d", len(props), names(props), len(want))
	}
	for i, w := range want {
		if props[i].Name() != w.name || props[i].Kind() != w.kind {
			t.Errorf("property %d = %s/%s, want %s/%s", i, props[i].Name(), props[i].Kind(), w.name, w.kind)
		}
	}

	opts := io.Options()
	if len(opts) != 6 {
		t.Fatalf("options = %v, want all six defaults", opts)
	}
	if opts["opaque"] != (capture.Rational{P: 1, Q: 2}) {
		t.Fatalf("unbound option lost its default: %v", opts["opaque"])
	}
}

func TestInputOutputSetUpdatesOptions(t *testing.T) {
	io := NewInputOutput(map[string]IOOption{
		"format": {ID: "format", Name: "Format", Default: capture.String("bin"),
			Values: []capture.Value{capture.String("bin"), capture.String("hex")}},
	})
	var notified int
	io.OnChanged(func() { notified++ })

	p, ok := io.Property("Format")
	if !ok {
		t.Fatalf("Format not bound")
	}
	if err := p.(*prop.Enum).SetLabel("hex"); err != nil {
		t.Fatalf("SetLabel returned error: %v", err)
	}
	if got := io.Options()["format"]; got != capture.String("hex") {
		t.Fatalf("format option = %v", got)
	}
	if notified != 1 {
		t.Fatalf("notified = %d", notified)
	}
	if id, ok := io.OptionID(p); !ok || id != "format" {
		t.Fatalf("OptionID = %q, %v", id, ok)
	}

	// Options returns a copy.
	opts := io.Options()
	opts["format"] = capture.String("oct")
	if got := io.Options()["format"]; got != capture.String("hex") {
		t.Fatalf("Options() leaked internal map")
	}
}

func TestPrinters(t *testing.T) {
	tests := []struct {
		name    string
		printer Printer
		in      capture.Value
		want    string
	}{
		{"threshold", PrintVoltageThreshold, capture.DoubleRange{Lo: -5.0, Hi: 5.0}, "L<-5.0V H>5.0V"},
		{"threshold rounding", PrintVoltageThreshold, capture.DoubleRange{Lo: 0.24, Hi: 3.3}, "L<0.2V H>3.3V"},
		{"probe", PrintProbeFactor, capture.Uint64(10), "10x"},
		{"averages", PrintAverages, capture.Uint64(128), "128"},
		{"timebase", PrintTimebase, capture.Rational{P: 1, Q: 1000}, "1 ms"},
		{"vdiv", PrintVDiv, capture.Rational{P: 500, Q: 1000}, "500mV"},
		{"wrong type falls back", PrintProbeFactor, capture.String("x"), "x"},
		{"nil", PrintValue, nil, ""},
	}
	for _, tt := range tests {
		if got := tt.printer(tt.in); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

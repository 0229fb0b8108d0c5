package prop

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// cell is a stand-in for a device value.
type cell struct {
	v    capture.Value
	sets int
}

func (c *cell) get() (capture.Value, error) { return c.v, nil }

func (c *cell) set(v capture.Value) error {
	c.v = v
	c.sets++
	return nil
}

func TestIntRangeAndSpecialValue(t *testing.T) {
	c := &cell{v: capture.Uint64(0)}
	p := NewInt("Frame limit", "", "", &Range{Min: 0, Max: 1_000_000}, c.get, c.set, "No Limit")

	if label, err := p.Label(); err != nil || label != "No Limit" {
		t.Fatalf("Label() = %q, %v; want No Limit", label, err)
	}
	if got := p.Format(25); got != "25" {
		t.Fatalf("Format(25) = %q", got)
	}

	if err := p.SetInt(1_000_001); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("SetInt above range: err = %v, want ErrOutOfRange", err)
	}
	if err := p.SetInt(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("SetInt below range: err = %v, want ErrOutOfRange", err)
	}
	if c.sets != 0 || c.v != capture.Uint64(0) {
		t.Fatalf("rejected values reached the device: sets=%d v=%v", c.sets, c.v)
	}

	if err := p.SetInt(1_000_000); err != nil {
		t.Fatalf("SetInt at max returned error: %v", err)
	}
	if c.v != capture.Uint64(1_000_000) {
		t.Fatalf("device value = %#v, want Uint64(1000000)", c.v)
	}
	if rng, ok := p.Range(); !ok || rng.Max != 1_000_000 || rng.Min != 0 {
		t.Fatalf("Range() = %v, %v", rng, ok)
	}
}

func TestIntSuffixAndUnbounded(t *testing.T) {
	c := &cell{v: capture.Int64(-3)}
	p := NewInt("Offset", "", "%", nil, c.get, c.set, "")
	if label, _ := p.Label(); label != "-3%" {
		t.Fatalf("Label() = %q", label)
	}
	if err := p.SetInt(-500); err != nil {
		t.Fatalf("unbounded SetInt returned error: %v", err)
	}
	if c.v != capture.Int64(-500) {
		t.Fatalf("device value = %#v", c.v)
	}
	if _, ok := p.Range(); ok {
		t.Fatalf("expected no range")
	}
}

func TestIntDataType(t *testing.T) {
	// No current value: the declared type decides the representation.
	c := &cell{}
	p := NewInt("Frame limit", "", "", nil, c.get, c.set, "").WithDataType(capture.TypeUint64)
	if err := p.SetInt(5); err != nil {
		t.Fatalf("SetInt returned error: %v", err)
	}
	if c.v != capture.Uint64(5) {
		t.Fatalf("device value = %#v, want Uint64(5)", c.v)
	}
	if err := p.SetInt(-1); err == nil {
		t.Fatalf("expected error for negative unsigned value")
	}
	if p.DataType() != capture.TypeUint64 {
		t.Fatalf("DataType() = %s", p.DataType())
	}
}

func TestIntSetReportsGetterError(t *testing.T) {
	boom := errors.New("read failed")
	c := &cell{}
	get := func() (capture.Value, error) { return nil, boom }
	p := NewInt("Delay", "", "", nil, get, c.set, "")
	if err := p.SetInt(1); !errors.Is(err, boom) {
		t.Fatalf("SetInt error = %v, want %v", err, boom)
	}
	if c.sets != 0 {
		t.Fatalf("value written despite getter error")
	}
}

func TestEnum(t *testing.T) {
	c := &cell{v: capture.String("AC")}
	values := []EnumValue{
		{Value: capture.String("DC"), Label: "DC"},
		{Value: capture.String("AC"), Label: "AC"},
		{Value: capture.String("GND"), Label: "Ground"},
	}
	e := NewEnum("Coupling", "", values, c.get, c.set)

	if i, err := e.Selected(); err != nil || i != 1 {
		t.Fatalf("Selected() = %d, %v", i, err)
	}
	if err := e.SetLabel("Ground"); err != nil {
		t.Fatalf("SetLabel returned error: %v", err)
	}
	if label, _ := e.Label(); label != "Ground" {
		t.Fatalf("Label() = %q", label)
	}
	if err := e.SetIndex(3); !errors.Is(err, ErrNoChoice) {
		t.Fatalf("SetIndex(3) err = %v", err)
	}
	if err := e.SetLabel("Nope"); !errors.Is(err, ErrNoChoice) {
		t.Fatalf("SetLabel(Nope) err = %v", err)
	}

	c.v = capture.String("50ohm")
	if label, _ := e.Label(); label != "50ohm" {
		t.Fatalf("unknown value label = %q", label)
	}
}

func TestBool(t *testing.T) {
	c := &cell{v: capture.Bool(false)}
	b := NewBool("RLE", "", c.get, c.set)
	if err := b.SetBool(true); err != nil {
		t.Fatalf("SetBool returned error: %v", err)
	}
	if on, _ := b.Value(); !on {
		t.Fatalf("Value() = false after SetBool(true)")
	}
	if label, _ := b.Label(); label != "on" {
		t.Fatalf("Label() = %q", label)
	}

	c.v = capture.String("x")
	if _, err := b.Value(); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestReadOnlyAndErrors(t *testing.T) {
	boom := errors.New("boom")
	p := NewString("Name", "", func() (capture.Value, error) { return nil, boom }, nil)
	if err := p.SetText("x"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("SetText err = %v, want ErrReadOnly", err)
	}
	if _, err := p.Get(); !errors.Is(err, boom) {
		t.Fatalf("Get err = %v, want boom", err)
	}

	c := &cell{v: capture.Float64(1.5)}
	d := NewDouble("Gain", "", "x", c.get, c.set)
	if err := d.SetFloat(2.25); err != nil {
		t.Fatalf("SetFloat returned error: %v", err)
	}
	if label, _ := d.Label(); label != "2.25x" {
		t.Fatalf("Label() = %q", label)
	}
}

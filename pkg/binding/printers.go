package binding

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// Printer maps a raw configuration value to a display label.
type Printer func(capture.Value) string

// PrintValue is the default printer.
func PrintValue(v capture.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// PrintTimebase renders a rational period such as 1/1000 as "1 ms".
func PrintTimebase(v capture.Value) string {
	r, ok := v.(capture.Rational)
	if !ok {
		return PrintValue(v)
	}
	return capture.PeriodString(r.P, r.Q)
}

// PrintVDiv renders a rational voltage per division.
func PrintVDiv(v capture.Value) string {
	r, ok := v.(capture.Rational)
	if !ok {
		return PrintValue(v)
	}
	return capture.VoltageString(r.P, r.Q)
}

// PrintVoltageThreshold renders a (lo, hi) pair as "L<lo V H>hi V" with one
// decimal place.
func PrintVoltageThreshold(v capture.Value) string {
	r, ok := v.(capture.DoubleRange)
	if !ok {
		return PrintValue(v)
	}
	return fmt.Sprintf("L<%.1fV H>%.1fV", r.Lo, r.Hi)
}

// PrintProbeFactor renders a probe attenuation as "10x".
func PrintProbeFactor(v capture.Value) string {
	n, ok := v.(capture.Uint64)
	if !ok {
		return PrintValue(v)
	}
	return fmt.Sprintf("%dx", uint64(n))
}

// PrintAverages renders a sample count in decimal.
func PrintAverages(v capture.Value) string {
	n, ok := v.(capture.Uint64)
	if !ok {
		return PrintValue(v)
	}
	return fmt.Sprintf("%d", uint64(n))
}

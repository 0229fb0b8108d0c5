package capture

import (
	"fmt"
	"math"
)

const (
	kHz = 1e3
	mHz = 1e6
	gHz = 1e9
)

// PeriodString renders a p/q seconds period using the unit that keeps the
// figure readable, e.g. 1/1000 becomes "1 ms".
func PeriodString(p, q uint64) string {
	if q == 0 {
		return "invalid period"
	}
	period := float64(p) / float64(q)
	freq := 1 / period

	var v float64
	var unit string
	switch {
	case freq > gHz:
		v, unit = period*1e12, "ps"
	case freq > mHz:
		v, unit = period*1e9, "ns"
	case freq > kHz:
		v, unit = period*1e6, "us"
	case freq > 1:
		v, unit = period*1e3, "ms"
	default:
		v, unit = period, "s"
	}

	prec := 3
	if v-math.Trunc(v) < math.SmallestNonzeroFloat32 {
		prec = 0
	}
	return fmt.Sprintf("%.*f %s", prec, v, unit)
}

// VoltageString renders a p/q volts value; millivolt and whole volt
// denominators print as integers.
func VoltageString(p, q uint64) string {
	switch q {
	case 0:
		return "invalid voltage"
	case 1000:
		return fmt.Sprintf("%dmV", p)
	case 1:
		return fmt.Sprintf("%dV", p)
	}
	return fmt.Sprintf("%.6gV", float64(float32(p)/float32(q)))
}

package capture

import "strings"

// Capability is one operation a device supports on a configuration key.
type Capability uint8

const (
	CapGet Capability = 1 << iota
	CapSet
	CapList
)

// String returns the upper-case capability name.
func (c Capability) String() string {
	switch c {
	case CapGet:
		return "GET"
	case CapSet:
		return "SET"
	case CapList:
		return "LIST"
	default:
		return "UNKNOWN"
	}
}

// Capabilities is the set of operations supported on a key.
type Capabilities uint8

// Caps builds a capability set.
func Caps(caps ...Capability) Capabilities {
	var set Capabilities
	for _, c := range caps {
		set |= Capabilities(c)
	}
	return set
}

// Has reports whether c is in the set.
func (s Capabilities) Has(c Capability) bool {
	return s&Capabilities(c) != 0
}

// ReadWrite reports whether the key supports both GET and SET.
func (s Capabilities) ReadWrite() bool {
	return s.Has(CapGet) && s.Has(CapSet)
}

func (s Capabilities) String() string {
	var parts []string
	for _, c := range []Capability{CapGet, CapSet, CapList} {
		if s.Has(c) {
			parts = append(parts, c.String())
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "|")
}

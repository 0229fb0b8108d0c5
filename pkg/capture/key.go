package capture

import (
	"errors"
	"sort"
)

// DataType describes the representation a key's values use.
type DataType uint8

const (
	TypeUnknown DataType = iota
	TypeBool
	TypeInt64
	TypeUint64
	TypeFloat
	TypeString
	TypeRational
	TypeDoubleRange
)

func (t DataType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeRational:
		return "rational"
	case TypeDoubleRange:
		return "double-range"
	default:
		return "unknown"
	}
}

// KeyID identifies a configuration key. Values are grouped in ranges the same
// way the capture library groups them: device info, device options, special
// keys and acquisition limits.
type KeyID uint32

const (
	KeyConn KeyID = 20000 + iota
	KeySerialComm
	KeyNumLogicChannels
	KeyNumAnalogChannels
)

const (
	KeySampleRate KeyID = 30000 + iota
	KeyCaptureRatio
	KeyPatternMode
	KeyRLE
	KeyTriggerSlope
	KeyAveraging
	KeyAvgSamples
	KeyTriggerSource
	KeyHorizTriggerPos
	KeyBufferSize
	KeyTimebase
	KeyFilter
	KeyVDiv
	KeyCoupling
	KeyTriggerMatch
	KeyVoltageThreshold
	KeyExternalClock
	KeyClockEdge
	KeyPowerOff
	KeyDataSource
	KeyProbeFactor
	KeyExternalClockSource
	KeyNumHDiv
)

const (
	KeySessionFile KeyID = 40000 + iota
	KeyCaptureFile
	KeyCaptureUnitSize
)

const (
	KeyLimitMSec KeyID = 50000 + iota
	KeyLimitSamples
	KeyLimitFrames
	KeyContinuous
)

// ErrNoDescription is returned by ConfigKey.Description for keys that carry
// no description text.
var ErrNoDescription = errors.New("capture: key has no description")

// ConfigKey identifies one configurable attribute of a device.
type ConfigKey struct {
	id          KeyID
	name        string
	description string
	dataType    DataType
}

// NewKey builds a key outside the built-in table, typically for drivers that
// expose vendor-specific options.
func NewKey(id KeyID, name, description string, dataType DataType) *ConfigKey {
	return &ConfigKey{id: id, name: name, description: description, dataType: dataType}
}

func (k *ConfigKey) ID() KeyID          { return k.id }
func (k *ConfigKey) Name() string       { return k.name }
func (k *ConfigKey) DataType() DataType { return k.dataType }

// Description returns the human readable description of the key.
func (k *ConfigKey) Description() (string, error) {
	if k.description == "" {
		return "", ErrNoDescription
	}
	return k.description, nil
}

// ParseValue parses text according to the key's data type.
func (k *ConfigKey) ParseValue(s string) (Value, error) {
	return ParseValue(k.dataType, s)
}

var keyTable = []*ConfigKey{
	{KeyConn, "conn", "Connection", TypeString},
	{KeySerialComm, "serialcomm", "Serial communication", TypeString},
	{KeyNumLogicChannels, "num_logic_channels", "Number of logical channels", TypeInt64},
	{KeyNumAnalogChannels, "num_analog_channels", "Number of analog channels", TypeInt64},

	{KeySampleRate, "samplerate", "Sample rate", TypeUint64},
	{KeyCaptureRatio, "captureratio", "Pre-trigger capture ratio", TypeUint64},
	{KeyPatternMode, "pattern", "Pattern", TypeString},
	{KeyRLE, "rle", "Run length encoding", TypeBool},
	{KeyTriggerSlope, "triggerslope", "Trigger slope", TypeString},
	{KeyAveraging, "averaging", "Averaging", TypeBool},
	{KeyAvgSamples, "avg_samples", "Number of samples to average over", TypeUint64},
	{KeyTriggerSource, "triggersource", "Trigger source", TypeString},
	{KeyHorizTriggerPos, "horiz_triggerpos", "Horizontal trigger position", TypeFloat},
	{KeyBufferSize, "buffersize", "Buffer size", TypeUint64},
	{KeyTimebase, "timebase", "Time base", TypeRational},
	{KeyFilter, "filter", "Filter", TypeBool},
	{KeyVDiv, "vdiv", "Volts/div", TypeRational},
	{KeyCoupling, "coupling", "Coupling", TypeString},
	{KeyTriggerMatch, "triggermatch", "Trigger matches", TypeInt64},
	{KeyVoltageThreshold, "voltage_threshold", "Voltage threshold", TypeDoubleRange},
	{KeyExternalClock, "external_clock", "External clock mode", TypeBool},
	{KeyClockEdge, "clock_edge", "Clock edge", TypeString},
	{KeyPowerOff, "power_off", "Power off", TypeBool},
	{KeyDataSource, "data_source", "Data source", TypeString},
	{KeyProbeFactor, "probe_factor", "Probe factor", TypeUint64},
	{KeyExternalClockSource, "external_clock_source", "External clock source", TypeString},
	{KeyNumHDiv, "num_hdiv", "Number of horizontal divisions", TypeInt64},

	{KeySessionFile, "sessionfile", "Session file", TypeString},
	{KeyCaptureFile, "capturefile", "Capture file", TypeString},
	{KeyCaptureUnitSize, "capture_unitsize", "Capture unitsize", TypeUint64},

	{KeyLimitMSec, "limit_time", "Time limit", TypeUint64},
	{KeyLimitSamples, "limit_samples", "Sample limit", TypeUint64},
	{KeyLimitFrames, "limit_frames", "Frame limit", TypeUint64},
	{KeyContinuous, "continuous", "Continuous sampling", TypeBool},
}

var (
	keysByID   = make(map[KeyID]*ConfigKey, len(keyTable))
	keysByName = make(map[string]*ConfigKey, len(keyTable))
)

func init() {
	for _, k := range keyTable {
		keysByID[k.id] = k
		keysByName[k.name] = k
	}
}

// LookupKey returns the built-in key with the given identifier.
func LookupKey(id KeyID) (*ConfigKey, bool) {
	k, ok := keysByID[id]
	return k, ok
}

// KeyByName returns the built-in key with the given short name.
func KeyByName(name string) (*ConfigKey, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// MustKey returns the built-in key for id and panics if it does not exist.
func MustKey(id KeyID) *ConfigKey {
	k, ok := keysByID[id]
	if !ok {
		panic("capture: unknown key id")
	}
	return k
}

// Keys returns all built-in keys ordered by identifier.
func Keys() []*ConfigKey {
	out := append([]*ConfigKey(nil), keyTable...)
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

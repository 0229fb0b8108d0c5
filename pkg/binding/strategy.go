package binding

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

type strategyKind uint8

const (
	// strategyNone keys are left to other parts of the UI.
	strategyNone strategyKind = iota
	strategyBool
	strategyInt
	strategyEnum
	// strategyConditional binds an Enum when the device can list values and
	// an Int over fallback otherwise.
	strategyConditional
)

type strategy struct {
	kind strategyKind

	// Int
	suffix  string
	rng     *prop.Range
	special string

	// Enum and conditional
	printer  Printer
	fallback *prop.Range
}

var strategies = map[capture.KeyID]strategy{
	// Sample rate is shown in the main toolbar.
	capture.KeySampleRate: {kind: strategyNone},

	capture.KeyCaptureRatio: {kind: strategyInt, suffix: "%", rng: &prop.Range{Min: 0, Max: 100}},
	capture.KeyLimitFrames:  {kind: strategyInt, rng: &prop.Range{Min: 0, Max: 1_000_000}, special: "No Limit"},

	capture.KeyPatternMode:         {kind: strategyEnum},
	capture.KeyBufferSize:          {kind: strategyEnum},
	capture.KeyTriggerSource:       {kind: strategyEnum},
	capture.KeyTriggerSlope:        {kind: strategyEnum},
	capture.KeyCoupling:            {kind: strategyEnum},
	capture.KeyClockEdge:           {kind: strategyEnum},
	capture.KeyDataSource:          {kind: strategyEnum},
	capture.KeyExternalClockSource: {kind: strategyEnum},

	capture.KeyFilter:        {kind: strategyBool},
	capture.KeyExternalClock: {kind: strategyBool},
	capture.KeyRLE:           {kind: strategyBool},
	capture.KeyPowerOff:      {kind: strategyBool},
	capture.KeyAveraging:     {kind: strategyBool},
	capture.KeyContinuous:    {kind: strategyBool},

	capture.KeyTimebase:         {kind: strategyEnum, printer: PrintTimebase},
	capture.KeyVDiv:             {kind: strategyEnum, printer: PrintVDiv},
	capture.KeyVoltageThreshold: {kind: strategyEnum, printer: PrintVoltageThreshold},

	capture.KeyProbeFactor: {kind: strategyConditional, printer: PrintProbeFactor,
		fallback: &prop.Range{Min: 1, Max: 500}},
	capture.KeyAvgSamples: {kind: strategyConditional, printer: PrintAverages,
		fallback: &prop.Range{Min: 0, Max: math.MaxInt32}},
}

// readOnlyKeys are commonly exposed without GET or SET and are skipped
// without a diagnostic.
var readOnlyKeys = map[capture.KeyID]struct{}{
	capture.KeyContinuous:        {},
	capture.KeyTriggerMatch:      {},
	capture.KeyConn:              {},
	capture.KeySerialComm:        {},
	capture.KeyNumLogicChannels:  {},
	capture.KeyNumAnalogChannels: {},
	capture.KeySessionFile:       {},
	capture.KeyCaptureFile:       {},
	capture.KeyCaptureUnitSize:   {},
}

func strategyFor(id capture.KeyID) (strategy, bool) {
	s, ok := strategies[id]
	return s, ok
}

// IsCommonReadOnly reports whether id is on the list of keys that are skipped
// silently when they lack GET or SET.
func IsCommonReadOnly(id capture.KeyID) bool {
	_, ok := readOnlyKeys[id]
	return ok
}

package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// InputFile is a device backed by a capture file that is read through an
// input format. It exposes the file's metadata as read-only keys, plus the
// sample rate, which the format options may override.
type InputFile struct {
	fileName string
	format   string
	options  map[string]Value

	size   int64
	opened bool

	sampleRate Uint64
}

// NewInputFile describes a capture file to be loaded with the named format.
func NewInputFile(fileName, format string, options map[string]Value) *InputFile {
	opts := make(map[string]Value, len(options))
	for k, v := range options {
		opts[k] = v
	}
	f := &InputFile{fileName: fileName, format: format, options: opts}
	if sr, ok := opts["samplerate"].(Uint64); ok {
		f.sampleRate = sr
	}
	return f
}

func (f *InputFile) FileName() string { return f.fileName }
func (f *InputFile) Format() string   { return f.format }

// Options returns the sorted option names and their values.
func (f *InputFile) Options() ([]string, map[string]Value) {
	names := make([]string, 0, len(f.options))
	for k := range f.options {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, f.options
}

// Size is the file size in bytes recorded by Open.
func (f *InputFile) Size() int64 { return f.size }

func (f *InputFile) Info() DeviceInfo {
	return DeviceInfo{
		Driver:     "input/" + f.format,
		Model:      filepath.Base(f.fileName),
		Connection: f.fileName,
	}
}

func (f *InputFile) Open() error {
	st, err := os.Stat(f.fileName)
	if err != nil {
		return fmt.Errorf("capture: open input file: %w", err)
	}
	if st.IsDir() {
		return fmt.Errorf("capture: open input file: %s is a directory", f.fileName)
	}
	f.size = st.Size()
	f.opened = true
	return nil
}

func (f *InputFile) Close() error {
	f.opened = false
	return nil
}

func (f *InputFile) ConfigKeys() []*ConfigKey {
	keys := []*ConfigKey{
		MustKey(KeyCaptureFile),
		MustKey(KeyCaptureUnitSize),
		MustKey(KeySampleRate),
	}
	if _, ok := f.options["numchannels"]; ok {
		keys = append(keys, MustKey(KeyNumLogicChannels))
	}
	return keys
}

func (f *InputFile) ConfigCapabilities(key *ConfigKey) Capabilities {
	switch key.ID() {
	case KeySampleRate:
		return Caps(CapGet, CapSet)
	case KeyCaptureFile, KeyCaptureUnitSize, KeyNumLogicChannels:
		return Caps(CapGet)
	}
	return 0
}

func (f *InputFile) ConfigGet(key *ConfigKey) (Value, error) {
	switch key.ID() {
	case KeyCaptureFile:
		return String(f.fileName), nil
	case KeyCaptureUnitSize:
		return Uint64(f.unitSize()), nil
	case KeySampleRate:
		return f.sampleRate, nil
	case KeyNumLogicChannels:
		if n, err := AsInt64(f.options["numchannels"]); err == nil {
			return Int64(n), nil
		}
	}
	return nil, fmt.Errorf("capture: get %s: %w", key.Name(), ErrNotSupported)
}

func (f *InputFile) ConfigSet(key *ConfigKey, v Value) error {
	if key.ID() != KeySampleRate {
		return fmt.Errorf("capture: set %s: %w", key.Name(), ErrNotSupported)
	}
	if v == nil {
		return fmt.Errorf("capture: set %s: missing value", key.Name())
	}
	sr, ok := v.(Uint64)
	if !ok {
		return fmt.Errorf("capture: set %s: want uint64, got %s", key.Name(), v.Type())
	}
	f.sampleRate = sr
	return nil
}

func (f *InputFile) ConfigList(key *ConfigKey) ([]Value, error) {
	return nil, fmt.Errorf("capture: list %s: %w", key.Name(), ErrNotSupported)
}

// unitSize is the number of bytes per logic sample.
func (f *InputFile) unitSize() uint64 {
	n, err := AsInt64(f.options["numchannels"])
	if err != nil || n <= 0 {
		return 1
	}
	return uint64((n + 7) / 8)
}

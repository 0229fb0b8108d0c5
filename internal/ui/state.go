package ui

import (
	"sync"
	"time"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// StateSnapshot captures a copy of the state data for rendering without
// requiring the UI to hold locks while laying out widgets.
type StateSnapshot struct {
	Devices     []string
	SelectedIdx int

	// ImportFormat is the ID of the input format whose options are shown
	// instead of the device properties, or empty.
	ImportFormat string

	Hardware []capture.DeviceInfo

	Busy      bool
	LastError error
	Status    string

	AppVersion string
	Logs       []string

	// Revision counts configuration changes of the bound object.
	Revision    uint64
	LastUpdated time.Time
}

// AppState tracks the mutable state shared between the Gio event loop and
// background goroutines such as USB discovery.
type AppState struct {
	mu sync.RWMutex

	devices     []capture.Device
	selectedIdx int

	importFormat string
	hardware     []capture.DeviceInfo

	busy      bool
	lastError error
	status    string

	appVersion string

	logs     []string
	logLimit int

	revision    uint64
	lastUpdated time.Time
}

// NewState returns a baseline AppState with safe defaults.
func NewState() *AppState {
	return &AppState{
		selectedIdx: -1,
		logLimit:    200,
		status:      "Idle",
		appVersion:  "dev",
		lastUpdated: time.Now(),
	}
}

// Snapshot returns a copy of the mutable state for rendering.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]capture.DeviceInfo, len(s.devices))
	for i, d := range s.devices {
		infos[i] = d.Info()
	}
	names := capture.DisplayNames(infos)

	logCopy := make([]string, len(s.logs))
	copy(logCopy, s.logs)

	var hw []capture.DeviceInfo
	if len(s.hardware) > 0 {
		hw = make([]capture.DeviceInfo, len(s.hardware))
		copy(hw, s.hardware)
	}

	return StateSnapshot{
		Devices:      names,
		SelectedIdx:  s.selectedIdx,
		ImportFormat: s.importFormat,
		Hardware:     hw,
		Busy:         s.busy,
		LastError:    s.lastError,
		Status:       s.status,
		AppVersion:   s.appVersion,
		Logs:         logCopy,
		Revision:     s.revision,
		LastUpdated:  s.lastUpdated,
	}
}

// SetDevices replaces the device list and adjusts the selection cursor.
func (s *AppState) SetDevices(devices []capture.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices = make([]capture.Device, len(devices))
	copy(s.devices, devices)

	if len(s.devices) == 0 {
		s.selectedIdx = -1
	} else if s.selectedIdx < 0 || s.selectedIdx >= len(s.devices) {
		s.selectedIdx = 0
	}
	s.lastUpdated = time.Now()
}

// SelectDevice moves the selection cursor to the provided index if valid and
// leaves the import options view.
func (s *AppState) SelectDevice(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.devices) {
		return
	}
	s.selectedIdx = idx
	s.importFormat = ""
	s.lastUpdated = time.Now()
}

// SelectedDevice returns the currently selected device, if any.
func (s *AppState) SelectedDevice() capture.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedIdx < 0 || s.selectedIdx >= len(s.devices) {
		return nil
	}
	return s.devices[s.selectedIdx]
}

// SelectedIndex returns the selection cursor, -1 without devices.
func (s *AppState) SelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedIdx
}

// SetImportFormat switches the panel to the options of the given input
// format. An empty id returns to the selected device.
func (s *AppState) SetImportFormat(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importFormat = id
	s.lastUpdated = time.Now()
}

// ImportFormat returns the input format shown, if any.
func (s *AppState) ImportFormat() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.importFormat
}

// SetHardware records the devices found by USB discovery.
func (s *AppState) SetHardware(infos []capture.DeviceInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hardware = make([]capture.DeviceInfo, len(infos))
	copy(s.hardware, infos)
	s.lastUpdated = time.Now()
}

// MarkChanged records a configuration change of the bound object.
func (s *AppState) MarkChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	s.lastUpdated = time.Now()
}

// SetBusy toggles the busy flag and updates the timestamp.
func (s *AppState) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = busy
	s.lastUpdated = time.Now()
}

// Busy returns the current busy flag.
func (s *AppState) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// SetStatus updates the user-facing status message.
func (s *AppState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastUpdated = time.Now()
}

// SetError stores the latest error surfaced to the UI.
func (s *AppState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.lastUpdated = time.Now()
}

// AppendLog appends a log message, trimming the oldest entries past the limit.
func (s *AppState) AppendLog(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, msg)
	if s.logLimit > 0 && len(s.logs) > s.logLimit {
		offset := len(s.logs) - s.logLimit
		s.logs = append([]string(nil), s.logs[offset:]...)
	}
	s.lastUpdated = time.Now()
}

// SetAppVersion records the running application version string.
func (s *AppState) SetAppVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version == "" {
		version = "dev"
	}
	s.appVersion = version
	s.lastUpdated = time.Now()
}

// AppVersion returns the current application version string.
func (s *AppState) AppVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appVersion
}

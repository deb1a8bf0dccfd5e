package domain

import (
	"fmt"
	"sync"
)

// SafetyMode gates the responder's write path
type SafetyMode string

const (
	SafetyTest SafetyMode = "TEST" // preview only, live account untouched
	SafetyLive SafetyMode = "LIVE" // real replies and read-marking
)

// ParseSafetyMode parses an operator-supplied mode string.
func ParseSafetyMode(s string) (SafetyMode, error) {
	switch SafetyMode(s) {
	case SafetyTest, SafetyLive:
		return SafetyMode(s), nil
	}
	return "", fmt.Errorf("invalid safety mode %q (want TEST or LIVE)", s)
}

// ModeState is an immutable snapshot of the operator flags
type ModeState struct {
	MonitorActive   bool
	ResponderActive bool
	Safety          SafetyMode
}

// AllowsReply reports whether the write path is open. The author-role
// and read-state checks are applied per thread by the responder.
func (s ModeState) AllowsReply() bool {
	return s.ResponderActive && s.Safety == SafetyLive
}

// Mode holds the process-wide operator flags. Loops and control
// handlers run on separate goroutines, so access is mutex-guarded.
// Starts in the safest combination: responder off, safety TEST.
type Mode struct {
	mu    sync.RWMutex
	state ModeState
}

// NewMode creates the mode controller with its startup defaults.
func NewMode() *Mode {
	return &Mode{state: ModeState{
		MonitorActive:   true,
		ResponderActive: false,
		Safety:          SafetyTest,
	}}
}

// Snapshot returns the current flag set.
func (m *Mode) Snapshot() ModeState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// SetMonitor toggles the order monitor.
func (m *Mode) SetMonitor(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.MonitorActive = active
}

// SetResponder toggles the auto-responder.
func (m *Mode) SetResponder(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.ResponderActive = active
}

// SetSafety switches between TEST and LIVE.
func (m *Mode) SetSafety(mode SafetyMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Safety = mode
}

package domain

import "testing"

func TestNewMode_SafeDefaults(t *testing.T) {
	m := NewMode()
	s := m.Snapshot()

	if !s.MonitorActive {
		t.Error("Expected monitor to start active")
	}
	if s.ResponderActive {
		t.Error("Expected responder to start inactive")
	}
	if s.Safety != SafetyTest {
		t.Errorf("Expected safety TEST at startup, got %s", s.Safety)
	}
	if s.AllowsReply() {
		t.Error("Expected startup mode to forbid replies")
	}
}

func TestModeState_AllowsReply(t *testing.T) {
	tests := []struct {
		name      string
		responder bool
		safety    SafetyMode
		want      bool
	}{
		{"inactive test", false, SafetyTest, false},
		{"inactive live", false, SafetyLive, false},
		{"active test", true, SafetyTest, false},
		{"active live", true, SafetyLive, true},
	}

	for _, tt := range tests {
		s := ModeState{ResponderActive: tt.responder, Safety: tt.safety}
		if got := s.AllowsReply(); got != tt.want {
			t.Errorf("%s: AllowsReply() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMode_Toggles(t *testing.T) {
	m := NewMode()

	m.SetResponder(true)
	m.SetSafety(SafetyLive)
	m.SetMonitor(false)

	s := m.Snapshot()
	if !s.ResponderActive || s.Safety != SafetyLive || s.MonitorActive {
		t.Errorf("Unexpected state after toggles: %+v", s)
	}
}

func TestParseSafetyMode(t *testing.T) {
	if _, err := ParseSafetyMode("LIVE"); err != nil {
		t.Errorf("Unexpected error parsing LIVE: %v", err)
	}
	if _, err := ParseSafetyMode("TEST"); err != nil {
		t.Errorf("Unexpected error parsing TEST: %v", err)
	}
	if _, err := ParseSafetyMode("yolo"); err == nil {
		t.Error("Expected error for invalid mode")
	}
}

func TestMessageThread_NeedsAttention(t *testing.T) {
	unreadBuyer := &MessageThread{Read: false, LastMessage: ThreadMessage{Author: RoleBuyer}}
	if !unreadBuyer.NeedsAttention() {
		t.Error("Expected unread buyer thread to need attention")
	}

	readBuyer := &MessageThread{Read: true, LastMessage: ThreadMessage{Author: RoleBuyer}}
	if readBuyer.NeedsAttention() {
		t.Error("Expected read thread to be ignored")
	}

	unreadSeller := &MessageThread{Read: false, LastMessage: ThreadMessage{Author: RoleSeller}}
	if unreadSeller.NeedsAttention() {
		t.Error("Expected seller-last thread to be ignored")
	}
}

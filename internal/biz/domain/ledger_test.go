package domain

import (
	"fmt"
	"testing"
)

func TestLedger_RecordAndSeen(t *testing.T) {
	l := NewLedger(10)

	if l.Seen("101") {
		t.Error("Expected 101 to be unseen in empty ledger")
	}

	l.Record("101")

	if !l.Seen("101") {
		t.Error("Expected 101 to be seen after Record")
	}
	if l.Len() != 1 {
		t.Errorf("Expected length 1, got %d", l.Len())
	}
}

func TestLedger_RecordDuplicate(t *testing.T) {
	l := NewLedger(10)

	l.Record("101")
	l.Record("101")

	if l.Len() != 1 {
		t.Errorf("Expected duplicate record to be a no-op, length %d", l.Len())
	}
}

func TestLedger_EvictsOldestAtCapacity(t *testing.T) {
	l := NewLedger(100)

	for i := 0; i < 101; i++ {
		l.Record(fmt.Sprintf("order-%d", i))
	}

	if l.Len() != 100 {
		t.Errorf("Expected length capped at 100, got %d", l.Len())
	}
	if l.Seen("order-0") {
		t.Error("Expected oldest entry order-0 to be evicted")
	}
	if !l.Seen("order-1") {
		t.Error("Expected order-1 to survive")
	}
	if !l.Seen("order-100") {
		t.Error("Expected newest entry order-100 to be present")
	}
}

func TestLedger_Absorb(t *testing.T) {
	l := NewLedger(10)

	if !l.Empty() {
		t.Error("Expected new ledger to be empty")
	}

	l.Absorb([]string{"101", "102", "103"})

	if l.Empty() {
		t.Error("Expected ledger to be non-empty after absorb")
	}
	for _, id := range []string{"101", "102", "103"} {
		if !l.Seen(id) {
			t.Errorf("Expected %s to be seen after absorb", id)
		}
	}
}

func TestLedger_ZeroCapacityFallsBack(t *testing.T) {
	l := NewLedger(0)

	for i := 0; i < DefaultLedgerCapacity+5; i++ {
		l.Record(fmt.Sprintf("id-%d", i))
	}

	if l.Len() != DefaultLedgerCapacity {
		t.Errorf("Expected default capacity %d, got %d", DefaultLedgerCapacity, l.Len())
	}
}

package domain

import "testing"

func TestSession_UndoRestoresSnapshot(t *testing.T) {
	s := NewSession("entry")
	s.Category = "inventory"
	s.PushHistory()

	base := Selection{Key: "standard", Min: 80, Std: 100, Max: 130}
	s.Base = &base
	s.Options = append(s.Options, Selection{Key: "barcode", Std: 20})
	s.CurrentStepID = "q_features"

	if !s.Undo() {
		t.Fatal("Undo returned false with non-empty history")
	}
	if s.Base != nil {
		t.Errorf("Expected base cleared after undo, got %+v", s.Base)
	}
	if len(s.Options) != 0 {
		t.Errorf("Expected options cleared after undo, got %d", len(s.Options))
	}
	if s.CurrentStepID != "entry" {
		t.Errorf("Expected step restored to entry, got %q", s.CurrentStepID)
	}
	if s.Category != "inventory" {
		t.Errorf("Category should survive undo, got %q", s.Category)
	}
}

func TestSession_UndoEmptyHistory(t *testing.T) {
	s := NewSession("entry")
	s.Category = "hr"

	if s.Undo() {
		t.Fatal("Undo returned true with empty history")
	}
	if s.Category != "hr" || s.CurrentStepID != "entry" {
		t.Error("Session mutated by a failed undo")
	}
}

func TestSession_SnapshotsDoNotShareMemory(t *testing.T) {
	s := NewSession("entry")
	base := Selection{Key: "standard", Std: 100}
	s.Base = &base
	s.Options = []Selection{{Key: "barcode", Std: 20}}
	s.PushHistory()

	// Mutate the live session after the snapshot.
	s.Base.Std = 999
	s.Options[0].Std = 999

	if !s.Undo() {
		t.Fatal("Undo failed")
	}
	if s.Base.Std != 100 {
		t.Errorf("Snapshot shared base pointer with live session: std = %v", s.Base.Std)
	}
	if s.Options[0].Std != 20 {
		t.Errorf("Snapshot shared options slice with live session: std = %v", s.Options[0].Std)
	}
}

func TestSession_UndoStackDepth(t *testing.T) {
	s := NewSession("entry")
	for i := 0; i < 3; i++ {
		s.PushHistory()
	}
	if got := s.HistoryDepth(); got != 3 {
		t.Fatalf("Expected depth 3, got %d", got)
	}

	s.Undo()
	if got := s.HistoryDepth(); got != 2 {
		t.Errorf("Expected depth 2 after undo, got %d", got)
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := NewSession("entry")
	s.Base = &Selection{Key: "full", Std: 180}
	s.PushHistory()
	s.CurrentStepID = "q_features"

	c := s.Clone()
	c.Base.Std = 1
	c.CurrentStepID = "other"
	c.Undo()

	if s.Base.Std != 180 {
		t.Errorf("Clone shares base pointer: std = %v", s.Base.Std)
	}
	if s.CurrentStepID != "q_features" {
		t.Errorf("Clone mutated original step: %q", s.CurrentStepID)
	}
	if s.HistoryDepth() != 1 {
		t.Errorf("Clone consumed original history: depth = %d", s.HistoryDepth())
	}
}

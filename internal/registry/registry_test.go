package registry

import (
	"errors"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	Register(Mode{ID: "test_b", Title: "B"})
	Register(Mode{ID: "test_a", Title: "A", Ramp: true})

	m, err := Get("test_a")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if m.Title != "A" || !m.Ramp {
		t.Errorf("Get() = %+v, expected ramping mode A", m)
	}
	if !Exists("test_b") {
		t.Error("Exists(test_b) should be true")
	}

	list := List()
	idxA, idxB := -1, -1
	for i, m := range list {
		switch m.ID {
		case "test_a":
			idxA = i
		case "test_b":
			idxB = i
		}
	}
	if idxA < 0 || idxB < 0 || idxA > idxB {
		t.Errorf("List() should contain both modes sorted by ID, got %+v", list)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("no-such-mode"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Get() error = %v, expected ErrUnknownMode", err)
	}
	if Exists("no-such-mode") {
		t.Error("Exists should be false for unknown modes")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Mode{ID: "test_dup"})
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(Mode{ID: "test_dup"})
}

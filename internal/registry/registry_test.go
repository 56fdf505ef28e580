package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

type fixedPilot struct{ id string }

func (p fixedPilot) ID() string                  { return p.id }
func (p fixedPilot) Decide(flappy.Snapshot) bool { return true }

func TestRegisterAndCreate(t *testing.T) {
	Register(PilotInfo{ID: "test-fixed", Title: "Fixed"}, func(Options) (Pilot, error) {
		return fixedPilot{id: "test-fixed"}, nil
	})

	if !Exists("test-fixed") {
		t.Fatal("registered pilot should exist")
	}

	p, err := Create("test-fixed", Options{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if p.ID() != "test-fixed" {
		t.Errorf("ID() = %q", p.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "test-fixed" && info.Title == "Fixed" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the registered pilot")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) (Pilot, error) { return fixedPilot{}, nil }
	Register(PilotInfo{ID: "test-dup"}, f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(PilotInfo{ID: "test-dup"}, f)
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-pilot", Options{}); err == nil {
		t.Error("Create() should fail for an unknown pilot")
	}
}

func TestCreateWrapsFactoryError(t *testing.T) {
	boom := errors.New("boom")
	Register(PilotInfo{ID: "test-broken"}, func(Options) (Pilot, error) { return nil, boom })

	_, err := Create("test-broken", Options{})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "test-broken") {
		t.Errorf("Create() = %v, expected wrapped factory error", err)
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

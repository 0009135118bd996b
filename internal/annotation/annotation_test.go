package annotation

import "testing"

func TestReduce(t *testing.T) {
	tests := []struct {
		name     string
		actions  []Action
		expected bool
	}{
		{"Initial", nil, false},
		{"Activate", []Action{Activate}, true},
		{"Activate Twice", []Action{Activate, Activate}, true},
		{"Deactivate From Initial", []Action{Deactivate}, false},
		{"Toggle Once", []Action{Toggle}, true},
		{"Toggle Twice", []Action{Toggle, Toggle}, false},
		{"Activate Then Toggle", []Action{Activate, Toggle}, false},
		{"Unknown", []Action{Activate, Action(99)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			for _, a := range tt.actions {
				s = Reduce(s, a)
			}
			if s.Active != tt.expected {
				t.Errorf("Reduce(%v): expected active=%v, got %v", tt.actions, tt.expected, s.Active)
			}
		})
	}
}

func TestStore(t *testing.T) {
	s := NewStore()
	if s.Active() {
		t.Fatal("new store should be inactive")
	}
	var got []string
	unsub := s.Subscribe(func(a Action, prev, next State) {
		got = append(got, a.String())
		if next != Reduce(prev, a) {
			t.Errorf("%s: next %v does not follow from prev %v", a, next, prev)
		}
	})
	var second int
	s.Subscribe(func(Action, State, State) { second++ })

	s.Toggle()
	if !s.Active() {
		t.Error("expected active after toggle")
	}
	s.Activate()
	if !s.State().Active {
		t.Error("activate should be idempotent")
	}
	s.Deactivate()
	unsub()
	s.Toggle()

	want := []string{"TOGGLE", "ACTIVATE", "DEACTIVATE"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if second != 4 {
		t.Errorf("second listener: expected 4 calls, got %d", second)
	}
}

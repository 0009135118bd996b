// Package annotation holds the on/off state of the annotation drawing tool.
//
// The package only signals; mounting and unmounting the drawing control that
// reacts to the state belongs to the UI.
package annotation

// State of the drawing tool. The zero value is inactive.
type State struct {
	Active bool
}

// Action is one of Activate, Deactivate or Toggle.
type Action int

const (
	Activate Action = iota + 1
	Deactivate
	Toggle
)

func (a Action) String() string {
	switch a {
	case Activate:
		return "ACTIVATE"
	case Deactivate:
		return "DEACTIVATE"
	case Toggle:
		return "TOGGLE"
	}
	return "UNKNOWN"
}

// Reduce returns the state after applying a. Unknown actions leave the state
// unchanged.
func Reduce(s State, a Action) State {
	switch a {
	case Activate:
		return State{Active: true}
	case Deactivate:
		return State{Active: false}
	case Toggle:
		return State{Active: !s.Active}
	default:
		return s
	}
}

// Listener is called after every dispatched action with the previous and
// the new state.
type Listener func(a Action, prev, next State)

// Store owns a State and notifies subscribers on dispatch. It is meant to be
// driven from a single goroutine (the UI event loop) and is not locked.
type Store struct {
	state     State
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: map[int]Listener{}}
}

func (s *Store) Active() bool { return s.state.Active }

func (s *Store) State() State { return s.state }

func (s *Store) Activate() { s.Dispatch(Activate) }

func (s *Store) Deactivate() { s.Dispatch(Deactivate) }

func (s *Store) Toggle() { s.Dispatch(Toggle) }

// Dispatch applies a and notifies listeners, even when the state is unchanged.
func (s *Store) Dispatch(a Action) {
	prev := s.state
	s.state = Reduce(prev, a)
	for _, id := range s.order() {
		s.listeners[id](a, prev, s.state)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() { delete(s.listeners, id) }
}

// order returns listener ids in subscription order.
func (s *Store) order() []int {
	ids := make([]int, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if _, ok := s.listeners[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

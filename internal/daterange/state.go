package daterange

import (
	"sync"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// State holds the current selection for the lifetime of a session and
// notifies subscribers when it changes.
type State struct {
	mu     sync.Mutex
	sel    Selection
	nextID int
	subs   map[int]func(Selection)
}

// NewState returns a State holding the default selection.
func NewState() *State {
	return &State{
		sel:  Preset(DefaultKind),
		subs: make(map[int]func(Selection)),
	}
}

// Selection returns the current selection.
func (s *State) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Set replaces the selection and notifies subscribers.
func (s *State) Set(sel Selection) {
	s.mu.Lock()
	s.sel = sel
	subs := make([]func(Selection), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sel)
	}
}

// SetKind selects a preset. Selecting Custom keeps any bounds already set.
func (s *State) SetKind(k Kind) {
	cur := s.Selection()
	if k == Custom {
		s.Set(CustomRange(cur.Start, cur.End))
		return
	}
	s.Set(Preset(k))
}

// SetCustom selects a custom range with the given bounds.
func (s *State) SetCustom(start, end *model.Date) {
	s.Set(CustomRange(start, end))
}

// Resolve resolves the current selection against today.
func (s *State) Resolve(today model.Date) Range {
	return Resolve(s.Selection(), today)
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (s *State) Subscribe(fn func(Selection)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

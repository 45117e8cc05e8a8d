package conversation

import "sync"

// Store maps chat user ids to their in-progress flow. At most one state
// exists per user; Begin replaces any previous flow. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{states: make(map[string]*State)}
}

// Begin starts a flow for a user at the given step.
func (s *Store) Begin(userID string, step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = &State{Step: step}
}

// Current returns a copy of the user's state and whether one exists.
func (s *Store) Current(userID string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[userID]
	if !ok {
		return State{}, false
	}
	return *state, true
}

// Advance feeds one raw input into the user's flow. The returned state is a
// copy reflecting the input. done reports that the flow is complete and the
// caller must dispatch and then End it. ErrUnknownStep is fatal to the
// flow; the state is removed before returning.
func (s *Store) Advance(userID, input string) (State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[userID]
	if !ok {
		return State{}, false, ErrUnknownStep
	}
	done, err := state.apply(input)
	if err != nil {
		delete(s.states, userID)
		return State{}, false, err
	}
	return *state, done, nil
}

// End removes the user's flow. Ending an absent flow is a no-op.
func (s *Store) End(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

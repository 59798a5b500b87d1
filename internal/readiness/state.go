package readiness

// State records which tasks have completed. Flags only ever move from false to true.
type State struct {
	FrontendDone bool
	BackendDone  bool
}

// Complete reports whether both tasks are done.
func (s State) Complete() bool {
	return s.FrontendDone && s.BackendDone
}

// mark sets the flag for t and reports whether this call completed the state.
// The caller must hold the gate lock.
func (s *State) mark(t Task) bool {
	before := s.Complete()
	switch t {
	case Frontend:
		s.FrontendDone = true
	case Backend:
		s.BackendDone = true
	}
	return !before && s.Complete()
}

// Package appearance holds the process-wide appearance of the UI.
package appearance

import (
	"context"
	"sync"

	"github.com/maniartech/signals"
)

// State is the shared appearance state of the app.
// It can be read and changed by any component and is passed to them explicitly.
type State struct {
	// Changed is emitted with the new value after dark mode was switched.
	Changed signals.Signal[bool]

	mu       sync.RWMutex
	darkMode bool
}

// NewState returns a new appearance state.
func NewState(darkMode bool) *State {
	s := &State{
		Changed:  signals.NewSync[bool](),
		darkMode: darkMode,
	}
	return s
}

// DarkMode reports whether dark mode is enabled.
func (s *State) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// SetDarkMode enables or disables dark mode.
// Listeners are only notified when the value actually changed.
func (s *State) SetDarkMode(on bool) {
	s.mu.Lock()
	if s.darkMode == on {
		s.mu.Unlock()
		return
	}
	s.darkMode = on
	s.mu.Unlock()
	s.Changed.Emit(context.Background(), on)
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/juju/mutex/v2"
)

// errAlreadyRunning is returned when another instance of the app is already running.
var errAlreadyRunning = errors.New("another instance is already running")

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (realClock) Now() time.Time {
	return time.Now()
}

// acquireSingleInstance ensures only one instance of the app runs at a time,
// so that only one process writes to the settings store.
// The returned releaser must be released when the app exits.
func acquireSingleInstance(name string, timeout time.Duration) (mutex.Releaser, error) {
	r, err := mutex.Acquire(mutex.Spec{
		Name:    name,
		Clock:   realClock{},
		Delay:   50 * time.Millisecond,
		Timeout: timeout,
	})
	if errors.Is(err, mutex.ErrTimeout) {
		return nil, errAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("acquire mutex: %w", err)
	}
	return r, nil
}

package session

import (
	"errors"
	"fmt"
)

// State is a session's lifecycle phase. States only move forward.
type State int32

const (
	// Uninitialized is a new session that has not been started.
	Uninitialized State = iota
	// Initializing means Run handed control to the renderer, which has not
	// signalled readiness yet.
	Initializing
	// Ready means the renderer accepts element submissions.
	Ready
	// ShuttingDown means the host is exiting; no more boundary calls are made.
	ShuttingDown
	// Terminated is the final state.
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case ShuttingDown:
		return "shutting-down"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Protocol violations. They are returned wrapped, and reported through
// package errors; test with errors.Is.
var (
	// ErrAlreadyStarted is returned by a second Run.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrNotReady is returned for submissions before the renderer's init callback.
	ErrNotReady = errors.New("renderer has not signalled init")
	// ErrShutdown is returned for submissions after shutdown began.
	ErrShutdown = errors.New("session is shutting down")
	// ErrUnknownElement is returned when a child list references an element
	// this session never submitted.
	ErrUnknownElement = errors.New("element was never submitted")
	// ErrDuplicateRoot is returned when a second element claims to be root.
	ErrDuplicateRoot = errors.New("tree already has a root")
	// ErrRepeatedInit is reported when the renderer calls init twice.
	ErrRepeatedInit = errors.New("renderer signalled init more than once")
)

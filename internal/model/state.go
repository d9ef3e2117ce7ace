package model

import "github.com/pkg/errors"

// ViewState is the lifecycle state of a view or form. A single value replaces
// independent loading/notFound/isSubmitting flags.
type ViewState string

const (
	StateIdle       ViewState = "idle"
	StateLoading    ViewState = "loading"
	StateLoaded     ViewState = "loaded"
	StateEmpty      ViewState = "empty"
	StateNotFound   ViewState = "not_found"
	StateEditing    ViewState = "editing"
	StateSubmitting ViewState = "submitting"
	StateSucceeded  ViewState = "succeeded"
	StateFailed     ViewState = "failed"
)

var ErrInvalidTransition = errors.New("invalid state transition")

var transitions = map[ViewState][]ViewState{
	StateIdle:       {StateLoading, StateEditing},
	StateLoading:    {StateLoaded, StateEmpty, StateNotFound, StateEditing, StateFailed},
	StateEditing:    {StateSubmitting},
	StateSubmitting: {StateSucceeded, StateFailed},
	StateFailed:     {StateEditing, StateLoading},
}

func (s ViewState) CanTransition(to ViewState) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal states accept no further transitions.
func (s ViewState) Terminal() bool {
	return len(transitions[s]) == 0
}

type StateMachine struct {
	current ViewState
}

func NewStateMachine(initial ViewState) *StateMachine {
	return &StateMachine{current: initial}
}

func (m *StateMachine) State() ViewState {
	return m.current
}

func (m *StateMachine) Transition(to ViewState) error {
	if !m.current.CanTransition(to) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", m.current, to)
	}
	m.current = to
	return nil
}

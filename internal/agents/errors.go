package agents

import "errors"

var (
	// ErrAlreadyStarted is returned when agents are added to, or Start is
	// called on, a group that has started.
	ErrAlreadyStarted = errors.New("agent group already started")
	// ErrNoAgents is returned by Start on a group with no agents.
	ErrNoAgents       = errors.New("agent group has no agents")
)

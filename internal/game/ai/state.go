// Package ai implements enemy behavior: perception, the state machine and
// route following.
package ai

import "fmt"

// State is the behavior an enemy is running.
type State uint8

const (
	StateWait State = iota
	StatePatrol
	StateRound
	StateApproach
	StateAttack
	StateAlert
	StateOverlook
	StateVigilance
)

var stateNames = [...]string{
	StateWait:      "Wait",
	StatePatrol:    "Patrol",
	StateRound:     "Round",
	StateApproach:  "Approach",
	StateAttack:    "Attack",
	StateAlert:     "Alert",
	StateOverlook:  "Overlook",
	StateVigilance: "Vigilance",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// ParseState returns the state with the given name.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return StateWait, fmt.Errorf("ai: unknown state %q", name)
}

// Task is the phase inside a state: Reserve until the state has set
// itself up, Start while running, End once it completed.
type Task uint8

const (
	TaskReserve Task = iota
	TaskStart
	TaskEnd
)

func (t Task) String() string {
	switch t {
	case TaskReserve:
		return "Reserve"
	case TaskStart:
		return "Start"
	case TaskEnd:
		return "End"
	default:
		return fmt.Sprintf("Task(%d)", uint8(t))
	}
}

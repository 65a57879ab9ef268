package order

import (
	"slices"

	"github.com/dvdonadelli/food-challenge/domain/failure"
)

// Status is the position of an order in the kitchen workflow.
type Status string

const (
	StatusReceived      Status = "RECEIVED"
	StatusInPreparation Status = "IN_PREPARATION"
	StatusReady         Status = "READY"
	StatusCompleted     Status = "COMPLETED"
	StatusCanceled      Status = "CANCELED"
)

var statuses = []Status{StatusReceived, StatusInPreparation, StatusReady, StatusCompleted, StatusCanceled}

// transitions lists the legal next states. Terminal states have none.
var transitions = map[Status][]Status{
	StatusReceived:      {StatusInPreparation, StatusCanceled},
	StatusInPreparation: {StatusReady, StatusCanceled},
	StatusReady:         {StatusCompleted, StatusCanceled},
}

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return slices.Clone(statuses)
}

// ParseStatus matches raw exactly (case-sensitive) against the status names.
func ParseStatus(raw string) (Status, error) {
	for _, s := range statuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", failure.Wrap(failure.ErrInvalidParameter, "invalid status: %s", raw)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the workflow allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

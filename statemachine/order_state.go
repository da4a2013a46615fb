package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"delivrya/models"
)

// ActorTracker drives the simulated courier timeline
const ActorTracker = "tracker"

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor string             `json:"actor"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Kitchen is done, courier leaves the restaurant
	{From: models.StatusPreparing, To: models.StatusOnTheWay, Actor: ActorTracker},
	// Courier hands over the order
	{From: models.StatusOnTheWay, To: models.StatusDelivered, Actor: ActorTracker},
}

var ErrInvalidTransition = errors.New("invalid transition")

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// Next returns the single successor of status; ok is false for the terminal state
func Next(status models.OrderStatus) (models.OrderStatus, bool) {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "", false
	}
	return nexts[0], true
}

// IsTerminal reports whether no transition leaves status
func IsTerminal(status models.OrderStatus) bool {
	return status.Valid() && len(ValidTransitionsFrom(status)) == 0
}

// CanCancel reports whether the cancel action is still offered
func CanCancel(status models.OrderStatus) bool {
	return status.Valid() && !IsTerminal(status)
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for actor '%s'. Valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, actor, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}

// Ordered lists every status in timeline order
func Ordered() []models.OrderStatus {
	return []models.OrderStatus{models.StatusPreparing, models.StatusOnTheWay, models.StatusDelivered}
}

// Reached reports whether an order currently at current has passed through step
func Reached(current, step models.OrderStatus) bool {
	ci, si := -1, -1
	for i, s := range Ordered() {
		if s == current {
			ci = i
		}
		if s == step {
			si = i
		}
	}
	return ci >= 0 && si >= 0 && si <= ci
}

package statemachine

import (
	"errors"
	"testing"

	"delivrya/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		wantErr bool
	}{
		{name: "preparing to on the way", from: models.StatusPreparing, to: models.StatusOnTheWay, actor: ActorTracker},
		{name: "on the way to delivered", from: models.StatusOnTheWay, to: models.StatusDelivered, actor: ActorTracker},
		{name: "skip", from: models.StatusPreparing, to: models.StatusDelivered, actor: ActorTracker, wantErr: true},
		{name: "reverse", from: models.StatusOnTheWay, to: models.StatusPreparing, actor: ActorTracker, wantErr: true},
		{name: "after delivered", from: models.StatusDelivered, to: models.StatusOnTheWay, actor: ActorTracker, wantErr: true},
		{name: "self loop", from: models.StatusPreparing, to: models.StatusPreparing, actor: ActorTracker, wantErr: true},
		{name: "unknown actor", from: models.StatusPreparing, to: models.StatusOnTheWay, actor: "customer", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTransition))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanTransition_TerminalMessage(t *testing.T) {
	err := CanTransition(models.StatusDelivered, models.StatusPreparing, ActorTracker)
	assert.Contains(t, err.Error(), "none (terminal state)")
}

func TestNextAndTerminal(t *testing.T) {
	next, ok := Next(models.StatusPreparing)
	assert.True(t, ok)
	assert.Equal(t, models.StatusOnTheWay, next)

	next, ok = Next(models.StatusOnTheWay)
	assert.True(t, ok)
	assert.Equal(t, models.StatusDelivered, next)

	_, ok = Next(models.StatusDelivered)
	assert.False(t, ok)

	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.False(t, IsTerminal(models.StatusPreparing))
	assert.False(t, IsTerminal(models.OrderStatus("lost")))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(models.StatusPreparing))
	assert.True(t, CanCancel(models.StatusOnTheWay))
	assert.False(t, CanCancel(models.StatusDelivered))
}

func TestReached(t *testing.T) {
	assert.True(t, Reached(models.StatusOnTheWay, models.StatusPreparing))
	assert.True(t, Reached(models.StatusOnTheWay, models.StatusOnTheWay))
	assert.False(t, Reached(models.StatusOnTheWay, models.StatusDelivered))
	assert.True(t, Reached(models.StatusDelivered, models.StatusPreparing))
}

func TestGetAllTransitionsIsACopy(t *testing.T) {
	all := GetAllTransitions()
	all[0].To = models.StatusDelivered
	assert.NoError(t, CanTransition(models.StatusPreparing, models.StatusOnTheWay, ActorTracker))
	assert.Len(t, GetAllTransitions(), 2)
}

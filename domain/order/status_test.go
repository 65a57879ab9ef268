package order

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, raw := range []string{"", "received", "Received", "DONE", " READY", "CANCELLED"} {
		t.Run(fmt.Sprintf("invalid %q", raw), func(t *testing.T) {
			_, err := ParseStatus(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, failure.ErrInvalidParameter)
			assert.Contains(t, err.Error(), raw)
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusReceived, StatusInPreparation}: true,
		{StatusReceived, StatusCanceled}:      true,
		{StatusInPreparation, StatusReady}:    true,
		{StatusInPreparation, StatusCanceled}: true,
		{StatusReady, StatusCompleted}:        true,
		{StatusReady, StatusCanceled}:         true,
	}

	for _, from := range Statuses() {
		for _, to := range Statuses() {
			want := allowed[[2]Status{from, to}]
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	assert.False(t, StatusReceived.IsTerminal())
	assert.False(t, StatusInPreparation.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("forward step", func(t *testing.T) {
		o := &Order{Status: StatusReceived}
		require.NoError(t, o.TransitionTo(StatusInPreparation))
		assert.Equal(t, StatusInPreparation, o.Status)
	})

	t.Run("skipping a step names the transition", func(t *testing.T) {
		o := &Order{Status: StatusReceived}
		err := o.TransitionTo(StatusReady)
		require.Error(t, err)
		assert.True(t, errors.Is(err, failure.ErrInvalidParameter))
		assert.Contains(t, err.Error(), "RECEIVED -> READY")
		assert.Equal(t, StatusReceived, o.Status)
	})

	t.Run("out of a terminal state", func(t *testing.T) {
		o := &Order{Status: StatusCompleted}
		err := o.TransitionTo(StatusCanceled)
		assert.ErrorIs(t, err, failure.ErrInvalidParameter)
		assert.Contains(t, err.Error(), "COMPLETED -> CANCELED")
		assert.Contains(t, err.Error(), "order is already COMPLETED")
		assert.Equal(t, StatusCompleted, o.Status)
	})
}

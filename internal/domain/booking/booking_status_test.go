package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, BookingStatus("bogus").IsTerminal())
}

func TestBookingStatus_Active(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("shipped")
	require.Error(t, err)
}

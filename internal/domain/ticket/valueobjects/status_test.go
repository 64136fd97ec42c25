package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketStatus(t *testing.T) {
	tests := []struct {
		input string
		want  TicketStatus
	}{
		{"open", StatusOpen},
		{"Open", StatusOpen},
		{"in_progress", StatusInProgress},
		{"InProgress", StatusInProgress},
		{"closed", StatusClosed},
		{" CLOSED ", StatusClosed},
		{"Открыта", StatusOpen},
		{"В работе", StatusInProgress},
		{"Закрыта", StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTicketStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNewTicketStatus_Invalid(t *testing.T) {
	for _, input := range []string{"", "pending", "resolved", "Archived"} {
		_, err := NewTicketStatus(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTicketStatus_Predicates(t *testing.T) {
	assert.True(t, StatusOpen.IsOpen())
	assert.True(t, StatusInProgress.IsInProgress())
	assert.True(t, StatusClosed.IsClosed())
	assert.False(t, TicketStatus("pending").IsValid())
	assert.Equal(t, []TicketStatus{StatusOpen, StatusInProgress, StatusClosed}, AllStatuses())
}

func TestOwnerIdentity(t *testing.T) {
	a := NewOwnerIdentity("10.0.0.5", "ivanov")
	b := NewOwnerIdentity(" 10.0.0.5 ", "ivanov ")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(NewOwnerIdentity("10.0.0.6", "ivanov")), "different ip")
	assert.False(t, a.Equals(NewOwnerIdentity("10.0.0.5", "petrov")), "different pc")
	assert.Equal(t, "ivanov@10.0.0.5", a.String())
	assert.Equal(t, UnknownPCName, NewOwnerIdentity("10.0.0.5", "").PCName())
}

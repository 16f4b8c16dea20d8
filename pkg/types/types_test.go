package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionIdentityValidate(t *testing.T) {
	assert.NoError(t, SessionIdentity{Username: "alice", Room: "general"}.Validate())
	assert.ErrorIs(t, SessionIdentity{Room: "general"}.Validate(), ErrEmptyUsername)
	assert.ErrorIs(t, SessionIdentity{Username: "alice"}.Validate(), ErrEmptyRoom)
}

func TestConnectionStateStrings(t *testing.T) {
	cases := map[ConnectionState]string{
		StateDisconnected: "disconnected",
		StateConnecting:   "connecting",
		StateConnected:    "connected",
		StateReconnecting: "reconnecting",
		StateFailed:       "failed",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
	assert.Equal(t, "unknown", ConnectionState(99).String())
}

func TestCommandNames(t *testing.T) {
	assert.Equal(t, "join", JoinCommand{}.Name())
	assert.Equal(t, "message", PublishCommand{}.Name())
	assert.Equal(t, "typing", TypingCommand{}.Name())
	assert.Equal(t, "leave", LeaveCommand{}.Name())
}

func TestPresenceRoster(t *testing.T) {
	r := PresenceRoster{Users: []string{"alice", "bob"}}
	assert.Equal(t, 2, r.Count())
	assert.True(t, r.Contains("alice"))
	assert.False(t, r.Contains("carol"))
	assert.Equal(t, 0, PresenceRoster{}.Count())
}

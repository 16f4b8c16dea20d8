package types

// ConnectionState enumerates the health of the transport link.
// Exactly one state is active at a time; transitions happen only through
// the session controller's event handlers.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateFailed
)

// String returns the badge-friendly name of the state.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionIdentity identifies the local participant. It is set once at
// session start and never changes for the lifetime of the session.
type SessionIdentity struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// Validate ensures the identity is usable. Identity values come from an
// external collaborator and are not re-validated beyond non-emptiness.
func (id SessionIdentity) Validate() error {
	if id.Username == "" {
		return ErrEmptyUsername
	}
	if id.Room == "" {
		return ErrEmptyRoom
	}
	return nil
}

// MessageOrigin classifies a chat line as sent by the local user or by
// another participant.
type MessageOrigin int

const (
	OriginOwn MessageOrigin = iota
	OriginOther
)

// Message is one chat line. Canonical is derived deterministically from
// Raw; both are immutable once the message is constructed.
type Message struct {
	ID        string        `json:"id"`
	Sender    string        `json:"sender"`
	Raw       string        `json:"raw"`
	Canonical string        `json:"canonical"`
	Timestamp string        `json:"timestamp"` // opaque display string, server-formatted
	Origin    MessageOrigin `json:"origin"`
}

// NotificationState tracks the lifecycle of one ephemeral announcement.
// Transitions are Pending -> Visible -> Dismissed only.
type NotificationState int

const (
	NotificationPending NotificationState = iota
	NotificationVisible
	NotificationDismissed
)

// SystemNotification is an ephemeral join/leave/status announcement.
// Once dismissed it is never reused.
type SystemNotification struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Timestamp string            `json:"timestamp"`
	State     NotificationState `json:"state"`
}

// PresenceRoster is the server-supplied room membership. It is replaced
// wholesale on each update event, never patched incrementally.
type PresenceRoster struct {
	Users []string `json:"users"`
}

// Count returns the number of users in the roster.
func (r PresenceRoster) Count() int { return len(r.Users) }

// Contains reports whether the roster includes the given username.
func (r PresenceRoster) Contains(username string) bool {
	for _, u := range r.Users {
		if u == username {
			return true
		}
	}
	return false
}

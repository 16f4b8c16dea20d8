package types

// Event is one inbound transport event. The set of variants is closed;
// the engine routes on concrete type through a single dispatch function.
type Event interface {
	isEvent()
}

// ConnectedEvent fires when the transport link is established. The
// transport also emits it after a successful redial, before the matching
// ReconnectedEvent, so the join command is re-sent on every (re)connect.
type ConnectedEvent struct{}

// DisconnectedEvent fires when an established link drops.
type DisconnectedEvent struct {
	Reason string
}

// ConnectErrorEvent fires when a dial attempt fails.
type ConnectErrorEvent struct {
	Err string
}

// ReconnectingEvent fires before each redial attempt.
type ReconnectingEvent struct {
	Attempt int
}

// ReconnectedEvent fires after a successful redial.
type ReconnectedEvent struct {
	Attempt int
}

// ReconnectFailedEvent fires once redial attempts are exhausted.
type ReconnectFailedEvent struct{}

// MessageEvent carries one chat line from the server.
type MessageEvent struct {
	ID        string
	Username  string
	Text      string
	Timestamp string
}

// UserJoinedEvent announces a participant joining the room. Message is
// the server-rendered announcement text.
type UserJoinedEvent struct {
	Username  string
	Message   string
	Timestamp string
}

// UserLeftEvent announces a participant leaving the room.
type UserLeftEvent struct {
	Username  string
	Message   string
	Timestamp string
}

// PresenceEvent replaces the room roster wholesale.
type PresenceEvent struct {
	Users []string
}

// TypingEvent reports a remote participant's typing status.
type TypingEvent struct {
	Username string
	IsTyping bool
}

func (ConnectedEvent) isEvent()       {}
func (DisconnectedEvent) isEvent()    {}
func (ConnectErrorEvent) isEvent()    {}
func (ReconnectingEvent) isEvent()    {}
func (ReconnectedEvent) isEvent()     {}
func (ReconnectFailedEvent) isEvent() {}
func (MessageEvent) isEvent()         {}
func (UserJoinedEvent) isEvent()      {}
func (UserLeftEvent) isEvent()        {}
func (PresenceEvent) isEvent()        {}
func (TypingEvent) isEvent()          {}

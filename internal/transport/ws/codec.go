package ws

import (
	"encoding/json"
	"fmt"

	"chatterbox/pkg/types"
)

// Inbound frame event names, matching the server contract.
const (
	eventMessage    = "message"
	eventUserJoined = "user_joined"
	eventUserLeft   = "user_left"
	eventUsers      = "update_users"
	eventUserTyping = "user_typing"
)

// envelope is the wire frame: an event name plus a JSON payload.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type messagePayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type announcementPayload struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type usersPayload struct {
	Users []string `json:"users"`
}

type typingPayload struct {
	Username string `json:"username"`
	IsTyping bool   `json:"is_typing"`
}

// decodeFrame converts one wire frame into a typed event. Frames with
// unknown names or missing required fields return an error; the read
// loop drops them rather than crash the session.
func decodeFrame(raw []byte) (types.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	switch env.Event {
	case eventMessage:
		var p messagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		if p.Username == "" || p.Message == "" {
			return nil, types.ErrMalformedPayload
		}
		return types.MessageEvent{
			ID:        p.ID,
			Username:  p.Username,
			Text:      p.Message,
			Timestamp: p.Timestamp,
		}, nil
	case eventUserJoined, eventUserLeft:
		var p announcementPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode announcement: %w", err)
		}
		if p.Message == "" {
			return nil, types.ErrMalformedPayload
		}
		if env.Event == eventUserJoined {
			return types.UserJoinedEvent{Username: p.Username, Message: p.Message, Timestamp: p.Timestamp}, nil
		}
		return types.UserLeftEvent{Username: p.Username, Message: p.Message, Timestamp: p.Timestamp}, nil
	case eventUsers:
		var p usersPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
		if p.Users == nil {
			return nil, types.ErrMalformedPayload
		}
		return types.PresenceEvent{Users: p.Users}, nil
	case eventUserTyping:
		var p typingPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode typing: %w", err)
		}
		if p.Username == "" {
			return nil, types.ErrMalformedPayload
		}
		return types.TypingEvent{Username: p.Username, IsTyping: p.IsTyping}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownEvent, env.Event)
	}
}

// encodeCommand wraps an outbound command in the wire envelope. The
// command's JSON tags define the payload shape.
func encodeCommand(cmd types.Command) ([]byte, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", cmd.Name(), err)
	}
	return json.Marshal(envelope{Event: cmd.Name(), Data: data})
}

package types

// Command event names on the wire. The server contract uses the same
// names the inbound side uses for its frame events.
const (
	CommandJoin    = "join"
	CommandMessage = "message"
	CommandTyping  = "typing"
	CommandLeave   = "leave"
)

// Command is one outbound instruction to the server. JSON tags define
// the wire payload; Name() selects the envelope event name.
type Command interface {
	isCommand()
	Name() string
}

// JoinCommand enters the room under the session identity.
type JoinCommand struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// PublishCommand sends one chat line to the room.
type PublishCommand struct {
	Username string `json:"username"`
	Text     string `json:"message"`
	Room     string `json:"room"`
}

// TypingCommand signals the local typing status to the room.
type TypingCommand struct {
	Username string `json:"username"`
	Room     string `json:"room"`
	IsTyping bool   `json:"is_typing"`
}

// LeaveCommand departs the room.
type LeaveCommand struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

func (JoinCommand) isCommand()    {}
func (PublishCommand) isCommand() {}
func (TypingCommand) isCommand()  {}
func (LeaveCommand) isCommand()   {}

// Name returns the wire event name for the command.
func (JoinCommand) Name() string    { return CommandJoin }
func (PublishCommand) Name() string { return CommandMessage }
func (TypingCommand) Name() string  { return CommandTyping }
func (LeaveCommand) Name() string   { return CommandLeave }

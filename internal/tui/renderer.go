package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"chatterbox/pkg/types"
)

// Instruction messages delivered from the engine loop to the Update
// loop. Each renderer call maps to exactly one message.
type (
	appendMsg   struct{ msg types.Message }
	notifyMsg   struct{ note types.SystemNotification }
	dismissMsg  struct{ id string }
	presenceMsg struct {
		users []string
		local string
	}
	badgeMsg struct {
		text  string
		state types.ConnectionState
	}
	inputMsg  struct{ enabled bool }
	typingMsg struct{ text string }
	departMsg struct{}
)

// Renderer adapts engine render instructions into bubbletea messages.
// It is safe to call from the engine goroutine; instructions issued
// before the program is attached are buffered and replayed.
type Renderer struct {
	mu      sync.Mutex
	program *tea.Program
	pending []tea.Msg
}

// NewRenderer creates a detached renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Attach binds the running program and flushes buffered instructions.
func (r *Renderer) Attach(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()
	for _, m := range pending {
		p.Send(m)
	}
}

// Depart implements the navigator collaborator: quit the program once
// a confirmed leave has been given time to reach the server.
func (r *Renderer) Depart() {
	r.send(departMsg{})
}

// AppendMessage adds one chat line to the message log.
func (r *Renderer) AppendMessage(msg types.Message) {
	r.send(appendMsg{msg: msg})
}

// ShowNotification displays an ephemeral system announcement.
func (r *Renderer) ShowNotification(note types.SystemNotification) {
	r.send(notifyMsg{note: note})
}

// DismissNotification removes a previously shown announcement.
func (r *Renderer) DismissNotification(id string) {
	r.send(dismissMsg{id: id})
}

// ReplacePresence swaps the member list wholesale.
func (r *Renderer) ReplacePresence(users []string, localUser string) {
	r.send(presenceMsg{users: users, local: localUser})
}

// SetConnectionBadge updates the link-status badge.
func (r *Renderer) SetConnectionBadge(text string, state types.ConnectionState) {
	r.send(badgeMsg{text: text, state: state})
}

// SetInputEnabled toggles the message input.
func (r *Renderer) SetInputEnabled(enabled bool) {
	r.send(inputMsg{enabled: enabled})
}

// SetTypingBanner sets the typing summary line; empty hides it.
func (r *Renderer) SetTypingBanner(text string) {
	r.send(typingMsg{text: text})
}

func (r *Renderer) send(m tea.Msg) {
	r.mu.Lock()
	p := r.program
	if p == nil {
		r.pending = append(r.pending, m)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(m)
}

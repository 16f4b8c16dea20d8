// Package tui is the presentation collaborator: a terminal UI that
// consumes the engine's render instructions and feeds user actions
// back into it.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatterbox/pkg/types"
)

// Session is the engine surface the UI drives. All methods are safe to
// call from the Update loop.
type Session interface {
	Keystroke()
	Send(text string)
	ConfirmLeave()
	DismissNotification(id string)
}

var (
	badgeStyles = map[types.ConnectionState]lipgloss.Style{
		types.StateConnected:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		types.StateDisconnected: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		types.StateFailed:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
	ownStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	senderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	typingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	stampStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// Model renders one chat session.
type Model struct {
	session Session
	room    string

	log           viewport.Model
	input         textinput.Model
	lines         []string
	notes         []types.SystemNotification
	users         []string
	localUser     string
	badge         string
	badgeState    types.ConnectionState
	typingBanner  string
	inputEnabled  bool
	confirmLeave  bool
	ready         bool
	width, height int
}

// NewModel creates the UI bound to one session.
func NewModel(session Session, room string) Model {
	input := textinput.New()
	input.Placeholder = "Connecting..."
	input.CharLimit = 500
	return Model{
		session: session,
		room:    room,
		input:   input,
		badge:   "Connecting",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		logHeight := msg.Height - 7
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.log = viewport.New(msg.Width, logHeight)
			m.ready = true
		} else {
			m.log.Width = msg.Width
			m.log.Height = logHeight
		}
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case appendMsg:
		m.lines = append(m.lines, m.renderLine(msg.msg))
		if m.ready {
			m.refreshLog()
		}
		return m, nil

	case notifyMsg:
		m.notes = append(m.notes, msg.note)
		return m, nil

	case dismissMsg:
		for i, n := range m.notes {
			if n.ID == msg.id {
				m.notes = append(m.notes[:i], m.notes[i+1:]...)
				break
			}
		}
		return m, nil

	case presenceMsg:
		m.users = msg.users
		m.localUser = msg.local
		return m, nil

	case badgeMsg:
		m.badge = msg.text
		m.badgeState = msg.state
		return m, nil

	case inputMsg:
		m.inputEnabled = msg.enabled
		if msg.enabled {
			m.input.Placeholder = "Type your message..."
			m.input.Focus()
		} else {
			m.input.Placeholder = "Disconnected..."
			m.input.Blur()
		}
		return m, nil

	case typingMsg:
		m.typingBanner = msg.text
		return m, nil

	case departMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmLeave {
		switch msg.String() {
		case "y", "Y":
			m.confirmLeave = false
			m.session.ConfirmLeave()
		case "n", "N", "esc":
			m.confirmLeave = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.confirmLeave = true
		return m, nil
	case "ctrl+x":
		if len(m.notes) > 0 {
			m.session.DismissNotification(m.notes[0].ID)
		}
		return m, nil
	case "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) != "" {
			m.session.Send(text)
			m.input.Reset()
		}
		return m, nil
	}

	if !m.inputEnabled {
		return m, nil
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.session.Keystroke()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.log.View())
	b.WriteString("\n")
	b.WriteString(m.noticeArea())
	if m.typingBanner != "" {
		b.WriteString(typingStyle.Render(m.typingBanner + "..."))
	}
	b.WriteString("\n")
	if m.confirmLeave {
		b.WriteString(promptStyle.Render("Leave this room? (y/n)"))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(stampStyle.Render("enter: send  esc: leave  ctrl+x: dismiss notice  ctrl+c: quit"))
	return b.String()
}

func (m Model) header() string {
	style, ok := badgeStyles[m.badgeState]
	if !ok {
		style = badgeStyles[types.StateDisconnected]
	}
	badge := style.Render("[" + m.badge + "]")
	return fmt.Sprintf("#%s  %s  %s", m.room, badge, m.presenceLine())
}

func (m Model) presenceLine() string {
	if len(m.users) == 0 {
		return "Users (0)"
	}
	names := make([]string, len(m.users))
	for i, u := range m.users {
		if u == m.localUser {
			names[i] = u + " (You)"
		} else {
			names[i] = u
		}
	}
	return fmt.Sprintf("Users (%d): %s", len(m.users), strings.Join(names, ", "))
}

func (m Model) noticeArea() string {
	var b strings.Builder
	for _, n := range m.notes {
		b.WriteString(noticeStyle.Render(fmt.Sprintf("• %s %s", n.Text, stampStyle.Render(n.Timestamp))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) refreshLog() {
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

func (m Model) renderLine(msg types.Message) string {
	stamp := stampStyle.Render(msg.Timestamp)
	if msg.Origin == types.OriginOwn {
		return fmt.Sprintf("%s %s %s", stamp, ownStyle.Render("you:"), msg.Canonical)
	}
	return fmt.Sprintf("%s %s %s", stamp, senderStyle.Render(msg.Sender+":"), msg.Canonical)
}

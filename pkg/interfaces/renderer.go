package interfaces

import "chatterbox/pkg/types"

// Renderer is the external presentation collaborator. The engine emits
// render instructions through it and never reads presentation state
// back; all calls originate from the engine's single event loop.
type Renderer interface {
	// AppendMessage adds one chat line to the message log.
	AppendMessage(msg types.Message)

	// ShowNotification displays an ephemeral system announcement.
	ShowNotification(note types.SystemNotification)

	// DismissNotification removes a previously shown announcement.
	// Called exactly once per notification regardless of whether the
	// dismissal was manual or timer-driven.
	DismissNotification(id string)

	// ReplacePresence swaps the member list wholesale. localUser lets
	// the presentation mark the local participant.
	ReplacePresence(users []string, localUser string)

	// SetConnectionBadge updates the link-status badge.
	SetConnectionBadge(text string, state types.ConnectionState)

	// SetInputEnabled toggles the message input.
	SetInputEnabled(enabled bool)

	// SetTypingBanner sets the typing summary line; empty text hides it.
	SetTypingBanner(text string)
}

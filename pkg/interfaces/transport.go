package interfaces

import "chatterbox/pkg/types"

// Transport is the engine's view of the realtime link. Handshake,
// framing, and reconnection internals stay behind this boundary; the
// engine sees only typed events and accepts typed commands.
type Transport interface {
	// Events returns the inbound event stream. The channel is closed
	// when the transport shuts down permanently.
	Events() <-chan types.Event

	// Send queues one outbound command. Returns ErrTransportClosed
	// after Close; delivery is not acknowledged.
	Send(cmd types.Command) error

	// Close tears the link down and releases resources. Idempotent.
	Close() error
}

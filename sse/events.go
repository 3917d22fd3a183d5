package sse

// SSE event names used by the bridge. Value frames carry no event name
// and arrive as plain data frames.
const (
	// EventConnected is sent once when a client successfully connects.
	EventConnected = "connected"

	// EventKeepAlive names the keep-alive comments.
	EventKeepAlive = "keepalive"

	// EventError is sent when the underlying stream fails.
	EventError = "error"
)

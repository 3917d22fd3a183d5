package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kbukum/streamkit/stream"
)

// frame is a single wire-ready SSE message.
type frame struct {
	event string
	data  []byte
}

// client owns the buffered path between one stream subscription and
// one HTTP connection.
type client struct {
	id     string
	mu     sync.Mutex
	frames chan frame
	closed bool
	log    zerolog.Logger
}

func newClient(id string, buffer int, log zerolog.Logger) *client {
	return &client{
		id:     id,
		frames: make(chan frame, buffer),
		log:    log,
	}
}

// send queues a frame without blocking. A full buffer means the client
// is reading too slowly; the frame is dropped and logged. Frames sent
// after close are discarded.
func (c *client) send(f frame) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.frames <- f:
		return true
	default:
		c.log.Warn().Str("event", f.event).Msg("client buffer full, dropping frame")
		return false
	}
}

// close ends the connection after all queued frames are written.
// Safe to call multiple times.
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.frames)
}

// Options configures a Bridge handler.
type Options struct {
	// BufferSize is the per-client frame buffer. Zero means 256.
	BufferSize int
	// Heartbeat is the keep-alive comment interval. Zero means 30s.
	Heartbeat time.Duration
	// Log receives connection lifecycle and dropped-frame events.
	Log zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = 256
	}
	if o.Heartbeat <= 0 {
		o.Heartbeat = 30 * time.Second
	}
	return o
}

// Bridge serves src over Server-Sent Events. Every HTTP client gets
// its own subscription, so a cold source replays per client and a hot
// source is shared among them. Values are JSON-encoded into data
// frames; a stream failure becomes one error event followed by the
// end of the connection, and a value that cannot be JSON-encoded is
// treated the same way. The subscription is released when the client
// disconnects or the stream terminates.
func Bridge[T any](src stream.Observable[T], opts Options) gin.HandlerFunc {
	opts = opts.withDefaults()
	return func(c *gin.Context) {
		clientID := uuid.NewString()
		log := opts.Log.With().Str("client_id", clientID).Logger()

		w := c.Writer
		header := w.Header()
		header.Set("Content-Type", "text/event-stream")
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		header.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		connected, _ := json.Marshal(gin.H{"client_id": clientID})
		writeFrame(w, frame{event: EventConnected, data: connected})
		w.Flush()
		log.Debug().Msg("client connected")

		cl := newClient(clientID, opts.BufferSize, log)
		fail := func(err error) {
			data, _ := json.Marshal(gin.H{"error": err.Error()})
			cl.send(frame{event: EventError, data: data})
			cl.close()
		}
		sub := src.SubscribeFunc(
			func(v T) {
				data, err := json.Marshal(v)
				if err != nil {
					log.Error().Err(err).Msg("encoding value")
					fail(err)
					return
				}
				cl.send(frame{data: data})
			},
			fail,
			cl.close,
		)
		defer sub.Unsubscribe()

		heartbeat := time.NewTicker(opts.Heartbeat)
		defer heartbeat.Stop()

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				log.Debug().Msg("client disconnected")
				return

			case f, ok := <-cl.frames:
				if !ok {
					log.Debug().Msg("stream terminated")
					return
				}
				writeFrame(w, f)
				w.Flush()

			case <-heartbeat.C:
				_, _ = fmt.Fprintf(w, ": %s %d\n\n", EventKeepAlive, time.Now().Unix())
				w.Flush()
			}
		}
	}
}

// writeFrame emits one SSE message. Frames without an event name are
// plain data frames.
func writeFrame(w io.Writer, f frame) {
	if f.event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", f.event)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", f.data)
}

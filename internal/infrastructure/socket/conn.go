package socket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
	"github.com/yusufnuru/unimarket-client/pkg/logger"
)

// Event is one server-pushed frame: `{"event": "new-message", "data": {...}}`.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Handshake identifies the session to the /message endpoint. It travels as
// query parameters on the dial; credentials ride on the cookie jar.
type Handshake struct {
	UserID string
	Role   string
}

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

type outbound struct {
	event   Event
	written chan error
}

// Conn is one live connection to the chat endpoint. Reads are delivered on
// Events() until the connection drops, at which point the channel closes.
// Reconnection is the caller's concern; Conn only reports the drop.
type Conn struct {
	ws        *websocket.Conn
	send      chan outbound
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// Dial opens the socket connection. A rejected handshake surfaces the server's
// close message (e.g. "Token expired", "Authentication failed") so callers can
// classify it.
func Dial(ctx context.Context, rawURL string, jar http.CookieJar, hs Handshake) (*Conn, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid socket URL", err)
	}
	switch target.Scheme {
	case "http":
		target.Scheme = "ws"
	case "https":
		target.Scheme = "wss"
	}

	query := target.Query()
	query.Set("userId", hs.UserID)
	query.Set("role", hs.Role)
	target.RawQuery = query.Encode()

	dialer := websocket.Dialer{
		Jar:              jar,
		HandshakeTimeout: writeWait,
	}

	ws, resp, err := dialer.DialContext(ctx, target.String(), nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if message := apperrors.MessageOf(body); message != "" {
				return nil, apperrors.Unauthorized(message, err)
			}
			return nil, apperrors.FromResponse(resp.StatusCode, body)
		}
		return nil, apperrors.Transport("Socket connection failed", err)
	}

	c := &Conn{
		ws:     ws,
		send:   make(chan outbound, sendBuffer),
		events: make(chan Event, sendBuffer),
		done:   make(chan struct{}),
	}

	go c.readPump()
	go c.writePump()

	return c, nil
}

// Emit writes one client event and waits for the write to land.
func (c *Conn) Emit(name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return apperrors.BadRequest("Failed to encode socket payload", err)
	}

	out := outbound{
		event:   Event{Name: name, Data: data},
		written: make(chan error, 1),
	}

	select {
	case c.send <- out:
	case <-c.done:
		return apperrors.Transport("Socket connection closed", nil)
	}

	select {
	case err := <-out.written:
		return err
	case <-c.done:
		return apperrors.Transport("Socket connection closed", nil)
	}
}

// Events yields inbound frames in arrival order. The channel closes when the
// connection drops or Close is called.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// Close tears the connection down. Safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		deadline := time.Now().Add(writeWait)
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		c.ws.Close()
	})
	return nil
}

func (c *Conn) readPump() {
	defer func() {
		c.Close()
		close(c.events)
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn("Socket read failed: %v", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			logger.Warn("Dropping malformed socket frame: %v", err)
			continue
		}

		select {
		case c.events <- event:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writePump() {
	for {
		select {
		case out := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.ws.WriteJSON(out.event)
			if err != nil {
				logger.Error("Socket write failed: %v", err)
				err = apperrors.Transport("Socket write failed", err)
			}
			out.written <- err
		case <-c.done:
			return
		}
	}
}

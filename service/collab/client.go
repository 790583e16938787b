package collab

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

// Client represents one websocket connection admitted by the gate.
// UserID comes from the verified token; UserName and DocumentID are set when
// the client joins a room. A single writer goroutine (WritePump) drains Send,
// so enqueue order is delivery order for this connection.
type Client struct {
	ConnID     string          // unique connection id (snowflake)
	UserID     string          // authenticated user id
	UserName   string          // display name, supplied at join time
	DocumentID string          // current room; empty when not in a room
	WS         *websocket.Conn // nil in unit tests
	Send       chan []byte     // outbound queue (consumed by WritePump)
}

// NewClient creates a new client connection object.
func NewClient(connID, userID string, ws *websocket.Conn, sendQueueSize int) *Client {
	return &Client{
		ConnID: connID,
		UserID: userID,
		WS:     ws,
		Send:   make(chan []byte, sendQueueSize),
	}
}

// WritePump is the single writer for this connection. It exits when Send is
// closed or a write fails; the read loop notices the dead conn and cleans up.
func (c *Client) WritePump() {
	t := time.NewTicker(pingPeriod)
	defer func() {
		t.Stop()
		_ = c.WS.Close()
	}()
	for {
		select {
		case payload, ok := <-c.Send:
			if !ok {
				_ = c.WS.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = c.WS.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WS.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-t.C:
			if err := c.WS.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message types
const (
	MsgTypeSubscribe        = "subscribe"
	MsgTypeGenerationUpdate = "generation_update"
	MsgTypeMatchFound       = "match_found"
)

// Client represents a connected WebSocket user
type Client struct {
	Conn   *websocket.Conn
	UserID string
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// Event is the envelope pushed to every connected client.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Message struct for incoming WebSocket messages
type Message struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
}

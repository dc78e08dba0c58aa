package websockets

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/devtrio/wanderswipe/internal/model"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketManager initializes a WebSocketManager
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
	}
}

// Run starts the WebSocket manager
func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.Conn] = client
			manager.mu.Unlock()

		case conn := <-manager.unregister:
			manager.mu.Lock()
			if client, exists := manager.clients[conn]; exists {
				delete(manager.clients, conn)
				conn.Close()
				log.Printf("Client %s disconnected", client.UserID)
			}
			manager.mu.Unlock()

		case message := <-manager.broadcast:
			manager.mu.Lock()
			for _, client := range manager.clients {
				if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
					client.Conn.Close()
					delete(manager.clients, client.Conn)
				}
			}
			manager.mu.Unlock()
		}
	}
}

// HandleConnections upgrades HTTP requests to WebSocket connections
func (manager *WebSocketManager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket Upgrade Error:", err)
		return
	}

	client := &Client{Conn: conn}
	manager.register <- client

	defer func() {
		manager.unregister <- conn
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var message Message
		if err := json.Unmarshal(msg, &message); err != nil {
			log.Println("Invalid JSON:", err)
			continue
		}

		if message.Type == MsgTypeSubscribe {
			client.UserID = message.UserID
		}
	}
}

// BroadcastEvent pushes an event to every connected client.
func (manager *WebSocketManager) BroadcastEvent(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Println("Failed to marshal event:", err)
		return
	}
	manager.broadcast <- payload
}

// GenerationCompleted notifies clients that a new destination batch landed.
func (manager *WebSocketManager) GenerationCompleted(count int) {
	manager.BroadcastEvent(Event{
		Type: MsgTypeGenerationUpdate,
		Data: map[string]int{"count": count},
	})
}

// MatchFound notifies clients about a new travel buddy match.
func (manager *WebSocketManager) MatchFound(profile model.UserProfile) {
	manager.BroadcastEvent(Event{
		Type: MsgTypeMatchFound,
		Data: profile,
	})
}

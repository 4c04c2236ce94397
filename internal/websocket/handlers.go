// internal/websocket/handlers.go
// WebSocket connection handlers

package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, implement proper origin checking
		return true
	},
}

// HandleConnection handles new WebSocket connections
func HandleConnection(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get user ID from context (set by auth middleware)
		userID, _ := c.Get("user_id")
		userIDStr := ""
		if userID != nil {
			userIDStr = userID.(string)
		}

		// Upgrade HTTP connection to WebSocket
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}

		// Create new client
		client := &Client{
			hub:         hub,
			conn:        conn,
			send:        make(chan []byte, 256),
			userID:      userIDStr,
			tournaments: make([]string, 0),
		}

		// Register client with hub
		hub.register <- client

		// Send welcome message
		welcomeMsg := Message{
			Type: "welcome",
			Data: map[string]interface{}{
				"message": "Connected to padeltour WebSocket",
				"user_id": userIDStr,
			},
		}

		if data, err := json.Marshal(welcomeMsg); err == nil {
			client.send <- data
		}

		// Start client pumps in goroutines
		go client.writePump()
		go client.readPump()
	}
}

// Message types for WebSocket communication, emitted by
// services.NotificationService over the hub as tournaments progress.
const (
	MessageTournamentStarted  = "tournament_started"
	MessageRoundStarted       = "round_started"
	MessageMatchScoreRecorded = "match_score_recorded"
	MessageTournamentFinished = "tournament_finished"

	// Notifications
	MessageNotification = "notification"
	MessageAlert        = "alert"
)

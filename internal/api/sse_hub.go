package api

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	ImportID string
	Channel  chan ImportEvent
}

// ImportEvent is one message of the import progress protocol: zero or more
// progress events followed by exactly one terminal event ("complete",
// "cancelled" or "error").
type ImportEvent struct {
	ImportID         string                 `json:"import_id"`
	EventType        string                 `json:"event_type"`
	Progress         float64                `json:"progress"`
	RecordsProcessed int                    `json:"records_processed"`
	Data             map[string]interface{} `json:"data,omitempty"`
	Timestamp        time.Time              `json:"timestamp"`
}

// Event types emitted by the import worker.
const (
	EventProgress  = "progress"
	EventComplete  = "complete"
	EventCancelled = "cancelled"
	EventError     = "error"
)

// SSEHub manages Server-Sent Events for real-time import updates
type SSEHub struct {
	clients    map[string]map[chan ImportEvent]bool
	clientsMu  sync.RWMutex
	register   chan SSEClient
	unregister chan SSEClient
	broadcast  chan ImportEvent
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	hub := &SSEHub{
		clients:    make(map[string]map[chan ImportEvent]bool),
		register:   make(chan SSEClient, 10),
		unregister: make(chan SSEClient, 10),
		broadcast:  make(chan ImportEvent, 100),
	}

	go hub.run()
	return hub
}

// run processes SSE hub operations
func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.ImportID] == nil {
				h.clients[client.ImportID] = make(map[chan ImportEvent]bool)
			}
			h.clients[client.ImportID][client.Channel] = true
			log.Printf("[SSE] Client registered for import %s (total clients: %d)",
				client.ImportID, len(h.clients[client.ImportID]))
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.ImportID]; exists {
				delete(clients, client.Channel)
				close(client.Channel)
				if len(clients) == 0 {
					delete(h.clients, client.ImportID)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			if clients, exists := h.clients[event.ImportID]; exists {
				for clientChan := range clients {
					select {
					case clientChan <- event:
						// Event sent successfully
					default:
						// Client channel is full, skip
						log.Printf("[SSE] Client channel full for import %s, skipping event",
							event.ImportID)
					}
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast sends an event to all clients listening to an import
func (h *SSEHub) Broadcast(event ImportEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[SSE] Broadcast channel full, dropping event: %s", event.EventType)
	}
}

// HandleSSE handles the Server-Sent Events endpoint
func (h *SSEHub) HandleSSE(c *gin.Context) {
	importID := c.Query("import_id")
	if importID == "" {
		c.JSON(400, gin.H{"error": "import_id parameter required"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientChan := make(chan ImportEvent, 10)

	select {
	case h.register <- SSEClient{ImportID: importID, Channel: clientChan}:
	default:
		c.JSON(500, gin.H{"error": "SSE hub registration failed"})
		return
	}

	defer func() {
		select {
		case h.unregister <- SSEClient{ImportID: importID, Channel: clientChan}:
		default:
			// Hub might be overloaded, just close channel
		}
	}()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-clientChan:
			eventJSON, err := json.Marshal(event)
			if err != nil {
				log.Printf("[SSE] Failed to marshal event: %v", err)
				return true
			}
			c.SSEvent("import", string(eventJSON))
			// Terminal events end the stream.
			return event.EventType == EventProgress

		case <-time.After(30 * time.Second):
			// Send ping to keep connection alive
			c.SSEvent("ping", `{"status": "alive", "timestamp": "`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			return false
		}
	})
}

// GetClientCount returns the number of active clients for an import
func (h *SSEHub) GetClientCount(importID string) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	if clients, exists := h.clients[importID]; exists {
		return len(clients)
	}
	return 0
}

package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tradejournal/internal/middleware"
	"github.com/tradejournal/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler pushes freshly computed dashboard stats to connected
// clients whenever a trade mutation touches their account. It
// implements service.StatsObserver.
type StreamHandler struct {
	analyticsService *service.AnalyticsService

	mu      sync.RWMutex
	clients map[string]map[*streamClient]struct{} // accountID -> clients
}

type streamClient struct {
	conn   *websocket.Conn
	userID string
	send   chan struct{}
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(analyticsService *service.AnalyticsService) *StreamHandler {
	return &StreamHandler{
		analyticsService: analyticsService,
		clients:          make(map[string]map[*streamClient]struct{}),
	}
}

// Stream upgrades the connection and keeps pushing dashboard updates
// for one account until the client disconnects.
// GET /api/v1/accounts/:id/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	userID := middleware.GetUserID(c)
	accountID := c.Param("id")

	// Verify ownership before upgrading.
	if _, err := h.analyticsService.Dashboard(c.Request.Context(), userID, accountID, time.Now()); err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		middleware.LogError("WebSocket upgrade failed: %v", err)
		return
	}

	client := &streamClient{
		conn:   conn,
		userID: userID,
		send:   make(chan struct{}, 1),
	}
	h.register(accountID, client)
	defer h.unregister(accountID, client)

	// Reader goroutine only watches for close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Push the current stats immediately, then on every change signal.
	if err := h.push(client, accountID); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-client.send:
			if err := h.push(client, accountID); err != nil {
				return
			}
		}
	}
}

// StatsChanged signals every client watching the account. Non-blocking:
// a client already scheduled for a push is not queued twice.
func (h *StreamHandler) StatsChanged(accountID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[accountID] {
		select {
		case client.send <- struct{}{}:
		default:
		}
	}
}

func (h *StreamHandler) push(client *streamClient, accountID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := h.analyticsService.Dashboard(ctx, client.userID, accountID, time.Now())
	if err != nil {
		middleware.LogError("Stats push failed for account %s: %v", accountID, err)
		return err
	}

	client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return client.conn.WriteJSON(data)
}

func (h *StreamHandler) register(accountID string, client *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountID] == nil {
		h.clients[accountID] = make(map[*streamClient]struct{})
	}
	h.clients[accountID][client] = struct{}{}
}

func (h *StreamHandler) unregister(accountID string, client *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[accountID], client)
	if len(h.clients[accountID]) == 0 {
		delete(h.clients, accountID)
	}
	client.conn.Close()
}

// RegisterRoutes registers the stats stream route
func (h *StreamHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	rg.GET("/accounts/:id/stream", authMiddleware, h.Stream)
}

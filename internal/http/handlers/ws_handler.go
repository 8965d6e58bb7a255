package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/questboard/backend/internal/events"
	"github.com/questboard/backend/internal/services"
	"go.uber.org/zap"
)

const (
	wsWriteTimeout = 5 * time.Second
	eventSnapshot  = "snapshot"
)

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub pushes campaign events to connected clients so the active
// campaigns list refreshes without polling.
type WSHub struct {
	campaignService *services.CampaignService
	subscriber      events.Subscriber
	log             *zap.Logger
	mu              sync.RWMutex
	clients         map[*wsClient]struct{}
}

func NewWSHub(campaignService *services.CampaignService, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		campaignService: campaignService,
		subscriber:      subscriber,
		log:             log,
		clients:         make(map[*wsClient]struct{}),
	}
}

func (h *WSHub) Start(ctx context.Context) error {
	return h.subscriber.Subscribe(ctx, events.StreamCampaign, h.broadcast)
}

func (h *WSHub) broadcast(event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to marshal event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	// Send outside the lock so a stalled client does not hold up
	// registrations and disconnects.
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.send(data); err != nil {
			h.log.Debug("ws send failed", zap.Error(err))
		}
	}
}

func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	client := &wsClient{conn: conn}

	// Register before the snapshot so no event falls between the two.
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		conn.Close()
	}()

	col, err := h.campaignService.List(context.Background())
	if err != nil {
		h.log.Error("ws snapshot failed", zap.Error(err))
		_ = client.send([]byte(`{"error":"internal error"}`))
		return
	}
	snapshot, err := json.Marshal(events.Event{
		Type:    eventSnapshot,
		Payload: map[string]any{"campaigns": col.Campaigns},
	})
	if err != nil {
		h.log.Error("ws snapshot marshal failed", zap.Error(err))
		return
	}
	if err := client.send(snapshot); err != nil {
		return
	}

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

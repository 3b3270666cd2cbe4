package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mocktailx/exchange/internal/catalog"
)

const wsWriteTimeout = 10 * time.Second

// PriceTicker pushes the current price map to websocket clients on a
// fixed interval, so the storefront can show live prices without
// polling /prices.
type PriceTicker struct {
	logger     *zap.Logger
	catalogSvc catalog.CatalogService
	interval   time.Duration
	upgrader   websocket.Upgrader
}

// NewPriceTicker creates a websocket price ticker
func NewPriceTicker(logger *zap.Logger, catalogSvc catalog.CatalogService, interval time.Duration, allowedOrigins []string) *PriceTicker {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &PriceTicker{
		logger:     logger,
		catalogSvc: catalogSvc,
		interval:   interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// ServeWS upgrades the request and streams price snapshots until the
// client disconnects.
func (t *PriceTicker) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	go t.writeLoop(conn)
	t.readLoop(conn)
}

// readLoop drains client frames; its return signals disconnect.
func (t *PriceTicker) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (t *PriceTicker) writeLoop(conn *websocket.Conn) {
	defer conn.Close()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	// Push an initial snapshot so clients render without waiting a tick.
	if !t.push(conn) {
		return
	}
	for range ticker.C {
		if !t.push(conn) {
			return
		}
	}
}

func (t *PriceTicker) push(conn *websocket.Conn) bool {
	ctx, cancel := context.WithTimeout(context.Background(), t.interval)
	prices, err := t.catalogSvc.GetPrices(ctx)
	cancel()
	if err != nil {
		t.logger.Error("Price ticker failed to load prices", zap.Error(err))
		// Keep the connection; the next tick retries.
		return true
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(prices); err != nil {
		return false
	}
	return true
}

package handler

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nareshwadi/market/market-backend/internal/identity"
	"github.com/nareshwadi/market/market-backend/internal/store"
	"github.com/nareshwadi/market/market-backend/internal/websocket"
)

// JWTValidator validates JWT tokens and resolves the user ID
type JWTValidator interface {
	ValidateToken(token string) (userID uuid.UUID, err error)
}

// WebSocketHandler handles WebSocket connections. While a user has at least
// one open connection the handler holds that user's collection state
// containers and forwards every published state to the hub, so a cart or
// wishlist mutation made over REST reaches the user's other sessions live.
type WebSocketHandler struct {
	hub            *websocket.Hub
	validator      JWTValidator
	registry       *store.Registry
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader

	mu      sync.Mutex
	bridges map[uuid.UUID]*storeBridge
}

// storeBridge ties one user's containers to the hub for as long as any of
// that user's connections is open.
type storeBridge struct {
	refs          int
	unsubCart     func()
	unsubWishlist func()
	releaseStores func()
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, validator JWTValidator, registry *store.Registry, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		validator:      validator,
		registry:       registry,
		allowedOrigins: originMap,
		bridges:        make(map[uuid.UUID]*storeBridge),
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Allow requests with no Origin header (e.g., same-origin or non-browser clients)
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	// Get token from query parameter
	token := c.QueryParam("token")
	if token == "" {
		log.Debug().Msg("WebSocket connection rejected: missing token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	userID, err := h.validator.ValidateToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, userID, h.hub)
	h.hub.Register(client)
	h.attachBridge(userID)

	log.Info().
		Str("user_id", userID.String()).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go func() {
		client.ReadPump()
		h.detachBridge(userID)
	}()

	return nil
}

// attachBridge takes a reference on the user's bridge, creating it on the
// first connection. Creating it acquires the user's containers and subscribes
// them to the hub.
func (h *WebSocketHandler) attachBridge(userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if b, ok := h.bridges[userID]; ok {
		b.refs++
		return
	}

	stores := h.registry.Acquire(identity.Principal{ID: userID})
	unsubCart := stores.Cart.Subscribe(func(state store.CartState) {
		h.hub.Publish(userID, websocket.CartUpdated(toCartResponse(state.Items)))
	})
	unsubWishlist := stores.Wishlist.Subscribe(func(state store.WishlistState) {
		h.hub.Publish(userID, websocket.WishlistUpdated(toWishlistResponse(state.Items)))
	})

	h.bridges[userID] = &storeBridge{
		refs:          1,
		unsubCart:     unsubCart,
		unsubWishlist: unsubWishlist,
		releaseStores: func() { h.registry.Release(userID) },
	}
}

// detachBridge drops one reference and tears the bridge down when the user's
// last connection goes away.
func (h *WebSocketHandler) detachBridge(userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.bridges[userID]
	if !ok {
		return
	}
	b.refs--
	if b.refs > 0 {
		return
	}

	b.unsubCart()
	b.unsubWishlist()
	b.releaseStores()
	delete(h.bridges, userID)

	log.Debug().
		Str("user_id", userID.String()).
		Msg("WebSocket store bridge released")
}

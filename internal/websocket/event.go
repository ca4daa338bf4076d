package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeCleared EventType = "cleared"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeCart     EntityType = "cart"
	EntityTypeWishlist EntityType = "wishlist"
	EntityTypeOrder    EntityType = "order"
	EntityTypeProduct  EntityType = "product"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "cart.updated"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "cart"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// CartUpdated creates a cart.updated event carrying the full cart state
func CartUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCart, payload)
}

// CartCleared creates a cart.cleared event
func CartCleared(payload interface{}) Event {
	return NewEvent(EventTypeCleared, EntityTypeCart, payload)
}

// WishlistUpdated creates a wishlist.updated event carrying the full wishlist state
func WishlistUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeWishlist, payload)
}

// WishlistCleared creates a wishlist.cleared event
func WishlistCleared(payload interface{}) Event {
	return NewEvent(EventTypeCleared, EntityTypeWishlist, payload)
}

// OrderCreated creates an order.created event
func OrderCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeOrder, payload)
}

// OrderUpdated creates an order.updated event (status changes)
func OrderUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeOrder, payload)
}

// ProductUpdated creates a product.updated event (stock or price changes)
func ProductUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeProduct, payload)
}

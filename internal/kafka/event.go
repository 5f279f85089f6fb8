package kafka

import (
	"time"

	"studenthub/internal/cart"
)

type EventType string

const (
	EventTypeAddToCart      EventType = "addToCart"
	EventTypeRemoveFromCart EventType = "removeFromCart"
	EventTypeClearCart      EventType = "clearCart"
	EventTypeToggleDiscount EventType = "toggleDiscount"
)

// Event событие активности в корзине
type Event struct {
	SessionID     string    `json:"session_id"`
	Type          EventType `json:"type"`
	ItemID        string    `json:"item_id,omitempty"`
	Subtotal      int64     `json:"subtotal"`
	Total         int64     `json:"total"`
	ApplyDiscount bool      `json:"apply_discount"`
	Timestamp     time.Time `json:"timestamp"`
}

var opTypes = map[cart.Op]EventType{
	cart.OpAdd:      EventTypeAddToCart,
	cart.OpRemove:   EventTypeRemoveFromCart,
	cart.OpClear:    EventTypeClearCart,
	cart.OpDiscount: EventTypeToggleDiscount,
}

// NewEvent собирает событие из изменения корзины
func NewEvent(sessionID string, change cart.Change, at time.Time) Event {
	return Event{
		SessionID:     sessionID,
		Type:          opTypes[change.Op],
		ItemID:        change.ItemID,
		Subtotal:      change.Summary.Subtotal,
		Total:         change.Summary.Total,
		ApplyDiscount: change.Summary.ApplyDiscount,
		Timestamp:     at,
	}
}

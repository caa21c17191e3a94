package service

import (
	"context"
)

// InventoryEvent represents an inventory mutation published for downstream consumers
type InventoryEvent struct {
	RequestID      string `json:"request_id,omitempty"` // For distributed tracing
	Action         string `json:"action"`               // "added" or "removed"
	StorageUnit    string `json:"storage_unit"`
	Item           string `json:"item"`
	Category       string `json:"category"`
	Quantity       int    `json:"quantity"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	Expired        bool   `json:"expired,omitempty"` // Set on removals of already-expired items
	Username       string `json:"username"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishInventoryEvent publishes an inventory mutation for async processing
	PublishInventoryEvent(ctx context.Context, event *InventoryEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

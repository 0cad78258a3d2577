package mq

import (
	"context"
	"encoding/json"
	"log"

	"soko/rdx"
)

const channel = "listing-events"

// Event is the message published on the listing event channel. Downstream
// consumers (search indexing, analytics) subscribe to it; the publishing
// request never waits on them.
type Event struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Method     string `json:"method"`
	Category   string `json:"category,omitempty"`
}

// Emit publishes an event to Redis. Always called fire-and-forget from a
// goroutine; failures are logged and dropped.
func Emit(eventName string, content Event) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[mq] marshal %s failed: %v", eventName, err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[mq] publish %s failed: %v", eventName, err)
	}
}

package events

import (
	"context"
	"time"
)

// Knowledge base event types, published on events.<TYPE>.
const (
	ArticleCreated    = "KNOWLEDGE_ARTICLE_CREATED"
	ArticleUpdated    = "KNOWLEDGE_ARTICLE_UPDATED"
	ArticleDeleted    = "KNOWLEDGE_ARTICLE_DELETED"
	ArticlesReindexed = "KNOWLEDGE_ARTICLES_REINDEXED"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// Publisher delivers events to the bus. Delivery is best-effort; callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

// Payload includes the occurrence time so subscribers need not rely on
// delivery time.
func (e BaseEvent) Payload() map[string]interface{} {
	out := make(map[string]interface{}, len(e.Data)+1)
	for k, v := range e.Data {
		out[k] = v
	}
	out["occurred_at"] = e.OccurredAt.UTC().Format(time.RFC3339)
	return out
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

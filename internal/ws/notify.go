package ws

import (
	"encoding/json"
	"time"
)

const EventSearchCompleted = "search_completed"

type SearchCompletedEvent struct {
	Type      string `json:"type"`
	Query     string `json:"query"`
	URL       string `json:"url"`
	Listings  int    `json:"listings"`
	Skipped   int    `json:"skipped"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes search events on a hub.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) NotifySearchCompleted(query string, searchURL string, listings int, skipped int) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(SearchCompletedEvent{
		Type:      EventSearchCompleted,
		Query:     query,
		URL:       searchURL,
		Listings:  listings,
		Skipped:   skipped,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}

// internal/adapter/events/publisher.go

package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/post"
)

// RenderEvent describes one dashboard rerun
type RenderEvent struct {
	RenderID    string        `json:"render_id"`
	Transport   string        `json:"transport"`
	Criteria    post.Criteria `json:"criteria"`
	RowCount    int           `json:"row_count"`
	EmptyPanels []string      `json:"empty_panels,omitempty"`
	DurationMs  float64       `json:"duration_ms"`
	RenderedAt  time.Time     `json:"rendered_at"`
}

// NewRenderEvent summarizes views into an event
func NewRenderEvent(views dashboard.Views, transport string, elapsed time.Duration) RenderEvent {
	event := RenderEvent{
		RenderID:   views.RenderID,
		Transport:  transport,
		Criteria:   views.Criteria,
		RowCount:   views.RowCount,
		DurationMs: float64(elapsed.Microseconds()) / 1000,
		RenderedAt: time.Now().UTC(),
	}
	for _, p := range views.Panels {
		if !p.HasChart() {
			event.EmptyPanels = append(event.EmptyPanels, string(p.ID))
		}
	}
	return event
}

// Publisher publishes dashboard events
type Publisher interface {
	PublishRender(event RenderEvent) error
	Close()
}

// NATSPublisher publishes events to a NATS subject prefix
type NATSPublisher struct {
	conn  *nats.Conn
	topic string
}

// NewNATSPublisher creates a publisher on conn. Events go to "<topic>.rendered".
func NewNATSPublisher(conn *nats.Conn, topic string) *NATSPublisher {
	return &NATSPublisher{
		conn:  conn,
		topic: topic,
	}
}

// Subject returns the subject render events are published on
func (p *NATSPublisher) Subject() string {
	return fmt.Sprintf("%s.rendered", p.topic)
}

// PublishRender publishes a render event
func (p *NATSPublisher) PublishRender(event RenderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling render event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(), data); err != nil {
		return fmt.Errorf("error publishing render event: %w", err)
	}
	return nil
}

// Close drains and closes the connection
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

// NopPublisher drops every event. Used when no event bus is configured.
type NopPublisher struct{}

// PublishRender does nothing
func (NopPublisher) PublishRender(RenderEvent) error { return nil }

// Close does nothing
func (NopPublisher) Close() {}

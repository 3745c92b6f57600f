package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/post"
)

func TestNewRenderEvent(t *testing.T) {
	views := dashboard.Views{
		RenderID: "abc",
		Criteria: post.Criteria{Sentiment: "Negative"},
		RowCount: 2,
		Panels: []dashboard.Panel{
			{ID: dashboard.PanelWordCloud, Chart: json.RawMessage(`{}`)},
			{ID: dashboard.PanelMap, Warning: "nothing"},
		},
	}

	event := NewRenderEvent(views, "http", 1500*time.Microsecond)

	assert.Equal(t, "abc", event.RenderID)
	assert.Equal(t, "http", event.Transport)
	assert.Equal(t, 2, event.RowCount)
	assert.Equal(t, []string{"map"}, event.EmptyPanels)
	assert.InDelta(t, 1.5, event.DurationMs, 1e-9)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sentiment":"Negative"`)
}

func TestNATSPublisherSubject(t *testing.T) {
	p := NewNATSPublisher(nil, "dashboard")
	assert.Equal(t, "dashboard.rendered", p.Subject())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishRender(RenderEvent{}))
	p.Close()
}

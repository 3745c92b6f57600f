package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, h *DashboardHandler) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(h.DashboardWebSocket(DefaultWebSocketConfig()))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	// Queued messages may be batched one per line
	line := strings.SplitN(string(data), "\n", 2)[0]

	var msg map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(line), &msg))
	return msg
}

func TestDashboardWebSocketRerun(t *testing.T) {
	h := newTestHandler(staticLoader{table: scenarioTable()}, nil, nil)
	conn := dial(t, h)

	welcome := readMessage(t, conn)
	assert.JSONEq(t, `"welcome"`, string(welcome["type"]))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":     "criteria",
		"location": "USA",
		"dates":    []string{"2020-01-02", "2020-01-02"},
	}))

	msg := readMessage(t, conn)
	assert.JSONEq(t, `"views"`, string(msg["type"]))

	var views struct {
		RowCount int `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(msg["views"], &views))
	assert.Equal(t, 1, views.RowCount)
}

func TestDashboardWebSocketErrors(t *testing.T) {
	h := newTestHandler(staticLoader{table: scenarioTable()}, nil, nil)
	conn := dial(t, h)
	readMessage(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg := readMessage(t, conn)
	assert.JSONEq(t, `"error"`, string(msg["type"]))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe"}))
	msg = readMessage(t, conn)
	assert.JSONEq(t, `"error"`, string(msg["type"]))
	assert.Contains(t, string(msg["error"]), "unknown message type")
}

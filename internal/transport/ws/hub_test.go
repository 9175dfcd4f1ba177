package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-interviews-go/internal/domain/events"
	"hr-interviews-go/pkg/logger"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logger.Discard())
	go hub.Run(ctx)

	server := httptest.NewServer(NewHandler(hub, []string{"http://localhost:5173"}, logger.Discard()))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHubDeliversPublishedEvents(t *testing.T) {
	hub, server := startHub(t)

	conn, _, err := dial(t, server, "http://localhost:5173")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	event := events.NewEmployeeEvent(events.EmployeeUpdated, "emp-1")
	require.NoError(t, hub.Publish(context.Background(), event))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got events.Event
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, events.EmployeeUpdated, got.Type)
	assert.Equal(t, "emp-1", got.ID)
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	hub, server := startHub(t)

	_, resp, err := dial(t, server, "http://evil.example")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub, server := startHub(t)

	conn, _, err := dial(t, server, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubStopReleasesPendingAndLateSenders(t *testing.T) {
	hub := NewHub(logger.Discard())

	pending := make([]*Client, 3)
	for i := range pending {
		pending[i] = NewClient(hub, nil)
		require.True(t, hub.Register(pending[i]))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hub.Run(ctx)

	for _, client := range pending {
		select {
		case _, open := <-client.send:
			assert.False(t, open)
		default:
			t.Fatal("expected send channel closed on stop")
		}
	}

	assert.False(t, hub.Register(NewClient(hub, nil)))

	finished := make(chan struct{})
	go func() {
		// More than the unregister buffer holds.
		for i := 0; i < 300; i++ {
			hub.Unregister(NewClient(hub, nil))
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("unregister blocked after the hub stopped")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

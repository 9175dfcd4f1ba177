package hrclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"hr-interviews-go/internal/domain/events"
)

// Watch subscribes to the server's change stream and drops cache entries as
// events arrive. handle, when non-nil, sees every event after invalidation.
// It blocks until ctx is done or the connection fails.
func (c *Client) Watch(ctx context.Context, handle func(events.Event)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.eventsURL(), nil)
	if err != nil {
		return fmt.Errorf("dial events: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event: %w", err)
		}

		var event events.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			c.log.Warn("hrclient: malformed event", "err", err)
			continue
		}
		c.apply(event)
		if handle != nil {
			handle(event)
		}
	}
}

func (c *Client) apply(event events.Event) {
	switch event.Entity {
	case events.EntityEmployee:
		c.cache.InvalidateEmployee(event.ID)
	case events.EntityInterview:
		c.cache.InvalidateEmployee(event.EmployeeID)
	}
}

func (c *Client) eventsURL() string {
	base := c.baseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/events"
}

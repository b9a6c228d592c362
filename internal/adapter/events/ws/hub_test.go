package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"idletycoon/internal/domain/economy"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHubStreamsPublishedEvents(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, h, 1)

	h.Publish(economy.DomainEvent{
		Type:       economy.EventItemPurchased,
		SessionID:  "s1",
		OccurredAt: time.Unix(100, 0).UTC(),
		Payload:    map[string]any{"item_id": "cart"},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg, &got))
	require.Equal(t, "item_purchased", got["type"])
	require.Equal(t, "s1", got["session_id"])
	require.Equal(t, "cart", got["payload"].(map[string]any)["item_id"])
}

func TestHubFanOutToEveryClient(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, h, 2)

	h.Publish(economy.DomainEvent{Type: economy.EventMoneyChanged, Payload: map[string]any{"money": 5}})

	for _, c := range []*websocket.Conn{a, b} {
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := c.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(msg), `"money_changed"`)
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	h := NewHub()
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, h, 1)
	require.NoError(t, conn.Close())
	waitForClients(t, h, 0)
}

func TestPublishDropsForFullClientBuffer(t *testing.T) {
	h := NewHub()
	_, out := h.register()
	for i := 0; i < cap(out); i++ {
		h.Publish(economy.DomainEvent{Type: economy.EventMoneyChanged})
	}
	require.Equal(t, uint64(0), h.Dropped())

	done := make(chan struct{})
	go func() {
		h.Publish(economy.DomainEvent{Type: economy.EventMoneyChanged})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full client")
	}
	require.Equal(t, uint64(1), h.Dropped())
}

func TestPublishWithoutClients(t *testing.T) {
	h := NewHub()
	h.Publish(economy.DomainEvent{Type: economy.EventSaveCompleted})
	require.Equal(t, 0, h.ClientCount())
}

func TestListenOnlyClientStaysConnectedPastReadTimeout(t *testing.T) {
	h := NewHub()
	h.readTimeout = 300 * time.Millisecond
	h.pingInterval = 100 * time.Millisecond
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, h, 1)

	msgs := make(chan []byte, 1)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			msgs <- msg
		}
	}()

	time.Sleep(4 * h.readTimeout)
	require.Equal(t, 1, h.ClientCount())

	h.Publish(economy.DomainEvent{Type: economy.EventSaveCompleted})
	select {
	case msg := <-msgs:
		require.Contains(t, string(msg), `"save_completed"`)
	case err := <-readErr:
		t.Fatalf("listen-only client lost the stream: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered after idle period")
	}
}

func TestUnresponsiveClientIsReaped(t *testing.T) {
	h := NewHub()
	h.readTimeout = 200 * time.Millisecond
	h.pingInterval = 50 * time.Millisecond
	srv := httptest.NewServer(h.Mux())
	defer srv.Close()

	// Never reading means pings are never answered.
	_ = dial(t, srv)
	waitForClients(t, h, 1)
	waitForClients(t, h, 0)
}

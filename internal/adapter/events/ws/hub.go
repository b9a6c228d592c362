package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/gorilla/websocket"

	"idletycoon/internal/domain/economy"
)

const (
	defaultClientBuffer = 256
	writeTimeout        = 5 * time.Second
	readTimeout         = 60 * time.Second
	pingInterval        = readTimeout * 9 / 10
)

// Hub fans domain events out to connected websocket clients. Publish never
// blocks: a client whose buffer is full loses the event.
type Hub struct {
	upgrader     websocket.Upgrader
	clientBuffer int
	readTimeout  time.Duration
	pingInterval time.Duration

	mu      sync.RWMutex
	clients map[uint64]chan []byte
	nextID  atomic.Uint64
	dropped atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clientBuffer: defaultClientBuffer,
		readTimeout:  readTimeout,
		pingInterval: pingInterval,
		clients:      map[uint64]chan []byte{},
	}
}

func (h *Hub) Publish(evt economy.DomainEvent) {
	b, err := json.Marshal(evt)
	if err != nil {
		hlog.Warnf("ws: marshal event %s: %v", evt.Type, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, out := range h.clients {
		select {
		case out <- b:
		default:
			h.dropped.Add(1)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) register() (uint64, chan []byte) {
	id := h.nextID.Add(1)
	out := make(chan []byte, h.clientBuffer)
	h.mu.Lock()
	h.clients[id] = out
	h.mu.Unlock()
	return id, out
}

func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

// Handler upgrades GET /events and streams every published event as a text
// frame. The server pings every pingInterval and each pong extends the read
// deadline, so clients that never write stay connected. Inbound frames are
// read only to notice the client going away.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, out := h.register()
		defer h.unregister(id)
		hlog.Infof("ws: client %d connected from %s", id, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		})

		writeErr := make(chan error, 1)
		go func() {
			ping := time.NewTicker(h.pingInterval)
			defer ping.Stop()
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case <-ping.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
						writeErr <- err
						return
					}
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			_ = conn.SetReadDeadline(time.Now().Add(h.readTimeout))
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
		hlog.Infof("ws: client %d disconnected", id)
	}
}

// Mux returns the handler tree served on the events listener.
func (h *Hub) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", h.Handler())
	return mux
}

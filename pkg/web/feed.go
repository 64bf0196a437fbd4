package web

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/logger"
	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	json "github.com/goccy/go-json"
)

const (
	feedWriteTimeout = 10 * time.Second
	feedSendBuffer   = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Operator console runs on a trusted host
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedClient is one subscriber. The connection is only ever written by
// its writeLoop; everything else goes through the send channel.
type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// FeedHub pushes every recorded violation to connected console clients
type FeedHub struct {
	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

// NewFeedHub creates an empty feed hub
func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients: make(map[*feedClient]struct{}),
	}
}

// Handler upgrades a console request to a websocket subscription
func (h *FeedHub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("Feed upgrade failed: "+err.Error(), "Feed")
			return
		}

		client := &feedClient{
			conn: conn,
			send: make(chan []byte, feedSendBuffer),
		}

		h.mu.Lock()
		h.clients[client] = struct{}{}
		count := len(h.clients)
		h.mu.Unlock()

		logger.Info("Feed client connected, total: "+strconv.Itoa(count), "Feed")

		go h.writeLoop(client)
		go h.readLoop(client)
	}
}

// writeLoop drains the client's send channel onto the connection. It is
// the connection's only writer.
func (h *FeedHub) writeLoop(client *feedClient) {
	for payload := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(client)
			return
		}
	}
}

// readLoop drains reads so close frames are processed; drop on error
func (h *FeedHub) readLoop(client *feedClient) {
	defer h.drop(client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ViolationRecorded implements the violation sink: the record is fanned
// out to every connected client. Clients whose send buffer is full are
// dropped instead of blocking the recording goroutine.
func (h *FeedHub) ViolationRecorded(record models.ViolationRecord) {
	payload, err := json.Marshal(record)
	if err != nil {
		logger.Warn("Failed to encode feed payload: "+err.Error(), "Feed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			h.dropLocked(client)
		}
	}
}

// ClientCount returns the number of connected feed clients
func (h *FeedHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *FeedHub) drop(client *feedClient) {
	h.mu.Lock()
	h.dropLocked(client)
	h.mu.Unlock()
}

// dropLocked requires h.mu to be held. The send channel is only closed
// here, under the same lock that guards every send into it.
func (h *FeedHub) dropLocked(client *feedClient) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		client.conn.Close()
	}
}

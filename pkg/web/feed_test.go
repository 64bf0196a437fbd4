package web

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SaigonStudios/GuardBotGo/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	json "github.com/goccy/go-json"
)

// newFeedConn stands up a feed endpoint and dials one client into it
func newFeedConn(t *testing.T, hub *FeedHub) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/feed", hub.Handler())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial feed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// waitForClients polls until the hub sees the expected client count
func waitForClients(t *testing.T, hub *FeedHub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hub has %d clients, want %d", hub.ClientCount(), want)
}

func TestFeedBroadcast(t *testing.T) {
	hub := NewFeedHub()
	conn := newFeedConn(t, hub)
	waitForClients(t, hub, 1)

	hub.ViolationRecorded(models.ViolationRecord{
		ID:            7,
		UserID:        "user1",
		Username:      "user1",
		ViolationType: "Ngôn từ thô tục",
		GuildID:       "guild1",
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read feed message: %v", err)
	}

	var got models.ViolationRecord
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode feed message: %v", err)
	}
	if got.ID != 7 || got.UserID != "user1" || got.ViolationType != "Ngôn từ thô tục" {
		t.Errorf("unexpected record over the feed: %+v", got)
	}
}

// TestFeedBroadcastConcurrent fans out records from many goroutines at
// once, the way concurrent message handlers record violations. Every
// record must arrive intact on the single client.
func TestFeedBroadcastConcurrent(t *testing.T) {
	hub := NewFeedHub()
	conn := newFeedConn(t, hub)
	waitForClients(t, hub, 1)

	const broadcasts = 64

	var wg sync.WaitGroup
	for i := 1; i <= broadcasts; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			hub.ViolationRecorded(models.ViolationRecord{
				ID:      id,
				UserID:  "user1",
				GuildID: "guild1",
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, broadcasts)
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for len(seen) < broadcasts {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed after %d of %d messages: %v", len(seen), broadcasts, err)
		}

		var got models.ViolationRecord
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("corrupt feed message after %d reads: %v", len(seen), err)
		}
		if got.ID < 1 || got.ID > broadcasts {
			t.Fatalf("unexpected record id %d", got.ID)
		}
		if seen[got.ID] {
			t.Fatalf("record id %d delivered twice", got.ID)
		}
		seen[got.ID] = true
	}

	if count := hub.ClientCount(); count != 1 {
		t.Errorf("hub has %d clients after broadcast, want 1", count)
	}
}

func TestFeedDropsClosedClient(t *testing.T) {
	hub := NewFeedHub()
	conn := newFeedConn(t, hub)
	waitForClients(t, hub, 1)

	_ = conn.Close()
	waitForClients(t, hub, 0)

	// Broadcasting with no clients must be a no-op
	hub.ViolationRecorded(models.ViolationRecord{ID: 1, UserID: "user1"})
}

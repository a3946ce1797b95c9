package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc, chan struct{}) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return hub, cancel, stopped
}

func serveRoom(t *testing.T, hub *Hub, room string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn, room).Serve()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestTournamentRoom(t *testing.T) {
	assert.Equal(t, "tournament_7", TournamentRoom(7))
}

func TestBroadcastToRoomReachesClientsOfThatRoom(t *testing.T) {
	hub, _, _ := startHub(t)
	room := TournamentRoom(1)
	conn := dial(t, serveRoom(t, hub, room))

	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(TournamentRoom(2), Message{Type: "OTHER"})
	hub.BroadcastToRoom(room, Message{Type: MessageDrawReleased, Payload: map[string]int{"round_id": 3}, RoomID: room})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type    string         `json:"type"`
		Payload map[string]int `json:"payload"`
		RoomID  string         `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, MessageDrawReleased, got.Type)
	assert.Equal(t, 3, got.Payload["round_id"])
	assert.Equal(t, room, got.RoomID)
}

func TestClientDisconnectLeavesRoom(t *testing.T) {
	hub, _, _ := startHub(t)
	room := TournamentRoom(5)
	conn := dial(t, serveRoom(t, hub, room))

	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub, cancel, stopped := startHub(t)
	room := TournamentRoom(9)
	conn := dial(t, serveRoom(t, hub, room))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-stopped

	assert.Equal(t, 0, hub.RoomSize(room))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.False(t, hub.Register(NewClient(hub, nil, room)))
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub, _, _ := startHub(t)
	assert.NotPanics(t, func() {
		hub.BroadcastToRoom("nobody", Message{Type: "X"})
	})
}

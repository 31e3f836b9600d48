package activity

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestConn(t *testing.T, hub *Hub, userID int64) (client, server *websocket.Conn) {
	t.Helper()

	registered := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(userID, conn)
		registered <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case server = <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("server connection never registered")
	}
	return client, server
}

func TestHubBroadcastReachesAllConnections(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	first, _ := dialTestConn(t, hub, 1)
	second, _ := dialTestConn(t, hub, 2)
	assert.Equal(t, 2, hub.OnlineCount())

	evt := NewEvent(EventFileDownloaded, 7, "report.pdf", "alice")
	hub.Broadcast(evt)

	for _, client := range []*websocket.Conn{first, second} {
		_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got Event
		require.NoError(t, client.ReadJSON(&got))
		assert.Equal(t, evt.ID, got.ID)
		assert.Equal(t, EventFileDownloaded, got.Type)
		assert.Equal(t, int64(7), got.FileID)
		assert.Equal(t, "report.pdf", got.Filename)
		assert.Equal(t, "alice", got.Actor)
	}
}

func TestHubUnregisterDropsConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_, server := dialTestConn(t, hub, 1)
	assert.Equal(t, 1, hub.OnlineCount())

	hub.Unregister(1, server)
	assert.Equal(t, 0, hub.OnlineCount())

	// broadcasting into an empty hub must not panic or block
	hub.Broadcast(NewEvent(EventFileUploaded, 1, "a.txt", "admin"))
}

func TestHubRegisterReplacesExistingConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	dialTestConn(t, hub, 1)
	dialTestConn(t, hub, 1)

	assert.Equal(t, 1, hub.OnlineCount())
}

func TestHubUnregisterIgnoresReplacedConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_, firstServer := dialTestConn(t, hub, 1)
	secondClient, _ := dialTestConn(t, hub, 1)

	// cleanup of the replaced connection must leave its successor mapped
	hub.Unregister(1, firstServer)
	assert.Equal(t, 1, hub.OnlineCount())

	evt := NewEvent(EventFileUploaded, 3, "report.pdf", "admin")
	hub.Broadcast(evt)

	_ = secondClient.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, secondClient.ReadJSON(&got))
	assert.Equal(t, evt.ID, got.ID)
}

func TestEventCarriesFreshID(t *testing.T) {
	a := NewEvent(EventFileUploaded, 1, "a.txt", "admin")
	b := NewEvent(EventFileUploaded, 1, "a.txt", "admin")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.At.IsZero())
}

package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemapi/bridge/internal/logging"
	"github.com/systemapi/bridge/internal/native"
	"github.com/systemapi/bridge/internal/native/nativetest"
	"github.com/systemapi/bridge/internal/ws"
)

func dial(t *testing.T, loaded bool) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := nativetest.NewFakeLoader()
	manager := native.NewManager(fake, nil)
	if loaded {
		require.NoError(t, manager.Load("/opt/app/"+native.LibraryName()))
	}

	handler := ws.NewHandler(native.NewBridge(manager), logging.NewDefault())

	router := gin.New()
	router.GET("/stream", handler.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHello(t *testing.T) {
	conn := dial(t, true)

	msg := readMessage(t, conn)
	assert.Equal(t, "hello", msg["type"])
	assert.NotEmpty(t, msg["client_id"])
}

func TestPing(t *testing.T) {
	conn := dial(t, true)
	readMessage(t, conn) // hello

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "pong", msg["type"])
}

func TestSnapshot(t *testing.T) {
	conn := dial(t, true)
	readMessage(t, conn) // hello

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "snapshot"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "snapshot", msg["type"])

	data := msg["data"].(map[string]interface{})
	assert.Equal(t, true, data["library_loaded"])
	assert.Equal(t, nativetest.DefaultHostName, data["hostname"])
	assert.Equal(t, float64(nativetest.DefaultPID), data["pid"])
}

func TestSnapshotDegradesUnloaded(t *testing.T) {
	conn := dial(t, false)
	readMessage(t, conn) // hello

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "snapshot"}))
	msg := readMessage(t, conn)

	data := msg["data"].(map[string]interface{})
	assert.Equal(t, false, data["library_loaded"])
	assert.NotContains(t, data, "hostname")
	assert.NotContains(t, data, "pid")
	assert.NotEmpty(t, data["platform"])
}

func TestSubscribeStreams(t *testing.T) {
	conn := dial(t, true)
	readMessage(t, conn) // hello

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":        "subscribe",
		"interval_ms": 10,
	}))

	// Immediate snapshot plus at least one tick.
	for i := 0; i < 2; i++ {
		msg := readMessage(t, conn)
		assert.Equal(t, "snapshot", msg["type"])
	}

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "unsubscribe"}))
}

func TestUnknownMessageType(t *testing.T) {
	conn := dial(t, true)
	readMessage(t, conn) // hello

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "bogus"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg["type"])
}

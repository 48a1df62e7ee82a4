package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shini4i/render-watcher/internal/models"
)

func dialWebSocket(t *testing.T, f *handlerFixture) (*websocket.Conn, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(f.router)
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.env.broadcaster.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	return conn, server
}

func readMessage(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, payload, err := conn.Read(ctx)
	require.NoError(t, err)
	return payload
}

func TestBroadcaster_Report(t *testing.T) {
	f := newHandlerFixture(t, nil)
	conn, _ := dialWebSocket(t, f)
	defer conn.Close(websocket.StatusNormalClosure, "")

	f.env.broadcaster.Report(models.Report{
		ServiceId: "srv-1",
		DeployId:  "dep-1",
		Progress:  &models.Progress{Status: models.DeployBuildInProgress},
	})

	var report models.Report
	require.NoError(t, json.Unmarshal(readMessage(t, conn), &report))
	assert.Equal(t, "dep-1", report.DeployId)
	require.NotNil(t, report.Progress)
	assert.Equal(t, models.DeployBuildInProgress, report.Progress.Status)
	assert.Nil(t, report.Result)
}

func TestBroadcaster_DeployLockMessages(t *testing.T) {
	f := newHandlerFixture(t, nil)
	conn, server := dialWebSocket(t, f)
	defer conn.Close(websocket.StatusNormalClosure, "")

	resp, err := http.Post(server.URL+"/api/v1/deploy-lock", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, lockedMessage, string(readMessage(t, conn)))
}

func TestBroadcaster_RemovesClosedConnections(t *testing.T) {
	f := newHandlerFixture(t, nil)
	conn, _ := dialWebSocket(t, f)

	_ = conn.Close(websocket.StatusNormalClosure, "bye")

	assert.Eventually(t, func() bool {
		return f.env.broadcaster.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocketHandshake(t *testing.T) {
	f := newHandlerFixture(t, nil)
	server := httptest.NewServer(f.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	assert.Equal(t, "websocket", resp.Header.Get("Upgrade"))
	assert.NotEmpty(t, resp.Header.Get("Sec-WebSocket-Accept"))
}

func TestUpgradeWriter_PassesThroughErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	// a plain GET is not an upgrade request, so Accept answers it with an error status
	c.Request = httptest.NewRequest(http.MethodGet, "/ws", nil)
	_, err := websocket.Accept(&upgradeWriter{writer: c.Writer}, c.Request, nil)
	c.Writer.WriteHeaderNow()

	assert.Error(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, recorder.Code)
}

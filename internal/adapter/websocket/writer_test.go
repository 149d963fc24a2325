package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/metrics"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConnPair(t *testing.T) (server *ws.Conn, client *ws.Conn) {
	t.Helper()
	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	ready := make(chan *ws.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		ready <- conn
	}))
	t.Cleanup(func() { srv.Close() })

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientConn.Close() })

	serverConn := <-ready
	t.Cleanup(func() { serverConn.Close() })

	return serverConn, clientConn
}

func newTestWriter(t *testing.T) (*clientWriter, *ws.Conn, *metrics.WebSocketMetrics) {
	t.Helper()
	server, client := newTestConnPair(t)
	m := metrics.NewWebSocketMetrics(prometheus.NewRegistry())
	cw := newClientWriter("sub-1", server, clockwork.NewRealClock(), m)
	t.Cleanup(func() {
		cw.Close()
		cw.wait()
	})
	return cw, client, m
}

func TestClientWriter_SendDelivers(t *testing.T) {
	cw, client, m := newTestWriter(t)

	require.NoError(t, cw.Send([]byte(`{"type":"update"}`)))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, ws.TextMessage, msgType)
	assert.JSONEq(t, `{"type":"update"}`, string(data))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.MessagesSent) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestClientWriter_SendAfterClose(t *testing.T) {
	cw, _, _ := newTestWriter(t)

	cw.Close()
	cw.Close() // idempotent

	assert.ErrorIs(t, cw.Send([]byte("x")), domain.ErrSubscriberClosed)
}

func TestClientWriter_FullBufferFailsFast(t *testing.T) {
	// No writer goroutine: nothing drains the buffer.
	cw := &clientWriter{
		id:          "slow",
		sendChannel: make(chan []byte, 2),
		doneChannel: make(chan struct{}),
	}

	require.NoError(t, cw.Send([]byte("1")))
	require.NoError(t, cw.Send([]byte("2")))
	assert.ErrorIs(t, cw.Send([]byte("3")), domain.ErrSubscriberSlow)
}

func TestClientWriter_CloseSendsCloseFrame(t *testing.T) {
	cw, client, _ := newTestWriter(t)

	cw.closeWith(ws.CloseGoingAway, "server shutting down")
	cw.wait()

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := client.ReadMessage()

	var closeErr *ws.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, ws.CloseGoingAway, closeErr.Code)
	assert.Equal(t, "server shutting down", closeErr.Text)
}

func TestClientWriter_ID(t *testing.T) {
	cw, _, _ := newTestWriter(t)
	assert.Equal(t, "sub-1", cw.ID())
}

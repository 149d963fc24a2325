package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/metrics"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
)

const (
	writeDeadline     = 5 * time.Second
	pingInterval      = 30 * time.Second
	pongDeadline      = 60 * time.Second
	messageBufferSize = 16
)

// clientWriter is the subscriber handle for one WebSocket connection. A single
// goroutine owns every write to the connection; Send only enqueues.
type clientWriter struct {
	id          string
	connection  *websocket.Conn
	clock       clockwork.Clock
	metrics     *metrics.WebSocketMetrics
	sendChannel chan []byte
	doneChannel chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup

	reasonMutex sync.Mutex
	closeCode   int
	closeReason string
}

func newClientWriter(id string, connection *websocket.Conn, clock clockwork.Clock, m *metrics.WebSocketMetrics) *clientWriter {
	cw := &clientWriter{
		id:          id,
		connection:  connection,
		clock:       clock,
		metrics:     m,
		sendChannel: make(chan []byte, messageBufferSize),
		doneChannel: make(chan struct{}),
		closeCode:   websocket.CloseNormalClosure,
	}
	cw.configurePongHandler()
	cw.wg.Add(1)
	go cw.run()
	return cw
}

func (cw *clientWriter) ID() string { return cw.id }

// Send queues data for the writer goroutine. It never blocks: a full buffer
// means the client is not keeping up and the push fails.
func (cw *clientWriter) Send(data []byte) error {
	select {
	case <-cw.doneChannel:
		return domain.ErrSubscriberClosed
	default:
	}

	select {
	case cw.sendChannel <- data:
		return nil
	default:
		return domain.ErrSubscriberSlow
	}
}

// Close stops the writer. The close frame is written by the writer goroutine,
// so Close returns without waiting on the network.
func (cw *clientWriter) Close() {
	cw.stopOnce.Do(func() {
		close(cw.doneChannel)
	})
}

// closeWith sets the close frame sent to the client, then closes the writer.
func (cw *clientWriter) closeWith(code int, reason string) {
	cw.reasonMutex.Lock()
	cw.closeCode = code
	cw.closeReason = reason
	cw.reasonMutex.Unlock()
	cw.Close()
}

// wait blocks until the writer goroutine has exited.
func (cw *clientWriter) wait() {
	cw.wg.Wait()
}

func (cw *clientWriter) run() {
	ticker := cw.clock.NewTicker(pingInterval)
	defer ticker.Stop()
	defer cw.wg.Done()
	defer func() { _ = cw.connection.Close() }()

	for {
		select {
		case msg := <-cw.sendChannel:
			start := cw.clock.Now()
			cw.updateWriteDeadline()
			if err := cw.connection.WriteMessage(websocket.TextMessage, msg); err != nil {
				cw.Close()
				return
			}
			cw.metrics.MessagesSent.Inc()
			cw.metrics.SendDuration.Observe(cw.clock.Since(start).Seconds())
		case <-ticker.Chan():
			cw.updateWriteDeadline()
			if err := cw.connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				// Ping failed - client likely disconnected
				cw.metrics.PingFailures.Inc()
				cw.Close()
				return
			}
		case <-cw.doneChannel:
			cw.writeCloseFrame()
			return
		}
	}
}

func (cw *clientWriter) writeCloseFrame() {
	cw.reasonMutex.Lock()
	closeMsg := websocket.FormatCloseMessage(cw.closeCode, cw.closeReason)
	cw.reasonMutex.Unlock()

	cw.updateWriteDeadline()
	_ = cw.connection.WriteMessage(websocket.CloseMessage, closeMsg)
}

func (cw *clientWriter) configurePongHandler() {
	cw.updateReadDeadline()
	cw.connection.SetPongHandler(func(string) error {
		cw.updateReadDeadline()
		return nil
	})
}

func (cw *clientWriter) updateWriteDeadline() {
	_ = cw.connection.SetWriteDeadline(cw.clock.Now().Add(writeDeadline))
}

func (cw *clientWriter) updateReadDeadline() {
	_ = cw.connection.SetReadDeadline(cw.clock.Now().Add(pongDeadline))
}

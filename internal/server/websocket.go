package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/models"
)

const (
	lockedMessage   = "locked"
	unlockedMessage = "unlocked"

	heartbeatInterval = 30 * time.Second
	writeTimeout      = 5 * time.Second
)

// Broadcaster fans out messages to every connected websocket client.
// It also implements monitor.Observer, pushing each monitor report as JSON.
type Broadcaster struct {
	mu          sync.Mutex
	connections []*websocket.Conn
	heartbeat   time.Duration
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{heartbeat: heartbeatInterval}
}

// Report implements monitor.Observer.
func (b *Broadcaster) Report(report models.Report) {
	payload, err := json.Marshal(report)
	if err != nil {
		log.Error().Msgf("couldn't encode monitor report: %s", err)
		return
	}
	b.Broadcast(payload)
}

// Broadcast sends message to all clients, dropping the ones that fail.
func (b *Broadcaster) Broadcast(message []byte) {
	var wg sync.WaitGroup

	for _, conn := range b.snapshot() {
		wg.Add(1)

		go func(c *websocket.Conn) {
			defer wg.Done()
			if err := b.write(c, message); err != nil {
				log.Debug().Err(err).Msg("websocket broadcast failed, removing connection")
				b.remove(c)
			}
		}(conn)
	}

	wg.Wait()
}

// Len returns the number of connected clients.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.connections)
}

func (b *Broadcaster) add(conn *websocket.Conn) {
	b.mu.Lock()
	b.connections = append(b.connections, conn)
	b.mu.Unlock()
}

func (b *Broadcaster) remove(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.connections {
		if b.connections[i] == conn {
			b.connections = append(b.connections[:i], b.connections[i+1:]...)
			break
		}
	}
}

func (b *Broadcaster) snapshot() []*websocket.Conn {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]*websocket.Conn, len(b.connections))
	copy(snapshot, b.connections)
	return snapshot
}

func (b *Broadcaster) write(conn *websocket.Conn, message []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, message)
}

// keepAlive sends heartbeats until the client goes away, then drops the connection.
func (b *Broadcaster) keepAlive(conn *websocket.Conn) {
	// clients only listen, CloseRead handles their control frames
	closed := conn.CloseRead(context.Background())

	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-closed.Done():
			b.remove(conn)
			return
		case <-ticker.C:
			if err := b.write(conn, []byte("heartbeat")); err != nil {
				log.Debug().Err(err).Msg("websocket heartbeat failed, removing connection")
				_ = conn.Close(websocket.StatusGoingAway, "heartbeat failed")
				b.remove(conn)
				return
			}
		}
	}
}

// handleWebSocketConnection accepts a client and keeps it registered until it disconnects.
func (env *Env) handleWebSocketConnection(c *gin.Context) {
	options := &websocket.AcceptOptions{
		InsecureSkipVerify: env.config.DevEnvironment, // disables origin validation
	}

	conn, err := websocket.Accept(&upgradeWriter{writer: c.Writer}, c.Request, options)
	if err != nil {
		log.Error().Msgf("couldn't accept websocket connection, got the following error: %s", err)
		return
	}

	env.broadcaster.add(conn)
	go env.broadcaster.keepAlive(conn)
}

// upgradeWriter adapts a gin writer for websocket.Accept. gin only records the 101
// status and cannot hijack a flushed response, so WriteHeaderNow is not exposed and
// the 101 response is written to the hijacked connection.
type upgradeWriter struct {
	writer gin.ResponseWriter
}

func (u *upgradeWriter) Header() http.Header {
	return u.writer.Header()
}

func (u *upgradeWriter) Write(data []byte) (int, error) {
	return u.writer.Write(data)
}

func (u *upgradeWriter) WriteHeader(statusCode int) {
	u.writer.WriteHeader(statusCode)
}

func (u *upgradeWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if u.writer.Status() != http.StatusSwitchingProtocols {
		return u.writer.Hijack()
	}

	netConn, brw, err := u.writer.Hijack()
	if err != nil {
		return nil, nil, err
	}

	if err := writeSwitchingProtocols(brw.Writer, u.writer.Header()); err != nil {
		_ = netConn.Close()
		return nil, nil, fmt.Errorf("failed to send switching protocols response: %w", err)
	}
	return netConn, brw, nil
}

func writeSwitchingProtocols(w *bufio.Writer, header http.Header) error {
	if _, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", http.StatusSwitchingProtocols, http.StatusText(http.StatusSwitchingProtocols)); err != nil {
		return err
	}
	if err := header.Write(w); err != nil {
		return err
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}
	return w.Flush()
}

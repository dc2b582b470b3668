package builder

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

const (
	liveBuffer     = 16
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10
)

// hub fans workspace snapshots out to the websocket subscribers of one
// session. Slow subscribers miss intermediate snapshots; the next one carries
// the full state anyway.
type hub struct {
	mu     sync.Mutex
	subs   map[chan []byte]struct{}
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[chan []byte]struct{})}
}

func (h *hub) subscribe() (chan []byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	ch := make(chan []byte, liveBuffer)
	h.subs[ch] = struct{}{}
	return ch, true
}

func (h *hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *hub) publish(msg []byte) {
	if msg == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// publishSnapshot pushes the current state to live subscribers. Schema
// changes arrive through the workspace listener; drag start and end call it
// directly since they leave the schema alone.
func (sess *session) publishSnapshot() {
	sess.live.publish(snapshotMessage(sess.workspace))
}

func snapshotMessage(ws *workspace.Workspace) []byte {
	data, err := json.Marshal(newStateResponse(ws, false))
	if err != nil {
		return nil
	}
	return data
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// serveLive upgrades the connection and streams snapshots until either side
// goes away. The first message is the current state.
func (s *server) serveLive(w http.ResponseWriter, r *http.Request, sess *session) {
	ch, ok := sess.live.subscribe()
	if !ok {
		writeError(w, StatusError{Code: http.StatusGone})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		sess.live.unsubscribe(ch)
		s.opts.Logger.Debug().Err(err).Msg("builder: live upgrade failed")
		return
	}

	sess.mu.Lock()
	initial := snapshotMessage(sess.workspace)
	sess.mu.Unlock()

	done := make(chan struct{})
	go readLive(conn, done)
	writeLive(conn, ch, initial, done)
	sess.live.unsubscribe(ch)
	_ = conn.Close()
}

// readLive drains client frames so control messages are processed and a
// disconnect is noticed.
func readLive(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeLive(conn *websocket.Conn, ch chan []byte, initial []byte, done chan struct{}) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	write := func(kind int, data []byte) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		return conn.WriteMessage(kind, data) == nil
	}

	if initial != nil && !write(websocket.TextMessage, initial) {
		return
	}
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
				return
			}
			if !write(websocket.TextMessage, msg) {
				return
			}
		case <-ticker.C:
			if !write(websocket.PingMessage, nil) {
				return
			}
		case <-done:
			return
		}
	}
}

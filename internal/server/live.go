package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"homerelief/internal/collection"
	"homerelief/pkg/types"

	"github.com/gorilla/websocket"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10
)

// liveMessage tells the browser to reload the rows fragment.
type liveMessage struct {
	Type   string           `json:"type"`
	Kind   types.RecordKind `json:"kind"`
	Op     types.ChangeOp   `json:"op,omitempty"`
	ID     string           `json:"id,omitempty"`
	Failed bool             `json:"failed,omitempty"`
}

// handleLive upgrades to a websocket and keeps the user's view subscribed to
// change events until the socket closes or the user signs out.
func (t *adminTable[T]) handleLive(w http.ResponseWriter, r *http.Request) {
	v := t.view(r)
	t.load(r.Context(), v, r.URL.Query(), false)
	key := t.key(r)

	conn, err := t.s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.s.logger.WithError(err).Info("failed to upgrade live connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan liveMessage, 1)
	stop := v.Listen(ctx, t.s.feed, func(ev types.ChangeEvent, err error) {
		if errors.Is(err, collection.ErrStale) {
			return
		}
		msg := liveMessage{Type: "refresh", Kind: ev.Kind, Op: ev.Op, ID: ev.ID, Failed: err != nil}
		// a pending refresh already covers this event
		select {
		case events <- msg:
		default:
		}
	})
	defer stop()

	id, ok := t.s.views.attach(key, cancel)
	if !ok {
		return
	}
	defer t.s.views.detach(key, id)

	go func() {
		defer cancel()
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
	}()

	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	log := t.s.logger.WithField("kind", t.schema.Kind).WithField("user_id", key.userID)
	log.Debug("live connection opened")
	defer log.Debug("live connection closed")

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.WithError(err).Debug("failed to write live message")
				return
			}
			t.s.views.touch(key)
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

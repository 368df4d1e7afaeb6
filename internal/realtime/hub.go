// Package realtime fans out Postgres change notifications to in-process
// subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"homerelief/pkg/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Channel is the NOTIFY channel written by the record_changes trigger.
const Channel = "record_changes"

type Hub struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
	retry  time.Duration

	mu   sync.Mutex
	subs map[types.RecordKind]map[string]chan types.ChangeEvent
}

func NewHub(pool *pgxpool.Pool, logger *logrus.Logger, retry time.Duration) *Hub {
	if retry <= 0 {
		retry = 5 * time.Second
	}

	return &Hub{
		pool:   pool,
		logger: logger,
		retry:  retry,
		subs:   make(map[types.RecordKind]map[string]chan types.ChangeEvent),
	}
}

// Subscribe registers a listener for one record kind. Each subscriber holds
// at most one pending event; further events are coalesced into it because
// receivers re-fetch rather than apply deltas.
func (h *Hub) Subscribe(kind types.RecordKind) (<-chan types.ChangeEvent, func()) {
	id := uuid.NewString()
	ch := make(chan types.ChangeEvent, 1)

	h.mu.Lock()
	if h.subs[kind] == nil {
		h.subs[kind] = make(map[string]chan types.ChangeEvent)
	}
	h.subs[kind][id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[kind], id)
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions for kind.
func (h *Hub) Subscribers(kind types.RecordKind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[kind])
}

// Publish delivers ev to every subscriber of its kind without blocking and
// returns how many received a new event.
func (h *Hub) Publish(ev types.ChangeEvent) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, ch := range h.subs[ev.Kind] {
		select {
		case ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

func decodeEvent(payload string) (types.ChangeEvent, error) {
	var ev types.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, fmt.Errorf("decode change payload: %w", err)
	}

	if !ev.Kind.Valid() {
		return ev, fmt.Errorf("unknown record kind %q", ev.Kind)
	}

	return ev, nil
}

// Run listens until ctx is cancelled, reconnecting after failures.
func (h *Hub) Run(ctx context.Context) error {
	for {
		err := h.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		h.logger.WithError(err).WithField("retry_in", h.retry.String()).Warn("realtime listener disconnected")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(h.retry):
		}
	}
}

func (h *Hub) listen(ctx context.Context) error {
	conn, err := h.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("listen %s: %w", Channel, err)
	}
	defer func() {
		if !conn.Conn().IsClosed() {
			_, _ = conn.Exec(context.Background(), "UNLISTEN *")
		}
	}()

	h.logger.WithField("channel", Channel).Info("realtime listener connected")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		ev, err := decodeEvent(n.Payload)
		if err != nil {
			h.logger.WithError(err).WithField("payload", n.Payload).Warn("dropping change notification")
			continue
		}

		h.Publish(ev)
	}
}

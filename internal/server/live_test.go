package server

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"homerelief/pkg/types"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFeed hands out one channel per subscription and tracks which are
// still open.
type testFeed struct {
	mu   sync.Mutex
	next int
	subs map[int]chan types.ChangeEvent
}

func newTestFeed() *testFeed {
	return &testFeed{subs: map[int]chan types.ChangeEvent{}}
}

func (f *testFeed) Subscribe(types.RecordKind) (<-chan types.ChangeEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	id := f.next
	ch := make(chan types.ChangeEvent, 4)
	f.subs[id] = ch
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

func (f *testFeed) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *testFeed) publish(ev types.ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		ch <- ev
	}
}

func (r *viewRegistry) listenerCount(key viewKey) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		return len(e.listeners)
	}
	return 0
}

func TestLiveSocketPushesRefreshAndReleasesFeed(t *testing.T) {
	f := newAdminFixture(t)
	feed := newTestFeed()
	f.svc.feed = feed

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/reports/live"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()

	key := viewKey{userID: "admin-1", kind: types.KindDamageReport}
	require.Eventually(t, func() bool {
		return feed.subscribers() == 1 && f.svc.views.listenerCount(key) == 1
	}, 2*time.Second, 10*time.Millisecond)

	f.source.mu.Lock()
	f.source.rows = append(f.source.rows, &types.DamageReport{
		ID: "r3", FullName: "Saman Kumara", District: "Colombo", CreatedAt: createdBase.Add(3 * time.Hour),
	})
	f.source.mu.Unlock()

	feed.publish(types.ChangeEvent{Kind: types.KindDamageReport, Op: types.ChangeOpInsert, ID: "r3"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg liveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "refresh", msg.Type)
	assert.Equal(t, types.KindDamageReport, msg.Kind)
	assert.Equal(t, types.ChangeOpInsert, msg.Op)
	assert.Equal(t, "r3", msg.ID)
	assert.False(t, msg.Failed)

	rec := f.get(t, "/admin/reports/rows")
	assert.Contains(t, rec.Body.String(), "Saman Kumara")

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return feed.subscribers() == 0 && f.svc.views.listenerCount(key) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

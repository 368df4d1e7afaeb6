package collection_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"homerelief/internal/collection"
	"homerelief/pkg/types"
)

var errRemote = errors.New("remote unavailable")

var baseTime = time.Date(2024, 11, 20, 8, 0, 0, 0, time.UTC)

// memorySource evaluates queries against an in-memory table the way the
// store would.
type memorySource struct {
	mu      sync.Mutex
	rows    []*types.DamageReport
	calls   int
	queries []collection.Query
	fail    error
	// hook runs before the query is evaluated, outside the lock.
	hook func(call int)
	// waitForCancel makes Fetch block until ctx ends and return its error,
	// as pgx does for an abandoned query.
	waitForCancel bool
}

func newMemorySource(rows []*types.DamageReport) *memorySource {
	return &memorySource{rows: rows}
}

func (m *memorySource) Fetch(ctx context.Context, q collection.Query) (*collection.Result[*types.DamageReport], error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.queries = append(m.queries, q)
	hook := m.hook
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	m.mu.Lock()
	wait := m.waitForCancel
	m.mu.Unlock()
	if wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return nil, m.fail
	}

	matched := make([]*types.DamageReport, 0, len(m.rows))
	for _, r := range m.rows {
		if matches(r, q) {
			matched = append(matched, r)
		}
	}

	slices.SortStableFunc(matched, func(a, b *types.DamageReport) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if q.Order.Desc {
			return -c
		}
		return c
	})

	total := len(matched)
	start := min(q.Offset, total)
	end := min(q.Offset+q.Limit, total)

	page := make([]*types.DamageReport, 0, end-start)
	for _, r := range matched[start:end] {
		cp := *r
		cp.EssentialNeeds = slices.Clone(r.EssentialNeeds)
		page = append(page, &cp)
	}

	return &collection.Result[*types.DamageReport]{Records: page, Total: &total}, nil
}

func (m *memorySource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func field(r *types.DamageReport, column string) any {
	switch column {
	case "full_name":
		return r.FullName
	case "phone_number":
		return r.PhoneNumber
	case "district":
		return r.District
	case "damage_type":
		return string(r.DamageType)
	case "verified":
		return r.Verified
	case "essential_needs":
		return r.EssentialNeeds
	}
	panic("unknown column " + column)
}

func matches(r *types.DamageReport, q collection.Query) bool {
	if q.Search != nil {
		hit := false
		for _, col := range q.Search.Columns {
			if s, ok := field(r, col).(string); ok && strings.Contains(strings.ToLower(s), strings.ToLower(q.Search.Term)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for _, p := range q.Where {
		switch p.Op {
		case collection.OpEq:
			if field(r, p.Column) != p.Value {
				return false
			}
		case collection.OpContains:
			list, _ := field(r, p.Column).([]string)
			if !slices.Contains(list, p.Value.(string)) {
				return false
			}
		}
	}
	return true
}

type recordingWriter struct {
	mu    sync.Mutex
	calls [][]string
	at    []time.Time
	fail  error
}

func (w *recordingWriter) SetVerified(ctx context.Context, ids []string, verified bool, at time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, slices.Clone(ids))
	w.at = append(w.at, at)
	return w.fail
}

type chanFeed struct {
	mu           sync.Mutex
	ch           chan types.ChangeEvent
	kind         types.RecordKind
	unsubscribed bool
}

func newChanFeed() *chanFeed {
	return &chanFeed{ch: make(chan types.ChangeEvent, 4)}
}

func (f *chanFeed) Subscribe(kind types.RecordKind) (<-chan types.ChangeEvent, func()) {
	f.mu.Lock()
	f.kind = kind
	f.mu.Unlock()
	return f.ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribed = true
	}
}

func (f *chanFeed) Unsubscribed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribed
}

var districts = []string{"Colombo", "Gampaha", "Kalutara", "Galle", "Kandy"}

// sampleReports builds n reports; every other one is verified and newer ids
// have later creation times.
func sampleReports(n int) []*types.DamageReport {
	out := make([]*types.DamageReport, 0, n)
	for i := range n {
		out = append(out, &types.DamageReport{
			ID:             fmt.Sprintf("r%02d", i),
			FullName:       fmt.Sprintf("Resident %d", i),
			PhoneNumber:    fmt.Sprintf("07700000%02d", i),
			District:       districts[i%len(districts)],
			DSDivision:     "Division",
			GNDivision:     "Locality",
			DamageType:     types.DamageTypes[i%len(types.DamageTypes)],
			FamilyMembers:  1 + i%5,
			EssentialNeeds: []string{"Cement", "Wood"},
			Verified:       i%2 == 0,
			CreatedAt:      baseTime.Add(time.Duration(i) * time.Hour),
			UpdatedAt:      baseTime.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func fixedClock() time.Time {
	return time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC)
}

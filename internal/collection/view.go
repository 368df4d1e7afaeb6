package collection

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "idle"
	}
}

type options struct {
	writer VerificationWriter
	now    func() time.Time
}

type Option func(*options)

// WithVerificationWriter permits verification mutations on the view.
func WithVerificationWriter(w VerificationWriter) Option {
	return func(o *options) { o.writer = w }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// View holds one page of records of a single kind together with the state
// that produced it, the bulk selection and pending notices.
type View[T Record] struct {
	schema Schema
	source Source[T]
	writer VerificationWriter
	now    func() time.Time

	mu        sync.Mutex
	state     State
	status    Status
	records   []T
	total     *int
	lastErr   error
	seq       uint64
	selection *Selection
	notices   []Notice
}

func NewView[T Record](schema Schema, source Source[T], opts ...Option) *View[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &View[T]{
		schema:    schema,
		source:    source,
		writer:    o.writer,
		now:       o.now,
		state:     State{Filters: map[string]string{}, Page: 1},
		selection: NewSelection(),
	}
}

func (v *View[T]) Schema() Schema { return v.schema }

func (v *View[T]) CanVerify() bool { return v.writer != nil }

// Refresh runs the current query and replaces the page on success. A response
// that arrives after a newer fetch was issued is dropped with ErrStale. On
// failure the previous page is kept. A fetch abandoned because ctx ended
// leaves the status as it was and queues no notice.
func (v *View[T]) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	q := Build(v.schema, v.state)
	prev := v.status
	v.status = StatusLoading
	v.mu.Unlock()

	res, err := v.source.Fetch(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		return ErrStale
	}

	// a cancelled caller, such as a stopped listener, is not a load failure
	if err != nil && ctx.Err() != nil {
		v.status = prev
		return fmt.Errorf("fetch %s: %w", v.schema.Kind, err)
	}

	if err != nil {
		v.status = StatusErrored
		v.lastErr = err
		v.notify(LevelError, NoticeLoadFailed)
		return fmt.Errorf("fetch %s: %w", v.schema.Kind, err)
	}

	v.records = res.Records
	v.total = res.Total
	v.lastErr = nil
	v.status = StatusLoaded

	return nil
}

func (v *View[T]) update(fn func(s *State)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.state.Clone()
	fn(&next)
	next.Page = normalizePage(next.Page)
	v.state = next
}

func (v *View[T]) SetSearch(ctx context.Context, term string) error {
	v.update(func(s *State) {
		s.Search = term
		s.Page = 1
	})
	return v.Refresh(ctx)
}

func (v *View[T]) SetFilter(ctx context.Context, name, value string) error {
	v.update(func(s *State) {
		if value == "" || value == FilterAll {
			delete(s.Filters, name)
		} else {
			s.Filters[name] = value
		}
		s.Page = 1
	})
	return v.Refresh(ctx)
}

func (v *View[T]) SetSort(ctx context.Context, column string, desc bool) error {
	v.update(func(s *State) {
		s.Sort = Sort{Column: column, Desc: desc}
		s.Page = 1
	})
	return v.Refresh(ctx)
}

func (v *View[T]) ToggleSort(ctx context.Context, column string) error {
	v.update(func(s *State) {
		*s = s.WithToggledSort(v.schema, column)
	})
	return v.Refresh(ctx)
}

func (v *View[T]) SetPage(ctx context.Context, page int) error {
	v.update(func(s *State) {
		s.Page = page
	})
	return v.Refresh(ctx)
}

// Apply replaces the whole state, typically one decoded from a request url,
// and fetches.
func (v *View[T]) Apply(ctx context.Context, state State) error {
	v.update(func(s *State) {
		*s = state.Clone()
	})
	return v.Refresh(ctx)
}

func (v *View[T]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Clone()
}

func (v *View[T]) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// Records returns a copy of the current page.
func (v *View[T]) Records() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.records)
}

func (v *View[T]) Total() (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.total == nil {
		return len(v.records), false
	}
	return *v.total, true
}

// PageCount is derived from the exact total, at least 1.
func (v *View[T]) PageCount() int {
	total, _ := v.Total()
	size := v.schema.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Selection

func (v *View[T]) Select(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Add(id)
}

func (v *View[T]) Deselect(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Remove(id)
}

func (v *View[T]) Toggle(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Toggle(id)
}

// SelectAllVisible adds every id on the current page. Ids on other pages are
// neither fetched nor touched.
func (v *View[T]) SelectAllVisible() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.records {
		v.selection.Add(r.RecordID())
	}
}

// ToggleAllVisible deselects the page when it is fully selected and selects
// it otherwise.
func (v *View[T]) ToggleAllVisible() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.allVisibleSelected() {
		for _, r := range v.records {
			v.selection.Remove(r.RecordID())
		}
		return
	}

	for _, r := range v.records {
		v.selection.Add(r.RecordID())
	}
}

func (v *View[T]) AllVisibleSelected() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.allVisibleSelected()
}

func (v *View[T]) allVisibleSelected() bool {
	if len(v.records) == 0 {
		return false
	}
	for _, r := range v.records {
		if !v.selection.Has(r.RecordID()) {
			return false
		}
	}
	return true
}

func (v *View[T]) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Clear()
}

func (v *View[T]) IsSelected(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Has(id)
}

func (v *View[T]) Selected() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.IDs()
}

// Mutations

// SetVerified writes the flag for one record and, once the store has
// acknowledged it, applies the same flag and timestamp to the local copy.
func (v *View[T]) SetVerified(ctx context.Context, id string, verified bool) error {
	if v.writer == nil {
		v.addNotice(LevelError, NoticeNotPermitted)
		return ErrNotPermitted
	}

	at := v.now().UTC()
	if err := v.writer.SetVerified(ctx, []string{id}, verified, at); err != nil {
		v.addNotice(LevelError, NoticeVerifyFailed)
		return fmt.Errorf("set verified on %s %s: %w", v.schema.Kind, id, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.applyVerification(map[string]struct{}{id: {}}, verified, at)

	key := NoticeUnverified
	if verified {
		key = NoticeVerified
	}
	v.notify(LevelSuccess, key)

	return nil
}

// BulkSetVerified writes the flag for every selected id in one batch. An empty
// selection is rejected without contacting the store. On success the
// selection is cleared.
func (v *View[T]) BulkSetVerified(ctx context.Context, verified bool) (int, error) {
	if v.writer == nil {
		v.addNotice(LevelError, NoticeNotPermitted)
		return 0, ErrNotPermitted
	}

	ids := v.Selected()
	if len(ids) == 0 {
		v.addNotice(LevelWarning, NoticeSelectOne)
		return 0, ErrEmptySelection
	}

	at := v.now().UTC()
	if err := v.writer.SetVerified(ctx, ids, verified, at); err != nil {
		v.addNotice(LevelError, NoticeBulkFailed)
		return 0, fmt.Errorf("bulk set verified on %s: %w", v.schema.Kind, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	v.applyVerification(set, verified, at)
	v.selection.Clear()
	v.notify(LevelSuccess, NoticeBulkUpdated, strconv.Itoa(len(ids)))

	return len(ids), nil
}

func (v *View[T]) applyVerification(ids map[string]struct{}, verified bool, at time.Time) {
	// copy on write: the old slice and records may still be read by callers
	// of Records outside the lock
	records := slices.Clone(v.records)
	for i, r := range records {
		if _, ok := ids[r.RecordID()]; !ok {
			continue
		}
		if vr, ok := any(r).(Verifiable[T]); ok {
			records[i] = vr.WithVerification(verified, at)
		}
	}
	v.records = records
}

// Notices

func (v *View[T]) notify(level NoticeLevel, key string, params ...string) {
	v.notices = append(v.notices, Notice{Level: level, Key: key, Params: params})
}

func (v *View[T]) addNotice(level NoticeLevel, key string, params ...string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notify(level, key, params...)
}

// TakeNotices drains queued notices.
func (v *View[T]) TakeNotices() []Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.notices
	v.notices = nil
	return out
}

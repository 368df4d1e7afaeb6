// Package collection implements a view-model over a remote, paginated table of
// records: query building, fetching, selection, verification mutations, change
// listening and CSV export. One View is owned per screen and record kind.
package collection

import (
	"context"
	"errors"
	"time"

	"homerelief/pkg/types"
)

var (
	ErrEmptySelection = errors.New("no records selected")
	ErrNotPermitted   = errors.New("mutation not permitted for record kind")
	ErrStale          = errors.New("response superseded by a newer fetch")
)

type Record interface {
	RecordID() string
}

// Verifiable records return a copy carrying the verification flag written
// by a VerificationWriter, so the local page can mirror the store without
// mutating records already handed out by Records.
type Verifiable[T Record] interface {
	WithVerification(verified bool, at time.Time) T
}

type Result[T Record] struct {
	Records []T
	// Total is the exact match count when the query asked for one.
	Total *int
}

type Source[T Record] interface {
	Fetch(ctx context.Context, q Query) (*Result[T], error)
}

type VerificationWriter interface {
	SetVerified(ctx context.Context, ids []string, verified bool, at time.Time) error
}

// Feed delivers change notifications for one record kind. The returned func
// must be called to release the subscription.
type Feed interface {
	Subscribe(kind types.RecordKind) (<-chan types.ChangeEvent, func())
}

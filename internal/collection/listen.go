package collection

import (
	"context"
	"sync"

	"homerelief/pkg/types"
)

// Listen subscribes the view to change events for its kind. Every event
// triggers a full Refresh; onChange, when set, observes the event and the
// refresh result. The returned stop func unsubscribes and waits for the
// listener to exit. It is safe to call more than once.
func (v *View[T]) Listen(ctx context.Context, feed Feed, onChange func(types.ChangeEvent, error)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	events, unsubscribe := feed.Subscribe(v.schema.Kind)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Kind != "" && ev.Kind != v.schema.Kind {
					continue
				}

				err := v.Refresh(ctx)
				if onChange != nil {
					onChange(ev, err)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			unsubscribe()
			<-done
		})
	}
}

// internal/feed/feed.go
// Package feed produces trial records and dispatches them into the
// experiment state store, either synthetically or from a recorded log.
package feed

import (
	"context"

	"github.com/mwiater/trialscope/internal/store"
)

// Dispatcher receives the actions a source emits. *store.Store satisfies it.
type Dispatcher interface {
	Dispatch(store.Action)
}

// Source is any producer of trial updates: a synthetic generator, a replay
// log, or a live training job. Run blocks until the source is exhausted or
// the context is cancelled. There is no backpressure: if records arrive
// faster than consumers process them, later updates simply supersede
// earlier ones in the store.
type Source interface {
	Run(ctx context.Context) error
}

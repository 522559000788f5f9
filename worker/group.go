// Package worker runs the background tasks of a picker session: catalog load,
// preview fetches and drawable downloads. All of them share one context, so
// closing the group abandons everything still running.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	eg     errgroup.Group
	sem    *semaphore.Weighted
	log    *logrus.Entry

	mu     sync.Mutex
	closed bool
}

// New creates a group allowing at most limit tasks to run at once.
func New(parent context.Context, limit int, log *logrus.Entry) *Group {
	if limit < 1 {
		limit = 1
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	ctx, cancel := context.WithCancel(parent)
	return &Group{
		ctx:    ctx,
		cancel: cancel,
		sem:    semaphore.NewWeighted(int64(limit)),
		log:    log,
	}
}

func (g *Group) Context() context.Context {
	return g.ctx
}

// Go schedules fn without blocking the caller. fn always runs exactly once; when
// the group is closed it runs with an already canceled context. A failing task
// is logged and never cancels its siblings.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		go fn(g.ctx)
		return
	}

	g.eg.Go(func() error {
		if err := g.sem.Acquire(g.ctx, 1); err != nil {
			_ = fn(g.ctx)
			return nil
		}
		defer g.sem.Release(1)

		if err := fn(g.ctx); err != nil && !errors.Is(err, context.Canceled) {
			g.log.WithError(err).Debug("task failed")
		}
		return nil
	})
}

// Close cancels every task and waits for the running ones to return.
func (g *Group) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()

	g.cancel()
	return g.eg.Wait()
}

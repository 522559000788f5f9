// Package cache holds the session-scoped keyed caches used for preview images
// and drawable contents. Entries live until the owning session is disposed.
package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// ErrClosed is returned by Get once the cache has been closed.
var ErrClosed = errors.New("cache closed")

// LoadFunc produces the value for a key. It runs on a worker goroutine.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Runner starts background work. fn must be called exactly once.
type Runner interface {
	Go(fn func(ctx context.Context) error)
}

type goRunner struct{}

func (goRunner) Go(fn func(ctx context.Context) error) {
	go fn(context.Background())
}

// Option configures a Keyed cache.
type Option func(*options)

type options struct {
	runner   Runner
	dispatch func(func())
	name     string
}

// WithRunner runs loads on r instead of bare goroutines.
func WithRunner(r Runner) Option {
	return func(o *options) { o.runner = r }
}

// WithDispatcher routes Request notifications through dispatch, typically to
// hop onto the UI goroutine. Get waiters are never dispatched.
func WithDispatcher(dispatch func(func())) Option {
	return func(o *options) { o.dispatch = dispatch }
}

// WithName labels log lines.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

type call[V any] struct {
	done    chan struct{}
	waiters []func(V, error)
	val     V
	err     error
}

// Stats is a point-in-time snapshot.
type Stats struct {
	Entries  int
	InFlight int
	Loads    int64
	Failures int64
}

// Keyed caches values by key with at most one load in flight per key.
// Failed loads are not cached; the next request loads again.
type Keyed[K comparable, V any] struct {
	load LoadFunc[K, V]
	opts options

	mu       sync.Mutex
	entries  map[K]V
	inflight map[K]*call[V]
	closed   bool

	loads    atomic.Int64
	failures atomic.Int64
}

func New[K comparable, V any](load LoadFunc[K, V], opts ...Option) *Keyed[K, V] {
	o := options{
		runner:   goRunner{},
		dispatch: func(fn func()) { fn() },
		name:     "cache",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Keyed[K, V]{
		load:     load,
		opts:     o,
		entries:  make(map[K]V),
		inflight: make(map[K]*call[V]),
	}
}

// Lookup is a plain map read; it never starts a load.
func (c *Keyed[K, V]) Lookup(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Request returns the cached value if present. Otherwise it registers notify
// (which may be nil) and makes sure exactly one load for key is running; notify
// is called once when that load finishes, successful or not.
func (c *Keyed[K, V]) Request(key K, notify func(V, error)) (V, bool) {
	v, hit, _, err := c.claim(key, notify)
	if err != nil {
		var zero V
		return zero, false
	}
	return v, hit
}

// Get waits for the value, joining an in-flight load if there is one.
func (c *Keyed[K, V]) Get(ctx context.Context, key K) (V, error) {
	v, hit, cl, err := c.claim(key, nil)
	if err != nil || hit {
		return v, err
	}
	select {
	case <-cl.done:
		return cl.val, cl.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

func (c *Keyed[K, V]) claim(key K, notify func(V, error)) (V, bool, *call[V], error) {
	var zero V

	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v, true, nil, nil
	}
	if c.closed {
		c.mu.Unlock()
		return zero, false, nil, ErrClosed
	}
	cl, running := c.inflight[key]
	if !running {
		cl = &call[V]{done: make(chan struct{})}
		c.inflight[key] = cl
	}
	if notify != nil {
		cl.waiters = append(cl.waiters, notify)
	}
	c.mu.Unlock()

	if !running {
		c.start(key, cl)
	}
	return zero, false, cl, nil
}

func (c *Keyed[K, V]) start(key K, cl *call[V]) {
	c.loads.Add(1)
	c.opts.runner.Go(func(ctx context.Context) error {
		v, err := c.load(ctx, key)
		c.finish(key, cl, v, err)
		return err
	})
}

func (c *Keyed[K, V]) finish(key K, cl *call[V], v V, err error) {
	c.mu.Lock()
	if c.inflight[key] == cl {
		delete(c.inflight, key)
	}
	if err == nil {
		c.entries[key] = v
	}
	cl.val, cl.err = v, err
	waiters := cl.waiters
	cl.waiters = nil
	closed := c.closed
	c.mu.Unlock()

	close(cl.done)

	if err != nil {
		c.failures.Add(1)
		logrus.WithFields(logrus.Fields{"cache": c.opts.name, "key": key}).WithError(err).Debug("load failed")
	}
	if closed {
		return
	}
	for _, w := range waiters {
		w := w
		c.opts.dispatch(func() { w(v, err) })
	}
}

// Stats reports sizes and load counters.
func (c *Keyed[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:  len(c.entries),
		InFlight: len(c.inflight),
		Loads:    c.loads.Load(),
		Failures: c.failures.Load(),
	}
}

// Close stops new loads and drops notifications for loads still running.
// Cached values stay readable through Lookup.
func (c *Keyed[K, V]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

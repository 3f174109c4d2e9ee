package query

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/remote"
)

// Mode is the controller's listing state.
type Mode string

const (
	ModeListing   Mode = "listing"
	ModeFiltering Mode = "filtering"
)

// DefaultDebounce is the quiescence window applied to typed search text.
const DefaultDebounce = 150 * time.Millisecond

// Controller owns the sort key/direction and search text, debounces typed
// input, and decides whether to request the full or the filtered listing.
// Sorting and filtering are server-delegated; the controller never reorders
// results locally.
//
// Every issued fetch carries a sequence number. A response only replaces
// the catalog when no newer fetch has been issued since, so overlapping
// triggers resolve last-write-wins without flicker.
type Controller struct {
	service remote.Service
	store   *catalog.Store
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	mode     Mode
	sortKey  string
	sortDir  string
	pending  string
	query    string
	debounce time.Duration
	timer    *time.Timer
	seq      uint64
	closed   bool
}

func NewController(svc remote.Service, store *catalog.Store, debounce time.Duration, logger *zap.Logger) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		service:  svc,
		store:    store,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		mode:     ModeListing,
		sortKey:  remote.SortSubject,
		sortDir:  remote.DirAsc,
		debounce: debounce,
	}
}

// Start issues the initial full-catalog fetch.
func (c *Controller) Start(ctx context.Context) error {
	return c.fetch(ctx)
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Sort() (key, dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortKey, c.sortDir
}

// Query returns the committed search text.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetSort changes the sort parameters and re-issues the current mode's
// fetch. On failure the catalog and the controller state stay as they were.
func (c *Controller) SetSort(ctx context.Context, key, dir string) error {
	c.mu.Lock()
	c.sortKey = key
	c.sortDir = dir
	c.mu.Unlock()

	return c.fetch(ctx)
}

// TypeSearch records a keystroke's worth of search text. The text is only
// committed after the quiescence window passes without another keystroke;
// rapid input cancels and restarts the timer so just the last value fires.
func (c *Controller) TypeSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.pending = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.commitSearch)
}

// ClearSearch drops any pending debounce, forces the controller back to
// listing mode and refetches immediately.
func (c *Controller) ClearSearch(ctx context.Context) error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = ""
	c.query = ""
	c.mode = ModeListing
	c.mu.Unlock()

	return c.fetch(ctx)
}

// Refresh re-issues the active query, resynchronizing capacity after a
// checkout. In listing mode (the usual post-checkout state) this is the
// full-catalog fetch; in filtering mode refetching the active filter keeps
// the displayed list consistent while still pulling fresh spaces.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// Close stops the owned debounce timer. Pending commits are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancel()
}

// commitSearch runs on the debounce timer goroutine.
func (c *Controller) commitSearch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query = c.pending
	if c.query == "" {
		c.mode = ModeListing
	} else {
		c.mode = ModeFiltering
	}
	c.mu.Unlock()

	// No caller to hand the error to on this path; log and keep the
	// last-good catalog.
	if err := c.fetch(c.ctx); err != nil {
		c.logger.Warn("search fetch failed", zap.Error(err))
	}
}

// fetch snapshots the current parameters, issues the request without
// holding the lock, and applies the response only if it is still the
// newest issued fetch.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	mode, query := c.mode, c.query
	key, dir := c.sortKey, c.sortDir
	c.mu.Unlock()

	var (
		lessons []catalog.Lesson
		err     error
	)
	if mode == ModeFiltering {
		lessons, err = c.service.SearchLessons(ctx, query, key, dir)
	} else {
		lessons, err = c.service.FetchLessons(ctx, key, dir)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug("dropping stale listing response",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", c.seq))
		return nil
	}
	c.store.Replace(lessons)
	return nil
}

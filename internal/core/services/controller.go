package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
	"github.com/custodia-labs/spsearch/internal/logger"
)

// Ensure Controller implements the interface.
var _ driving.SearchController = (*Controller)(nil)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or was stopped.
	Stop() bool
}

// Scheduler runs a callback after a delay. The default uses time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ControllerConfig tunes the controller's dispatch behaviour.
type ControllerConfig struct {
	// Debounce is the quiet period after the last keystroke.
	Debounce time.Duration

	// MinQueryLength is the shortest trimmed query that is searched.
	MinQueryLength int

	// PartialResults shows surviving categories when one category fails.
	PartialResults bool

	// Timeout bounds each dispatched search. Zero means no bound.
	Timeout time.Duration
}

// ControllerConfigFromSettings extracts the controller configuration.
func ControllerConfigFromSettings(s domain.Settings) ControllerConfig {
	return ControllerConfig{
		Debounce:       s.Search.Debounce,
		MinQueryLength: s.Search.MinQueryLength,
		PartialResults: s.Search.PartialResults,
		Timeout:        s.Search.Timeout,
	}
}

func (cfg ControllerConfig) normalised() ControllerConfig {
	if cfg.MinQueryLength < 1 {
		cfg.MinQueryLength = domain.DefaultMinQueryLength
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	return cfg
}

func (cfg ControllerConfig) policy() domain.SearchPolicy {
	return domain.SearchPolicy{
		MinQueryLength: cfg.MinQueryLength,
		PartialResults: cfg.PartialResults,
	}
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithScheduler replaces the debounce scheduler.
func WithScheduler(s Scheduler) ControllerOption {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// WithContext sets the parent context for dispatched searches.
func WithContext(ctx context.Context) ControllerOption {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// Controller owns the interactive search state. It debounces typed input,
// dispatches searches, and applies only the newest completion.
type Controller struct {
	search    driving.SearchService
	cfg       ControllerConfig
	scheduler Scheduler
	ctx       context.Context

	mu          sync.Mutex
	state       domain.SearchState
	pending     Timer
	pendingGen  uint64
	inflight    context.CancelFunc
	subscribers []func(domain.SearchState)
	closed      bool

	wg sync.WaitGroup
}

// NewController creates a controller in the idle state.
func NewController(search driving.SearchService, cfg ControllerConfig, opts ...ControllerOption) *Controller {
	c := &Controller{
		search:    search,
		cfg:       cfg.normalised(),
		scheduler: clockScheduler{},
		ctx:       context.Background(),
		state:     domain.NewSearchState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetQuery records input text. A searchable query schedules a dispatch
// after the debounce delay, replacing any earlier schedule. A query below
// the minimum length cancels pending work and returns to idle, keeping the
// text itself.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.state.Query = query
	c.cancelPendingLocked()

	if c.searchable(query) {
		c.pendingGen++
		gen := c.pendingGen
		c.pending = c.scheduler.AfterFunc(c.cfg.Debounce, func() {
			c.fire(gen, query)
		})
	} else {
		c.cancelInflightLocked()
		c.state.Results = []domain.SearchResult{}
		c.state.HasSearched = false
		c.state.IsLoading = false
		c.state.ErrorMessage = ""
		c.state.Degraded = nil
	}

	snap := c.state.Clone()
	c.mu.Unlock()
	c.notify(snap)
}

// Submit dispatches the current query immediately, bypassing the debounce.
// A query below the minimum length is ignored.
func (c *Controller) Submit() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.cancelPendingLocked()
	if !c.dispatchLocked(c.state.Query) {
		c.mu.Unlock()
		return
	}

	snap := c.state.Clone()
	c.mu.Unlock()
	c.notify(snap)
}

// Clear cancels pending and in-flight searches and resets the query,
// results, search flag and error. The active tab is kept.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.cancelPendingLocked()
	c.cancelInflightLocked()
	c.state.Query = ""
	c.state.Results = []domain.SearchResult{}
	c.state.HasSearched = false
	c.state.IsLoading = false
	c.state.ErrorMessage = ""
	c.state.Degraded = nil

	snap := c.state.Clone()
	c.mu.Unlock()
	c.notify(snap)
}

// SelectTab changes the display filter. Unknown tabs are ignored.
func (c *Controller) SelectTab(tab domain.Tab) {
	if !tab.IsValid() {
		return
	}

	c.mu.Lock()
	if c.state.ActiveTab == tab {
		c.mu.Unlock()
		return
	}
	c.state.ActiveTab = tab
	snap := c.state.Clone()
	c.mu.Unlock()
	c.notify(snap)
}

// State returns a snapshot of the current state.
func (c *Controller) State() domain.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Filtered returns the results visible under the active tab.
func (c *Controller) Filtered() []domain.SearchResult {
	return c.State().Filtered()
}

// Counts returns the per-tab badge counts.
func (c *Controller) Counts() domain.TabCounts {
	return c.State().Counts()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn is called without the controller lock held.
func (c *Controller) Subscribe(fn func(domain.SearchState)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Reconfigure swaps in the dispatch configuration from settings. The next
// keystroke or submit uses it; a scheduled or running search keeps the
// configuration it started with.
func (c *Controller) Reconfigure(settings domain.Settings) {
	cfg := ControllerConfigFromSettings(settings).normalised()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	logger.Debug("Controller reconfigured: debounce=%s min=%d partial=%t",
		cfg.Debounce, cfg.MinQueryLength, cfg.PartialResults)
}

// Wait blocks until every dispatched search has completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels pending and in-flight searches and waits for them.
// The controller ignores input afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelPendingLocked()
	c.cancelInflightLocked()
	c.mu.Unlock()

	c.wg.Wait()
}

// fire is the debounce callback for schedule generation gen.
func (c *Controller) fire(gen uint64, query string) {
	c.mu.Lock()
	if c.closed || gen != c.pendingGen || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	if !c.dispatchLocked(query) {
		c.mu.Unlock()
		return
	}
	snap := c.state.Clone()
	c.mu.Unlock()
	c.notify(snap)
}

// dispatchLocked starts a search for query and enters the searching state.
// It returns false if the query is too short. Caller must hold c.mu.
func (c *Controller) dispatchLocked(query string) bool {
	if !c.searchable(query) {
		return false
	}
	trimmed := strings.TrimSpace(query)

	c.cancelInflightLocked()
	seq := c.state.Seq

	var ctx context.Context
	var cancel context.CancelFunc
	if c.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(c.ctx)
	}
	c.inflight = cancel

	c.state.IsLoading = true
	c.state.HasSearched = true
	c.state.ErrorMessage = ""
	c.state.Degraded = nil

	logger.Debug("Dispatching search #%d: %q", seq, trimmed)

	c.wg.Add(1)
	go c.run(ctx, cancel, seq, trimmed, c.cfg.policy())
	return true
}

// run executes one search and applies it if it is still the newest.
func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, seq uint64, query string, policy domain.SearchPolicy) {
	defer c.wg.Done()
	defer cancel()

	report, err := c.search.Search(ctx, query, policy)

	c.mu.Lock()
	if seq != c.state.Seq || c.closed {
		c.mu.Unlock()
		logger.Debug("Discarding stale search #%d", seq)
		return
	}

	c.inflight = nil
	c.state.IsLoading = false
	if err != nil {
		logger.Error("search %q failed: %v", query, err)
		c.state.Results = []domain.SearchResult{}
		c.state.ErrorMessage = domain.SearchFailedMessage
		c.state.Degraded = nil
	} else {
		c.state.Results = report.Results
		c.state.ErrorMessage = ""
		c.state.Degraded = report.Degraded
	}

	snap := c.state.Clone()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) searchable(query string) bool {
	return c.cfg.policy().CheckQuery(query) == nil
}

// cancelPendingLocked drops the scheduled debounce, if any.
func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.pendingGen++
}

// cancelInflightLocked abandons the running search: its context is
// cancelled and the sequence moves on so its completion is discarded.
func (c *Controller) cancelInflightLocked() {
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
	c.state.Seq++
}

func (c *Controller) notify(snap domain.SearchState) {
	c.mu.Lock()
	subs := make([]func(domain.SearchState), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

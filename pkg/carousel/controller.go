package carousel

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultStep is the distance of one scroll step.
	DefaultStep = 220.0
	// DefaultInterval is the auto-advance period.
	DefaultInterval = 4 * time.Second
	// EndSlack is how close to the end a tick wraps back to the start.
	EndSlack = 10.0
)

// Direction of a manual scroll.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Ticker delivers auto-advance ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the default TickerFunc, backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Option configures a Controller.
type Option func(*Controller)

// WithStep overrides the scroll step.
func WithStep(step float64) Option {
	return func(c *Controller) {
		if step > 0 {
			c.step = step
		}
	}
}

// WithInterval overrides the auto-advance period.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTicker overrides the tick source.
func WithTicker(fn TickerFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newTicker = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns a strip. Run ticks on its own goroutine while pointer and
// scroll events arrive from the caller, so every access goes through mu.
type Controller struct {
	mu        sync.Mutex
	strip     Strip
	paused    bool
	step      float64
	interval  time.Duration
	newTicker TickerFunc
	logger    *zap.Logger
}

// New builds a controller over strip.
func New(strip Strip, opts ...Option) *Controller {
	c := &Controller{
		strip:     strip,
		step:      DefaultStep,
		interval:  DefaultInterval,
		newTicker: NewTimeTicker,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.strip.ScrollTo(c.strip.Offset)
	return c
}

// Step returns the scroll step.
func (c *Controller) Step() float64 { return c.step }

// Interval returns the auto-advance period.
func (c *Controller) Interval() time.Duration { return c.interval }

// Strip returns a snapshot of the viewport.
func (c *Controller) Strip() Strip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strip
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() float64 {
	return c.Strip().Offset
}

// Resize updates the content and client widths, keeping the offset in range.
func (c *Controller) Resize(contentWidth, clientWidth float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strip.ContentWidth = contentWidth
	c.strip.ClientWidth = clientWidth
	c.strip.ScrollTo(c.strip.Offset)
}

// Scroll moves one step in direction and returns the new offset.
func (c *Controller) Scroll(direction Direction) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strip.ScrollBy(float64(direction) * c.step)
	return c.strip.Offset
}

// PointerEnter pauses auto-advance.
func (c *Controller) PointerEnter() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// PointerLeave resumes auto-advance.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

// Paused reports whether the pointer is over the strip.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Advance performs one auto-advance tick and reports whether the strip
// moved. Near the end it wraps to the start.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return false
	}
	before := c.strip.Offset
	if c.strip.NearEnd(EndSlack) {
		c.strip.ScrollTo(0)
	} else {
		c.strip.ScrollBy(c.step)
	}
	return c.strip.Offset != before
}

// Run auto-advances on every tick until ctx ends.
func (c *Controller) Run(ctx context.Context) error {
	ticker := c.newTicker(c.interval)
	defer ticker.Stop()

	c.logger.Debug("carousel auto-advance started", zap.Duration("interval", c.interval))
	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("carousel auto-advance stopped")
			return ctx.Err()
		case <-ticker.C():
			if c.Advance() {
				c.logger.Debug("carousel advanced", zap.Float64("offset", c.Offset()))
			}
		}
	}
}

package celebrity

import (
	"time"

	"github.com/vbonduro/rubysdiner/internal/clock"
	"github.com/vbonduro/rubysdiner/internal/view"
)

type CarouselOptions struct {
	Warmup time.Duration
	Tick   time.Duration
	Step   float64
}

func DefaultCarouselOptions() CarouselOptions {
	return CarouselOptions{Warmup: 2 * time.Second, Tick: 30 * time.Millisecond, Step: 1}
}

// Carousel scrolls a strip back and forth. It owns at most one recurring
// timer; pointer enter cancels it and pointer leave replaces it.
type Carousel struct {
	strip *view.Element
	sched clock.Scheduler
	opts  CarouselOptions

	pos    float64
	dir    float64
	warmup clock.Timer
	ticker clock.Timer
	bound  bool
}

func NewCarousel(strip *view.Element, sched clock.Scheduler, opts CarouselOptions) *Carousel {
	def := DefaultCarouselOptions()
	if opts.Warmup <= 0 {
		opts.Warmup = def.Warmup
	}
	if opts.Tick <= 0 {
		opts.Tick = def.Tick
	}
	if opts.Step <= 0 {
		opts.Step = def.Step
	}
	return &Carousel{strip: strip, sched: sched, opts: opts, dir: 1}
}

// Start schedules auto-scroll to begin after the warm-up delay. Hover
// handlers are only bound once scrolling has begun.
func (c *Carousel) Start() {
	if c.strip == nil || c.warmup != nil {
		return
	}
	c.warmup = c.sched.AfterFunc(c.opts.Warmup, func() {
		c.bind()
		c.Resume()
	})
}

func (c *Carousel) bind() {
	if c.bound {
		return
	}
	c.bound = true
	c.strip.On("mouseenter", func(*view.Event) { c.Pause() })
	c.strip.On("mouseleave", func(*view.Event) { c.Resume() })
}

// Pause cancels the recurring tick.
func (c *Carousel) Pause() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Resume cancels any running tick and starts a fresh one.
func (c *Carousel) Resume() {
	c.Pause()
	c.ticker = c.sched.Every(c.opts.Tick, c.tick)
}

func (c *Carousel) tick() {
	l := c.strip.Layout()
	limit := l.ScrollWidth - l.ClientWidth
	if limit <= 0 {
		c.dir = -c.dir
		c.pos = 0
		return
	}
	if c.pos >= limit {
		c.dir = -1
	} else if c.pos <= 0 {
		c.dir = 1
	}
	c.pos += c.dir * c.opts.Step
	c.pos = min(max(c.pos, 0), limit)
	c.strip.SetScrollLeft(c.pos)
}

// Stop cancels both the warm-up and the recurring tick.
func (c *Carousel) Stop() {
	if c.warmup != nil {
		c.warmup.Stop()
	}
	c.Pause()
}

func (c *Carousel) Position() float64  { return c.pos }
func (c *Carousel) Direction() float64 { return c.dir }
func (c *Carousel) Running() bool      { return c.ticker != nil }

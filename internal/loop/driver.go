// Package loop drives a step function at a fixed tick rate on a single
// goroutine, with pause, resume and a synchronous stop.
package loop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTickRate is used when no rate is configured.
const DefaultTickRate = 60

var (
	// ErrNotIdle is returned by Start when the driver is already running.
	ErrNotIdle = errors.New("loop: driver is not idle")
	// ErrBadState is returned by Pause and Resume from the wrong state.
	ErrBadState = errors.New("loop: invalid state")
)

// State is the lifecycle state of a Driver.
type State int

const (
	Idle State = iota
	Running
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// StepFunc advances the simulation by one tick. Returning false ends the run
// and the driver goes idle.
type StepFunc func() bool

// Ticker delivers tick times. It mirrors the subset of time.Ticker the
// driver needs so tests can supply a manual clock.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Option configures a Driver.
type Option func(*Driver)

// WithTickRate sets the number of ticks per second. Non-positive values are
// ignored.
func WithTickRate(rate int) Option {
	return func(d *Driver) {
		if rate > 0 {
			d.rate = rate
		}
	}
}

// WithTicker replaces the ticker factory.
func WithTicker(newTicker func(interval time.Duration) Ticker) Option {
	return func(d *Driver) {
		if newTicker != nil {
			d.newTicker = newTicker
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithObserver registers a callback that receives the duration of every
// executed step.
func WithObserver(fn func(d time.Duration)) Option {
	return func(d *Driver) {
		d.observe = fn
	}
}

// Driver invokes a StepFunc once per tick. A single goroutine owns
// invocation, so each step completes before the next tick is taken.
// Ticks that arrive while paused are dropped.
type Driver struct {
	step      StepFunc
	rate      int
	newTicker func(time.Duration) Ticker
	logger    *log.Logger
	observe   func(time.Duration)

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}

	ticks   atomic.Uint64
	dropped atomic.Uint64
}

// New creates an idle driver for step.
func New(step StepFunc, opts ...Option) *Driver {
	done := make(chan struct{})
	close(done)
	d := &Driver{
		step:      step,
		rate:      DefaultTickRate,
		newTicker: NewRealTicker,
		logger:    log.NewWithOptions(os.Stderr, log.Options{Prefix: "loop"}),
		done:      done,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Interval returns the nominal time between ticks.
func (d *Driver) Interval() time.Duration {
	return time.Second / time.Duration(d.rate)
}

// Start begins ticking. The run ends when the step returns false, ctx is
// cancelled or Stop is called.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Idle {
		return fmt.Errorf("%w: %s", ErrNotIdle, d.state)
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.state = Running

	ticker := d.newTicker(d.Interval())
	go d.run(runCtx, ticker, d.done)

	d.logger.Debug("driver started", "rate", d.rate)
	return nil
}

func (d *Driver) run(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer func() {
		ticker.Stop()
		d.mu.Lock()
		d.state = Idle
		d.cancel = nil
		d.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		// Stop may have raced with the tick.
		if ctx.Err() != nil {
			return
		}
		if d.State() == Paused {
			d.dropped.Add(1)
			continue
		}

		d.ticks.Add(1)
		start := time.Now()
		cont := d.step()
		if d.observe != nil {
			d.observe(time.Since(start))
		}
		if !cont {
			d.logger.Debug("step ended the run", "ticks", d.ticks.Load())
			return
		}
	}
}

// Pause suspends stepping. Ticks received while paused are dropped.
func (d *Driver) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Running {
		return fmt.Errorf("%w: pause from %s", ErrBadState, d.state)
	}
	d.state = Paused
	return nil
}

// Resume continues a paused run.
func (d *Driver) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Paused {
		return fmt.Errorf("%w: resume from %s", ErrBadState, d.state)
	}
	d.state = Running
	return nil
}

// Stop ends the run from any state and waits for an in-flight step to
// finish. After Stop returns the step function is not invoked again.
// Stop must not be called from inside the step function.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-done
	d.logger.Debug("driver stopped", "ticks", d.ticks.Load())
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Ticks returns the number of steps started so far.
func (d *Driver) Ticks() uint64 {
	return d.ticks.Load()
}

// Dropped returns the number of ticks discarded while paused.
func (d *Driver) Dropped() uint64 {
	return d.dropped.Load()
}

// Done returns a channel closed when the current run ends. It is already
// closed when the driver is idle.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

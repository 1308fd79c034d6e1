package conversation

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultInterval is the background poll cadence.
	DefaultInterval = 15 * time.Second
	// ActiveInterval is used while a conversation surface is being viewed.
	ActiveInterval = 5 * time.Second
)

// ErrPollerRunning is returned by Start on a poller that is already running.
var ErrPollerRunning = errors.New("conversation: poller already running")

// PollFunc performs one refresh. The context is cancelled when the poller stops.
type PollFunc func(ctx context.Context) error

// Poller runs a PollFunc on an interval until stopped. Polls never overlap.
// Errors are dropped unless an error handler is installed.
type Poller struct {
	fn              PollFunc
	onError         func(error)
	defaultInterval time.Duration
	activeInterval  time.Duration

	mu      sync.Mutex
	active  bool
	cancel  context.CancelFunc
	done    chan struct{}
	wake    chan struct{}
	retimed chan struct{}
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.defaultInterval = d
		}
	}
}

// WithActiveInterval overrides ActiveInterval.
func WithActiveInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.activeInterval = d
		}
	}
}

// WithErrorHandler observes poll failures. Failures of a poll interrupted by
// Stop are not reported.
func WithErrorHandler(fn func(error)) PollerOption {
	return func(p *Poller) {
		p.onError = fn
	}
}

func NewPoller(fn PollFunc, opts ...PollerOption) *Poller {
	p := &Poller{
		fn:              fn,
		defaultInterval: DefaultInterval,
		activeInterval:  ActiveInterval,
		wake:            make(chan struct{}, 1),
		retimed:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start polls once immediately and then on every tick. It returns at once; the
// loop ends when ctx is done or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrPollerRunning
	}

	// A wake requested while stopped is covered by the initial poll.
	select {
	case <-p.wake:
	default:
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go p.loop(loopCtx, done)
	return nil
}

// Stop cancels the running poll, if any, and waits for the loop to exit.
// It is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// SetActive switches between ActiveInterval and DefaultInterval. The new
// cadence starts from the moment of the switch.
func (p *Poller) SetActive(active bool) {
	p.mu.Lock()
	changed := p.active != active
	p.active = active
	p.mu.Unlock()

	if changed {
		signal(p.retimed)
	}
}

// Interval returns the current cadence.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return p.activeInterval
	}
	return p.defaultInterval
}

// Wake requests one immediate poll in addition to the interval, which keeps
// running undisturbed. Calls made while a wake is already pending coalesce.
func (p *Poller) Wake() {
	signal(p.wake)
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		case <-p.wake:
			p.poll(ctx)
		case <-p.retimed:
			ticker.Reset(p.Interval())
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	err := p.fn(ctx)
	if err == nil || ctx.Err() != nil || p.onError == nil {
		return
	}
	p.onError(err)
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Package readiness gates the switch from the loading surface to the main
// surface on two startup tasks: the frontend and the backend.
package readiness

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Gate collects task completions and fires its transition exactly once, when
// the first call observes both tasks done.
type Gate struct {
	mu    sync.Mutex
	state State

	transition func() error
	dispatch   func(func())
	log        zerolog.Logger

	done chan struct{}
	err  error
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger used for transition outcomes and rejected events.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gate) { g.log = l }
}

// WithDispatcher replaces how the transition is run. The default starts a goroutine
// so the reporting caller never waits on host work.
func WithDispatcher(d func(func())) Option {
	return func(g *Gate) { g.dispatch = d }
}

// NewGate returns a gate that calls transition once both tasks have reported.
func NewGate(transition func() error, opts ...Option) *Gate {
	g := &Gate{
		transition: transition,
		dispatch:   func(fn func()) { go fn() },
		log:        zerolog.Nop(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Report marks task as complete. Unknown tasks fail with ErrInvalidTask and leave
// the state untouched. Repeated reports are accepted and never refire the transition.
func (g *Gate) Report(task Task) error {
	if !task.Valid() {
		return fmt.Errorf("%w %s", ErrInvalidTask, task)
	}
	g.mu.Lock()
	completed := g.state.mark(task)
	g.mu.Unlock()

	g.log.Debug().Str("task", task.String()).Bool("completed", completed).Msg("task reported")
	if completed {
		g.dispatch(g.fire)
	}
	return nil
}

// ReportName is Report for callers that identify tasks by name.
func (g *Gate) ReportName(name string) error {
	task, err := ParseTask(name)
	if err != nil {
		return err
	}
	return g.Report(task)
}

// Consume reports every task received on events until the channel is closed.
// Rejected events are logged and dropped.
func (g *Gate) Consume(events <-chan Task) {
	for task := range events {
		if err := g.Report(task); err != nil {
			g.log.Error().Err(err).Msg("report failed")
		}
	}
}

// Snapshot returns a copy of the current state.
func (g *Gate) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Done is closed once the transition has returned.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Err returns the transition result. It is only meaningful after Done is closed.
func (g *Gate) Err() error {
	select {
	case <-g.done:
		return g.err
	default:
		return nil
	}
}

func (g *Gate) fire() {
	start := time.Now()
	err := g.transition()
	g.err = err
	close(g.done)
	if err != nil {
		g.log.Error().Err(err).Msg("transition failed")
		return
	}
	g.log.Info().Dur("took", time.Since(start)).Msg("transition complete")
}

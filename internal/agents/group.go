package agents

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a2y-d5l/go-shmsync/observability"
)

// Func is the body of one agent. id is the agent's index in its group.
type Func func(ctx context.Context, id int) error

// Stats counts how far the agents of a group got.
type Stats struct {
	Started  int64
	Finished int64
	Failed   int64
}

// Group runs agents that start together and are waited on together.
type Group struct {
	cfg  config
	errs MultiError
	wg   sync.WaitGroup

	next     int
	started  atomic.Int64
	finished atomic.Int64
	failed   atomic.Int64
	running  atomic.Bool
}

// New returns an empty Group.
func New(opts ...Option) *Group {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.gate == nil {
		cfg.gate = NewLatch()
	}
	return &Group{cfg: cfg}
}

// Go adds n agents running fn. They block on the start gate until Start is
// called. Agents cannot be added once the group has started.
func (g *Group) Go(ctx context.Context, n int, fn Func) error {
	if g.running.Load() {
		return ErrAlreadyStarted
	}
	for range n {
		id := g.next
		g.next++
		g.wg.Add(1)
		go g.run(ctx, id, fn)
	}
	return nil
}

// Start opens the gate. It fails if the group has no agents or was already
// started.
func (g *Group) Start() error {
	if g.next == 0 {
		return ErrNoAgents
	}
	if !g.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	g.cfg.logger.Debug("starting agents", observability.AgentCount(g.next))
	g.cfg.gate.CountDown()
	return nil
}

// Wait blocks until every agent has returned or ctx is done. It returns the
// agents' failures as a *MultiError, or ctx's error if ctx ended first.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return g.errs.ToError()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the group's current counts.
func (g *Group) Stats() Stats {
	return Stats{
		Started:  g.started.Load(),
		Finished: g.finished.Load(),
		Failed:   g.failed.Load(),
	}
}

func (g *Group) run(ctx context.Context, id int, fn Func) {
	defer g.wg.Done()

	if err := g.cfg.gate.Await(ctx); err != nil {
		g.errs.Add(fmt.Errorf("agent %d: %w", id, err))
		g.failed.Add(1)
		return
	}

	ctx = observability.ContextWithAgent(ctx, id)
	log := observability.NewAgentLogger(ctx, g.cfg.logger)
	log.LogStart()
	g.started.Add(1)
	if g.cfg.metrics != nil {
		g.cfg.metrics.RecordAgentStarted()
	}

	start := time.Now()
	err := call(ctx, id, fn)
	log.LogDone(time.Since(start), err)

	g.finished.Add(1)
	if err != nil {
		g.failed.Add(1)
		g.errs.Add(fmt.Errorf("agent %d: %w", id, err))
	}
	if g.cfg.metrics != nil {
		g.cfg.metrics.RecordAgentFinished(err == nil)
	}
}

func call(ctx context.Context, id int, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, id)
}

// Run starts n agents running fn and waits for all of them.
func Run(ctx context.Context, n int, fn Func, opts ...Option) error {
	g := New(opts...)
	if err := g.Go(ctx, n, fn); err != nil {
		return err
	}
	if err := g.Start(); err != nil {
		return err
	}
	return g.Wait(ctx)
}

// Package boundary runs the synchronous core solver on a background
// goroutine and streams its events back over a channel, the way
// internal/engine runs its negamax workers on goroutines and publishes
// WorkerResult/SearchInfo through a channel and an OnInfo callback instead
// of blocking the caller.
package boundary

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"

	"github.com/raphcraft/craftsolve/internal/craft"
	"github.com/raphcraft/craftsolve/internal/solver"
)

// EventKind tags a SolverEvent.
type EventKind uint8

const (
	EventProgress EventKind = iota
	EventIntermediateSolution
	EventFinalSolution
)

// SolverEvent is one message streamed from a running solve. Exactly one of
// Fraction/Solution is meaningful, per Kind; the final event on a channel
// is always EventFinalSolution, possibly with an empty Solution.Actions if
// the craft turned out to be infeasible.
type SolverEvent struct {
	Kind     EventKind
	Fraction float64
	Solution solver.Solution
}

// Worker runs one solve on its own goroutine. Cancellation is cooperative:
// Cancel requests a stop polled before each search node is expanded; it
// does not interrupt in-flight simulation work.
type Worker struct {
	settings craft.Settings
	prefix   []craft.Action
	queue    *unboundedQueue
	events   <-chan SolverEvent
	cancel   atomic.Bool
	solveID  uint64
}

// NewWorker prepares a worker for one solve. Call Run to start it; Run may
// only be called once.
func NewWorker(settings craft.Settings, prefix []craft.Action) *Worker {
	q := newUnboundedQueue()
	return &Worker{
		settings: settings,
		prefix:   prefix,
		queue:    q,
		events:   q.channel(),
		solveID:  fingerprint(settings, prefix),
	}
}

// fingerprint derives a stable correlation id for log lines belonging to
// the same solve, the way a transposition table's stored key lets log
// output be traced back to one search without carrying the full Settings
// struct through every call site.
func fingerprint(settings craft.Settings, prefix []craft.Action) uint64 {
	h := xxhash.New()
	var buf [8]byte
	putUint64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	putUint64(uint64(settings.MaxCP))
	putUint64(uint64(settings.MaxDurability))
	putUint64(uint64(settings.MaxProgress))
	putUint64(uint64(settings.MaxQuality))
	putUint64(uint64(settings.BaseProgress))
	putUint64(uint64(settings.BaseQuality))
	putUint64(uint64(settings.AllowedActions))
	if settings.Adversarial {
		putUint64(1)
	}
	for _, a := range prefix {
		h.Write([]byte{byte(a)})
	}
	return h.Sum64()
}

// Fingerprint returns this worker's solve-correlation id, suitable as a
// cache key for callers that want to skip re-solving an identical request.
func (w *Worker) Fingerprint() uint64 {
	return w.solveID
}

// Events returns the channel events are published on. The same channel is
// returned on every call, so callers may safely re-evaluate Events() (for
// example inside a for/select loop) without spawning a second forwarding
// consumer racing the first one. The final event is always
// EventFinalSolution; callers should stop reading after it.
func (w *Worker) Events() <-chan SolverEvent {
	return w.events
}

// Cancel requests cooperative cancellation. The solver checks this before
// expanding each search node; Run still emits a final (possibly empty) event.
func (w *Worker) Cancel() {
	w.cancel.Store(true)
}

// Run starts the solve on a new goroutine and returns immediately.
func (w *Worker) Run(ctx context.Context) {
	go w.runSync(ctx)
}

func (w *Worker) runSync(ctx context.Context) {
	defer w.queue.closeQueue()

	s := solver.NewMacroSolver(w.settings)
	s.OnProgress = func(fraction float64) {
		w.queue.push(SolverEvent{Kind: EventProgress, Fraction: fraction})
	}
	s.OnSolution = func(sol solver.Solution) {
		log.Printf("solve %x: intermediate solution, quality=%s steps=%d",
			w.solveID, humanize.Comma(int64(sol.Score.Quality)), sol.Score.Steps)
		w.queue.push(SolverEvent{Kind: EventIntermediateSolution, Solution: sol})
	}

	cancel := func() bool {
		if w.cancel.Load() {
			return true
		}
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}

	actions := s.Solve(w.prefix, cancel)
	final := solver.Solution{Actions: actions}
	if len(actions) > 0 {
		state := craft.NewInitialState(w.settings)
		var steps int
		var durationSeconds int
		for _, a := range actions {
			state, _ = craft.UseAction(state, a, w.settings)
			steps++
			durationSeconds += int(a.TimeCost())
		}
		final.Score = solver.NewScoreFromCounts(state.GetQuality(), durationSeconds, steps, w.settings.MaxQuality)
	}
	log.Printf("solve %x: final macro, %d actions", w.solveID, len(actions))
	w.queue.push(SolverEvent{Kind: EventFinalSolution, Solution: final})
}

package solver

import "github.com/raphcraft/craftsolve/internal/craft"

// Solution is one candidate macro: the action sequence and its realised
// Score.
type Solution struct {
	Actions []craft.Action
	Score   Score
}

// ProgressFunc is invoked with a rough fraction-complete estimate as the
// search drains CP buckets from high to low.
type ProgressFunc func(fraction float64)

// SolutionFunc is invoked every time the incumbent improves.
type SolutionFunc func(Solution)

// MacroSolver runs the bucketed best-first search described by the macro
// solver design: seed from the initial state, expand by simulating every
// allowed action, prune non-final successors against the quality upper
// bound, and track the best-scoring finished craft found so far.
type MacroSolver struct {
	settings craft.Settings
	qub      *QualityUpperBoundSolver

	OnProgress ProgressFunc
	OnSolution SolutionFunc
}

// NewMacroSolver constructs a solver for one solve. It is not safe to
// reuse across different Settings.
func NewMacroSolver(settings craft.Settings) *MacroSolver {
	return &MacroSolver{
		settings: settings,
		qub:      NewQualityUpperBoundSolver(settings),
	}
}

// Solve runs the search from the initial state after applying prefix (a
// "continue from here" seed), and returns the best action sequence found,
// or nil if the craft is infeasible. Cancellation is cooperative: cancel,
// if non-nil, is polled before each node is taken from the queue.
func (m *MacroSolver) Solve(prefix []craft.Action, cancel func() bool) []craft.Action {
	arena := newArena(1024)
	queue := newSearchQueue(m.settings.MaxCP)

	state := craft.NewInitialState(m.settings)
	parent := sentinel
	ok := true
	for _, a := range prefix {
		var errTag craft.ActionError
		state, errTag = craft.UseAction(state, a, m.settings)
		if errTag != craft.ActionError(0) {
			ok = false
			break
		}
		parent = arena.Push(a, parent)
	}
	if !ok {
		return nil
	}
	if craft.IsFinal(state, m.settings) {
		if state.Progress >= m.settings.MaxProgress {
			return arena.Path(parent)
		}
		return nil
	}

	queue.push(node{state: state, arenaIndex: parent})

	var incumbent []craft.Action
	var incumbentScore Score
	haveIncumbent := false

	totalBuckets := queue.remainingBuckets()
	for {
		if cancel != nil && cancel() {
			break
		}
		n, more := queue.pop()
		if !more {
			break
		}
		if m.OnProgress != nil && totalBuckets > 0 {
			m.OnProgress(1.0 - float64(queue.remainingBuckets())/float64(totalBuckets))
		}

		for _, action := range m.settings.AllowedActions.ActionsIter() {
			next, errTag := craft.UseAction(n.state, action, m.settings)
			if errTag != craft.ActionError(0) {
				continue
			}
			childIndex := arena.Push(action, n.arenaIndex)

			if craft.IsFinal(next, m.settings) {
				if next.Progress >= m.settings.MaxProgress {
					score := scoreFromState(next, arena.Path(childIndex), m.settings.MaxQuality)
					if !haveIncumbent || score.Beats(incumbentScore) {
						incumbent = arena.Path(childIndex)
						incumbentScore = score
						haveIncumbent = true
						if m.OnSolution != nil {
							m.OnSolution(Solution{Actions: incumbent, Score: incumbentScore})
						}
					}
				}
				continue
			}

			bound := m.qub.QualityUpperBound(next)
			if haveIncumbent && bound <= incumbentScore.Quality {
				continue
			}
			queue.push(node{state: next, arenaIndex: childIndex})
		}
	}

	return incumbent
}

package solver

import (
	"github.com/raphcraft/craftsolve/internal/craft"
	"github.com/raphcraft/craftsolve/internal/paretofront"
)

// searchActions mirrors craft.SearchActions; kept as its own value so this
// package never has to import craft's mask-construction internals beyond
// the exported accessor.
var searchActions = craft.SearchActions

// QualityUpperBoundSolver computes an admissible upper bound on the
// quality achievable from a given state while also maxing out progress.
// It owns a memoisation table that lives for the lifetime of one solve and
// must not be shared across solves with different Settings.
type QualityUpperBoundSolver struct {
	settings craft.Settings
	costs    durabilityCosts
	memo     map[reducedState][]paretofront.Value[uint16, uint16]
	builder  *paretofront.Builder[uint16, uint16]
}

// NewQualityUpperBoundSolver precomputes the repair-cost constants and
// allocates the solver's memo table and scratch builder.
func NewQualityUpperBoundSolver(settings craft.Settings) *QualityUpperBoundSolver {
	costs := newDurabilityCosts(settings)
	maxQuality := settings.MaxQuality * 2
	if maxQuality < settings.MaxQuality {
		maxQuality = ^uint32(0) // saturate instead of wrapping, matching the Rust saturating_mul
	}
	return &QualityUpperBoundSolver{
		settings: settings,
		costs:    costs,
		memo:     make(map[reducedState][]paretofront.Value[uint16, uint16]),
		builder:  paretofront.NewBuilder[uint16, uint16](uint16(clampU32(settings.MaxProgress)), uint16(clampU32(maxQuality))),
	}
}

func clampU32(v uint32) uint32 {
	if v > 0xFFFF {
		return 0xFFFF
	}
	return v
}

// QualityUpperBound returns an upper bound on the quality reachable from
// state while still reaching settings.MaxProgress. There is no guarantee
// on how tight the bound is, only that it never understates the truth
// (see the monotonicity property this is built to satisfy).
func (s *QualityUpperBoundSolver) QualityUpperBound(state craft.SimulationState) uint32 {
	currentQuality := state.GetQuality()
	missingProgress := uint16(0)
	if state.Progress < s.settings.MaxProgress {
		missingProgress = uint16(clampU32(s.settings.MaxProgress - state.Progress))
	}

	// reduce folds durability, manipulation, waste-not and trained
	// perfection into CP credit and drops them from the key: this is what
	// makes the memo table's key state-independent of the fields that
	// cannot lower the bound.
	key := reduce(state, s.settings, s.costs)

	front, ok := s.memo[key]
	if !ok {
		front = s.solveState(key)
	}
	if len(front) == 0 || front[len(front)-1].First < missingProgress {
		return currentQuality
	}

	quality, found := paretofront.BestAtLeast(front, missingProgress)
	if !found {
		return currentQuality
	}
	bound := uint32(quality) + currentQuality
	cap := 2 * s.settings.MaxQuality
	if bound > cap {
		bound = cap
	}
	return bound
}

// solveState computes and memoises the Pareto front of (progress, quality)
// reachable from a reduced state, recursing through every action search
// considers relevant to the bound.
func (s *QualityUpperBoundSolver) solveState(state reducedState) []paretofront.Value[uint16, uint16] {
	s.builder.PushEmpty()
	candidates := searchActions.Intersection(s.settings.AllowedActions)
	for _, action := range candidates.ActionsIter() {
		s.buildChildFront(state, action)
		if s.builder.IsMax() {
			break
		}
	}
	front := s.builder.Peek()
	s.builder.Pop()
	s.memo[state] = front
	return front
}

// buildChildFront simulates one action from state under the normal
// condition and folds its contribution into the builder's top front: the
// recursive-subtree branch (if CP remains) and the finish-now branch
// (borrowing up to 5 durability on the final hit), exactly as the oracle's
// recursion is specified.
func (s *QualityUpperBoundSolver) buildChildFront(state reducedState, action craft.Action) {
	sim := simulationFromReduced(state, s.settings)
	next, errTag := craft.UseAction(sim, action, s.settings)
	if errTag != craft.ActionError(0) {
		return
	}

	actionProgress := uint16(clampU32(next.Progress - sim.Progress))
	if next.Progress < sim.Progress {
		actionProgress = 0
	}
	actionQuality := uint16(clampU32(next.GetQuality()))

	childKey := reduce(next, s.settings, s.costs)

	if childKey.cp > 0 {
		front, ok := s.memo[childKey]
		if !ok {
			front = s.solveState(childKey)
		}
		s.builder.Push(front)
		s.builder.Map(actionProgress, actionQuality)
		s.builder.Merge()
	}

	if int32(childKey.cp)+int32(s.costs.baseDurabilityCost) >= 0 && actionProgress != 0 {
		s.builder.Push([]paretofront.Value[uint16, uint16]{{First: actionProgress, Second: actionQuality}})
		s.builder.Merge()
	}
}

// simulationFromReduced reconstitutes a minimal SimulationState from a
// reducedState for the sole purpose of feeding craft.UseAction: durability
// is pinned to 127, progress and quality and the Heart and Soul/Quick
// Innovation tokens are left at their zero values, and Trained Perfection
// is marked Unavailable (see below), since every simulated
// child is immediately re-reduced before it is used as a key or return
// value.
func simulationFromReduced(r reducedState, settings craft.Settings) craft.SimulationState {
	effects := craft.Effects(0)
	effects = effects.WithInnerQuiet(int(r.innerQuiet))
	effects = effects.WithGreatStrides(int(r.greatStrides))
	effects = effects.WithInnovation(int(r.innovation))
	effects = effects.WithVeneration(int(r.veneration))
	effects = effects.WithMuscleMemory(int(r.muscleMemory))
	effects = effects.WithWasteNot(int(r.wasteNot))
	effects = effects.WithManipulation(int(r.manipulation))
	// Trained Perfection's credit is folded into cp exactly once, at the
	// first reduction that observes it Available; every reconstruction
	// thereafter must present it as already spent so reduce() never
	// credits it a second time for the same token.
	effects = effects.WithTrainedPerfection(craft.Unavailable)
	return craft.SimulationState{
		CP:                r.cp,
		Durability:        127,
		Progress:          0,
		UnreliableQuality: [2]uint32{0, 0},
		Effects:           effects,
		Combo:             r.combo,
	}
}

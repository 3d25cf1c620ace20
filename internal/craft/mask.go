package craft

import "math/bits"

// ActionMask packs the allowed set of actions into a single word, keyed by
// job level and unlocked toggles (analogous to board.Bitboard, but one bit
// per Action rather than one bit per Square).
type ActionMask uint64

// Has returns true if a is a member of the mask.
func (m ActionMask) Has(a Action) bool {
	return m&(1<<uint(a)) != 0
}

// Add returns a mask with a added.
func (m ActionMask) Add(a Action) ActionMask {
	return m | (1 << uint(a))
}

// Remove returns a mask with a removed.
func (m ActionMask) Remove(a Action) ActionMask {
	return m &^ (1 << uint(a))
}

// Union returns the set union of two masks.
func (m ActionMask) Union(other ActionMask) ActionMask {
	return m | other
}

// Intersection returns the set intersection of two masks.
func (m ActionMask) Intersection(other ActionMask) ActionMask {
	return m & other
}

// Count returns the number of actions set in the mask.
func (m ActionMask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// ActionsIter returns the mask's members in ascending Action-id order. The
// returned slice is freshly allocated; callers in a hot loop should cache it
// per distinct mask rather than calling this every iteration.
func (m ActionMask) ActionsIter() []Action {
	out := make([]Action, 0, m.Count())
	for a := Action(0); a < Action(numActions); a++ {
		if m.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// allActionsMask is every action in the closed enumeration; const-built at
// init (mask construction is otherwise pure and can be computed at
// compile-declaration time via iota, but Go has no const loops, so we build
// it once and treat it as immutable thereafter).
var allActionsMask ActionMask

func init() {
	for a := Action(0); a < Action(numActions); a++ {
		allActionsMask |= 1 << uint(a)
	}
}

// All returns the mask containing every action in the enumeration.
func All() ActionMask {
	return allActionsMask
}

// FromLevel returns the mask of actions unlocked by the given job level.
// Manipulation is additionally gated on manipUnlocked (the crafter
// configuration's "manipulation" toggle, independent of level in the
// source game's progression but modeled here as a simple AND).
func FromLevel(level uint8, manipUnlocked bool) ActionMask {
	var m ActionMask
	for a := Action(0); a < Action(numActions); a++ {
		info := actionTable[a]
		if info.minLevel > level {
			continue
		}
		if a == Manipulation && !manipUnlocked {
			continue
		}
		m = m.Add(a)
	}
	return m
}

// ProgressActions is the static mask of actions whose primary kind is
// progress or both (Delicate Synthesis counts toward both masks).
var ProgressActions ActionMask

// QualityActions is the static mask of actions whose primary kind is
// quality or both.
var QualityActions ActionMask

func init() {
	for a := Action(0); a < Action(numActions); a++ {
		switch actionTable[a].kind {
		case KindProgress:
			ProgressActions = ProgressActions.Add(a)
		case KindQuality:
			QualityActions = QualityActions.Add(a)
		case KindBoth:
			ProgressActions = ProgressActions.Add(a)
			QualityActions = QualityActions.Add(a)
		}
	}
}

// SearchActions is the mask used by the QUB solver's recursion (§4.4):
// progress actions, quality actions, and Trained Perfection (which only
// affects the CP credited back by the reduction, never progress/quality
// directly, but still needs to be explorable so its credit is reachable).
var SearchActions ActionMask

func init() {
	SearchActions = ProgressActions.Union(QualityActions).Add(TrainedPerfection)
}

package craft

// Settings are the immutable per-run parameters derived from a crafter
// configuration and a recipe configuration. Constructed once per solve and
// never mutated afterwards (see spec.md §3 Lifecycle); the front-end's job
// of turning game-data tables into these values is out of scope here.
type Settings struct {
	MaxCP          int16
	MaxDurability  int16
	MaxProgress    uint32
	MaxQuality     uint32
	BaseProgress   uint32
	BaseQuality    uint32
	JobLevel       uint8
	AllowedActions ActionMask
	Adversarial    bool
}

// SimulationState is the full mutable crafting state (spec.md §3).
//
// Invariants: 0 <= Progress <= Settings.MaxProgress, -5 <= Durability <=
// Settings.MaxDurability, 0 <= CP <= Settings.MaxCP, and every Effects
// counter is within its published cap. Durability transiently going below
// -5 is never produced by UseAction; the "lethal final hit" rule in §4.2
// clamps the allowed range, not the arithmetic.
type SimulationState struct {
	CP                 int16
	Durability         int8
	Progress           uint32
	UnreliableQuality  [2]uint32 // [optimistic, pessimistic] under the adversarial model; equal under normal play
	Effects            Effects
	Combo              Combo
}

// NewInitialState returns the starting state for a fresh craft under the
// given settings: full CP, full durability, zero progress/quality, no
// effects, no combo.
func NewInitialState(settings Settings) SimulationState {
	return SimulationState{
		CP:                settings.MaxCP,
		Durability:        int8(settings.MaxDurability),
		Progress:          0,
		UnreliableQuality: [2]uint32{0, 0},
		Effects:           0,
		Combo:             ComboNone,
	}
}

// GetQuality returns the realized quality of the state. Under the
// adversarial model this is the adversary's worst case, min(optimistic,
// pessimistic); under normal play both entries agree so the min is exact.
func (s SimulationState) GetQuality() uint32 {
	if s.UnreliableQuality[0] < s.UnreliableQuality[1] {
		return s.UnreliableQuality[0]
	}
	return s.UnreliableQuality[1]
}

// IsFinal reports whether the craft has ended, successfully or not: the
// recipe's progress target has been met, or durability has been exhausted.
func IsFinal(s SimulationState, settings Settings) bool {
	return s.Progress >= settings.MaxProgress || s.Durability <= 0
}

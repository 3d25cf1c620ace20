package craft

import "math"

// ActionError is the reason a simulated action could not be applied. The
// solver treats every variant identically: skip this action from this
// state. None of them is ever surfaced past the simulation boundary.
type ActionError uint8

const (
	errNone ActionError = iota
	NotUnlocked
	NotFirstAction
	BadCombo
	InsufficientCP
	InsufficientDurability
	SingleUseExhausted
	WrongClassOfAction
)

func (e ActionError) String() string {
	switch e {
	case NotUnlocked:
		return "NotUnlocked"
	case NotFirstAction:
		return "NotFirstAction"
	case BadCombo:
		return "BadCombo"
	case InsufficientCP:
		return "InsufficientCP"
	case InsufficientDurability:
		return "InsufficientDurability"
	case SingleUseExhausted:
		return "SingleUseExhausted"
	case WrongClassOfAction:
		return "WrongClassOfAction"
	default:
		return "none"
	}
}

func (e ActionError) Error() string { return e.String() }

const goodConditionMultiplier = 1.5

// comboRequirement reports whether a is gated on a prerequisite combo, and
// if so which prior combo values satisfy it. Only the two discounted combo
// follow-ups hard-require a match; every other action (including the
// full-price StandardTouch/AdvancedTouch) is always legal regardless of
// state.combo.
func comboRequirement(a Action) (required bool, satisfiedBy []Combo) {
	switch a {
	case ChainedStandardTouch:
		return true, []Combo{ComboBasicTouch, ComboReflect}
	case ChainedAdvancedTouch:
		return true, []Combo{ComboStandardTouch}
	default:
		return false, nil
	}
}

// isFirstAction reports whether state looks like the untouched initial
// state, the only state from which a firstOnly action (MuscleMemory,
// Reflect, TrainedEye) may legally be used. CP, durability and progress all
// sitting at their starting values is the state-only proxy for "no action
// has been applied yet" available without a dedicated step counter; it is
// not exact (a zero-CP, zero-durability, no-progress action such as
// TrainedPerfection leaves no trace in any of the three), but it rules out
// the case this check exists for: re-applying a firstOnly action deeper
// into a macro after CP, durability or progress has moved.
func isFirstAction(state SimulationState, settings Settings) bool {
	return state.Progress == 0 && state.CP == settings.MaxCP && state.Durability == int8(settings.MaxDurability)
}

func comboSatisfied(a Action, combo Combo) bool {
	required, allowed := comboRequirement(a)
	if !required {
		return true
	}
	for _, c := range allowed {
		if c == combo {
			return true
		}
	}
	return false
}

// singleUseSlotValue reads the token state for an action's single-use slot,
// and reports whether the action even has one.
func singleUseSlotValue(e Effects, slot SingleUseSlot) (SingleUse, bool) {
	switch slot {
	case SlotTrainedPerfection:
		return e.TrainedPerfection(), true
	case SlotHeartAndSoul:
		return e.HeartAndSoul(), true
	case SlotQuickInnovation:
		return e.QuickInnovation(), true
	default:
		return Available, false
	}
}

// withSingleUse writes v into an action's own single-use slot, the
// counterpart setter to singleUseSlotValue's getter.
func withSingleUse(e Effects, slot SingleUseSlot, v SingleUse) Effects {
	switch slot {
	case SlotTrainedPerfection:
		return e.WithTrainedPerfection(v)
	case SlotHeartAndSoul:
		return e.WithHeartAndSoul(v)
	case SlotQuickInnovation:
		return e.WithQuickInnovation(v)
	default:
		return e
	}
}

// tokenTransition reports the required current value of an action's
// single-use slot and the value activating it leaves behind. Trained
// Perfection and Heart and Soul both arm a slot (Available -> Active) for a
// later action to spend; Quick Innovation instead spends its own slot
// immediately (Available -> Unavailable), since it grants its Innovation
// buff outright rather than waiting on a follow-up consumer.
func tokenTransition(a Action, slot SingleUseSlot, current SingleUse) (required SingleUse, next SingleUse) {
	switch a {
	case QuickInnovation:
		return Available, Unavailable
	case TrainedPerfection, HeartAndSoul:
		return Available, Active
	case PreciseTouch, IntensiveSynthesis:
		return Active, Unavailable
	default:
		return current, current
	}
}

// UseAction applies one action to state under settings (always under the
// normal condition; there is no condition parameter), returning the successor state or the precondition that
// failed. Preconditions are evaluated in the fixed order from the
// simulation kernel's contract: unlocked, first-action restriction, combo,
// single-use token, sufficient CP, durability (with the lethal-final-hit
// slack).
func UseAction(state SimulationState, action Action, settings Settings) (SimulationState, ActionError) {
	if action >= Action(numActions) {
		return state, WrongClassOfAction
	}
	if !settings.AllowedActions.Has(action) {
		return state, NotUnlocked
	}

	info := actionTable[action]
	if info.firstOnly && !isFirstAction(state, settings) {
		return state, NotFirstAction
	}
	if !comboSatisfied(action, state.Combo) {
		return state, BadCombo
	}

	var ownSlot SingleUseSlot = SingleUseNone
	var ownSlotNext SingleUse
	if info.singleUse != SingleUseNone {
		current, _ := singleUseSlotValue(state.Effects, info.singleUse)
		required, next := tokenTransition(action, info.singleUse, current)
		if current != required {
			return state, SingleUseExhausted
		}
		ownSlot, ownSlotNext = info.singleUse, next
	}

	if state.CP < info.cpCost {
		return state, InsufficientCP
	}

	trainedPerfectionActive := state.Effects.TrainedPerfection() == Active
	skipDurability := trainedPerfectionActive || state.Effects.WasteNot() > 0
	durCost := info.durCost
	if skipDurability && durCost > 0 {
		durCost = 0
	}
	if state.Durability <= 0 {
		return state, InsufficientDurability
	}
	newDurability := state.Durability - durCost
	if newDurability < -5 {
		newDurability = -5
	}
	if newDurability > int8(settings.MaxDurability) {
		newDurability = int8(settings.MaxDurability)
	}

	// --- Effects of a successful action, in the fixed order. ---

	// (1) pay CP.
	newCP := state.CP - info.cpCost

	// (2) progress.
	progressMult := 1.0
	if state.Effects.MuscleMemory() > 0 {
		progressMult += 1.0
	}
	if state.Effects.Veneration() > 0 {
		progressMult += 0.5
	}
	var progressDelta uint32
	if info.kind == KindProgress || info.kind == KindBoth {
		progressDelta = uint32(math.Floor(float64(settings.BaseProgress) * progressMult * info.factor))
	}
	newProgress := state.Progress + progressDelta
	if newProgress > settings.MaxProgress {
		newProgress = settings.MaxProgress
	}

	// (3) quality.
	qualityMult := 1.0 + 0.1*float64(state.Effects.InnerQuiet())
	if state.Effects.Innovation() > 0 {
		qualityMult += 0.5
	}
	if state.Effects.GreatStrides() > 0 {
		qualityMult += 1.0
	}
	actionFactor := info.factor
	if action == ByregotsBlessing {
		actionFactor = 1.0 + 0.2*float64(state.Effects.InnerQuiet())
	}
	var qualityDelta uint32
	if info.kind == KindQuality || info.kind == KindBoth {
		qualityDelta = uint32(math.Floor(float64(settings.BaseQuality) * qualityMult * actionFactor))
	} else if action == TrainedEye {
		// Trained Eye grants full quality outright rather than a multiplied
		// delta; firstOnly guarantees no quality has accumulated yet, so
		// this is exactly the 100% mark rather than an additive jump.
		qualityDelta = settings.MaxQuality
	}

	newUnreliable := state.UnreliableQuality
	guard := state.Effects.Guard()
	newGuard := guard
	if qualityDelta > 0 {
		if settings.Adversarial {
			boosted := uint32(math.Floor(float64(qualityDelta) * goodConditionMultiplier))
			if guard == 0 {
				newUnreliable[0] = state.UnreliableQuality[0] + boosted
				newGuard = 1
			} else {
				newUnreliable[0] = state.UnreliableQuality[0] + qualityDelta
				newGuard = 0
			}
			newUnreliable[1] = state.UnreliableQuality[1] + qualityDelta
		} else {
			newUnreliable[0] = state.UnreliableQuality[0] + qualityDelta
			newUnreliable[1] = state.UnreliableQuality[1] + qualityDelta
		}
	}
	cap := 2 * settings.MaxQuality
	if newUnreliable[0] > cap {
		newUnreliable[0] = cap
	}
	if newUnreliable[1] > cap {
		newUnreliable[1] = cap
	}

	// (4) pay durability (already computed above, skip applied).
	_ = newDurability

	// (5) decrement all non-zero effect counters by one. One-shot buffs
	// that were actually spent this turn (Muscle Memory on a progress
	// action, Great Strides on a quality action) are fully consumed
	// instead of merely decremented.
	effects := state.Effects
	consumedMuscleMemory := progressDelta > 0 && effects.MuscleMemory() > 0
	consumedGreatStrides := qualityDelta > 0 && effects.GreatStrides() > 0
	effects = effects.DecayCounters()
	if consumedMuscleMemory {
		effects = effects.WithMuscleMemory(0)
	}
	if consumedGreatStrides {
		effects = effects.WithGreatStrides(0)
	}
	if trainedPerfectionActive {
		effects = effects.WithTrainedPerfection(Unavailable)
	}

	// (6) action-specific effect writes, applied after the decrement. Each
	// action's own single-use slot (if any) is written once, below, from
	// ownSlot/ownSlotNext rather than repeated here per action.
	switch action {
	case MuscleMemory:
		effects = effects.WithMuscleMemory(5)
	case WasteNot:
		effects = effects.WithWasteNot(4)
	case WasteNot2:
		effects = effects.WithWasteNot(8)
	case Veneration:
		effects = effects.WithVeneration(4)
	case Innovation:
		effects = effects.WithInnovation(4)
	case GreatStrides:
		effects = effects.WithGreatStrides(3)
	case Manipulation:
		effects = effects.WithManipulation(8)
	case QuickInnovation:
		effects = effects.WithInnovation(4)
	case PreciseTouch:
		effects = effects.WithInnerQuiet(effects.InnerQuiet() + 1)
	case Reflect:
		effects = effects.WithInnerQuiet(effects.InnerQuiet() + 2)
	case ByregotsBlessing:
		effects = effects.WithInnerQuiet(0)
	default:
		if info.kind == KindQuality || info.kind == KindBoth {
			gain := 1
			if action == PreparatoryTouch {
				gain = 2
			}
			effects = effects.WithInnerQuiet(effects.InnerQuiet() + gain)
		}
	}
	if ownSlot != SingleUseNone {
		effects = withSingleUse(effects, ownSlot, ownSlotNext)
	}
	effects = effects.WithGuard(newGuard)

	// (7) update combo.
	var newCombo Combo
	if info.comboSet != ComboNone {
		newCombo = info.comboSet
	} else if info.kind == KindOther {
		newCombo = state.Combo
	} else {
		newCombo = ComboNone
	}

	// (8) manipulation refund, capped at max_durability.
	if newDurability > 0 && effects.Manipulation() > 0 {
		newDurability += 5
		if newDurability > int8(settings.MaxDurability) {
			newDurability = int8(settings.MaxDurability)
		}
	}

	return SimulationState{
		CP:                newCP,
		Durability:        newDurability,
		Progress:          newProgress,
		UnreliableQuality: newUnreliable,
		Effects:           effects,
		Combo:             newCombo,
	}, errNone
}

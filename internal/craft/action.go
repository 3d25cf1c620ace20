// Package craft implements the crafting simulation kernel: the action
// catalogue, the bit-packed effects/state encoding, and the deterministic
// rules for applying one action to a state.
package craft

import "fmt"

// Action is a single crafting move, one of the named constants below. The
// zero value is BasicSynthesis.
type Action uint8

const (
	BasicSynthesis Action = iota
	BasicTouch
	MasterMend
	WasteNot
	Veneration
	StandardTouch
	ChainedStandardTouch
	ByregotsBlessing
	PreparatoryTouch
	Manipulation
	WasteNot2
	Innovation
	GreatStrides
	Groundwork
	DelicateSynthesis
	CarefulSynthesis
	PrudentTouch
	PrudentSynthesis
	TrainedFinesse
	MuscleMemory
	Reflect
	AdvancedTouch
	ChainedAdvancedTouch
	ImmaculateMend
	TrainedPerfection
	HeartAndSoul
	QuickInnovation
	TrainedEye
	PreciseTouch
	IntensiveSynthesis

	numActions
)

// ActionKind classifies what an action primarily does, used by the action
// catalogue to build PROGRESS_ACTIONS / QUALITY_ACTIONS style static masks.
type ActionKind uint8

const (
	KindOther ActionKind = iota
	KindProgress
	KindQuality
	KindBoth // progress and quality simultaneously (Delicate Synthesis)
)

// SingleUseSlot identifies which single-use token field an action reads or
// writes. SingleUseNone means the action has no relationship to tokens.
type SingleUseSlot uint8

const (
	SingleUseNone SingleUseSlot = iota
	SlotTrainedPerfection
	SlotHeartAndSoul
	SlotQuickInnovation
)

// actionInfo is the static, immutable metadata for one action. Tables built
// from it (masks, CP costs) are computed once at init time and never
// mutated afterwards.
type actionInfo struct {
	name        string
	displayName string
	kind        ActionKind
	cpCost      int16 // may be negative for refunds (none currently)
	durCost     int8  // may be negative for refunds (MasterMend)
	factor      float64
	minLevel    uint8
	timeCost    uint8 // seconds, always 2 or 3
	firstOnly   bool  // must be the first action of the craft (MuscleMemory, Reflect, TrainedEye); enforced by UseAction, see isFirstAction
	comboSet    Combo // Combo state this action leaves behind (ComboNone clears it)
	singleUse   SingleUseSlot
}

var actionTable = [numActions]actionInfo{
	BasicSynthesis:      {name: "BasicSynthesis", displayName: "Basic Synthesis", kind: KindProgress, cpCost: 0, durCost: 10, factor: 1.2, minLevel: 1, timeCost: 3},
	BasicTouch:          {name: "BasicTouch", displayName: "Basic Touch", kind: KindQuality, cpCost: 18, durCost: 10, factor: 1.0, minLevel: 5, timeCost: 3, comboSet: ComboBasicTouch},
	MasterMend:          {name: "MasterMend", displayName: "Master's Mend", kind: KindOther, cpCost: 88, durCost: -30, minLevel: 7, timeCost: 2},
	WasteNot:            {name: "WasteNot", displayName: "Waste Not", kind: KindOther, cpCost: 56, durCost: 0, minLevel: 15, timeCost: 2},
	Veneration:          {name: "Veneration", displayName: "Veneration", kind: KindOther, cpCost: 18, durCost: 0, minLevel: 15, timeCost: 2},
	StandardTouch:       {name: "StandardTouch", displayName: "Standard Touch", kind: KindQuality, cpCost: 32, durCost: 10, factor: 1.25, minLevel: 18, timeCost: 3, comboSet: ComboStandardTouch},
	ChainedStandardTouch: {name: "ChainedStandardTouch", displayName: "Standard Touch", kind: KindQuality, cpCost: 18, durCost: 10, factor: 1.25, minLevel: 18, timeCost: 3, comboSet: ComboStandardTouch},
	ByregotsBlessing:    {name: "ByregotsBlessing", displayName: "Byregot's Blessing", kind: KindQuality, cpCost: 24, durCost: 10, minLevel: 50, timeCost: 3},
	PreparatoryTouch:    {name: "PreparatoryTouch", displayName: "Preparatory Touch", kind: KindQuality, cpCost: 40, durCost: 20, factor: 2.0, minLevel: 71, timeCost: 3},
	Manipulation:        {name: "Manipulation", displayName: "Manipulation", kind: KindOther, cpCost: 96, durCost: 0, minLevel: 65, timeCost: 2},
	WasteNot2:           {name: "WasteNot2", displayName: "Waste Not II", kind: KindOther, cpCost: 98, durCost: 0, minLevel: 47, timeCost: 2},
	Innovation:          {name: "Innovation", displayName: "Innovation", kind: KindOther, cpCost: 18, durCost: 0, minLevel: 26, timeCost: 2},
	GreatStrides:        {name: "GreatStrides", displayName: "Great Strides", kind: KindOther, cpCost: 32, durCost: 0, minLevel: 21, timeCost: 2},
	Groundwork:          {name: "Groundwork", displayName: "Groundwork", kind: KindProgress, cpCost: 18, durCost: 20, factor: 3.6, minLevel: 72, timeCost: 3},
	DelicateSynthesis:   {name: "DelicateSynthesis", displayName: "Delicate Synthesis", kind: KindBoth, cpCost: 32, durCost: 10, factor: 1.0, minLevel: 76, timeCost: 3},
	CarefulSynthesis:    {name: "CarefulSynthesis", displayName: "Careful Synthesis", kind: KindProgress, cpCost: 7, durCost: 10, factor: 1.5, minLevel: 62, timeCost: 3},
	PrudentTouch:        {name: "PrudentTouch", displayName: "Prudent Touch", kind: KindQuality, cpCost: 25, durCost: 5, factor: 1.0, minLevel: 66, timeCost: 3},
	PrudentSynthesis:    {name: "PrudentSynthesis", displayName: "Prudent Synthesis", kind: KindProgress, cpCost: 18, durCost: 5, factor: 1.8, minLevel: 88, timeCost: 3},
	TrainedFinesse:      {name: "TrainedFinesse", displayName: "Trained Finesse", kind: KindQuality, cpCost: 32, durCost: 0, factor: 1.0, minLevel: 90, timeCost: 3},
	MuscleMemory:        {name: "MuscleMemory", displayName: "Muscle Memory", kind: KindProgress, cpCost: 6, durCost: 10, factor: 1.0, minLevel: 54, timeCost: 3, firstOnly: true},
	Reflect:             {name: "Reflect", displayName: "Reflect", kind: KindQuality, cpCost: 6, durCost: 10, factor: 1.0, minLevel: 69, timeCost: 3, firstOnly: true, comboSet: ComboReflect},
	AdvancedTouch:       {name: "AdvancedTouch", displayName: "Advanced Touch", kind: KindQuality, cpCost: 46, durCost: 10, factor: 1.5, minLevel: 84, timeCost: 3},
	ChainedAdvancedTouch: {name: "ChainedAdvancedTouch", displayName: "Advanced Touch", kind: KindQuality, cpCost: 18, durCost: 10, factor: 1.5, minLevel: 84, timeCost: 3},
	ImmaculateMend:      {name: "ImmaculateMend", displayName: "Immaculate Mend", kind: KindOther, cpCost: 112, durCost: 0, minLevel: 37, timeCost: 2},
	TrainedPerfection:   {name: "TrainedPerfection", displayName: "Trained Perfection", kind: KindOther, cpCost: 0, durCost: 0, minLevel: 100, timeCost: 2, singleUse: SlotTrainedPerfection},
	HeartAndSoul:        {name: "HeartAndSoul", displayName: "Heart and Soul", kind: KindOther, cpCost: 0, durCost: 0, minLevel: 86, timeCost: 2, singleUse: SlotHeartAndSoul},
	QuickInnovation:     {name: "QuickInnovation", displayName: "Quick Innovation", kind: KindOther, cpCost: 0, durCost: 0, minLevel: 90, timeCost: 2, singleUse: SlotQuickInnovation},
	TrainedEye:          {name: "TrainedEye", displayName: "Trained Eye", kind: KindOther, cpCost: 250, durCost: 10, minLevel: 80, timeCost: 3, firstOnly: true},
	PreciseTouch:        {name: "PreciseTouch", displayName: "Precise Touch", kind: KindQuality, cpCost: 25, durCost: 10, factor: 1.5, minLevel: 53, timeCost: 3, singleUse: SlotHeartAndSoul},
	IntensiveSynthesis:  {name: "IntensiveSynthesis", displayName: "Intensive Synthesis", kind: KindProgress, cpCost: 6, durCost: 10, factor: 2.5, minLevel: 78, timeCost: 3, singleUse: SlotHeartAndSoul},
}

// String returns the action's identifier, matching actionTable.name.
func (a Action) String() string {
	if a >= numActions {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionTable[a].name
}

// DisplayName returns the string literal matching the game's in-game
// action name, for macro text formatting by the caller.
func (a Action) DisplayName() string {
	return actionTable[a].displayName
}

// TimeCost returns the in-game wait time in seconds for this action (2 or 3).
func (a Action) TimeCost() uint8 {
	return actionTable[a].timeCost
}

// CPCost returns the action's CP cost.
func (a Action) CPCost() int16 {
	return actionTable[a].cpCost
}

// MinLevel returns the job level at which this action unlocks.
func (a Action) MinLevel() uint8 {
	return actionTable[a].minLevel
}

// Kind returns the action's classification (progress/quality/both/other).
func (a Action) Kind() ActionKind {
	return actionTable[a].kind
}

// NumActions is the size of the closed action enumeration.
const NumActions = int(numActions)

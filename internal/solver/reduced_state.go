// Package solver implements the quality-upper-bound oracle and the
// best-first macro search built on top of internal/craft's simulation
// kernel and internal/paretofront's antichain builder.
package solver

import "github.com/raphcraft/craftsolve/internal/craft"

// reducedState is the memoisation key for the quality upper bound solver: a
// lossy projection of a craft.SimulationState that drops everything that
// cannot lower the bound (durability, progress, realised quality) and
// re-encodes durability as CP already credited for its own repair.
//
// Two SimulationStates reducing to an equal reducedState are guaranteed to
// share the same quality upper bound front; see reduce for the credit
// rules that make this hold.
type reducedState struct {
	cp           int16
	innerQuiet   uint8
	greatStrides uint8
	innovation   uint8
	veneration   uint8
	muscleMemory uint8
	wasteNot     uint8
	manipulation uint8
	combo        craft.Combo
}

// durabilityCosts holds the two pre-solve constants the reduction folds
// into CP: the minimum per-5-durability repair cost, and the effective
// Waste Not discount. Both are fixed for the lifetime of one solve.
type durabilityCosts struct {
	baseDurabilityCost int16
	wasteNotCost       int16
}

// newDurabilityCosts computes base_durability_cost and waste_not_cost from
// settings, per the quality-upper-bound solver's precomputation step: the
// minimum of every unlocked repair action's CP-per-5-durability rate.
func newDurabilityCosts(settings craft.Settings) durabilityCosts {
	masterMendCost := craft.MasterMend.CPCost() / 6
	cost := masterMendCost
	if settings.AllowedActions.Has(craft.Manipulation) {
		if c := craft.Manipulation.CPCost() / 8; c < cost {
			cost = c
		}
	}
	if settings.AllowedActions.Has(craft.ImmaculateMend) {
		denom := int16(settings.MaxDurability)/5 - 1
		if denom > 0 {
			if c := craft.ImmaculateMend.CPCost() / denom; c < cost {
				cost = c
			}
		}
	}

	wasteNotCost := craft.WasteNot.CPCost() / 4
	if settings.AllowedActions.Has(craft.WasteNot2) {
		wasteNotCost = craft.WasteNot2.CPCost() / 8
	}

	return durabilityCosts{baseDurabilityCost: cost, wasteNotCost: wasteNotCost}
}

// reduce projects a SimulationState down to its reducedState, crediting CP
// for the repair and buff value durability/manipulation/waste-not/trained
// perfection represent, in the fixed order the admissibility proof relies
// on (see spec's design notes on reduced-state lossiness).
func reduce(state craft.SimulationState, settings craft.Settings, costs durabilityCosts) reducedState {
	cp := state.CP
	cp += int16(state.Effects.Manipulation()) * (craft.Manipulation.CPCost() / 8)
	cp += int16(state.Effects.WasteNot()) * costs.wasteNotCost
	cp += int16(state.Durability) / 5 * costs.baseDurabilityCost
	if state.Effects.TrainedPerfection() != craft.Unavailable && settings.AllowedActions.Has(craft.TrainedPerfection) {
		cp += 4 * costs.baseDurabilityCost
	}

	return reducedState{
		cp:           cp,
		innerQuiet:   uint8(state.Effects.InnerQuiet()),
		greatStrides: uint8(state.Effects.GreatStrides()),
		innovation:   uint8(state.Effects.Innovation()),
		veneration:   uint8(state.Effects.Veneration()),
		muscleMemory: uint8(state.Effects.MuscleMemory()),
		wasteNot:     uint8(state.Effects.WasteNot()),
		manipulation: uint8(state.Effects.Manipulation()),
		combo:        state.Combo,
	}
}

package solver

import "github.com/raphcraft/craftsolve/internal/craft"

// sentinel marks the root: a node with no parent.
const sentinel = ^uint32(0)

// arena is an append-only sequence of (action, parent index) pairs backing
// the search tree's action history, the same shape as the Backtracking
// arena: O(1) push, reconstruct a path by walking parent links to the
// sentinel then reversing. Using 32-bit indices instead of pointers lets
// the whole tree be dropped in one deallocation when a solve finishes
// (see the open question on index width in the design notes).
type arena struct {
	items   []craft.Action
	parents []uint32
}

// newArena preallocates space for cap nodes; cap is advisory only, the
// arena grows past it via normal slice append.
func newArena(cap int) *arena {
	return &arena{
		items:   make([]craft.Action, 0, cap),
		parents: make([]uint32, 0, cap),
	}
}

// Push appends a new node and returns its index. parent must be sentinel
// or a previously returned index.
func (a *arena) Push(item craft.Action, parent uint32) uint32 {
	a.items = append(a.items, item)
	a.parents = append(a.parents, parent)
	return uint32(len(a.items) - 1)
}

// Len returns the number of nodes recorded.
func (a *arena) Len() int {
	return len(a.items)
}

// Path returns the sequence of actions from the root to index, in the
// order they were taken.
func (a *arena) Path(index uint32) []craft.Action {
	var reversed []craft.Action
	for index != sentinel {
		reversed = append(reversed, a.items[index])
		index = a.parents[index]
	}
	out := make([]craft.Action, len(reversed))
	for i, item := range reversed {
		out[len(reversed)-1-i] = item
	}
	return out
}

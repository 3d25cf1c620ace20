package paretofront

import "testing"

func TestMergeKeepsOnlyMaximalElements(t *testing.T) {
	b := NewBuilder[uint16, uint16](10000, 10000)
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 5, Second: 10}})
	b.Merge()
	b.Push([]Value[uint16, uint16]{{First: 3, Second: 8}}) // dominated by (5,10)
	b.Merge()

	got := b.Peek()
	if len(got) != 1 || got[0] != (Value[uint16, uint16]{First: 5, Second: 10}) {
		t.Fatalf("Peek() = %v, want [{5 10}]", got)
	}
}

func TestMergeAntichainInvariant(t *testing.T) {
	b := NewBuilder[uint16, uint16](10000, 10000)
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 1, Second: 9}, {First: 4, Second: 6}})
	b.Merge()
	b.Push([]Value[uint16, uint16]{{First: 2, Second: 7}, {First: 5, Second: 2}})
	b.Merge()

	front := b.Peek()
	for i := range front {
		for j := range front {
			if i == j {
				continue
			}
			if front[i].Dominates(front[j]) {
				t.Fatalf("front is not an antichain: %v dominates %v in %v", front[i], front[j], front)
			}
		}
	}
}

func TestMergeSortedByFirstAscending(t *testing.T) {
	b := NewBuilder[uint16, uint16](10000, 10000)
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 9, Second: 1}, {First: 1, Second: 9}, {First: 5, Second: 5}})
	b.Merge()

	front := b.Peek()
	for i := 1; i < len(front); i++ {
		if front[i].First < front[i-1].First {
			t.Fatalf("front not sorted by First ascending: %v", front)
		}
	}
}

func TestMapAppliesOffsetAndClamps(t *testing.T) {
	b := NewBuilder[uint16, uint16](100, 100)
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 90, Second: 90}})
	b.Merge()
	b.Map(50, 50)

	front := b.Peek()
	if len(front) != 1 || front[0].First != 100 || front[0].Second != 100 {
		t.Fatalf("Map did not clamp to maxima: %v", front)
	}
}

func TestIsMaxDetectsSingletonCeiling(t *testing.T) {
	b := NewBuilder[uint16, uint16](2000, 4000)
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 2000, Second: 4000}})
	b.Merge()
	if !b.IsMax() {
		t.Fatalf("IsMax() = false, want true for the singleton ceiling value")
	}

	b.Clear()
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 2000, Second: 3999}})
	b.Merge()
	if b.IsMax() {
		t.Fatalf("IsMax() = true, want false when Second is below the ceiling")
	}
}

func TestBestAtLeastBinarySearch(t *testing.T) {
	front := []Value[uint16, uint16]{
		{First: 10, Second: 90},
		{First: 50, Second: 60},
		{First: 100, Second: 10},
	}
	if v, ok := BestAtLeast[uint16, uint16](front, 40); !ok || v != 60 {
		t.Fatalf("BestAtLeast(40) = (%d, %v), want (60, true)", v, ok)
	}
	if v, ok := BestAtLeast[uint16, uint16](front, 100); !ok || v != 10 {
		t.Fatalf("BestAtLeast(100) = (%d, %v), want (10, true)", v, ok)
	}
	if _, ok := BestAtLeast[uint16, uint16](front, 101); ok {
		t.Fatalf("BestAtLeast(101) should fail: no entry reaches it")
	}
}

func TestPopBalancesPushEmpty(t *testing.T) {
	b := NewBuilder[uint16, uint16](100, 100)
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 1, Second: 1}})
	b.Merge()
	b.Pop()

	defer func() {
		if recover() == nil {
			t.Fatalf("Peek() after Pop should panic: stack should be empty again")
		}
	}()
	b.Peek()
}

// TestPopRestoresOuterFrameAfterNestedFrame mirrors the QUB solver's own
// recursive use: an outer PushEmpty/accumulate/Pop sequence must merge into
// its own frame correctly even when an inner PushEmpty/accumulate/Pop
// sequence ran to completion (and was properly balanced) in between.
func TestPopRestoresOuterFrameAfterNestedFrame(t *testing.T) {
	b := NewBuilder[uint16, uint16](1000, 1000)

	b.PushEmpty() // outer frame
	b.Push([]Value[uint16, uint16]{{First: 1, Second: 1}})
	b.Merge()

	// Simulate a nested, fully-balanced recursive call computing some
	// unrelated child front in between two contributions to the outer frame.
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 9, Second: 9}})
	b.Merge()
	nested := b.Peek()
	b.Pop()
	if len(nested) != 1 || nested[0] != (Value[uint16, uint16]{First: 9, Second: 9}) {
		t.Fatalf("nested front = %v, want [{9 9}]", nested)
	}

	b.Push([]Value[uint16, uint16]{{First: 2, Second: 0}})
	b.Merge()

	outer := b.Peek()
	b.Pop()
	want := []Value[uint16, uint16]{{First: 1, Second: 1}, {First: 2, Second: 0}}
	if len(outer) != len(want) {
		t.Fatalf("outer front = %v, want %v", outer, want)
	}
	for i := range want {
		if outer[i] != want[i] {
			t.Fatalf("outer front = %v, want %v", outer, want)
		}
	}
}

func TestClearEmptiesStack(t *testing.T) {
	b := NewBuilder[uint16, uint16](10, 10)
	b.PushEmpty()
	b.Push([]Value[uint16, uint16]{{First: 1, Second: 1}})
	b.Merge()
	b.Clear()

	defer func() {
		if recover() == nil {
			t.Fatalf("Peek() on a cleared builder should panic (empty stack)")
		}
	}()
	b.Peek()
}

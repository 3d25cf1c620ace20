package solver

import "testing"

func TestScoreOrderingQualityDominatesFirst(t *testing.T) {
	low := NewScore(100, 30, 10, 5000)
	high := NewScore(200, 30, 10, 5000)
	if !high.Beats(low) {
		t.Fatalf("higher quality at equal duration/steps must win")
	}
	if low.Beats(high) {
		t.Fatalf("lower quality must not beat higher quality")
	}
}

func TestScoreOrderingDurationTiebreak(t *testing.T) {
	fast := NewScore(500, 20, 10, 5000)
	slow := NewScore(500, 40, 10, 5000)
	if !fast.Beats(slow) {
		t.Fatalf("at equal quality, fewer wait-seconds must win")
	}
}

func TestScoreOrderingStepsTiebreak(t *testing.T) {
	short := NewScore(500, 30, 5, 5000)
	long := NewScore(500, 30, 15, 5000)
	if !short.Beats(long) {
		t.Fatalf("at equal quality and duration, fewer steps must win")
	}
}

func TestScoreOrderingOverflowIsFinalTiebreak(t *testing.T) {
	a := NewScore(6000, 30, 10, 5000) // clamps to 5000, overflow 1000
	b := NewScore(5500, 30, 10, 5000) // clamps to 5000, overflow 500
	if a.Quality != b.Quality {
		t.Fatalf("both scores should clamp to the same quality ceiling")
	}
	if !b.Beats(a) {
		t.Fatalf("smaller overflow must win when everything else ties")
	}
}

func TestScoreOrderingIsTotal(t *testing.T) {
	scores := []Score{
		NewScore(100, 10, 5, 1000),
		NewScore(100, 10, 5, 1000),
		NewScore(200, 10, 5, 1000),
		NewScore(100, 20, 5, 1000),
	}
	// reflexive
	for _, s := range scores {
		if s.Beats(s) {
			t.Fatalf("Beats must be irreflexive: %+v beats itself", s)
		}
	}
	// antisymmetric
	if scores[2].Beats(scores[0]) && scores[0].Beats(scores[2]) {
		t.Fatalf("Beats must be antisymmetric")
	}
}

func TestRadixSimilarityIdenticalIsMax(t *testing.T) {
	s := NewScore(1234, 30, 10, 5000)
	if got := s.RadixSimilarity(s); got != 48 {
		t.Fatalf("RadixSimilarity(s, s) = %d, want 48", got)
	}
}

func TestRadixSimilarityDecreasesWithDivergence(t *testing.T) {
	base := NewScore(1000, 30, 10, 5000)
	closeQuality := NewScore(1001, 30, 10, 5000)
	farQuality := NewScore(9000, 30, 10, 5000)

	simClose := base.RadixSimilarity(closeQuality)
	simFar := base.RadixSimilarity(farQuality)
	if simClose <= simFar {
		t.Fatalf("closer scores should share more high bits: close=%d far=%d", simClose, simFar)
	}
}

package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/raphcraft/craftsolve/internal/craft"
	"github.com/raphcraft/craftsolve/internal/solver"
)

const keyStats = "aggregate_stats"

// cachedSolution is the on-disk representation of a solved macro. Actions
// are stored as a byte per action id, since craft.Action never exceeds a
// single byte even as the enumeration grows.
type cachedSolution struct {
	Actions   []byte    `json:"actions"`
	Quality   uint32    `json:"quality"`
	Duration  uint8     `json:"duration"`
	Steps     uint8     `json:"steps"`
	Overflow  uint32    `json:"overflow"`
	SolvedAt  time.Time `json:"solved_at"`
}

// AggregateStats tracks cache effectiveness across the process lifetime.
type AggregateStats struct {
	Hits            int           `json:"hits"`
	Misses          int           `json:"misses"`
	TotalSolveTime  time.Duration `json:"total_solve_time"`
	SolvesRecorded  int           `json:"solves_recorded"`
}

// HitRate returns the percentage (0-100) of lookups that were served from
// cache.
func (s *AggregateStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Cache wraps a BadgerDB instance keyed by the boundary worker's solve
// fingerprint (crafter/recipe/allowed-actions digest), so a repeated
// request for the same craft returns instantly instead of re-running the
// search.
type Cache struct {
	db *badger.DB
}

// Open opens (or creates) the on-disk cache in the platform data directory.
func Open() (*Cache, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func fingerprintKey(fingerprint uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], fingerprint)
	return buf[:]
}

// Lookup returns a previously solved macro for the given fingerprint, if
// one was stored, and records the hit/miss in the aggregate stats.
func (c *Cache) Lookup(fingerprint uint64) (solver.Solution, bool, error) {
	var sol solver.Solution
	found := false

	err := c.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}

		item, err := txn.Get(fingerprintKey(fingerprint))
		if err == badger.ErrKeyNotFound {
			stats.Misses++
			return saveStats(txn, stats)
		}
		if err != nil {
			return err
		}

		var cached cachedSolution
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		}); err != nil {
			return err
		}

		sol = solution(cached)
		found = true
		stats.Hits++
		return saveStats(txn, stats)
	})

	return sol, found, err
}

// Store records a solved macro under its fingerprint for future lookups,
// and updates the running aggregate statistics.
func (c *Cache) Store(fingerprint uint64, sol solver.Solution, solveTime time.Duration) error {
	actions := make([]byte, len(sol.Actions))
	for i, a := range sol.Actions {
		actions[i] = byte(a)
	}

	cached := cachedSolution{
		Actions:  actions,
		Quality:  sol.Score.Quality,
		Duration: sol.Score.Duration,
		Steps:    sol.Score.Steps,
		Overflow: sol.Score.Overflow,
		SolvedAt: time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	return c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(fingerprintKey(fingerprint), data); err != nil {
			return err
		}
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.SolvesRecorded++
		stats.TotalSolveTime += solveTime
		return saveStats(txn, stats)
	})
}

// Stats returns the cache's running aggregate statistics.
func (c *Cache) Stats() (AggregateStats, error) {
	var stats AggregateStats
	err := c.db.View(func(txn *badger.Txn) error {
		s, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats = s
		return nil
	})
	return stats, err
}

func solution(c cachedSolution) solver.Solution {
	actions := make([]craft.Action, len(c.Actions))
	for i, b := range c.Actions {
		actions[i] = craft.Action(b)
	}
	return solver.Solution{
		Actions: actions,
		Score: solver.Score{
			Quality:  c.Quality,
			Duration: c.Duration,
			Steps:    c.Steps,
			Overflow: c.Overflow,
		},
	}
}

func loadStats(txn *badger.Txn) (AggregateStats, error) {
	var stats AggregateStats
	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &stats)
	})
	return stats, err
}

func saveStats(txn *badger.Txn, stats AggregateStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return txn.Set([]byte(keyStats), data)
}

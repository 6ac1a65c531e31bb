package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	at          time.Time
	durationMs  int64
	diagnostics int
}

// StatsSnapshot aggregates recent document checks.
type StatsSnapshot struct {
	Documents   int            `json:"documents"`
	Diagnostics int            `json:"diagnostics"`
	ByRule      map[string]int `json:"by_rule"`
	MinMs       int64          `json:"min_ms"`
	MaxMs       int64          `json:"max_ms"`
	AvgMs       float64        `json:"avg_ms"`
	P50Ms       float64        `json:"p50_ms"`
	P95Ms       float64        `json:"p95_ms"`
}

// Stats keeps check latencies and rule hit counts within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	rules   []ruleHit
	maxAge  time.Duration
}

type ruleHit struct {
	at   time.Time
	rule string
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{maxAge: maxAge}
}

// Record adds one checked document and the rule ids it reported.
func (s *Stats) Record(d time.Duration, ruleIDs []string) {
	ms := max(d.Milliseconds(), 0)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{at: now, durationMs: ms, diagnostics: len(ruleIDs)})
	for _, id := range ruleIDs {
		s.rules = append(s.rules, ruleHit{at: now, rule: id})
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{ByRule: make(map[string]int)}
	for _, h := range s.rules {
		snap.ByRule[h.rule]++
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		snap.Diagnostics += sm.diagnostics
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Documents = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	return snap
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	s.samples = keepAfter(s.samples, cutoff, func(sm sample) time.Time { return sm.at })
	s.rules = keepAfter(s.rules, cutoff, func(h ruleHit) time.Time { return h.at })
}

func keepAfter[T any](items []T, cutoff time.Time, at func(T) time.Time) []T {
	n := 0
	for _, it := range items {
		if !at(it).Before(cutoff) {
			items[n] = it
			n++
		}
	}
	return items[:n]
}

func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[upper])
	return lo + ((hi - lo) * weight)
}

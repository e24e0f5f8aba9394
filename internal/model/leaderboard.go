package model

import "sort"

// LeaderboardEntry is the cumulative tally for one vehicle make.
// WeightedCount sums item quantities, so WeightedCount >= Count >= 0 holds
// as long as quantities are non-negative.
type LeaderboardEntry struct {
	Make          string `json:"make"`
	Count         int    `json:"count"`
	WeightedCount int    `json:"weighted_count"`
}

// Leaderboard maintains a running weighted tally of discovered makes.
// It is not safe for concurrent use; the orchestrator owns it exclusively.
type Leaderboard struct {
	entries map[string]*LeaderboardEntry
}

// NewLeaderboard creates an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{entries: make(map[string]*LeaderboardEntry)}
}

// Record increments each make's count by 1 and weighted count by quantity.
// Incremental updates replay identically to a from-scratch recomputation
// over the same multiset of (makes, quantity) pairs.
func (l *Leaderboard) Record(makes []string, quantity int) {
	for _, make := range makes {
		if make == "" {
			continue
		}
		entry, ok := l.entries[make]
		if !ok {
			entry = &LeaderboardEntry{Make: make}
			l.entries[make] = entry
		}
		entry.Count++
		entry.WeightedCount += quantity
	}
}

// TopN returns the n entries with the highest weighted count. Ties break by
// count descending, then make name ascending, so the ordering is
// deterministic.
func (l *Leaderboard) TopN(n int) []LeaderboardEntry {
	if n <= 0 {
		return []LeaderboardEntry{}
	}

	all := l.Snapshot()
	if n > len(all) {
		n = len(all)
	}

	result := make([]LeaderboardEntry, n)
	copy(result, all[:n])
	return result
}

// Snapshot returns all entries sorted by rank. The result is an independent
// copy safe to hand to observers.
func (l *Leaderboard) Snapshot() []LeaderboardEntry {
	all := make([]LeaderboardEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		all = append(all, *entry)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].WeightedCount != all[j].WeightedCount {
			return all[i].WeightedCount > all[j].WeightedCount
		}
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Make < all[j].Make
	})

	return all
}

// Len returns the number of distinct makes recorded.
func (l *Leaderboard) Len() int {
	return len(l.entries)
}

// Restore rebuilds a leaderboard from persisted entries, used at session load.
func (l *Leaderboard) Restore(entries []LeaderboardEntry) {
	l.entries = make(map[string]*LeaderboardEntry, len(entries))
	for _, e := range entries {
		entry := e
		l.entries[e.Make] = &entry
	}
}

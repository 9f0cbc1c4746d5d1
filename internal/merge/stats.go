package merge

import "sync/atomic"

// Stats aggregates one run's counters. Copied and Skipped are bumped from
// pooled copy workers and must stay atomic; Unmatched is filled once during
// alias resolution before any worker starts.
type Stats struct {
	Copied   atomic.Int64
	Skipped  atomic.Int64
	Merged   atomic.Int64
	ArchOnly atomic.Int64

	Unmatched []string
}

// Report is the read-only snapshot persisted as JSON once the walk is done.
type Report struct {
	Copied    int64    `json:"copied"`
	Skipped   int64    `json:"skipped"`
	Merged    int64    `json:"merged"`
	ArchOnly  int64    `json:"arch_only"`
	Unmatched []string `json:"unmatched,omitempty"`
}

// Snapshot freezes the counters into a Report.
func (s *Stats) Snapshot() Report {
	return Report{
		Copied:    s.Copied.Load(),
		Skipped:   s.Skipped.Load(),
		Merged:    s.Merged.Load(),
		ArchOnly:  s.ArchOnly.Load(),
		Unmatched: s.Unmatched,
	}
}

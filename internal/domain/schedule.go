package domain

import "time"

// Block is a contiguous group of Weeks weeks solved as a single model.
// Start is the block's first day, inclusive, at midnight in the
// configured zone.
type Block struct {
	Index int
	Start time.Time
	Weeks int
}

// Week returns the Week at the given index (0-based) within the block.
func (b Block) Week(index int) Week {
	return Week{
		BlockIndex: b.Index,
		Index:      index,
		Start:      b.Start.AddDate(0, 0, 7*index),
	}
}

// Week is one 7-day window [Start, Start+7days) within a Block.
type Week struct {
	BlockIndex int
	Index      int
	Start      time.Time
}

// End is the exclusive end of the week's 7-day window.
func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, 7)
}

// Overlaps reports whether the date range [start, end] (inclusive both
// ends, date-only) overlaps the week's half-open window.
func (w Week) Overlaps(start, end time.Time) bool {
	return !end.Before(w.Start) && start.Before(w.End())
}

// Rules is the resolved form of the six constraint toggles. Unlike the
// YAML-decoded form (all *bool, so a missing key is detectable), every
// field here is guaranteed to have been explicitly set by the config
// loader before a Rules value is constructed.
type Rules struct {
	RosterCompleteness bool
	RoleSeparation     bool
	Availability       bool
	NoConsecutiveWeeks bool
	MaxWorkload        bool
	WeekendLimit       bool
}

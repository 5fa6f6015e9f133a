package laads

import (
	"math"
	"time"
)

// observationPeriod is the cadence at which the catalog produces a roughly
// constant number of files per tile: one batch of daytime scenes and one of
// nighttime scenes every 12 hours.
const observationPeriod = 12 * time.Hour

// DefaultGranularity is the boundary alignment for chunk widths. The
// catalog's indexing behaves more predictably on week-aligned windows, so
// chunk widths are rounded up to whole weeks unless configured otherwise.
const DefaultGranularity = 7 * 24 * time.Hour

// Planner splits a requested time range into chunks sized so that a single
// catalog query per chunk stays under the per-query result cap.
type Planner struct {
	granularity time.Duration
}

// PlannerOption configures a Planner during construction.
type PlannerOption func(*Planner)

// WithGranularity overrides the chunk-width alignment unit. Non-positive
// values are ignored.
func WithGranularity(d time.Duration) PlannerOption {
	return func(p *Planner) {
		if d > 0 {
			p.granularity = d
		}
	}
}

// NewPlanner constructs a Planner with the provided options.
func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{granularity: DefaultGranularity}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EstimateFiles approximates how many files the catalog holds for the given
// range and extent: one tile set per 12-hour observation period.
func (p *Planner) EstimateFiles(r TimeRange, extent SpatialExtent) float64 {
	periods := r.Duration().Hours() / observationPeriod.Hours()
	return periods * float64(extent.TileCount())
}

// Plan partitions r into contiguous chunks whose estimated result counts
// stay under capPerQuery. The returned chunks cover r exactly: the first
// starts at r.Start, each subsequent chunk starts where the previous ended,
// and the last is clipped to r.End. Chunk widths are whole multiples of the
// planner's granularity, floored at one unit, so a very short range over a
// very large extent may still exceed the cap; the orchestrator compensates
// at query time by re-splitting chunks that hit it.
func (p *Planner) Plan(r TimeRange, extent SpatialExtent, capPerQuery int) ([]TimeChunk, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Start.Equal(r.End) {
		return []TimeChunk{{Start: r.Start, End: r.End}}, nil
	}

	numChunks := math.Ceil(p.EstimateFiles(r, extent) / float64(capPerQuery))
	if math.IsNaN(numChunks) || math.IsInf(numChunks, 0) || numChunks < 1 {
		numChunks = 1
	}

	hours := r.Duration().Hours()
	chunkHours := hours / numChunks
	units := math.Ceil(chunkHours / p.granularity.Hours())
	if units < 1 {
		units = 1
	}
	width := time.Duration(units) * p.granularity

	var chunks []TimeChunk
	for start := r.Start; start.Before(r.End); start = start.Add(width) {
		end := start.Add(width)
		if end.After(r.End) {
			end = r.End
		}
		chunks = append(chunks, TimeChunk{Start: start, End: end})
	}
	return chunks, nil
}

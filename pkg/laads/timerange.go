package laads

import (
	"fmt"
	"math"
	"time"
)

// TimeRange is an ordered pair of timestamps with Start at or before End.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Validate reports ErrInvalidRange when End lies before Start.
func (r TimeRange) Validate() error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: %s before %s", ErrInvalidRange,
			r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339))
	}
	return nil
}

// Duration returns the width of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// TimeChunk is a sub-interval of a requested TimeRange. Chunks produced by
// the planner partition their parent range contiguously: each chunk starts
// where the previous one ended.
type TimeChunk struct {
	Start time.Time
	End   time.Time
}

// String formats the chunk bounds for logs and error messages.
func (c TimeChunk) String() string {
	return fmt.Sprintf("[%s, %s]", c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339))
}

// split divides the chunk into two halves at a boundary aligned to gran.
// It reports false when the chunk is already at or below one granularity
// unit and cannot be subdivided further.
func (c TimeChunk) split(gran time.Duration) (TimeChunk, TimeChunk, bool) {
	width := c.End.Sub(c.Start)
	if gran <= 0 || width <= gran {
		return TimeChunk{}, TimeChunk{}, false
	}

	units := int64(math.Ceil(width.Hours() / 2 / gran.Hours()))
	mid := c.Start.Add(time.Duration(units) * gran)
	if !mid.Before(c.End) {
		mid = c.Start.Add(gran)
	}
	return TimeChunk{Start: c.Start, End: mid}, TimeChunk{Start: mid, End: c.End}, true
}

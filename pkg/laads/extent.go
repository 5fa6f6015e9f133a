package laads

import "math"

// tileSizeDeg is the approximate size of one catalog tile in degrees, in
// both the latitude and longitude direction.
const tileSizeDeg = 20.0

// SpatialExtent is a geographic bounding box in degrees. The latitude span
// is whatever lies between North and South and the longitude span between
// West and East; either ordering of the bounds is accepted.
type SpatialExtent struct {
	North float64
	South float64
	West  float64
	East  float64
}

// TileCount returns the approximate number of catalog tiles covering the
// extent. The count is taken at half-tile granularity and doubled, so it is
// a deliberate overestimate: the chunk planner must err toward issuing more,
// smaller queries rather than queries that blow past the service cap.
func (e SpatialExtent) TileCount() int {
	latSpan := math.Abs(e.North - e.South)
	lonSpan := math.Abs(e.West - e.East)

	numLat := int(math.Ceil(latSpan/tileSizeDeg)) * 2
	numLon := int(math.Ceil(lonSpan/tileSizeDeg)) * 2
	return numLat * numLon
}

package laads

import (
	"context"
	"time"
)

// TilingMode selects how the catalog interprets the spatial extent.
type TilingMode string

const (
	// TilingCoords filters by geographic coordinates.
	TilingCoords TilingMode = "coords"
	// TilingTiles filters by the catalog's tile grid.
	TilingTiles TilingMode = "tiles"
)

// String returns the underlying string value.
func (m TilingMode) String() string {
	return string(m)
}

// DayNightFlag restricts results to daytime, nighttime, or both
// acquisition passes.
type DayNightFlag string

const (
	DayNightDay   DayNightFlag = "D"
	DayNightNight DayNightFlag = "N"
	DayNightBoth  DayNightFlag = "DNB"
)

// String returns the underlying string value.
func (f DayNightFlag) String() string {
	return string(f)
}

// SearchRequest carries the parameters of one catalog query over a single
// time chunk.
type SearchRequest struct {
	Product    string
	Collection string
	Start      time.Time
	End        time.Time
	Extent     SpatialExtent
	TilingMode TilingMode
	DayNight   DayNightFlag
}

// Catalog is the remote catalog collaborator. Implementations own all
// network and protocol concerns; the orchestrator only sequences calls.
type Catalog interface {
	// SearchFiles returns the identifiers of the files matching the
	// request, possibly none. A well-sized request never yields more
	// identifiers than the service's per-query cap.
	SearchFiles(ctx context.Context, req SearchRequest) ([]string, error)

	// ResolveURLs maps file identifiers to download URLs, one per
	// identifier, in the same order.
	ResolveURLs(ctx context.Context, fileIDs []string) ([]string, error)
}

// Logger is the minimal logging interface used by this package and its
// collaborators.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

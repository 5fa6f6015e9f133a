package laads

// SearchSession holds the parameters of one logical granule search and
// accumulates the resolved download URLs as chunks complete. A session is
// created per request, lives for the duration of one Execute call, and is
// not persisted.
type SearchSession struct {
	Product    string
	Collection string
	Range      TimeRange
	Extent     SpatialExtent
	TilingMode TilingMode
	DayNight   DayNightFlag

	// FileURLs is appended to, in chunk order, as the orchestrator
	// processes the planned chunks.
	FileURLs []string
}

// NewSession constructs a SearchSession for the given product and window.
func NewSession(product, collection string, r TimeRange, extent SpatialExtent, mode TilingMode, dayNight DayNightFlag) *SearchSession {
	return &SearchSession{
		Product:    product,
		Collection: collection,
		Range:      r,
		Extent:     extent,
		TilingMode: mode,
		DayNight:   dayNight,
	}
}

// request builds the catalog query for one chunk of the session's range.
func (s *SearchSession) request(c TimeChunk) SearchRequest {
	return SearchRequest{
		Product:    s.Product,
		Collection: s.Collection,
		Start:      c.Start,
		End:        c.End,
		Extent:     s.Extent,
		TilingMode: s.TilingMode,
		DayNight:   s.DayNight,
	}
}

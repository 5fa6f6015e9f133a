// Package laads plans and executes granule searches against the LAADS
// (MODAPS) catalog.
//
// The catalog caps the number of results a single query may return, so a
// search over a large space/time window has to be issued as several smaller
// queries. This package estimates, ahead of time, how many files a window
// will yield and splits the requested time range into week-aligned chunks
// that each stay under the cap. The chunks are then executed concurrently
// against a Catalog implementation (see the modaps package for the HTTP
// client) and the resolved download URLs are collected in request order.
//
// Example usage:
//
//	catalog, _ := modaps.New()
//	orch, _ := laads.NewOrchestrator(catalog)
//	session := laads.NewSession("MOD35_L2", "61", timeRange, extent,
//		laads.TilingCoords, laads.DayNightBoth)
//	result, err := orch.Execute(ctx, session)
package laads

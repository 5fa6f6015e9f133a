package laads

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog implements Catalog with injectable behavior and records the
// requests it receives.
type fakeCatalog struct {
	mu       sync.Mutex
	searches []SearchRequest

	searchFn  func(req SearchRequest) ([]string, error)
	resolveFn func(fileIDs []string) ([]string, error)
}

func (f *fakeCatalog) SearchFiles(_ context.Context, req SearchRequest) ([]string, error) {
	f.mu.Lock()
	f.searches = append(f.searches, req)
	f.mu.Unlock()
	return f.searchFn(req)
}

func (f *fakeCatalog) ResolveURLs(_ context.Context, fileIDs []string) ([]string, error) {
	if f.resolveFn != nil {
		return f.resolveFn(fileIDs)
	}
	urls := make([]string, len(fileIDs))
	for i, id := range fileIDs {
		urls[i] = "https://example.com/" + id
	}
	return urls, nil
}

func testSession(r TimeRange) *SearchSession {
	return NewSession("MOD35_L2", "61", r,
		SpatialExtent{North: 40, South: 20, West: -100, East: -80},
		TilingCoords, DayNightBoth)
}

func TestOrchestrator_NilCatalog(t *testing.T) {
	_, err := NewOrchestrator(nil)
	assert.ErrorIs(t, err, ErrNilCatalog)
}

func TestOrchestrator_SingleChunk(t *testing.T) {
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) {
			return []string{"101", "102", "103"}, nil
		},
	}
	orch, err := NewOrchestrator(catalog)
	require.NoError(t, err)

	session := testSession(TimeRange{
		Start: date(2020, time.January, 1),
		End:   date(2020, time.March, 1),
	})
	result, err := orch.Execute(context.Background(), session)
	require.NoError(t, err)
	require.NoError(t, result.Err())

	expected := []string{
		"https://example.com/101",
		"https://example.com/102",
		"https://example.com/103",
	}
	assert.Equal(t, expected, result.URLs)
	assert.Equal(t, expected, session.FileURLs)
	require.Len(t, catalog.searches, 1)

	req := catalog.searches[0]
	assert.Equal(t, "MOD35_L2", req.Product)
	assert.Equal(t, "61", req.Collection)
	assert.Equal(t, TilingCoords, req.TilingMode)
	assert.Equal(t, DayNightBoth, req.DayNight)
	assert.True(t, req.Start.Equal(session.Range.Start))
	assert.True(t, req.End.Equal(session.Range.End))
}

func TestOrchestrator_OrderStableAcrossChunks(t *testing.T) {
	// A two-year range plans six chunks; each chunk returns ids derived
	// from its start time so cross-chunk ordering is observable even when
	// the workers complete out of order.
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) {
			return []string{
				req.Start.Format("20060102") + "-a",
				req.Start.Format("20060102") + "-b",
			}, nil
		},
	}
	orch, err := NewOrchestrator(catalog, WithWorkers(4))
	require.NoError(t, err)

	session := testSession(TimeRange{
		Start: date(2020, time.January, 1),
		End:   date(2022, time.January, 1),
	})
	result, err := orch.Execute(context.Background(), session)
	require.NoError(t, err)
	require.NoError(t, result.Err())
	require.Len(t, result.URLs, 12)

	for i := 1; i < len(result.URLs); i += 2 {
		assert.Less(t, result.URLs[i-1], result.URLs[i], "within-chunk order preserved")
		if i+1 < len(result.URLs) {
			assert.Less(t, result.URLs[i-1], result.URLs[i+1], "chunk order preserved")
		}
	}
}

func TestOrchestrator_EmptyChunkSkipsResolve(t *testing.T) {
	resolved := false
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) { return nil, nil },
		resolveFn: func(fileIDs []string) ([]string, error) {
			resolved = true
			return nil, nil
		},
	}
	orch, err := NewOrchestrator(catalog)
	require.NoError(t, err)

	session := testSession(TimeRange{
		Start: date(2020, time.January, 1),
		End:   date(2020, time.March, 1),
	})
	result, err := orch.Execute(context.Background(), session)
	require.NoError(t, err)
	assert.Empty(t, result.URLs)
	assert.Empty(t, result.Failed)
	assert.False(t, resolved, "resolve must not be called for an empty chunk")
}

func TestOrchestrator_PartialFailure(t *testing.T) {
	// Six chunks; the one starting in 2021 fails. The rest must still
	// contribute, and the failed chunk's bounds must be reported.
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) {
			if req.Start.Year() == 2021 {
				return nil, errors.New("boom")
			}
			return []string{req.Start.Format("20060102")}, nil
		},
	}
	orch, err := NewOrchestrator(catalog)
	require.NoError(t, err)

	session := testSession(TimeRange{
		Start: date(2020, time.January, 1),
		End:   date(2022, time.January, 1),
	})
	result, err := orch.Execute(context.Background(), session)
	require.NoError(t, err)

	require.NotEmpty(t, result.Failed)
	require.Error(t, result.Err())
	var chunkErr *ChunkError
	require.ErrorAs(t, result.Err(), &chunkErr)
	assert.Equal(t, 2021, chunkErr.Chunk.Start.Year())
	assert.Contains(t, chunkErr.Error(), "boom")

	assert.Len(t, result.URLs, 6-len(result.Failed))
}

func TestOrchestrator_InvalidRange(t *testing.T) {
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) { return nil, nil },
	}
	orch, err := NewOrchestrator(catalog)
	require.NoError(t, err)

	session := testSession(TimeRange{
		Start: date(2021, time.June, 15),
		End:   date(2021, time.June, 14),
	})
	_, err = orch.Execute(context.Background(), session)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, catalog.searches, "no queries are issued for an invalid range")
}

func TestOrchestrator_ResplitsOnCapOverflow(t *testing.T) {
	// The initial four-week chunk reports exactly the cap, which may mean
	// truncation; the orchestrator splits it until sub-cap windows remain.
	const capPerQuery = 10
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) {
			if req.End.Sub(req.Start) > 14*24*time.Hour {
				ids := make([]string, capPerQuery)
				for i := range ids {
					ids[i] = fmt.Sprintf("overflow-%d", i)
				}
				return ids, nil
			}
			return []string{req.Start.Format("20060102")}, nil
		},
	}
	orch, err := NewOrchestrator(catalog, WithCapPerQuery(capPerQuery))
	require.NoError(t, err)

	// Zero-area extent keeps the up-front plan at a single chunk, so the
	// re-split path is exercised by the live result count alone.
	session := NewSession("MOD35_L2", "61",
		TimeRange{Start: date(2021, time.January, 4), End: date(2021, time.February, 1)},
		SpatialExtent{}, TilingCoords, DayNightBoth)

	result, err := orch.Execute(context.Background(), session)
	require.NoError(t, err)
	require.NoError(t, result.Err())

	assert.Equal(t, []string{
		"https://example.com/20210104",
		"https://example.com/20210118",
	}, result.URLs)
	assert.GreaterOrEqual(t, len(catalog.searches), 3)
}

func TestOrchestrator_CapOverflowAtMinimumWidth(t *testing.T) {
	const capPerQuery = 5
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) {
			ids := make([]string, capPerQuery)
			for i := range ids {
				ids[i] = fmt.Sprintf("id-%d", i)
			}
			return ids, nil
		},
	}
	orch, err := NewOrchestrator(catalog, WithCapPerQuery(capPerQuery))
	require.NoError(t, err)

	session := NewSession("MOD35_L2", "61",
		TimeRange{Start: date(2021, time.January, 4), End: date(2021, time.January, 11)},
		SpatialExtent{}, TilingCoords, DayNightBoth)

	result, err := orch.Execute(context.Background(), session)
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0].Error(), "truncated")
	assert.Empty(t, result.URLs)
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	catalog := &fakeCatalog{
		searchFn: func(req SearchRequest) ([]string, error) { return []string{"1"}, nil },
	}
	orch, err := NewOrchestrator(catalog)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := testSession(TimeRange{
		Start: date(2020, time.January, 1),
		End:   date(2020, time.March, 1),
	})
	result, err := orch.Execute(ctx, session)
	require.NoError(t, err)
	require.NotEmpty(t, result.Failed)
	assert.ErrorIs(t, result.Err(), context.Canceled)
}

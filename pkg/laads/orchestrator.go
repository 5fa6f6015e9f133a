package laads

import (
	"context"
	"fmt"
	"sync"
)

// DefaultCapPerQuery is the result budget per catalog query. The service
// itself caps results at 6000; staying well below that avoids the 502s the
// catalog tends to return on large queries.
const DefaultCapPerQuery = 1000

// DefaultWorkers bounds how many chunks are queried concurrently.
const DefaultWorkers = 3

// Orchestrator executes a SearchSession: it plans the time chunks, issues
// one search plus one resolve call per chunk through the catalog
// collaborator, and collects the resolved URLs in chunk order. It performs
// no I/O of its own and holds no connection state.
type Orchestrator struct {
	catalog     Catalog
	planner     *Planner
	capPerQuery int
	workers     int
	logger      Logger
}

// OrchestratorOption configures an Orchestrator during construction.
type OrchestratorOption func(*Orchestrator)

// WithCapPerQuery overrides the per-query result budget.
func WithCapPerQuery(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.capPerQuery = n
		}
	}
}

// WithWorkers overrides the number of concurrent chunk workers.
func WithWorkers(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithPlanner injects a custom chunk planner.
func WithPlanner(p *Planner) OrchestratorOption {
	return func(o *Orchestrator) {
		if p != nil {
			o.planner = p
		}
	}
}

// WithLogger registers a logger for chunk lifecycle events.
func WithLogger(logger Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator constructs an Orchestrator around a catalog collaborator.
func NewOrchestrator(catalog Catalog, opts ...OrchestratorOption) (*Orchestrator, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	o := &Orchestrator{
		catalog:     catalog,
		planner:     NewPlanner(),
		capPerQuery: DefaultCapPerQuery,
		workers:     DefaultWorkers,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// SearchResult is the outcome of executing a session. URLs holds the
// resolved download URLs of every chunk that succeeded, in chunk order.
// Failed lists the chunks whose catalog calls failed; a non-empty Failed
// with a non-empty URLs is a partial result the caller can complete by
// retrying just those windows.
type SearchResult struct {
	URLs   []string
	Failed []ChunkError
}

// Err returns the first chunk failure, or nil when every chunk succeeded.
func (r *SearchResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return &r.Failed[0]
}

// Execute runs the session's planned chunks on a bounded worker pool. Each
// worker performs the chunk's search and resolve calls sequentially;
// results are written into per-chunk slots so the final concatenation is
// order-stable regardless of completion order. Resolved URLs are appended
// to session.FileURLs. Planning errors abort the whole operation; chunk
// failures are reported in the returned SearchResult.
func (o *Orchestrator) Execute(ctx context.Context, session *SearchSession) (*SearchResult, error) {
	chunks, err := o.planner.Plan(session.Range, session.Extent, o.capPerQuery)
	if err != nil {
		return nil, err
	}
	o.debugf("planned %d chunk(s) for %s to %s", len(chunks),
		session.Range.Start, session.Range.End)

	urlsByChunk := make([][]string, len(chunks))
	errsByChunk := make([]error, len(chunks))

	var wg sync.WaitGroup
	sem := make(chan struct{}, o.workers)
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk TimeChunk) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errsByChunk[i] = err
				return
			}
			urls, err := o.searchChunk(ctx, session, chunk)
			if err != nil {
				o.errorf("chunk %s failed: %v", chunk, err)
				errsByChunk[i] = err
				return
			}
			urlsByChunk[i] = urls
		}(i, chunk)
	}
	wg.Wait()

	result := &SearchResult{}
	for i, chunk := range chunks {
		if errsByChunk[i] != nil {
			result.Failed = append(result.Failed, ChunkError{Chunk: chunk, Err: errsByChunk[i]})
			continue
		}
		result.URLs = append(result.URLs, urlsByChunk[i]...)
	}
	session.FileURLs = append(session.FileURLs, result.URLs...)
	return result, nil
}

// searchChunk performs one chunk's search and resolve calls. A search that
// reports at least capPerQuery identifiers may have been truncated by the
// service, so the chunk is split at a granularity-aligned midpoint and both
// halves are searched instead. A chunk already at minimum width that still
// hits the cap is surfaced as a failure rather than returning a silently
// incomplete window.
func (o *Orchestrator) searchChunk(ctx context.Context, session *SearchSession, chunk TimeChunk) ([]string, error) {
	ids, err := o.catalog.SearchFiles(ctx, session.request(chunk))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	o.debugf("chunk %s: %d file id(s)", chunk, len(ids))

	if len(ids) >= o.capPerQuery {
		left, right, ok := chunk.split(o.planner.granularity)
		if !ok {
			return nil, fmt.Errorf("minimum-width chunk returned %d results (cap %d), result may be truncated",
				len(ids), o.capPerQuery)
		}
		o.debugf("chunk %s hit the cap, re-splitting at %s", chunk, left.End)
		leftURLs, err := o.searchChunk(ctx, session, left)
		if err != nil {
			return nil, err
		}
		rightURLs, err := o.searchChunk(ctx, session, right)
		if err != nil {
			return nil, err
		}
		return append(leftURLs, rightURLs...), nil
	}

	if len(ids) == 0 {
		return nil, nil
	}
	urls, err := o.catalog.ResolveURLs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return urls, nil
}

func (o *Orchestrator) debugf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Debugf(format, args...)
	}
}

func (o *Orchestrator) errorf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Errorf(format, args...)
	}
}

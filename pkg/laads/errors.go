package laads

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange indicates a time range whose end precedes its start.
	ErrInvalidRange = errors.New("laads: time range end before start")
	// ErrNilCatalog indicates a nil catalog collaborator was provided.
	ErrNilCatalog = errors.New("laads: catalog cannot be nil")
	// ErrOutputExists indicates the URL list target file already exists
	// and overwriting was not requested.
	ErrOutputExists = errors.New("laads: output file already exists")
	// ErrNoURLs indicates there were no URLs to write.
	ErrNoURLs = errors.New("laads: no URLs to write")
)

// ChunkError records the failure of one time chunk's catalog calls. The
// chunk bounds are preserved so the caller can retry exactly that window.
type ChunkError struct {
	Chunk TimeChunk
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("laads: chunk %s: %v", e.Chunk, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ChunkError) Unwrap() error {
	return e.Err
}

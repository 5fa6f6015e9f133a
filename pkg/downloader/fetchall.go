package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// FetchAll downloads every URL in urls under baseDir using a bounded worker
// pool, creating year subdirectories as needed. A progress bar tracks file
// completion on stderr. Individual download failures do not stop the rest
// of the pool; they are joined into the returned error along with the URL
// that failed.
func FetchAll(ctx context.Context, urls []string, baseDir string, opts ...Option) error {
	if len(urls) == 0 {
		return nil
	}
	s := newSettings(opts)

	bar := progressbar.Default(int64(len(urls)), "downloading")
	defer bar.Close()

	errsByURL := make([]error, len(urls))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i, granuleURL := range urls {
		wg.Add(1)
		go func(i int, granuleURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			defer bar.Add(1)

			if err := ctx.Err(); err != nil {
				errsByURL[i] = err
				return
			}

			dest := destPath(granuleURL, baseDir)
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				errsByURL[i] = fmt.Errorf("%s: %w", granuleURL, err)
				return
			}
			if err := Download(ctx, granuleURL, dest, opts...); err != nil {
				errsByURL[i] = fmt.Errorf("%s: %w", granuleURL, err)
			}
		}(i, granuleURL)
	}
	wg.Wait()

	return errors.Join(errsByURL...)
}

// Package downloader fetches resolved granule URLs to local storage. Files
// land in per-year subdirectories derived from the granule filename, the
// layout the LAADS archive itself uses.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ProgressFunc reports bytes downloaded against the expected total.
type ProgressFunc func(downloaded, total int64)

// Option configures a download.
type Option func(*settings)

type settings struct {
	httpClient *http.Client
	token      string
	progress   ProgressFunc
	workers    int
}

// WithHTTPClient injects a custom http.Client for http/https downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithToken attaches an Earthdata bearer token to http/https downloads.
// LAADS rejects anonymous granule fetches.
func WithToken(token string) Option {
	return func(s *settings) { s.token = token }
}

// WithProgress registers a per-file progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *settings) { s.progress = fn }
}

// WithWorkers bounds how many files FetchAll downloads concurrently.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

const defaultWorkers = 3

func newSettings(opts []Option) *settings {
	s := &settings{
		httpClient: http.DefaultClient,
		workers:    defaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Download fetches a single granule URL to destPath. The http, https and s3
// schemes are supported; a partially written file is removed on failure.
func Download(ctx context.Context, granuleURL string, destPath string, opts ...Option) error {
	s := newSettings(opts)

	u, err := url.Parse(granuleURL)
	if err != nil {
		return fmt.Errorf("failed to parse granule URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return downloadHTTP(ctx, s, granuleURL, destPath)
	case "s3":
		return downloadS3(ctx, s, u, destPath)
	default:
		return fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
	}
}

func downloadHTTP(ctx context.Context, s *settings, granuleURL string, destPath string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, granuleURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download granule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download granule: unexpected status code %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		out.Close()
		if err != nil {
			_ = os.Remove(destPath)
		}
	}()

	total := resp.ContentLength
	if s.progress != nil {
		s.progress(0, total)
	}

	_, err = copyWithProgress(ctx, out, resp.Body, total, s.progress)
	if err != nil {
		return fmt.Errorf("failed to write granule to file: %w", err)
	}

	return nil
}

func downloadS3(ctx context.Context, s *settings, u *url.URL, destPath string) (err error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg)

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	result, err := s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to download from S3: %w", err)
	}
	defer result.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		out.Close()
		if err != nil {
			_ = os.Remove(destPath)
		}
	}()

	if s.progress != nil {
		s.progress(0, *result.ContentLength)
	}

	_, err = copyWithProgress(ctx, out, result.Body, *result.ContentLength, s.progress)
	if err != nil {
		return fmt.Errorf("failed to write granule to file: %w", err)
	}

	return nil
}

func copyWithProgress(ctx context.Context, dst io.Writer, src io.Reader, total int64, progress ProgressFunc) (int64, error) {
	const defaultBufferSize = 32 * 1024
	buf := make([]byte, defaultBufferSize)
	var written int64

	for {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return written, err
			}
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			w, writeErr := dst.Write(buf[:n])
			if writeErr != nil {
				return written, writeErr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
			written += int64(w)
			if progress != nil {
				progress(written, total)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}
			return written, readErr
		}
	}
}

// destPath derives the local path for a granule URL. LAADS filenames carry
// the acquisition date in their second dot-field ("MOD35_L2.A2020152...."),
// so granules are grouped into a subdirectory per year. Filenames that do
// not follow the convention land in baseDir directly.
func destPath(granuleURL, baseDir string) string {
	name := filepath.Base(granuleURL)
	if u, err := url.Parse(granuleURL); err == nil && u.Path != "" {
		name = filepath.Base(u.Path)
	}

	fields := strings.Split(name, ".")
	if len(fields) >= 2 && len(fields[1]) >= 5 {
		year := fields[1][1:5]
		if isDigits(year) {
			return filepath.Join(baseDir, year, name)
		}
	}
	return filepath.Join(baseDir, name)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

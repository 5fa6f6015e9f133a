// Package modaps implements the laads.Catalog collaborator against the
// MODAPS web services API. The API is a flat request/response service:
// every operation is a GET on an endpoint under the service base URL with
// key/value query parameters, returning a small XML document.
package modaps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/robert-malhotra/go-laads/pkg/laads"
)

// DefaultBaseURL is the production MODAPS web services endpoint.
const DefaultBaseURL = "https://modwebsrv.modaps.eosdis.nasa.gov/axis2/services/MODAPSservices"

var _ laads.Catalog = (*Client)(nil)

// Client is a reusable MODAPS web services client. It satisfies
// laads.Catalog.
type Client struct {
	httpClient     *http.Client
	baseURL        *url.URL
	defaultHeaders http.Header
	retryPolicy    RetryPolicy
	logger         laads.Logger
}

// New constructs a Client with provided options. Without options the client
// talks to the production service with the default retry policy.
func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient:     &http.Client{},
		defaultHeaders: make(http.Header),
		retryPolicy:    DefaultRetryPolicy,
	}
	c.defaultHeaders.Set("Accept", "application/xml")
	c.defaultHeaders.Set("User-Agent", "go-laads/0.1")

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.baseURL == nil {
		u, err := url.Parse(DefaultBaseURL)
		if err != nil {
			return nil, err
		}
		c.baseURL = u
	}
	if c.httpClient == nil {
		return nil, ErrNilHTTPClient
	}
	return c, nil
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, endpoint)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// get performs one GET round-trip through the retry policy and returns the
// response body. Non-200 statuses are turned into an *APIError carrying the
// endpoint and a body excerpt.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	urlStr := c.buildURL(endpoint, query)
	c.debugf("GET %s", urlStr)

	resp, err := c.retry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
		if err != nil {
			return nil, err
		}
		for key, values := range c.defaultHeaders {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("modaps: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("modaps: %s: reading response: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Endpoint: endpoint, Raw: body}
		apiErr.Detail = strings.TrimSpace(firstLine(string(body)))
		c.errorf("%s returned %d", endpoint, resp.StatusCode)
		return nil, apiErr
	}
	return body, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (c *Client) debugf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

func (c *Client) errorf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Errorf(format, args...)
	}
}

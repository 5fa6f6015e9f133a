package modaps

import (
	"net/http"
	"net/url"
	"time"

	"github.com/robert-malhotra/go-laads/pkg/laads"
)

// ClientOption configures a Client during construction.
type ClientOption func(*Client) error

// WithBaseURL sets the MODAPS service base URL.
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) error {
		if raw == "" {
			return ErrInvalidBaseURL
		}
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		if !u.IsAbs() {
			return ErrInvalidBaseURL
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient == nil {
			return ErrNilHTTPClient
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithTimeout sets a per-request timeout on the underlying http.Client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout <= 0 {
			return nil
		}
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
		return nil
	}
}

// WithDefaultHeader registers a header applied to every request.
func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) error {
		if key == "" {
			return nil
		}
		if c.defaultHeaders == nil {
			c.defaultHeaders = make(http.Header)
		}
		c.defaultHeaders.Add(key, value)
		return nil
	}
}

// WithToken attaches an Earthdata bearer token to every request.
func WithToken(token string) ClientOption {
	return func(c *Client) error {
		if token == "" {
			return nil
		}
		if c.defaultHeaders == nil {
			c.defaultHeaders = make(http.Header)
		}
		c.defaultHeaders.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// WithRetryPolicy configures the retry behavior for retriable requests.
func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) error {
		c.retryPolicy = policy
		return nil
	}
}

// WithLogger registers a logger used for request lifecycle events.
func WithLogger(logger laads.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// AuthHeader is the header the storage service reads the token from.
const AuthHeader = "x-auth-token"

// uploadTimeout bounds a single PUT including the response body read.
// Generous because whole files go up in one request.
const uploadTimeout = 5 * time.Minute

// Client is the storage endpoint client. One instance is shared by all
// concurrent uploads in a batch; it is safe for concurrent use.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose every request carries token as the
// x-auth-token header.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: uploadTimeout,
			Transport: &authTransport{
				token: token,
				base:  http.DefaultTransport,
			},
		},
	}
}

// authTransport injects the auth token as a default header on every request.
type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	clone := req.Clone(req.Context())
	clone.Header.Set(AuthHeader, t.token)
	return t.base.RoundTrip(clone)
}

// PutResult is the wire-level result of one PUT: the status code plus the
// response body, which the service uses for error text.
type PutResult struct {
	StatusCode int
	Body       string
}

// Put issues a single PUT of body to url. Transport failures come back as an
// error; any HTTP response, success or not, comes back as a PutResult for the
// caller to classify. No retries happen at this layer.
//
// The caller keeps ownership of body: it is never closed here, so a seekable
// handle can be rewound and resent on a later attempt.
func (c *Client) Put(ctx context.Context, url string, body io.Reader, size int64) (*PutResult, error) {
	// NewRequest would treat an *os.File as a ReadCloser and the transport
	// would close it after this attempt; NopCloser keeps the handle alive.
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, io.NopCloser(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = size

	slog.Debug("Upload request", "url", url, "size", size)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		slog.Warn("Upload request failed", "error", err, "url", url, "duration", duration)
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Deferred close, error not actionable

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("Failed to read upload response", "error", err, "statusCode", resp.StatusCode)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("Upload response",
		"statusCode", resp.StatusCode,
		"url", url,
		"duration", duration,
	)

	return &PutResult{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}, nil
}

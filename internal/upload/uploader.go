package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/stashdata/stash/internal/api"
	"github.com/stashdata/stash/pkg/config"
)

// existsMarker is the substring the service puts in a 500 body when the
// remote object already exists and quiet rejection was requested.
const existsMarker = "File already exists"

// putter is the slice of the api client the uploader needs.
type putter interface {
	Put(ctx context.Context, url string, body io.Reader, size int64) (*api.PutResult, error)
}

// Uploader runs the per-file state machine: probe, then PUT with rewind
// and retry until a terminal outcome. Each concurrent worker slot executes
// exactly one Upload call at a time; the only shared state is the read-only
// config and the client.
type Uploader struct {
	client putter
	cfg    *config.Config
}

// NewUploader binds a shared storage client and batch configuration.
func NewUploader(client *api.Client, cfg *config.Config) *Uploader {
	return &Uploader{client: client, cfg: cfg}
}

// Upload runs one file to a finalized outcome. It never returns an error:
// every failure mode is a classification on the outcome record.
func (u *Uploader) Upload(ctx context.Context, path string) Outcome {
	out := newOutcome(path)

	f, name, size, err := probe(path)
	if err != nil {
		slog.Debug("Probe failed", "path", path, "error", err)
		return out.withFailure(KindReadError)
	}
	defer f.Close() //nolint:errcheck // Deferred close, error not actionable
	out.Bytes = size

	dst := u.cfg.Endpoint + "/" + name
	if !u.cfg.Overwrite {
		// Ask the server to reject duplicates quietly instead of erroring.
		dst += "?quiet=true"
	}

	for {
		status, kind := u.attempt(ctx, dst, f, size)
		switch status {
		case attemptSuccess:
			slog.Debug("Upload succeeded", "path", path, "bytes", size, "retries", out.Retries)
			return out.withSuccess()
		case attemptFail:
			slog.Debug("Upload failed", "path", path, "kind", kind)
			return out.withFailure(kind)
		}

		out.Retries++
		if out.Retries >= u.cfg.Retries {
			slog.Debug("Retry budget exhausted", "path", path, "retries", out.Retries)
			return out.withFailure(KindOther)
		}
	}
}

type attemptStatus int

const (
	attemptSuccess attemptStatus = iota
	attemptRetry
	attemptFail
)

// attempt rewinds the handle and issues one PUT, classifying the result.
// A failed rewind is just another retryable condition: the attempt is
// abandoned and the budget keeps it bounded.
func (u *Uploader) attempt(ctx context.Context, url string, f *os.File, size int64) (attemptStatus, ErrorKind) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		slog.Debug("Rewind failed", "path", f.Name(), "error", err)
		return attemptRetry, KindNone
	}

	res, err := u.client.Put(ctx, url, f, size)
	if err != nil {
		// transport failure: connection error, timeout
		return attemptRetry, KindNone
	}

	switch res.StatusCode {
	case http.StatusOK:
		return attemptSuccess, KindNone
	case http.StatusUnauthorized:
		return attemptFail, KindUnauthorized
	case http.StatusInternalServerError:
		if strings.Contains(res.Body, existsMarker) {
			return attemptFail, KindFileExists
		}
		return attemptRetry, KindNone
	default:
		return attemptRetry, KindNone
	}
}

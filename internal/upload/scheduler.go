package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/stashdata/stash/internal/api"
	"github.com/stashdata/stash/internal/ui"
	"github.com/stashdata/stash/pkg/config"
)

// ErrUnauthorized halts the batch: the same token is expected to fail every
// remaining upload, so continuing would only burn requests.
var ErrUnauthorized = errors.New("unauthorized: check your token")

// Run uploads paths against cfg and returns the final totals along with
// ErrUnauthorized if the batch was cut short. It blocks until every counted
// outcome is folded in; on the unauthorized fast-exit, in-flight uploads are
// abandoned rather than drained.
func Run(ctx context.Context, paths []string, cfg *config.Config, display ui.DisplayConfig) (*Progress, error) {
	client := api.NewClient(cfg.Token)
	uploader := NewUploader(client, cfg)

	b := &batch{
		worker:      uploader.Upload,
		concurrency: cfg.Concurrency,
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: !display.SimpleOutput(),
	}
	return b.run(ctx, paths)
}

// batch drives the bounded sliding-window pool: up to concurrency workers in
// flight, one replacement launched per completion, completions drained in
// whatever order the network produces.
type batch struct {
	worker      func(ctx context.Context, path string) Outcome
	concurrency int
	out         io.Writer // status line
	errOut      io.Writer // diagnostics
	interactive bool
}

// result is one completion: either a finalized outcome or a worker that died
// without producing one.
type result struct {
	outcome Outcome
	joinErr error
}

func (b *batch) run(ctx context.Context, paths []string) (*Progress, error) {
	progress := NewProgress(len(paths))
	b.render(progress)

	// Buffered to the window size so workers abandoned by the unauthorized
	// fast-exit can still complete their send and exit.
	results := make(chan result, b.concurrency)

	next := 0
	inFlight := 0
	launch := func(path string) {
		inFlight++
		go func() {
			defer func() {
				if r := recover(); r != nil {
					results <- result{joinErr: fmt.Errorf("worker panicked uploading %s: %v", path, r)}
				}
			}()
			results <- result{outcome: b.worker(ctx, path)}
		}()
	}

	for next < len(paths) && inFlight < b.concurrency {
		launch(paths[next])
		next++
	}

	for inFlight > 0 {
		res := <-results
		inFlight--

		if res.joinErr != nil {
			// Infrastructure failure, not a file outcome: report it and
			// let the refill below restore the window.
			fmt.Fprintf(b.errOut, "Worker error: %v\n", res.joinErr)
			slog.Error("Upload worker died", "error", res.joinErr)
		} else {
			if res.outcome.Kind == KindUnauthorized {
				fmt.Fprintf(b.errOut, "Unauthorized: check your token (abandoning %d in-flight uploads).\n", inFlight)
				return progress, ErrUnauthorized
			}
			progress.Update(res.outcome)
			b.render(progress)
		}

		if next < len(paths) {
			launch(paths[next])
			next++
		}
	}

	b.finish(progress)
	return progress, nil
}

// render rewrites the live status line in place. Suppressed for plain
// output, where intermediate rewrites would be garbage in a pipe.
func (b *batch) render(p *Progress) {
	if !b.interactive {
		return
	}
	fmt.Fprintf(b.out, "\r%s", p.StatusLine())
}

// finish leaves the final status on its own completed line.
func (b *batch) finish(p *Progress) {
	if b.interactive {
		fmt.Fprintf(b.out, "\r%s\n", p.StatusLine())
		return
	}
	fmt.Fprintln(b.out, p.StatusLine())
}

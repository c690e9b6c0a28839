package upload

import "time"

// ErrorKind classifies a terminal upload failure.
type ErrorKind int

const (
	// KindNone marks a successful outcome.
	KindNone ErrorKind = iota
	// KindReadError covers local failures: missing path, not a regular
	// file, unreadable. Permanent for that file.
	KindReadError
	// KindFileExists means the server rejected the upload because the
	// remote object already exists and overwrite was not requested.
	KindFileExists
	// KindUnauthorized means the server rejected the token. Batch-fatal.
	KindUnauthorized
	// KindOther covers retry exhaustion and unclassified failures.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindReadError:
		return "read error"
	case KindFileExists:
		return "file exists"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "other"
	}
}

// Outcome is the per-file result record. It is built up inside a single
// worker, finalized exactly once via withSuccess or withFailure, and then
// handed immutably to the progress aggregator.
type Outcome struct {
	Path    string
	Seconds float64 // elapsed upload time, meaningful only on success
	Bytes   int64   // file size, meaningful once the file has been probed
	Retries int
	Kind    ErrorKind

	started time.Time
}

// newOutcome starts the record for one file. Until finalized it reads as an
// unclassified failure, so a worker dying mid-flight can never be mistaken
// for a success.
func newOutcome(path string) Outcome {
	return Outcome{Path: path, Kind: KindOther, started: time.Now()}
}

// withSuccess finalizes the record, stamping elapsed time from probe start.
func (o Outcome) withSuccess() Outcome {
	o.Kind = KindNone
	o.Seconds = time.Since(o.started).Seconds()
	return o
}

// withFailure finalizes the record with a terminal classification. A failed
// outcome never carries an elapsed-time claim.
func (o Outcome) withFailure(kind ErrorKind) Outcome {
	o.Kind = kind
	o.Seconds = 0
	return o
}

// Failed reports whether the outcome is a terminal failure.
func (o Outcome) Failed() bool {
	return o.Kind != KindNone
}

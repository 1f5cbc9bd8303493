package async

import (
	"context"
	"time"

	"github.com/lgarreta/ecuapassdocs/internal/core"
)

// Job is one cached analysis result to process.
type Job struct {
	Path        string
	BatchID     string
	SubmittedAt time.Time
	// Done, when set, receives the outcome on the worker goroutine.
	Done func(Outcome)
}

type Outcome struct {
	Path   string
	Result *core.Result
	Err    error
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// FileProcessor is implemented by *core.Processor.
type FileProcessor interface {
	ProcessFile(ctx context.Context, path string) (*core.Result, error)
}

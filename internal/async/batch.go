package async

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// RunBatch processes paths concurrently and waits for all of them. Outcomes
// are returned in the order of paths; one document failing does not stop the
// others. A document that could not be enqueued before ctx ended carries
// ctx's error.
func RunBatch(ctx context.Context, proc FileProcessor, paths []string, logger *slog.Logger, opts ...Option) []Outcome {
	if logger == nil {
		logger = slog.Default()
	}
	batchID := uuid.NewString()
	logger = logger.With("batch_id", batchID)

	out := make([]Outcome, len(paths))
	q := NewProcessorQueue(proc, logger, append([]Option{WithQueueSize(len(paths))}, opts...)...)
	for i, p := range paths {
		i := i
		out[i] = Outcome{Path: p}
		err := q.Enqueue(ctx, Job{
			Path:    p,
			BatchID: batchID,
			Done:    func(o Outcome) { out[i] = o },
		})
		if err != nil {
			out[i].Err = err
		}
	}
	q.Shutdown(context.Background())

	failed := 0
	for _, o := range out {
		if o.Err != nil {
			failed++
		}
	}
	logger.Info("batch.done", "documents", len(paths), "failed", failed)
	return out
}

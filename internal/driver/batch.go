package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"ezlatexdoc/internal/trace"
)

// StripAll processes independent documents in parallel. Each document gets
// its own FileSet, Bag and Processor; a failing document never stops the
// others. Results keep the order of paths. The returned error is only set
// when ctx is cancelled.
func StripAll(ctx context.Context, paths []string, jobs int, opts StripOptions) ([]*StripResult, error) {
	results := make([]*StripResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "strip", trace.ParentID(ctx))
	ctx = trace.WithParent(ctx, span)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = Strip(gctx, path, opts)
			return nil
		})
	}

	err := g.Wait()
	failed := 0
	for _, r := range results {
		if r == nil || r.Failed() {
			failed++
		}
	}
	span.WithExtra("documents", strconv.Itoa(len(paths))).WithExtra("failed", strconv.Itoa(failed)).End("")
	return results, err
}

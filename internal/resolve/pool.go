package resolve

import (
	"context"
	"runtime"
	"sync"

	"github.com/clingen-dx/vartitle/internal/variant"
)

// WorkItem is one id queued for batch resolution.
type WorkItem struct {
	Seq int
	ID  string
}

// WorkResult is the resolution outcome for a single id. Variant is nil
// when the source has no such record.
type WorkResult struct {
	Seq     int
	ID      string
	Variant *variant.Variant
	Err     error
}

// ResolveAll resolves work items using a pool of workers. Results are
// sent to the returned channel in arrival order (not sequence order);
// use OrderedCollect to consume them in input order. If workers is 0,
// runtime.NumCPU() is used.
func (r *Resolver) ResolveAll(ctx context.Context, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				v, err := r.Resolve(ctx, item.ID)
				results <- WorkResult{
					Seq:     item.Seq,
					ID:      item.ID,
					Variant: v,
					Err:     err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order. It
// buffers out-of-order results in a pending map and emits them as soon
// as the next expected sequence number is available. Blocks until the
// results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

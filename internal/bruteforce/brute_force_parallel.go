package bruteforce

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// SearchExponentParallel searches dRange with parallel workers, one
// candidate exponent per work item. The smallest matching d is not
// guaranteed; any match decrypts every code.
//
// Args:
//   - ctx: Cancels the search; nil is returned on cancellation
//   - problem: Public exponent, modulus and observed codes
//   - dRange: Range of d values to try (min, max), inclusive
//   - numWorkers: Number of parallel workers (0 = auto-detect based on CPU cores)
//   - log: Progress logger
//
// Returns:
//   - Result if found, nil otherwise
func SearchExponentParallel(ctx context.Context, problem *Problem, dRange [2]int64, numWorkers int, log zerolog.Logger) *Result {
	return SearchExponentBatch(ctx, problem, dRange, 1, numWorkers, log)
}

type batch struct {
	start, end int64
}

// SearchExponentBatch processes the range in batches of batchSize
// consecutive exponents to keep channel traffic low.
func SearchExponentBatch(ctx context.Context, problem *Problem, dRange [2]int64, batchSize int64, numWorkers int, log zerolog.Logger) *Result {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if batchSize <= 0 {
		batchSize = 1024
	}
	reduced := problem.Informative()

	log.Debug().
		Int("workers", numWorkers).
		Int64("batch", batchSize).
		Int64("from", dRange[0]).
		Int64("to", dRange[1]).
		Int("informative", len(reduced.Codes)).
		Msg("parallel exponent search")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batchChan := make(chan batch, numWorkers*2)
	resultChan := make(chan *Result, 1)
	var tested int64

	go func() {
		defer close(batchChan)
		for start := dRange[0]; start <= dRange[1]; start += batchSize {
			end := start + batchSize - 1
			if end > dRange[1] || end < start {
				end = dRange[1]
			}
			select {
			case <-ctx.Done():
				return
			case batchChan <- batch{start: start, end: end}:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, reduced, batchChan, resultChan, &tested, log)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case result := <-resultChan:
		cancel()
		<-done
		result.Tested = atomic.LoadInt64(&tested)
		log.Debug().Int64("tested", result.Tested).Str("d", result.PrivateExponent.String()).Msg("exponent found")
		return result
	case <-done:
		// a worker may have delivered just before the pool drained
		select {
		case result := <-resultChan:
			result.Tested = atomic.LoadInt64(&tested)
			return result
		default:
		}
		log.Debug().Int64("tested", atomic.LoadInt64(&tested)).Msg("no exponent found")
		return nil
	}
}

// worker processes batches from the batch channel
func worker(
	ctx context.Context,
	problem *Problem,
	batchChan <-chan batch,
	resultChan chan<- *Result,
	tested *int64,
	log zerolog.Logger,
) {
	d := new(big.Int)
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-batchChan:
			if !ok {
				return
			}
			for v := b.start; v <= b.end; v++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				count := atomic.AddInt64(tested, 1)
				if count%50000 == 0 {
					log.Debug().Int64("tested", count).Msg("search progress")
				}

				d.SetInt64(v)
				if !problem.Matches(d) {
					continue
				}
				select {
				case resultChan <- &Result{PrivateExponent: big.NewInt(v)}:
				default:
				}
				return
			}
		}
	}
}

package cripta

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

var ErrInvalidWorkers = errors.New("worker count must be at least 1")

// BlockRange is the half-open index range [Start, End) owned by one worker.
type BlockRange struct {
	Start int
	End   int
}

func (r BlockRange) Len() int {
	return r.End - r.Start
}

// DefaultWorkers returns the number of hardware execution units.
func DefaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 4
}

// Partition splits [0, numBlocks) into at most workers contiguous, disjoint
// ranges. Every range but the last holds numBlocks/workers blocks; the last
// one also takes the remainder. Fewer ranges are returned when there are
// fewer blocks than workers.
func Partition(numBlocks, workers int) ([]BlockRange, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	if numBlocks <= 0 {
		return nil, nil
	}
	if workers > numBlocks {
		workers = numBlocks
	}

	perWorker := numBlocks / workers
	ranges := make([]BlockRange, workers)
	for t := range ranges {
		ranges[t] = BlockRange{Start: t * perWorker, End: (t + 1) * perWorker}
	}
	ranges[workers-1].End = numBlocks

	return ranges, nil
}

// Process applies cipher to every block in the given direction. Each worker
// writes only the output indices of its own range, so the result order always
// matches the input order. Workers stop between blocks once ctx is done.
func Process(ctx context.Context, cipher ISymmetricCipher, blocks []Block, dir Direction, workers int) ([]Block, error) {
	if cipher == nil {
		return nil, fmt.Errorf("cipher implementation cannot be nil")
	}

	var transform func(Block) Block
	switch dir {
	case Encrypt:
		transform = cipher.EncryptBlock
	case Decrypt:
		transform = cipher.DecryptBlock
	default:
		return nil, fmt.Errorf("unsupported direction: %v", dir)
	}

	ranges, err := Partition(len(blocks), workers)
	if err != nil {
		return nil, err
	}

	output := make([]Block, len(blocks))

	var (
		wg          sync.WaitGroup
		interrupted atomic.Bool
	)
	for _, r := range ranges {
		wg.Add(1)
		go func(r BlockRange) {
			defer wg.Done()

			dst := output[r.Start:r.End]
			for i, b := range blocks[r.Start:r.End] {
				if ctx.Err() != nil {
					interrupted.Store(true)
					return
				}
				dst[i] = transform(b)
			}
		}(r)
	}
	wg.Wait()

	if interrupted.Load() {
		return nil, fmt.Errorf("%s of %d blocks interrupted: %w", dir, len(blocks), ctx.Err())
	}

	return output, nil
}

package renderer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// WorkerPool renders a frame with a fixed set of goroutines. Rows are
// assigned row-interleaved: worker i renders rows i, i+n, i+2n, ...
type WorkerPool struct {
	renderer   *Renderer
	framebuf   *Framebuffer
	workers    []*Worker
	numWorkers int
	rowsDone   atomic.Int64
	wg         sync.WaitGroup
}

// Worker owns one interleaved slice of the image rows
type Worker struct {
	ID    int
	pool  *WorkerPool
	stats WorkerStats
}

// NewWorkerPool creates a pool of numWorkers workers writing into framebuf
func NewWorkerPool(r *Renderer, framebuf *Framebuffer, numWorkers int) *WorkerPool {
	// More workers than rows would leave goroutines idle
	numWorkers = max(1, min(numWorkers, framebuf.Height))

	wp := &WorkerPool{
		renderer:   r,
		framebuf:   framebuf,
		numWorkers: numWorkers,
	}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{ID: i, pool: wp, stats: WorkerStats{ID: i}})
	}
	return wp
}

// Run starts all workers and blocks until every row is rendered or ctx is
// cancelled. Cancellation is observed between rows.
func (wp *WorkerPool) Run(ctx context.Context) error {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
	wp.wg.Wait()
	return ctx.Err()
}

// Stats returns a snapshot of the per-worker statistics. Only valid after Run returns.
func (wp *WorkerPool) Stats() []WorkerStats {
	stats := make([]WorkerStats, len(wp.workers))
	for i, w := range wp.workers {
		stats[i] = w.stats
	}
	return stats
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	height := w.pool.framebuf.Height
	for y := w.ID; y < height; y += w.pool.numWorkers {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		// Each row has its own stream so the result does not depend on which worker rendered it
		sampler := core.NewSeededSampler(w.pool.renderer.config.Seed, y)
		samples, dropped := w.pool.renderer.renderRow(y, w.pool.framebuf, sampler)

		w.stats.Rows++
		w.stats.Samples += samples
		w.stats.DroppedSamples += dropped
		w.stats.BusyTime += time.Since(start)

		w.pool.reportProgress(w.pool.rowsDone.Add(1))
	}
}

// reportProgress logs every time another tenth of the frame is complete
func (wp *WorkerPool) reportProgress(done int64) {
	height := int64(wp.framebuf.Height)
	if done*10/height != (done-1)*10/height {
		wp.renderer.logger.Printf("progress: %d%% (%d/%d rows)", done*100/height, done, height)
	}
}

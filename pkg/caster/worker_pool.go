package caster

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/raycore/pkg/core"
)

// RayTask is a single ray to cast
type RayTask struct {
	Index int // Position of the ray in the batch; results are written here
	Ray   core.Ray
}

// WorkerPool casts rays in parallel against a read-only target
type WorkerPool struct {
	taskQueue  chan RayTask
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
}

// Worker handles individual ray tasks
type Worker struct {
	ID        int
	target    Target
	options   Options
	taskQueue chan RayTask
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(target Target, options Options, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:  make(chan RayTask, numWorkers*4),
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			target:    target,
			options:   options,
			taskQueue: wp.taskQueue,
		})
	}
	return wp
}

// Start begins all workers. Each worker writes the result of task i into
// results[i]; indices are distinct so no locking is needed.
func (wp *WorkerPool) Start(ctx context.Context, results []Result) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, results, &wp.wg)
	}
}

// Stop closes the queue and waits for workers to drain it
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
}

// SubmitTask queues a task, giving up when ctx is done
func (wp *WorkerPool) SubmitTask(ctx context.Context, task RayTask) bool {
	select {
	case wp.taskQueue <- task:
		return true
	case <-ctx.Done():
		return false
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, results []Result, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Keep draining after cancellation so Stop never blocks
		if ctx.Err() != nil {
			continue
		}
		results[task.Index] = w.cast(task)
	}
}

func (w *Worker) cast(task RayTask) Result {
	result := Result{Index: task.Index, Ray: task.Ray}
	if w.options.NearestOnly {
		if hit, ok := w.target.Nearest(task.Ray, w.options.MaxDistance); ok {
			result.Hits = []core.Intersection{hit}
		}
		return result
	}
	result.Hits = w.target.Intersect(task.Ray, w.options.MaxDistance)
	return result
}

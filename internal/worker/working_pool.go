package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrQueueFull  = errors.New("job queue is full")
	ErrPoolClosed = errors.New("working pool is shut down")
)

type Job func(ctx context.Context) error

// WorkingPool runs submitted jobs on a fixed number of goroutines.
type WorkingPool struct {
	NumWorkers int
	jobChan    chan Job

	mu     sync.RWMutex
	closed bool
}

func NewWorkingPool(numWorkers int, queueSize int) *WorkingPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &WorkingPool{
		NumWorkers: numWorkers,
		jobChan:    make(chan Job, queueSize),
	}
}

// SubmitJob queues job without blocking.
func (p *WorkingPool) SubmitJob(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.jobChan <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start runs the workers until ctx is cancelled, then waits for them to exit.
func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(ctx, &workerWg, i+1)
	}

	<-ctx.Done()

	slog.Info("[WorkingPool] Shutdown signaled. Closing job channel.")
	p.mu.Lock()
	p.closed = true
	close(p.jobChan)
	p.mu.Unlock()

	workerWg.Wait()
	slog.Info("[WorkingPool] All workers stopped.")
}

func (p *WorkingPool) worker(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-p.jobChan:
			if !ok {
				return
			}
			p.safeExecution(ctx, job, id)

		case <-ctx.Done():
			return
		}
	}
}

func (p *WorkingPool) safeExecution(ctx context.Context, job Job, workerID int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[WorkingPool] Panic recovered in job", "worker_id", workerID, "panic", r)
		}
	}()

	err = job(ctx)
	if err != nil {
		slog.Error("[WorkingPool] Error executing job", "worker_id", workerID, "error", err)
	}
	return err
}

package concurrent

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrScheduleTimeout = errors.New("schedule error: timed out")
	ErrPoolClosed      = errors.New("schedule error: pool closed")
)

/*
WorkerPool goroutine pool. at most maxWorkers goroutines run tasks, idle workers wait on the task queue.
a task is handed to an idle worker if there is one, otherwise a new worker is spawned if the pool is
not full, otherwise the caller blocks until a worker frees up (Schedule) or the timeout expires (ScheduleTimeout).
*/
type WorkerPool struct {
	sem      chan struct{}
	jobQueue chan func()

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

func NewWorkerPool(maxWorkers, jobQueueSize int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &WorkerPool{
		sem:      make(chan struct{}, maxWorkers),
		jobQueue: make(chan func(), jobQueueSize),
		done:     make(chan struct{}),
	}
}

// Spawn start n idle workers up front.
func (wp *WorkerPool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case wp.sem <- struct{}{}:
			wp.wg.Add(1)
			go wp.worker(nil)
		default:
			return
		}
	}
}

func (wp *WorkerPool) Schedule(task func()) error {
	return wp.schedule(task, nil)
}

func (wp *WorkerPool) ScheduleTimeout(timeout time.Duration, task func()) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return wp.schedule(task, timer.C)
}

func (wp *WorkerPool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-wp.done:
		return ErrPoolClosed
	default:
	}

	select {
	case <-wp.done:
		return ErrPoolClosed
	case <-timeout:
		return ErrScheduleTimeout
	case wp.jobQueue <- task:
		return nil
	case wp.sem <- struct{}{}:
		wp.wg.Add(1)
		go wp.worker(task)
		return nil
	}
}

func (wp *WorkerPool) worker(task func()) {
	defer func() {
		<-wp.sem
		wp.wg.Done()
	}()

	if task != nil {
		task()
	}
	for {
		select {
		case <-wp.done:
			return
		case task := <-wp.jobQueue:
			task()
		}
	}
}

// Close stop accepting tasks and wait for running tasks. queued tasks that no worker picked up are dropped.
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.done)
	})
	wp.wg.Wait()
}

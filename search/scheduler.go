package search

import (
	"container/heap"
	"context"
	"sync"
)

// job is one (priority, expansion-closure) item on the scheduler's queue.
type job struct {
	priority int64
	seq      int64 // tie-break, preserves enqueue order for equal priority
	run      func()
}

type jobHeap []*job

func (h jobHeap) Len() int { return len(h) }
func (h jobHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h jobHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *jobHeap) Push(x any)        { *h = append(*h, x.(*job)) }
func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler is the generic priority-queue-with-workers the expansion
// driver treats as an injected dependency: AddJob enqueues a
// closure at a priority, Start launches worker goroutines (or, with
// Workers<=1, steps synchronously for determinism), and every in-flight
// job is tracked so workers can tell when the queue has truly drained.
type Scheduler struct {
	mu       sync.Mutex
	cond     *sync.Cond
	q        jobHeap
	nextSeq  int64
	inFlight int
	closed   bool
	workers  int
}

// NewScheduler builds a scheduler with the given worker count. workers<=1
// runs single-threaded: Start steps the queue synchronously in the calling
// goroutine, giving deterministic expansion order for testing.
func NewScheduler(workers int) *Scheduler {
	s := &Scheduler{workers: workers}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// AddJob enqueues run at the given priority (lower runs sooner).
func (s *Scheduler) AddJob(priority int64, run func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.nextSeq++
	heap.Push(&s.q, &job{priority: priority, seq: s.nextSeq, run: run})
	s.inFlight++
	s.mu.Unlock()
	s.cond.Signal()
}

func (s *Scheduler) pop() (*job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.q) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.q) == 0 {
		return nil, false
	}
	return heap.Pop(&s.q).(*job), true
}

func (s *Scheduler) done() {
	s.mu.Lock()
	s.inFlight--
	empty := s.inFlight == 0
	s.mu.Unlock()
	if empty {
		s.cond.Broadcast()
	}
}

// Start launches the worker pool (or, single-threaded, runs until the
// queue is empty) and returns once the queue is empty and no job is in
// flight (after Close, once the queue is empty). A job's run closure may
// itself call AddJob, so a worker keeps pulling until both the queue is
// empty and no job is in flight.
func (s *Scheduler) Start(ctx context.Context) {
	n := s.workers
	if n <= 1 {
		s.runWorker(ctx)
		return
	}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runWorker(ctx)
		}()
	}
	wg.Wait()
}

func (s *Scheduler) runWorker(ctx context.Context) {
	for {
		s.mu.Lock()
		for len(s.q) == 0 && s.inFlight > 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.q) == 0 {
			s.mu.Unlock()
			return
		}
		j := heap.Pop(&s.q).(*job)
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			s.done()
			continue
		default:
		}
		j.run()
		s.done()
	}
}

// Step pops and runs a single queued job synchronously, without blocking
// for more work to arrive. It returns false if the queue was empty. Step
// gives a caller (a CLI flag, a debugger, a test) single-iteration control
// over expansion instead of driving the whole tree through Start.
func (s *Scheduler) Step() bool {
	s.mu.Lock()
	if len(s.q) == 0 {
		s.mu.Unlock()
		return false
	}
	j := heap.Pop(&s.q).(*job)
	s.mu.Unlock()
	j.run()
	s.done()
	return true
}

// Close marks the scheduler closed: no further jobs are accepted and any
// worker blocked waiting for work returns.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Package tasks is a small in-process task queue for side effects that must
// not delay or fail the triggering request: achievement recomputes and
// notification sends after goal completion. Tasks run at least once, with a
// bounded number of retries; permanent failures are logged, never surfaced.
package tasks

import (
	"log"
	"sync"
	"time"
)

// Task is one unit of deferred work.
type Task struct {
	Name string
	Run  func() error
}

type Queue struct {
	ch       chan Task
	retries  int
	backoff  time.Duration
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewQueue starts a queue with the given number of workers. Each failed task
// is retried up to retries times with a fixed backoff between attempts.
func NewQueue(workers, retries int, backoff time.Duration) *Queue {
	if workers < 1 {
		workers = 1
	}
	q := &Queue{
		ch:      make(chan Task, 64),
		retries: retries,
		backoff: backoff,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue submits a task. Blocks only if the buffer is full.
func (q *Queue) Enqueue(name string, run func() error) {
	q.ch <- Task{Name: name, Run: run}
}

// Stop closes the queue and waits for in-flight tasks to drain.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.ch)
	})
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for task := range q.ch {
		q.execute(task)
	}
}

func (q *Queue) execute(task Task) {
	var err error
	for attempt := 0; attempt <= q.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(q.backoff)
		}
		if err = task.Run(); err == nil {
			return
		}
		log.Printf("tasks: %s attempt %d failed: %v", task.Name, attempt+1, err)
	}
	log.Printf("tasks: %s gave up after %d attempts: %v", task.Name, q.retries+1, err)
}

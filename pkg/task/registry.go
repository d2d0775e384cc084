// Package task runs keyed, cancellable one-shot background tasks.
//
// Scheduling a key that already has a pending task cancels the old one, so
// at most one task per key is ever live. Versioned scheduling orders
// competing writers by version instead of arrival.
package task

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Func is the work run once a task's delay elapses. ctx is cancelled when
// the task is superseded, cancelled, or the registry is closed.
type Func func(ctx context.Context)

type entry struct {
	id      uint64
	version uint64
	cancel  context.CancelFunc
}

// Registry tracks pending tasks by key
type Registry struct {
	mu     sync.Mutex
	base   context.Context
	stop   context.CancelFunc
	tasks  map[string]entry
	nextID uint64
	wg     sync.WaitGroup
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	base, stop := context.WithCancel(context.Background())
	return &Registry{
		base:  base,
		stop:  stop,
		tasks: make(map[string]entry),
	}
}

// Schedule runs fn after delay unless the key is rescheduled or cancelled
// first. A zero delay starts fn immediately on its own goroutine.
func (r *Registry) Schedule(key string, delay time.Duration, fn Func) {
	r.schedule(key, 0, false, delay, fn)
}

// ScheduleVersion is Schedule for writers that race each other. It does
// nothing and returns false when the pending task for key carries a
// higher version.
func (r *Registry) ScheduleVersion(key string, version uint64, delay time.Duration, fn Func) bool {
	return r.schedule(key, version, true, delay, fn)
}

func (r *Registry) schedule(key string, version uint64, versioned bool, delay time.Duration, fn Func) bool {
	r.mu.Lock()
	if prev, ok := r.tasks[key]; ok {
		if versioned && prev.version > version {
			r.mu.Unlock()
			return false
		}
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(r.base)
	r.nextID++
	id := r.nextID
	r.tasks[key] = entry{id: id, version: version, cancel: cancel}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer r.release(key, id)
		defer cancel()

		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return
		}
		fn(ctx)
	}()
	return true
}

// Cancel stops the pending task for key, if any
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tasks[key]
	if !ok {
		return false
	}
	e.cancel()
	delete(r.tasks, key)
	return true
}

// CancelVersion stops the pending task for key only if its version is at
// most version, so a newer task scheduled concurrently survives
func (r *Registry) CancelVersion(key string, version uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tasks[key]
	if !ok || e.version > version {
		return false
	}
	e.cancel()
	delete(r.tasks, key)
	return true
}

// CancelPrefix stops every pending task whose key starts with prefix
func (r *Registry) CancelPrefix(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key, e := range r.tasks {
		if strings.HasPrefix(key, prefix) {
			e.cancel()
			delete(r.tasks, key)
			n++
		}
	}
	return n
}

// Pending reports whether key has a live task
func (r *Registry) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[key]
	return ok
}

// Len returns the number of live tasks
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Close cancels everything and waits for running tasks to return
func (r *Registry) Close() {
	r.stop()
	r.mu.Lock()
	r.tasks = make(map[string]entry)
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Registry) release(key string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.tasks[key]; ok && e.id == id {
		delete(r.tasks, key)
	}
}

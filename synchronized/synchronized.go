// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package synchronized provides a mutex-guarded value that can only be
// touched through callbacks executed under the lock. Waiters blocked on a
// predicate are woken whenever the value is modified.
package synchronized

import "sync"

// Synchronized guards a value of type T behind a mutex.
type Synchronized[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond
	data T
}

// New creates a Synchronized wrapping the given value.
func New[T any](data T) *Synchronized[T] {
	s := &Synchronized[T]{data: data}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Apply runs fn with exclusive access to the guarded value and wakes all
// waiters afterwards, since fn may have changed the value.
func (s *Synchronized[T]) Apply(fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
	s.cond.Broadcast()
}

// Wait blocks until pred holds for the guarded value. The predicate is
// evaluated under the lock.
func (s *Synchronized[T]) Wait(pred func(*T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !pred(&s.data) {
		s.cond.Wait()
	}
}

// WaitAndApply blocks until pred holds, then runs fn, all under a single
// critical section.
func (s *Synchronized[T]) WaitAndApply(pred func(*T) bool, fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !pred(&s.data) {
		s.cond.Wait()
	}
	fn(&s.data)
	s.cond.Broadcast()
}

// Fetch runs fn under the lock and returns its result. It is a free
// function because methods cannot introduce an extra type parameter.
func Fetch[T, R any](s *Synchronized[T], fn func(*T) R) R {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := fn(&s.data)
	s.cond.Broadcast()
	return r
}

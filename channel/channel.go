// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package channel implements a rendezvous channel: a single-slot conduit
// between one sender and one receiver. Unlike a raw Go channel, sending on
// a closed channel returns an error instead of panicking, and a value
// already parked in the slot can still be received after the channel has
// been closed.
package channel

import (
	"errors"
	"sync"
)

// ErrChannelClosed is returned by operations on a closed channel.
var ErrChannelClosed = errors.New("channel has already closed")

type state[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	open  bool
	value *T
}

func (st *state[T]) close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.open = false
	st.cond.Broadcast()
}

func (st *state[T]) isOpen() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.open
}

// Sender is the sending endpoint of a channel.
type Sender[T any] struct {
	st *state[T]
}

// Receiver is the receiving endpoint of a channel.
type Receiver[T any] struct {
	st *state[T]
}

// New creates a connected Sender/Receiver pair sharing a single slot.
func New[T any]() (*Sender[T], *Receiver[T]) {
	st := &state[T]{open: true}
	st.cond = sync.NewCond(&st.mu)
	return &Sender[T]{st: st}, &Receiver[T]{st: st}
}

// Send blocks until the slot is free and parks the value there. It returns
// ErrChannelClosed if the channel closes before the value could be parked.
func (s *Sender[T]) Send(value T) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	for s.st.open && s.st.value != nil {
		s.st.cond.Wait()
	}
	if !s.st.open {
		return ErrChannelClosed
	}
	s.st.value = &value
	s.st.cond.Broadcast()
	return nil
}

// TrySend parks the value if the slot is free and the channel is open.
// It never blocks.
func (s *Sender[T]) TrySend(value T) bool {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if !s.st.open || s.st.value != nil {
		return false
	}
	s.st.value = &value
	s.st.cond.Broadcast()
	return true
}

// Close closes the channel. A value already parked in the slot remains
// receivable.
func (s *Sender[T]) Close() {
	s.st.close()
}

// IsOpen reports whether the channel is still open.
func (s *Sender[T]) IsOpen() bool {
	return s.st.isOpen()
}

// Receive blocks until a value is available and returns it. A parked value
// is delivered even after close; otherwise ErrChannelClosed is returned
// once the channel closes.
func (r *Receiver[T]) Receive() (T, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for r.st.value == nil && r.st.open {
		r.st.cond.Wait()
	}
	if r.st.value == nil {
		var zero T
		return zero, ErrChannelClosed
	}
	value := *r.st.value
	r.st.value = nil
	r.st.cond.Broadcast()
	return value, nil
}

// TryReceive returns the parked value if there is one. It never blocks.
func (r *Receiver[T]) TryReceive() (T, bool) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.value == nil {
		var zero T
		return zero, false
	}
	value := *r.st.value
	r.st.value = nil
	r.st.cond.Broadcast()
	return value, true
}

// Close closes the channel. A value already parked in the slot remains
// receivable.
func (r *Receiver[T]) Close() {
	r.st.close()
}

// IsOpen reports whether the channel is still open.
func (r *Receiver[T]) IsOpen() bool {
	return r.st.isOpen()
}

// Bidirectional bundles a Sender and a Receiver belonging to two different
// channels, so two endpoints can talk in both directions.
type Bidirectional[T any] struct {
	sender   *Sender[T]
	receiver *Receiver[T]
}

// NewBidirectionalPair creates two endpoints wired crosswise: what one
// sends, the other receives.
func NewBidirectionalPair[T any]() (*Bidirectional[T], *Bidirectional[T]) {
	senderA, receiverA := New[T]()
	senderB, receiverB := New[T]()
	a := &Bidirectional[T]{sender: senderA, receiver: receiverB}
	b := &Bidirectional[T]{sender: senderB, receiver: receiverA}
	return a, b
}

// Send parks a value for the other endpoint, blocking while the slot is
// full.
func (b *Bidirectional[T]) Send(value T) error {
	return b.sender.Send(value)
}

// TrySend parks a value for the other endpoint without blocking.
func (b *Bidirectional[T]) TrySend(value T) bool {
	return b.sender.TrySend(value)
}

// Receive blocks until the other endpoint has sent a value.
func (b *Bidirectional[T]) Receive() (T, error) {
	return b.receiver.Receive()
}

// TryReceive returns a value from the other endpoint without blocking.
func (b *Bidirectional[T]) TryReceive() (T, bool) {
	return b.receiver.TryReceive()
}

// Close closes both directions.
func (b *Bidirectional[T]) Close() {
	b.sender.Close()
	b.receiver.Close()
}

// IsOpen reports whether both directions are still open.
func (b *Bidirectional[T]) IsOpen() bool {
	return b.sender.IsOpen() && b.receiver.IsOpen()
}

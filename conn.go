// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sockets

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"grimm.is/sockets/synchronized"
	"grimm.is/sockets/wire"
)

type sendTask struct {
	data []byte
	fut  *Future[int]
}

type receiveTask struct {
	maxBytes int
	exact    bool
	deadline time.Time
	fut      *Future[[]byte]
}

// Conn is an established TCP connection. Sends and receives are queued and
// executed by two background workers, one per direction, so every call
// returns immediately with a Future.
type Conn struct {
	id     uuid.UUID
	tcp    *net.TCPConn
	local  AddressInfo
	remote AddressInfo

	logger         zerolog.Logger
	stats          Stats
	defaultTimeout time.Duration

	running      atomic.Bool
	sendTasks    *synchronized.Synchronized[[]sendTask]
	receiveTasks *synchronized.Synchronized[[]receiveTask]
	workers      sync.WaitGroup
}

// newConn wraps an established TCP connection and starts its worker
// goroutines.
func newConn(tcp *net.TCPConn, o options) *Conn {
	// Go enables TCP_NODELAY by default, but set it explicitly so the
	// contract does not depend on that default.
	_ = tcp.SetNoDelay(true)

	c := &Conn{
		id:             uuid.New(),
		tcp:            tcp,
		local:          addressInfoFromAddr(tcp.LocalAddr()),
		remote:         addressInfoFromAddr(tcp.RemoteAddr()),
		stats:          o.stats,
		defaultTimeout: o.timeout,
		sendTasks:      synchronized.New([]sendTask(nil)),
		receiveTasks:   synchronized.New([]receiveTask(nil)),
	}
	c.logger = o.logger.With().Stringer("conn_id", c.id).Logger()
	c.running.Store(true)

	c.stats.ConnectionOpened()
	c.logger.Debug().
		Stringer("local", c.local).
		Stringer("remote", c.remote).
		Msg("connection established")

	c.workers.Add(2)
	go c.sendLoop()
	go c.receiveLoop()
	return c
}

// ID returns the connection's identifier, used for log correlation.
func (c *Conn) ID() uuid.UUID {
	return c.id
}

// LocalAddr returns the local endpoint of the connection.
func (c *Conn) LocalAddr() AddressInfo {
	return c.local
}

// RemoteAddr returns the remote endpoint of the connection.
func (c *Conn) RemoteAddr() AddressInfo {
	return c.remote
}

// IsConnected reports whether the connection is still alive. It turns
// false as soon as either worker detects a dead peer or Close is called.
func (c *Conn) IsConnected() bool {
	return c.running.Load()
}

// Send queues data for transmission and returns a Future that resolves
// with the number of bytes written. An empty payload is rejected. If the
// connection is already closed the Future resolves immediately with
// ErrClosed.
func (c *Conn) Send(data []byte) (*Future[int], error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: cannot send 0 bytes of data", ErrSend)
	}
	fut := newFuture[int]()
	enqueued := false
	c.sendTasks.Apply(func(tasks *[]sendTask) {
		if !c.running.Load() {
			return
		}
		*tasks = append(*tasks, sendTask{data: data, fut: fut})
		enqueued = true
	})
	if !enqueued {
		fut.resolve(0, ErrClosed)
	}
	return fut, nil
}

// SendString queues a string for transmission.
func (c *Conn) SendString(s string) (*Future[int], error) {
	return c.Send([]byte(s))
}

// SendBuffer queues the contents of a wire.Buffer for transmission.
func (c *Conn) SendBuffer(buf *wire.Buffer) (*Future[int], error) {
	return c.Send(buf.Bytes())
}

// Receive queues a read of up to maxBytes and returns a Future that
// resolves with whatever a single read delivered before DefaultTimeout.
// An expired deadline resolves with an empty slice and no error.
func (c *Conn) Receive(maxBytes int) (*Future[[]byte], error) {
	return c.enqueueReceive(maxBytes, false, c.defaultTimeout)
}

// ReceiveTimeout behaves like Receive with an explicit deadline.
func (c *Conn) ReceiveTimeout(maxBytes int, timeout time.Duration) (*Future[[]byte], error) {
	return c.enqueueReceive(maxBytes, false, timeout)
}

// ReceiveExact queues a read of exactly numBytes. The Future resolves with
// ErrTimeout if the data does not arrive within DefaultTimeout, and with
// ErrRead if the peer closes the connection first.
func (c *Conn) ReceiveExact(numBytes int) (*Future[[]byte], error) {
	return c.enqueueReceive(numBytes, true, c.defaultTimeout)
}

// ReceiveExactTimeout behaves like ReceiveExact with an explicit deadline.
func (c *Conn) ReceiveExactTimeout(numBytes int, timeout time.Duration) (*Future[[]byte], error) {
	return c.enqueueReceive(numBytes, true, timeout)
}

func (c *Conn) enqueueReceive(maxBytes int, exact bool, timeout time.Duration) (*Future[[]byte], error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("%w: receive size must be positive", ErrRead)
	}
	task := receiveTask{
		maxBytes: maxBytes,
		exact:    exact,
		deadline: time.Now().Add(timeout),
		fut:      newFuture[[]byte](),
	}
	enqueued := false
	c.receiveTasks.Apply(func(tasks *[]receiveTask) {
		if !c.running.Load() {
			return
		}
		*tasks = append(*tasks, task)
		enqueued = true
	})
	if !enqueued {
		task.fut.resolve([]byte{}, nil)
	}
	return task.fut, nil
}

// Close shuts the connection down, resolves all queued operations and
// waits for both workers to finish. It is idempotent.
func (c *Conn) Close() error {
	c.stopRunning()
	c.workers.Wait()
	return nil
}

// stopRunning flips the running flag under both queue locks so blocked
// workers observe it, then closes the socket to unblock any in-flight
// read or write.
func (c *Conn) stopRunning() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.sendTasks.Apply(func(*[]sendTask) {})
	c.receiveTasks.Apply(func(*[]receiveTask) {})
	_ = c.tcp.Close()

	c.stats.ConnectionClosed()
	c.logger.Debug().Msg("connection closed")
}

// drainQueues resolves everything still queued: sends with ErrClosed,
// receives with an empty result. Both workers call it on exit; whichever
// runs first empties the queues.
func (c *Conn) drainQueues() {
	c.sendTasks.Apply(func(tasks *[]sendTask) {
		for _, task := range *tasks {
			task.fut.resolve(0, ErrClosed)
		}
		*tasks = nil
	})
	c.receiveTasks.Apply(func(tasks *[]receiveTask) {
		for _, task := range *tasks {
			task.fut.resolve([]byte{}, nil)
		}
		*tasks = nil
	})
}

func (c *Conn) sendLoop() {
	defer c.workers.Done()
	for {
		task, ok := c.nextSendTask()
		if !ok {
			break
		}
		if !c.processSendTask(task) {
			c.stopRunning()
			break
		}
	}
	c.drainQueues()
}

func (c *Conn) receiveLoop() {
	defer c.workers.Done()
	for {
		task, ok := c.nextReceiveTask()
		if !ok {
			break
		}
		if !c.processReceiveTask(task) {
			c.stopRunning()
			break
		}
	}
	c.drainQueues()
}

func (c *Conn) nextSendTask() (sendTask, bool) {
	var task sendTask
	var ok bool
	c.sendTasks.WaitAndApply(
		func(tasks *[]sendTask) bool {
			return !c.running.Load() || len(*tasks) > 0
		},
		func(tasks *[]sendTask) {
			if !c.running.Load() || len(*tasks) == 0 {
				return
			}
			task = (*tasks)[0]
			*tasks = (*tasks)[1:]
			ok = true
		},
	)
	return task, ok
}

func (c *Conn) nextReceiveTask() (receiveTask, bool) {
	var task receiveTask
	var ok bool
	c.receiveTasks.WaitAndApply(
		func(tasks *[]receiveTask) bool {
			return !c.running.Load() || len(*tasks) > 0
		},
		func(tasks *[]receiveTask) {
			if !c.running.Load() || len(*tasks) == 0 {
				return
			}
			task = (*tasks)[0]
			*tasks = (*tasks)[1:]
			ok = true
		},
	)
	return task, ok
}

// processSendTask writes the payload fully. It returns false when the
// connection is dead.
func (c *Conn) processSendTask(task sendTask) bool {
	n, err := c.tcp.Write(task.data)
	if n > 0 {
		c.stats.BytesSent(n)
	}
	if err != nil {
		c.logger.Debug().Err(err).Msg("send failed, connection is dead")
		task.fut.resolve(n, ErrClosed)
		return false
	}
	task.fut.resolve(n, nil)
	return true
}

// processReceiveTask executes one queued read. It returns false when the
// connection is dead. A timeout only fails the task, not the connection.
func (c *Conn) processReceiveTask(task receiveTask) bool {
	_ = c.tcp.SetReadDeadline(task.deadline)

	if task.exact {
		buf := make([]byte, task.maxBytes)
		n, err := io.ReadFull(c.tcp, buf)
		if n > 0 {
			c.stats.BytesReceived(n)
		}
		switch {
		case err == nil:
			task.fut.resolve(buf, nil)
			return true
		case isTimeout(err):
			task.fut.resolve(nil, ErrTimeout)
			return true
		default:
			c.logger.Debug().Err(err).Msg("receive failed, connection is dead")
			task.fut.resolve(nil, ErrRead)
			return false
		}
	}

	buf := make([]byte, task.maxBytes)
	n, err := c.tcp.Read(buf)
	if n > 0 {
		c.stats.BytesReceived(n)
		task.fut.resolve(buf[:n], nil)
		return true
	}
	if err != nil && isTimeout(err) {
		task.fut.resolve([]byte{}, nil)
		return true
	}
	// Graceful close or hard error: up-to reads resolve with what arrived,
	// which is nothing.
	c.logger.Debug().Err(err).Msg("receive failed, connection is dead")
	task.fut.resolve([]byte{}, nil)
	return false
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sockets

import "errors"

var (
	// ErrTimeout indicates that a receive did not complete within its
	// deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrRead indicates that the peer closed the connection or the read
	// failed before an exact receive could complete.
	ErrRead = errors.New("error reading from socket")

	// ErrSend indicates an invalid send, such as an empty payload.
	ErrSend = errors.New("error writing to socket")

	// ErrClosed indicates that the connection was already closed when the
	// operation was processed.
	ErrClosed = errors.New("connection closed")
)

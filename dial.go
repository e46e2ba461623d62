// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package sockets is a small TCP networking library. Servers accept
// connections and hand each one to a callback; connections execute sends
// and receives asynchronously through background workers and resolve them
// via futures. The wire package provides the matching big-endian message
// codec.
package sockets

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// Dial connects to host:port and returns a running connection.
func Dial(family AddressFamily, host string, port uint16, opts ...Option) (*Conn, error) {
	return DialContext(context.Background(), family, host, port, opts...)
}

// DialContext connects to host:port, honoring ctx for the connection
// attempt. The returned connection is already serviced by its worker
// goroutines.
func DialContext(ctx context.Context, family AddressFamily, host string, port uint16, opts ...Option) (*Conn, error) {
	o := buildOptions(opts)

	dialer := net.Dialer{Control: controlSocket}
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	conn, err := dialer.DialContext(ctx, family.network(), addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return nil, fmt.Errorf("dial %s: unexpected connection type %T", addr, conn)
	}
	return newConn(tcp, o), nil
}

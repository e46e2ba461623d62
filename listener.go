// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sockets

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
)

// Handler is invoked for every accepted connection, each call in its own
// goroutine. The handler owns the connection and should close it when
// done.
type Handler func(*Conn)

// Listener is a bound TCP socket with a running accept loop.
type Listener struct {
	ln      net.Listener
	addr    AddressInfo
	handler Handler
	opts    options
	logger  zerolog.Logger
	done    chan struct{}
}

// Listen binds a listening socket on the given port (0 lets the operating
// system choose one) and starts accepting connections. Every accepted
// connection is handed to handler in its own goroutine.
func Listen(family AddressFamily, port uint16, handler Handler, opts ...Option) (*Listener, error) {
	if handler == nil {
		return nil, errors.New("listen: handler must not be nil")
	}
	o := buildOptions(opts)

	lc := net.ListenConfig{Control: controlSocket}
	ln, err := lc.Listen(context.Background(), family.network(), fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on %s port %d: %w", family, port, err)
	}

	l := &Listener{
		ln:      ln,
		addr:    addressInfoFromAddr(ln.Addr()),
		handler: handler,
		opts:    o,
		done:    make(chan struct{}),
	}
	l.logger = o.logger.With().Stringer("listen", l.addr).Logger()
	l.logger.Debug().Msg("listener started")

	go l.acceptLoop()
	return l, nil
}

// Addr returns the bound local address. When the listener was created with
// port 0 this reports the port the operating system assigned.
func (l *Listener) Addr() AddressInfo {
	return l.addr
}

// Stop terminates the accept loop and waits for it to finish. Connections
// that were already handed to the handler keep running. Stop is
// idempotent.
func (l *Listener) Stop() {
	_ = l.ln.Close()
	<-l.done
}

// Close implements io.Closer by calling Stop.
func (l *Listener) Close() error {
	l.Stop()
	return nil
}

func (l *Listener) acceptLoop() {
	defer close(l.done)
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			l.logger.Warn().Err(err).Msg("accept failed")
			continue
		}
		tcp, ok := conn.(*net.TCPConn)
		if !ok {
			_ = conn.Close()
			continue
		}
		c := newConn(tcp, l.opts)
		l.logger.Debug().
			Stringer("conn_id", c.ID()).
			Stringer("remote", c.RemoteAddr()).
			Msg("accepted connection")
		go l.handler(c)
	}
}

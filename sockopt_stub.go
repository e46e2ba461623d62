// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build !linux

package sockets

import "syscall"

// controlSocket is a no-op on platforms where the port-reuse options are
// not portable; the library still works, rebinding just may briefly fail
// after a restart.
func controlSocket(network, address string, c syscall.RawConn) error {
	return nil
}

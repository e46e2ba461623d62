// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sockets

import (
	"fmt"
	"net"
)

// AddressFamily selects the IP protocol version a socket operates on.
type AddressFamily int

const (
	// FamilyUnspecified lets the operating system pick IPv4 or IPv6.
	FamilyUnspecified AddressFamily = iota
	// FamilyIPv4 restricts the socket to IPv4.
	FamilyIPv4
	// FamilyIPv6 restricts the socket to IPv6.
	FamilyIPv6
)

// String returns a human-readable name for the address family.
func (f AddressFamily) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "unspecified"
	}
}

// network returns the net package network name for the family.
func (f AddressFamily) network() string {
	switch f {
	case FamilyIPv4:
		return "tcp4"
	case FamilyIPv6:
		return "tcp6"
	default:
		return "tcp"
	}
}

// AddressInfo describes one endpoint of a connection.
type AddressInfo struct {
	Family  AddressFamily
	Address string
	Port    uint16
}

// String formats the endpoint; IPv6 addresses are bracketed so the port
// separator stays unambiguous.
func (a AddressInfo) String() string {
	switch a.Family {
	case FamilyIPv4:
		return fmt.Sprintf("%s:%d", a.Address, a.Port)
	case FamilyIPv6:
		return fmt.Sprintf("[%s]:%d", a.Address, a.Port)
	default:
		return "<unspecified address family>"
	}
}

// addressInfoFromAddr converts a net.Addr into an AddressInfo. Non-TCP
// addresses yield the zero value.
func addressInfoFromAddr(addr net.Addr) AddressInfo {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok || tcpAddr == nil {
		return AddressInfo{}
	}
	family := FamilyIPv6
	if tcpAddr.IP.To4() != nil {
		family = FamilyIPv4
	}
	return AddressInfo{
		Family:  family,
		Address: tcpAddr.IP.String(),
		Port:    uint16(tcpAddr.Port),
	}
}

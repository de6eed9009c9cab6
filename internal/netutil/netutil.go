package netutil

import (
	"fmt"
	"net"
	"net/netip"
)

// InvalidAddressError is returned for a host that is not a dotted-quad IPv4 address.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("%s is invalid ip address", e.Address)
}

// ValidateIPv4 returns address unchanged when it is a strict dotted-quad IPv4
// address (no leading zeros, no zone, no IPv6 forms).
func ValidateIPv4(address string) (string, error) {
	addr, err := netip.ParseAddr(address)
	if err != nil || !addr.Is4() || addr.String() != address {
		return "", &InvalidAddressError{Address: address}
	}
	return address, nil
}

// LocalIP returns the address of the interface used for outbound traffic, or
// 127.0.0.1 when there is no route. No packets are sent.
func LocalIP() string {
	conn, err := net.Dial("udp", "10.255.255.255:1")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}

package xen

import (
	"fmt"
	"net"
)

// HostIP returns the primary outbound IP address of the machine the
// driver runs on. It opens a UDP socket toward a public address; no
// packets are sent, the kernel just picks the source address it would
// route through.
func HostIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", fmt.Errorf("failed to determine host IP: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

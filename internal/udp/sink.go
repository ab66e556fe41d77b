// Package udp sends wire frames to a UDP destination, one frame per
// datagram, the transport EFB-style consumers listen on.
package udp

import (
	"fmt"
	"net"
)

type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

type resolveFunc func(network, address string) (*net.UDPAddr, error)
type dialFunc func(network string, laddr, raddr *net.UDPAddr) (udpConn, error)

type Sink struct {
	dest string
	conn udpConn
}

func NewSink(dest string) (*Sink, error) {
	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		// DialUDP selects a suitable local address automatically.
		return net.DialUDP(network, laddr, raddr)
	}
	return newSink(dest, net.ResolveUDPAddr, dial)
}

func newSink(dest string, resolve resolveFunc, dial dialFunc) (*Sink, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", dest, err)
	}
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp %q: %w", dest, err)
	}
	return &Sink{dest: dest, conn: conn}, nil
}

func (s *Sink) Dest() string { return s.dest }

// Send writes one frame as a single datagram. Empty frames are dropped.
func (s *Sink) Send(frame []byte) error {
	if len(frame) == 0 {
		return nil
	}
	_, err := s.conn.Write(frame)
	return err
}

func (s *Sink) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

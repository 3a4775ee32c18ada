package listener

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charliek/logview/internal/constants"
)

// Source yields raw datagram buffers. The transport binds at
// construction; HasPending and ReadOne mirror the readiness-driven
// drain loop: HasPending reports whether a datagram is queued right
// now, ReadOne hands over the next queued datagram. WaitReadable
// blocks until at least one datagram is pending or the context ends.
type Source interface {
	WaitReadable(ctx context.Context) error
	HasPending() bool
	ReadOne() ([]byte, error)
	Close() error
}

// ErrNoPending is returned by ReadOne when no datagram is queued
var ErrNoPending = errors.New("no pending datagram")

// pollInterval bounds how long a blocked WaitReadable goes between
// context checks.
const pollInterval = 250 * time.Millisecond

// hasPendingGrace is the deadline used to probe for queued datagrams.
// A deadline strictly in the past fails the read without attempting
// it, so the probe needs a small positive window.
const hasPendingGrace = time.Millisecond

// UDPSource is a Source backed by a bound UDP socket
type UDPSource struct {
	conn *net.UDPConn
	buf  []byte

	// One-datagram lookahead filled by WaitReadable/HasPending. The
	// flag is tracked separately because a zero-length datagram is a
	// legal packet whose buffer is indistinguishable from nil.
	next    []byte
	pending bool
}

// NewUDPSource binds a UDP socket on the given host and port. An empty
// host binds all interfaces.
func NewUDPSource(host string, port int) (*UDPSource, error) {
	addr := &net.UDPAddr{Port: port}
	if host != "" {
		addr.IP = net.ParseIP(host)
		if addr.IP == nil {
			return nil, fmt.Errorf("invalid listen host %q", host)
		}
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding udp %s:%d: %w", host, port, err)
	}

	return &UDPSource{
		conn: conn,
		buf:  make([]byte, constants.MaxDatagramSize),
	}, nil
}

// LocalAddr returns the bound socket address
func (s *UDPSource) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// WaitReadable blocks until a datagram is pending or ctx is done
func (s *UDPSource) WaitReadable(ctx context.Context) error {
	if s.pending {
		return nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.conn.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
			return err
		}
		n, _, err := s.conn.ReadFromUDP(s.buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			return err
		}
		s.next = append([]byte(nil), s.buf[:n]...)
		s.pending = true
		return nil
	}
}

// HasPending reports whether a datagram is queued on the socket
func (s *UDPSource) HasPending() bool {
	if s.pending {
		return true
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(hasPendingGrace)); err != nil {
		return false
	}
	n, _, err := s.conn.ReadFromUDP(s.buf)
	if err != nil {
		return false
	}
	s.next = append([]byte(nil), s.buf[:n]...)
	s.pending = true
	return true
}

// ReadOne returns the next pending datagram
func (s *UDPSource) ReadOne() ([]byte, error) {
	if !s.pending && !s.HasPending() {
		return nil, ErrNoPending
	}
	d := s.next
	s.next = nil
	s.pending = false
	return d, nil
}

// Close closes the underlying socket
func (s *UDPSource) Close() error {
	return s.conn.Close()
}

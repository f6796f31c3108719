package statsd

/*

Copyright (c) 2023 Charles Lirsac

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"bytes"
	"log"
	"net"
	"os"
	"sync"
	"unicode"
)

// Transport delivers batches of formatted statsd packets. It is agnostic
// to the statsd format and must not modify the packets.
//
// Emit is invoked once per client call, possibly with an empty batch when
// the call was filtered out by sampling.
type Transport interface {
	Emit(packets []string) error
	Close() error
}

var newline = []byte{'\n'}

// UDPTransport buffers formatted packets and sends them to a statsd
// collector as newline-joined UDP datagrams.
//
// The socket is created lazily on the first send and reused afterwards.
// All state is guarded by a single mutex, so one transport instance may be
// shared by any number of clients and goroutines.
//
// Delivery failures (connect errors, send errors, short writes) are logged
// and swallowed: metrics must never break the instrumented application.
type UDPTransport struct {
	addr    string
	maxSize int
	logger  Logger

	mu         sync.Mutex
	buffer     [][]byte
	bufferSize int
	conn       net.Conn
	closed     bool
}

var _ Transport = (*UDPTransport)(nil)

// NewUDPTransport creates a UDP transport for the collector at addr
// ("host:port"). An empty addr falls back to DefaultAddr.
//
// The transport does not touch the network until the first flush, so
// construction never fails.
func NewUDPTransport(addr string, options ...TransportOption) *UDPTransport {
	opts := TransportOptions{
		MaxPacketSize: DefaultMaxPacketSize,
		Logger:        log.New(os.Stderr, DefaultLogPrefix, log.LstdFlags),
	}
	for _, option := range options {
		option(&opts)
	}

	if addr == "" {
		addr = DefaultAddr
	}
	maxSize := opts.MaxPacketSize
	if maxSize < 0 {
		maxSize = 0
	}

	return &UDPTransport{
		addr:    addr,
		maxSize: maxSize,
		logger:  opts.Logger,
	}
}

// Emit buffers the packets, flushing whenever the next packet would
// overflow the datagram budget. With a zero budget every packet is sent
// immediately as its own datagram.
//
// Returns ErrTransportClosed after Close and ErrInvalidPacket for packets
// containing non-ASCII bytes; delivery errors are logged, not returned.
func (t *UDPTransport) Emit(packets []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrTransportClosed.New("emit on closed transport")
	}

	for _, packet := range packets {
		if !isASCII(packet) {
			return ErrInvalidPacket.New("packet contains non-ASCII bytes: %q", packet)
		}
		msg := []byte(packet)

		if t.maxSize == 0 {
			t.send(msg)
			continue
		}

		// Conservative overflow check: one separator byte per buffered
		// packet, not an exact pre-join measurement.
		if t.bufferSize+len(t.buffer)+len(msg) > t.maxSize {
			t.flush()
		}

		t.buffer = append(t.buffer, msg)
		t.bufferSize += len(msg)
	}

	return nil
}

// Close flushes any buffered data, releases the socket and marks the
// transport closed. Calling Close again is a no-op; socket teardown errors
// are swallowed.
func (t *UDPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.flush()
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
	t.closed = true

	return nil
}

// flush joins the buffered packets with newlines and sends them as one
// datagram. Caller must hold the lock.
func (t *UDPTransport) flush() {
	if len(t.buffer) == 0 {
		return
	}

	t.send(bytes.Join(t.buffer, newline))
	t.buffer = t.buffer[:0]
	t.bufferSize = 0
}

// send delivers one datagram, reporting rather than returning failures.
// Caller must hold the lock.
func (t *UDPTransport) send(data []byte) {
	conn, err := t.socket()
	if err != nil {
		t.logger.Printf("error connecting to %s: %s", t.addr, err)
		return
	}

	n, err := conn.Write(data)
	if err != nil {
		t.logger.Printf("error sending packet: %s", err)
		return
	}
	if n < len(data) {
		t.logger.Printf("short write: %d of %d bytes sent", n, len(data))
	}
}

// socket lazily resolves and connects the datagram socket; this happens at
// most once. Caller must hold the lock.
func (t *UDPTransport) socket() (net.Conn, error) {
	if t.conn != nil {
		return t.conn, nil
	}

	addr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}

	t.conn = conn
	return conn, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

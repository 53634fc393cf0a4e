package room

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kierki-server/internal/auditlog"
	"kierki-server/pkg/wire"
)

// maxLineLength caps a single protocol line, terminator excluded
const maxLineLength = 100

// lineResult is one read off the connection: a complete line, or the error
// that ended the read loop
type lineResult struct {
	text string
	err  error
}

// client wraps a TCP connection with CRLF line framing, an audit trail, and
// a background read pump feeding the session worker
type client struct {
	conn    net.Conn
	r       *bufio.Reader
	uuid    string
	local   string
	remote  string
	timeout time.Duration
	audit   *auditlog.Log

	lines chan lineResult
	stop  chan struct{}

	closeOnce sync.Once
}

func newClient(conn net.Conn, timeout time.Duration, audit *auditlog.Log) *client {
	return &client{
		conn:    conn,
		r:       bufio.NewReader(conn),
		uuid:    uuid.New().String(),
		local:   conn.LocalAddr().String(),
		remote:  conn.RemoteAddr().String(),
		timeout: timeout,
		audit:   audit,
		lines:   make(chan lineResult, 4),
		stop:    make(chan struct{}),
	}
}

// close shuts the connection down and releases the read pump. Safe to call
// more than once.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.stop)
		_ = c.conn.Close()
	})
}

// readLine reads one CRLF-terminated line with the connection timeout
// applied. Used for the seat claim, before the pump starts.
func (c *client) readLine() (string, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return "", err
	}

	return c.read()
}

func (c *client) read() (string, error) {
	raw, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}

	if !strings.HasSuffix(raw, "\r\n") {
		return "", fmt.Errorf("%w: line not CRLF-terminated", wire.ErrProtocolViolation)
	}

	text := raw[:len(raw)-2]
	if len(text) > maxLineLength {
		return "", fmt.Errorf("%w: line exceeds %d bytes", wire.ErrProtocolViolation, maxLineLength)
	}

	c.audit.Record(c.remote, c.local, text)
	return text, nil
}

// startPump clears the read deadline and begins feeding lines to c.lines.
// Long idle periods are expected once a seat is claimed (a paused game can
// sit quietly indefinitely); disconnects surface as read errors instead.
func (c *client) startPump() {
	_ = c.conn.SetReadDeadline(time.Time{})
	go c.pump()
}

func (c *client) pump() {
	for {
		text, err := c.read()

		select {
		case c.lines <- lineResult{text: text, err: err}:
		case <-c.stop:
			return
		}

		if err != nil {
			return
		}
	}
}

// send writes one CRLF-terminated message with the write timeout applied
func (c *client) send(msg string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}

	if _, err := c.conn.Write([]byte(msg + "\r\n")); err != nil {
		return err
	}

	c.audit.Record(c.local, c.remote, msg)
	return nil
}

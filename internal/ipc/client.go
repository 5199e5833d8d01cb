package ipc

import (
	"fmt"
	"net"
)

// Client is the sending half of the protocol, used by yaxc.
type Client struct {
	conn net.Conn
}

// Dial connects to the manager's socket.
func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("ipc: dial %s: %w", path, err)
	}
	return &Client{conn: conn}, nil
}

// Send writes one command and closes the stream, which is what frames
// the message for the receiver.
func (c *Client) Send(cmd Command) error {
	if err := Encode(c.conn, cmd); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

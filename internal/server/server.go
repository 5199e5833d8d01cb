// Package server accepts yaxc connections on the local socket and feeds
// decoded commands into the event queue.
package server

import (
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"

	"github.com/proxin187/yaxiwm/internal/event"
	"github.com/proxin187/yaxiwm/internal/ipc"
	"github.com/proxin187/yaxiwm/internal/logger"
)

// Server owns the unix listener. One command arrives per connection;
// end-of-stream frames it.
type Server struct {
	listener net.Listener
	events   *event.Queue[event.Message]
	log      zerolog.Logger
}

// New unlinks any stale socket left by a previous run and binds a fresh
// one. Bind failures are fatal to the caller.
func New(path string, events *event.Queue[event.Message]) (*Server, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("server: unlink %s: %w", path, err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("server: bind %s: %w", path, err)
	}
	return &Server{
		listener: listener,
		events:   events,
		log:      logger.WithComponent("ipc-server"),
	}, nil
}

// Listen runs the accept loop. Malformed payloads are logged and dropped;
// only a dead listener ends the loop.
func (s *Server) Listen() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return fmt.Errorf("server: accept: %w", err)
		}
		s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	cmd, err := ipc.Decode(conn)
	if err != nil {
		s.log.Warn().Err(err).Msg("dropping malformed command")
		return
	}
	s.events.Push(event.Message{Cmd: &cmd})
}

// Close shuts the listener down.
func (s *Server) Close() error {
	return s.listener.Close()
}

package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
)

// Overlay is the control surface the IPC server exposes. Every method
// may be called from a connection goroutine; the daemon implementation
// marshals mutations onto the frame loop before touching overlay state.
type Overlay interface {
	Status() (StatusData, error)
	Flash(count int) error
	TimerSet(minutes int) error
	TimerStart() error
	TimerStop() error
	TimerReset() error
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	overlay      Overlay
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates an IPC server for the given socket path.
func NewServer(socketPath string, overlay Overlay) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		overlay:    overlay,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandPing:
		resp, _ := NewOKResponse(nil)
		return resp
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandFlash:
		return s.handleFlash(req.Payload)
	case CommandTimerSet:
		return s.handleTimerSet(req.Payload)
	case CommandTimerStart:
		return s.simple(s.overlay.TimerStart)
	case CommandTimerStop:
		return s.simple(s.overlay.TimerStop)
	case CommandTimerReset:
		return s.simple(s.overlay.TimerReset)
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	status, err := s.overlay.Status()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get status: %v", err))
	}
	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleFlash(payload json.RawMessage) *Response {
	count := 1
	if len(payload) > 0 {
		var p FlashPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid flash payload: %v", err))
		}
		if p.Count > 0 {
			count = p.Count
		}
	}
	if err := s.overlay.Flash(count); err != nil {
		return NewErrorResponse(fmt.Sprintf("Flash failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleTimerSet(payload json.RawMessage) *Response {
	var p TimerSetPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid timer payload: %v", err))
	}
	if p.Minutes <= 0 {
		return NewErrorResponse("minutes must be positive")
	}
	if err := s.overlay.TimerSet(p.Minutes); err != nil {
		return NewErrorResponse(fmt.Sprintf("Timer set failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")
	if err := s.overlay.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Reload failed: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) simple(op func() error) *Response {
	if err := op(); err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) sendError(conn net.Conn, msg string) {
	resp := NewErrorResponse(msg)
	data, err := resp.Marshal()
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}

// Stop shuts the server down and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

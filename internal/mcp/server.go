// Package mcp exposes overlay and timer control as MCP tools over stdio,
// backed by the IPC client. It lets MCP-capable assistants drive a
// running halo instance: inspect state, set and start the countdown, and
// request attention flashes.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/halo/internal/ipc"
)

const (
	ServerName    = "halo"
	ServerVersion = "0.1.0"
)

// controlClient is the slice of the IPC client the tools call.
type controlClient interface {
	GetStatus() (*ipc.StatusData, error)
	Flash(count int) error
	TimerSet(minutes int) error
	TimerStart() error
	TimerStop() error
	TimerReset() error
}

// Server is the MCP server for overlay control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    controlClient
}

// NewServer creates an MCP server that proxies tool calls to the
// overlay's IPC socket.
func NewServer(client controlClient) *Server {
	s := &Server{client: client}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "overlay_status",
		Description: "Get the current overlay and timer state: radius and expansion, drag and close-gesture activity, remaining time, and whether the countdown is running or finished.",
	}, s.handleOverlayStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "overlay_flash",
		Description: "Flash the overlay's taskbar entry to draw the user's attention. Fire-and-forget; failure is reported but harmless.",
	}, s.handleOverlayFlash)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "timer_set",
		Description: "Set the countdown duration in minutes (clamped to 1-90). A running countdown keeps running from the new value.",
	}, s.handleTimerSet)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "timer_start",
		Description: "Start or resume the countdown. A countdown that has already reached zero must be reset or set first.",
	}, s.handleTimerStart)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "timer_stop",
		Description: "Pause the countdown without clearing the remaining time.",
	}, s.handleTimerStop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "timer_reset",
		Description: "Stop the countdown and restore the default five-minute duration.",
	}, s.handleTimerReset)
}

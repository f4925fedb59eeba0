package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleOverlayStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ OverlayStatusInput) (*mcpsdk.CallToolResult, OverlayStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, OverlayStatusOutput{}, fmt.Errorf("overlay unreachable: %w", err)
	}

	return nil, OverlayStatusOutput{
		Radius:         status.Radius,
		Expanded:       status.Expanded,
		Settled:        status.Settled,
		Dragging:       status.Dragging,
		Gesture:        status.Gesture,
		TimerClock:     status.TimerClock,
		TimerRemaining: status.TimerRemaining,
		TimerRunning:   status.TimerRunning,
		TimerFinished:  status.TimerFinished,
		Description:    status.Description,
		UptimeSeconds:  status.UptimeSeconds,
	}, nil
}

func (s *Server) handleOverlayFlash(_ context.Context, _ *mcpsdk.CallToolRequest, args OverlayFlashInput) (*mcpsdk.CallToolResult, any, error) {
	count := args.Count
	if count <= 0 {
		count = 1
	}
	if err := s.client.Flash(count); err != nil {
		return nil, nil, fmt.Errorf("flash failed: %w", err)
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("Requested %d taskbar flash(es)", count)},
		},
	}, nil, nil
}

func (s *Server) handleTimerSet(_ context.Context, _ *mcpsdk.CallToolRequest, args TimerSetInput) (*mcpsdk.CallToolResult, TimerStateOutput, error) {
	if args.Minutes <= 0 {
		return nil, TimerStateOutput{}, fmt.Errorf("minutes must be positive, got %d", args.Minutes)
	}
	if err := s.client.TimerSet(args.Minutes); err != nil {
		return nil, TimerStateOutput{}, fmt.Errorf("timer set failed: %w", err)
	}
	return s.timerState()
}

func (s *Server) handleTimerStart(_ context.Context, _ *mcpsdk.CallToolRequest, _ TimerControlInput) (*mcpsdk.CallToolResult, TimerStateOutput, error) {
	if err := s.client.TimerStart(); err != nil {
		return nil, TimerStateOutput{}, fmt.Errorf("timer start failed: %w", err)
	}
	return s.timerState()
}

func (s *Server) handleTimerStop(_ context.Context, _ *mcpsdk.CallToolRequest, _ TimerControlInput) (*mcpsdk.CallToolResult, TimerStateOutput, error) {
	if err := s.client.TimerStop(); err != nil {
		return nil, TimerStateOutput{}, fmt.Errorf("timer stop failed: %w", err)
	}
	return s.timerState()
}

func (s *Server) handleTimerReset(_ context.Context, _ *mcpsdk.CallToolRequest, _ TimerControlInput) (*mcpsdk.CallToolResult, TimerStateOutput, error) {
	if err := s.client.TimerReset(); err != nil {
		return nil, TimerStateOutput{}, fmt.Errorf("timer reset failed: %w", err)
	}
	return s.timerState()
}

// timerState reads back the countdown so timer tools confirm the result
// of their mutation.
func (s *Server) timerState() (*mcpsdk.CallToolResult, TimerStateOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, TimerStateOutput{}, fmt.Errorf("overlay unreachable: %w", err)
	}
	return nil, TimerStateOutput{
		TimerClock:     status.TimerClock,
		TimerRemaining: status.TimerRemaining,
		TimerRunning:   status.TimerRunning,
		TimerFinished:  status.TimerFinished,
	}, nil
}

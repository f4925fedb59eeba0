package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing       CommandType = "PING"
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandFlash      CommandType = "FLASH"
	CommandTimerSet   CommandType = "TIMER_SET"
	CommandTimerStart CommandType = "TIMER_START"
	CommandTimerStop  CommandType = "TIMER_STOP"
	CommandTimerReset CommandType = "TIMER_RESET"
	CommandReload     CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Radius         float64 `json:"radius"`
	Expanded       bool    `json:"expanded"`
	Settled        bool    `json:"settled"`
	Dragging       bool    `json:"dragging"`
	Gesture        string  `json:"gesture"`
	TimerClock     string  `json:"timer_clock"`
	TimerRemaining int     `json:"timer_remaining"`
	TimerRunning   bool    `json:"timer_running"`
	TimerFinished  bool    `json:"timer_finished"`
	Description    string  `json:"description,omitempty"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
}

// FlashPayload represents the payload for the FLASH command
type FlashPayload struct {
	Count int `json:"count"`
}

// TimerSetPayload represents the payload for the TIMER_SET command
type TimerSetPayload struct {
	Minutes int `json:"minutes"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

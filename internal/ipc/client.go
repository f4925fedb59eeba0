package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/halo/internal/runtimepath"
)

// Client handles IPC communication with the overlay daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the standard socket location.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithPath(socketPath)
}

// NewClientWithPath creates a client for an explicit socket path.
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to overlay: %w (is halo running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("overlay error: %s", resp.Error)
	}

	return &resp, nil
}

// Ping checks whether the overlay daemon is reachable.
func (c *Client) Ping() error {
	_, err := c.sendRequest(&Request{Command: CommandPing})
	return err
}

// GetStatus retrieves the overlay and timer state.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// Flash asks the overlay to flash its taskbar entry.
func (c *Client) Flash(count int) error {
	payload, err := json.Marshal(FlashPayload{Count: count})
	if err != nil {
		return fmt.Errorf("failed to marshal flash payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandFlash, Payload: payload})
	return err
}

// TimerSet replaces the countdown duration in minutes.
func (c *Client) TimerSet(minutes int) error {
	payload, err := json.Marshal(TimerSetPayload{Minutes: minutes})
	if err != nil {
		return fmt.Errorf("failed to marshal timer payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandTimerSet, Payload: payload})
	return err
}

// TimerStart starts or resumes the countdown.
func (c *Client) TimerStart() error {
	_, err := c.sendRequest(&Request{Command: CommandTimerStart})
	return err
}

// TimerStop pauses the countdown.
func (c *Client) TimerStop() error {
	_, err := c.sendRequest(&Request{Command: CommandTimerStop})
	return err
}

// TimerReset restores the default countdown duration.
func (c *Client) TimerReset() error {
	_, err := c.sendRequest(&Request{Command: CommandTimerReset})
	return err
}

// Reload asks the daemon to reload its configuration.
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

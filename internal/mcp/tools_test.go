package mcp

import (
	"errors"
	"testing"

	"github.com/1broseidon/halo/internal/ipc"
)

type fakeClient struct {
	status    ipc.StatusData
	statusErr error
	flashes   []int
	sets      []int
	starts    int
	stops     int
	resets    int
}

func (c *fakeClient) GetStatus() (*ipc.StatusData, error) {
	if c.statusErr != nil {
		return nil, c.statusErr
	}
	s := c.status
	return &s, nil
}

func (c *fakeClient) Flash(count int) error      { c.flashes = append(c.flashes, count); return nil }
func (c *fakeClient) TimerSet(minutes int) error { c.sets = append(c.sets, minutes); return nil }
func (c *fakeClient) TimerStart() error          { c.starts++; c.status.TimerRunning = true; return nil }
func (c *fakeClient) TimerStop() error           { c.stops++; c.status.TimerRunning = false; return nil }
func (c *fakeClient) TimerReset() error          { c.resets++; c.status.TimerRemaining = 300; return nil }

func TestOverlayStatusTool(t *testing.T) {
	client := &fakeClient{status: ipc.StatusData{
		Radius:         150.5,
		Expanded:       true,
		Gesture:        "holding",
		TimerClock:     "07:30",
		TimerRemaining: 450,
		TimerRunning:   true,
		Description:    "writeup",
		UptimeSeconds:  99,
	}}
	s := NewServer(client)

	_, out, err := s.handleOverlayStatus(nil, nil, OverlayStatusInput{})
	if err != nil {
		t.Fatalf("overlay_status: %v", err)
	}
	if out.Radius != 150.5 || !out.Expanded || out.Gesture != "holding" {
		t.Errorf("overlay fields = %+v", out)
	}
	if out.TimerClock != "07:30" || out.TimerRemaining != 450 || !out.TimerRunning {
		t.Errorf("timer fields = %+v", out)
	}
	if out.Description != "writeup" || out.UptimeSeconds != 99 {
		t.Errorf("metadata fields = %+v", out)
	}
}

func TestOverlayStatusToolUnreachable(t *testing.T) {
	s := NewServer(&fakeClient{statusErr: errors.New("dial failed")})
	if _, _, err := s.handleOverlayStatus(nil, nil, OverlayStatusInput{}); err == nil {
		t.Fatal("unreachable overlay not surfaced")
	}
}

func TestOverlayFlashToolDefaultsCount(t *testing.T) {
	client := &fakeClient{}
	s := NewServer(client)

	if _, _, err := s.handleOverlayFlash(nil, nil, OverlayFlashInput{}); err != nil {
		t.Fatalf("overlay_flash: %v", err)
	}
	if _, _, err := s.handleOverlayFlash(nil, nil, OverlayFlashInput{Count: 5}); err != nil {
		t.Fatalf("overlay_flash: %v", err)
	}

	if len(client.flashes) != 2 || client.flashes[0] != 1 || client.flashes[1] != 5 {
		t.Errorf("flashes = %v, want [1 5]", client.flashes)
	}
}

func TestTimerSetTool(t *testing.T) {
	client := &fakeClient{status: ipc.StatusData{TimerClock: "25:00", TimerRemaining: 1500}}
	s := NewServer(client)

	_, out, err := s.handleTimerSet(nil, nil, TimerSetInput{Minutes: 25})
	if err != nil {
		t.Fatalf("timer_set: %v", err)
	}
	if len(client.sets) != 1 || client.sets[0] != 25 {
		t.Errorf("sets = %v, want [25]", client.sets)
	}
	if out.TimerRemaining != 1500 {
		t.Errorf("readback remaining = %d, want 1500", out.TimerRemaining)
	}

	if _, _, err := s.handleTimerSet(nil, nil, TimerSetInput{Minutes: 0}); err == nil {
		t.Fatal("timer_set accepted zero minutes")
	}
}

func TestTimerLifecycleTools(t *testing.T) {
	client := &fakeClient{status: ipc.StatusData{TimerRemaining: 600}}
	s := NewServer(client)

	_, out, err := s.handleTimerStart(nil, nil, TimerControlInput{})
	if err != nil {
		t.Fatalf("timer_start: %v", err)
	}
	if !out.TimerRunning {
		t.Error("readback after start not running")
	}

	_, out, err = s.handleTimerStop(nil, nil, TimerControlInput{})
	if err != nil {
		t.Fatalf("timer_stop: %v", err)
	}
	if out.TimerRunning {
		t.Error("readback after stop still running")
	}

	_, out, err = s.handleTimerReset(nil, nil, TimerControlInput{})
	if err != nil {
		t.Fatalf("timer_reset: %v", err)
	}
	if out.TimerRemaining != 300 {
		t.Errorf("readback after reset = %d, want 300", out.TimerRemaining)
	}

	if client.starts != 1 || client.stops != 1 || client.resets != 1 {
		t.Errorf("counts = %d/%d/%d, want 1 each", client.starts, client.stops, client.resets)
	}
}

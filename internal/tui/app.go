// Package tui implements the interactive control panel: a live view of
// the overlay and timer state with single-key countdown controls, plus a
// settings tab that edits the config file, talking to the running daemon
// over IPC.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/halo/internal/config"
	"github.com/1broseidon/halo/internal/ipc"
)

// controller is the slice of the IPC client the TUI drives.
type controller interface {
	GetStatus() (*ipc.StatusData, error)
	TimerSet(minutes int) error
	TimerStart() error
	TimerStop() error
	TimerReset() error
	Flash(count int) error
	Reload() error
}

const (
	tabStatus = iota
	tabSettings
)

type statusMsg struct {
	status *ipc.StatusData
	err    error
}

type actionMsg struct {
	err error
}

type tickMsg time.Time

type savedMsg struct {
	err      error
	reloaded bool
}

// model is the root bubbletea model.
type model struct {
	client    controller
	connected bool
	status    ipc.StatusData
	lastError string
	width     int
	height    int

	tab     int
	cfg     *config.Config
	cfgPath string
	cursor  int
	dirty   bool
	note    string
}

func newModel(client controller, cfg *config.Config, cfgPath string) model {
	return model{client: client, cfg: cfg, cfgPath: cfgPath}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(fetchStatus(m.client), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchStatus(client controller) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		return statusMsg{status: status, err: err}
	}
}

func action(op func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{err: op()}
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchStatus(m.client), tick())

	case statusMsg:
		if msg.err != nil {
			m.connected = false
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.connected = true
		m.lastError = ""
		m.status = *msg.status
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.lastError = ""
		return m, fetchStatus(m.client)

	case savedMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.lastError = ""
		m.dirty = false
		m.note = "saved to " + m.cfgPath
		if msg.reloaded {
			m.note += " (overlay reloaded)"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "tab":
		if m.tab == tabStatus {
			m.tab = tabSettings
		} else {
			m.tab = tabStatus
		}
		m.note = ""
		return m, nil
	}

	if m.tab == tabSettings {
		return m.handleSettingsKey(msg)
	}
	return m.handleStatusKey(msg)
}

func (m model) handleStatusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", " ":
		if m.status.TimerRunning {
			return m, action(m.client.TimerStop)
		}
		return m, action(m.client.TimerStart)

	case "r":
		return m, action(m.client.TimerReset)

	case "f":
		return m, action(func() error { return m.client.Flash(1) })

	case "+", "=":
		return m, m.adjustMinutes(1)

	case "-", "_":
		return m, m.adjustMinutes(-1)
	}
	return m, nil
}

func (m model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(settingsFields)-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		settingsFields[m.cursor].adjust(m.cfg, -1)
		m.dirty = true
		m.note = ""
		return m, nil

	case "right", "l":
		settingsFields[m.cursor].adjust(m.cfg, +1)
		m.dirty = true
		m.note = ""
		return m, nil

	case "w":
		return m, m.saveConfig()
	}
	return m, nil
}

// saveConfig writes the edited config and, when the overlay is running,
// asks it to reload the knobs it can apply live.
func (m model) saveConfig() tea.Cmd {
	cfg := m.cfg
	path := m.cfgPath
	client := m.client
	connected := m.connected
	return func() tea.Msg {
		if err := config.Save(cfg, path); err != nil {
			return savedMsg{err: err}
		}
		if connected {
			if err := client.Reload(); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{reloaded: true}
		}
		return savedMsg{}
	}
}

// adjustMinutes nudges the countdown by whole minutes. The daemon clamps
// the result, so edges need no special casing here.
func (m model) adjustMinutes(delta int) tea.Cmd {
	if !m.connected || m.status.TimerRunning {
		return nil
	}
	minutes := (m.status.TimerRemaining+59)/60 + delta
	if minutes < 1 {
		minutes = 1
	}
	return action(func() error { return m.client.TimerSet(minutes) })
}

// Run starts the control panel against the standard IPC socket and the
// default config file.
func Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	cfg, _, err := config.Load()
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(ipc.NewClient(), cfg, cfgPath), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

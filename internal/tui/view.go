package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(1, 4)

	clockRunningStyle = clockStyle.
				Foreground(lipgloss.Color("42"))

	clockFinishedStyle = clockStyle.
				Foreground(lipgloss.Color("203"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	disconnectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := titleStyle.Render("halo")

	if m.tab == tabSettings {
		return m.settingsView(title)
	}

	if !m.connected {
		body := disconnectedStyle.Render("overlay not reachable: is `halo run` active?")
		if m.lastError != "" {
			body += "\n" + errorStyle.Render(m.lastError)
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, "", body, helpBar())
	}

	clock := clockStyle
	state := "stopped"
	switch {
	case m.status.TimerFinished:
		clock = clockFinishedStyle
		state = "finished"
	case m.status.TimerRunning:
		clock = clockRunningStyle
		state = "running"
	}

	rows := []string{
		row("Timer", fmt.Sprintf("%s (%s)", m.status.TimerClock, state)),
		row("Overlay", overlayLabel(m.status.Expanded, m.status.Settled)),
		row("Radius", fmt.Sprintf("%.0f px", m.status.Radius)),
		row("Gesture", m.status.Gesture),
		row("Uptime", fmt.Sprintf("%ds", m.status.UptimeSeconds)),
	}
	if m.status.Description != "" {
		rows = append(rows, row("Note", m.status.Description))
	}

	parts := []string{
		title,
		clock.Render(m.status.TimerClock),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	}
	if m.lastError != "" {
		parts = append(parts, errorStyle.Render(m.lastError))
	}
	parts = append(parts, helpBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func overlayLabel(expanded, settled bool) string {
	label := "collapsed"
	if expanded {
		label = "expanded"
	}
	if !settled {
		label += " (animating)"
	}
	return label
}

func (m model) settingsView(title string) string {
	rows := make([]string, 0, len(settingsFields))
	for i, field := range settingsFields {
		marker := "  "
		label := labelStyle.Render(field.label)
		value := valueStyle.Render(field.value(m.cfg))
		if i == m.cursor {
			marker = selectedStyle.Render("> ")
			value = selectedStyle.Render(field.value(m.cfg))
		}
		rows = append(rows, marker+label+value)
	}

	parts := []string{title, "", lipgloss.JoinVertical(lipgloss.Left, rows...)}
	if m.dirty {
		parts = append(parts, dirtyStyle.Render("unsaved changes"))
	}
	if m.note != "" {
		parts = append(parts, noteStyle.Render(m.note))
	}
	if m.lastError != "" {
		parts = append(parts, errorStyle.Render(m.lastError))
	}
	parts = append(parts, helpStyle.Render("up/down select · left/right adjust · w write · tab status · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func helpBar() string {
	return helpStyle.Render("s start/stop · r reset · +/- minutes · f flash · tab settings · q quit")
}

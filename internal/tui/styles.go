package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#19A974")

	titleStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4136")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(accent)
)

var (
	keyQuit     = key.NewBinding(key.WithKeys("ctrl+c"))
	keyBack     = key.NewBinding(key.WithKeys("esc"))
	keyEnter    = key.NewBinding(key.WithKeys("enter"))
	keyAdd      = key.NewBinding(key.WithKeys("ctrl+n"))
	keyNext     = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrev     = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keyStyle    = key.NewBinding(key.WithKeys("ctrl+s"))
	keyGenerate = key.NewBinding(key.WithKeys("ctrl+g"))
)

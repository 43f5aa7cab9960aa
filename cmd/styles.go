package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

var colorSuccess = lipgloss.Color("#00B785")

var stylePassed = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
var styleFailed = lipgloss.NewStyle().Foreground(lipgloss.Color("#E1244C")).Bold(true)
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)
var styleDetail = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#5D689C")).Width(100)
var styleListItem = lipgloss.NewStyle().Padding(0, 2)

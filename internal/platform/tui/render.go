package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aabb-lab/internal/core"
)

// colorStyles maps semantic cell colors to terminal styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:        lipgloss.NewStyle(),
	core.ColorWall:           lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	core.ColorWallEdge:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorPlayer:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	core.ColorPlayerGrounded: lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true),
	core.ColorCoin:           lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorGoal:           lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	core.ColorRay:            lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	core.ColorRayHit:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorContact:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorHUD:            lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorDim:            lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorWarning:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorSuccess:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

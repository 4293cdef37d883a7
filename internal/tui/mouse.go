package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartsavehub/smartsave/internal/tui/components"
)

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || a.mode != modeBrowse || a.overlay != overlayNone {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == 0 && a.cursor > 0 {
			a.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == 0 && a.board != nil && a.cursor < len(a.board.Goals)-1 {
			a.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := components.TabBarLeadIn
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + components.TabGap
	}
	return -1
}

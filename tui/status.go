package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/model/item"
)

// countItems counts items including everything nested in containers.
func countItems(items []item.Item) int {
	n := len(items)
	for _, it := range items {
		n += countItems(it.Core().Subinventory)
	}
	return n
}

// classLabel renders "Fighter 3", or "-" without a class.
func classLabel(e *entity.Entity) string {
	if e.Class == nil {
		return "-"
	}
	return fmt.Sprintf("%s %d", e.Class.Name, e.Class.Level)
}

// renderStatusBar produces a full-width inverted status line showing the
// character, class level, hit points, item count and turn.
func (m Model) renderStatusBar() string {
	e := m.session.Entity

	left := fmt.Sprintf(" %s | %s", e.Name, classLabel(e))
	if e.Species != nil {
		left += " | " + e.Species.Name
	}

	hp := "HP -"
	if v, ok := e.Resource("hp"); ok {
		hp = fmt.Sprintf("HP %d", v)
	}
	rest := fmt.Sprintf(" | Items: %d | T:%d ", countItems(e.Inventory), m.session.Turn)

	// Drop the species first when the bar is too narrow.
	if lipgloss.Width(left)+len(hp)+lipgloss.Width(rest) > m.width && e.Species != nil {
		left = strings.TrimSuffix(left, " | "+e.Species.Name)
	}

	gap := m.width - lipgloss.Width(left) - len(hp) - lipgloss.Width(rest)
	if gap < 0 {
		gap = 0
	}

	bar := styleStatusBar.Render(left+strings.Repeat(" ", gap)) +
		styleStatusHP.Render(hp) +
		styleStatusBar.Render(rest)
	return lipgloss.NewStyle().Width(m.width).Render(bar)
}

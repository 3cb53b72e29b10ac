package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"shapemap/internal/mapview"
	"shapemap/internal/session"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(" shapemap ─ terminal map annotator "),
		m.renderToolbar(),
	)
	header = lipgloss.NewStyle().Width(lo.contentW).MaxHeight(1).Render(header)

	// Map viewport with overlays
	var mapView string
	if m.showTable {
		maxW := min(lo.mapW, 72)
		m.tbl.SetWidth(maxW - 4)
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	} else {
		mapView = m.view.Render(lo.mapW, lo.mapH)
		if box := m.renderPopup(lo); box != "" {
			x := max(0, lo.mapW-lipgloss.Width(box)-1)
			mapView = overlay(mapView, box, x, 0)
		}
		if box := m.renderModal(lo); box != "" {
			x := max(0, (lo.mapW-lipgloss.Width(box))/2)
			y := max(0, (lo.mapH-lipgloss.Height(box))/2)
			mapView = overlay(mapView, box, x, y)
		}
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(mapView)
	}

	body := mapView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status and cursor position, then help
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lat=%.5f lng=%.5f  z=%d ", m.hover.Lat(), m.hover.Lon(), m.view.Zoom()))
	}
	spacerW := max(0, lo.contentW-lipgloss.Width(status))
	right := lipgloss.Place(spacerW, 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, status, right),
		m.renderHelp(),
	)
	footer = lipgloss.NewStyle().Width(lo.contentW).Render(footer)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderToolbar() string {
	tools := []session.Tool{session.ToolCircle, session.ToolTriangle, session.ToolRectangle}
	parts := make([]string, 0, len(tools)+1)
	for _, t := range tools {
		label := fmt.Sprintf("[%c] %s", t.String()[0], t.Title())
		if t == m.sess.Tool() {
			if n := len(m.sess.Buffered()); t.IsPolygon() && n > 0 {
				label += fmt.Sprintf(" %d/%d", n, t.Arity())
			}
			parts = append(parts, activeStyle.Render(label))
			continue
		}
		parts = append(parts, dimStyle.Render(label))
	}
	return " " + strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return " " + m.help.View(m.keys)
}

// renderPopup draws the open popup, or the GeoJSON of its shape.
func (m Model) renderPopup(lo layout) string {
	id, pop, ok := m.view.OpenedPopup()
	if !ok {
		return ""
	}
	maxW := max(24, min(48, lo.mapW/2))
	if m.showGeoJSON {
		if sh, ok := m.shapeOfLayer(id); ok {
			b, err := json.MarshalIndent(sh.Feature(), "", "  ")
			if err != nil {
				m.log.Warn("geojson", "id", sh.ID.String(), "err", err)
				return ""
			}
			body := truncateLines(string(b), lo.mapH-2)
			return boxStyle.MaxWidth(maxW + 16).Render(titleStyle.Render("GeoJSON") + "\n" + body)
		}
	}
	lines := []string{titleStyle.Render(pop.Title)}
	lines = append(lines, pop.Lines...)
	if len(pop.Actions) > 0 {
		acts := make([]string, 0, len(pop.Actions))
		for _, a := range pop.Actions {
			acts = append(acts, fmt.Sprintf("[%s] %s", a.Key, a.Label))
		}
		lines = append(lines, "", strings.Join(acts, "  ")+dimStyle.Render("  [g] geojson"))
	}
	return boxStyle.MaxWidth(maxW).Render(strings.Join(lines, "\n"))
}

// renderModal draws the radius prompt or the alert, whichever is up.
func (m Model) renderModal(lo layout) string {
	switch {
	case m.alert != "":
		return alertStyle.Render(m.alert + "\n\n" + dimStyle.Render("enter/esc to dismiss"))
	case m.prompting:
		m.prompt.Width = min(24, max(8, lo.mapW-8))
		return boxStyle.Render(m.promptReq.Prompt + "\n" + m.prompt.View() + "\n" + dimStyle.Render("enter ok · esc cancel"))
	}
	return ""
}

func (m Model) shapeOfLayer(id mapview.LayerID) (session.Shape, bool) {
	for _, sh := range m.sess.Shapes() {
		if sh.Layer() == id {
			return sh, true
		}
	}
	return session.Shape{}, false
}

// overlay paints box over base with its top-left corner at cell (x, y).
func overlay(base, box string, x, y int) string {
	rows := strings.Split(base, "\n")
	for i, bl := range strings.Split(box, "\n") {
		r := y + i
		if r < 0 || r >= len(rows) {
			continue
		}
		row := rows[r]
		left := ansi.Truncate(row, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(row, x+ansi.StringWidth(bl), "")
		rows[r] = left + bl + right
	}
	return strings.Join(rows, "\n")
}

func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n < 1 || len(lines) <= n {
		return s
	}
	return strings.Join(append(lines[:n-1], "…"), "\n")
}

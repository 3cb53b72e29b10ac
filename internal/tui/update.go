package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"shapemap/internal/session"
)

// layout mirrors the arrangement View draws.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lo layout
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	lo.mapX = lo.sidebarW
	if m.showSidebar {
		lo.mapX++
	}
	lo.mapY = headerHeight
	return lo
}

func (m *Model) resize() {
	lo := m.layout()
	m.view.SetSize(lo.mapW, lo.mapH)
	m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	m.tbl.SetHeight(min(lo.mapH-4, 20))
	m.help.Width = lo.contentW
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// alert is modal
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc":
			m.alert = ""
		}
		return m, nil
	}
	if m.prompting {
		return m.updatePrompt(msg)
	}
	// while the list is filtering, keys belong to it
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showTable {
		switch {
		case key.Matches(msg, m.keys.Table), msg.String() == "esc":
			m.showTable = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Open):
			if row := m.tbl.SelectedRow(); row != nil {
				m.focusShape(row[0])
				m.showTable = false
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	if m.showGeoJSON && msg.String() == "esc" {
		m.showGeoJSON = false
		return m, nil
	}
	// popup actions take precedence over global keys
	if _, pop, ok := m.view.OpenedPopup(); ok {
		if act, ok := pop.Action(msg.String()); ok {
			act.Do()
			m.status = act.Label
			m.afterSession()
			return m, m.syncPrompt()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Circle):
		m.selectTool(session.ToolCircle)
	case key.Matches(msg, m.keys.Triangle):
		m.selectTool(session.ToolTriangle)
	case key.Matches(msg, m.keys.Rectangle):
		m.selectTool(session.ToolRectangle)
	case key.Matches(msg, m.keys.Disarm):
		switch {
		case m.hasPopup():
			m.view.ClosePopup()
			m.showGeoJSON = false
		default:
			m.selectTool(session.ToolNone)
		}
	case key.Matches(msg, m.keys.Delete):
		m.removeUnderCursor()
	case key.Matches(msg, m.keys.GeoJSON):
		if m.hasPopup() {
			m.showGeoJSON = !m.showGeoJSON
		} else {
			m.status = "no popup open"
		}
	case key.Matches(msg, m.keys.ZoomIn):
		m.view.ZoomIn()
		m.status = fmt.Sprintf("zoom: %d", m.view.Zoom())
	case key.Matches(msg, m.keys.ZoomOut):
		m.view.ZoomOut()
		m.status = fmt.Sprintf("zoom: %d", m.view.Zoom())
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		m.resize()
		m.refreshShapes()
	case key.Matches(msg, m.keys.Table):
		m.showTable = true
		m.refreshShapes()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(shapeItem); ok {
				m.focusShape(it.id.String())
			}
		}
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, m.keys.Up) {
			m.view.Pan(0, -1)
		} else {
			m.view.Pan(0, 1)
		}
	case key.Matches(msg, m.keys.Left):
		m.view.Pan(-2, 0)
	case key.Matches(msg, m.keys.Right):
		m.view.Pan(2, 0)
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.prompting = false
		m.prompt.Blur()
		m.report(m.sess.Resolve(m.promptReq.ID, m.prompt.Value()))
		m.afterSession()
		return m, nil
	case "esc":
		m.prompting = false
		m.prompt.Blur()
		m.report(m.sess.Cancel(m.promptReq.ID))
		m.afterSession()
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lo := m.layout()
	cx, cy := msg.X-lo.mapX, msg.Y-lo.mapY
	inMap := cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH
	m.hoverHasGeo = inMap
	if inMap {
		m.hover = m.view.CellToLatLng(cx, cy)
	}
	if m.alert != "" || m.prompting || m.showTable {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		if !inMap {
			return m, nil
		}
		// a press and release on the same cell is a click on the map
		if cx == m.dragFrom[0] && cy == m.dragFrom[1] {
			return m, m.click()
		}
		m.view.EndDrag(m.dragID, m.hover)
		m.status = "vertex moved"
		m.afterSession()
	case !inMap:
		if m.showSidebar && msg.X < lo.sidebarW {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.view.ZoomIn()
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.view.ZoomOut()
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if id, ok := m.view.MarkerAt(cx, cy); ok {
			m.dragging = true
			m.dragID = id
			m.dragFrom = [2]int{cx, cy}
			return m, nil
		}
		return m, m.click()
	}
	return m, nil
}

// click forwards a left click at the hover point to the session.
func (m *Model) click() tea.Cmd {
	_, err := m.sess.MapClicked(m.hover)
	switch {
	case errors.Is(err, session.ErrNoTool):
		if sh, ok := m.sess.ShapeAt(m.hover); ok {
			m.view.OpenPopup(sh.Layer())
		} else {
			m.view.ClosePopup()
			m.showGeoJSON = false
		}
		return nil
	case err != nil:
		m.log.Warn("map click", "err", err)
		return nil
	}
	if t := m.sess.Tool(); t.IsPolygon() {
		if n := len(m.sess.Buffered()); n > 0 {
			m.status = fmt.Sprintf("%s: %d/%d vertices", t, n, t.Arity())
		} else {
			m.status = t.Title() + " added"
		}
	}
	m.afterSession()
	return m.syncPrompt()
}

func (m *Model) selectTool(t session.Tool) {
	m.sess.SelectTool(t)
	if t == session.ToolNone {
		m.status = "no shape selected"
		return
	}
	m.status = t.Title() + " selected"
}

// syncPrompt opens the modal prompt when the session is waiting for input.
func (m *Model) syncPrompt() tea.Cmd {
	req, ok := m.sess.Pending()
	if !ok {
		m.prompting = false
		return nil
	}
	if m.prompting && req.ID == m.promptReq.ID {
		return nil
	}
	m.prompting = true
	m.promptReq = req
	m.prompt.SetValue(req.Default)
	m.prompt.CursorEnd()
	return m.prompt.Focus()
}

// report turns session errors into the alert box.
func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrInvalidRadius):
		m.alert = "Invalid input. Please enter a positive number."
		m.status = err.Error()
	default:
		m.log.Warn("input dispatch", "err", err)
	}
}

func (m *Model) afterSession() {
	m.refreshShapes()
	if !m.hasPopup() {
		m.showGeoJSON = false
	}
}

func (m *Model) removeUnderCursor() {
	if !m.hoverHasGeo {
		return
	}
	sh, ok := m.sess.ShapeAt(m.hover)
	if !ok {
		m.status = "nothing under cursor"
		return
	}
	if m.sess.Remove(sh.ID) {
		m.status = "removed " + sh.ID.String()
	}
	m.afterSession()
}

// focusShape fits the view to the shape with the given id and opens its popup.
func (m *Model) focusShape(id string) {
	for _, sh := range m.sess.Shapes() {
		if sh.ID.String() != id {
			continue
		}
		m.view.FitBounds(sh.Bound())
		m.view.OpenPopup(sh.Layer())
		m.status = sh.Tool.Title() + " " + id
		return
	}
}

func (m Model) hasPopup() bool {
	_, _, ok := m.view.OpenedPopup()
	return ok
}

package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"

	"shapemap/internal/session"
)

// shapeItem is a sidebar entry for one live shape.
type shapeItem struct {
	id    session.ShapeID
	title string
	desc  string
}

func (i shapeItem) Title() string       { return i.title }
func (i shapeItem) Description() string { return i.desc }
func (i shapeItem) FilterValue() string { return i.title }

func sizeOf(sh session.Shape) string {
	if sh.Tool == session.ToolCircle {
		return fmt.Sprintf("r=%.0f m", sh.Radius)
	}
	return fmt.Sprintf("%d vertices", len(sh.Vertices))
}

// refreshShapes rebuilds the sidebar list and the table from the session.
func (m *Model) refreshShapes() {
	shapes := m.sess.Shapes()
	items := make([]list.Item, 0, len(shapes))
	rows := make([]table.Row, 0, len(shapes))
	for _, sh := range shapes {
		anchor := session.FormatLatLng(sh.Anchor())
		items = append(items, shapeItem{
			id:    sh.ID,
			title: sh.ID.String() + " " + sh.Tool.Title(),
			desc:  anchor,
		})
		rows = append(rows, table.Row{
			sh.ID.String(),
			sh.Tool.String(),
			anchor,
			sizeOf(sh),
			session.FormatArea(sh.Area()),
		})
	}
	m.l.SetItems(items)
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

// Package tui is the bubbletea front end: tool buttons, map clicks, marker
// drags, popups and the radius prompt, all routed into a session.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"shapemap/internal/mapview"
	"shapemap/internal/session"
)

const sidebarWidth = 28

type Model struct {
	width  int
	height int

	showSidebar bool
	showTable   bool
	helpVisible bool
	showGeoJSON bool

	status string

	sess *session.Session
	view *mapview.Map
	log  *slog.Logger

	keys keyMap
	help help.Model

	// shape list and table
	l   list.Model
	tbl table.Model

	// radius prompt
	prompting bool
	promptReq session.InputRequest
	prompt    textinput.Model

	// validation alert; blocks input until dismissed
	alert string

	// marker drag
	dragging bool
	dragID   mapview.LayerID
	dragFrom [2]int

	// hover state
	hoverHasGeo bool
	hover       orb.Point
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for dispatch failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// New wires a model to a session and the map it draws on.
func New(s *session.Session, v *mapview.Map, opts ...Option) Model {
	m := Model{
		helpVisible: true,
		status:      "select a shape: c circle, t triangle, r rectangle",
		sess:        s,
		view:        v,
		log:         slog.New(slog.DiscardHandler),
		keys:        defaultKeys(),
		help:        help.New(),
	}
	for _, o := range opts {
		o(&m)
	}
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Shapes"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// table setup
	m.tbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "id", Width: 5},
			{Title: "type", Width: 10},
			{Title: "anchor", Width: 20},
			{Title: "size", Width: 12},
			{Title: "area", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	// prompt setup
	m.prompt = textinput.New()
	m.prompt.Placeholder = "meters"
	m.prompt.CharLimit = 32
	m.prompt.Width = 24
	return m
}

func (m Model) Init() tea.Cmd { return nil }

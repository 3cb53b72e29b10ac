package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Circle    key.Binding
	Triangle  key.Binding
	Rectangle key.Binding
	Disarm    key.Binding

	Delete  key.Binding
	GeoJSON key.Binding

	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding

	Sidebar key.Binding
	Table   key.Binding
	Open    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Circle:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "circle")),
		Triangle:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "triangle")),
		Rectangle: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rectangle")),
		Disarm:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close/disarm")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete under cursor")),
		GeoJSON:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "geojson")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("↑↓←→", "pan")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
		Sidebar:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "shapes")),
		Table:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "table")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Help:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Circle, k.Triangle, k.Rectangle, k.Disarm, k.Right, k.ZoomIn, k.Sidebar, k.Table, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Circle, k.Triangle, k.Rectangle, k.Disarm},
		{k.Right, k.ZoomIn, k.Delete, k.GeoJSON},
		{k.Sidebar, k.Table, k.Open, k.Help, k.Quit},
	}
}

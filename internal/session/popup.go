package session

import (
	"fmt"

	"shapemap/internal/mapview"
)

// popup builds the information box for sh. Its actions call back into the
// session by shape id.
func (s *Session) popup(sh *Shape) mapview.Popup {
	id := sh.ID
	p := mapview.Popup{Title: sh.Tool.Title() + " Information"}
	if sh.Tool == ToolCircle {
		p.Lines = []string{
			fmt.Sprintf("Radius: %s m", formatMeters(sh.Radius)),
			"Location: " + FormatLatLng(sh.Center),
		}
	} else {
		p.Lines = append(p.Lines, "Coordinates:")
		for _, v := range sh.Vertices {
			p.Lines = append(p.Lines, "  "+FormatLatLng(v))
		}
	}
	p.Lines = append(p.Lines, "Area: "+FormatArea(sh.Area()), "Shape: "+id.String())
	p.Actions = []mapview.Action{
		{Key: "e", Label: "Edit", Do: func() { s.Edit(id) }},
		{Key: "x", Label: "Remove", Do: func() { s.Remove(id) }},
	}
	return p
}

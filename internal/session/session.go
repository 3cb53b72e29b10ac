// Package session is the shape session controller: it interprets map clicks
// according to the armed tool, commits shapes onto a Renderer and owns every
// layer it creates until the shape is removed.
package session

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/paulmach/orb"

	"shapemap/internal/mapview"
)

// Renderer is the map a session draws on. *mapview.Map implements it.
type Renderer interface {
	AddCircle(center orb.Point, radius float64, style mapview.Style) mapview.LayerID
	AddPolygon(ring orb.Ring, style mapview.Style) mapview.LayerID
	AddMarker(pos orb.Point) mapview.LayerID
	SetCircle(id mapview.LayerID, center orb.Point, radius float64)
	SetPolygon(id mapview.LayerID, ring orb.Ring)
	SetMarker(id mapview.LayerID, pos orb.Point)
	OnDragEnd(id mapview.LayerID, fn func(orb.Point))
	BindPopup(id mapview.LayerID, p mapview.Popup)
	RemoveLayer(id mapview.LayerID)
	FlyTo(center orb.Point, zoom int)
	FitBounds(b orb.Bound)
}

var _ Renderer = (*mapview.Map)(nil)

// DefaultRadius seeds the placement prompt.
const DefaultRadius = 200

// DefaultStyles colors circles green, triangles red and rectangles blue.
func DefaultStyles() map[Tool]mapview.Style {
	return map[Tool]mapview.Style{
		ToolCircle:    {Color: "green"},
		ToolTriangle:  {Color: "red"},
		ToolRectangle: {Color: "blue"},
	}
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDefaultRadius sets the value prefilled in the placement prompt.
func WithDefaultRadius(r float64) Option {
	return func(s *Session) {
		if r > 0 {
			s.defaultRadius = r
		}
	}
}

// WithStyles overrides per-tool styles; tools missing from m keep theirs.
func WithStyles(m map[Tool]mapview.Style) Option {
	return func(s *Session) {
		for t, st := range m {
			s.styles[t] = st
		}
	}
}

// Session is not safe for concurrent use. All calls are expected from one
// event loop, which is also where the Renderer fires dragend handlers.
type Session struct {
	r   Renderer
	log *slog.Logger

	styles        map[Tool]mapview.Style
	defaultRadius float64

	tool   Tool
	buf    []orb.Point
	shapes []*Shape
	lastID ShapeID

	pending *InputRequest
	lastReq RequestID
}

// New returns an idle session drawing on r.
func New(r Renderer, opts ...Option) *Session {
	s := &Session{
		r:             r,
		log:           slog.New(slog.DiscardHandler),
		styles:        DefaultStyles(),
		defaultRadius: DefaultRadius,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Tool returns the armed tool.
func (s *Session) Tool() Tool { return s.tool }

// State derives the controller state from the armed tool.
func (s *Session) State() State {
	switch {
	case s.tool == ToolCircle:
		return StateAwaitingCircleInput
	case s.tool.IsPolygon():
		return StateAccumulatingPolygon
	}
	return StateIdle
}

// Buffered returns a copy of the vertices clicked for the polygon in progress.
func (s *Session) Buffered() []orb.Point { return append([]orb.Point(nil), s.buf...) }

// Pending returns the open input request, if any.
func (s *Session) Pending() (InputRequest, bool) {
	if s.pending == nil {
		return InputRequest{}, false
	}
	return *s.pending, true
}

// Len returns the number of live shapes.
func (s *Session) Len() int { return len(s.shapes) }

// Shapes returns a snapshot of all live shapes in creation order.
func (s *Session) Shapes() []Shape {
	out := make([]Shape, 0, len(s.shapes))
	for _, sh := range s.shapes {
		out = append(out, sh.clone())
	}
	return out
}

// Shape returns the live shape with the given id.
func (s *Session) Shape(id ShapeID) (Shape, bool) {
	if _, sh := s.find(id); sh != nil {
		return sh.clone(), true
	}
	return Shape{}, false
}

// ShapeAt returns the most recently created shape whose geometry contains p.
func (s *Session) ShapeAt(p orb.Point) (Shape, bool) {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].Contains(p) {
			return s.shapes[i].clone(), true
		}
	}
	return Shape{}, false
}

// SelectTool arms t, clears the vertex buffer and drops any pending request.
func (s *Session) SelectTool(t Tool) {
	s.tool = t
	s.buf = nil
	s.pending = nil
	s.log.Info("tool selected", "tool", t.String())
}

// MapClicked interprets a click at p. With the circle tool it returns the
// radius request that completes the click; with a polygon tool it buffers p
// and commits the polygon once the tool's arity is reached.
func (s *Session) MapClicked(p orb.Point) (*InputRequest, error) {
	if s.pending != nil {
		return nil, ErrInputPending
	}
	switch {
	case s.tool == ToolCircle:
		req := s.request(InputRequest{
			Kind:    PlaceCircle,
			Prompt:  "Enter radius in meters:",
			Default: formatMeters(s.defaultRadius),
			Point:   p,
		})
		return &req, nil
	case s.tool.IsPolygon():
		s.buf = append(s.buf, p)
		if len(s.buf) == s.tool.Arity() {
			s.r.FitBounds(orb.MultiPoint(s.buf).Bound())
			s.commitPolygon(s.tool, s.buf)
			s.buf = nil
		}
		return nil, nil
	}
	s.log.Debug("map click ignored", "lat", p.Lat(), "lng", p.Lon(), "reason", ErrNoTool.Error())
	return nil, ErrNoTool
}

// Resolve completes the pending request with the user's value. An invalid
// placement radius returns ErrInvalidRadius and creates nothing; an invalid
// edit radius is discarded without error.
func (s *Session) Resolve(id RequestID, value string) error {
	req, err := s.take(id)
	if err != nil {
		return err
	}
	radius, perr := ParseRadius(value)
	switch req.Kind {
	case PlaceCircle:
		if perr != nil {
			s.log.Info("circle placement rejected", "err", perr)
			return perr
		}
		s.commitCircle(req.Point, radius)
	case EditRadius:
		if perr != nil {
			s.log.Debug("radius edit discarded", "id", req.Shape.String(), "err", perr)
			return nil
		}
		s.setRadius(req.Shape, radius)
	}
	return nil
}

// Cancel dismisses the pending request. Cancelling a placement counts as
// invalid input.
func (s *Session) Cancel(id RequestID) error {
	req, err := s.take(id)
	if err != nil {
		return err
	}
	if req.Kind == PlaceCircle {
		return fmt.Errorf("%w: cancelled", ErrInvalidRadius)
	}
	return nil
}

// Edit starts editing a shape. For a circle it returns the radius request,
// which supersedes any pending one. For a polygon it re-fits the view,
// re-registers the vertex drag handlers and refreshes the popup. It reports
// false when no live shape has the id.
func (s *Session) Edit(id ShapeID) (*InputRequest, bool) {
	_, sh := s.find(id)
	if sh == nil {
		return nil, false
	}
	if sh.Tool == ToolCircle {
		req := s.request(InputRequest{
			Kind:    EditRadius,
			Prompt:  "Enter new radius in meters:",
			Default: formatMeters(sh.Radius),
			Point:   sh.Center,
			Shape:   id,
		})
		return &req, true
	}
	s.r.FitBounds(sh.Bound())
	s.r.SetPolygon(sh.layer, sh.Vertices)
	s.bindDrag(sh)
	s.refreshPopup(sh)
	return nil, true
}

// Remove detaches the shape's geometry and every marker and forgets it.
func (s *Session) Remove(id ShapeID) bool {
	i, sh := s.find(id)
	if sh == nil {
		return false
	}
	s.drop(i)
	return true
}

// RemoveAt removes one shape of type t located by point: a circle whose
// center equals p exactly, or a polygon whose bound contains p. With
// overlapping bounds the earliest created match goes.
func (s *Session) RemoveAt(t Tool, p orb.Point) (ShapeID, bool) {
	for i, sh := range s.shapes {
		if sh.Tool != t {
			continue
		}
		var hit bool
		if t == ToolCircle {
			hit = sh.Center.Equal(p)
		} else {
			hit = sh.Bound().Contains(p)
		}
		if hit {
			id := sh.ID
			s.drop(i)
			return id, true
		}
	}
	return 0, false
}

// VertexDragged moves vertex index of a polygon, or the center of a circle
// (index 0), re-renders it, re-fits the view and refreshes the popup.
func (s *Session) VertexDragged(id ShapeID, index int, p orb.Point) bool {
	_, sh := s.find(id)
	if sh == nil || index < 0 || index >= len(sh.markers) {
		return false
	}
	if sh.Tool == ToolCircle {
		sh.Center = p
		s.r.SetCircle(sh.layer, sh.Center, sh.Radius)
	} else {
		sh.Vertices[index] = p
		s.r.SetPolygon(sh.layer, sh.Vertices)
	}
	s.r.SetMarker(sh.markers[index], p)
	s.r.FitBounds(sh.Bound())
	s.refreshPopup(sh)
	s.log.Info("vertex moved", "id", id.String(), "index", index, "lat", p.Lat(), "lng", p.Lon())
	return true
}

func (s *Session) commitCircle(center orb.Point, radius float64) {
	s.r.FlyTo(center, ZoomForRadius(radius))
	sh := &Shape{ID: s.nextID(), Tool: ToolCircle, Center: center, Radius: radius}
	sh.layer = s.r.AddCircle(center, radius, s.styles[ToolCircle])
	sh.markers = []mapview.LayerID{s.r.AddMarker(center)}
	s.commit(sh)
}

func (s *Session) commitPolygon(t Tool, vertices []orb.Point) {
	sh := &Shape{ID: s.nextID(), Tool: t, Vertices: append(orb.Ring(nil), vertices...)}
	sh.layer = s.r.AddPolygon(sh.Vertices, s.styles[t])
	for _, v := range sh.Vertices {
		sh.markers = append(sh.markers, s.r.AddMarker(v))
	}
	s.commit(sh)
}

func (s *Session) commit(sh *Shape) {
	s.shapes = append(s.shapes, sh)
	s.bindDrag(sh)
	s.refreshPopup(sh)
	s.log.Info("shape committed", "id", sh.ID.String(), "tool", sh.Tool.String(), "anchor", FormatLatLng(sh.Anchor()))
}

func (s *Session) setRadius(id ShapeID, radius float64) {
	_, sh := s.find(id)
	if sh == nil {
		return
	}
	sh.Radius = radius
	s.r.SetCircle(sh.layer, sh.Center, radius)
	s.r.FlyTo(sh.Center, ZoomForRadius(radius))
	s.refreshPopup(sh)
	s.log.Info("radius changed", "id", id.String(), "radius", radius)
}

// drop detaches every layer of shapes[i] before the record goes, so no
// handle outlives it.
func (s *Session) drop(i int) {
	sh := s.shapes[i]
	s.r.RemoveLayer(sh.layer)
	for _, mk := range sh.markers {
		s.r.RemoveLayer(mk)
	}
	s.shapes = slices.Delete(s.shapes, i, i+1)
	if s.pending != nil && s.pending.Kind == EditRadius && s.pending.Shape == sh.ID {
		s.pending = nil
	}
	s.log.Info("shape removed", "id", sh.ID.String(), "tool", sh.Tool.String())
}

func (s *Session) bindDrag(sh *Shape) {
	id := sh.ID
	for i, mk := range sh.markers {
		s.r.OnDragEnd(mk, func(p orb.Point) { s.VertexDragged(id, i, p) })
	}
}

func (s *Session) refreshPopup(sh *Shape) {
	s.r.BindPopup(sh.layer, s.popup(sh))
}

func (s *Session) find(id ShapeID) (int, *Shape) {
	for i, sh := range s.shapes {
		if sh.ID == id {
			return i, sh
		}
	}
	return -1, nil
}

func (s *Session) nextID() ShapeID {
	s.lastID++
	return s.lastID
}

func (s *Session) request(req InputRequest) InputRequest {
	s.lastReq++
	req.ID = s.lastReq
	s.pending = &req
	return req
}

func (s *Session) take(id RequestID) (InputRequest, error) {
	if s.pending == nil || s.pending.ID != id {
		return InputRequest{}, fmt.Errorf("%w: request %d", ErrNoPendingInput, id)
	}
	req := *s.pending
	s.pending = nil
	return req, nil
}

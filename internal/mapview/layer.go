package mapview

import "github.com/paulmach/orb"

func (m *Map) add(l *layer) LayerID {
	m.nextID++
	l.id = m.nextID
	m.layers[l.id] = l
	m.order = append(m.order, l.id)
	return l.id
}

// AddCircle attaches a circle of radius meters around center.
func (m *Map) AddCircle(center orb.Point, radius float64, style Style) LayerID {
	return m.add(&layer{kind: KindCircle, style: style, center: center, radius: radius})
}

// AddPolygon attaches a polygon. ring is expected open (no closing point).
func (m *Map) AddPolygon(ring orb.Ring, style Style) LayerID {
	return m.add(&layer{kind: KindPolygon, style: style, ring: cloneRing(ring)})
}

// AddMarker attaches a draggable marker.
func (m *Map) AddMarker(pos orb.Point) LayerID {
	return m.add(&layer{kind: KindMarker, style: Style{Color: "marker"}, center: pos})
}

// SetCircle moves and resizes a circle layer.
func (m *Map) SetCircle(id LayerID, center orb.Point, radius float64) {
	if l, ok := m.layers[id]; ok && l.kind == KindCircle {
		l.center, l.radius = center, radius
	}
}

// SetPolygon replaces a polygon layer's vertices.
func (m *Map) SetPolygon(id LayerID, ring orb.Ring) {
	if l, ok := m.layers[id]; ok && l.kind == KindPolygon {
		l.ring = cloneRing(ring)
	}
}

// SetMarker moves a marker layer.
func (m *Map) SetMarker(id LayerID, pos orb.Point) {
	if l, ok := m.layers[id]; ok && l.kind == KindMarker {
		l.center = pos
	}
}

// RemoveLayer detaches a layer and unbinds its popup. Unknown ids are ignored.
func (m *Map) RemoveLayer(id LayerID) {
	if _, ok := m.layers[id]; !ok {
		return
	}
	delete(m.layers, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.opened == id {
		m.opened = 0
	}
}

// Attached reports whether id is currently on the map.
func (m *Map) Attached(id LayerID) bool {
	_, ok := m.layers[id]
	return ok
}

// Len returns the number of attached layers.
func (m *Map) Len() int { return len(m.layers) }

// Circle returns the center and radius of a circle layer.
func (m *Map) Circle(id LayerID) (orb.Point, float64, bool) {
	l, ok := m.layers[id]
	if !ok || l.kind != KindCircle {
		return orb.Point{}, 0, false
	}
	return l.center, l.radius, true
}

// Polygon returns a copy of a polygon layer's open ring.
func (m *Map) Polygon(id LayerID) (orb.Ring, bool) {
	l, ok := m.layers[id]
	if !ok || l.kind != KindPolygon {
		return nil, false
	}
	return cloneRing(l.ring), true
}

// Marker returns a marker layer's position.
func (m *Map) Marker(id LayerID) (orb.Point, bool) {
	l, ok := m.layers[id]
	if !ok || l.kind != KindMarker {
		return orb.Point{}, false
	}
	return l.center, true
}

// BindPopup binds p to a layer and opens it, closing any other popup.
func (m *Map) BindPopup(id LayerID, p Popup) {
	l, ok := m.layers[id]
	if !ok {
		return
	}
	l.popup = &p
	m.opened = id
}

// OpenPopup opens the popup bound to id.
func (m *Map) OpenPopup(id LayerID) bool {
	l, ok := m.layers[id]
	if !ok || l.popup == nil {
		return false
	}
	m.opened = id
	return true
}

// ClosePopup closes the open popup, if any.
func (m *Map) ClosePopup() { m.opened = 0 }

// OpenedPopup returns the open popup and the layer it is bound to.
func (m *Map) OpenedPopup() (LayerID, Popup, bool) {
	if m.opened == 0 {
		return 0, Popup{}, false
	}
	l, ok := m.layers[m.opened]
	if !ok || l.popup == nil {
		return 0, Popup{}, false
	}
	return l.id, *l.popup, true
}

// OnDragEnd registers fn as the marker's dragend handler, replacing any
// previous one.
func (m *Map) OnDragEnd(id LayerID, fn func(orb.Point)) {
	if l, ok := m.layers[id]; ok && l.kind == KindMarker {
		l.dragEnd = fn
	}
}

// EndDrag drops a dragged marker at pos and fires its dragend handler.
func (m *Map) EndDrag(id LayerID, pos orb.Point) {
	l, ok := m.layers[id]
	if !ok || l.kind != KindMarker {
		return
	}
	l.center = pos
	if l.dragEnd != nil {
		l.dragEnd(pos)
	}
}

// MarkerAt returns the topmost marker drawn at or next to cell (cx, cy).
func (m *Map) MarkerAt(cx, cy int) (LayerID, bool) {
	for i := len(m.order) - 1; i >= 0; i-- {
		l := m.layers[m.order[i]]
		if l.kind != KindMarker {
			continue
		}
		mcx, mcy := cellOf(m.toMicro(l.center))
		if mcy == cy && abs(mcx-cx) <= 1 {
			return l.id, true
		}
	}
	return 0, false
}

func cloneRing(r orb.Ring) orb.Ring {
	return append(orb.Ring(nil), r...)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   *kmlDoc        `xml:"Document"`
	Folders    []kmlDoc       `xml:"Folder"`
}

// ParseKML extracts Placemark points, line strings and polygons.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func ParseKML(r io.Reader) (Data, error) {
	var doc kmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Data{}, err
	}
	var d Data
	doc.collect(&d)
	if d.Empty() {
		return Data{}, errors.New("kml: no geometry found")
	}
	return d, nil
}

func (k *kmlDoc) collect(d *Data) {
	for _, pm := range k.Placemarks {
		switch {
		case pm.Point != nil:
			if pts := parseCoords(pm.Point.Coordinates); len(pts) > 0 {
				d.Add(orb.MultiPoint(pts))
			}
		case pm.LineString != nil:
			if ls := parseCoords(pm.LineString.Coordinates); len(ls) >= 2 {
				d.Add(orb.LineString(ls))
			}
		case pm.Polygon != nil:
			outer := parseCoords(pm.Polygon.Outer.Coordinates)
			if len(outer) < 3 {
				continue
			}
			poly := orb.Polygon{orb.Ring(outer)}
			for _, in := range pm.Polygon.Inner {
				if ring := parseCoords(in.Coordinates); len(ring) >= 3 {
					poly = append(poly, orb.Ring(ring))
				}
			}
			d.Add(poly)
		}
	}
	if k.Document != nil {
		k.Document.collect(d)
	}
	for i := range k.Folders {
		k.Folders[i].collect(d)
	}
}

// parseCoords reads whitespace separated "lon,lat[,alt]" tuples.
func parseCoords(s string) []orb.Point {
	var pts []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, orb.Point{lon, lat})
	}
	return pts
}

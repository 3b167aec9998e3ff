package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"flashing-designer/internal/designer/geometry"
)

// ErrNoShapes is returned for documents without any path or polyline.
var ErrNoShapes = errors.New("no path or polyline elements")

// Shape is one open polyline found in an SVG document.
type Shape struct {
	ID     string           `json:"id,omitempty"`
	Points []geometry.Point `json:"points"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG collects every <path> and <polyline> in document order, at any
// nesting depth. Elements whose geometry cannot be parsed are skipped.
func ParseSVG(r io.Reader) ([]Shape, error) {
	decoder := xml.NewDecoder(r)
	var shapes []Shape

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read svg: %w", err)
		}

		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var pts []geometry.Point
		switch el.Name.Local {
		case "path":
			pts, err = ParsePath(attr(el, "d"))
		case "polyline", "polygon":
			pts, err = ParsePath(polylineData(attr(el, "points"), el.Name.Local == "polygon"))
		default:
			continue
		}
		if err != nil {
			continue
		}
		shapes = append(shapes, Shape{ID: attr(el, "id"), Points: pts})
	}

	if len(shapes) == 0 {
		return nil, ErrNoShapes
	}
	return shapes, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// polylineData rewrites a points attribute as path data.
func polylineData(points string, closed bool) string {
	points = strings.TrimSpace(points)
	if points == "" {
		return ""
	}
	d := "M" + points
	if closed {
		d += "Z"
	}
	return d
}

// Import accepts either a whole SVG document or bare path data.
func Import(text string) ([]Shape, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "<") {
		return ParseSVG(strings.NewReader(text))
	}
	pts, err := ParsePath(text)
	if err != nil {
		return nil, err
	}
	return []Shape{{Points: pts}}, nil
}

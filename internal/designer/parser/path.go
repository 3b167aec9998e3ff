package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"flashing-designer/internal/designer/geometry"
)

var (
	ErrEmptyPath   = errors.New("empty path")
	ErrUnsupported = errors.New("unsupported path command")
)

var (
	commandRe   = regexp.MustCompile(`([MmLlHhVvZzCcSsQqTtAa])([^MmLlHhVvZzCcSsQqTtAa]*)`)
	separatorRe = regexp.MustCompile(`[\s,]+`)
)

// ============================================================
// Path Parser
// ============================================================

// ParsePath turns straight-line SVG path data (M, L, H, V, Z in absolute and
// relative form) into profile points. Extra coordinate pairs after M or L are
// implicit line-tos. Curves are rejected.
func ParsePath(d string) ([]geometry.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, ErrEmptyPath
	}

	var points []geometry.Point
	var cur geometry.Point

	for _, match := range commandRe.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords, err := parseCoords(match[2])
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", cmd, err)
		}
		rel := cmd == strings.ToLower(cmd)

		switch strings.ToUpper(cmd) {
		case "M", "L":
			if len(coords) < 2 || len(coords)%2 != 0 {
				return nil, fmt.Errorf("command %s needs coordinate pairs, got %d values", cmd, len(coords))
			}
			for i := 0; i < len(coords); i += 2 {
				next := geometry.Point{X: coords[i], Y: coords[i+1]}
				if rel {
					next = cur.Add(next)
				}
				cur = next
				points = append(points, cur)
			}

		case "H":
			if len(coords) == 0 {
				return nil, fmt.Errorf("command %s needs a value", cmd)
			}
			for _, x := range coords {
				if rel {
					cur.X += x
				} else {
					cur.X = x
				}
				points = append(points, cur)
			}

		case "V":
			if len(coords) == 0 {
				return nil, fmt.Errorf("command %s needs a value", cmd)
			}
			for _, y := range coords {
				if rel {
					cur.Y += y
				} else {
					cur.Y = y
				}
				points = append(points, cur)
			}

		case "Z":
			if len(points) > 0 {
				cur = points[0]
				points = append(points, cur)
			}

		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, cmd)
		}
	}

	if len(points) == 0 {
		return nil, ErrEmptyPath
	}
	return points, nil
}

func parseCoords(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var coords []float64
	for _, part := range separatorRe.Split(s, -1) {
		if part == "" {
			continue
		}
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		coords = append(coords, val)
	}
	return coords, nil
}

// FormatPath writes points as absolute path data.
func FormatPath(points []geometry.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(formatFloat(p.X))
		b.WriteString(" ")
		b.WriteString(formatFloat(p.Y))
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package export renders recorded runs to standalone artifacts.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/kav-sh/orbitals/internal/sim"
)

const fallbackColor = "#00ff88"

// Trail is one body's recorded path, projected onto the XZ plane.
type Trail struct {
	ID     int64
	Name   string
	Color  string
	Points []struct{ X, Y float64 }
}

// Trails extracts per-body XZ paths from run snapshots. Colors come from
// the caller since snapshots carry positions only.
func Trails(snapshots []sim.Snapshot, colors map[int64]string) []Trail {
	byID := make(map[int64]*Trail)
	var order []int64
	for _, snap := range snapshots {
		for _, b := range snap.Bodies {
			tr, ok := byID[b.ID]
			if !ok {
				color := colors[b.ID]
				if color == "" {
					color = fallbackColor
				}
				tr = &Trail{ID: b.ID, Name: b.Name, Color: color}
				byID[b.ID] = tr
				order = append(order, b.ID)
			}
			tr.Points = append(tr.Points, struct{ X, Y float64 }{b.Position.X, b.Position.Z})
		}
	}
	out := make([]Trail, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

// OrbitsToSVG draws every body's trail in its own color, top-down, with a
// marker at the cluster anchor. Bounds fit all trails with 10% padding.
func OrbitsToSVG(trails []Trail, width, height int) string {
	minX, maxX, minY, maxY := bounds(trails)
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// sun anchor marker at world origin
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#ffaf00"/>
`, px(0), py(0)))

	for _, tr := range trails {
		if len(tr.Points) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, tr.Color))
		for i, p := range tr.Points {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(p.X), py(p.Y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(p.X), py(p.Y)))
			}
		}
		sb.WriteString("\"/>\n")
		last := tr.Points[len(tr.Points)-1]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"/>
`, px(last.X), py(last.Y), tr.Color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(trails []Trail) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, tr := range trails {
		for _, p := range tr.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return -1, 1, -1, 1
	}
	// keep the anchor in frame
	minX, maxX = math.Min(minX, 0), math.Max(maxX, 0)
	minY, maxY = math.Min(minY, 0), math.Max(maxY, 0)
	return
}

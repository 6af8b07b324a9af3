package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots per character cell, offset 0x2800.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid with a world-space viewport. World
// coordinates are the simulation's XZ plane; the viewport centers on the
// sun anchor and scales by zoom.
type Canvas struct {
	Width, Height int
	grid          [][]rune
	scale         float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, scale: 8}
	c.grid = make([][]rune, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// SetScale sets sub-pixels per world unit.
func (c *Canvas) SetScale(s float64) {
	if s > 0 {
		c.scale = s
	}
}

func (c *Canvas) Scale() float64 { return c.scale }

// set marks one sub-pixel; the grid is (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
}

// project maps world XZ onto sub-pixel coordinates, centered on the grid.
// Braille sub-pixels are close to square in a typical terminal font, so a
// single scale keeps circles round.
func (c *Canvas) project(wx, wy float64) (int, int) {
	px := float64(c.Width) + wx*c.scale
	py := float64(c.Height*2) + wy*c.scale
	return int(math.Round(px)), int(math.Round(py))
}

// Plot marks the world-space point (x, z).
func (c *Canvas) Plot(wx, wy float64) {
	c.set(c.project(wx, wy))
}

// Ring draws a world-space circle outline, used for the sun's pulse and
// orbit guides.
func (c *Canvas) Ring(cx, cy, radius float64) {
	if radius <= 0 {
		return
	}
	steps := int(8 * radius * c.scale / 4)
	if steps < 12 {
		steps = 12
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Plot(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
	}
}

// Disc fills a small world-space circle, used for body markers.
func (c *Canvas) Disc(cx, cy, radius float64) {
	c.Plot(cx, cy)
	for r := radius / 2; r <= radius; r += radius / 2 {
		c.Ring(cx, cy, r)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

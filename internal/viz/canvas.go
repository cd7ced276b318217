package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights a pixel at (x, y) in sub-pixel coordinates. The canvas
// size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Frame maps world coordinates onto a canvas so scatter data can be
// drawn without manual pixel arithmetic.
type Frame struct {
	Canvas                 *Canvas
	XMin, XMax, YMin, YMax float64
}

// NewFrame wraps a canvas with the world window [xMin,xMax]x[yMin,yMax].
func NewFrame(c *Canvas, xMin, xMax, yMin, yMax float64) *Frame {
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	return &Frame{Canvas: c, XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

func (f *Frame) pixel(x, y float64) (int, int) {
	w := float64(f.Canvas.Width*2 - 1)
	h := float64(f.Canvas.Height*4 - 1)
	px := int((x - f.XMin) / (f.XMax - f.XMin) * w)
	py := int(h - (y-f.YMin)/(f.YMax-f.YMin)*h)
	return px, py
}

// Plot lights the pixel nearest the world point, dropping points
// outside the window.
func (f *Frame) Plot(x, y float64) {
	if x < f.XMin || x > f.XMax || y < f.YMin || y > f.YMax {
		return
	}
	px, py := f.pixel(x, y)
	f.Canvas.Set(px, py)
}

// Scatter plots paired coordinate slices.
func (f *Frame) Scatter(xs, ys []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		f.Plot(xs[i], ys[i])
	}
}

// Polyline connects consecutive in-window points.
func (f *Frame) Polyline(xs, ys []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 1; i < n; i++ {
		x0, y0 := f.pixel(xs[i-1], ys[i-1])
		x1, y1 := f.pixel(xs[i], ys[i])
		f.Canvas.DrawLine(x0, y0, x1, y1)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

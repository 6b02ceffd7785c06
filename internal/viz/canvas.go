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

// Canvas is a monochrome sub-pixel drawing surface backed by Braille
// characters. Each terminal cell holds a 2x4 dot block, so a WxH
// canvas exposes (W*2)x(H*4) addressable pixels.
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

// Set lights the pixel at sub-pixel coordinates (x, y).
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

// Unset clears a pixel.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Clear resets every cell to the empty Braille character.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
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

// Mark lights a small square around a pixel, for vehicle and waypoint
// markers that must stay visible against a trail.
func (c *Canvas) Mark(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
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

// Viewport maps a world-plane window onto canvas sub-pixels. The plan
// view uses east (+x) rightward and north (+z) upward.
type Viewport struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
	W, H       int
}

func NewViewport(minX, maxX, minZ, maxZ float64, c *Canvas) Viewport {
	return Viewport{
		MinX: minX, MaxX: maxX,
		MinZ: minZ, MaxZ: maxZ,
		W: c.Width * 2, H: c.Height * 4,
	}
}

// Map converts world plan coordinates to sub-pixel coordinates. Points
// outside the window land outside the canvas and are dropped by Set.
func (v Viewport) Map(wx, wz float64) (int, int) {
	spanX := v.MaxX - v.MinX
	spanZ := v.MaxZ - v.MinZ
	if spanX == 0 {
		spanX = 1
	}
	if spanZ == 0 {
		spanZ = 1
	}
	x := int((wx - v.MinX) / spanX * float64(v.W-1))
	y := int((1 - (wz-v.MinZ)/spanZ) * float64(v.H-1))
	return x, y
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package export

import (
	"fmt"
	"strings"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/viz"
)

// CanvasToSVG renders a Braille canvas as an SVG dot field, one circle
// per lit sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FlightToSVG draws the flown path over its reference in plan view,
// east (+x) rightward and north (+z) upward. Bounds are shared so the
// two paths stay registered.
func FlightToSVG(flown, ref []dynamics.Vec3, width, height int) string {
	if len(flown) < 2 {
		return ""
	}

	minX, maxX := flown[0].X, flown[0].X
	minZ, maxZ := flown[0].Z, flown[0].Z
	grow := func(pts []dynamics.Vec3) {
		for _, p := range pts {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Z < minZ {
				minZ = p.Z
			}
			if p.Z > maxZ {
				maxZ = p.Z
			}
		}
	}
	grow(flown)
	grow(ref)

	rangeX := maxX - minX
	rangeZ := maxZ - minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minZ -= rangeZ * 0.1
	maxZ += rangeZ * 0.1
	rangeX = maxX - minX
	rangeZ = maxZ - minZ

	path := func(pts []dynamics.Vec3) string {
		var b strings.Builder
		for i, p := range pts {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Z-minZ)/rangeZ*float64(height)
			if i == 0 {
				b.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				b.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		return b.String()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if len(ref) >= 2 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#555555" stroke-width="1" stroke-dasharray="4 3" d="%s"/>
`, path(ref)))
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#00ff00" stroke-width="1.5" d="%s"/>
</svg>`, path(flown)))

	return sb.String()
}

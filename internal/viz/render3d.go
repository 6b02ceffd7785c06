package viz

import (
	"math"
	"sort"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
)

// Camera projects 3D points onto a 2D canvas plane.
type Camera struct {
	Position         dynamics.Vec3
	RotX, RotY, RotZ float64
	Zoom             float64
	Near             float64
}

func NewCamera() *Camera {
	return &Camera{Position: dynamics.Vec3{Z: 5}, Zoom: 1.0, Near: 0.1}
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p dynamics.Vec3) dynamics.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to sub-pixel coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p dynamics.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End dynamics.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                  { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e dynamics.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p dynamics.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                     { w.Edges = w.Edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws a wireframe to the canvas back-to-front.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// AttitudeWireframe builds an X-frame quad silhouette rotated by the
// vehicle's Euler angles, arms along the body diagonals with a nose
// tick so roll and yaw read apart.
func AttitudeWireframe(phi, theta, psi float64) *Wireframe {
	w := NewWireframe()

	arm := 0.9
	d := arm * math.Sqrt2 / 2
	center := dynamics.Vec3{}
	tips := []dynamics.Vec3{
		{X: d, Y: 0, Z: d},
		{X: d, Y: 0, Z: -d},
		{X: -d, Y: 0, Z: -d},
		{X: -d, Y: 0, Z: d},
	}

	for _, tip := range tips {
		p := eulerRotate(tip, phi, theta, psi)
		w.AddEdge(center, p)
		w.AddPoint(p)
	}

	// Nose marker along body +z
	nose := eulerRotate(dynamics.Vec3{Z: arm * 1.3}, phi, theta, psi)
	w.AddEdge(center, nose)

	return w
}

// eulerRotate carries a body point to world axes: roll about the
// forward (+z) axis, pitch about the right (+x) axis, yaw about the
// up (+y) axis, applied in that order.
func eulerRotate(v dynamics.Vec3, phi, theta, psi float64) dynamics.Vec3 {
	cphi, sphi := math.Cos(phi), math.Sin(phi)
	v.X, v.Y = v.X*cphi-v.Y*sphi, v.X*sphi+v.Y*cphi
	cth, sth := math.Cos(theta), math.Sin(theta)
	v.Y, v.Z = v.Y*cth-v.Z*sth, v.Y*sth+v.Z*cth
	cps, sps := math.Cos(psi), math.Sin(psi)
	v.X, v.Z = v.X*cps+v.Z*sps, -v.X*sps+v.Z*cps
	return v
}

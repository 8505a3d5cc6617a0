package viz

import (
	"math"
	"sort"

	"github.com/san-kum/swayrig/internal/rig"
	"github.com/san-kum/swayrig/internal/scene"
)

// Camera orbits the bouquet and projects root-space points onto the canvas.
type Camera struct {
	Distance         float64
	Focus            rig.Vec3
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Focus: rig.Vec3{Y: 1.5}, RotX: -0.3, RotY: 0.5, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint moves p into camera space around Focus.
func (c *Camera) RotatePoint(p rig.Vec3) rig.Vec3 {
	p = p.Add(rig.Vec3{X: -c.Focus.X, Y: -c.Focus.Y, Z: -c.Focus.Z})
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a root-space point to dot coordinates on a sw x sh grid.
// Returns x, y, depth and whether the point lands on the grid.
func (c *Camera) Project(p rig.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p)
	rot = rig.Vec3{X: rot.X * c.Zoom, Y: rot.Y * c.Zoom, Z: rot.Z * c.Zoom}
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 4.0
	x := int(rot.X*scale*pScale) + sw/2
	y := int(-rot.Y*scale*pScale) + sh/2
	return x, y, rot.Z, x >= 0 && x < sw && y >= 0 && y < sh
}

type Edge struct {
	Start, End rig.Vec3
	Bloom      bool
}

// Wireframe is a flat list of stem segments and bloom points.
type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe             { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e rig.Vec3) { w.Edges = append(w.Edges, Edge{Start: s, End: e}) }
func (w *Wireframe) AddBloom(p rig.Vec3) {
	w.Edges = append(w.Edges, Edge{Start: p, End: p, Bloom: true})
}
func (w *Wireframe) Len() int { return len(w.Edges) }

// BouquetWireframe traces every stem of the scene. Stem bases are fanned out
// along the root's X axis, fan units apart, so they do not overlap.
func BouquetWireframe(sc *scene.Scene, fan float64) *Wireframe {
	w := NewWireframe()
	root := sc.Root()
	rootWorld := root.World()
	chains := sc.Chains()
	mid := float64(len(chains)-1) / 2

	for k, chain := range chains {
		base := rootWorld.Apply(rig.Vec3{X: (float64(k) - mid) * fan})
		length := chain.Config().SegmentLength
		for _, seg := range chain.Segments() {
			from := seg.Node.WorldPosition().Add(base)
			to := seg.Node.PointAlong(length).Add(base)
			w.AddEdge(from, to)
		}
		w.AddBloom(chain.Payload().WorldPosition().Add(base))
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	bloom          bool
}

// Render3D draws the wireframe back to front.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Dots()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Bloom})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		switch {
		case e.bloom:
			c.DrawBloom(e.x1, e.y1)
		case e.x1 == e.x2 && e.y1 == e.y2:
			c.Set(e.x1, e.y1)
		default:
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

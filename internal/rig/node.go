package rig

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Mat3 is a row-major rotation matrix.
type Mat3 [3][3]float64

func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func RotationX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func RotationZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Node is a transform in a parent-relative hierarchy. Rotations are applied
// about X then Z, and the node sits Offset units up its parent's Y axis.
type Node struct {
	Name   string
	RotX   float64
	RotZ   float64
	Offset float64

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Add attaches child under n, detaching it from any previous parent.
func (n *Node) Add(child *Node) *Node {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

func (n *Node) Local() Mat3 {
	return RotationX(n.RotX).Mul(RotationZ(n.RotZ))
}

// World composes every ancestor's rotation with this node's.
func (n *Node) World() Mat3 {
	m := Identity()
	for p := n; p != nil; p = p.parent {
		m = p.Local().Mul(m)
	}
	return m
}

// WorldPosition is the node origin in root space.
func (n *Node) WorldPosition() Vec3 {
	if n.parent == nil {
		return Vec3{}
	}
	return n.parent.WorldPosition().Add(n.parent.World().Apply(Vec3{Y: n.Offset}))
}

// PointAlong returns the root-space position of a point length units up the
// node's own Y axis.
func (n *Node) PointAlong(length float64) Vec3 {
	return n.WorldPosition().Add(n.World().Apply(Vec3{Y: length}))
}

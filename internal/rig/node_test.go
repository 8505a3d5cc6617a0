package rig

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestNodeAddReparents(t *testing.T) {
	g := NewWithT(t)

	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.Add(c)
	b.Add(c)

	g.Expect(a.Children()).To(BeEmpty())
	g.Expect(b.Children()).To(ConsistOf(c))
	g.Expect(c.Parent()).To(BeIdenticalTo(b))
}

func TestWorldComposesParentRotations(t *testing.T) {
	g := NewWithT(t)

	root := NewNode("root")
	mid := root.Add(NewNode("mid"))
	tip := mid.Add(NewNode("tip"))
	root.RotX, mid.RotX, tip.RotX = 0.1, 0.2, 0.3

	want := RotationX(0.6)
	got := tip.World()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			g.Expect(got[i][j]).To(BeNumerically("~", want[i][j], 1e-12))
		}
	}
}

func TestPointAlongFollowsBend(t *testing.T) {
	g := NewWithT(t)

	root := NewNode("root")
	child := root.Add(NewNode("child"))
	child.Offset = 1

	straight := child.PointAlong(1)
	g.Expect(straight.Y).To(BeNumerically("~", 2, 1e-12))

	root.RotZ = math.Pi / 2
	bent := child.PointAlong(1)
	g.Expect(bent.X).To(BeNumerically("~", -2, 1e-12))
	g.Expect(bent.Y).To(BeNumerically("~", 0, 1e-12))
}

func TestPointerClamped(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Pointer{X: 3, Y: -0.5}.Clamped()).To(Equal(Pointer{X: 1, Y: -0.5}))
}

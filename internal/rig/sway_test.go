package rig_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/rig"
)

var _ = Describe("Sway", func() {
	var (
		root *rig.Node
		sway *rig.Sway
	)

	BeforeEach(func() {
		root = rig.NewNode("bouquet")
		var err error
		sway, err = rig.NewSway(root, rig.DefaultSwayConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("requires a node and sane parameters", func() {
		_, err := rig.NewSway(nil, rig.DefaultSwayConfig())
		Expect(err).To(MatchError(dynamo.ErrNilNode))

		_, err = rig.NewSway(root, rig.SwayConfig{Stiffness: 0, PointerInfluence: 0.05})
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))

		_, err = rig.NewSway(root, rig.SwayConfig{Stiffness: 4, PointerInfluence: -1})
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("leans away from the pointer's vertical and toward its horizontal", func() {
		p := rig.Pointer{X: 0.5, Y: 1}
		for i := 0; i < 600; i++ {
			sway.Update(frame, p)
		}
		x, z := sway.Rotation()
		Expect(x).To(BeNumerically("~", -0.05, 1e-6))
		Expect(z).To(BeNumerically("~", 0.025, 1e-6))
		Expect(root.RotX).To(Equal(x))
		Expect(root.RotZ).To(Equal(z))
	})

	It("clamps the pointer into the unit square", func() {
		sway.Update(frame, rig.Pointer{X: 40, Y: -40})
		Expect(sway.Side().Target).To(BeNumerically("~", 0.05, 1e-12))
		Expect(sway.Forward().Target).To(BeNumerically("~", 0.05, 1e-12))
	})

	It("kicks asymmetrically and settles back", func() {
		sway.Kick(rig.DefaultKickForce)
		Expect(sway.Forward().Velocity).To(Equal(2.0))
		Expect(sway.Side().Velocity).To(Equal(1.0))
		Expect(sway.Forward().Value).To(BeZero())

		sway.Update(frame, rig.Pointer{})
		x, z := sway.Rotation()
		Expect(x).To(BeNumerically(">", z))
		Expect(z).To(BeNumerically(">", 0))

		for i := 0; i < 600; i++ {
			sway.Update(frame, rig.Pointer{})
		}
		x, z = sway.Rotation()
		Expect(x).To(BeNumerically("~", 0, 1e-6))
		Expect(z).To(BeNumerically("~", 0, 1e-6))
	})

	It("snaps to rest", func() {
		sway.Kick(3)
		sway.Update(frame, rig.Pointer{X: 1})
		sway.Snap()
		x, z := sway.Rotation()
		Expect(x).To(BeZero())
		Expect(z).To(BeZero())
		Expect(sway.Forward().Velocity).To(BeZero())
		Expect(sway.Side().Target).To(BeZero())
	})
})

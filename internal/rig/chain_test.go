package rig_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/rig"
	"github.com/san-kum/swayrig/internal/wind"
)

const frame = 1.0 / 60.0

var _ = Describe("Chain", func() {
	var w *wind.Wind

	BeforeEach(func() {
		var err error
		w, err = wind.New(0.8, 0.04)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects a missing wind source", func() {
			_, err := rig.NewChain(nil, rig.DefaultChainConfig(), nil)
			Expect(err).To(MatchError(dynamo.ErrNilWind))
		})

		It("rejects negative segment counts and bends", func() {
			cfg := rig.DefaultChainConfig()
			cfg.Segments = -1
			_, err := rig.NewChain(w, cfg, nil)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))

			cfg = rig.DefaultChainConfig()
			cfg.MaxBend = -0.1
			_, err = rig.NewChain(w, cfg, nil)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("rejects a non-positive tip stiffness", func() {
			cfg := rig.DefaultChainConfig()
			cfg.BaseStiffness = 0
			_, err := rig.NewChain(w, cfg, nil)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("grades stiffness and wind influence from anchor to tip", func() {
			cfg := rig.DefaultChainConfig()
			cfg.Segments = 4
			chain, err := rig.NewChain(w, cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			segs := chain.Segments()
			Expect(segs).To(HaveLen(4))
			for i, seg := range segs {
				Expect(seg.Index).To(Equal(i))
				Expect(seg.Stiffness).To(BeNumerically("==", 6+float64(3-i)*2))
				Expect(seg.X.Stiffness()).To(Equal(seg.Stiffness))
				Expect(seg.WindInfluence).To(BeNumerically("~", float64(i+1)/4, 1e-12))
			}
			Expect(chain.Bound()).To(BeNumerically("~", 0.15/4, 1e-12))
		})

		It("nests segment nodes anchor first with the payload innermost", func() {
			payload := rig.NewNode("flower")
			chain, err := rig.NewChain(w, rig.DefaultChainConfig(), payload)
			Expect(err).NotTo(HaveOccurred())

			segs := chain.Segments()
			Expect(chain.Root()).To(BeIdenticalTo(segs[0].Node))
			Expect(segs[0].Node.Parent()).To(BeNil())
			Expect(segs[1].Node.Parent()).To(BeIdenticalTo(segs[0].Node))
			Expect(segs[2].Node.Parent()).To(BeIdenticalTo(segs[1].Node))
			Expect(payload.Parent()).To(BeIdenticalTo(segs[2].Node))
			Expect(payload.Depth()).To(Equal(3))
		})

		It("treats zero segments as a motionless passthrough", func() {
			cfg := rig.DefaultChainConfig()
			cfg.Segments = 0
			payload := rig.NewNode("flower")
			chain, err := rig.NewChain(w, cfg, payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(chain.Root()).To(BeIdenticalTo(payload))

			for i := 0; i < 120; i++ {
				w.Advance(frame)
				chain.Update(frame)
			}
			Expect(payload.RotX).To(BeZero())
			Expect(payload.RotZ).To(BeZero())
		})
	})

	Describe("update", func() {
		It("drives each spring toward the phase-shifted wind target", func() {
			cfg := rig.DefaultChainConfig()
			cfg.SpatialOffset = 0.3
			chain, err := rig.NewChain(w, cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			w.Advance(frame)
			chain.Update(frame)

			for i, seg := range chain.Segments() {
				phase := w.Time + 0.3 + float64(i)*0.5
				Expect(seg.X.Target).To(BeNumerically("~", math.Sin(phase)*w.X*seg.WindInfluence*10, 1e-15))
				Expect(seg.Z.Target).To(BeNumerically("~", math.Cos(phase*0.7)*w.Z*seg.WindInfluence*10, 1e-15))
			}
		})

		It("clamps only the applied rotation, never the spring", func() {
			strong, err := wind.New(1.5, 1.0)
			Expect(err).NotTo(HaveOccurred())
			chain, err := rig.NewChain(strong, rig.DefaultChainConfig(), nil)
			Expect(err).NotTo(HaveOccurred())

			bound := chain.Bound()
			exceeded := false
			for i := 0; i < 600; i++ {
				strong.Advance(frame)
				chain.Update(frame)
				for j, seg := range chain.Segments() {
					x, z := chain.Rotation(j)
					Expect(math.Abs(x)).To(BeNumerically("<=", bound))
					Expect(math.Abs(z)).To(BeNumerically("<=", bound))
					if math.Abs(seg.X.Value) > bound || math.Abs(seg.Z.Value) > bound {
						exceeded = true
					}
				}
			}
			Expect(exceeded).To(BeTrue(), "springs should store motion beyond the visual clamp")
		})

		It("does not move without wind", func() {
			still, err := wind.New(0.8, 0)
			Expect(err).NotTo(HaveOccurred())
			chain, err := rig.NewChain(still, rig.DefaultChainConfig(), nil)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 60; i++ {
				still.Advance(frame)
				chain.Update(frame)
			}
			for j := range chain.Segments() {
				x, z := chain.Rotation(j)
				Expect(x).To(BeZero())
				Expect(z).To(BeZero())
			}
		})

		It("desynchronizes chains with different spatial offsets", func() {
			a, _ := rig.NewChain(w, rig.DefaultChainConfig(), nil)
			cfg := rig.DefaultChainConfig()
			cfg.SpatialOffset = 1.7
			b, _ := rig.NewChain(w, cfg, nil)

			diff := 0.0
			for i := 0; i < 120; i++ {
				w.Advance(frame)
				a.Update(frame)
				b.Update(frame)
				diff = math.Max(diff, math.Abs(a.Segments()[2].X.Value-b.Segments()[2].X.Value))
			}
			Expect(diff).To(BeNumerically(">", 1e-3))
		})

		It("straightens on snap", func() {
			chain, _ := rig.NewChain(w, rig.DefaultChainConfig(), nil)
			for i := 0; i < 90; i++ {
				w.Advance(frame)
				chain.Update(frame)
			}
			chain.Snap()
			for j, seg := range chain.Segments() {
				x, z := chain.Rotation(j)
				Expect([]float64{x, z, seg.X.Value, seg.X.Velocity, seg.Z.Value, seg.Z.Velocity}).To(HaveEach(BeZero()))
			}
		})
	})

	It("keeps a three segment stem within bounds with a tip-heavy gradient", func() {
		chain, err := rig.NewChain(w, rig.ChainConfig{Segments: 3, BaseStiffness: 6, MaxBend: 0.15}, nil)
		Expect(err).NotTo(HaveOccurred())

		var peak [3]float64
		var sumSq [3]float64
		for i := 0; i < 300; i++ {
			w.Advance(frame)
			chain.Update(frame)
			for j, seg := range chain.Segments() {
				x, z := chain.Rotation(j)
				Expect(x).To(BeNumerically(">=", -0.05))
				Expect(x).To(BeNumerically("<=", 0.05))
				Expect(z).To(BeNumerically(">=", -0.05))
				Expect(z).To(BeNumerically("<=", 0.05))
				peak[j] = math.Max(peak[j], math.Max(math.Abs(seg.X.Value), math.Abs(seg.Z.Value)))
				sumSq[j] += x*x + z*z
			}
		}
		Expect(peak[2]).To(BeNumerically(">", peak[0]))
		Expect(sumSq[2]).To(BeNumerically(">", sumSq[0]))
	})
})

// Package scene assembles a bouquet: one wind source, one pointer-driven root
// and a set of wind-driven stems hanging from it.
package scene

import (
	"fmt"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/rig"
	"github.com/san-kum/swayrig/internal/spring"
	"github.com/san-kum/swayrig/internal/wind"
)

type Options struct {
	WindSpeed    float64
	WindStrength float64
	Stems        int
	// Spread is added to the spatial offset of each successive stem.
	Spread        float64
	Stem          rig.ChainConfig
	Sway          rig.SwayConfig
	MaxFrameDelta float64
}

func DefaultOptions() Options {
	stem := rig.DefaultChainConfig()
	stem.SegmentLength = 1
	return Options{
		WindSpeed:     wind.DefaultSpeed,
		WindStrength:  wind.DefaultStrength,
		Stems:         1,
		Spread:        1.3,
		Stem:          stem,
		Sway:          rig.DefaultSwayConfig(),
		MaxFrameDelta: spring.MaxFrameDelta,
	}
}

// Scene owns every rig it builds. It is driven by a single frame loop.
type Scene struct {
	opts   Options
	wind   *wind.Wind
	root   *rig.Node
	sway   *rig.Sway
	chains []*rig.Chain
	time   float64
	frames int
}

func New(opts Options) (*Scene, error) {
	if opts.Stems < 0 {
		return nil, fmt.Errorf("stem count %d: %w", opts.Stems, dynamo.ErrParameterBounds)
	}
	w, err := wind.New(opts.WindSpeed, opts.WindStrength)
	if err != nil {
		return nil, err
	}

	root := rig.NewNode("bouquet")
	sway, err := rig.NewSway(root, opts.Sway)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		opts:   opts,
		wind:   w,
		root:   root,
		sway:   sway,
		chains: make([]*rig.Chain, 0, opts.Stems),
	}

	for k := 0; k < opts.Stems; k++ {
		cfg := opts.Stem
		cfg.SpatialOffset += float64(k) * opts.Spread
		chain, err := rig.NewChain(w, cfg, rig.NewNode(fmt.Sprintf("flower-%d", k)))
		if err != nil {
			return nil, fmt.Errorf("stem %d: %w", k, err)
		}
		root.Add(chain.Root())
		s.chains = append(s.chains, chain)
	}

	return s, nil
}

// Frame advances the scene by one rendered frame. The delta is clamped to
// MaxFrameDelta, the wind moves first, then every stem, then the root.
func (s *Scene) Frame(delta float64, p rig.Pointer) float64 {
	dt := spring.ClampDelta(delta, s.opts.MaxFrameDelta)

	s.wind.Advance(dt)
	for _, c := range s.chains {
		c.Update(dt)
	}
	s.sway.Update(dt, p)

	s.time += dt
	s.frames++
	return dt
}

// Kick bounces the whole bouquet from the root.
func (s *Scene) Kick(force float64) {
	s.sway.Kick(force)
}

// Reset puts every spring at rest without rebuilding the hierarchy.
func (s *Scene) Reset() {
	s.sway.Snap()
	for _, c := range s.chains {
		c.Snap()
	}
}

// State flattens the applied rotations: root x, root z, then x, z for each
// segment of each stem.
func (s *Scene) State() dynamo.State {
	x := make(dynamo.State, 0, s.Dim())
	rx, rz := s.sway.Rotation()
	x = append(x, rx, rz)
	for _, c := range s.chains {
		for i := 0; i < c.Len(); i++ {
			sx, sz := c.Rotation(i)
			x = append(x, sx, sz)
		}
	}
	return x
}

func (s *Scene) Dim() int {
	n := 2
	for _, c := range s.chains {
		n += 2 * c.Len()
	}
	return n
}

// Labels names each component of State.
func (s *Scene) Labels() []string {
	labels := make([]string, 0, s.Dim())
	labels = append(labels, "root.x", "root.z")
	for k, c := range s.chains {
		for i := 0; i < c.Len(); i++ {
			labels = append(labels, fmt.Sprintf("stem%d.seg%d.x", k, i), fmt.Sprintf("stem%d.seg%d.z", k, i))
		}
	}
	return labels
}

// Bounds gives the clamp applied to each component of State; zero means
// unclamped.
func (s *Scene) Bounds() []float64 {
	b := make([]float64, 0, s.Dim())
	b = append(b, 0, 0)
	for _, c := range s.chains {
		for i := 0; i < c.Len(); i++ {
			b = append(b, c.Bound(), c.Bound())
		}
	}
	return b
}

func (s *Scene) Wind() *wind.Wind     { return s.wind }
func (s *Scene) Root() *rig.Node      { return s.root }
func (s *Scene) Sway() *rig.Sway      { return s.sway }
func (s *Scene) Chains() []*rig.Chain { return s.chains }
func (s *Scene) Options() Options     { return s.opts }
func (s *Scene) Time() float64        { return s.time }
func (s *Scene) Frames() int          { return s.frames }

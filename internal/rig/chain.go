package rig

import (
	"fmt"
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/spring"
	"github.com/san-kum/swayrig/internal/wind"
)

const (
	DefaultSegments      = 3
	DefaultBaseStiffness = 6.0
	DefaultMaxBend       = 0.15

	// stiffnessStep is added per segment of distance from the tip.
	stiffnessStep = 2.0
	phaseStep     = 0.5
	windGain      = 10.0
)

type ChainConfig struct {
	Segments      int
	BaseStiffness float64
	MaxBend       float64
	SpatialOffset float64
	SegmentLength float64
}

func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		Segments:      DefaultSegments,
		BaseStiffness: DefaultBaseStiffness,
		MaxBend:       DefaultMaxBend,
	}
}

// Segment is one joint of a chain. Index 0 is the anchor.
type Segment struct {
	Index         int
	Stiffness     float64
	WindInfluence float64
	X, Z          *spring.Spring
	Node          *Node
}

// Chain approximates a flexible stem with nested spring-driven joints. Each
// segment's node is the parent of the next, so rotations compound toward the
// tip, and the payload hangs from the last segment.
type Chain struct {
	cfg      ChainConfig
	wind     *wind.Wind
	segments []Segment
	payload  *Node
	bound    float64
}

// NewChain builds the segment hierarchy around payload. A nil payload gets an
// empty node. Zero segments is valid and leaves the payload unrotated.
func NewChain(w *wind.Wind, cfg ChainConfig, payload *Node) (*Chain, error) {
	if w == nil {
		return nil, dynamo.ErrNilWind
	}
	if cfg.Segments < 0 {
		return nil, fmt.Errorf("segment count %d: %w", cfg.Segments, dynamo.ErrParameterBounds)
	}
	if cfg.MaxBend < 0 || math.IsNaN(cfg.MaxBend) {
		return nil, fmt.Errorf("max bend %v: %w", cfg.MaxBend, dynamo.ErrParameterBounds)
	}
	if payload == nil {
		payload = NewNode("payload")
	}

	n := cfg.Segments
	c := &Chain{
		cfg:      cfg,
		wind:     w,
		segments: make([]Segment, n),
		payload:  payload,
	}
	if n > 0 {
		c.bound = cfg.MaxBend / float64(n)
	}

	var parent *Node
	for i := 0; i < n; i++ {
		stiffness := cfg.BaseStiffness + float64(n-1-i)*stiffnessStep
		sx, err := spring.New(0, stiffness)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		sz, _ := spring.New(0, stiffness)

		node := NewNode(fmt.Sprintf("segment-%d", i))
		if parent != nil {
			node.Offset = cfg.SegmentLength
			parent.Add(node)
		}
		parent = node

		c.segments[i] = Segment{
			Index:         i,
			Stiffness:     stiffness,
			WindInfluence: float64(i+1) / float64(n),
			X:             sx,
			Z:             sz,
			Node:          node,
		}
	}
	if parent != nil {
		payload.Offset = cfg.SegmentLength
		parent.Add(payload)
	}

	return c, nil
}

// Update pulls every segment toward its wind target and writes the clamped
// rotation to its node. The wind must already be advanced for this frame.
func (c *Chain) Update(dt float64) {
	w := c.wind
	for i := range c.segments {
		seg := &c.segments[i]
		phase := w.Time + c.cfg.SpatialOffset + float64(i)*phaseStep

		seg.X.Target = math.Sin(phase) * w.X * seg.WindInfluence * windGain
		seg.Z.Target = math.Cos(phase*0.7) * w.Z * seg.WindInfluence * windGain

		seg.X.Update(dt)
		seg.Z.Update(dt)

		// Only the applied rotation is clamped; the springs keep their state.
		seg.Node.RotX = clamp(seg.X.Value, c.bound)
		seg.Node.RotZ = clamp(seg.Z.Value, c.bound)
	}
}

// Snap puts every spring at rest on zero and straightens the stem.
func (c *Chain) Snap() {
	for i := range c.segments {
		seg := &c.segments[i]
		seg.X.Snap(0)
		seg.Z.Snap(0)
		seg.Node.RotX, seg.Node.RotZ = 0, 0
	}
}

func (c *Chain) Len() int            { return len(c.segments) }
func (c *Chain) Segments() []Segment { return c.segments }
func (c *Chain) Payload() *Node      { return c.payload }
func (c *Chain) Config() ChainConfig { return c.cfg }
func (c *Chain) Wind() *wind.Wind    { return c.wind }
func (c *Chain) Bound() float64      { return c.bound }
func (c *Chain) Rotation(i int) (float64, float64) {
	n := c.segments[i].Node
	return n.RotX, n.RotZ
}

// Root is the outermost node: segment 0, or the payload for an empty chain.
func (c *Chain) Root() *Node {
	if len(c.segments) == 0 {
		return c.payload
	}
	return c.segments[0].Node
}

func clamp(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}

package rig

import (
	"fmt"
	"math"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/spring"
)

const (
	DefaultSwayStiffness    = 4.0
	DefaultPointerInfluence = 0.05
	DefaultKickForce        = 2.0
)

// Pointer is a normalized pointer position, each axis in [-1, 1].
type Pointer struct {
	X, Y float64
}

func (p Pointer) Clamped() Pointer {
	return Pointer{X: clamp(p.X, 1), Y: clamp(p.Y, 1)}
}

type SwayConfig struct {
	Stiffness        float64
	PointerInfluence float64
}

func DefaultSwayConfig() SwayConfig {
	return SwayConfig{Stiffness: DefaultSwayStiffness, PointerInfluence: DefaultPointerInfluence}
}

// Sway leans a single root node toward the pointer and absorbs kicks.
type Sway struct {
	cfg     SwayConfig
	node    *Node
	forward *spring.Spring
	side    *spring.Spring
}

func NewSway(node *Node, cfg SwayConfig) (*Sway, error) {
	if node == nil {
		return nil, dynamo.ErrNilNode
	}
	if cfg.PointerInfluence < 0 || math.IsNaN(cfg.PointerInfluence) {
		return nil, fmt.Errorf("pointer influence %v: %w", cfg.PointerInfluence, dynamo.ErrParameterBounds)
	}
	forward, err := spring.New(0, cfg.Stiffness)
	if err != nil {
		return nil, fmt.Errorf("sway: %w", err)
	}
	side, _ := spring.New(0, cfg.Stiffness)
	return &Sway{cfg: cfg, node: node, forward: forward, side: side}, nil
}

// Update leans toward the pointer and writes both axes to the node unclamped.
func (s *Sway) Update(dt float64, p Pointer) {
	p = p.Clamped()
	s.forward.Target = -p.Y * s.cfg.PointerInfluence
	s.side.Target = p.X * s.cfg.PointerInfluence

	s.forward.Update(dt)
	s.side.Update(dt)

	s.node.RotX = s.forward.Value
	s.node.RotZ = s.side.Value
}

// Kick bounces the root: force on the forward tilt, half of it sideways.
func (s *Sway) Kick(force float64) {
	s.forward.Impulse(force)
	s.side.Impulse(force * 0.5)
}

func (s *Sway) Snap() {
	s.forward.Snap(0)
	s.side.Snap(0)
	s.node.RotX, s.node.RotZ = 0, 0
}

func (s *Sway) Node() *Node             { return s.node }
func (s *Sway) Config() SwayConfig      { return s.cfg }
func (s *Sway) Forward() *spring.Spring { return s.forward }
func (s *Sway) Side() *spring.Spring    { return s.side }

func (s *Sway) Rotation() (float64, float64) {
	return s.node.RotX, s.node.RotZ
}

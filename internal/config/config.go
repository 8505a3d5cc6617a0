package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/swayrig/internal/dynamo"
	"github.com/san-kum/swayrig/internal/rig"
	"github.com/san-kum/swayrig/internal/scene"
	"github.com/san-kum/swayrig/internal/spring"
	"github.com/san-kum/swayrig/internal/wind"
)

const (
	DefaultDt        = 1.0 / 60.0
	DefaultDuration  = 5.0
	DefaultStems     = 1
	DefaultSpread    = 1.3
	DefaultSegLength = 1.0
	DefaultRadius    = 0.6
	DefaultPeriod    = 4.0
)

type Config struct {
	Name    string        `yaml:"name,omitempty"`
	Tier    string        `yaml:"tier,omitempty"`
	Stems   int           `yaml:"stems"`
	Wind    WindConfig    `yaml:"wind"`
	Stem    StemConfig    `yaml:"stem"`
	Sway    SwayConfig    `yaml:"sway"`
	Sim     SimConfig     `yaml:"sim"`
	Pointer PointerConfig `yaml:"pointer"`
}

type WindConfig struct {
	Speed    float64 `yaml:"speed"`
	Strength float64 `yaml:"strength"`
}

type StemConfig struct {
	Segments      int     `yaml:"segments"`
	BaseStiffness float64 `yaml:"base_stiffness"`
	MaxBend       float64 `yaml:"max_bend"`
	SpatialOffset float64 `yaml:"spatial_offset"`
	Spread        float64 `yaml:"spread"`
	SegmentLength float64 `yaml:"segment_length"`
}

type SwayConfig struct {
	Stiffness        float64 `yaml:"stiffness"`
	PointerInfluence float64 `yaml:"pointer_influence"`
	KickForce        float64 `yaml:"kick_force"`
}

type SimConfig struct {
	Dt            float64   `yaml:"dt"`
	Duration      float64   `yaml:"duration"`
	MaxFrameDelta float64   `yaml:"max_frame_delta"`
	Seed          int64     `yaml:"seed"`
	Kicks         []float64 `yaml:"kicks,omitempty"`
}

// PointerConfig scripts the pointer for headless runs. Path is one of
// "still", "orbit" or "jitter".
type PointerConfig struct {
	Path   string  `yaml:"path"`
	Radius float64 `yaml:"radius"`
	Period float64 `yaml:"period"`
}

func DefaultConfig() *Config {
	return &Config{
		Tier:  "medium",
		Stems: DefaultStems,
		Wind: WindConfig{
			Speed:    wind.DefaultSpeed,
			Strength: wind.DefaultStrength,
		},
		Stem: StemConfig{
			Segments:      TierSegments["medium"],
			BaseStiffness: rig.DefaultBaseStiffness,
			MaxBend:       rig.DefaultMaxBend,
			Spread:        DefaultSpread,
			SegmentLength: DefaultSegLength,
		},
		Sway: SwayConfig{
			Stiffness:        rig.DefaultSwayStiffness,
			PointerInfluence: rig.DefaultPointerInfluence,
			KickForce:        rig.DefaultKickForce,
		},
		Sim: SimConfig{
			Dt:            DefaultDt,
			Duration:      DefaultDuration,
			MaxFrameDelta: spring.MaxFrameDelta,
		},
		Pointer: PointerConfig{
			Path:   "still",
			Radius: DefaultRadius,
			Period: DefaultPeriod,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range field, wrapping
// dynamo.ErrParameterBounds.
func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		name string
		val  any
	}{
		{c.Stems >= 0, "stems", c.Stems},
		{c.Wind.Speed >= 0, "wind.speed", c.Wind.Speed},
		{c.Wind.Strength >= 0, "wind.strength", c.Wind.Strength},
		{c.Stem.Segments >= 0, "stem.segments", c.Stem.Segments},
		{c.Stem.Segments == 0 || c.Stem.BaseStiffness > 0, "stem.base_stiffness", c.Stem.BaseStiffness},
		{c.Stem.MaxBend >= 0, "stem.max_bend", c.Stem.MaxBend},
		{c.Sway.Stiffness > 0, "sway.stiffness", c.Sway.Stiffness},
		{c.Sway.PointerInfluence >= 0, "sway.pointer_influence", c.Sway.PointerInfluence},
		{c.Sim.Dt > 0 && !math.IsInf(c.Sim.Dt, 0), "sim.dt", c.Sim.Dt},
		{c.Sim.Duration > 0, "sim.duration", c.Sim.Duration},
		{c.Sim.MaxFrameDelta >= 0, "sim.max_frame_delta", c.Sim.MaxFrameDelta},
		{c.Sim.MaxFrameDelta == 0 || c.Sim.Dt <= c.Sim.MaxFrameDelta, "sim.dt", c.Sim.Dt},
		{validPath(c.Pointer.Path), "pointer.path", c.Pointer.Path},
		{c.Pointer.Path != "orbit" || c.Pointer.Period > 0, "pointer.period", c.Pointer.Period},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%s = %v: %w", chk.name, chk.val, dynamo.ErrParameterBounds)
		}
	}
	return nil
}

func validPath(p string) bool {
	switch p {
	case "", "still", "orbit", "jitter":
		return true
	}
	return false
}

// SceneOptions converts the file layout into scene construction options.
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		WindSpeed:    c.Wind.Speed,
		WindStrength: c.Wind.Strength,
		Stems:        c.Stems,
		Spread:       c.Stem.Spread,
		Stem: rig.ChainConfig{
			Segments:      c.Stem.Segments,
			BaseStiffness: c.Stem.BaseStiffness,
			MaxBend:       c.Stem.MaxBend,
			SpatialOffset: c.Stem.SpatialOffset,
			SegmentLength: c.Stem.SegmentLength,
		},
		Sway: rig.SwayConfig{
			Stiffness:        c.Sway.Stiffness,
			PointerInfluence: c.Sway.PointerInfluence,
		},
		MaxFrameDelta: c.Sim.MaxFrameDelta,
	}
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Sim.Dt,
		Duration:      c.Sim.Duration,
		Seed:          c.Sim.Seed,
		MaxFrameDelta: c.Sim.MaxFrameDelta,
		Kicks:         append([]float64(nil), c.Sim.Kicks...),
		KickForce:     c.Sway.KickForce,
		ValidateState: true,
	}
}

// GetParams exposes the tunable numeric fields by dotted name.
func (c *Config) GetParams() map[string]float64 {
	return map[string]float64{
		"wind.speed":             c.Wind.Speed,
		"wind.strength":          c.Wind.Strength,
		"stem.base_stiffness":    c.Stem.BaseStiffness,
		"stem.max_bend":          c.Stem.MaxBend,
		"stem.spread":            c.Stem.Spread,
		"sway.stiffness":         c.Sway.Stiffness,
		"sway.pointer_influence": c.Sway.PointerInfluence,
	}
}

func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "wind.speed":
		c.Wind.Speed = value
	case "wind.strength":
		c.Wind.Strength = value
	case "stem.base_stiffness":
		c.Stem.BaseStiffness = value
	case "stem.max_bend":
		c.Stem.MaxBend = value
	case "stem.spread":
		c.Stem.Spread = value
	case "sway.stiffness":
		c.Sway.Stiffness = value
	case "sway.pointer_influence":
		c.Sway.PointerInfluence = value
	default:
		return fmt.Errorf("unknown parameter %q: %w", name, dynamo.ErrParameterBounds)
	}
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Sim.Kicks = append([]float64(nil), c.Sim.Kicks...)
	return &cp
}

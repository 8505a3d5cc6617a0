package config

import "sort"

// TierSegments maps a device performance tier to a stem segment count.
var TierSegments = map[string]int{
	"low":    2,
	"medium": 3,
	"high":   4,
}

// Presets are partial overrides applied on top of DefaultConfig, grouped by
// what they tune.
var Presets = map[string]map[string]func(*Config){
	"tier": {
		"low":    tier("low"),
		"medium": tier("medium"),
		"high":   tier("high"),
	},
	"wind": {
		"calm": func(c *Config) {
			c.Wind = WindConfig{Speed: 0.4, Strength: 0.015}
		},
		"breezy": func(c *Config) {
			c.Wind = WindConfig{Speed: 0.8, Strength: 0.04}
		},
		"gusty": func(c *Config) {
			c.Wind = WindConfig{Speed: 1.6, Strength: 0.09}
		},
	},
	"scene": {
		"bouquet": func(c *Config) {
			c.Stems = 5
			c.Pointer.Path = "orbit"
		},
		"reveal": func(c *Config) {
			c.Stems = 3
			c.Sim.Duration = 6
			c.Sim.Kicks = []float64{3.5}
		},
		"single": func(c *Config) {
			c.Stems = 1
		},
	},
}

func tier(name string) func(*Config) {
	return func(c *Config) {
		c.Tier = name
		c.Stem.Segments = TierSegments[name]
	}
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(group, name string) *Config {
	presets, ok := Presets[group]
	if !ok {
		return nil
	}
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = group + "/" + name
	apply(cfg)
	return cfg
}

// Apply layers the named preset onto an existing config.
func Apply(cfg *Config, group, name string) bool {
	apply, ok := Presets[group][name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets(group string) []string {
	presets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListGroups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

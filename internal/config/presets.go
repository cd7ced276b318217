package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"stdmap": {
		"regular": preset(func(c *Config) {
			c.Experiment = "stdmap"
			c.Map.K = 0.3
		}),
		"mixed": preset(func(c *Config) {
			c.Experiment = "stdmap"
			c.Map.K = 0.97
		}),
		"chaotic": preset(func(c *Config) {
			c.Experiment = "stdmap"
			c.Map.K = 7.0
		}),
	},
	"well": {
		"undriven": preset(func(c *Config) {
			c.Experiment = "well"
			c.Well.Amplitude = 0
			c.Duration = 100
		}),
		"driven": preset(func(c *Config) {
			c.Experiment = "well"
			c.Well.Amplitude = 0.1
			c.Well.Omega = 1.0
			c.Duration = 400
		}),
		"strong": preset(func(c *Config) {
			c.Experiment = "well"
			c.Well.Amplitude = 0.3
			c.Well.Omega = 1.0
			c.Duration = 400
		}),
	},
	"eigen": {
		"symmetric": preset(func(c *Config) {
			c.Experiment = "eigen"
			c.Grid.Tilt = 0
			c.Grid.EMax = 0
		}),
		"tilted": preset(func(c *Config) {
			c.Experiment = "eigen"
			c.Grid.Tilt = 0.15
			c.Grid.EMax = 0.25
		}),
	},
	"evolve": {
		"tunneling": preset(func(c *Config) {
			c.Experiment = "evolve"
			c.Grid.Tilt = 0
			c.Packet.X0 = -0.7
			c.Packet.P0 = 0
		}),
		"kicked": preset(func(c *Config) {
			c.Experiment = "evolve"
			c.Packet.X0 = -0.7
			c.Packet.P0 = 0.5
		}),
	},
	"bloch": {
		"free": preset(func(c *Config) {
			c.Experiment = "bloch"
			c.Lattice.Amplitude = 0
			c.Grid.XMin, c.Grid.XMax, c.Grid.Points = 0, 1, 200
			c.Grid.HEff = 1
		}),
		"cosine": preset(func(c *Config) {
			c.Experiment = "bloch"
			c.Lattice.Amplitude = 1
			c.Lattice.NK = 100
			c.Grid.XMin, c.Grid.XMax, c.Grid.Points = 0, 1, 150
			c.Grid.HEff = 0.2
		}),
		"tight": preset(func(c *Config) {
			c.Experiment = "bloch"
			c.Lattice.Amplitude = 8
			c.Grid.XMin, c.Grid.XMax, c.Grid.Points = 0, 1, 200
			c.Grid.HEff = 1
		}),
	},
	"gas": {
		"classroom": preset(func(c *Config) {
			c.Experiment = "gas"
		}),
		"large": preset(func(c *Config) {
			c.Experiment = "gas"
			c.Gas.Particles = 64
			c.Gas.Trials = 50000
		}),
	},
	"walk": {
		"absorbing": preset(func(c *Config) {
			c.Experiment = "walk"
		}),
		"free": preset(func(c *Config) {
			c.Experiment = "walk"
			c.Walk.XAbs = 1e9
		}),
	},
}

// GetPreset returns a private copy, so callers can mutate the result
// without contaminating later lookups.
func GetPreset(experiment, name string) *Config {
	group, ok := Presets[experiment]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Packet.Times = append([]float64(nil), p.Packet.Times...)
	return &cp
}

func ListPresets(experiment string) []string {
	group, ok := Presets[experiment]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}

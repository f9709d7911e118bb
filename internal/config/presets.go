package config

var Presets = map[string]*Config{
	"small": {
		GridWidth: 40, GridHeight: 20,
		Gravity: DefaultGravity, FlowSpeed: DefaultFlowSpeed,
		VorticityStrength: DefaultVorticityStrength, SpatialFreq: DefaultSpatialFreq,
		VelocityDamping: DefaultVelocityDamping,
	},
	"default": {
		GridWidth: DefaultWidth, GridHeight: DefaultHeight,
		Gravity: DefaultGravity, FlowSpeed: DefaultFlowSpeed,
		VorticityStrength: DefaultVorticityStrength, SpatialFreq: DefaultSpatialFreq,
		VelocityDamping: DefaultVelocityDamping,
	},
	"tall": {
		GridWidth: 40, GridHeight: 80,
		Gravity: DefaultGravity, FlowSpeed: DefaultFlowSpeed,
		VorticityStrength: DefaultVorticityStrength, SpatialFreq: DefaultSpatialFreq,
		VelocityDamping: DefaultVelocityDamping,
	},
	// Viscous pooling: slow lateral spreading, no synthetic swirl.
	"syrup": {
		GridWidth: 80, GridHeight: 40,
		Gravity: DefaultGravity, FlowSpeed: 0.1,
		VorticityStrength: 0, SpatialFreq: DefaultSpatialFreq,
		VelocityDamping: 0.95,
	},
	// Exaggerated vorticity forcing for visible spiral patterns.
	"swirl": {
		GridWidth: 80, GridHeight: 40,
		Gravity: DefaultGravity, FlowSpeed: 1.0,
		VorticityStrength: 0.4, SpatialFreq: 0.2,
		VelocityDamping: DefaultVelocityDamping,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

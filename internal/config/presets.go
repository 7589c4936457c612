package config

// Presets cover the interesting learning-rate regimes per function: too
// slow, steady, fast, and overshooting.
var Presets = map[string]map[string]*Config{
	"parabola": {
		"gentle": {
			Function: "parabola", LearningRate: 0.01, Steps: 100, Init: 3.0, Tolerance: 1e-8,
		},
		"steady": {
			Function: "parabola", LearningRate: 0.2, Steps: 50, Init: 3.0, Tolerance: 1e-8,
		},
		"fast": {
			Function: "parabola", LearningRate: 0.4, Steps: 30, Init: 3.0, Tolerance: 1e-8,
		},
		"overshoot": {
			Function: "parabola", LearningRate: 0.8, Steps: 50, Init: 3.0, Tolerance: 1e-8,
		},
	},
	"doublewell": {
		"left": {
			Function: "doublewell", LearningRate: 0.1, Steps: 200, Init: -2.0, Tolerance: 1e-10,
		},
		"right": {
			Function: "doublewell", LearningRate: 0.1, Steps: 200, Init: 2.0, Tolerance: 1e-10,
		},
		"ridge": {
			Function: "doublewell", LearningRate: 0.05, Steps: 400, Init: 0.1, Tolerance: 1e-10,
		},
	},
	"ripple": {
		"trapped": {
			Function: "ripple", LearningRate: 0.02, Steps: 500, Init: 2.5, Tolerance: 1e-10,
		},
		"escape": {
			Function: "ripple", LearningRate: 0.3, Steps: 200, Init: 2.5, Tolerance: 1e-10,
		},
	},
	"softplus": {
		"slide": {
			Function: "softplus", LearningRate: 0.5, Steps: 300, Init: 4.0, Tolerance: 1e-6,
		},
	},
	"logbarrier": {
		"safe": {
			Function: "logbarrier", LearningRate: 0.05, Steps: 200, Init: 2.0, Tolerance: 1e-10,
		},
	},
	"powerbowl": {
		"steep": {
			Function: "powerbowl", LearningRate: 0.1, Steps: 100, Init: 3.0, Tolerance: 1e-10,
		},
	},
}

func GetPreset(function, preset string) *Config {
	functionPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	cfg, ok := functionPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(function string) []string {
	functionPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(functionPresets))
	for name := range functionPresets {
		names = append(names, name)
	}
	return names
}

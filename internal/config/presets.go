package config

var Presets = map[string]map[string]*Config{
	ModelFirstOrder: {
		"pressure": {
			Kp: 0.1, Ki: 0.005, Kd: 0.02, Setpoint: 200.0,
			ProcessModel: ModelFirstOrder, TimeConstant: 1.0,
			OutputMin: 0, OutputMax: 400, Dt: 0.01, Duration: 10.0,
		},
		"sluggish": {
			Kp: 0.05, Ki: 0.001, Kd: 0, Setpoint: 10.0,
			ProcessModel: ModelFirstOrder, TimeConstant: 5.0,
			Dt: 0.01, Duration: 60.0,
		},
		"noisy": {
			Kp: 0.5, Ki: 0.05, Kd: 0.01, Setpoint: 10.0,
			ProcessModel: ModelFirstOrder, TimeConstant: 1.0,
			NoiseStdDev: 0.2, Seed: 1, Dt: 0.01, Duration: 20.0,
		},
	},
	ModelSecondOrder: {
		"damped": {
			Kp: 1.0, Ki: 0.2, Kd: 0.1, Setpoint: 10.0,
			ProcessModel: ModelSecondOrder, NaturalFrequency: 2.0, DampingRatio: 1.0,
			Dt: 0.01, Duration: 20.0,
		},
		"ringing": {
			Kp: 1.0, Ki: 0.1, Kd: 0, Setpoint: 10.0,
			ProcessModel: ModelSecondOrder, NaturalFrequency: 2.0, DampingRatio: 0.2,
			Dt: 0.01, Duration: 30.0,
		},
		"undamped": {
			Kp: 0.5, Ki: 0, Kd: 0, Setpoint: 1.0,
			ProcessModel: ModelSecondOrder, NaturalFrequency: 1.0, DampingRatio: 0,
			Dt: 0.001, Duration: 40.0,
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}

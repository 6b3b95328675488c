package config

import "fmt"

// Validate applies fail-fast defaults and rejects configurations the
// engine cannot start with.
func Validate(cfg *Config) error {
	if cfg.PixelCount <= 0 {
		return fmt.Errorf("pixel_count must be > 0")
	}
	if cfg.FramesPerSecond <= 0 {
		cfg.FramesPerSecond = 60
	}

	for i, out := range cfg.Outputs {
		if out.Name == "" {
			return fmt.Errorf("outputs[%d].name is required", i)
		}
		if out.Brightness == 0 {
			cfg.Outputs[i].Brightness = 1
		}
		if out.Kind == "mqtt" {
			if cfg.MQTT == nil || cfg.MQTT.Broker == "" {
				return fmt.Errorf("outputs[%d]: mqtt output requires mqtt.broker", i)
			}
			if out.Topic == "" {
				return fmt.Errorf("outputs[%d]: mqtt output requires topic", i)
			}
		}
	}

	return nil
}

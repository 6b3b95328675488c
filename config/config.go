package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's bootstrap configuration, loaded once at
// startup and used to construct the Engine and its output sinks.
type Config struct {
	PixelCount      int         `yaml:"pixel_count"`
	FramesPerSecond float64     `yaml:"frames_per_second"`
	ScenePath       string      `yaml:"scene_path"`
	Threading       Threading   `yaml:"threading"`
	Outputs         []Output    `yaml:"outputs"`
	MQTT            *MQTTConfig `yaml:"mqtt,omitempty"`
}

// Threading mirrors the engine's three orthogonal threading flags
// (spec.md 4.1).
type Threading struct {
	Engine  bool `yaml:"engine"`
	Channel bool `yaml:"channel"`
	Network bool `yaml:"network"`
}

// Output describes one output-stage sink to construct at startup.
type Output struct {
	Name            string  `yaml:"name"`
	Kind            string  `yaml:"kind"` // e.g. "mqtt"
	FramesPerSecond float64 `yaml:"frames_per_second"`
	GammaCorrection int     `yaml:"gamma_correction"`
	Brightness      float64 `yaml:"brightness"`
	Topic           string  `yaml:"topic,omitempty"`
}

// MQTTConfig is the broker connection shared by mqtt-kind outputs.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	QoS      byte   `yaml:"qos"`
}

// Load reads and validates a Config from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

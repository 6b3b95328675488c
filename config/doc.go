// Package config loads the engine's bootstrap configuration — pixel
// count, default frame rate, output sinks, MQTT broker settings —
// grounded on References/orion-prototipe/internal/config/config.go's
// yaml.v3 struct-tag loader and validator.go's fail-fast Validate.
package config

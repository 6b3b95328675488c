// Package mqttsink implements an output.Sink that publishes corrected
// frames to an MQTT broker, grounded on
// References/orion-prototipe/internal/emitter/mqtt.go's MQTTEmitter:
// same paho.mqtt.golang client setup (auto-reconnect, connect/connection
// lost handlers logged via slog), same connected-flag bookkeeping under
// a mutex, same timeout-bounded publish-and-check-token sequence.
package mqttsink

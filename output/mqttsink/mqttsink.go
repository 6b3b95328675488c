package mqttsink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/pidge/LX/color"
	"github.com/pidge/LX/output"
)

// Config describes the broker connection and topic a Sink publishes to.
type Config struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
}

// frame is the wire payload: a flat array of packed ARGB points, one
// per pixel, in buffer order.
type frame struct {
	Pixels []uint32 `json:"pixels"`
}

// Sink is an output.Sink that publishes each corrected frame to MQTT as
// a retained-false JSON message. It embeds output.BaseSink for the
// throttle/mode/correction pipeline and supplies OnSend as the terminal
// transmit step.
type Sink struct {
	*output.BaseSink

	cfg    Config
	client mqtt.Client

	mu        sync.RWMutex
	connected bool
	published uint64
	errors    uint64
}

// New allocates an MQTT sink for an N-pixel pipeline. Call Connect
// before the engine starts sending frames.
func New(cfg Config, n int) *Sink {
	s := &Sink{BaseSink: output.NewBaseSink(n), cfg: cfg}
	s.SetImpl(s)
	return s
}

// Connect establishes the broker connection, mirroring
// MQTTEmitter.Connect's auto-reconnect options and connect/lost
// handlers.
func (s *Sink) Connect(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", s.cfg.Broker))
	opts.SetClientID(s.cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		s.mu.Lock()
		s.connected = true
		s.mu.Unlock()
		slog.Info("mqtt sink connected", "broker", s.cfg.Broker, "client_id", s.cfg.ClientID)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		s.mu.Lock()
		s.connected = false
		s.mu.Unlock()
		slog.Warn("mqtt sink connection lost, will auto-reconnect", "error", err, "broker", s.cfg.Broker)
	}

	s.client = mqtt.NewClient(opts)

	token := s.client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqttsink: connection timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqttsink: connect failed: %w", err)
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	return nil
}

// Close disconnects from the broker, waiting up to 250ms for in-flight
// publishes to drain.
func (s *Sink) Close() {
	if s.client != nil {
		s.client.Disconnect(250)
	}
}

// OnSend marshals colors to JSON and publishes it to the configured
// topic. Failures are logged and tallied, never panicked — an output
// sink must never bring down the render loop.
func (s *Sink) OnSend(colors color.Buffer) {
	if !s.isConnected() {
		s.mu.Lock()
		s.errors++
		s.mu.Unlock()
		return
	}

	pixels := make([]uint32, len(colors))
	for i, p := range colors {
		pixels[i] = uint32(p)
	}
	payload, err := json.Marshal(frame{Pixels: pixels})
	if err != nil {
		s.mu.Lock()
		s.errors++
		s.mu.Unlock()
		slog.Error("mqtt sink marshal failed", "error", err)
		return
	}

	token := s.client.Publish(s.cfg.Topic, s.cfg.QoS, false, payload)
	if !token.WaitTimeout(2 * time.Second) {
		s.mu.Lock()
		s.errors++
		s.mu.Unlock()
		slog.Warn("mqtt sink publish timeout", "topic", s.cfg.Topic)
		return
	}
	if err := token.Error(); err != nil {
		s.mu.Lock()
		s.errors++
		s.mu.Unlock()
		slog.Warn("mqtt sink publish failed", "error", err, "topic", s.cfg.Topic)
		return
	}

	s.mu.Lock()
	s.published++
	s.mu.Unlock()
}

func (s *Sink) isConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Stats returns the publish/error counters for diagnostics.
func (s *Sink) Stats() (published, errors uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.published, s.errors
}

// Command lxrun is the host entry point: it loads an optional YAML
// bootstrap config, builds an Engine with a small set of demo
// patterns, and runs it either host-embedded (calling Run in a loop
// on this goroutine) or engine-threaded (Start/block-on-signal/Stop).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pidge/LX/channel"
	"github.com/pidge/LX/color"
	"github.com/pidge/LX/config"
	"github.com/pidge/LX/engine"
	"github.com/pidge/LX/output/mqttsink"
)

const version = "v0.1.0"

func main() {
	configPath := flag.String("config", "", "YAML bootstrap config path (optional)")
	pixelCount := flag.Int("pixels", 64, "Pixel count when no config is given")
	fps := flag.Float64("fps", 60, "Target frames per second when no config is given")
	engineThreaded := flag.Bool("engine-threaded", false, "Run the engine on its own goroutine instead of host-embedded")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("lxrun %s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg := &config.Config{PixelCount: *pixelCount, FramesPerSecond: *fps}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *engineThreaded {
		cfg.Threading.Engine = true
	}

	e := engine.New(cfg.PixelCount)
	_ = e.FramesPerSecond.SetValue(cfg.FramesPerSecond)
	_ = e.ChannelThreaded.Set(cfg.Threading.Channel)

	wireDemoChannels(e)
	if err := wireOutputs(e, cfg); err != nil {
		logger.Error("failed to wire outputs", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, stopping")
		cancel()
	}()

	if cfg.Threading.Engine {
		logger.Info("starting engine-threaded", "pixels", cfg.PixelCount, "fps", cfg.FramesPerSecond)
		e.Start()
		<-ctx.Done()
		e.Stop()
	} else {
		logger.Info("running host-embedded", "pixels", cfg.PixelCount, "fps", cfg.FramesPerSecond)
		interval := time.Duration(1000.0/cfg.FramesPerSecond) * time.Millisecond
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("stopped")
				return
			case <-ticker.C:
				e.Run()
			}
		}
	}
}

func wireDemoChannels(e *engine.Engine) {
	sweep := e.AddChannelWithPatterns([]channel.Pattern{
		&huesweep{},
	})
	sweep.Effects = []channel.Effect{&brightnessPulse{}}
	_ = sweep.Fader.SetValue(1)
	sweep.CrossfadeGroup.Select(channel.BusBypass)
}

func wireOutputs(e *engine.Engine, cfg *config.Config) error {
	for _, out := range cfg.Outputs {
		if out.Kind != "mqtt" {
			continue
		}
		if cfg.MQTT == nil {
			return fmt.Errorf("lxrun: output %q requires mqtt config", out.Name)
		}
		sink := mqttsink.New(mqttsink.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    out.Topic,
			QoS:      cfg.MQTT.QoS,
		}, cfg.PixelCount)
		_ = sink.FramesPerSecond.SetValue(out.FramesPerSecond)
		_ = sink.GammaCorrection.SetValue(float64(out.GammaCorrection))
		_ = sink.Brightness.SetValue(out.Brightness)
		if err := sink.Connect(context.Background()); err != nil {
			return fmt.Errorf("lxrun: connecting output %q: %w", out.Name, err)
		}
		e.AddOutput(sink)
	}
	return nil
}

// huesweep is the built-in demo pattern: a slowly rotating solid hue
// across every pixel, standing in for a real generator.
type huesweep struct {
	hue float64
}

func (p *huesweep) Advance(dtMs float64) {
	p.hue = math.Mod(p.hue+dtMs*0.00005, 1)
}

func (p *huesweep) Render(out color.Buffer) {
	r, g, b := color.HSBToRGB(p.hue, 1, 1)
	color.Fill(out, color.ARGB(255, r, g, b))
}

// brightnessPulse is the built-in demo effect: a slow sine breathing
// applied on top of whatever pattern produced the buffer.
type brightnessPulse struct {
	phase float64
}

func (e *brightnessPulse) Advance(dtMs float64) {
	e.phase += dtMs * 0.001
}

func (e *brightnessPulse) Apply(buf color.Buffer) {
	brightness := 0.5 + 0.5*math.Sin(e.phase)
	color.ApplyCorrection(buf, 0, brightness)
}

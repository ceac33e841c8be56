package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martinwells/objects/pkg/config"
	"github.com/martinwells/objects/pkg/logger"
	"github.com/martinwells/objects/pkg/observability"
	"github.com/martinwells/objects/pkg/perf"
	"github.com/martinwells/objects/pkg/pool"
	"github.com/martinwells/objects/pkg/sysinfo"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "objects",
		Short: "Objects - Pooled object management toolkit",
		Long: `Objects is a pooled object management toolkit for allocation-sensitive
workloads. It maintains per-type free and used lists so hot loops can recycle
objects instead of allocating, and tracks pool growth as demand rises.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Objects v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "sysinfo",
		Short: "Show host capabilities relevant to pool sizing",
		RunE: func(cmd *cobra.Command, args []string) error {
			caps, err := sysinfo.Collect()
			if err != nil {
				return fmt.Errorf("failed to collect host capabilities: %w", err)
			}
			data, err := caps.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	var configFile string
	var frames, entities, initialSize int
	var logLevel string
	var enableTracing bool

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a pooled particle simulation benchmark",
		Long: `Run a particle simulation that spawns and retires short-lived objects
every frame, exercising pool recycling and growth under a steady churn load.

Example:
  objects bench --frames 1000 --entities 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(configFile, frames, entities, initialSize, logLevel, enableTracing)
		},
	}

	benchCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file (optional)")
	benchCmd.Flags().IntVar(&frames, "frames", 1000, "Number of simulation frames to run")
	benchCmd.Flags().IntVar(&entities, "entities", 500, "Particles spawned per frame")
	benchCmd.Flags().IntVar(&initialSize, "initial-size", 0, "Initial pool size per type (overrides config)")
	benchCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	benchCmd.Flags().BoolVar(&enableTracing, "trace", false, "Emit OpenTelemetry spans for benchmark phases")

	root.AddCommand(benchCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// particle is the benchmark workload object. Each particle lives for a
// fixed number of frames before being released back to its pool.
type particle struct {
	pool.Pooled
	x, y   float64
	vx, vy float64
	life   int
}

func (p *particle) OnRelease() {
	p.x, p.y = 0, 0
	p.vx, p.vy = 0, 0
	p.life = 0
}

// benchSummary is the JSON report printed after a benchmark run.
type benchSummary struct {
	Frames          int     `json:"frames"`
	SpawnedPerFrame int     `json:"spawned_per_frame"`
	TotalAcquires   int64   `json:"total_acquires"`
	TotalPooled     int64   `json:"total_pooled"`
	PeakLive        int     `json:"peak_live"`
	DurationMS      float64 `json:"duration_ms"`
	FramesPerSecond float64 `json:"frames_per_second"`
	RecycleRatio    float64 `json:"recycle_ratio"`
}

func runBench(configFile string, frames, entities, initialSize int, logLevel string, enableTracing bool) error {
	cfg, err := loadBenchConfig(configFile)
	if err != nil {
		return err
	}
	if initialSize > 0 {
		cfg.Pool.InitialSize = initialSize
	}
	if logLevel != "" {
		cfg.Observability.LogLevel = logLevel
	}
	if enableTracing {
		cfg.Observability.EnableTracing = true
	}

	if err := logger.Init(logger.Config{
		Level:    cfg.Observability.LogLevel,
		Encoding: cfg.Observability.LogFormat,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()
	shutdown, err := observability.InitTracing(ctx, cfg.Name, cfg.Version, cfg.Observability.EnableTracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush spans", zap.Error(err))
		}
	}()

	log := logger.With(
		zap.String("component", "objects-cli"),
		zap.Int("frames", frames),
		zap.Int("entities", entities),
	)
	log.Info("starting benchmark",
		zap.Int("initial_size", cfg.Pool.InitialSize),
		zap.Bool("tracing", cfg.Observability.EnableTracing))

	registry := pool.NewRegistry(&cfg.Pool)
	summary, err := simulate(ctx, registry, frames, entities)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	log.Info("benchmark completed",
		zap.Float64("duration_ms", summary.DurationMS),
		zap.Float64("frames_per_second", summary.FramesPerSecond),
		zap.Int64("total_pooled", summary.TotalPooled))

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	fmt.Println(string(data))

	return nil
}

// loadBenchConfig reads the YAML config file when given, otherwise falls
// back to defaults.
func loadBenchConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.NewDefaultConfig("objects-bench"), nil
	}

	cfg := config.NewDefaultConfig("objects-bench")
	if err := config.Load(path, cfg); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// particleLifetime is how many frames a spawned particle survives before
// being released back to its pool.
const particleLifetime = 10

// simulate runs the churn loop: every frame it spawns a batch of particles,
// integrates the live set, and releases particles whose lifetime expired.
func simulate(ctx context.Context, registry *pool.Registry, frames, entities int) (*benchSummary, error) {
	ctx, span := observability.StartSpan(ctx, "bench.simulate")
	defer span.End()

	sw := perf.NewStopwatch("bench")
	ft := perf.NewFrameTimer("bench")

	var live []*particle
	var acquires int64
	peak := 0

	for frame := 0; frame < frames; frame++ {
		_, frameSpan := observability.StartSpan(ctx, "bench.frame")

		for i := 0; i < entities; i++ {
			p, err := pool.Acquire(registry, func() *particle { return &particle{} })
			if err != nil {
				frameSpan.End()
				return nil, err
			}
			p.x, p.y = float64(i), float64(frame)
			p.vx, p.vy = 1, -1
			p.life = particleLifetime
			live = append(live, p)
			acquires++
		}

		if len(live) > peak {
			peak = len(live)
		}

		// Integrate and retire in one pass, compacting the live set.
		retained := live[:0]
		for _, p := range live {
			p.x += p.vx
			p.y += p.vy
			p.life--
			if p.life > 0 {
				retained = append(retained, p)
				continue
			}
			if err := pool.Release(registry, p); err != nil {
				frameSpan.End()
				return nil, err
			}
		}
		live = retained

		ft.Tick()
		frameSpan.End()
	}

	// Drain survivors so the pools end fully free.
	for _, p := range live {
		if err := pool.Release(registry, p); err != nil {
			return nil, err
		}
	}

	elapsed := sw.Stop()
	fps := ft.FPSAndReset()

	summary := &benchSummary{
		Frames:          frames,
		SpawnedPerFrame: entities,
		TotalAcquires:   acquires,
		TotalPooled:     registry.TotalPooled(),
		PeakLive:        peak,
		DurationMS:      float64(elapsed.Microseconds()) / 1000.0,
		FramesPerSecond: fps,
	}
	if acquires > 0 {
		summary.RecycleRatio = 1.0 - float64(registry.TotalPooled())/float64(acquires)
	}

	return summary, nil
}

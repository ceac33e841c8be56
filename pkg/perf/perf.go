// Package perf provides lightweight timing utilities for measuring
// simulation and benchmark performance:
//   - Stopwatch for one-shot and lap timing of operations
//   - FrameTimer for per-frame delta time and frames-per-second tracking
//
// Example:
//
//	sw := perf.NewStopwatch("expand")
//	pool.Expand(1000)
//	logger.Info("expanded", zap.Duration("duration", sw.Stop()))
package perf

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// frameRate tracks the most recently sampled frames per second.
var frameRate = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "objects_frame_rate",
		Help: "Frames processed per second",
	},
	[]string{"scene"},
)

// Stopwatch measures elapsed time for an operation. It captures the start
// time on creation and calculates elapsed time on stop or lap.
type Stopwatch struct {
	start time.Time
	lap   time.Time
	name  string
}

// NewStopwatch creates a stopwatch and starts timing immediately.
// The name parameter is for identification in logs.
func NewStopwatch(name string) *Stopwatch {
	now := time.Now()
	return &Stopwatch{
		start: now,
		lap:   now,
		name:  name,
	}
}

// Name returns the identifier given at creation.
func (s *Stopwatch) Name() string {
	return s.name
}

// Lap returns the duration since the previous lap (or since creation for
// the first lap) and starts a new lap.
func (s *Stopwatch) Lap() time.Duration {
	now := time.Now()
	d := now.Sub(s.lap)
	s.lap = now
	return d
}

// Stop returns the total elapsed duration since creation. The stopwatch
// can be stopped multiple times, each returning the total elapsed time.
func (s *Stopwatch) Stop() time.Duration {
	return time.Since(s.start)
}

// Restart resets the stopwatch to the current time.
func (s *Stopwatch) Restart() {
	now := time.Now()
	s.start = now
	s.lap = now
}

// FrameTimer tracks per-frame timing over a running simulation. It reports
// the delta since the previous frame and the frame rate over the current
// sampling window. Safe for concurrent use.
type FrameTimer struct {
	mu        sync.Mutex
	scene     string
	lastFrame time.Time
	lastReset time.Time
	frames    int64
}

// NewFrameTimer creates a frame timer for the named scene. The scene is
// used as a metric label.
func NewFrameTimer(scene string) *FrameTimer {
	now := time.Now()
	return &FrameTimer{
		scene:     scene,
		lastFrame: now,
		lastReset: now,
	}
}

// Tick marks the end of a frame and returns the time elapsed since the
// previous tick. Safe for concurrent use.
func (f *FrameTimer) Tick() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	delta := now.Sub(f.lastFrame)
	f.lastFrame = now
	f.frames++
	return delta
}

// Frames returns the number of ticks since the last reset.
func (f *FrameTimer) Frames() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// FPSAndReset calculates the frame rate over the current window, updates
// the Prometheus gauge, resets the window, and returns the rate. Safe for
// concurrent use.
func (f *FrameTimer) FPSAndReset() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	elapsed := time.Since(f.lastReset).Seconds()
	if elapsed == 0 {
		return 0
	}

	fps := float64(f.frames) / elapsed

	f.frames = 0
	f.lastReset = time.Now()

	frameRate.WithLabelValues(f.scene).Set(fps)

	return fps
}

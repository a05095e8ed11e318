// Package profiler provides frame-loop diagnostics and pacing: a Profiler
// that periodically logs frame rate and memory statistics, and a FrameLimiter
// that sleeps frames to a target rate.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, frame time spikes, and memory statistics for a
// render loop. Stats go to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTick       time.Time
	lastLog        time.Time
	maxFrameTime   time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		lastTick:       time.Now(),
		lastLog:        time.Now(),
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame. Tracks the frame count and the worst
// frame time in the current window, and logs FPS, frame spike, heap usage,
// allocation rate, GC counts and pause times when the update interval has
// elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := time.Now()
	frameTime := now.Sub(p.lastTick)
	p.lastTick = now
	p.frameCount++
	if frameTime > p.maxFrameTime {
		p.maxFrameTime = frameTime
	}

	elapsed := now.Sub(p.lastLog)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap; TotalAlloc is cumulative and tracks churn; Sys is
	// the process footprint obtained from the OS.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Worst Frame: %.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, float64(p.maxFrameTime.Microseconds())/1000, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.maxFrameTime = 0
	p.lastLog = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// ProfilerBuilderOption is a variadic option function used to configure a
// Profiler during construction.
type ProfilerBuilderOption func(*Profiler)

// WithUpdateInterval sets how often stats are logged.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - ProfilerBuilderOption: the option function
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

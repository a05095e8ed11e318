package profiler

import (
	"testing"
	"time"
)

func TestFrameLimiterFirstDelayIsZero(t *testing.T) {
	limiter := NewFrameLimiter(60)
	if slept := limiter.Delay(); slept != 0 {
		t.Errorf("first Delay slept %v, want 0", slept)
	}
}

func TestFrameLimiterPacesFastFrames(t *testing.T) {
	limiter := NewFrameLimiter(100) // 10ms slices

	limiter.Delay()
	start := time.Now()
	slept := limiter.Delay()
	elapsed := time.Since(start)

	if slept <= 0 {
		t.Fatalf("expected a positive sleep for a fast frame, got %v", slept)
	}
	if elapsed < 5*time.Millisecond {
		t.Errorf("frame returned after %v, expected pacing toward 10ms", elapsed)
	}
}

func TestFrameLimiterSkipsSleepForSlowFrames(t *testing.T) {
	limiter := NewFrameLimiter(1000) // 1ms slices

	limiter.Delay()
	time.Sleep(5 * time.Millisecond)
	if slept := limiter.Delay(); slept != 0 {
		t.Errorf("slow frame slept %v, want 0", slept)
	}
}

func TestFrameLimiterDefaultsInvalidRate(t *testing.T) {
	limiter := NewFrameLimiter(0)
	impl := limiter.(*frameLimiterImpl)
	if impl.targetDuration != targetDuration(60) {
		t.Errorf("zero rate produced target %v, want the 60fps default", impl.targetDuration)
	}
}

func TestProfilerTickLogsAfterInterval(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(10 * time.Millisecond))

	if p.Tick() {
		t.Error("first tick logged before the interval elapsed")
	}
	time.Sleep(15 * time.Millisecond)
	if !p.Tick() {
		t.Error("tick did not log after the interval elapsed")
	}
	if p.frameCount != 0 {
		t.Errorf("frame count not reset after logging, got %d", p.frameCount)
	}
}

package profiler

import (
	"sync"
	"time"
)

// FrameLimiter paces a frame loop to a target frame rate by sleeping off the
// remainder of each frame's time slice. Used with the uncapped present mode;
// under VSync the swapchain paces the loop instead.
type FrameLimiter interface {
	// SetTargetFrameRate changes the pacing target.
	//
	// Parameters:
	//   - framesPerSecond: the target frame rate, must be positive
	SetTargetFrameRate(framesPerSecond int)

	// Delay sleeps until the current frame's time slice has elapsed and
	// returns the slept duration. The first call establishes the baseline and
	// returns zero.
	//
	// Returns:
	//   - time.Duration: the time slept, zero when the frame ran long
	Delay() time.Duration
}

type frameLimiterImpl struct {
	mu             *sync.Mutex
	targetDuration time.Duration
	lastFrame      time.Time
}

var _ FrameLimiter = &frameLimiterImpl{}

// NewFrameLimiter creates a FrameLimiter pacing to the given frame rate.
//
// Parameters:
//   - framesPerSecond: the target frame rate, must be positive
//
// Returns:
//   - FrameLimiter: the configured limiter
func NewFrameLimiter(framesPerSecond int) FrameLimiter {
	return &frameLimiterImpl{
		mu:             &sync.Mutex{},
		targetDuration: targetDuration(framesPerSecond),
	}
}

func (f *frameLimiterImpl) SetTargetFrameRate(framesPerSecond int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targetDuration = targetDuration(framesPerSecond)
}

func (f *frameLimiterImpl) Delay() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	var slept time.Duration
	if !f.lastFrame.IsZero() {
		elapsed := time.Since(f.lastFrame)
		if elapsed < f.targetDuration {
			slept = f.targetDuration - elapsed
			time.Sleep(slept)
		}
	}
	f.lastFrame = time.Now()
	return slept
}

func targetDuration(framesPerSecond int) time.Duration {
	if framesPerSecond <= 0 {
		framesPerSecond = 60
	}
	return time.Duration(float64(time.Second) / float64(framesPerSecond))
}

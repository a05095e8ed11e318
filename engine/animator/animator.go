// Package animator advances flipbook animations over texture atlas tiles,
// producing the UV rectangles sprite and terrain instances sample each frame.
package animator

import (
	"fmt"
	"sync"

	"github.com/lumen2d/lumen/engine/loader"
)

// Clip is a named sequence of atlas tile indices played at a fixed rate.
type Clip struct {
	// Name identifies the clip for SetClip.
	Name string
	// Frames are row-major atlas tile indices in playback order.
	Frames []int
	// FPS is the playback rate in frames per second.
	FPS float32
	// Loop restarts the clip when it reaches the last frame. Non-looping
	// clips hold the last frame.
	Loop bool
}

// animator is the implementation of the Animator interface.
type animator struct {
	mu *sync.Mutex

	atlas *loader.Atlas
	clips map[string]Clip

	current Clip
	elapsed float32
	playing bool
}

// Animator plays flipbook clips against a texture atlas. Advance is called
// once per logic tick; UV is read when building the frame's sprite instances.
type Animator interface {
	// SetClip switches to a registered clip and restarts playback.
	//
	// Parameters:
	//   - name: the clip name
	//
	// Returns:
	//   - error: an error if no clip with that name is registered
	SetClip(name string) error

	// Advance moves playback forward.
	//
	// Parameters:
	//   - deltaTime: the elapsed time in seconds
	Advance(deltaTime float32)

	// Frame returns the atlas tile index currently displayed.
	//
	// Returns:
	//   - int: the current tile index
	Frame() int

	// UV returns the atlas UV rectangle of the current frame.
	//
	// Returns:
	//   - [2]float32: the top-left UV
	//   - [2]float32: the bottom-right UV
	UV() ([2]float32, [2]float32)

	// Playing reports whether playback is running.
	//
	// Returns:
	//   - bool: true while playing
	Playing() bool

	// Play resumes playback.
	Play()

	// Pause halts playback, holding the current frame.
	Pause()

	// Reset rewinds the current clip to its first frame.
	Reset()
}

var _ Animator = &animator{}

// NewAnimator creates an Animator over an atlas. At least one clip must be
// registered via WithClip; the first registered clip becomes current.
//
// Parameters:
//   - atlas: the atlas the clips index into
//   - options: variadic AnimatorBuilderOption functions
//
// Returns:
//   - Animator: the configured animator
//   - error: an error if no clips are registered or a clip indexes out of range
func NewAnimator(atlas *loader.Atlas, options ...AnimatorBuilderOption) (Animator, error) {
	a := &animator{
		mu:      &sync.Mutex{},
		atlas:   atlas,
		clips:   make(map[string]Clip),
		playing: true,
	}
	for _, opt := range options {
		opt(a)
	}

	if a.current.Name == "" {
		return nil, fmt.Errorf("animator requires at least one clip")
	}
	for _, clip := range a.clips {
		if len(clip.Frames) == 0 {
			return nil, fmt.Errorf("clip %s has no frames", clip.Name)
		}
		for _, frame := range clip.Frames {
			if frame < 0 || frame >= atlas.TileCount() {
				return nil, fmt.Errorf("clip %s frame %d out of range for %d tiles", clip.Name, frame, atlas.TileCount())
			}
		}
	}
	return a, nil
}

func (a *animator) SetClip(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	clip, ok := a.clips[name]
	if !ok {
		return fmt.Errorf("no clip named %s", name)
	}
	a.current = clip
	a.elapsed = 0
	return nil
}

func (a *animator) Advance(deltaTime float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.playing || deltaTime <= 0 {
		return
	}
	a.elapsed += deltaTime
}

func (a *animator) Frame() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frameLocked()
}

// frameLocked resolves the elapsed time to a tile index. Caller must hold the
// mutex.
func (a *animator) frameLocked() int {
	if a.current.FPS <= 0 || len(a.current.Frames) == 0 {
		return a.current.Frames[0]
	}
	idx := int(a.elapsed * a.current.FPS)
	if a.current.Loop {
		idx %= len(a.current.Frames)
	} else if idx >= len(a.current.Frames) {
		idx = len(a.current.Frames) - 1
	}
	return a.current.Frames[idx]
}

func (a *animator) UV() ([2]float32, [2]float32) {
	a.mu.Lock()
	frame := a.frameLocked()
	a.mu.Unlock()

	// Frames were range-checked at construction.
	uv0, uv1, _ := a.atlas.TileUV(frame)
	return uv0, uv1
}

func (a *animator) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

func (a *animator) Play() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = true
}

func (a *animator) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = false
}

func (a *animator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.elapsed = 0
}

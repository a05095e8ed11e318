package animator

// AnimatorBuilderOption is a functional option for configuring an Animator via NewAnimator.
type AnimatorBuilderOption func(*animator)

// WithClip registers a clip. The first registered clip becomes the current
// clip.
//
// Parameters:
//   - clip: the clip to register
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the clip option to an animator
func WithClip(clip Clip) AnimatorBuilderOption {
	return func(a *animator) {
		a.clips[clip.Name] = clip
		if a.current.Name == "" {
			a.current = clip
		}
	}
}

// WithPaused starts the animator paused on its first frame.
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the paused option to an animator
func WithPaused() AnimatorBuilderOption {
	return func(a *animator) {
		a.playing = false
	}
}

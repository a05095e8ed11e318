package engine

import (
	"testing"
	"time"
)

// Raising the tick rate on a running engine must retune the live ticker.
// Writing the rate field directly would only affect the next start, so the
// change has to travel through the tick rate channel.
func TestSetTickRateWhileRunningRetunesTicker(t *testing.T) {
	ticked := make(chan struct{}, 1)

	e := NewEngine(WithTickRate(1), WithRenderFrameLimit(60))
	e.SetTickCallback(func(deltaTime float32) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	eng := e.(*engine)
	eng.handle()
	defer func() {
		e.Quit()
		eng.wg.Wait()
	}()

	if !eng.running.Load() {
		t.Fatal("engine does not report running after its loops start")
	}

	e.SetTickRate(200)

	// The starting rate is one tick per second, so a tick inside the window
	// below can only come from the retuned ticker.
	select {
	case <-ticked:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("tick callback did not fire after raising the tick rate")
	}
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine(WithTickRate(60), WithRenderFrameLimit(60))
	eng := e.(*engine)
	eng.handle()

	e.Quit()
	e.Quit()
	eng.wg.Wait()

	if eng.running.Load() {
		t.Error("engine still reports running after Quit")
	}
}

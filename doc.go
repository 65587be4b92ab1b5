// Package postfx implements a configuration-driven color-grading
// post-process stage for real-time rendering pipelines.
//
// The engine maps integer user settings on a 0..1000 scale (contrast,
// brightness, exposure, saturation, per-channel color gains, highlights,
// shadows, vibrance) plus a discrete preset selector into a packed
// shader-constant block, and dispatches a full-screen pass that applies
// the grade to a rendered frame. Texture arrays (stereo / multiview
// targets) are supported through a dedicated shader variant that routes
// the pass to the requested array slice.
//
// postfx does not own a GPU. It consumes a [Device] capability that the
// host provides; backend/wgpu implements it on top of gogpu/wgpu, and
// [SoftwareDevice] provides a CPU rendition with identical math for
// headless use and testing. Runtime tunables come from a [Store]
// capability with query-and-clear change tracking; a nil store yields
// documented neutral defaults so the engine works standalone.
//
// Typical frame loop:
//
//	engine, err := postfx.New(device, store)
//	if err != nil { ... }
//	for each frame {
//	    engine.Update()                    // refresh coefficients if config changed
//	    for each view slice {
//	        engine.Process(in, out, slice) // always dispatches, pass-through when off
//	    }
//	}
//
// All engine methods are driven from a single render thread; the engine
// performs no internal locking.
package postfx

package camera

import "github.com/Carmen-Shannon/oxy-spiral/engine/diag"

// RigBuilderOption is a functional option for configuring a VerticalZoomRig.
type RigBuilderOption func(*verticalZoomRigImpl)

// WithRigConfig replaces the whole tuning.
//
// Parameters:
//   - cfg: the rig configuration
//
// Returns:
//   - RigBuilderOption: functional option to set the config
func WithRigConfig(cfg RigConfig) RigBuilderOption {
	return func(r *verticalZoomRigImpl) {
		r.cfg = cfg.clone()
	}
}

// WithTarget sets the orbit center.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - RigBuilderOption: functional option to set the target
func WithTarget(x, y, z float32) RigBuilderOption {
	return func(r *verticalZoomRigImpl) {
		r.cfg.Target = [3]float32{x, y, z}
	}
}

// WithDistanceBounds sets the initial zoom distance and its limits.
// Reversed limits are swapped.
//
// Parameters:
//   - distance: starting distance
//   - minDistance: closest zoom
//   - maxDistance: farthest zoom
//
// Returns:
//   - RigBuilderOption: functional option to set the distances
func WithDistanceBounds(distance, minDistance, maxDistance float32) RigBuilderOption {
	return func(r *verticalZoomRigImpl) {
		r.cfg.Distance, r.cfg.MinDistance, r.cfg.MaxDistance = distance, minDistance, maxDistance
	}
}

// WithSmoothing sets the move and zoom time constants in seconds. Zero or
// negative values make the corresponding motion instantaneous.
//
// Parameters:
//   - move: vertical velocity smoothing time
//   - zoom: distance smoothing time
//
// Returns:
//   - RigBuilderOption: functional option to set smoothing
func WithSmoothing(move, zoom float32) RigBuilderOption {
	return func(r *verticalZoomRigImpl) {
		r.cfg.MoveSmoothTime, r.cfg.ZoomSmoothTime = move, zoom
	}
}

// WithOverride pins the published camera position to a fixed point while the
// viewing direction still follows the rig.
//
// Parameters:
//   - x, y, z: world-space position
//
// Returns:
//   - RigBuilderOption: functional option to enable the override
func WithOverride(x, y, z float32) RigBuilderOption {
	return func(r *verticalZoomRigImpl) {
		r.cfg.Override = &[3]float32{x, y, z}
	}
}

// WithVerticalKeys binds the keys that move the camera up and down.
//
// Parameters:
//   - up: key code for upward motion
//   - down: key code for downward motion
//
// Returns:
//   - RigBuilderOption: functional option to bind the keys
func WithVerticalKeys(up, down uint32) RigBuilderOption {
	return func(r *verticalZoomRigImpl) {
		r.keys.Rebind(up, down)
	}
}

// WithDiagnostics routes the per-update camera.position event to sink.
//
// Parameters:
//   - sink: the diagnostics sink
//
// Returns:
//   - RigBuilderOption: functional option to set the sink
func WithDiagnostics(sink diag.Sink) RigBuilderOption {
	return func(r *verticalZoomRigImpl) {
		if sink != nil {
			r.sink = sink
		}
	}
}

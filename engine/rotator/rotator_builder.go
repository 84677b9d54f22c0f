package rotator

import (
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// RotatorBuilderOption is a functional option for configuring a YawRotator.
type RotatorBuilderOption func(*yawRotatorImpl)

// WithSpeedDegrees sets the rotation speed.
//
// Parameters:
//   - deg: degrees per second
//
// Returns:
//   - RotatorBuilderOption: option function to apply
func WithSpeedDegrees(deg float32) RotatorBuilderOption {
	return func(r *yawRotatorImpl) {
		r.speedRad = mgl32.DegToRad(deg)
	}
}

// WithKeys binds the keys turning the target. Counter-clockwise seen from above is positive yaw.
//
// Parameters:
//   - positive: key producing +1
//   - negative: key producing -1
//
// Returns:
//   - RotatorBuilderOption: option function to apply
func WithKeys(positive, negative uint32) RotatorBuilderOption {
	return func(r *yawRotatorImpl) {
		r.keys.Rebind(positive, negative)
	}
}

// WithTarget binds the node at construction.
func WithTarget(target *scene.Node) RotatorBuilderOption {
	return func(r *yawRotatorImpl) {
		r.target = target
	}
}

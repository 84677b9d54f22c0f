package camera

import (
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRigInitialPlacement(t *testing.T) {
	r := NewVerticalZoomRig()

	x, y, z := r.Position()
	d := 15 * math32.Sin(mgl32.DegToRad(45))
	assert.InDelta(t, d, x, 1e-4)
	assert.InDelta(t, 5, y, 1e-5)
	assert.InDelta(t, d, z, 1e-4)

	tx, ty, tz := r.Target()
	assert.Equal(t, float32(0), tx)
	assert.InDelta(t, 5, ty, 1e-5, "look-at stays level with the camera")
	assert.Equal(t, float32(0), tz)

	assert.Equal(t, float32(15), r.CurrentDistance())
	assert.Equal(t, float32(15), r.TargetDistance())
	assert.Equal(t, 0, r.KeyDirection())
}

func TestRigWheelClamps(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float32
		want   float32
	}{
		{"single large scroll in", []float32{-1000}, 4},
		{"single large scroll out", []float32{100000}, 80},
		{"one notch out", []float32{100}, 17.5},
		{"in then out", []float32{-1000, 100}, 6.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewVerticalZoomRig()
			for _, dy := range tt.deltas {
				r.HandleInput(input.WheelEvent(dy))
			}
			assert.InDelta(t, tt.want, r.TargetDistance(), 1e-4)
		})
	}
}

func TestRigDistanceStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := NewVerticalZoomRig()
	cfg := r.Config()

	for i := 0; i < 2000; i++ {
		if rng.Intn(3) == 0 {
			r.HandleInput(input.WheelEvent(float32(rng.NormFloat64() * 800)))
		}
		r.Update(float32(rng.Float64() * 0.5))

		require.GreaterOrEqual(t, r.TargetDistance(), cfg.MinDistance)
		require.LessOrEqual(t, r.TargetDistance(), cfg.MaxDistance)
		require.GreaterOrEqual(t, r.CurrentDistance(), cfg.MinDistance-1e-4)
		require.LessOrEqual(t, r.CurrentDistance(), cfg.MaxDistance+1e-4)
	}
}

func TestRigZeroDtIsIdempotent(t *testing.T) {
	r := NewVerticalZoomRig()
	r.HandleInput(input.KeyDownEvent(common.KeyW))
	r.HandleInput(input.WheelEvent(300))
	r.Update(0.05)

	x0, y0, z0 := r.Position()
	v0, d0 := r.Velocity(), r.CurrentDistance()

	r.Update(0)
	r.Update(-1)

	x1, y1, z1 := r.Position()
	assert.Equal(t, []float32{x0, y0, z0}, []float32{x1, y1, z1})
	assert.Equal(t, v0, r.Velocity())
	assert.Equal(t, d0, r.CurrentDistance())
}

func TestRigInstantSmoothing(t *testing.T) {
	r := NewVerticalZoomRig(WithSmoothing(0, -1))
	r.HandleInput(input.KeyDownEvent(common.KeyW))
	r.HandleInput(input.WheelEvent(-200))

	r.Update(0.5)

	assert.Equal(t, float32(10), r.Velocity())
	assert.InDelta(t, 10, r.VerticalOffset(), 1e-5)
	assert.InDelta(t, 10, r.CurrentDistance(), 1e-5)
}

func TestRigSmoothingApproachesTarget(t *testing.T) {
	r := NewVerticalZoomRig()
	r.HandleInput(input.KeyDownEvent(common.KeyS))

	r.Update(0.12)
	want := -10 * (1 - math32.Exp(-1))
	assert.InDelta(t, want, r.Velocity(), 1e-4)
	assert.InDelta(t, 5+want*0.12, r.VerticalOffset(), 1e-4)
}

func TestRigVelocitySnapsToRest(t *testing.T) {
	r := NewVerticalZoomRig()
	r.HandleInput(input.KeyDownEvent(common.KeyW))
	r.Update(1)
	r.HandleInput(input.KeyUpEvent(common.KeyW))

	for i := 0; i < 200; i++ {
		r.Update(1.0 / 60)
	}
	assert.Equal(t, float32(0), r.Velocity())

	offset := r.VerticalOffset()
	r.Update(1)
	assert.Equal(t, offset, r.VerticalOffset())
}

func TestRigLastKeyWins(t *testing.T) {
	r := NewVerticalZoomRig()

	r.HandleInput(input.KeyDownEvent(common.KeyW))
	assert.Equal(t, 1, r.KeyDirection())

	r.HandleInput(input.KeyDownEvent(common.KeyS))
	assert.Equal(t, -1, r.KeyDirection(), "S pressed last while W held")

	r.HandleInput(input.KeyUpEvent(common.KeyW))
	assert.Equal(t, -1, r.KeyDirection(), "releasing the stale key is ignored")

	r.HandleInput(input.KeyUpEvent(common.KeyS))
	assert.Equal(t, 0, r.KeyDirection())

	r.HandleInput(input.KeyDownEvent(common.KeyA))
	assert.Equal(t, 0, r.KeyDirection(), "unbound keys are ignored")
}

func TestRigCustomKeys(t *testing.T) {
	r := NewVerticalZoomRig(WithVerticalKeys(common.KeyUp, common.KeyDown))
	r.HandleInput(input.KeyDownEvent(common.KeyW))
	assert.Equal(t, 0, r.KeyDirection())
	r.HandleInput(input.KeyDownEvent(common.KeyDown))
	assert.Equal(t, -1, r.KeyDirection())
}

func TestRigSetTarget(t *testing.T) {
	r := NewVerticalZoomRig(WithSmoothing(0, 0))
	r.SetTarget(10, 2, -3)

	x, y, z := r.Position()
	d := 15 * math32.Sin(mgl32.DegToRad(45))
	assert.InDelta(t, 10+d, x, 1e-4)
	assert.InDelta(t, 7, y, 1e-5)
	assert.InDelta(t, -3+d, z, 1e-4)

	tx, ty, tz := r.Target()
	assert.Equal(t, float32(10), tx)
	assert.InDelta(t, 7, ty, 1e-5)
	assert.Equal(t, float32(-3), tz)
}

func TestRigSwapsReversedBounds(t *testing.T) {
	r := NewVerticalZoomRig(WithDistanceBounds(15, 80, 4))
	cfg := r.Config()
	assert.Equal(t, float32(4), cfg.MinDistance)
	assert.Equal(t, float32(80), cfg.MaxDistance)

	r.HandleInput(input.WheelEvent(-1000))
	assert.Equal(t, float32(4), r.TargetDistance())
}

func TestRigInitialDistanceClamped(t *testing.T) {
	r := NewVerticalZoomRig(WithDistanceBounds(200, 4, 80))
	assert.Equal(t, float32(80), r.CurrentDistance())
}

func TestRigOverrideKeepsViewingDirection(t *testing.T) {
	plain := NewVerticalZoomRig()
	pinned := NewVerticalZoomRig(WithOverride(45, 25, 45))

	x, y, z := pinned.Position()
	assert.Equal(t, []float32{45, 25, 45}, []float32{x, y, z})

	px, py, pz := plain.Position()
	ptx, pty, ptz := plain.Target()
	tx, ty, tz := pinned.Target()
	want := mgl32.Vec3{ptx - px, pty - py, ptz - pz}
	got := mgl32.Vec3{tx - x, ty - y, tz - z}
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v got %v", want, got)
}

func TestRigOverrideNotShared(t *testing.T) {
	cfg := DefaultRigConfig()
	cfg.Override = &[3]float32{45, 25, 45}
	built := NewVerticalZoomRig(WithRigConfig(cfg))
	set := NewVerticalZoomRig()
	set.SetConfig(cfg)

	cfg.Override[1] = -100
	built.Config().Override[0] = -100
	set.Config().Override[2] = -100
	built.Update(0.016)
	set.Update(0.016)

	for _, r := range []VerticalZoomRig{built, set} {
		x, y, z := r.Position()
		assert.Equal(t, []float32{45, 25, 45}, []float32{x, y, z})
		assert.Equal(t, [3]float32{45, 25, 45}, *r.Config().Override)
	}
}

func TestRigReleaseSurvivesWheelFlood(t *testing.T) {
	const capacity = 256
	q := input.NewQueue(capacity)
	r := NewVerticalZoomRig()

	q.Push(input.KeyDownEvent(common.KeyW))
	q.Drain(r)
	q.Push(input.KeyUpEvent(common.KeyW))
	for i := 0; i < capacity; i++ {
		q.Push(input.WheelEvent(-1))
	}
	q.Drain(r)

	for i := 0; i < 60; i++ {
		r.Update(1.0 / 60)
	}
	assert.Equal(t, 0, r.KeyDirection())
	assert.InDelta(t, 0, r.Velocity(), 1e-3)
}

func TestRigSetConfigKeepsState(t *testing.T) {
	r := NewVerticalZoomRig(WithSmoothing(0, 0))
	r.HandleInput(input.KeyDownEvent(common.KeyW))
	r.Update(0.5)
	offset := r.VerticalOffset()

	cfg := r.Config()
	cfg.MaxDistance = 10
	cfg.MaxSpeed = 20
	r.SetConfig(cfg)

	assert.Equal(t, offset, r.VerticalOffset())
	assert.Equal(t, float32(10), r.CurrentDistance())
	assert.Equal(t, 1, r.KeyDirection())

	r.Update(0.5)
	assert.Equal(t, float32(20), r.Velocity())
}

func TestRigEmitsPosition(t *testing.T) {
	rec := diag.NewRecorder()
	r := NewVerticalZoomRig(WithDiagnostics(rec))

	r.Update(0.016)
	r.Update(0)
	r.Update(0.016)

	events := rec.Named("camera.position")
	require.Len(t, events, 2)
	x, _, _ := r.Position()
	assert.InDelta(t, x, events[1].Attrs["x"], 1e-5)
	assert.Contains(t, events[0].Attrs, "distance")
}

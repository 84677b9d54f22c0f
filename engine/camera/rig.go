package camera

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ZoomScale converts one unit of wheel deltaY into distance, before ZoomStep.
const ZoomScale = 0.01

// velocityEpsilon is the speed below which an idle rig snaps to rest.
const velocityEpsilon = 1e-4

// RigConfig tunes a VerticalZoomRig. Angles are in degrees, times in seconds.
type RigConfig struct {
	Target         [3]float32  `yaml:"target" toml:"target"`
	YawDeg         float32     `yaml:"yaw_deg" toml:"yaw_deg"`
	Distance       float32     `yaml:"distance" toml:"distance"`
	MinDistance    float32     `yaml:"min_distance" toml:"min_distance"`
	MaxDistance    float32     `yaml:"max_distance" toml:"max_distance"`
	MaxSpeed       float32     `yaml:"max_speed" toml:"max_speed"`
	MoveSmoothTime float32     `yaml:"move_smooth_time" toml:"move_smooth_time"`
	ZoomStep       float32     `yaml:"zoom_step" toml:"zoom_step"`
	ZoomSmoothTime float32     `yaml:"zoom_smooth_time" toml:"zoom_smooth_time"`
	VerticalOffset float32     `yaml:"vertical_offset" toml:"vertical_offset"`
	Override       *[3]float32 `yaml:"override,omitempty" toml:"override,omitempty"`
}

// DefaultRigConfig returns the stock tuning: yaw 45, distance 15 within [4, 80],
// 10 units/s vertical speed, 0.12 s move smoothing, zoom step 2.5 with 0.18 s
// smoothing and the camera starting 5 units above the target.
func DefaultRigConfig() RigConfig {
	return RigConfig{
		YawDeg:         45,
		Distance:       15,
		MinDistance:    4,
		MaxDistance:    80,
		MaxSpeed:       10,
		MoveSmoothTime: 0.12,
		ZoomStep:       2.5,
		ZoomSmoothTime: 0.18,
		VerticalOffset: 5,
	}
}

// normalized returns cfg with ordered distance bounds.
func (cfg RigConfig) normalized() RigConfig {
	if cfg.MinDistance > cfg.MaxDistance {
		cfg.MinDistance, cfg.MaxDistance = cfg.MaxDistance, cfg.MinDistance
	}
	return cfg
}

// clone returns cfg with its own copy of Override.
func (cfg RigConfig) clone() RigConfig {
	if cfg.Override != nil {
		o := *cfg.Override
		cfg.Override = &o
	}
	return cfg
}

type verticalZoomRigImpl struct {
	mu *sync.Mutex

	cfg    RigConfig
	yawRad float32
	keys   input.Axis
	sink   diag.Sink

	velocity        float32
	verticalOffset  float32
	targetDistance  float32
	currentDistance float32

	position mgl32.Vec3
	lookAt   mgl32.Vec3
}

// VerticalZoomRig is a camera controller that orbits a target at a fixed yaw,
// slides up and down with keyboard input and zooms with the scroll wheel.
// Both motions are exponentially smoothed so the result is frame-rate independent.
type VerticalZoomRig interface {
	CameraController
	input.Handler

	// Update advances the smoothing by dt seconds and recomputes the camera
	// position. A non-positive dt leaves the rig unchanged.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// SetTarget moves the orbit center. Takes effect immediately.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetConfig retunes the rig while preserving its motion state. Distances
	// are re-clamped to the new bounds.
	//
	// Parameters:
	//   - cfg: the new tuning
	SetConfig(cfg RigConfig)

	// Config returns the active tuning.
	Config() RigConfig

	// Velocity returns the current vertical speed in units per second.
	Velocity() float32

	// VerticalOffset returns the camera height above the target.
	VerticalOffset() float32

	// TargetDistance returns the distance the zoom is converging to.
	TargetDistance() float32

	// CurrentDistance returns the smoothed horizontal distance to the target.
	CurrentDistance() float32

	// KeyDirection returns -1, 0 or +1 for the held vertical key.
	KeyDirection() int
}

var _ VerticalZoomRig = &verticalZoomRigImpl{}

// NewVerticalZoomRig creates a rig from DefaultRigConfig, W moving up and S moving down.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - VerticalZoomRig: the rig, positioned according to its config
func NewVerticalZoomRig(options ...RigBuilderOption) VerticalZoomRig {
	r := &verticalZoomRigImpl{
		mu:   &sync.Mutex{},
		cfg:  DefaultRigConfig(),
		keys: input.NewAxis(common.KeyW, common.KeyS),
		sink: diag.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}

	r.cfg = r.cfg.normalized()
	r.yawRad = mgl32.DegToRad(r.cfg.YawDeg)
	r.verticalOffset = r.cfg.VerticalOffset
	r.targetDistance = common.Clamp(r.cfg.Distance, r.cfg.MinDistance, r.cfg.MaxDistance)
	r.currentDistance = r.targetDistance
	r.applyTransform()
	return r
}

func (r *verticalZoomRigImpl) HandleInput(ev input.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev.Kind == input.Wheel {
		r.targetDistance += ev.DeltaY * r.cfg.ZoomStep * ZoomScale
		r.targetDistance = common.Clamp(r.targetDistance, r.cfg.MinDistance, r.cfg.MaxDistance)
		return
	}
	r.keys.Handle(ev)
}

func (r *verticalZoomRigImpl) Update(dt float32) {
	if dt <= 0 {
		return
	}
	r.mu.Lock()

	dir := r.keys.Direction()
	targetVelocity := float32(dir) * r.cfg.MaxSpeed
	r.velocity += (targetVelocity - r.velocity) * common.SmoothingFactor(dt, r.cfg.MoveSmoothTime)
	if math32.Abs(r.velocity) < velocityEpsilon && dir == 0 {
		r.velocity = 0
	}
	r.verticalOffset += r.velocity * dt

	r.currentDistance += (r.targetDistance - r.currentDistance) * common.SmoothingFactor(dt, r.cfg.ZoomSmoothTime)

	r.applyTransform()
	pos, dist := r.position, r.currentDistance
	r.mu.Unlock()

	r.sink.Emit(slog.LevelDebug, "camera.position",
		slog.Float64("x", float64(pos[0])),
		slog.Float64("y", float64(pos[1])),
		slog.Float64("z", float64(pos[2])),
		slog.Float64("distance", float64(dist)),
	)
}

// applyTransform places the camera on the yaw ray at the current distance and
// height, looking horizontally at the target's axis. With an override the
// camera is moved to the override point keeping that viewing direction.
// Caller must hold the mutex.
func (r *verticalZoomRigImpl) applyTransform() {
	t := r.cfg.Target
	offX := math32.Sin(r.yawRad) * r.currentDistance
	offZ := math32.Cos(r.yawRad) * r.currentDistance

	r.position = mgl32.Vec3{t[0] + offX, t[1] + r.verticalOffset, t[2] + offZ}
	r.lookAt = mgl32.Vec3{t[0], r.position[1], t[2]}

	if o := r.cfg.Override; o != nil {
		pinned := mgl32.Vec3{o[0], o[1], o[2]}
		r.lookAt = r.lookAt.Add(pinned.Sub(r.position))
		r.position = pinned
	}
}

func (r *verticalZoomRigImpl) Position() (x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position[0], r.position[1], r.position[2]
}

func (r *verticalZoomRigImpl) Target() (x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookAt[0], r.lookAt[1], r.lookAt[2]
}

func (r *verticalZoomRigImpl) SetTarget(x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.Target = [3]float32{x, y, z}
	r.applyTransform()
}

func (r *verticalZoomRigImpl) SetConfig(cfg RigConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg.clone().normalized()
	r.yawRad = mgl32.DegToRad(r.cfg.YawDeg)
	r.targetDistance = common.Clamp(r.targetDistance, r.cfg.MinDistance, r.cfg.MaxDistance)
	r.currentDistance = common.Clamp(r.currentDistance, r.cfg.MinDistance, r.cfg.MaxDistance)
	r.applyTransform()
}

func (r *verticalZoomRigImpl) Config() RigConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.clone()
}

func (r *verticalZoomRigImpl) Velocity() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.velocity
}

func (r *verticalZoomRigImpl) VerticalOffset() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verticalOffset
}

func (r *verticalZoomRigImpl) TargetDistance() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targetDistance
}

func (r *verticalZoomRigImpl) CurrentDistance() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentDistance
}

func (r *verticalZoomRigImpl) KeyDirection() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys.Direction()
}

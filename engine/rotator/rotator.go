package rotator

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpeedDeg is the rotation speed in degrees per second when none is configured.
const DefaultSpeedDeg = 90

type yawRotatorImpl struct {
	mu *sync.Mutex

	target   *scene.Node
	speedRad float32
	keys     input.Axis
}

// YawRotator spins a bound scene node about its local +Y axis while one of
// its two keys is held. A is -1 and D is +1 by default; the last key pressed wins.
type YawRotator interface {
	input.Handler

	// Bind sets the node to rotate, replacing any previous target.
	//
	// Parameters:
	//   - target: the node to rotate; nil unbinds
	Bind(target *scene.Node)

	// Unbind releases the target. Key state is kept.
	Unbind()

	// Target returns the bound node, or nil.
	Target() *scene.Node

	// Update adds direction*speed*dt to the target's yaw. Does nothing when
	// unbound, idle or when dt is not positive.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// SetSpeedDegrees changes the rotation speed.
	//
	// Parameters:
	//   - deg: degrees per second
	SetSpeedDegrees(deg float32)

	// SpeedDegrees returns the rotation speed in degrees per second.
	SpeedDegrees() float32

	// KeyDirection returns -1, 0 or +1.
	KeyDirection() int
}

var _ YawRotator = &yawRotatorImpl{}

// NewYawRotator creates an unbound rotator turning at DefaultSpeedDeg.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - YawRotator: the new rotator
func NewYawRotator(options ...RotatorBuilderOption) YawRotator {
	r := &yawRotatorImpl{
		mu:       &sync.Mutex{},
		speedRad: mgl32.DegToRad(DefaultSpeedDeg),
		keys:     input.NewAxis(common.KeyD, common.KeyA),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *yawRotatorImpl) HandleInput(ev input.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys.Handle(ev)
}

func (r *yawRotatorImpl) Bind(target *scene.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
}

func (r *yawRotatorImpl) Unbind() {
	r.Bind(nil)
}

func (r *yawRotatorImpl) Target() *scene.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

func (r *yawRotatorImpl) Update(dt float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := r.keys.Direction()
	if r.target == nil || dir == 0 || dt <= 0 {
		return
	}
	r.target.AddYaw(float32(dir) * r.speedRad * dt)
}

func (r *yawRotatorImpl) SetSpeedDegrees(deg float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speedRad = mgl32.DegToRad(deg)
}

func (r *yawRotatorImpl) SpeedDegrees() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mgl32.RadToDeg(r.speedRad)
}

func (r *yawRotatorImpl) KeyDirection() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys.Direction()
}

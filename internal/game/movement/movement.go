// Package movement integrates keyboard driven speeds into first-person
// camera motion, rejecting steps that leave the ground or hit an object.
package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/grove/internal/engine/camera"
	"github.com/Faultbox/grove/internal/game/world"
	"github.com/Faultbox/grove/internal/logger"
)

// DefaultRunMultiplier scales translation speeds while the run modifier is held.
const DefaultRunMultiplier float32 = 3

// Speeds are the current signed speeds. Dolly, truck and jump are in units
// per second, pan in radians per second. Zero means idle.
type Speeds struct {
	Dolly float32
	Truck float32
	Pan   float32
	Jump  float32
}

// Idle reports whether every speed is zero.
func (s Speeds) Idle() bool {
	return s == Speeds{}
}

// Rejection tells why a translation was dropped for a step.
type Rejection int

const (
	NotRejected Rejection = iota
	RejectedBounds
	RejectedCollision
)

func (r Rejection) String() string {
	switch r {
	case RejectedBounds:
		return "bounds"
	case RejectedCollision:
		return "collision"
	}
	return "none"
}

// JumpTransition is a change of jump phase during a step.
type JumpTransition int

const (
	JumpUnchanged JumpTransition = iota
	JumpStarted
	JumpDescending
	JumpLanded
)

func (j JumpTransition) String() string {
	switch j {
	case JumpStarted:
		return "started"
	case JumpDescending:
		return "descending"
	case JumpLanded:
		return "landed"
	}
	return "unchanged"
}

// StepResult describes what one Update did.
type StepResult struct {
	Dolly Rejection
	Truck Rejection
	// HitObject is the index of the object that rejected a move, or -1.
	HitObject int
	Jump      JumpTransition
	Eye       mgl32.Vec3
}

// Controller owns the movement speeds and applies them to a camera each frame.
type Controller struct {
	Camera        *camera.FirstPerson
	Ground        world.Ground
	Collider      *world.Collider
	RunMultiplier float32

	speeds Speeds
	log    *zap.Logger
}

// NewController creates a controller over the given camera and scene bounds.
func NewController(cam *camera.FirstPerson, ground world.Ground, collider *world.Collider) *Controller {
	return &Controller{
		Camera:        cam,
		Ground:        ground,
		Collider:      collider,
		RunMultiplier: DefaultRunMultiplier,
		log:           logger.Named("movement"),
	}
}

// Speeds returns the current speeds.
func (c *Controller) Speeds() Speeds { return c.speeds }

// SetSpeeds replaces the current speeds.
func (c *Controller) SetSpeeds(s Speeds) { c.speeds = s }

// Stop zeroes every speed.
func (c *Controller) Stop() { c.speeds = Speeds{} }

// SetWorld swaps the bounds and collider, e.g. after a scene reload.
func (c *Controller) SetWorld(ground world.Ground, collider *world.Collider) {
	c.Ground = ground
	c.Collider = collider
}

// HandleKey applies one key edge. Key-down sets a signed unit speed, scaled
// by the run multiplier for translations. Key-up clears a speed only when its
// sign matches the released key, so releasing one key does not cancel a
// still held opposing key. Jump starts only from idle and is never cancelled
// by release. It returns true when a jump started.
func (c *Controller) HandleKey(ev KeyEvent) bool {
	run := float32(1)
	if ev.Run && c.RunMultiplier > 0 {
		run = c.RunMultiplier
	}

	if ev.Down {
		switch ev.Key {
		case KeyForward:
			c.speeds.Dolly = run
		case KeyBackward:
			c.speeds.Dolly = -run
		case KeyTruckLeft:
			c.speeds.Truck = -run
		case KeyTruckRight:
			c.speeds.Truck = run
		case KeyPanLeft:
			c.speeds.Pan = -1
		case KeyPanRight:
			c.speeds.Pan = 1
		case KeyJump:
			if c.speeds.Jump == 0 {
				c.speeds.Jump = 1
				return true
			}
		}
		return false
	}

	switch ev.Key {
	case KeyForward:
		if c.speeds.Dolly > 0 {
			c.speeds.Dolly = 0
		}
	case KeyBackward:
		if c.speeds.Dolly < 0 {
			c.speeds.Dolly = 0
		}
	case KeyTruckLeft:
		if c.speeds.Truck < 0 {
			c.speeds.Truck = 0
		}
	case KeyTruckRight:
		if c.speeds.Truck > 0 {
			c.speeds.Truck = 0
		}
	case KeyPanLeft:
		if c.speeds.Pan < 0 {
			c.speeds.Pan = 0
		}
	case KeyPanRight:
		if c.speeds.Pan > 0 {
			c.speeds.Pan = 0
		}
	}
	return false
}

// Update advances one frame of dt seconds: key edges from in, jump gating,
// dolly and truck validation, then commit. A rejected translation moves
// nothing this frame and its speed stays zero until the key is pressed again.
// The committed jump is limited so the eye stays between floor and ceiling.
func (c *Controller) Update(dt float32, in InputState) StepResult {
	res := StepResult{HitObject: -1}

	for _, ev := range in.Events {
		if c.HandleKey(ev) {
			res.Jump = JumpStarted
		}
	}

	eye := c.Camera.Eye()

	// Jump gating
	if c.speeds.Jump > 0 && eye.Y() >= c.Ground.Ceiling() {
		c.speeds.Jump = -1
		res.Jump = JumpDescending
	}
	if c.speeds.Jump < 0 && eye.Y() <= c.Ground.FloorLevel {
		c.speeds.Jump = 0
		res.Jump = JumpLanded
	}

	if c.speeds.Dolly != 0 {
		candidate := eye.Add(c.Camera.Forward().Mul(c.speeds.Dolly * dt))
		if res.Dolly = c.validate(candidate, &res); res.Dolly != NotRejected {
			c.speeds.Dolly = 0
		}
	}
	if c.speeds.Truck != 0 {
		candidate := eye.Sub(c.Camera.Left().Mul(c.speeds.Truck * dt))
		if res.Truck = c.validate(candidate, &res); res.Truck != NotRejected {
			c.speeds.Truck = 0
		}
	}

	// Commit
	c.Camera.Dolly(c.speeds.Dolly * dt)
	c.Camera.Truck(c.speeds.Truck * dt)
	c.Camera.Pan(c.speeds.Pan * dt)
	if c.speeds.Jump != 0 {
		y := c.Camera.Eye().Y()
		c.Camera.Jump(c.Ground.ClampHeight(y+c.speeds.Jump*dt) - y)
	}

	res.Eye = c.Camera.Eye()
	c.logStep(res)
	return res
}

func (c *Controller) validate(candidate mgl32.Vec3, res *StepResult) Rejection {
	// Contains, not InBounds: a tilted target gives forward a vertical part.
	if !c.Ground.Contains(candidate) {
		return RejectedBounds
	}
	if i, hit := c.Collider.Hit(candidate); hit {
		res.HitObject = i
		return RejectedCollision
	}
	return NotRejected
}

func (c *Controller) logStep(res StepResult) {
	if res.Dolly != NotRejected {
		c.log.Debug("dolly rejected",
			zap.Stringer("reason", res.Dolly),
			zap.Int("object", res.HitObject))
	}
	if res.Truck != NotRejected {
		c.log.Debug("truck rejected",
			zap.Stringer("reason", res.Truck),
			zap.Int("object", res.HitObject))
	}
	if res.Jump != JumpUnchanged {
		c.log.Debug("jump",
			zap.Stringer("phase", res.Jump),
			zap.Float32("eye_y", res.Eye.Y()))
	}
}

package render

import "github.com/taigrr/raster3d/pkg/math3d"

// ActionMask is a bitmask of simultaneously-active movement/turn actions,
// written by the input loop and consumed once per tick by
// Pose.UpdateAttitude.
type ActionMask uint16

const ActionNone ActionMask = 0

const (
	ActionMoveForward ActionMask = 1 << iota
	ActionMoveLeft
	ActionMoveBack
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionTurnUp
	ActionTurnLeft
	ActionTurnDown
	ActionTurnRight
)

// worldUp is the fixed yaw axis, independent of the pose's own orientation.
var worldUp = math3d.V3(0, 1, 0)

// Pose is a positioned, oriented object: a world position and a forward
// (G) / up (Up) unit-vector frame, driven by an action bitmask rather than
// Euler angles.
type Pose struct {
	WPos math3d.Vec3
	G    math3d.Vec3
	Up   math3d.Vec3

	State  ActionMask
	Speed  float64 // linear units per UpdateAttitude call
	RSpeed float64 // radians per UpdateAttitude call
}

// NewPose returns a Pose at the origin looking down -Z with +Y up.
func NewPose() Pose {
	return Pose{
		G:      math3d.V3(0, 0, -1),
		Up:     math3d.V3(0, 1, 0),
		Speed:  1,
		RSpeed: 0.05,
	}
}

// SetState replaces the active action bitmask wholesale.
func (p *Pose) SetState(state ActionMask) {
	p.State = state
}

// SetAction turns a single action bit on or off, leaving the rest of the
// mask untouched.
func (p *Pose) SetAction(a ActionMask, on bool) {
	if on {
		p.State |= a
	} else {
		p.State &^= a
	}
}

// UpdateAttitude applies one tick of movement/rotation for every action bit
// currently set in State. Move actions translate along the pose's
// horizontal forward/right (derived from G, flattened to the XZ plane) or
// along Up; turn actions rotate G and Up by Rodrigues' formula, pitch about
// G×Up and yaw about world up, then renormalize (no Gram-Schmidt
// re-orthogonalization).
func (p *Pose) UpdateAttitude() {
	if p.State == ActionNone {
		return
	}

	horizForward := math3d.V3(p.G.X, 0, p.G.Z).Normalize()
	horizRight := horizForward.Cross(worldUp)

	if p.State&ActionMoveForward != 0 {
		p.WPos = p.WPos.Add(horizForward.Scale(p.Speed))
	}
	if p.State&ActionMoveBack != 0 {
		p.WPos = p.WPos.Sub(horizForward.Scale(p.Speed))
	}
	if p.State&ActionMoveLeft != 0 {
		p.WPos = p.WPos.Sub(horizRight.Scale(p.Speed))
	}
	if p.State&ActionMoveRight != 0 {
		p.WPos = p.WPos.Add(horizRight.Scale(p.Speed))
	}
	if p.State&ActionMoveUp != 0 {
		p.WPos = p.WPos.Add(p.Up.Scale(p.Speed))
	}
	if p.State&ActionMoveDown != 0 {
		p.WPos = p.WPos.Sub(p.Up.Scale(p.Speed))
	}

	gxup := p.G.Cross(p.Up)
	if p.State&ActionTurnUp != 0 {
		p.G = p.G.RotateAround(gxup, p.RSpeed)
		p.Up = p.Up.RotateAround(gxup, p.RSpeed)
	}
	if p.State&ActionTurnDown != 0 {
		p.G = p.G.RotateAround(gxup, -p.RSpeed)
		p.Up = p.Up.RotateAround(gxup, -p.RSpeed)
	}
	if p.State&ActionTurnLeft != 0 {
		p.G = p.G.RotateAround(worldUp, p.RSpeed)
		p.Up = p.Up.RotateAround(worldUp, p.RSpeed)
	}
	if p.State&ActionTurnRight != 0 {
		p.G = p.G.RotateAround(worldUp, -p.RSpeed)
		p.Up = p.Up.RotateAround(worldUp, -p.RSpeed)
	}
}

// Package pose implements rigid-body poses: a position vector plus an
// orientation quaternion with lazily computed 4x4 transform matrices.
//
// Poses assume a right-handed coordinate system (-Z forward, +Y up).
// Model matrices and their inverses are cached and only rebuilt when the
// position or orientation changed since the last read, so repeated reads
// between rare writes stay cheap. The forward and inverse caches are
// tracked independently; reading only the forward matrix never pays for
// the inverse.
package pose

import (
	"github.com/visionlab/stim3d/pkg/math"
)

// HasPosition is satisfied by anything that exposes a scene position.
type HasPosition interface {
	Pos() math.Vec3
}

// HasOrientation is satisfied by anything that exposes an orientation
// quaternion.
type HasOrientation interface {
	Ori() math.Quat
}

// PoseLike is the capability contract a type must satisfy to stand in
// for a *Pose on a stimulus (eg. a tracker-driven pose source).
type PoseLike interface {
	HasPosition
	HasOrientation
	SetPos(math.Vec3)
	SetOri(math.Quat)
	ModelMatrix() math.Mat4
}

// Pose is a rigid-body pose.
//
// Orientation quaternions are stored as given: a non-unit quaternion is
// accepted without validation, normalization is the caller's
// responsibility.
type Pose struct {
	pos math.Vec3
	ori math.Quat

	model    math.Mat4
	invModel math.Mat4

	matrixDirty    bool
	invMatrixDirty bool

	// rebuild counters, read by white-box tests
	modelBuilds int
	invBuilds   int
}

// Epsilon is the fixed tolerance used by ApproxEqual.
const Epsilon = 1e-5

// New creates a pose from a position and an orientation quaternion.
func New(pos math.Vec3, ori math.Quat) *Pose {
	return &Pose{
		pos:            pos,
		ori:            ori,
		matrixDirty:    true,
		invMatrixDirty: true,
	}
}

// Identity returns a pose at the origin with no rotation.
func Identity() *Pose {
	return New(math.Vec3{}, math.QuatIdentity())
}

// Pos returns the position vector.
func (p *Pose) Pos() math.Vec3 { return p.pos }

// SetPos sets the position and invalidates both matrix caches.
func (p *Pose) SetPos(v math.Vec3) {
	p.pos = v
	p.matrixDirty = true
	p.invMatrixDirty = true
}

// Ori returns the orientation quaternion (x, y, z, w).
func (p *Pose) Ori() math.Quat { return p.ori }

// SetOri sets the orientation and invalidates both matrix caches.
func (p *Pose) SetOri(q math.Quat) {
	p.ori = q
	p.matrixDirty = true
	p.invMatrixDirty = true
}

// OriAxisAngle returns the orientation as an axis and an angle in
// degrees.
func (p *Pose) OriAxisAngle() (math.Vec3, float32) {
	axis, rad := p.ori.ToAxisAngle()
	return axis, math.Degrees(rad)
}

// SetOriAxisAngle sets the orientation from an axis and an angle in
// degrees. The axis should be normalized.
func (p *Pose) SetOriAxisAngle(axis math.Vec3, degrees float32) {
	p.SetOri(math.QuatFromAxisAngle(axis, math.Radians(degrees)))
}

// ModelMatrix returns the pose as a 4x4 transform matrix, rebuilding the
// cached matrix only if the position or orientation changed since the
// last call.
func (p *Pose) ModelMatrix() math.Mat4 {
	if p.matrixDirty {
		p.model = math.TranslateRotate(p.pos, p.ori)
		p.matrixDirty = false
		p.modelBuilds++
	}
	return p.model
}

// InverseModelMatrix returns the inverse transform, rebuilding its cache
// only when stale. The forward matrix is refreshed first if needed.
func (p *Pose) InverseModelMatrix() math.Mat4 {
	if p.invMatrixDirty {
		m := p.ModelMatrix()
		p.invModel = m.RigidInverse()
		p.invMatrixDirty = false
		p.invBuilds++
	}
	return p.invModel
}

// Mul combines two poses into a new one.
//
// Positions are added directly and orientations quaternion-multiplied.
// The other pose's position is NOT rotated by this pose's orientation
// first, so this is not standard parent/child matrix concatenation.
// Callers chaining transforms must account for that.
func (p *Pose) Mul(other *Pose) *Pose {
	return New(p.pos.Add(other.pos), p.ori.Mul(other.ori))
}

// Invert inverts the pose in place: negated position, inverted
// orientation.
func (p *Pose) Invert() {
	p.SetPos(p.pos.Negate())
	p.SetOri(p.ori.Inverse())
}

// Inverted returns a new pose which is the inverse of this one.
// Multiplying a pose by its inverse yields the identity pose.
func (p *Pose) Inverted() *Pose {
	return New(p.pos.Negate(), p.ori.Inverse())
}

// TransformPoint applies the pose to a point: rotation first, then
// translation.
func (p *Pose) TransformPoint(v math.Vec3) math.Vec3 {
	return p.ori.Rotate(v).Add(p.pos)
}

// DistanceTo returns the Euclidean distance between this pose's origin
// and another positioned object.
func (p *Pose) DistanceTo(target HasPosition) float32 {
	return p.DistanceToPoint(target.Pos())
}

// DistanceToPoint returns the Euclidean distance to a point.
func (p *Pose) DistanceToPoint(v math.Vec3) float32 {
	return p.pos.Distance(v)
}

// ApproxEqual reports whether two poses have effectively the same
// position and orientation within a fixed tolerance.
func (p *Pose) ApproxEqual(other *Pose) bool {
	return p.pos.ApproxEqual(other.pos, Epsilon) &&
		p.ori.ApproxEqual(other.ori, Epsilon)
}

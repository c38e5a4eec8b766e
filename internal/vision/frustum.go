package vision

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Plane struct {
	Normal rl.Vector3
	D      float32
}

func (p Plane) Distance(v rl.Vector3) float32 {
	return p.Normal.X*v.X + p.Normal.Y*v.Y + p.Normal.Z*v.Z + p.D
}

// Frustum holds the six clip planes (left, right, bottom, top, near, far)
// with normals pointing inwards.
type Frustum [6]Plane

// NewFrustum extracts the clip planes of a combined view-projection matrix.
func NewFrustum(m rl.Matrix) Frustum {
	rows := [4][4]float32{
		{m.M0, m.M4, m.M8, m.M12},
		{m.M1, m.M5, m.M9, m.M13},
		{m.M2, m.M6, m.M10, m.M14},
		{m.M3, m.M7, m.M11, m.M15},
	}
	plane := func(sign float32, r [4]float32) Plane {
		w := rows[3]
		p := Plane{
			Normal: rl.NewVector3(w[0]+sign*r[0], w[1]+sign*r[1], w[2]+sign*r[2]),
			D:      w[3] + sign*r[3],
		}
		l := math32.Sqrt(p.Normal.X*p.Normal.X + p.Normal.Y*p.Normal.Y + p.Normal.Z*p.Normal.Z)
		if l > 0 {
			p.Normal = rl.Vector3Scale(p.Normal, 1/l)
			p.D /= l
		}
		return p
	}
	return Frustum{
		plane(1, rows[0]), plane(-1, rows[0]),
		plane(1, rows[1]), plane(-1, rows[1]),
		plane(1, rows[2]), plane(-1, rows[2]),
	}
}

// IntersectsBox is conservative: it may accept boxes near frustum corners
// that are in fact outside, but never rejects a box that is inside.
func (f Frustum) IntersectsBox(box rl.BoundingBox) bool {
	for _, p := range f {
		v := box.Min
		if p.Normal.X > 0 {
			v.X = box.Max.X
		}
		if p.Normal.Y > 0 {
			v.Y = box.Max.Y
		}
		if p.Normal.Z > 0 {
			v.Z = box.Max.Z
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// Project maps a world point to pixel coordinates (origin top-left).
// inFront is false for points at or behind the camera plane, in which case
// the pixel coordinates are meaningless.
func Project(v rl.Vector3, viewProj rl.Matrix, screen rl.Vector2) (pixel rl.Vector2, inFront bool) {
	m := viewProj
	cx := m.M0*v.X + m.M4*v.Y + m.M8*v.Z + m.M12
	cy := m.M1*v.X + m.M5*v.Y + m.M9*v.Z + m.M13
	cz := m.M2*v.X + m.M6*v.Y + m.M10*v.Z + m.M14
	cw := m.M3*v.X + m.M7*v.Y + m.M11*v.Z + m.M15
	if cw == 0 {
		return rl.Vector2{}, false
	}
	nx, ny, nz := cx/cw, cy/cw, cz/cw
	pixel = rl.NewVector2((nx+1)/2*screen.X, (1-ny)/2*screen.Y)
	return pixel, cw > 0 && nz < 1
}

package renderer

import "github.com/go-gl/mathgl/mgl32"

// clipPlane is a half-space a·x + d >= 0, normal pointing into the frustum.
type clipPlane struct {
	normal mgl32.Vec3
	d      float32
}

func (p clipPlane) distanceTo(pt mgl32.Vec3) float32 {
	return p.normal.Dot(pt) + p.d
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	planes [6]clipPlane // left, right, bottom, top, near, far
}

// FrustumFromVP extracts the normalised clip planes from a
// projection*view matrix (Gribb/Hartmann).
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.planes[0] = normalizePlane(r3.Add(r0))
	f.planes[1] = normalizePlane(r3.Sub(r0))
	f.planes[2] = normalizePlane(r3.Add(r1))
	f.planes[3] = normalizePlane(r3.Sub(r1))
	f.planes[4] = normalizePlane(r3.Add(r2))
	f.planes[5] = normalizePlane(r3.Sub(r2))
	return f
}

func normalizePlane(v mgl32.Vec4) clipPlane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return clipPlane{}
	}
	return clipPlane{normal: n.Mul(1 / l), d: v.W() / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// unitCube bounds every built-in shape in its local space.
var unitCube = AABB{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}

// IntersectsFrustum returns false if the box is completely outside the
// frustum, using the positive-vertex test per plane.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.planes {
		var pv mgl32.Vec3
		for a := 0; a < 3; a++ {
			pv[a] = box.Max[a]
			if p.normal[a] < 0 {
				pv[a] = box.Min[a]
			}
		}
		if p.distanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// TransformAABB returns the world bounds of a local box under m.
func TransformAABB(local AABB, m mgl32.Mat4) AABB {
	mn, mx := local.Min, local.Max
	var out AABB
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{mn[0], mn[1], mn[2]}
		if i&1 != 0 {
			c[0] = mx[0]
		}
		if i&2 != 0 {
			c[1] = mx[1]
		}
		if i&4 != 0 {
			c[2] = mx[2]
		}
		wp := mgl32.TransformCoordinate(c, m)
		if i == 0 {
			out = AABB{Min: wp, Max: wp}
			continue
		}
		for a := 0; a < 3; a++ {
			if wp[a] < out.Min[a] {
				out.Min[a] = wp[a]
			}
			if wp[a] > out.Max[a] {
				out.Max[a] = wp[a]
			}
		}
	}
	return out
}

// CullObjects drops placed objects that lie entirely outside the view
// frustum and returns how many were dropped. The ground and the actor are
// always kept.
func (f *Frame) CullObjects() int {
	frustum := FrustumFromVP(f.Projection.Mul4(f.View))
	kept := f.Objects[:0]
	for _, item := range f.Objects {
		if TransformAABB(unitCube, item.Model).IntersectsFrustum(&frustum) {
			kept = append(kept, item)
		}
	}
	culled := len(f.Objects) - len(kept)
	f.Objects = kept
	return culled
}

package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func lookDownNegZ() Frustum {
	proj := mgl32.Perspective(math.Pi/4, 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return FrustumFromVP(proj.Mul4(view))
}

func TestAABBIntersectsFrustum(t *testing.T) {
	f := lookDownNegZ()
	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"ahead", AABB{mgl32.Vec3{-1, -1, -11}, mgl32.Vec3{1, 1, -9}}, true},
		{"behind", AABB{mgl32.Vec3{-1, -1, 9}, mgl32.Vec3{1, 1, 11}}, false},
		{"far left", AABB{mgl32.Vec3{-60, -1, -11}, mgl32.Vec3{-50, 1, -9}}, false},
		{"beyond far", AABB{mgl32.Vec3{-1, -1, -300}, mgl32.Vec3{1, 1, -200}}, false},
		{"straddles near", AABB{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.IntersectsFrustum(&f); got != tt.want {
				t.Errorf("IntersectsFrustum: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTransformAABB(t *testing.T) {
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 4, 2))
	got := TransformAABB(unitCube, m)
	want := AABB{mgl32.Vec3{9, -2, -1}, mgl32.Vec3{11, 2, 1}}
	if !within(got.Min[:], want.Min[:]) || !within(got.Max[:], want.Max[:]) {
		t.Errorf("TransformAABB: expected %v, got %v", want, got)
	}
}

func TestCullObjectsKeepsVisible(t *testing.T) {
	s := testScene(t)
	f := BuildFrame(s)
	total := len(f.Objects)

	culled := f.CullObjects()
	if culled+len(f.Objects) != total {
		t.Errorf("CullObjects: %d culled + %d kept != %d", culled, len(f.Objects), total)
	}
	if culled == 0 {
		t.Error("CullObjects: expected some objects outside the orbit view")
	}
	if len(f.Objects) == 0 {
		t.Error("CullObjects: expected objects around the hero to stay visible")
	}
}

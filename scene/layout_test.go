package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// countParityCells counts candidate cells satisfying the parity predicate,
// independently of GenerateLayout.
func countParityCells(opts LayoutOptions) int {
	left, right, bottom, top := opts.Bounds()
	n := 0
	for i := int(left); float32(i) < right; i += opts.Spacing {
		for j := int(bottom); float32(j) < top; j += opts.Spacing {
			if i%2 != 0 && j%2 != 0 {
				n++
			}
		}
	}
	return n
}

func TestGenerateLayoutParityCount(t *testing.T) {
	opts := DefaultLayoutOptions()
	l := GenerateLayout(opts, NewLayoutRand(1))

	// [-55, 55) holds 55 odd coordinates per axis.
	if l.Len() != 55*55 {
		t.Errorf("Len: expected %d, got %d", 55*55, l.Len())
	}
	if want := countParityCells(opts); l.Len() != want {
		t.Errorf("Len: expected %d parity cells, got %d", want, l.Len())
	}
}

func TestGenerateLayoutKeepProbabilityBounds(t *testing.T) {
	opts := CityLayoutOptions()

	opts.KeepProbability = 0
	if l := GenerateLayout(opts, NewLayoutRand(7)); l.Len() != 0 {
		t.Errorf("p=0: expected empty layout, got %d objects", l.Len())
	}

	opts.KeepProbability = 1
	l := GenerateLayout(opts, NewLayoutRand(7))
	if want := countParityCells(opts); l.Len() != want {
		t.Errorf("p=1: expected %d objects, got %d", want, l.Len())
	}
}

func TestGenerateLayoutDeterministicUnderSeed(t *testing.T) {
	opts := CityLayoutOptions()
	a := GenerateLayout(opts, NewLayoutRand(1234)).Objects()
	b := GenerateLayout(opts, NewLayoutRand(1234)).Objects()

	if len(a) != len(b) {
		t.Fatalf("same seed: lengths differ %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed: object %d differs: %v vs %v", i, a[i], b[i])
		}
	}

	c := GenerateLayout(opts, NewLayoutRand(4321)).Objects()
	same := len(a) == len(c)
	for i := 0; same && i < len(a); i++ {
		same = a[i] == c[i]
	}
	if same {
		t.Error("different seeds: expected different layouts")
	}
}

func TestCellTransformCentersAtHalfHeight(t *testing.T) {
	for _, h := range []float32{0.3, 1, 2.5, 11} {
		for _, cell := range [][2]int{{-55, -55}, {3, 7}, {53, -1}} {
			m := CellTransform(cell[0], cell[1], h)

			center := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
			want := mgl32.Vec3{float32(cell[0]), h / 2, float32(cell[1])}
			if !vecApprox(center, want) {
				t.Errorf("center h=%v cell=%v: expected %v, got %v", h, cell, want, center)
			}

			bottom := m.Mul4x1(mgl32.Vec4{0, -0.5, 0, 1}).Vec3()
			if math.Abs(float64(bottom.Y())) > tolerance {
				t.Errorf("bottom h=%v: expected y=0, got %v", h, bottom.Y())
			}
			top := m.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
			if math.Abs(float64(top.Y()-h)) > tolerance {
				t.Errorf("top h=%v: expected y=%v, got %v", h, h, top.Y())
			}
		}
	}
}

func TestGeneratedObjectsSitOnOddCells(t *testing.T) {
	l := GenerateLayout(CityLayoutOptions(), NewLayoutRand(99))
	l.Each(func(o PlacedObject) {
		c := o.Transform.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		x := int(math.Round(float64(c.X())))
		z := int(math.Round(float64(c.Z())))
		if x%2 == 0 || z%2 == 0 {
			t.Errorf("object at (%d,%d) violates the parity predicate", x, z)
		}
		if c.Y() <= 0 {
			t.Errorf("object at (%d,%d) has non-positive centre height %v", x, z, c.Y())
		}
	})
}

func TestCityHeightsAndColors(t *testing.T) {
	opts := CityLayoutOptions()
	l := GenerateLayout(opts, NewLayoutRand(5))
	if l.Len() == 0 {
		t.Fatal("expected objects in city layout")
	}

	short := 0
	for _, o := range l.Objects() {
		h := o.Transform.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Y() * 2
		if h < opts.HeightOffset-tolerance || h > opts.HeightOffset+opts.HeightScale+tolerance {
			t.Fatalf("height %v outside [%v, %v]", h, opts.HeightOffset, opts.HeightOffset+opts.HeightScale)
		}
		if h < opts.HeightOffset+opts.HeightScale/2 {
			short++
		}
		for k := 0; k < 3; k++ {
			if o.Color[k] < 0 || o.Color[k] >= 1 {
				t.Fatalf("colour channel %v outside [0,1)", o.Color[k])
			}
		}
	}
	// u^2.5 < 0.5 for u < 0.758, so roughly three quarters are short.
	if short*2 < l.Len() {
		t.Errorf("expected most buildings short, got %d of %d", short, l.Len())
	}
}

func TestLayoutStaysInsideDomain(t *testing.T) {
	opts := DefaultLayoutOptions()
	l := GenerateLayout(opts, NewLayoutRand(3))
	ex, ez := l.Extent()
	_, right, _, top := opts.Bounds()
	if ex > right || ez > top {
		t.Errorf("Extent: (%v,%v) outside domain (%v,%v)", ex, ez, right, top)
	}
	if ex != 55 || ez != 55 {
		t.Errorf("Extent: expected 55, got (%v,%v)", ex, ez)
	}
}

func TestLayoutObjectsIsACopy(t *testing.T) {
	l := GenerateLayout(DefaultLayoutOptions(), NewLayoutRand(1))
	objs := l.Objects()
	objs[0].Color = mgl32.Vec3{1, 0, 0}
	if l.At(0).Color == objs[0].Color {
		t.Error("Objects: mutating the copy changed the layout")
	}
}

func TestGenerateLayoutZeroSpacing(t *testing.T) {
	opts := DefaultLayoutOptions()
	opts.Spacing = 0
	if l := GenerateLayout(opts, NewLayoutRand(1)); l.Len() != 0 {
		t.Errorf("Spacing 0: expected empty layout, got %d", l.Len())
	}
}

func BenchmarkGenerateCityLayout(b *testing.B) {
	opts := CityLayoutOptions()
	for i := 0; i < b.N; i++ {
		_ = GenerateLayout(opts, NewLayoutRand(int64(i+1)))
	}
}

package scene

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LayoutStyle selects how heights and colours are chosen for kept cells.
type LayoutStyle int

const (
	// LayoutTiles gives every cell the same height and colour.
	LayoutTiles LayoutStyle = iota
	// LayoutCity draws height = u^2.5*HeightScale + HeightOffset and a random
	// colour per cell, so most buildings are short with a few tall ones.
	LayoutCity
)

// cityHeightExponent shapes the city height distribution.
const cityHeightExponent = 2.5

// PlacedObject is one generated scenery element: a unit cube transform and
// its colour.
type PlacedObject struct {
	Transform mgl32.Mat4
	Color     mgl32.Vec3
}

// LayoutOptions controls procedural grid generation.
// Width/Length are the grid size in world units; the domain is extended by
// Margin on each side and walked in steps of Spacing.
// KeepProbability is a Bernoulli threshold applied after the parity filter.
// Seed 0 selects a time-based seed in NewLayoutRand.
type LayoutOptions struct {
	Style           LayoutStyle
	Width           float32
	Length          float32
	Spacing         int
	Margin          float32
	KeepProbability float64
	RequireOddCells bool

	TileHeight   float32
	TileColor    mgl32.Vec3
	HeightScale  float32
	HeightOffset float32

	Seed int64
}

// DefaultLayoutOptions returns the gray tile grid: 100x100 with a 5 unit
// margin, odd cells only, every candidate kept.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Style:           LayoutTiles,
		Width:           100,
		Length:          100,
		Spacing:         1,
		Margin:          5,
		KeepProbability: 1,
		RequireOddCells: true,
		TileHeight:      0.3,
		TileColor:       mgl32.Vec3{0.4, 0.4, 0.4},
		HeightScale:     10,
		HeightOffset:    1,
	}
}

// CityLayoutOptions returns the randomised city variant of the defaults.
func CityLayoutOptions() LayoutOptions {
	opts := DefaultLayoutOptions()
	opts.Style = LayoutCity
	opts.KeepProbability = 0.6
	return opts
}

// Bounds returns the half-open generation domain [left, right) x [bottom, top).
func (o LayoutOptions) Bounds() (left, right, bottom, top float32) {
	halfW := o.Width/2 + o.Margin
	halfL := o.Length/2 + o.Margin
	return -halfW, halfW, -halfL, halfL
}

// NewLayoutRand returns the generator's random source. A zero seed draws a
// time-based one.
func NewLayoutRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Layout is the immutable result of one generation run.
type Layout struct {
	objects []PlacedObject
	extentX float32
	extentZ float32
}

// Len returns the number of placed objects.
func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.objects)
}

// At returns the i-th placed object.
func (l *Layout) At(i int) PlacedObject {
	return l.objects[i]
}

// Objects returns a copy of the placed objects.
func (l *Layout) Objects() []PlacedObject {
	if l == nil {
		return nil
	}
	out := make([]PlacedObject, len(l.objects))
	copy(out, l.objects)
	return out
}

// Each visits every placed object in generation order.
func (l *Layout) Each(fn func(PlacedObject)) {
	if l == nil {
		return
	}
	for _, o := range l.objects {
		fn(o)
	}
}

// Extent returns the largest |x| and |z| cell coordinate that received an
// object.
func (l *Layout) Extent() (float32, float32) {
	if l == nil {
		return 0, 0
	}
	return l.extentX, l.extentZ
}

// isOdd matches C-style remainder semantics: negative odd numbers count.
func isOdd(v int) bool {
	return v%2 != 0
}

// KeepCell reports whether the parity part of the keep predicate admits the
// cell. The Bernoulli part is drawn separately in GenerateLayout.
func (o LayoutOptions) KeepCell(i, j int) bool {
	if !o.RequireOddCells {
		return true
	}
	return isOdd(i) && isOdd(j)
}

// CellTransform composes the model matrix of a building of the given height
// standing on cell (i, j): lift * scale * translate.
func CellTransform(i, j int, height float32) mgl32.Mat4 {
	transToSpot := mgl32.Translate3D(float32(i), 0, float32(j))
	scaleToHeight := mgl32.Scale3D(1, height, 1)
	transToHeight := mgl32.Translate3D(0, height/2, 0)
	return transToHeight.Mul4(scaleToHeight).Mul4(transToSpot)
}

// GenerateLayout walks the grid once and returns the placed objects.
// Cell coordinates are integers starting at int(left) and advancing by
// Spacing while below the right/top bound.
func GenerateLayout(opts LayoutOptions, rng *rand.Rand) *Layout {
	l := &Layout{}
	if opts.Spacing <= 0 {
		return l
	}
	if rng == nil {
		rng = NewLayoutRand(opts.Seed)
	}

	left, right, bottom, top := opts.Bounds()

	for i := int(left); float32(i) < right; i += opts.Spacing {
		for j := int(bottom); float32(j) < top; j += opts.Spacing {
			if !opts.KeepCell(i, j) {
				continue
			}
			if opts.KeepProbability < 1 && rng.Float64() >= opts.KeepProbability {
				continue
			}

			height := opts.TileHeight
			color := opts.TileColor
			if opts.Style == LayoutCity {
				u := rng.Float64()
				height = math32.Pow(float32(u), cityHeightExponent)*opts.HeightScale + opts.HeightOffset
				color = mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()}
			}

			l.objects = append(l.objects, PlacedObject{
				Transform: CellTransform(i, j, height),
				Color:     color,
			})

			if ax := math32.Abs(float32(i)); ax > l.extentX {
				l.extentX = ax
			}
			if az := math32.Abs(float32(j)); az > l.extentZ {
				l.extentZ = az
			}
		}
	}
	return l
}

package geosphere

import (
	"github.com/Faultbox/geosphere/pkg/math"
)

// Patch is the tessellated geometry of a single face.
//
// Vertices are ordered row-major over the face grid: row i holds i+1 vertices,
// column m runs 0..i. Upward faces store rows 0..r, downward faces store rows
// r..0, so in both cases the apex vertex is the one in the single-vertex row.
type Patch struct {
	Vertices []math.Vec3
	UVs      []math.Vec2
	Indices  []uint32
}

// UV corners of the texture triangle for each orientation.
var (
	upApexUV    = math.Vec2{X: 0.5, Y: 1}
	upLeftUV    = math.Vec2{X: 0, Y: 0}
	upRightUV   = math.Vec2{X: 1, Y: 0}
	downApexUV  = math.Vec2{X: 0.5, Y: 0}
	downLeftUV  = math.Vec2{X: 0, Y: 1}
	downRightUV = math.Vec2{X: 1, Y: 1}
)

// TessellateFace tessellates icosahedron face f at resolution r.
func TessellateFace(f, r int) Patch {
	a, b, c := FaceCorners(f)
	return Tessellate(a, b, c, r, FaceOrientation(f))
}

// Tessellate subdivides the triangle (a, b, c) into r*r triangles and projects every
// grid point onto the unit sphere. a is the apex; row i interpolates between
// lerp(a, b, i/r) and lerp(a, c, i/r). r must be a power of two.
func Tessellate(a, b, c math.Vec3, r int, o Orientation) Patch {
	checkResolution(r)

	p := Patch{
		Vertices: make([]math.Vec3, VertexCount(r)),
		UVs:      make([]math.Vec2, VertexCount(r)),
		Indices:  make([]uint32, IndexCount(r)),
	}

	if o == Upward {
		tessellateUpward(&p, a, b, c, r)
	} else {
		tessellateDownward(&p, a, b, c, r)
	}
	return p
}

func tessellateUpward(p *Patch, a, b, c math.Vec3, r int) {
	vi, ti, top := 0, 0, 0
	for i := 0; i <= r; i++ {
		if i < r {
			ti, top = stitchUpward(p.Indices, ti, i+1, vi+i+1, top)
		}
		progress := float32(i) / float32(r)
		vi = fillRow(p, vi, i,
			a.Lerp(b, progress), a.Lerp(c, progress),
			upApexUV.Lerp(upLeftUV, progress), upApexUV.Lerp(upRightUV, progress))
	}
}

func tessellateDownward(p *Patch, a, b, c math.Vec3, r int) {
	vi, ti, top := 0, 0, 0
	for i := r; i >= 0; i-- {
		progress := float32(i) / float32(r)
		vi = fillRow(p, vi, i,
			a.Lerp(b, progress), a.Lerp(c, progress),
			downApexUV.Lerp(downLeftUV, progress), downApexUV.Lerp(downRightUV, progress))
		if i > 0 {
			ti, top = stitchDownward(p.Indices, ti, i, vi, top)
		}
	}
}

// fillRow writes the i+1 vertices of row i starting at vi and returns the next free index.
// Row 0 is the apex and is written as the single point from.
func fillRow(p *Patch, vi, i int, from, to math.Vec3, fromUV, toUV math.Vec2) int {
	if i == 0 {
		p.Vertices[vi] = from.Normalize()
		p.UVs[vi] = fromUV
		return vi + 1
	}
	for m := 0; m <= i; m++ {
		t := float32(m) / float32(i)
		p.Vertices[vi] = from.Lerp(to, t).Normalize()
		p.UVs[vi] = fromUV.Lerp(toUV, t)
		vi++
	}
	return vi
}

// stitchUpward joins the row starting at top to the longer row below it starting at
// bot, emitting 2*steps-1 triangles. It returns the next index slot and the start of
// the following top row.
func stitchUpward(idx []uint32, ti, steps, bot, top int) (int, int) {
	ti = emit(idx, ti, bot, top, bot+1)
	bot++
	for k := 1; k < steps; k++ {
		ti = emit(idx, ti, top, top+1, bot)
		top++
		ti = emit(idx, ti, bot, top, bot+1)
		bot++
	}
	return ti, top + 1
}

// stitchDownward joins the row starting at top to the shorter row after it starting
// at bot, emitting 2*steps-1 triangles.
func stitchDownward(idx []uint32, ti, steps, bot, top int) (int, int) {
	ti = emit(idx, ti, top, top+1, bot)
	top++
	for k := 1; k < steps; k++ {
		ti = emit(idx, ti, bot, top, bot+1)
		bot++
		ti = emit(idx, ti, top, top+1, bot)
		top++
	}
	return ti, top + 1
}

func emit(idx []uint32, ti, a, b, c int) int {
	idx[ti] = uint32(a)
	idx[ti+1] = uint32(b)
	idx[ti+2] = uint32(c)
	return ti + 3
}

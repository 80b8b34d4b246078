// Package geosphere generates geodesic spheres by subdividing the 20 faces of an
// icosahedron. Every face keeps its own vertex, UV and index buffer; smooth normals
// across face boundaries come from a per-vertex adjacency fan that points into the
// neighbouring faces' buffers.
package geosphere

import (
	"fmt"

	"github.com/Faultbox/geosphere/pkg/math"
)

// FaceCount is the number of icosahedron faces.
const FaceCount = 20

// MaxLevel is the deepest supported subdivision level.
const MaxLevel = 8

// Orientation tells whether a face's apex points to the top pole side (Upward)
// or to the bottom pole side (Downward).
type Orientation uint8

// Orientation values.
const (
	Upward   Orientation = iota // apex row first, rows grow towards the base
	Downward                    // base row first, rows shrink towards the apex
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Upward:
		return "Upward"
	case Downward:
		return "Downward"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// FaceOrientation returns the orientation of face f. Even faces point up, odd faces down.
func FaceOrientation(f int) Orientation {
	checkFace(f)
	if f%2 == 0 {
		return Upward
	}
	return Downward
}

// directions holds the icosahedron corners: top pole, the upper ring (entry 6 repeats
// entry 1 to close it), the lower ring (entry 12 repeats entry 7) and the bottom pole.
var directions = [14]math.Vec3{
	{X: 0, Y: 1, Z: 0},

	{X: 0, Y: 0.4472136, Z: -0.8944272},
	{X: 0.8506508, Y: 0.4472136, Z: -0.2763932},
	{X: 0.5257311, Y: 0.4472136, Z: 0.7236068},
	{X: -0.5257311, Y: 0.4472136, Z: 0.7236068},
	{X: -0.8506508, Y: 0.4472136, Z: -0.2763932},
	{X: 0, Y: 0.4472136, Z: -0.8944272},

	{X: 0.5257311, Y: -0.4472136, Z: -0.7236068},
	{X: 0.8506508, Y: -0.4472136, Z: 0.2763932},
	{X: 0, Y: -0.4472136, Z: 0.8944272},
	{X: -0.8506508, Y: -0.4472136, Z: 0.2763932},
	{X: -0.5257311, Y: -0.4472136, Z: -0.7236068},
	{X: 0.5257311, Y: -0.4472136, Z: -0.7236068},

	{X: 0, Y: -1, Z: 0},
}

// Direction returns entry i of the corner direction table.
func Direction(i int) math.Vec3 {
	return directions[i]
}

// faceNeighbours lists, for every face, itself followed by the 9 faces around it in a
// fixed cyclic order. Slot meanings depend on the face's orientation; the adjacency
// builder is the only consumer.
var faceNeighbours = [FaceCount][10]int{
	{0, 16, 12, 8, 4, 5, 2, 1, 18, 17},
	{1, 0, 4, 5, 2, 3, 19, 18, 17, 16},
	{2, 1, 0, 4, 5, 6, 7, 3, 19, 18},
	{3, 2, 5, 6, 7, 11, 15, 19, 18, 1},
	{4, 0, 16, 12, 8, 9, 6, 5, 2, 1},
	{5, 4, 8, 9, 6, 7, 3, 2, 1, 0},
	{6, 5, 4, 8, 9, 10, 11, 7, 3, 2},
	{7, 6, 9, 10, 11, 15, 19, 3, 2, 5},
	{8, 4, 0, 16, 12, 13, 10, 9, 6, 5},
	{9, 8, 12, 13, 10, 11, 7, 6, 5, 4},
	{10, 9, 8, 12, 13, 14, 15, 11, 7, 6},
	{11, 10, 13, 14, 15, 19, 3, 7, 6, 9},
	{12, 8, 4, 0, 16, 17, 14, 13, 10, 9},
	{13, 12, 16, 17, 14, 15, 11, 10, 9, 8},
	{14, 13, 12, 16, 17, 18, 19, 15, 11, 10},
	{15, 14, 17, 18, 19, 3, 7, 11, 10, 13},
	{16, 12, 8, 4, 0, 1, 18, 17, 14, 13},
	{17, 16, 0, 1, 18, 19, 15, 14, 13, 12},
	{18, 17, 16, 0, 1, 2, 3, 19, 15, 14},
	{19, 18, 1, 2, 3, 7, 11, 15, 14, 17},
}

// Neighbours returns the neighbour table row of face f.
func Neighbours(f int) [10]int {
	checkFace(f)
	return faceNeighbours[f]
}

// FaceCorners returns the three corner directions of face f in tessellation order:
// the apex first, then the two base corners.
//
// Faces come in groups of four per upper-ring step d (1..5): a top-pole cap, the
// downward face below it, the upward face on the lower ring and the bottom-pole cap.
func FaceCorners(f int) (a, b, c math.Vec3) {
	checkFace(f)
	d := f/4 + 1
	switch f % 4 {
	case 0:
		return directions[0], directions[d], directions[d+1]
	case 1:
		return directions[d+6], directions[d], directions[d+1]
	case 2:
		return directions[d+1], directions[d+6], directions[d+7]
	default:
		return directions[13], directions[d+6], directions[d+7]
	}
}

// Resolution returns the edge subdivision count 2^level.
func Resolution(level int) int {
	return 1 << level
}

// VertexCount returns the number of vertices in one face's grid at resolution r.
func VertexCount(r int) int {
	return (r + 1) * (r + 2) / 2
}

// IndexCount returns the length of one face's triangle index buffer at resolution r.
func IndexCount(r int) int {
	return 3 * r * r
}

// UniqueVertexCount returns the number of distinct points of a sphere at resolution r.
func UniqueVertexCount(r int) int {
	return 10*r*r + 2
}

// ValidLevel reports whether level is within [0, MaxLevel].
func ValidLevel(level int) bool {
	return level >= 0 && level <= MaxLevel
}

func checkFace(f int) {
	if f < 0 || f >= FaceCount {
		panic(fmt.Sprintf("geosphere: face index %d out of range [0,%d)", f, FaceCount))
	}
}

func checkResolution(r int) {
	if r <= 0 || r&(r-1) != 0 {
		panic(fmt.Sprintf("geosphere: resolution %d is not a power of two", r))
	}
}

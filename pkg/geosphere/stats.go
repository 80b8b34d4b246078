package geosphere

import (
	stdmath "math"

	"github.com/golang/geo/r3"

	"github.com/Faultbox/geosphere/pkg/math"
)

// DedupeTolerance is the distance under which two vertex copies count as one point.
// It is well below the shortest edge at MaxLevel.
const DedupeTolerance = 1e-4

// Stats summarises a generated sphere.
type Stats struct {
	Level          int
	Resolution     int
	VertexCopies   int         // vertices stored over all face buffers
	UniqueVertices int         // distinct positions
	Triangles      int         // triangles over all face buffers
	Valence        map[int]int // fan size -> number of distinct positions
	AngleDefect    float64     // sum of 2*pi minus the fan angle sum, over distinct positions
	MaxSeamGap     float64     // largest distance between copies of one position
}

// Analyze computes Stats for s. Angle sums are accumulated in float64.
func Analyze(s *Sphere) Stats {
	st := Stats{
		Level:      s.Level,
		Resolution: s.Resolution,
		Valence:    make(map[int]int),
	}
	vertices := s.VertexBuffers()
	points := newPointSet(DedupeTolerance)

	for f := range s.Faces {
		face := &s.Faces[f]
		st.VertexCopies += len(face.Vertices)
		st.Triangles += face.TriangleCount()

		for vi, v := range face.Vertices {
			_, gap, added := points.insert(toR3(v))
			st.MaxSeamGap = stdmath.Max(st.MaxSeamGap, gap)
			if !added || vi >= len(face.Fans) {
				continue
			}
			fan := face.Fans[vi]
			st.Valence[len(fan)]++
			st.AngleDefect += 2*stdmath.Pi - fanAngle(vertices, v, fan)
		}
	}
	st.UniqueVertices = points.len()
	return st
}

// fanAngle returns the sum of the triangle angles at self over a fan.
func fanAngle(vertices [FaceCount][]math.Vec3, self math.Vec3, fan Fan) float64 {
	c := toR3(self)
	var sum float64
	for k := range fan {
		a := fan[k]
		b := fan[(k+1)%len(fan)]
		ea := toR3(vertices[a.Face][a.Index]).Sub(c)
		eb := toR3(vertices[b.Face][b.Index]).Sub(c)
		sum += ea.Angle(eb).Radians()
	}
	return sum
}

func toR3(v math.Vec3) r3.Vector {
	return r3.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// pointSet deduplicates points on a hashed grid with cell size equal to the
// tolerance, so a match is always in the point's cell or one of its 26 neighbours.
type pointSet struct {
	tol    float64
	cells  map[[3]int64][]int
	points []r3.Vector
}

func newPointSet(tol float64) *pointSet {
	return &pointSet{tol: tol, cells: make(map[[3]int64][]int)}
}

func (ps *pointSet) cell(p r3.Vector) [3]int64 {
	return [3]int64{
		int64(stdmath.Floor(p.X / ps.tol)),
		int64(stdmath.Floor(p.Y / ps.tol)),
		int64(stdmath.Floor(p.Z / ps.tol)),
	}
}

// insert adds p unless an equal point is already present. It returns the id of the
// stored point, the distance between the two and whether p was new.
func (ps *pointSet) insert(p r3.Vector) (int, float64, bool) {
	c := ps.cell(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, id := range ps.cells[[3]int64{c[0] + dx, c[1] + dy, c[2] + dz}] {
					if d := ps.points[id].Sub(p).Norm(); d <= ps.tol {
						return id, d, false
					}
				}
			}
		}
	}
	id := len(ps.points)
	ps.cells[c] = append(ps.cells[c], id)
	ps.points = append(ps.points, p)
	return id, 0, true
}

func (ps *pointSet) len() int {
	return len(ps.points)
}

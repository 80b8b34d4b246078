package geosphere

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geosphere/pkg/math"
)

// testLevels keeps the exhaustive checks fast; higher levels are covered by counts.
var testLevels = []int{0, 1, 2, 3, 4}

func mustGenerate(t *testing.T, level int) *Sphere {
	t.Helper()
	s, err := newTestGenerator(t).Generate(level)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

// newTestGenerator returns a generator that is closed when the test ends.
func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g := NewGenerator(opts...)
	t.Cleanup(g.Close)
	return g
}

func newTestDispatcher(t *testing.T, workers, width int) *Dispatcher {
	t.Helper()
	d := NewDispatcher(workers, width)
	t.Cleanup(d.Close)
	return d
}

// pointIDs maps every stored vertex to the id of its distinct position.
func pointIDs(s *Sphere) ([FaceCount][]int, int) {
	var ids [FaceCount][]int
	ps := newPointSet(DedupeTolerance)
	for f := range s.Faces {
		ids[f] = make([]int, len(s.Faces[f].Vertices))
		for vi, v := range s.Faces[f].Vertices {
			id, _, _ := ps.insert(toR3(v))
			ids[f][vi] = id
		}
	}
	return ids, ps.len()
}

// triangleRings returns, per distinct position, the set of positions it shares a
// triangle edge with, derived from the index buffers alone.
func triangleRings(s *Sphere, ids [FaceCount][]int) map[int]map[int]bool {
	rings := make(map[int]map[int]bool)
	link := func(a, b int) {
		if rings[a] == nil {
			rings[a] = make(map[int]bool)
		}
		rings[a][b] = true
	}
	for f := range s.Faces {
		idx := s.Faces[f].Indices
		for t := 0; t+2 < len(idx); t += 3 {
			a, b, c := ids[f][idx[t]], ids[f][idx[t+1]], ids[f][idx[t+2]]
			link(a, b)
			link(b, a)
			link(b, c)
			link(c, b)
			link(c, a)
			link(a, c)
		}
	}
	return rings
}

func vertexAt(s *Sphere, n Neighbor) math.Vec3 {
	return s.Faces[n.Face].Vertices[n.Index]
}

package geosphere

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geosphere/pkg/math"
)

// Generation errors.
var (
	ErrInvalidLevel          = errors.New("geosphere: unsupported subdivision level")
	ErrInconsistentAdjacency = errors.New("geosphere: inconsistent adjacency fan")
)

// Face is the geometry of one icosahedron face.
type Face struct {
	Index       int
	Orientation Orientation
	Vertices    []math.Vec3 // unit sphere positions, row-major grid order
	UVs         []math.Vec2
	Indices     []uint32    // triangle list into Vertices
	Fans        []Fan       // one-ring per vertex, possibly into other faces
	Normals     []math.Vec3 // summed face normals, not unit length
}

// Name returns the mesh name of the face.
func (f *Face) Name() string {
	return fmt.Sprintf("icosahedron_triangle_%d", f.Index)
}

// TriangleCount returns the number of triangles in the face.
func (f *Face) TriangleCount() int {
	return len(f.Indices) / 3
}

// UnitNormals returns the normals scaled to unit length.
func (f *Face) UnitNormals() []math.Vec3 {
	return NormalizeAll(f.Normals)
}

// Sphere is a generated geodesic sphere.
type Sphere struct {
	Level      int
	Resolution int
	Faces      [FaceCount]Face
}

// VertexBuffers returns the vertex buffers of all faces, indexed by face.
func (s *Sphere) VertexBuffers() [FaceCount][]math.Vec3 {
	var out [FaceCount][]math.Vec3
	for f := range s.Faces {
		out[f] = s.Faces[f].Vertices
	}
	return out
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option {
	return func(g *Generator) { g.workers = n }
}

// WithBatchWidth sets how many faces are dispatched per batch.
func WithBatchWidth(n int) Option {
	return func(g *Generator) { g.batchWidth = n }
}

// WithLogger sets the logger used for pass timings.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithCache makes the generator reuse and fill c.
func WithCache(c *Cache) Option {
	return func(g *Generator) { g.cache = c }
}

// Generator builds spheres in three batched passes: tessellation, adjacency and
// normals. Each pass is fully joined before the next starts, so the normal pass
// sees every face's vertices.
type Generator struct {
	workers    int
	batchWidth int
	log        *zap.Logger
	cache      *Cache
	dispatch   *Dispatcher
}

// NewGenerator creates a generator. Close it to stop its workers.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		workers:    DefaultWorkers,
		batchWidth: DefaultBatchWidth,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.dispatch = NewDispatcher(g.workers, g.batchWidth)
	return g
}

// Close releases the generator's workers. Spheres already returned stay valid.
func (g *Generator) Close() {
	g.dispatch.Close()
}

// Generate builds the sphere for level on a temporary default generator.
func Generate(level int) (*Sphere, error) {
	g := NewGenerator()
	defer g.Close()
	return g.Generate(level)
}

// Generate returns the sphere for level, from the cache when the generator has one
// and the level was built before.
func (g *Generator) Generate(level int) (*Sphere, error) {
	if !ValidLevel(level) {
		return nil, fmt.Errorf("%w: %d (supported 0..%d)", ErrInvalidLevel, level, MaxLevel)
	}
	if g.cache != nil {
		if s, ok := g.cache.Get(level); ok {
			g.log.Debug("geosphere cache hit", zap.Int("subdivision", level))
			return s, nil
		}
	}

	s, err := g.build(level)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		g.cache.Put(s)
	}
	return s, nil
}

func (g *Generator) build(level int) (*Sphere, error) {
	r := Resolution(level)
	s := &Sphere{Level: level, Resolution: r}
	started := time.Now()

	err := g.pass("tessellation", level, func(f int) error {
		p := TessellateFace(f, r)
		s.Faces[f] = Face{
			Index:       f,
			Orientation: FaceOrientation(f),
			Vertices:    p.Vertices,
			UVs:         p.UVs,
			Indices:     p.Indices,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = g.pass("adjacency", level, func(f int) error {
		fans := BuildAdjacency(f, r)
		if err := CheckFans(f, r, fans); err != nil {
			return err
		}
		s.Faces[f].Fans = fans
		return nil
	})
	if err != nil {
		return nil, err
	}

	vertices := s.VertexBuffers()
	err = g.pass("normals", level, func(f int) error {
		s.Faces[f].Normals = RecalculateNormals(vertices, s.Faces[f].Fans, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.log.Info("geosphere generated",
		zap.Int("subdivision", level),
		zap.Int("resolution", r),
		zap.Int("vertices_per_face", VertexCount(r)),
		zap.Duration("took", time.Since(started)))
	return s, nil
}

func (g *Generator) pass(name string, level int, fn func(f int) error) error {
	started := time.Now()
	if err := g.dispatch.Run(FaceCount, fn); err != nil {
		return fmt.Errorf("%s pass at level %d: %w", name, level, err)
	}
	g.log.Debug("geosphere pass done",
		zap.String("pass", name),
		zap.Int("subdivision", level),
		zap.Duration("took", time.Since(started)))
	return nil
}

// CheckFans verifies that fans has one entry per vertex of a face at resolution r,
// that every fan has 5 or 6 members and that every member addresses a real vertex.
func CheckFans(f, r int, fans []Fan) error {
	n := VertexCount(r)
	if len(fans) != n {
		return fmt.Errorf("%w: face %d has %d fans, want %d", ErrInconsistentAdjacency, f, len(fans), n)
	}
	for vi, fan := range fans {
		if len(fan) != 5 && len(fan) != 6 {
			return fmt.Errorf("%w: face %d vertex %d has %d neighbours", ErrInconsistentAdjacency, f, vi, len(fan))
		}
		for _, e := range fan {
			if e.Face < 0 || e.Face >= FaceCount || e.Index < 0 || e.Index >= n {
				return fmt.Errorf("%w: face %d vertex %d references (%d, %d)", ErrInconsistentAdjacency, f, vi, e.Face, e.Index)
			}
			if e.Face == f && e.Index == vi {
				return fmt.Errorf("%w: face %d vertex %d references itself", ErrInconsistentAdjacency, f, vi)
			}
		}
	}
	return nil
}

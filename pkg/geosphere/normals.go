package geosphere

import (
	"github.com/Faultbox/geosphere/pkg/math"
)

// FaceNormal returns (v1-v0) x (v2-v0). Its length is twice the triangle's area.
func FaceNormal(v0, v1, v2 math.Vec3) math.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// RecalculateNormals returns one normal per vertex of face f by summing the face
// normals of every triangle in the vertex's fan, the closing last-to-first triangle
// included. vertices holds the vertex buffers of all faces; fans is face f's
// adjacency. The sums are left unnormalized, which weights each triangle by its area.
func RecalculateNormals(vertices [FaceCount][]math.Vec3, fans []Fan, f int) []math.Vec3 {
	checkFace(f)
	own := vertices[f]
	normals := make([]math.Vec3, len(own))
	for vi, fan := range fans {
		self := own[vi]
		var n math.Vec3
		for k := range fan {
			a := fan[k]
			b := fan[(k+1)%len(fan)]
			n = n.Add(FaceNormal(self, vertices[a.Face][a.Index], vertices[b.Face][b.Index]))
		}
		normals[vi] = n
	}
	return normals
}

// NormalizeAll returns unit-length copies of normals.
func NormalizeAll(normals []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(normals))
	for i, n := range normals {
		out[i] = n.Normalize()
	}
	return out
}

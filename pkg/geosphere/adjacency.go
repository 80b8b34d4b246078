package geosphere

// Neighbor addresses one vertex in one face's buffer.
type Neighbor struct {
	Face  int
	Index int
}

// Fan is the one-ring around a vertex: the vertices joined to it by an edge, listed
// counter-clockwise when seen from outside the sphere. Consecutive entries (wrapping
// from the last back to the first) span one triangle of the fan. Entries may live in
// other faces' buffers. Icosahedron corners have 5 entries, every other vertex 6.
type Fan []Neighbor

func nb(face, index int) Neighbor {
	return Neighbor{Face: face, Index: index}
}

// BuildAdjacency returns one Fan per vertex of face f at resolution r, in the vertex
// order produced by TessellateFace. It needs no vertex data: every entry follows from
// the grid enumeration and the face neighbour table.
func BuildAdjacency(f, r int) []Fan {
	checkFace(f)
	checkResolution(r)
	if FaceOrientation(f) == Upward {
		return upwardFans(f, r)
	}
	return downwardFans(f, r)
}

// upwardFans handles even faces. Rows run from the apex (i=0) to the base (i=r).
// Slots of the neighbour row n used here: n[1] across the left edge, n[4] across the
// right edge, n[1..4] around the apex, n[4..7] and n[7..9] around the base corners.
// f+1 is the downward face sharing the base edge.
//
// Faces with f%4 == 0 touch the top pole: their apex is the pole and their side
// neighbours are the other pole caps, which enumerate the shared edge in the same
// direction. The other even faces sit on the lower ring and meet their side
// neighbours edge-reversed, so the matching edge vertex is tracked with the running
// offsets lt and rt instead of a closed formula.
func upwardFans(f, r int) []Fan {
	n := faceNeighbours[f]
	polar := f%4 == 0
	last := VertexCount(r) - 1
	fans := make([]Fan, VertexCount(r))

	vi, lt, rt := 0, r, 0
	for i := 0; i <= r; i++ {
		for m := 0; m <= i; m++ {
			switch {
			case i == 0:
				if polar {
					fans[vi] = Fan{nb(n[1], 2), nb(n[2], 2), nb(n[3], 2), nb(n[4], 2), nb(n[0], 2)}
				} else {
					fans[vi] = Fan{nb(n[1], r-1), nb(n[2], last-r-1), nb(n[3], last-r+1), nb(n[4], r+1), nb(n[0], 1)}
				}

			case i == r && m == 0:
				if polar {
					fans[vi] = Fan{nb(n[0], vi-i), nb(n[7], 1), nb(n[8], 2), nb(n[9], r+r), nb(n[1], last-1)}
				} else {
					fans[vi] = Fan{nb(n[0], vi-i), nb(n[7], 1), nb(n[8], r+r), nb(n[9], last-1), nb(n[1], last-2)}
				}

			case i == r && m == i:
				if polar {
					fans[vi] = Fan{nb(n[0], vi-1), nb(n[4], vi-i-i), nb(n[5], 1), nb(n[6], 2), nb(n[7], r+r)}
				} else {
					fans[vi] = Fan{nb(n[0], vi-1), nb(n[4], vi-2), nb(n[5], vi-i-i), nb(n[6], 1), nb(n[7], r+r)}
				}

			case i == r:
				// Base edge, shared with f+1 whose first row runs the same direction.
				fans[vi] = Fan{
					nb(f, vi-1), nb(f, vi-i-1), nb(f, vi-i), nb(f, vi+1),
					nb(f+1, i+i+1-(last-vi)), nb(f+1, i+i-(last-vi)),
				}

			case m == 0:
				own := [4]Neighbor{nb(f, vi-i), nb(f, vi+1), nb(f, vi+i+2), nb(f, vi+i+1)}
				if polar {
					fans[vi] = append(own[:], nb(n[1], vi+i+i+1), nb(n[1], vi+i-1))
				} else {
					fans[vi] = append(own[:], nb(n[1], lt+r-i), nb(n[1], lt-1))
					lt += r - i + 1
				}

			case m == i:
				own := [4]Neighbor{nb(f, vi+i+2), nb(f, vi+i+1), nb(f, vi-1), nb(f, vi-i-1)}
				if polar {
					fans[vi] = append(own[:], nb(n[4], vi-i+1), nb(n[4], vi+2))
				} else {
					fans[vi] = append(own[:], nb(n[4], rt+1), nb(n[4], rt+r-i+3))
					rt += r - i + 2
				}

			default:
				fans[vi] = Fan{
					nb(f, vi-i), nb(f, vi+1), nb(f, vi+i+2),
					nb(f, vi+i+1), nb(f, vi-1), nb(f, vi-i-1),
				}
			}
			vi++
		}
	}
	return fans
}

// downwardFans handles odd faces. Rows run from the base (i=r, stored first) to the
// apex (i=0, stored last). The base edge is shared with f-1. Faces with
// (f+1)%4 == 0 touch the bottom pole; the others sit on the upper ring and meet their
// side neighbours edge-reversed, tracked with the running offset rt.
func downwardFans(f, r int) []Fan {
	n := faceNeighbours[f]
	polar := (f+1)%4 == 0
	last := VertexCount(r) - 1
	fans := make([]Fan, VertexCount(r))

	vi, rt := 0, 0
	for i := r; i >= 0; i-- {
		for m := 0; m <= i; m++ {
			switch {
			case i == 0:
				if polar {
					fans[vi] = Fan{nb(n[0], vi-2), nb(n[4], vi-2), nb(n[5], vi-2), nb(n[6], vi-2), nb(n[7], vi-2)}
				} else {
					fans[vi] = Fan{nb(n[0], vi-2), nb(n[4], vi-r-r), nb(n[5], 1), nb(n[6], r+r), nb(n[7], vi-1)}
				}

			case i == r && m == 0:
				if polar {
					fans[vi] = Fan{nb(n[0], 1), nb(n[7], r+r), nb(n[8], last-1), nb(n[9], last-2), nb(n[1], last-r-r)}
				} else {
					fans[vi] = Fan{nb(n[0], 1), nb(n[7], 2), nb(n[8], r+r), nb(n[9], last-1), nb(n[1], last-r-r)}
				}

			case i == r && m == i:
				if polar {
					fans[vi] = Fan{nb(n[0], vi+i), nb(n[1], last-1), nb(n[2], last-2), nb(n[3], last-r-r), nb(n[4], 1)}
				} else {
					fans[vi] = Fan{nb(n[0], vi+i), nb(n[1], last-1), nb(n[2], last-r-r), nb(n[3], 1), nb(n[4], 2)}
				}

			case i == r:
				// Base edge, shared with f-1 whose last row runs the same direction.
				fans[vi] = Fan{
					nb(f, vi+1), nb(f, vi+i+1), nb(f, vi+i), nb(f, vi-1),
					nb(f-1, last-r-r+vi-1), nb(f-1, last-r-r+vi),
				}

			case m == 0:
				own := [4]Neighbor{nb(f, vi-i-2), nb(f, vi-i-1), nb(f, vi+1), nb(f, vi+i+1)}
				if polar {
					fans[vi] = append(own[:], nb(n[7], vi+i-1), nb(n[7], vi-2))
				} else {
					rt += r - i + 1
					fans[vi] = append(own[:], nb(n[7], rt+r-i+1), nb(n[7], rt-1))
				}

			case m == i:
				own := [4]Neighbor{nb(f, vi+i), nb(f, vi-1), nb(f, vi-i-2), nb(f, vi-i-1)}
				if polar {
					fans[vi] = append(own[:], nb(n[4], vi-i-i-1), nb(n[4], vi-i+1))
				} else {
					// rt was advanced by this row's m == 0 vertex.
					fans[vi] = append(own[:], nb(n[4], rt-r+i+1), nb(n[4], rt+2))
				}

			default:
				fans[vi] = Fan{
					nb(f, vi-i-1), nb(f, vi+1), nb(f, vi+i+1),
					nb(f, vi+i), nb(f, vi-1), nb(f, vi-i-2),
				}
			}
			vi++
		}
	}
	return fans
}

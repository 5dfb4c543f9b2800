package mesh

import (
	"github.com/chewxy/math32"
)

// ComputeVertexNormals derives smooth per-vertex normals by accumulating the
// unnormalized face normals of every incident triangle and normalizing the
// sum. The cross product magnitude weights each face by its area, so large
// faces dominate the shared vertex direction. Degenerate faces contribute
// nothing, and a vertex with no valid incident face keeps a zero normal.
//
// Parameters:
//   - vertices: the mesh positions
//   - faces: triangle indices, assumed in range
//
// Returns:
//   - [][3]float32: one normal per vertex
func ComputeVertexNormals(vertices [][3]float32, faces [][3]uint32) [][3]float32 {
	normals := make([][3]float32, len(vertices))
	for _, f := range faces {
		a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for _, idx := range f {
			normals[idx][0] += n[0]
			normals[idx][1] += n[1]
			normals[idx][2] += n[2]
		}
	}
	for i := range normals {
		n := normals[i]
		length := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if length > 1e-12 {
			inv := 1.0 / length
			normals[i] = [3]float32{n[0] * inv, n[1] * inv, n[2] * inv}
		}
	}
	return normals
}

package formats

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/geosphere/pkg/geosphere"
)

// BuildGLTF converts s to a glTF document with one mesh and one root node per face.
// Normals are written unit length as glTF requires.
func BuildGLTF(s *geosphere.Sphere) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "geosphere"

	for f := range s.Faces {
		face := &s.Faces[f]

		positions := make([][3]float32, len(face.Vertices))
		for i, v := range face.Vertices {
			positions[i] = v.Array()
		}
		normals := make([][3]float32, len(face.Normals))
		for i, n := range face.UnitNormals() {
			normals[i] = n.Array()
		}
		uvs := make([][2]float32, len(face.UVs))
		for i, uv := range face.UVs {
			// glTF puts the texture origin top-left.
			uvs[i] = [2]float32{uv.X, 1 - uv.Y}
		}

		posAccessor := modeler.WritePosition(doc, positions)
		normalAccessor := modeler.WriteNormal(doc, normals)
		uvAccessor := modeler.WriteTextureCoord(doc, uvs)
		indexAccessor := modeler.WriteIndices(doc, face.Indices)

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: face.Name(),
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(indexAccessor),
				Attributes: map[string]int{
					"POSITION":   posAccessor,
					"NORMAL":     normalAccessor,
					"TEXCOORD_0": uvAccessor,
				},
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: face.Name(),
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc
}

// SaveGLTF writes s to path, as GLB when binary is set and as glTF JSON with an
// embedded buffer otherwise.
func SaveGLTF(path string, s *geosphere.Sphere, binary bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	doc := BuildGLTF(s)
	if binary {
		if err := gltf.SaveBinary(doc, path); err != nil {
			return fmt.Errorf("saving GLB %s: %w", path, err)
		}
		return nil
	}
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("saving glTF %s: %w", path, err)
	}
	return nil
}

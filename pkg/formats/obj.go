package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/geosphere/pkg/geosphere"
)

// WriteOBJ writes s as Wavefront OBJ. Every face becomes its own object with its
// own positions, texture coordinates and unit normals; shared boundary vertices are
// written once per face, as they are stored.
func WriteOBJ(w io.Writer, s *geosphere.Sphere) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# geosphere level %d, resolution %d\n", s.Level, s.Resolution)

	base := 1 // OBJ indices are 1-based and global to the file
	for f := range s.Faces {
		face := &s.Faces[f]
		fmt.Fprintf(bw, "o %s\n", face.Name())
		for _, v := range face.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		for _, uv := range face.UVs {
			fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
		}
		for _, n := range face.UnitNormals() {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
		for t := 0; t+2 < len(face.Indices); t += 3 {
			a := int(face.Indices[t]) + base
			b := int(face.Indices[t+1]) + base
			c := int(face.Indices[t+2]) + base
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += len(face.Vertices)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return nil
}

// SaveOBJ writes s to an OBJ file at path, creating parent directories.
func SaveOBJ(path string, s *geosphere.Sphere) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package formats writes generated geospheres to mesh file formats.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/geosphere/pkg/geosphere"
)

// ErrUnknownFormat is returned for an output format that has no writer.
var ErrUnknownFormat = errors.New("unknown mesh format")

// Format is an output mesh format.
type Format string

// Supported formats.
const (
	FormatOBJ  Format = "obj"  // Wavefront OBJ text
	FormatGLTF Format = "gltf" // glTF JSON with embedded buffer
	FormatGLB  Format = "glb"  // binary glTF
)

// ParseFormat converts a format name (case-insensitive, leading dot allowed).
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(name), ".")); f {
	case FormatOBJ, FormatGLTF, FormatGLB:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Save writes s to path in format f.
func Save(path string, f Format, s *geosphere.Sphere) error {
	switch f {
	case FormatOBJ:
		return SaveOBJ(path, s)
	case FormatGLTF:
		return SaveGLTF(path, s, false)
	case FormatGLB:
		return SaveGLTF(path, s, true)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

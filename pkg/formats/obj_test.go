package formats

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/geosphere/pkg/geosphere"
)

func TestWriteOBJ(t *testing.T) {
	const level = 2
	s, err := geosphere.Generate(level)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, s))

	r := geosphere.Resolution(level)
	total := geosphere.FaceCount * geosphere.VertexCount(r)
	counts := make(map[string]int)
	var objects []string

	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
		switch fields[0] {
		case "o":
			objects = append(objects, fields[1])
		case "f":
			require.Len(t, fields, 4)
			for _, ref := range fields[1:] {
				parts := strings.Split(ref, "/")
				require.Len(t, parts, 3)
				for _, p := range parts {
					idx, err := strconv.Atoi(p)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, idx, 1)
					assert.LessOrEqual(t, idx, total)
				}
			}
		}
	}
	require.NoError(t, sc.Err())

	assert.Equal(t, geosphere.FaceCount, counts["o"])
	assert.Equal(t, total, counts["v"])
	assert.Equal(t, total, counts["vt"])
	assert.Equal(t, total, counts["vn"])
	assert.Equal(t, geosphere.FaceCount*r*r, counts["f"])
	assert.Equal(t, "icosahedron_triangle_0", objects[0])
	assert.Equal(t, "icosahedron_triangle_19", objects[len(objects)-1])
}

func TestWriteOBJOffsetsPerFace(t *testing.T) {
	s, err := geosphere.Generate(0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, s))

	var faces []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "f ") {
			faces = append(faces, line)
		}
	}
	require.Len(t, faces, geosphere.FaceCount)
	assert.Equal(t, "f 2/2/2 1/1/1 3/3/3", faces[0])
	assert.Equal(t, "f 4/4/4 5/5/5 6/6/6", faces[1])
}

func TestSaveOBJ(t *testing.T) {
	s, err := geosphere.Generate(0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "a", "b", "sphere.obj")
	require.NoError(t, SaveOBJ(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# geosphere level 0"))
}

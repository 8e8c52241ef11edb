package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ftsim/capsim/pkg/geometry"
)

// Parse reads a Wavefront OBJ file and returns a Model. Only vertex
// positions and triangular faces are consumed; normals, texture coordinates,
// materials and groups are ignored. Faces with more or fewer than three
// vertices are skipped.
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return parse(file, name)
}

func parse(reader io.Reader, name string) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel(name)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex with %d coordinates", lineNo, len(fields)-1)
			}
			x, err1 := strconv.ParseFloat(fields[1], 64)
			y, err2 := strconv.ParseFloat(fields[2], 64)
			z, err3 := strconv.ParseFloat(fields[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("line %d: invalid vertex coordinates", lineNo)
			}
			model.Vertices = append(model.Vertices, geometry.NewVector3(x, y, z))

		case "f":
			// Only triangulated faces carry into the model
			if len(fields) != 4 {
				continue
			}
			for _, token := range fields[1:] {
				index, err := parseFaceIndex(token, len(model.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				model.Indices = append(model.Indices, index)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	if len(model.Vertices) == 0 {
		return nil, fmt.Errorf("no vertex data found")
	}

	return model, nil
}

// parseFaceIndex resolves one face vertex token ("7", "7/2", "7/2/3" or
// "7//3") to a zero-based vertex index. Negative OBJ indices count back from
// the end of the vertex list.
func parseFaceIndex(token string, vertexCount int) (uint32, error) {
	vertexPart := token
	if slash := strings.IndexByte(token, '/'); slash >= 0 {
		vertexPart = token[:slash]
	}

	index, err := strconv.Atoi(vertexPart)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", token)
	}

	switch {
	case index > 0 && index <= vertexCount:
		return uint32(index - 1), nil
	case index < 0 && -index <= vertexCount:
		return uint32(vertexCount + index), nil
	default:
		return 0, fmt.Errorf("face index %d out of range (have %d vertices)", index, vertexCount)
	}
}

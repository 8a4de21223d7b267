package models

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file and returns a Mesh satisfying the mesh
// source contract: populated position/normal/triangle-index lists, with
// area-weighted normals generated when the file has no "vn" lines. Faces
// with more than three vertices are fan-retriangulated from their first
// vertex.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh: open %q: %w", path, err)
	}
	defer f.Close()

	mesh := NewMesh(filepath.Base(path))
	hasNormals := false

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("load mesh: line %d: %w", lineNo, err)
			}
			mesh.Positions = append(mesh.Positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("load mesh: line %d: %w", lineNo, err)
			}
			mesh.Normals = append(mesh.Normals, v)
			hasNormals = true
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("load mesh: line %d: malformed texcoord", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("load mesh: line %d: malformed texcoord", lineNo)
			}
			mesh.TexCoords = append(mesh.TexCoords, math3d.V2(u, v))
		case "f":
			refs := make([]VertexRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseFaceVertex(tok)
				if err != nil {
					return nil, fmt.Errorf("load mesh: line %d: %w", lineNo, err)
				}
				refs = append(refs, ref)
			}
			if len(refs) < 3 {
				return nil, fmt.Errorf("load mesh: line %d: face has fewer than 3 vertices", lineNo)
			}
			// Fan-retriangulate polygons from the first vertex.
			for i := 2; i < len(refs); i++ {
				mesh.Triangles = append(mesh.Triangles, Triangle{refs[0], refs[i-1], refs[i]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load mesh: read %q: %w", path, err)
	}

	if !hasNormals {
		mesh.GenerateNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err1 := strconv.ParseFloat(fields[0], 64)
	y, err2 := strconv.ParseFloat(fields[1], 64)
	z, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return math3d.Vec3{}, fmt.Errorf("malformed vector %v", fields[:3])
	}
	return math3d.V3(x, y, z), nil
}

// parseFaceVertex parses one "v", "v/vt", "v//vn", or "v/vt/vn" token into
// a VertexRef with 0-based indices. When the normal slot is absent, the
// normal index aliases the position index.
func parseFaceVertex(tok string) (VertexRef, error) {
	parts := strings.Split(tok, "/")
	pos, err := strconv.Atoi(parts[0])
	if err != nil {
		return VertexRef{}, fmt.Errorf("malformed face index %q", tok)
	}
	ref := VertexRef{Pos: pos - 1, Normal: pos - 1}

	if len(parts) >= 2 && parts[1] != "" {
		tex, err := strconv.Atoi(parts[1])
		if err != nil {
			return VertexRef{}, fmt.Errorf("malformed texcoord index %q", tok)
		}
		ref.Tex = tex - 1
	}
	if len(parts) >= 3 && parts[2] != "" {
		normal, err := strconv.Atoi(parts[2])
		if err != nil {
			return VertexRef{}, fmt.Errorf("malformed normal index %q", tok)
		}
		ref.Normal = normal - 1
	}
	return ref, nil
}

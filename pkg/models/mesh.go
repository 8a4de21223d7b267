// Package models provides mesh loading and the mesh representation consumed
// by the rasterizer pipeline.
package models

import (
	"github.com/taigrr/raster3d/pkg/math3d"
)

// VertexRef indexes into a Mesh's position, texture-coordinate, and normal
// arrays for one corner of a Triangle. Tex is carried through but unused by
// the pipeline. A position index may be referenced by more than one
// VertexRef with a different Normal index, and vice versa — this is the
// OBJ v/vt/vn index model, not a single shared per-vertex index.
type VertexRef struct {
	Pos, Tex, Normal int
}

// Triangle is three vertex references forming one face.
type Triangle [3]VertexRef

// Mesh is the geometry source handed to the pipeline: independent
// position, texture-coordinate, and normal arrays plus a list of triangles
// referencing them.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	TexCoords []math3d.Vec2
	Normals   []math3d.Vec3
	Triangles []Triangle

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty, named mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds recomputes the axis-aligned bounding box from Positions.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}
	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of distinct positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// GenerateNormals computes area-weighted per-vertex normals from triangle
// geometry and aliases each triangle's normal index to its position index,
// replacing m.Normals and the Normal field of every VertexRef. Use when a
// loaded mesh has no normal data.
func (m *Mesh) GenerateNormals() {
	accum := make([]math3d.Vec3, len(m.Positions))

	for ti := range m.Triangles {
		tri := &m.Triangles[ti]
		tri[0].Normal = tri[0].Pos
		tri[1].Normal = tri[1].Pos
		tri[2].Normal = tri[2].Pos

		p0 := m.Positions[tri[0].Pos]
		p1 := m.Positions[tri[1].Pos]
		p2 := m.Positions[tri[2].Pos]

		// Unnormalized cross product: magnitude carries twice the face
		// area, weighting each face's contribution by its size.
		faceNormal := p0.Sub(p1).Cross(p1.Sub(p2))

		accum[tri[0].Pos] = accum[tri[0].Pos].Add(faceNormal)
		accum[tri[1].Pos] = accum[tri[1].Pos].Add(faceNormal)
		accum[tri[2].Pos] = accum[tri[2].Pos].Add(faceNormal)
	}

	m.Normals = make([]math3d.Vec3, len(accum))
	for i, n := range accum {
		m.Normals[i] = n.Normalize()
	}
}

// Transform applies mat to every position and the inverse-transpose of mat
// to every normal, then recomputes bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Positions {
		m.Positions[i] = mat.MulVec3(m.Positions[i])
	}
	normalMat := mat.Inverse().Transpose()
	for i := range m.Normals {
		m.Normals[i] = normalMat.MulVec3Dir(m.Normals[i]).Normalize()
	}
	m.CalculateBounds()
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Positions: make([]math3d.Vec3, len(m.Positions)),
		TexCoords: make([]math3d.Vec2, len(m.TexCoords)),
		Normals:   make([]math3d.Vec3, len(m.Normals)),
		Triangles: make([]Triangle, len(m.Triangles)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Positions, m.Positions)
	copy(clone.TexCoords, m.TexCoords)
	copy(clone.Normals, m.Normals)
	copy(clone.Triangles, m.Triangles)
	return clone
}

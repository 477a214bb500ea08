// Package wavefront provides parsers for Wavefront OBJ geometry files and
// their companion MTL material libraries.
//
// Parsing is single-pass and best-effort: malformed tokens fall back to
// defaults and non-fatal problems are collected into a warning string, so a
// load only fails outright when the input file cannot be opened. The parsed
// result is plain data (flat attribute arrays, index triples, named records)
// that a renderer or geometry-processing stage consumes; the package never
// touches any rendering API.
package wavefront

import (
	"errors"
	"fmt"
)

// Parse errors.
var (
	ErrIndexOutOfBounds  = errors.New("face index out of bounds")
	ErrUnknownMaterialID = errors.New("face references unknown material id")
)

// Attrib holds the global vertex attribute arrays of an OBJ file: flat,
// append-only float sequences. Positions and normals are triples, texture
// coordinates are pairs. Face indices reference into these arrays and are
// zero-based after normalization.
type Attrib struct {
	Vertices  []float32 // x,y,z per vertex
	Normals   []float32 // x,y,z per normal
	TexCoords []float32 // u,v per texture coordinate
}

// Index is a vertex attribute index triple used by one face corner. Each
// component is either a valid zero-based index or -1 when the corner does
// not reference that attribute.
type Index struct {
	Vertex   int // index into Attrib.Vertices/3, never -1
	TexCoord int // index into Attrib.TexCoords/2, or -1
	Normal   int // index into Attrib.Normals/3, or -1
}

// Tag is a named metadata record attached to a mesh by a "t" directive.
// The three value lists are independently sized.
type Tag struct {
	Name         string
	IntValues    []int
	FloatValues  []float32
	StringValues []string
}

// Mesh holds the face data of a shape as parallel sequences: one index
// triple per face corner, one vertex-count byte per face (always 3 when
// triangulation is enabled), and one material id per face (-1 for none).
type Mesh struct {
	Indices         []Index
	NumFaceVertices []uint8
	MaterialIDs     []int
	Tags            []Tag
}

// FaceCount returns the number of faces in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.NumFaceVertices)
}

// Shape is one named grouping of faces, started by a "g" or "o" directive.
type Shape struct {
	Name string
	Mesh Mesh
}

// OBJ is the result of parsing an OBJ file.
type OBJ struct {
	Attrib    Attrib
	Shapes    []Shape
	Materials []Material

	// Warnings collects all non-fatal problems encountered during the
	// parse (unresolvable mtllib references, conflicting dissolve
	// directives). Callers should inspect it even on success.
	Warnings string
}

// VertexCount returns the number of vertex positions.
func (o *OBJ) VertexCount() int {
	return len(o.Attrib.Vertices) / 3
}

// NormalCount returns the number of normals.
func (o *OBJ) NormalCount() int {
	return len(o.Attrib.Normals) / 3
}

// TexCoordCount returns the number of texture coordinates.
func (o *OBJ) TexCoordCount() int {
	return len(o.Attrib.TexCoords) / 2
}

// TotalFaceCount returns the number of faces across all shapes.
func (o *OBJ) TotalFaceCount() int {
	total := 0
	for i := range o.Shapes {
		total += o.Shapes[i].Mesh.FaceCount()
	}
	return total
}

// FindShape returns the first shape with the given name, or nil.
func (o *OBJ) FindShape(name string) *Shape {
	for i := range o.Shapes {
		if o.Shapes[i].Name == name {
			return &o.Shapes[i]
		}
	}
	return nil
}

// FindMaterial returns the first material with the given name, or nil.
func (o *OBJ) FindMaterial(name string) *Material {
	for i := range o.Materials {
		if o.Materials[i].Name == name {
			return &o.Materials[i]
		}
	}
	return nil
}

// Validate checks that every non-absent index component is within bounds of
// the corresponding attribute array and that every face material id is -1
// or a valid index into the materials list. The attribute arrays only grow
// during parsing, so the check is performed against the final counts.
func (o *OBJ) Validate() error {
	nv := o.VertexCount()
	nvn := o.NormalCount()
	nvt := o.TexCoordCount()
	nm := len(o.Materials)

	for si := range o.Shapes {
		mesh := &o.Shapes[si].Mesh
		for _, idx := range mesh.Indices {
			if idx.Vertex < 0 || idx.Vertex >= nv {
				return fmt.Errorf("%w: shape %q vertex index %d (have %d vertices)", ErrIndexOutOfBounds, o.Shapes[si].Name, idx.Vertex, nv)
			}
			if idx.Normal != -1 && (idx.Normal < 0 || idx.Normal >= nvn) {
				return fmt.Errorf("%w: shape %q normal index %d (have %d normals)", ErrIndexOutOfBounds, o.Shapes[si].Name, idx.Normal, nvn)
			}
			if idx.TexCoord != -1 && (idx.TexCoord < 0 || idx.TexCoord >= nvt) {
				return fmt.Errorf("%w: shape %q texcoord index %d (have %d texcoords)", ErrIndexOutOfBounds, o.Shapes[si].Name, idx.TexCoord, nvt)
			}
		}
		for _, id := range mesh.MaterialIDs {
			if id != -1 && (id < 0 || id >= nm) {
				return fmt.Errorf("%w: shape %q material id %d (have %d materials)", ErrUnknownMaterialID, o.Shapes[si].Name, id, nm)
			}
		}
	}
	return nil
}

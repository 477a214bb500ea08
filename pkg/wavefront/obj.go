package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseOBJFile parses the OBJ file at path. mtlBaseDir is the directory
// mtllib references are resolved against; empty means references are opened
// as given. The returned error is non-nil only when the file itself cannot
// be opened; every other problem ends up in OBJ.Warnings.
func ParseOBJFile(path, mtlBaseDir string, triangulate bool) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file %s: %w", path, err)
	}
	defer f.Close()

	return ParseOBJ(f, FileResolver{BaseDir: mtlBaseDir}, triangulate), nil
}

// ParseOBJ parses OBJ text from r, delegating mtllib directives to resolver
// (nil disables material loading). The parse is best-effort and always
// produces a result: malformed numeric tokens fall back to defaults and
// non-fatal problems accumulate in OBJ.Warnings.
func ParseOBJ(r io.Reader, resolver MaterialResolver, triangulate bool) *OBJ {
	obj := &OBJ{}
	var warnings strings.Builder

	var (
		v, vn, vt  []float32
		faceGroup  [][]Index
		tags       []Tag
		name       string
		materialID = -1
		shape      Shape
	)
	lib := NewMaterialLib()

	scanner := newLineScanner(bufio.NewScanner(r))
	for scanner.Scan() {
		line := trimLine(scanner.Text())

		pos := skipSpace(line, 0)
		if pos >= len(line) || line[pos] == '#' {
			continue
		}

		switch {
		case hasKeyword(line, pos, "v"):
			x, y, z, _ := parseReal3(line, pos+1, 0, 0, 0)
			v = append(v, x, y, z)

		case hasKeyword(line, pos, "vn"):
			x, y, z, _ := parseReal3(line, pos+2, 0, 0, 0)
			vn = append(vn, x, y, z)

		case hasKeyword(line, pos, "vt"):
			x, y, _ := parseReal2(line, pos+2, 0, 0)
			vt = append(vt, x, y)

		case hasKeyword(line, pos, "f"):
			p := skipSpace(line, pos+1)
			face := make([]Index, 0, 4)
			for p < len(line) {
				var idx Index
				idx, p = parseTriple(line, p, len(v)/3, len(vn)/3, len(vt)/2)
				face = append(face, idx)
				p = skipSpace(line, p)
			}
			if len(face) > 0 {
				faceGroup = append(faceGroup, face)
			}

		case hasKeyword(line, pos, "usemtl"):
			matName := directiveArg(line, pos+len("usemtl"))
			newID := -1
			if id, ok := lib.Index[matName]; ok {
				newID = id
			}
			// Switching materials flushes the faces accumulated under
			// the previous one.
			if newID != materialID {
				exportFaceGroup(&shape, faceGroup, tags, materialID, name, triangulate)
				faceGroup = faceGroup[:0]
				materialID = newID
			}

		case hasKeyword(line, pos, "mtllib"):
			if resolver == nil {
				break
			}
			filenames := strings.Fields(directiveArg(line, pos+len("mtllib")))
			if len(filenames) == 0 {
				warnings.WriteString("empty filename for mtllib directive; using default material\n")
				break
			}
			found := false
			for _, fn := range filenames {
				warn, err := resolver.Resolve(fn, lib)
				if warn != "" {
					warnings.WriteString(warn)
				}
				if err != nil {
					warnings.WriteString(err.Error() + "\n")
					continue
				}
				found = true
				break
			}
			if !found {
				warnings.WriteString("failed to load material file(s); using default material\n")
			}

		case hasKeyword(line, pos, "g"):
			if exportFaceGroup(&shape, faceGroup, tags, materialID, name, triangulate) {
				obj.Shapes = append(obj.Shapes, shape)
			}
			shape = Shape{}
			faceGroup = faceGroup[:0]
			tags = nil
			name = groupName(line, pos)

		case hasKeyword(line, pos, "o"):
			if exportFaceGroup(&shape, faceGroup, tags, materialID, name, triangulate) {
				obj.Shapes = append(obj.Shapes, shape)
			}
			shape = Shape{}
			faceGroup = faceGroup[:0]
			tags = nil
			name = directiveArg(line, pos+1)

		case hasKeyword(line, pos, "t"):
			tags = append(tags, parseTag(line, pos+1))
		}
		// Unrecognized keywords are ignored.
	}

	// Flush the final pending shape. It is kept when the flush produced
	// faces or when earlier usemtl switches already filled the mesh.
	exported := exportFaceGroup(&shape, faceGroup, tags, materialID, name, triangulate)
	if exported || len(shape.Mesh.Indices) > 0 {
		obj.Shapes = append(obj.Shapes, shape)
	}

	obj.Attrib = Attrib{Vertices: v, Normals: vn, TexCoords: vt}
	obj.Materials = lib.Materials
	obj.Warnings = warnings.String()
	return obj
}

// exportFaceGroup flushes the pending face group into the shape's mesh
// under the given material id. With triangulation enabled each n-gon is
// fanned into triangles (i0, i(k-1), ik); otherwise the polygon is emitted
// as-is with its vertex count recorded. Returns false when the group held
// no faces.
func exportFaceGroup(shape *Shape, faceGroup [][]Index, tags []Tag, materialID int, name string, triangulate bool) bool {
	if len(faceGroup) == 0 {
		return false
	}

	mesh := &shape.Mesh
	for _, face := range faceGroup {
		if triangulate {
			i0 := face[0]
			for k := 2; k < len(face); k++ {
				mesh.Indices = append(mesh.Indices, i0, face[k-1], face[k])
				mesh.NumFaceVertices = append(mesh.NumFaceVertices, 3)
				mesh.MaterialIDs = append(mesh.MaterialIDs, materialID)
			}
		} else {
			mesh.Indices = append(mesh.Indices, face...)
			mesh.NumFaceVertices = append(mesh.NumFaceVertices, uint8(len(face)))
			mesh.MaterialIDs = append(mesh.MaterialIDs, materialID)
		}
	}

	shape.Name = name
	mesh.Tags = append([]Tag(nil), tags...)
	return true
}

// groupName extracts the shape name from a "g" line: the first name token
// after the keyword, or empty for a bare "g".
func groupName(line string, pos int) string {
	_, pos = parseString(line, pos) // keyword
	name, _ := parseString(line, pos)
	return name
}

// parseTag reads a "t" directive: a name, a count header, then exactly
// that many integer, float, and string values. Values may be separated by
// whitespace or slashes.
func parseTag(line string, pos int) Tag {
	var tag Tag
	tag.Name, pos = parseString(line, pos)

	pos = skipSpace(line, pos)
	var tc tagCounts
	tc, pos = parseTagCounts(line, pos)

	for i := 0; i < tc.ints; i++ {
		pos = skipSpace(line, pos)
		end := indexEnd(line, pos)
		tag.IntValues = append(tag.IntValues, atoiPrefix(line[pos:end]))
		pos = end
		if pos < len(line) && line[pos] == '/' {
			pos++
		}
	}
	for i := 0; i < tc.floats; i++ {
		pos = skipSpace(line, pos)
		end := indexEnd(line, pos)
		var val float32
		if f, ok := parseDouble(line[pos:end]); ok {
			val = float32(f)
		}
		tag.FloatValues = append(tag.FloatValues, val)
		pos = end
		if pos < len(line) && line[pos] == '/' {
			pos++
		}
	}
	for i := 0; i < tc.strings; i++ {
		var tok string
		tok, pos = parseString(line, pos)
		tag.StringValues = append(tag.StringValues, tok)
	}
	return tag
}

package wavefront

import (
	"bufio"
	"io"
	"strings"
)

// Callbacks receives parse events from ParseOBJWithCallbacks. Nil fields
// are skipped. Face indices are delivered raw, exactly as written in the
// file: 1-based, possibly negative, 0 for absent components.
type Callbacks struct {
	Vertex   func(x, y, z, w float32)
	Normal   func(x, y, z float32)
	TexCoord func(x, y, z float32)
	Index    func(face []Index)
	UseMtl   func(name string, id int)
	MtlLib   func(materials []Material)
	Group    func(names []string)
	Object   func(name string)
}

// ParseOBJWithCallbacks streams OBJ directives as events instead of
// building an OBJ, for callers that want their own representation without
// paying for the intermediate one. Material libraries are still resolved
// through resolver (nil disables them) so UseMtl can report ids. Returns
// accumulated warning text and the stream error, if any.
func ParseOBJWithCallbacks(r io.Reader, cb Callbacks, resolver MaterialResolver) (string, error) {
	var warnings strings.Builder
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
			if cb.Vertex != nil {
				x, y, z, w, _ := parseV(line, pos+1)
				cb.Vertex(x, y, z, w)
			}

		case hasKeyword(line, pos, "vn"):
			if cb.Normal != nil {
				x, y, z, _ := parseReal3(line, pos+2, 0, 0, 0)
				cb.Normal(x, y, z)
			}

		case hasKeyword(line, pos, "vt"):
			if cb.TexCoord != nil {
				x, y, z, _ := parseReal3(line, pos+2, 0, 0, 0)
				cb.TexCoord(x, y, z)
			}

		case hasKeyword(line, pos, "f"):
			if cb.Index == nil {
				break
			}
			p := skipSpace(line, pos+1)
			face := make([]Index, 0, 4)
			for p < len(line) {
				var idx Index
				idx, p = parseRawTriple(line, p)
				face = append(face, idx)
				p = skipSpace(line, p)
			}
			if len(face) > 0 {
				cb.Index(face)
			}

		case hasKeyword(line, pos, "usemtl"):
			if cb.UseMtl == nil {
				break
			}
			matName := directiveArg(line, pos+len("usemtl"))
			id := -1
			if i, ok := lib.Index[matName]; ok {
				id = i
			}
			cb.UseMtl(matName, id)

		case hasKeyword(line, pos, "mtllib"):
			if resolver == nil {
				break
			}
			filenames := strings.Fields(directiveArg(line, pos+len("mtllib")))
			if len(filenames) == 0 {
				warnings.WriteString("empty filename for mtllib directive; using default material\n")
				break
			}
			prev := len(lib.Materials)
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
			} else if cb.MtlLib != nil {
				cb.MtlLib(lib.Materials[prev:])
			}

		case hasKeyword(line, pos, "g"):
			if cb.Group == nil {
				break
			}
			p := pos
			var tok string
			_, p = parseString(line, p) // keyword
			var names []string
			for {
				tok, p = parseString(line, p)
				if tok == "" {
					break
				}
				names = append(names, tok)
			}
			cb.Group(names)

		case hasKeyword(line, pos, "o"):
			if cb.Object != nil {
				cb.Object(directiveArg(line, pos+1))
			}
		}
	}

	return warnings.String(), scanner.Err()
}

package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseMTL reads a material library line by line, appending one material to
// lib per newmtl directive. Non-fatal problems are returned as accumulated
// warning text; the parse itself always runs to end of stream.
//
// The final open record is committed unconditionally at end of stream, even
// without a preceding newmtl. Legacy loaders rely on this for libraries that
// set coefficients before the first newmtl.
func ParseMTL(r io.Reader, lib *MaterialLib) string {
	var warnings strings.Builder

	material := NewMaterial()
	hasD := false
	hasTr := false

	scanner := newLineScanner(bufio.NewScanner(r))
	for scanner.Scan() {
		line := trimLine(scanner.Text())

		pos := skipSpace(line, 0)
		if pos >= len(line) || line[pos] == '#' {
			continue
		}

		switch {
		case hasKeyword(line, pos, "newmtl"):
			if material.Name != "" {
				lib.add(material)
			}
			material = NewMaterial()
			hasD = false
			hasTr = false
			material.Name = directiveArg(line, pos+len("newmtl"))

		case hasKeyword(line, pos, "Ka"):
			r, g, b, _ := parseReal3(line, pos+len("Ka"), 0, 0, 0)
			material.Ambient = [3]float32{r, g, b}

		case hasKeyword(line, pos, "Kd"):
			r, g, b, _ := parseReal3(line, pos+len("Kd"), 0, 0, 0)
			material.Diffuse = [3]float32{r, g, b}

		case hasKeyword(line, pos, "Ks"):
			r, g, b, _ := parseReal3(line, pos+len("Ks"), 0, 0, 0)
			material.Specular = [3]float32{r, g, b}

		case hasKeyword(line, pos, "Kt"), hasKeyword(line, pos, "Tf"):
			r, g, b, _ := parseReal3(line, pos+2, 0, 0, 0)
			material.Transmittance = [3]float32{r, g, b}

		case hasKeyword(line, pos, "Ke"):
			r, g, b, _ := parseReal3(line, pos+len("Ke"), 0, 0, 0)
			material.Emission = [3]float32{r, g, b}

		case hasKeyword(line, pos, "Ni"):
			material.IOR, _ = parseReal(line, pos+len("Ni"), 0)

		case hasKeyword(line, pos, "Ns"):
			material.Shininess, _ = parseReal(line, pos+len("Ns"), 0)

		case hasKeyword(line, pos, "illum"):
			material.Illum, _ = parseInt(line, pos+len("illum"))

		case hasKeyword(line, pos, "d"):
			material.Dissolve, _ = parseReal(line, pos+len("d"), 0)
			if hasTr {
				fmt.Fprintf(&warnings, "both %q and %q defined for material %q; using the value of %q for dissolve\n", "d", "Tr", material.Name, "d")
			}
			hasD = true

		case hasKeyword(line, pos, "Tr"):
			if hasD {
				fmt.Fprintf(&warnings, "both %q and %q defined for material %q; using the value of %q for dissolve\n", "d", "Tr", material.Name, "d")
			} else {
				// Tr is inverted transparency.
				var tr float32
				tr, _ = parseReal(line, pos+len("Tr"), 0)
				material.Dissolve = 1 - tr
			}
			hasTr = true

		case hasKeyword(line, pos, "Pr"):
			material.Roughness, _ = parseReal(line, pos+len("Pr"), 0)

		case hasKeyword(line, pos, "Pm"):
			material.Metallic, _ = parseReal(line, pos+len("Pm"), 0)

		case hasKeyword(line, pos, "Ps"):
			material.Sheen, _ = parseReal(line, pos+len("Ps"), 0)

		case hasKeyword(line, pos, "Pc"):
			material.ClearcoatThickness, _ = parseReal(line, pos+len("Pc"), 0)

		case hasKeyword(line, pos, "Pcr"):
			material.ClearcoatRoughness, _ = parseReal(line, pos+len("Pcr"), 0)

		case hasKeyword(line, pos, "aniso"):
			material.Anisotropy, _ = parseReal(line, pos+len("aniso"), 0)

		case hasKeyword(line, pos, "anisor"):
			material.AnisotropyRotation, _ = parseReal(line, pos+len("anisor"), 0)

		case hasKeyword(line, pos, "map_Ka"):
			parseTextureMap(&material.AmbientMap, line, pos+len("map_Ka"), false)

		case hasKeyword(line, pos, "map_Kd"):
			parseTextureMap(&material.DiffuseMap, line, pos+len("map_Kd"), false)

		case hasKeyword(line, pos, "map_Ks"):
			parseTextureMap(&material.SpecularMap, line, pos+len("map_Ks"), false)

		case hasKeyword(line, pos, "map_Ns"):
			parseTextureMap(&material.SpecularHighlightMap, line, pos+len("map_Ns"), false)

		case hasKeyword(line, pos, "map_bump"), hasKeyword(line, pos, "bump"):
			kwLen := len("bump")
			if line[pos] == 'm' {
				kwLen = len("map_bump")
			}
			parseTextureMap(&material.BumpMap, line, pos+kwLen, true)

		case hasKeyword(line, pos, "map_d"):
			parseTextureMap(&material.AlphaMap, line, pos+len("map_d"), false)

		case hasKeyword(line, pos, "disp"):
			parseTextureMap(&material.DisplacementMap, line, pos+len("disp"), false)

		case hasKeyword(line, pos, "refl"):
			parseTextureMap(&material.ReflectionMap, line, pos+len("refl"), false)

		case hasKeyword(line, pos, "map_Pr"):
			parseTextureMap(&material.RoughnessMap, line, pos+len("map_Pr"), false)

		case hasKeyword(line, pos, "map_Pm"):
			parseTextureMap(&material.MetallicMap, line, pos+len("map_Pm"), false)

		case hasKeyword(line, pos, "map_Ps"):
			parseTextureMap(&material.SheenMap, line, pos+len("map_Ps"), false)

		case hasKeyword(line, pos, "map_Ke"):
			parseTextureMap(&material.EmissiveMap, line, pos+len("map_Ke"), false)

		case hasKeyword(line, pos, "norm"):
			parseTextureMap(&material.NormalMap, line, pos+len("norm"), false)

		default:
			// Preserve unrecognized key/value directives verbatim.
			key, rest := splitUnknown(line[pos:])
			if key != "" {
				if material.Unknown == nil {
					material.Unknown = make(map[string]string)
				}
				material.Unknown[key] = rest
			}
		}
	}

	// The open record always commits at end of stream.
	lib.add(material)

	return warnings.String()
}

// directiveArg returns the remainder of a directive line after the keyword
// and a single separator, keeping internal spaces intact.
func directiveArg(line string, pos int) string {
	if pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	if pos >= len(line) {
		return ""
	}
	return line[pos:]
}

// splitUnknown splits an unrecognized directive at its first whitespace
// into a key and the raw remainder. Lines without a separator yield an
// empty key and are dropped.
func splitUnknown(s string) (key, value string) {
	sep := strings.IndexAny(s, " \t")
	if sep < 0 {
		return "", ""
	}
	return s[:sep], s[sep+1:]
}

// parseTextureMap consumes the argument text of a texture-map directive:
// dash-prefixed option flags interleaved with the texture file name. The
// option record is always rewritten; the name only when a non-flag token is
// present. The first non-flag token run is taken as the file name, so flags
// may appear on either side of it.
func parseTextureMap(dst *TextureMap, line string, pos int, isBump bool) bool {
	opt := defaultTextureOption(isBump)
	name := ""
	found := false

	for {
		pos = skipSpace(line, pos)
		if pos >= len(line) {
			break
		}

		switch {
		case hasKeyword(line, pos, "-blendu"):
			opt.BlendU, pos = parseOnOff(line, pos+len("-blendu"), true)
		case hasKeyword(line, pos, "-blendv"):
			opt.BlendV, pos = parseOnOff(line, pos+len("-blendv"), true)
		case hasKeyword(line, pos, "-clamp"):
			opt.Clamp, pos = parseOnOff(line, pos+len("-clamp"), true)
		case hasKeyword(line, pos, "-boost"):
			opt.Sharpness, pos = parseReal(line, pos+len("-boost"), 1)
		case hasKeyword(line, pos, "-bm"):
			opt.BumpMultiplier, pos = parseReal(line, pos+len("-bm"), 1)
		case hasKeyword(line, pos, "-o"):
			opt.OriginOffset[0], opt.OriginOffset[1], opt.OriginOffset[2], pos = parseReal3(line, pos+len("-o"), 0, 0, 0)
		case hasKeyword(line, pos, "-s"):
			opt.Scale[0], opt.Scale[1], opt.Scale[2], pos = parseReal3(line, pos+len("-s"), 1, 1, 1)
		case hasKeyword(line, pos, "-t"):
			opt.Turbulence[0], opt.Turbulence[1], opt.Turbulence[2], pos = parseReal3(line, pos+len("-t"), 0, 0, 0)
		case hasKeyword(line, pos, "-type"):
			opt.Type, pos = parseTextureType(line, pos+len("-type"))
		case hasKeyword(line, pos, "-imfchan"):
			var tok string
			tok, pos = parseString(line, pos+len("-imfchan"))
			if len(tok) == 1 {
				opt.ImfChan = tok[0]
			}
		case hasKeyword(line, pos, "-mm"):
			opt.Brightness, opt.Contrast, pos = parseReal2(line, pos+len("-mm"), 0, 1)
		default:
			end := tokenEnd(line, pos)
			if !found {
				name = line[pos:end]
				found = true
			}
			pos = end
		}
	}

	dst.Option = opt
	if found {
		dst.Name = name
	}
	return found
}

// parseTextureType scans a -type argument token.
func parseTextureType(s string, pos int) (TextureType, int) {
	tok, next := parseString(s, pos)
	switch tok {
	case "sphere":
		return TextureTypeSphere, next
	case "cube_top":
		return TextureTypeCubeTop, next
	case "cube_bottom":
		return TextureTypeCubeBottom, next
	case "cube_front":
		return TextureTypeCubeFront, next
	case "cube_back":
		return TextureTypeCubeBack, next
	case "cube_left":
		return TextureTypeCubeLeft, next
	case "cube_right":
		return TextureTypeCubeRight, next
	default:
		return TextureTypeNone, next
	}
}

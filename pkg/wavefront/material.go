package wavefront

import "fmt"

// TextureType identifies the projection used by a texture map.
type TextureType int

const (
	TextureTypeNone TextureType = iota
	TextureTypeSphere
	TextureTypeCubeTop
	TextureTypeCubeBottom
	TextureTypeCubeFront
	TextureTypeCubeBack
	TextureTypeCubeLeft
	TextureTypeCubeRight
)

// String returns the MTL keyword for the texture type.
func (t TextureType) String() string {
	switch t {
	case TextureTypeNone:
		return "none"
	case TextureTypeSphere:
		return "sphere"
	case TextureTypeCubeTop:
		return "cube_top"
	case TextureTypeCubeBottom:
		return "cube_bottom"
	case TextureTypeCubeFront:
		return "cube_front"
	case TextureTypeCubeBack:
		return "cube_back"
	case TextureTypeCubeLeft:
		return "cube_left"
	case TextureTypeCubeRight:
		return "cube_right"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// TextureOption holds the dash-flag modifiers of a texture-map directive.
type TextureOption struct {
	Type           TextureType // -type
	Sharpness      float32     // -boost
	Brightness     float32     // -mm base
	Contrast       float32     // -mm gain
	OriginOffset   [3]float32  // -o
	Scale          [3]float32  // -s
	Turbulence     [3]float32  // -t
	Clamp          bool        // -clamp
	ImfChan        byte        // -imfchan r|g|b|m|l|z
	BlendU         bool        // -blendu
	BlendV         bool        // -blendv
	BumpMultiplier float32     // -bm
}

// defaultTextureOption returns the option record a map directive starts
// from. Bump-style maps read the luminance channel, everything else the
// matte channel.
func defaultTextureOption(isBump bool) TextureOption {
	opt := TextureOption{
		Type:           TextureTypeNone,
		Sharpness:      1,
		Brightness:     0,
		Contrast:       1,
		Scale:          [3]float32{1, 1, 1},
		Clamp:          false,
		ImfChan:        'm',
		BlendU:         true,
		BlendV:         true,
		BumpMultiplier: 1,
	}
	if isBump {
		opt.ImfChan = 'l'
	}
	return opt
}

// TextureMap pairs a texture file name with its option record. A zero Name
// means the material does not use the map.
type TextureMap struct {
	Name   string
	Option TextureOption
}

// Material is one named record from an MTL library: classic Phong
// coefficients, PBR extension scalars, and up to thirteen texture maps.
// Materials are immutable once committed to a MaterialLib.
type Material struct {
	Name string

	Ambient       [3]float32 // Ka
	Diffuse       [3]float32 // Kd
	Specular      [3]float32 // Ks
	Transmittance [3]float32 // Tf / Kt
	Emission      [3]float32 // Ke
	Shininess     float32    // Ns
	IOR           float32    // Ni
	Dissolve      float32    // d / Tr (1 = opaque)
	Illum         int        // illum

	// PBR extension.
	Roughness          float32 // Pr
	Metallic           float32 // Pm
	Sheen              float32 // Ps
	ClearcoatThickness float32 // Pc
	ClearcoatRoughness float32 // Pcr
	Anisotropy         float32 // aniso
	AnisotropyRotation float32 // anisor

	AmbientMap           TextureMap // map_Ka
	DiffuseMap           TextureMap // map_Kd
	SpecularMap          TextureMap // map_Ks
	SpecularHighlightMap TextureMap // map_Ns
	BumpMap              TextureMap // map_bump / bump
	DisplacementMap      TextureMap // disp
	AlphaMap             TextureMap // map_d
	ReflectionMap        TextureMap // refl
	RoughnessMap         TextureMap // map_Pr
	MetallicMap          TextureMap // map_Pm
	SheenMap             TextureMap // map_Ps
	EmissiveMap          TextureMap // map_Ke
	NormalMap            TextureMap // norm

	// Unknown preserves unrecognized key/value directives verbatim so
	// tools can round-trip vendor extensions.
	Unknown map[string]string
}

// NewMaterial returns a material with the format's default coefficients.
func NewMaterial() Material {
	return Material{
		Shininess: 1,
		IOR:       1,
		Dissolve:  1,
	}
}

// HasTextures reports whether any texture map is bound.
func (m *Material) HasTextures() bool {
	for _, tex := range m.TextureMaps() {
		if tex.Name != "" {
			return true
		}
	}
	return false
}

// TextureMaps returns all texture map bindings in directive order.
func (m *Material) TextureMaps() []TextureMap {
	return []TextureMap{
		m.AmbientMap,
		m.DiffuseMap,
		m.SpecularMap,
		m.SpecularHighlightMap,
		m.BumpMap,
		m.AlphaMap,
		m.DisplacementMap,
		m.ReflectionMap,
		m.RoughnessMap,
		m.MetallicMap,
		m.SheenMap,
		m.EmissiveMap,
		m.NormalMap,
	}
}

// MaterialLib accumulates parsed materials with a name-to-index table for
// usemtl lookups. Each parse owns its lib exclusively; the accumulators are
// threaded explicitly through the OBJ parser, the resolution strategy, and
// the MTL parser.
type MaterialLib struct {
	Materials []Material
	Index     map[string]int
}

// NewMaterialLib returns an empty material library.
func NewMaterialLib() *MaterialLib {
	return &MaterialLib{Index: make(map[string]int)}
}

// add commits a material, recording its name in the lookup table.
func (l *MaterialLib) add(m Material) {
	l.Index[m.Name] = len(l.Materials)
	l.Materials = append(l.Materials, m)
}

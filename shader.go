package unirender

// Pass selects which of a Shader's four graphs is active (§3).
type Pass uint8

const (
	PassCombined Pass = iota
	PassAlbedo
	PassNormal
	PassDepth
)

// SubdivisionBoundary selects how SubdivisionSettings treats mesh
// boundary edges, restored from original_source/include/util_raytracing/
// mesh.hpp's subdivision flags (a feature the distilled spec dropped).
type SubdivisionBoundary uint8

const (
	SubdivisionBoundaryEdgeOnly SubdivisionBoundary = iota
	SubdivisionBoundaryEdgeAndCorner
)

// SubdivisionSettings configures Catmull-Clark subdivision for a shader's
// mesh at render time.
type SubdivisionSettings struct {
	MaxLevel int
	Boundary SubdivisionBoundary
}

// HairConfig configures hair-strand rendering for a shader, restored from
// original_source/include/util_raytracing/hair.hpp's strand generation
// parameters (the Cycles-specific strand builder itself belongs to the
// backend, not this IR).
type HairConfig struct {
	Enabled     bool
	ShaderIndex uint32
	RootRadius  float32
	TipRadius   float32
	Randomness  float32
}

// Shader owns up to four independent shader graphs, one per render pass,
// plus the hair/subdivision settings attached to whatever mesh it's
// assigned to (§3). Exactly one pass is "active" at a time — the one
// GetActivePassNode returns and authoring code builds against.
type Shader struct {
	BaseObject

	CombinedPass *GroupNodeDesc
	AlbedoPass   *GroupNodeDesc
	NormalPass   *GroupNodeDesc
	DepthPass    *GroupNodeDesc

	HairConfig          *HairConfig
	SubdivisionSettings *SubdivisionSettings

	activePass Pass
}

// NewShader allocates a Shader with all four pass graphs present and
// PassCombined active, matching the source's Initialize().
func NewShader(name string) *Shader {
	return &Shader{
		BaseObject:   BaseObject{Name: name},
		CombinedPass: NewGroupNodeDesc("group", name+".combined"),
		AlbedoPass:   NewGroupNodeDesc("group", name+".albedo"),
		NormalPass:   NewGroupNodeDesc("group", name+".normal"),
		DepthPass:    NewGroupNodeDesc("group", name+".depth"),
		activePass:   PassCombined,
	}
}

// SetActivePass selects which of the four graphs authoring/Finalize acts
// on.
func (s *Shader) SetActivePass(p Pass) { s.activePass = p }

// ActivePass reports the currently selected pass.
func (s *Shader) ActivePass() Pass { return s.activePass }

// GetActivePassNode returns the GroupNodeDesc for the currently active
// pass.
func (s *Shader) GetActivePassNode() *GroupNodeDesc {
	switch s.activePass {
	case PassCombined:
		return s.CombinedPass
	case PassAlbedo:
		return s.AlbedoPass
	case PassNormal:
		return s.NormalPass
	case PassDepth:
		return s.DepthPass
	default:
		return nil
	}
}

// Finalize resolves every populated pass graph, inlining nested groups so
// a backend sees a flat node list per pass.
func (s *Shader) Finalize() {
	for _, pass := range [...]*GroupNodeDesc{s.CombinedPass, s.AlbedoPass, s.NormalPass, s.DepthPass} {
		if pass != nil {
			pass.ResolveGroupNodes()
		}
	}
}

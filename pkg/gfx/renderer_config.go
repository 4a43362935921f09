package gfx

// RendererConfig describes the rectangle pipeline.
// Custom shader sources must keep the attribute contract of the built-in pair:
// - location 0: vec2 local position (per vertex)
// - locations 1..4: vec3 world pos, vec4 color, vec2 rect size, vec4 radii (per instance)
// - uniforms: mat4 view, mat4 projection
type RendererConfig struct {
	// Capacity is the instance limit per flush. Zero means DefaultCapacity.
	Capacity       int
	VertexSource   string
	FragmentSource string
	// DepthTest enables depth testing with a less-or-equal comparison so that
	// equal z keeps submission order.
	DepthTest bool
	// ClearColor is used by Context.BeginFrame.
	ClearColor [4]float32
}

func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		Capacity:       DefaultCapacity,
		VertexSource:   RectVertexShader,
		FragmentSource: RectFragmentShader,
		DepthTest:      true,
		ClearColor:     [4]float32{0.1, 0.1, 0.1, 1.0},
	}
}

func (c RendererConfig) withDefaults() RendererConfig {
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	if c.VertexSource == "" {
		c.VertexSource = RectVertexShader
	}
	if c.FragmentSource == "" {
		c.FragmentSource = RectFragmentShader
	}
	return c
}

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/postfx"
)

// quadShader is one full-screen pass variant: a compute pipeline with
// the fixed postfx bind layout (coefficients, pass params, input
// texels, output texels).
type quadShader struct {
	dev   *Device
	label string
	entry string
	vprt  bool

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

var _ postfx.Shader = (*quadShader)(nil)

// CreateQuadShader compiles a full-screen compute shader. Defines are
// rendered as a WGSL const prologue; the assembled source is compiled
// to SPIR-V through naga, memoized by source text so identical rebuilds
// skip compilation.
func (d *Device) CreateQuadShader(source, entryPoint, label string, defines postfx.ShaderDefines) (postfx.Shader, error) {
	full := assembleSource(&defines, source)

	spirv, ok := d.spirv.Get(full)
	if !ok {
		spirvBytes, err := naga.Compile(full)
		if err != nil {
			return nil, fmt.Errorf("postfx-wgpu: compile %q: %w", label, err)
		}
		spirv = spirvWords(spirvBytes)
		d.spirv.Set(full, spirv)
	}

	s := &quadShader{dev: d, label: label, entry: entryPoint}
	if v, found := defines.Get("VPRT"); found && v == "1" {
		s.vprt = true
	}

	var err error
	s.module, err = d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("postfx-wgpu: create shader module %q: %w", label, err)
	}

	if err := s.createPipeline(); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

// createPipeline builds the bind group layout, pipeline layout and
// compute pipeline for the variant. The bindings mirror the
// declarations in postprocess.wgsl.
func (s *quadShader) createPipeline() error {
	dev := s.dev.device

	bindLayout, err := dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: s.label + " bind layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create bind group layout %q: %w", s.label, err)
	}
	s.bindLayout = bindLayout

	pipeLayout, err := dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            s.label + " pipeline layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create pipeline layout %q: %w", s.label, err)
	}
	s.pipeLayout = pipeLayout

	pipeline, err := dev.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  s.label,
		Layout: s.pipeLayout,
		Compute: hal.ComputeState{
			Module:     s.module,
			EntryPoint: s.entry,
		},
	})
	if err != nil {
		return fmt.Errorf("postfx-wgpu: create compute pipeline %q: %w", s.label, err)
	}
	s.pipeline = pipeline
	return nil
}

// Label returns the debug label the shader was created with.
func (s *quadShader) Label() string { return s.label }

// Destroy releases the pipeline and module. Safe on partially
// constructed shaders.
func (s *quadShader) Destroy() {
	dev := s.dev.device
	if dev == nil {
		return
	}
	if s.pipeline != nil {
		dev.DestroyComputePipeline(s.pipeline)
		s.pipeline = nil
	}
	if s.pipeLayout != nil {
		dev.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.bindLayout != nil {
		dev.DestroyBindGroupLayout(s.bindLayout)
		s.bindLayout = nil
	}
	if s.module != nil {
		dev.DestroyShaderModule(s.module)
		s.module = nil
	}
}

// assembleSource prepends the defines prologue to the shader source.
func assembleSource(defines *postfx.ShaderDefines, source string) string {
	prologue := defines.WGSL()
	if prologue == "" {
		return source
	}
	return prologue + source
}

// spirvWords converts naga output bytes to the uint32 words the HAL
// expects (SPIR-V is little-endian on disk).
func spirvWords(spirvBytes []byte) []uint32 {
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

// Device provides GPU access from the host application.
//
// This interface is the integration point between postfx and the host's
// graphics stack. Key principle: postfx RECEIVES the device from the
// host, it does NOT create one. backend/wgpu implements Device on top of
// gogpu/wgpu; SoftwareDevice implements it on the CPU for headless use.
//
// Binding methods (SetShader, SetShaderInput*, SetShaderOutput) stage
// state for the next DispatchShader call. The engine drives them from a
// single render thread; implementations need not be safe for concurrent
// use.
type Device interface {
	// CreateQuadShader compiles a full-screen shader from source with
	// the given entry point and preprocessor-style defines. The label
	// is attached to the GPU object for debugging.
	CreateQuadShader(source, entryPoint, label string, defines ShaderDefines) (Shader, error)

	// CreateBuffer allocates a shader-constant buffer of the given size.
	CreateBuffer(size int, label string) (Buffer, error)

	// SetShader selects the shader and sampler for the next dispatch.
	SetShader(s Shader, sampler Sampler)

	// SetShaderInputBuffer binds a constant buffer to an input slot.
	SetShaderInputBuffer(slot int, b Buffer)

	// SetShaderInputTexture binds a texture slice as shader input.
	// The slice index is ignored for non-array textures.
	SetShaderInputTexture(slot int, t Texture, slice int)

	// SetShaderOutput binds a texture slice as shader output.
	SetShaderOutput(slot int, t Texture, slice int)

	// DispatchShader runs the staged full-screen pass over the bound
	// output and blocks until submission completes.
	DispatchShader() error
}

// Shader is an opaque compiled shader handle owned by a Device.
type Shader interface {
	// Label returns the debug label the shader was created with.
	Label() string

	// Destroy releases the GPU resources behind the handle.
	Destroy()
}

// Buffer is a shader-constant buffer handle owned by a Device.
type Buffer interface {
	// Upload writes data into the buffer. len(data) must not exceed
	// the buffer size.
	Upload(data []byte) error

	// Size returns the buffer size in bytes.
	Size() int

	// Destroy releases the GPU resources behind the handle.
	Destroy()
}

// Texture is a render target addressable by an integer slice index.
// Textures are created by the surrounding layer (swapchain, renderer)
// and treated by postfx as read-only external resources.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Layers returns the array layer count; 1 for plain 2D textures.
	Layers() int

	// IsArray reports whether the texture is an array texture.
	IsArray() bool
}

// Sampler selects the sampling mode for the input texture.
type Sampler uint8

const (
	// SamplerLinearClamp is bilinear filtering with edge clamping.
	SamplerLinearClamp Sampler = iota

	// SamplerNearestClamp is point sampling with edge clamping.
	SamplerNearestClamp
)

// ShaderDefines is an ordered list of compile-time constants injected
// into shader source, standing in for an HLSL-style preprocessor.
type ShaderDefines struct {
	defines []shaderDefine
}

type shaderDefine struct {
	name  string
	value string
}

// Add appends a define. Later additions with the same name win; the
// backend emits them in order, so redefinition shadows earlier values.
func (d *ShaderDefines) Add(name, value string) {
	d.defines = append(d.defines, shaderDefine{name: name, value: value})
}

// AddBool appends a boolean define as 0 or 1.
func (d *ShaderDefines) AddBool(name string, value bool) {
	v := "0"
	if value {
		v = "1"
	}
	d.Add(name, v)
}

// Get returns the value of a define and whether it is present.
// The last addition wins.
func (d *ShaderDefines) Get(name string) (string, bool) {
	for i := len(d.defines) - 1; i >= 0; i-- {
		if d.defines[i].name == name {
			return d.defines[i].value, true
		}
	}
	return "", false
}

// Clone returns an independent copy, so variant-specific additions do
// not leak into defines shared across shader variants.
func (d *ShaderDefines) Clone() ShaderDefines {
	out := ShaderDefines{defines: make([]shaderDefine, len(d.defines))}
	copy(out.defines, d.defines)
	return out
}

// WGSL renders the defines as WGSL const declarations, one per line,
// for prepending to shader source.
func (d *ShaderDefines) WGSL() string {
	if len(d.defines) == 0 {
		return ""
	}
	var out []byte
	for _, def := range d.defines {
		out = append(out, "const "...)
		out = append(out, def.name...)
		out = append(out, ": u32 = "...)
		out = append(out, def.value...)
		out = append(out, "u;\n"...)
	}
	return string(out)
}

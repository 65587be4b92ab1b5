package postfx

import (
	_ "embed"
	"fmt"
)

//go:embed shaders/postprocess.wgsl
var postProcessShaderSource string

// Shader variant indexes, in dispatch-selection order.
const (
	variantPassThrough = iota // mode off
	variantPostProcess        // single texture
	variantPostProcessVPRT    // array texture, per-slice routing
	variantCount
)

// shaderSet owns the engine's GPU resources: the three shader variants
// built from the shared post-process source, and the constant buffer
// holding the coefficient block. Resources live for the engine's
// lifetime and are replaced only by an explicit rebuild.
type shaderSet struct {
	shaders [variantCount]Shader
	coeffs  Buffer
}

// build (re)creates all shader variants and the constant buffer on the
// given device. It is idempotent: new resources are created first and
// the old set is destroyed only after full success, so a failed rebuild
// leaves no partial state behind and the previous set stays usable.
func (s *shaderSet) build(device Device, source string) error {
	var defines ShaderDefines
	// defines.AddBool("POST_PROCESS_SRC_SRGB", true)
	// defines.AddBool("POST_PROCESS_DST_SRGB", true)
	defines.AddBool("VPRT", false)

	var next shaderSet
	destroyNext := func() { next.destroy() }

	var err error
	next.shaders[variantPassThrough], err = device.CreateQuadShader(
		source, "mainPassThrough", "Postprocess (none)", defines.Clone())
	if err != nil {
		return fmt.Errorf("postfx: compile pass-through shader: %w", err)
	}

	next.shaders[variantPostProcess], err = device.CreateQuadShader(
		source, "mainPostProcess", "Postprocess", defines.Clone())
	if err != nil {
		destroyNext()
		return fmt.Errorf("postfx: compile post-process shader: %w", err)
	}

	vprt := defines.Clone()
	vprt.AddBool("VPRT", true)
	next.shaders[variantPostProcessVPRT], err = device.CreateQuadShader(
		source, "mainPostProcess", "Postprocess (VPRT)", vprt)
	if err != nil {
		destroyNext()
		return fmt.Errorf("postfx: compile VPRT shader: %w", err)
	}

	next.coeffs, err = device.CreateBuffer(CoefficientBlockSize, "Postprocess coefficients")
	if err != nil {
		destroyNext()
		return fmt.Errorf("postfx: create coefficient buffer: %w", err)
	}

	s.destroy()
	*s = next
	return nil
}

// upload writes the coefficient block into the constant buffer.
// Safe to call on every recompute.
func (s *shaderSet) upload(block *CoefficientBlock) error {
	return s.coeffs.Upload(block.Bytes())
}

// destroy releases all owned resources. Safe on a zero shaderSet.
func (s *shaderSet) destroy() {
	for i, sh := range s.shaders {
		if sh != nil {
			sh.Destroy()
			s.shaders[i] = nil
		}
	}
	if s.coeffs != nil {
		s.coeffs.Destroy()
		s.coeffs = nil
	}
}

package postfx

import (
	"errors"
	"fmt"
	"math"
)

// SoftwareDevice is a CPU implementation of [Device] over [Pixmap]
// textures. It mirrors the WGSL grade math exactly, pixel for pixel, so
// the engine can run headless (tests, tooling, golden images) with the
// same observable behavior as the GPU backends.
//
// Like the GPU backends it is not safe for concurrent use; binding
// state is staged between SetShader and DispatchShader.
type SoftwareDevice struct {
	bound softBinding
}

type softBinding struct {
	shader   *softShader
	coeffs   *softBuffer
	input    *Pixmap
	output   *Pixmap
	inSlice  int
	outSlice int
}

var _ Device = (*SoftwareDevice)(nil)

// NewSoftwareDevice creates a CPU device.
func NewSoftwareDevice() *SoftwareDevice {
	return &SoftwareDevice{}
}

// DeviceName identifies the software rasterizer to capability probes.
func (d *SoftwareDevice) DeviceName() string { return "postfx software rasterizer" }

// Float16Supported reports false; the software path is float32 only.
func (d *SoftwareDevice) Float16Supported() bool { return false }

// softShader is a compiled-shader stand-in: entry point plus the VPRT
// define, which is all the CPU path needs to select behavior.
type softShader struct {
	label string
	entry string
	vprt  bool
}

func (s *softShader) Label() string { return s.label }
func (s *softShader) Destroy()      {}

// softBuffer is a plain byte buffer with the Buffer contract.
type softBuffer struct {
	label string
	data  []byte
}

func (b *softBuffer) Upload(data []byte) error {
	if len(data) > len(b.data) {
		return fmt.Errorf("postfx: upload of %d bytes exceeds buffer %q size %d",
			len(data), b.label, len(b.data))
	}
	copy(b.data, data)
	return nil
}

func (b *softBuffer) Size() int { return len(b.data) }
func (b *softBuffer) Destroy()  {}

// CreateQuadShader validates the entry point and captures the VPRT
// define. The WGSL body itself is not interpreted; the CPU mirror of
// the grade math stands in for it.
func (d *SoftwareDevice) CreateQuadShader(source, entryPoint, label string, defines ShaderDefines) (Shader, error) {
	if source == "" {
		return nil, errors.New("postfx: empty shader source")
	}
	switch entryPoint {
	case "mainPassThrough", "mainPostProcess":
	default:
		return nil, fmt.Errorf("postfx: unknown shader entry point %q", entryPoint)
	}
	v, _ := defines.Get("VPRT")
	return &softShader{label: label, entry: entryPoint, vprt: v == "1"}, nil
}

// CreateBuffer allocates a byte buffer of the given size.
func (d *SoftwareDevice) CreateBuffer(size int, label string) (Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("postfx: invalid buffer size %d", size)
	}
	return &softBuffer{label: label, data: make([]byte, size)}, nil
}

// SetShader stages the shader for the next dispatch. The sampler is
// accepted for interface parity; the CPU path reads texels 1:1 and
// never filters.
func (d *SoftwareDevice) SetShader(s Shader, _ Sampler) {
	d.bound.shader, _ = s.(*softShader)
}

// SetShaderInputBuffer stages the coefficient buffer.
func (d *SoftwareDevice) SetShaderInputBuffer(_ int, b Buffer) {
	d.bound.coeffs, _ = b.(*softBuffer)
}

// SetShaderInputTexture stages the input pixmap and slice.
func (d *SoftwareDevice) SetShaderInputTexture(_ int, t Texture, slice int) {
	d.bound.input, _ = t.(*Pixmap)
	d.bound.inSlice = slice
}

// SetShaderOutput stages the output pixmap and slice.
func (d *SoftwareDevice) SetShaderOutput(_ int, t Texture, slice int) {
	d.bound.output, _ = t.(*Pixmap)
	d.bound.outSlice = slice
}

// DispatchShader runs the staged pass. VPRT shaders process every
// layer in one dispatch; other shaders process the bound slice, forced
// to 0 for non-array textures.
func (d *SoftwareDevice) DispatchShader() error {
	b := &d.bound
	switch {
	case b.shader == nil:
		return errors.New("postfx: dispatch without shader")
	case b.input == nil || b.output == nil:
		return errors.New("postfx: dispatch without bound textures")
	case b.coeffs == nil:
		return errors.New("postfx: dispatch without coefficient buffer")
	}
	if b.input.Width() != b.output.Width() || b.input.Height() != b.output.Height() {
		return fmt.Errorf("postfx: texture size mismatch %dx%d -> %dx%d",
			b.input.Width(), b.input.Height(), b.output.Width(), b.output.Height())
	}

	block := decodeCoefficientBlock(b.coeffs.data)

	if b.shader.vprt {
		layers := b.input.Layers()
		if out := b.output.Layers(); out < layers {
			layers = out
		}
		for layer := 0; layer < layers; layer++ {
			d.processSlice(&block, layer, layer)
		}
		return nil
	}

	in, out := b.inSlice, b.outSlice
	if !b.input.IsArray() {
		in = 0
	}
	if !b.output.IsArray() {
		out = 0
	}
	if in >= b.input.Layers() || out >= b.output.Layers() || in < 0 || out < 0 {
		return fmt.Errorf("postfx: slice %d/%d out of range", in, out)
	}
	d.processSlice(&block, in, out)
	return nil
}

func (d *SoftwareDevice) processSlice(block *CoefficientBlock, inSlice, outSlice int) {
	b := &d.bound
	passThrough := b.shader.entry == "mainPassThrough"

	for y := 0; y < b.input.Height(); y++ {
		for x := 0; x < b.input.Width(); x++ {
			c := b.input.At(x, y, inSlice)
			if !passThrough {
				rgb := gradePixel([3]float32{
					float32(c.R) / 255,
					float32(c.G) / 255,
					float32(c.B) / 255,
				}, block)
				c.R = uint8(rgb[0]*255 + 0.5)
				c.G = uint8(rgb[1]*255 + 0.5)
				c.B = uint8(rgb[2]*255 + 0.5)
			}
			b.output.SetPixel(x, y, outSlice, c)
		}
	}
}

// gradePixel applies the coefficient block to one RGB texel in [0, 1].
// Kept in exact step order with fn grade in shaders/postprocess.wgsl;
// change one and you must change the other.
func gradePixel(rgb [3]float32, k *CoefficientBlock) [3]float32 {
	// Exposure in stops.
	ev := exp2f(k.Params1[2])
	for i := range rgb {
		rgb[i] *= ev
	}

	// Contrast about mid grey.
	for i := range rgb {
		rgb[i] = (rgb[i]-0.5)*(1+k.Params1[0]) + 0.5
	}

	// Brightness offset.
	for i := range rgb {
		rgb[i] += k.Params1[1] * 0.5
	}

	// Per-channel color gains.
	for i := range rgb {
		rgb[i] *= 1 + k.Params2[i]
	}

	luma := 0.2126*rgb[0] + 0.7152*rgb[1] + 0.0722*rgb[2]

	// Saturation.
	for i := range rgb {
		rgb[i] = luma + (rgb[i]-luma)*(1+k.Params1[3])
	}

	// Vibrance, weighted toward low-saturation pixels.
	sat := max3(rgb) - min3(rgb)
	vib := 1 + k.Params3[2]*(1-saturate(sat))
	for i := range rgb {
		rgb[i] = luma + (rgb[i]-luma)*vib
	}

	// Highlights compress above mid grey, shadows lift below it.
	for i := range rgb {
		if rgb[i] > 0.5 {
			rgb[i] = 0.5 + (rgb[i]-0.5)*(1-k.Params3[0])
		}
		if rgb[i] < 0.5 {
			rgb[i] += k.Params3[1] * (0.5 - rgb[i])
		}
	}

	for i := range rgb {
		rgb[i] = saturate(rgb[i])
	}
	return rgb
}

// decodeCoefficientBlock parses the little-endian buffer bytes back
// into a block, inverse of CoefficientBlock.Bytes.
func decodeCoefficientBlock(data []byte) CoefficientBlock {
	var block CoefficientBlock
	out := [3]*Vec4{&block.Params1, &block.Params2, &block.Params3}
	off := 0
	for g := 0; g < 3; g++ {
		for c := 0; c < 4; c++ {
			bits := uint32(data[off]) | uint32(data[off+1])<<8 |
				uint32(data[off+2])<<16 | uint32(data[off+3])<<24
			out[g][c] = math.Float32frombits(bits)
			off += 4
		}
	}
	return block
}

func exp2f(v float32) float32 {
	return float32(math.Exp2(float64(v)))
}

func max3(v [3]float32) float32 {
	m := v[0]
	if v[1] > m {
		m = v[1]
	}
	if v[2] > m {
		m = v[2]
	}
	return m
}

func min3(v [3]float32) float32 {
	m := v[0]
	if v[1] < m {
		m = v[1]
	}
	if v[2] < m {
		m = v[2]
	}
	return m
}

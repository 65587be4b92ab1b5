package postfx

import "math"

// Vec4 is a 4-component float32 vector with the same memory layout as a
// shader vec4<f32>.
type Vec4 [4]float32

// IVec4 is a 4-component int32 vector holding raw user settings on the
// 0..1000 scale.
type IVec4 [4]int32

// CoefficientBlock is the packed shader-constant block consumed by the
// post-process shader. Layout matches the uniform declaration in
// postprocess.wgsl: three vec4<f32>, 16-byte aligned, 48 bytes total.
type CoefficientBlock struct {
	// Params1 holds contrast, brightness, exposure and saturation,
	// each nominally in [-1, +1] (exposure may exceed it after gain).
	Params1 Vec4

	// Params2 holds the R, G and B color gains in [-1, +1].
	// The fourth component is unused.
	Params2 Vec4

	// Params3 holds highlights, shadows and vibrance in [0, 1].
	// The fourth component is unused.
	Params3 Vec4
}

// CoefficientBlockSize is the byte size of the serialized block.
const CoefficientBlockSize = 48

// Bytes serializes the block to little-endian float32 words for GPU
// upload. The returned slice is freshly allocated.
func (b *CoefficientBlock) Bytes() []byte {
	buf := make([]byte, CoefficientBlockSize)
	off := 0
	for _, v := range [3]Vec4{b.Params1, b.Params2, b.Params3} {
		for _, f := range v {
			putFloat32(buf, off, f)
			off += 4
		}
	}
	return buf
}

func putFloat32(buf []byte, offset int, val float32) {
	bits := math.Float32bits(val)
	buf[offset] = byte(bits)
	buf[offset+1] = byte(bits >> 8)
	buf[offset+2] = byte(bits >> 16)
	buf[offset+3] = byte(bits >> 24)
}

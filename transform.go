package postfx

import "fmt"

// RawParams holds one parameter set as read from the configuration
// store: three integer vectors on the 0..1000 scale, grouped the same
// way as the CoefficientBlock.
type RawParams [3]IVec4

// NeutralParams returns the fixed defaults used when no configuration
// store is present: midpoint for the signed groups, zero for the
// 0..1-range group. Transforming them with PresetNone yields the
// identity grade.
func NeutralParams() RawParams {
	return RawParams{
		{500, 500, 500, 500},
		{500, 500, 500, 0},
		{0, 0, 0, 0},
	}
}

// paramGain is the fixed per-channel multiplicative scale applied after
// normalization: contrast and brightness ranges are compressed, exposure
// and vibrance amplified, RGB gains and shadows limited.
var paramGain = [3]Vec4{
	{1, 0.8, 3, 1},
	{1, 1, 1, 1},
	{1, 0.5, 1, 1},
}

// Transform converts a raw parameter set and a preset selection into
// shader coefficients. It is a pure function: identical inputs yield
// bit-identical output.
//
// Per group: the preset bias is added to the raw integers, the sum is
// divided by 1000 and saturated to [0, 1], the first two groups are
// remapped to [-1, +1], and the group gain is applied component-wise.
// No clamp follows the gain; exposure and vibrance intentionally exceed
// the nominal range by their gain factors.
//
// Transform panics if preset is outside the compiled-in table; presets
// are a closed set and an out-of-range index is a programming error.
func Transform(raw RawParams, preset Preset) CoefficientBlock {
	if preset < 0 || preset >= PresetCount {
		panic(fmt.Sprintf("postfx: preset index %d out of range", preset))
	}
	bias := &presetBias[preset]

	var block CoefficientBlock
	out := [3]*Vec4{&block.Params1, &block.Params2, &block.Params3}
	for g := 0; g < 3; g++ {
		for c := 0; c < 4; c++ {
			v := saturate(float32(raw[g][c]+bias[g][c]) * 0.001)
			if g < 2 {
				// [0..1] -> [-1..+1]
				v = v*2 - 1
			}
			out[g][c] = v * paramGain[g][c]
		}
	}
	return block
}

// saturate clamps v to [0, 1].
func saturate(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

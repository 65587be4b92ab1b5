package postfx

import "fmt"

// Preset is a compiled-in bias applied to the raw parameters before
// normalization, simulating eyewear tints and night adaptation. Only
// the selection is user-editable; the bias values are static.
type Preset int32

const (
	// PresetNone applies no bias.
	PresetNone Preset = iota

	// PresetSunglassesLight: +2.5 contrast, -5 brightness, -5 exposure,
	// -20 highlights.
	PresetSunglassesLight

	// PresetSunglassesDark: +2.5 contrast, -10 brightness, -10 exposure,
	// -40 highlights, +5 shadows.
	PresetSunglassesDark

	// PresetDeepNight: +0.5 contrast, -40 brightness, +20 exposure,
	// -15 saturation, -75 highlights, +15 shadows, +2.5 vibrance.
	PresetDeepNight

	// PresetCount is the number of presets; not a valid selection.
	PresetCount
)

// String returns a human-readable preset name.
func (p Preset) String() string {
	switch p {
	case PresetNone:
		return "none"
	case PresetSunglassesLight:
		return "sunglasses-light"
	case PresetSunglassesDark:
		return "sunglasses-dark"
	case PresetDeepNight:
		return "deep-night"
	default:
		return fmt.Sprintf("Preset(%d)", int32(p))
	}
}

// presetBias holds the per-preset additive bias triples, one IVec4 per
// parameter group, on the same 0..1000 scale as the raw settings.
// Indexed by Preset; dimensions are asserted against PresetCount in init.
var presetBias = [...][3]IVec4{
	PresetNone: {
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	PresetSunglassesLight: {
		{25, -50, -50, 0},
		{0, 0, 0, 0},
		{20, 0, 0, 0},
	},
	PresetSunglassesDark: {
		{25, -100, -100, 0},
		{0, 0, 0, 0},
		{400, 50, 0, 0},
	},
	PresetDeepNight: {
		{5, -400, 200, -150},
		{0, 0, 0, 0},
		{750, 150, 25, 0},
	},
}

func init() {
	if len(presetBias) != int(PresetCount) {
		panic(fmt.Sprintf("postfx: preset bias table has %d entries, want %d",
			len(presetBias), PresetCount))
	}
}

// presetFromValue maps a raw store value to a Preset. Out-of-range
// values from the store are treated as PresetNone; only in-range presets
// ever reach Transform, whose range check guards against programming
// errors rather than configuration input.
func presetFromValue(v int) Preset {
	if v < 0 || v >= int(PresetCount) {
		return PresetNone
	}
	return Preset(v)
}

// readPreset reads the current preset selection; defaults to PresetNone
// when no store is present.
func readPreset(store Store) Preset {
	if store == nil {
		return PresetNone
	}
	return presetFromValue(store.Value(SettingSunglasses))
}

package postfx

import "testing"

func TestPreset_String(t *testing.T) {
	tests := []struct {
		preset Preset
		want   string
	}{
		{PresetNone, "none"},
		{PresetSunglassesLight, "sunglasses-light"},
		{PresetSunglassesDark, "sunglasses-dark"},
		{PresetDeepNight, "deep-night"},
	}
	for _, tt := range tests {
		if got := tt.preset.String(); got != tt.want {
			t.Errorf("Preset(%d).String() = %q, want %q", tt.preset, got, tt.want)
		}
	}
}

func TestPresetFromValue(t *testing.T) {
	tests := []struct {
		value int
		want  Preset
	}{
		{0, PresetNone},
		{1, PresetSunglassesLight},
		{2, PresetSunglassesDark},
		{3, PresetDeepNight},
		{4, PresetNone},
		{-1, PresetNone},
		{1000, PresetNone},
	}
	for _, tt := range tests {
		if got := presetFromValue(tt.value); got != tt.want {
			t.Errorf("presetFromValue(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestPresetBias_NoneIsNeutral(t *testing.T) {
	for g, vec := range presetBias[PresetNone] {
		if vec != (IVec4{}) {
			t.Errorf("none-preset bias group %d = %v, want zero", g, vec)
		}
	}
}

func TestPresetBias_TintsDarken(t *testing.T) {
	// Every tint preset pulls brightness down; the sunglasses tints
	// also cut exposure, while deep night raises it to compensate for
	// its heavy highlight compression.
	for _, p := range []Preset{PresetSunglassesLight, PresetSunglassesDark, PresetDeepNight} {
		if b := presetBias[p][0][1]; b >= 0 {
			t.Errorf("%v brightness bias = %d, want negative", p, b)
		}
	}
	for _, p := range []Preset{PresetSunglassesLight, PresetSunglassesDark} {
		if b := presetBias[p][0][2]; b >= 0 {
			t.Errorf("%v exposure bias = %d, want negative", p, b)
		}
	}
	if b := presetBias[PresetDeepNight][0][2]; b <= 0 {
		t.Errorf("deep night exposure bias = %d, want positive", b)
	}
}

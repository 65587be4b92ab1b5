package postfx

import "testing"

func TestReadUserParams_NilStore(t *testing.T) {
	if got, want := readUserParams(nil, 0), NeutralParams(); got != want {
		t.Errorf("readUserParams(nil) = %+v, want %+v", got, want)
	}
}

func TestReadUserParams_Primary(t *testing.T) {
	store := NewMemStore()
	store.Set(SettingContrast, 700)
	store.Set(SettingColorGainB, 321)
	store.Set(SettingVibrance, 42)

	got := readUserParams(store, 0)
	if got[0][0] != 700 {
		t.Errorf("contrast = %d, want 700", got[0][0])
	}
	if got[1][2] != 321 {
		t.Errorf("color gain B = %d, want 321", got[1][2])
	}
	if got[2][2] != 42 {
		t.Errorf("vibrance = %d, want 42", got[2][2])
	}
	// Padding components stay zero.
	if got[1][3] != 0 || got[2][3] != 0 {
		t.Errorf("padding components = %d, %d, want 0, 0", got[1][3], got[2][3])
	}
}

func TestReadUserParams_Instances(t *testing.T) {
	store := NewMemStore()
	store.Set(SettingContrast+"_u2", 800)
	store.Set(SettingContrast+"_u4", 900)

	tests := []struct {
		name     string
		instance int
		want     int32
	}{
		{"primary unaffected by suffixed sets", 0, 500},
		{"instance 2 reads _u2", 2, 800},
		{"instance 4 reads _u4", 4, 900},
		{"beyond last clamps to _u4", 9, 900},
		{"negative clamps to primary", -3, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readUserParams(store, tt.instance)[0][0]; got != tt.want {
				t.Errorf("contrast for instance %d = %d, want %d", tt.instance, got, tt.want)
			}
		})
	}
}

func TestReadUserParams_DoesNotConsumeDirtyFlags(t *testing.T) {
	store := NewMemStore()
	store.Set(SettingContrast, 600)

	_ = readUserParams(store, 0)
	if !store.HasChanged(SettingContrast) {
		t.Error("readUserParams consumed the dirty flag; reads must be pure")
	}
}

func TestReadPreset(t *testing.T) {
	if got := readPreset(nil); got != PresetNone {
		t.Errorf("readPreset(nil) = %v, want none", got)
	}

	store := NewMemStore()
	store.Set(SettingSunglasses, int(PresetDeepNight))
	if got := readPreset(store); got != PresetDeepNight {
		t.Errorf("readPreset = %v, want deep-night", got)
	}

	// Garbage from the store degrades to none instead of reaching the
	// transform's range panic.
	store.Set(SettingSunglasses, 99)
	if got := readPreset(store); got != PresetNone {
		t.Errorf("readPreset(out of range) = %v, want none", got)
	}
}

package postfx

// Setting keys understood by the engine. The persistence format of these
// keys is the configuration store's concern; postfx only reads them.
const (
	// SettingPostProcess selects the processing Mode.
	SettingPostProcess = "post_process"

	// SettingSunglasses selects the Preset.
	SettingSunglasses = "post_sunglasses"

	// Tunable parameters, 0..1000 with 500 meaning neutral
	// (except the Params3 group where 0 is neutral).
	SettingContrast   = "post_contrast"
	SettingBrightness = "post_brightness"
	SettingExposure   = "post_exposure"
	SettingSaturation = "post_saturation"
	SettingColorGainR = "post_color_gain_r"
	SettingColorGainG = "post_color_gain_g"
	SettingColorGainB = "post_color_gain_b"
	SettingHighlights = "post_highlights"
	SettingShadows    = "post_shadows"
	SettingVibrance   = "post_vibrance"
)

// paramKeys lists the tunable parameter keys in coefficient-block order.
// The update gate polls these (plus SettingSunglasses) for changes.
var paramKeys = [10]string{
	SettingContrast,
	SettingBrightness,
	SettingExposure,
	SettingSaturation,
	SettingColorGainR,
	SettingColorGainG,
	SettingColorGainB,
	SettingHighlights,
	SettingShadows,
	SettingVibrance,
}

// Store provides read access to the configuration store.
//
// HasChanged reports whether the key's value differs from the last time
// it was queried through HasChanged, and consumes the dirty flag: a
// second call without an intervening change returns false. Callers must
// not share a Store between independent polling sites, or they will
// steal each other's change notifications.
type Store interface {
	// Value returns the integer value of a setting.
	Value(key string) int

	// HasChanged reports and clears the key's dirty flag.
	HasChanged(key string) bool
}

// Mode is the processing mode driving both coefficient recomputation
// and shader variant selection.
type Mode int32

const (
	// ModeOff disables grading; Process dispatches the pass-through
	// variant so downstream consumers still see a defined output.
	ModeOff Mode = iota

	// ModeOn enables the full color grade.
	ModeOn
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeOn:
		return "on"
	default:
		return "unknown"
	}
}

// modeFromValue maps a raw store value to a Mode. Values outside the
// known enumeration are treated as ModeOff; validation of the setting
// belongs to the configuration layer, not this engine.
func modeFromValue(v int) Mode {
	if v == int(ModeOn) {
		return ModeOn
	}
	return ModeOff
}

// readMode reads the current processing mode. A nil store means off.
func readMode(store Store) Mode {
	if store == nil {
		return ModeOff
	}
	return modeFromValue(store.Value(SettingPostProcess))
}

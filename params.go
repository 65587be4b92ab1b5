package postfx

// instanceSuffixes maps a parameter-set instance index to the key
// suffix used in the configuration store. Instance 0 is the primary,
// unsuffixed set; instances 1..4 are named variants.
var instanceSuffixes = [...]string{"", "_u1", "_u2", "_u3", "_u4"}

// MaxInstance is the highest supported parameter-set instance index.
const MaxInstance = len(instanceSuffixes) - 1

// readUserParams reads one raw parameter set from the store. Instance
// indexes beyond MaxInstance clamp to the last valid suffix. A nil
// store yields NeutralParams. Pure read, no side effects: Value does
// not touch the dirty flags consumed by the update gate.
func readUserParams(store Store, instance int) RawParams {
	if store == nil {
		return NeutralParams()
	}
	if instance < 0 {
		instance = 0
	}
	if instance > MaxInstance {
		instance = MaxInstance
	}
	sfx := instanceSuffixes[instance]

	return RawParams{
		{
			int32(store.Value(SettingContrast + sfx)),
			int32(store.Value(SettingBrightness + sfx)),
			int32(store.Value(SettingExposure + sfx)),
			int32(store.Value(SettingSaturation + sfx)),
		},
		{
			int32(store.Value(SettingColorGainR + sfx)),
			int32(store.Value(SettingColorGainG + sfx)),
			int32(store.Value(SettingColorGainB + sfx)),
			0,
		},
		{
			int32(store.Value(SettingHighlights + sfx)),
			int32(store.Value(SettingShadows + sfx)),
			int32(store.Value(SettingVibrance + sfx)),
			0,
		},
	}
}

package postfx

import "testing"

func TestUpdateGate_OffNeverFires(t *testing.T) {
	store := NewMemStore()
	store.Set(SettingContrast, 999)
	_ = store.HasChanged(SettingContrast) // leave the flag consumed
	store.Set(SettingBrightness, 999)     // and this one set

	var g updateGate
	for i := 0; i < 3; i++ {
		if g.decide(store, ModeOff) {
			t.Fatalf("tick %d: gate fired in off mode", i)
		}
	}
	// The dirty flag was not consumed by the off path.
	if !store.HasChanged(SettingBrightness) {
		t.Error("off-mode gate consumed a dirty flag")
	}
}

func TestUpdateGate_FiresOnModeChange(t *testing.T) {
	var g updateGate
	store := NewMemStore()

	if !g.decide(store, ModeOn) {
		t.Error("off -> on did not fire")
	}
	if g.decide(store, ModeOn) {
		t.Error("steady on with clean store fired")
	}
	if g.decide(store, ModeOff) {
		t.Error("on -> off fired")
	}
	if !g.decide(store, ModeOn) {
		t.Error("re-enable did not fire")
	}
}

func TestUpdateGate_FiresOnDirtyKey(t *testing.T) {
	var g updateGate
	store := NewMemStore()
	g.decide(store, ModeOn) // consume the initial transition

	store.Set(SettingVibrance, 200)
	if !g.decide(store, ModeOn) {
		t.Error("dirty parameter did not fire")
	}
	if g.decide(store, ModeOn) {
		t.Error("gate fired twice for one change")
	}

	store.Set(SettingSunglasses, int(PresetDeepNight))
	if !g.decide(store, ModeOn) {
		t.Error("dirty preset did not fire")
	}
}

func TestUpdateGate_NilStore(t *testing.T) {
	var g updateGate
	if !g.decide(nil, ModeOn) {
		t.Error("off -> on with nil store did not fire")
	}
	if g.decide(nil, ModeOn) {
		t.Error("steady on with nil store fired")
	}
}

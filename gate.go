package postfx

// updateGate decides once per tick whether the coefficient block must
// be recomputed and re-uploaded. It tracks the previous processing mode
// so transitions out of off always refresh a possibly stale buffer.
type updateGate struct {
	prev Mode
}

// decide reports whether to recompute for the given current mode.
//
// Off never recomputes. A non-off mode recomputes when the mode just
// changed, or when the preset or any tunable parameter key is dirty in
// the store. The dirty checks short-circuit: remaining flags stay set
// and trigger a recompute on a later tick, which is harmless since
// recomputation reads every key fresh anyway.
func (g *updateGate) decide(store Store, mode Mode) bool {
	changed := mode != g.prev
	g.prev = mode

	if mode == ModeOff {
		return false
	}
	return changed || configDirty(store)
}

// configDirty polls (and consumes) the dirty flags of every key that
// feeds the coefficient block.
func configDirty(store Store) bool {
	if store == nil {
		return false
	}
	if store.HasChanged(SettingSunglasses) {
		return true
	}
	for _, key := range paramKeys {
		if store.HasChanged(key) {
			return true
		}
	}
	return false
}

package component

// Health is plain per-entity hit point state.
type Health struct {
	Current int32
	Max     int32
}

func NewHealth(max int32) Health {
	return Health{Current: max, Max: max}
}

// Damage reduces current HP, clamping at zero, and reports whether the
// entity dropped to zero this call.
func (h *Health) Damage(amount int32) bool {
	if amount <= 0 || h.Current == 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

// Heal restores HP up to the maximum.
func (h *Health) Heal(amount int32) {
	if amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

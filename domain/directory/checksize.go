package directory

// CheckSize is a cheque-size range in whole currency units. Either bound may
// be open.
type CheckSize struct {
	min    int64
	max    int64
	hasMin bool
	hasMax bool
}

// NewCheckSize creates a range; nil bounds are open.
func NewCheckSize(min, max *int64) CheckSize {
	var c CheckSize
	if min != nil {
		c.min, c.hasMin = *min, true
	}
	if max != nil {
		c.max, c.hasMax = *max, true
	}
	return c
}

// Min returns the lower bound and whether it is set.
func (c CheckSize) Min() (int64, bool) { return c.min, c.hasMin }

// Max returns the upper bound and whether it is set.
func (c CheckSize) Max() (int64, bool) { return c.max, c.hasMax }

// IsOpen reports whether neither bound is set.
func (c CheckSize) IsOpen() bool { return !c.hasMin && !c.hasMax }

// Overlaps reports whether the two ranges share at least one value.
// Open bounds extend to infinity. Touching endpoints overlap.
func (c CheckSize) Overlaps(other CheckSize) bool {
	if c.hasMin && other.hasMax && c.min > other.max {
		return false
	}
	if other.hasMin && c.hasMax && other.min > c.max {
		return false
	}
	return true
}

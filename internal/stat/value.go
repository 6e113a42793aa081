package stat

// Value is one stat under the layered modifier formula:
//
//	final = (base + flat) × (1 + increased) × Π(1 + more_i)
//
// Flat bonuses add to the base, "increased" bonuses pool additively into
// a single multiplier, and each "more" bonus is its own multiplier.
// There is no subtraction: removing a contribution means rebuilding the
// owning block from its remaining sources.
//
// Value is a small immutable record; every Add returns a copy, so
// snapshots can be shared freely across goroutines.
type Value struct {
	Base      float64
	Flat      float64
	Increased float64
	more      []float64
}

// NewValue returns a Value with the given base and no modifiers.
func NewValue(base float64) Value {
	return Value{Base: base}
}

// AddFlat returns a copy with v added to the flat pool.
func (s Value) AddFlat(v float64) Value {
	s.Flat += v
	return s
}

// AddIncreased returns a copy with v added to the increased pool
// (0.5 = 50% increased).
func (s Value) AddIncreased(v float64) Value {
	s.Increased += v
	return s
}

// AddMore returns a copy with an extra multiplicative stage
// (0.2 = 20% more, -1 zeroes the result). The stage list is copied so
// the receiver is never aliased.
func (s Value) AddMore(v float64) Value {
	more := make([]float64, len(s.more), len(s.more)+1)
	copy(more, s.more)
	s.more = append(more, v)
	return s
}

// WithBase returns a copy whose base is replaced by b, keeping every
// modifier. Used to fold a rolled damage amount through the attacker's
// damage modifiers.
func (s Value) WithBase(b float64) Value {
	s.Base = b
	return s
}

// Value evaluates the formula. Negative stages are legal; buckets of the
// same class commute, so evaluation order never matters.
func (s Value) Value() float64 {
	v := (s.Base + s.Flat) * (1 + s.Increased)
	for _, m := range s.more {
		v *= 1 + m
	}
	return v
}

// MoreCount reports how many more-stages are attached (mostly for tests
// and debug dumps).
func (s Value) MoreCount() int {
	return len(s.more)
}

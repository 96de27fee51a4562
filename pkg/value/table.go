package value

import "sort"

// Sample is a value observed at a time.
type Sample struct {
	Time  Time  `json:"time"`
	Value Value `json:"value"`
}

// Table is a time-ordered set of samples holding only change points: a sample
// is stored only when it differs from the sample immediately preceding it.
type Table struct {
	samples []Sample
}

// Add stores v at t unless the sample immediately before t already holds v.
// A sample at exactly t is overwritten.
func (tb *Table) Add(t Time, v Value) {
	// first index with Time > t
	i := sort.Search(len(tb.samples), func(i int) bool { return tb.samples[i].Time > t })
	if i > 0 && tb.samples[i-1].Value.Equal(v) {
		return
	}
	if i > 0 && tb.samples[i-1].Time == t {
		tb.samples[i-1].Value = v
		return
	}
	tb.samples = append(tb.samples, Sample{})
	copy(tb.samples[i+1:], tb.samples[i:])
	tb.samples[i] = Sample{Time: t, Value: v}
}

// Len returns the number of stored samples.
func (tb *Table) Len() int { return len(tb.samples) }

// Samples returns a copy of the stored samples in time order.
func (tb *Table) Samples() []Sample {
	out := make([]Sample, len(tb.samples))
	copy(out, tb.samples)
	return out
}

// Times returns the stored change times in order.
func (tb *Table) Times() []Time {
	out := make([]Time, len(tb.samples))
	for i, s := range tb.samples {
		out[i] = s.Time
	}
	return out
}

// At returns the value in effect at t: the latest sample at or before t.
func (tb *Table) At(t Time) (Value, bool) {
	i := sort.Search(len(tb.samples), func(i int) bool { return tb.samples[i].Time > t })
	if i == 0 {
		return Nil, false
	}
	return tb.samples[i-1].Value, true
}

// TimeSet is an ordered set of distinct times.
type TimeSet struct {
	times []Time
}

// Insert adds t if not already present.
func (s *TimeSet) Insert(ts ...Time) {
	for _, t := range ts {
		i := sort.Search(len(s.times), func(i int) bool { return s.times[i] >= t })
		if i < len(s.times) && s.times[i] == t {
			continue
		}
		s.times = append(s.times, 0)
		copy(s.times[i+1:], s.times[i:])
		s.times[i] = t
	}
}

// Len returns the number of distinct times.
func (s *TimeSet) Len() int { return len(s.times) }

// Slice returns the times in ascending order.
func (s *TimeSet) Slice() []Time {
	out := make([]Time, len(s.times))
	copy(out, s.times)
	return out
}

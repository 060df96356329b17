package progress

import "sort"

// At returns the pose interpolated at t seconds into the run. Times before
// the first sample clamp to it, times after the last clamp to the last.
func (tr Trace) At(t float64) (Sample, bool) {
	n := len(tr.Samples)
	if n == 0 {
		return Sample{}, false
	}
	if t <= tr.Samples[0].T {
		return tr.Samples[0], true
	}
	if t >= tr.Samples[n-1].T {
		return tr.Samples[n-1], true
	}
	i := sort.Search(n, func(i int) bool { return tr.Samples[i].T > t })
	a, b := tr.Samples[i-1], tr.Samples[i]
	span := b.T - a.T
	if span <= 0 {
		return b, true
	}
	f := (t - a.T) / span
	out := Sample{T: t, Rot: b.Rot}
	for k := range out.Pos {
		out.Pos[k] = a.Pos[k] + (b.Pos[k]-a.Pos[k])*f
	}
	return out, true
}

// Duration is the timestamp of the last sample.
func (tr Trace) Duration() float64 {
	if len(tr.Samples) == 0 {
		return 0
	}
	return tr.Samples[len(tr.Samples)-1].T
}

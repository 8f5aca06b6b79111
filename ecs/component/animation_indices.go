package component

import "time"

// AnimationIndices is the contiguous-range animation used by models that do
// not define named clips: frames First..Last play in order and always wrap.
type AnimationIndices struct {
	First int
	Last  int
}

// AnimationTimer is the repeating timer driving AnimationIndices.
type AnimationTimer struct {
	Duration time.Duration
	Elapsed  time.Duration
}

// Tick advances the timer and reports whether it finished during this call.
// A finished timer fires once per call even if dt spans several durations.
func (t *AnimationTimer) Tick(dt time.Duration) bool {
	if t.Duration <= 0 {
		return false
	}
	if dt > 0 {
		t.Elapsed += dt
	}
	if t.Elapsed < t.Duration {
		return false
	}
	t.Elapsed %= t.Duration
	return true
}

// Next returns the frame that follows current in the range.
func (a AnimationIndices) Next(current int) int {
	if current >= a.Last || current < a.First {
		return a.First
	}
	return current + 1
}

// RangeAnimation bundles the range, its timer and the frame on screen.
type RangeAnimation struct {
	Indices AnimationIndices
	Timer   AnimationTimer
	Current int
}

// Advance ticks the timer and steps the frame when it fires.
func (r *RangeAnimation) Advance(dt time.Duration) int {
	if r.Timer.Tick(dt) {
		r.Current = r.Indices.Next(r.Current)
	}
	return r.Current
}

var RangeAnimationComponent = NewComponent[RangeAnimation]()

package component

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownClip = errors.New("animation: unknown clip")
	ErrEmptyClip   = errors.New("animation: clip needs at least one frame and a positive frame duration")
)

// AnimationClip is a named run of sprite-sheet frame indices played at a fixed
// per-frame duration.
type AnimationClip struct {
	Name          string
	FrameIndices  []int
	FrameDuration time.Duration
	Looped        bool
}

func (c AnimationClip) clone() AnimationClip {
	c.FrameIndices = append([]int(nil), c.FrameIndices...)
	return c
}

func (c AnimationClip) last() int {
	return len(c.FrameIndices) - 1
}

// QueuedClip is a clip waiting to play once the active non-looping clip ends.
type QueuedClip struct {
	Name   string
	Looped bool
}

// AnimationState is the per-entity clip state machine. Active is a private
// copy of a registered clip, so two entities spawned from the same template
// never share playback state.
type AnimationState struct {
	Clips   map[string]AnimationClip
	Active  AnimationClip
	Cursor  int
	Elapsed time.Duration
	Queue   []QueuedClip
}

func NewAnimationState() *AnimationState {
	return &AnimationState{Clips: make(map[string]AnimationClip)}
}

// AddClip registers a clip, replacing any clip of the same name.
func (s *AnimationState) AddClip(name string, frames []int, frameDuration time.Duration) error {
	if len(frames) == 0 || frameDuration <= 0 {
		return fmt.Errorf("add clip %q: %w", name, ErrEmptyClip)
	}
	for _, f := range frames {
		if f < 0 {
			return fmt.Errorf("add clip %q: negative frame index %d", name, f)
		}
	}
	if s.Clips == nil {
		s.Clips = make(map[string]AnimationClip)
	}
	s.Clips[name] = AnimationClip{
		Name:          name,
		FrameIndices:  append([]int(nil), frames...),
		FrameDuration: frameDuration,
	}
	return nil
}

// HasClip reports whether a clip is registered under name.
func (s *AnimationState) HasClip(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Clips[name]
	return ok
}

// Playing reports whether a clip has been activated.
func (s *AnimationState) Playing() bool {
	return s != nil && len(s.Active.FrameIndices) > 0
}

// QueueAnimation makes name the active clip starting at its first frame.
// followUps replace the pending queue: they play in order after a
// non-looping active clip ends, the last one looping. An unknown name
// returns ErrUnknownClip and leaves the state untouched.
func (s *AnimationState) QueueAnimation(name string, looped bool, followUps ...string) error {
	clip, ok := s.Clips[name]
	if !ok {
		return fmt.Errorf("queue %q: %w", name, ErrUnknownClip)
	}
	for _, next := range followUps {
		if _, ok := s.Clips[next]; !ok {
			return fmt.Errorf("queue follow-up %q: %w", next, ErrUnknownClip)
		}
	}

	s.activate(clip, looped)
	s.Queue = s.Queue[:0]
	for i, next := range followUps {
		s.Queue = append(s.Queue, QueuedClip{Name: next, Looped: i == len(followUps)-1})
	}
	return nil
}

func (s *AnimationState) activate(clip AnimationClip, looped bool) {
	s.Active = clip.clone()
	s.Active.Looped = looped
	s.Cursor = 0
	s.Elapsed = 0
}

// Advance moves the clip timer forward by dt. The frame cursor moves at most
// one step per call, however large dt is. It returns the sprite-sheet index
// of the frame to render.
func (s *AnimationState) Advance(dt time.Duration) int {
	if !s.Playing() {
		return 0
	}
	if dt > 0 {
		s.Elapsed += dt
	}
	if s.Elapsed < s.Active.FrameDuration {
		return s.Frame()
	}
	s.Elapsed %= s.Active.FrameDuration

	switch {
	case s.Cursor < s.Active.last():
		s.Cursor++
	case s.Active.Looped:
		s.Cursor = 0
	case len(s.Queue) > 0:
		next := s.Queue[0]
		s.Queue = s.Queue[1:]
		if clip, ok := s.Clips[next.Name]; ok {
			s.activate(clip, next.Looped)
		}
	}
	return s.Frame()
}

// Frame returns the sprite-sheet index under the cursor.
func (s *AnimationState) Frame() int {
	if !s.Playing() {
		return 0
	}
	return s.Active.FrameIndices[s.Cursor]
}

// Clone deep-copies the state, including the registered clips.
func (s *AnimationState) Clone() *AnimationState {
	if s == nil {
		return nil
	}
	out := &AnimationState{
		Clips:   make(map[string]AnimationClip, len(s.Clips)),
		Active:  s.Active.clone(),
		Cursor:  s.Cursor,
		Elapsed: s.Elapsed,
		Queue:   append([]QueuedClip(nil), s.Queue...),
	}
	if len(s.Active.FrameIndices) == 0 {
		out.Active.FrameIndices = nil
	}
	for name, clip := range s.Clips {
		out.Clips[name] = clip.clone()
	}
	return out
}

var AnimationComponent = NewComponent[AnimationState]()

// Package scroll drives the self-reversing scroll of an overflowing board.
package scroll

import (
	"math"
	"time"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAtTop
	PhaseScrollingDown
	PhaseAtBottom
	PhaseScrollingUp
)

func (p Phase) String() string {
	switch p {
	case PhaseAtTop:
		return "at_top"
	case PhaseScrollingDown:
		return "scrolling_down"
	case PhaseAtBottom:
		return "at_bottom"
	case PhaseScrollingUp:
		return "scrolling_up"
	default:
		return "idle"
	}
}

// Config sets the pace of the animation. Speed is in lines per second.
type Config struct {
	Speed float64
	Frame time.Duration
	Pause time.Duration
}

func DefaultConfig() Config {
	return Config{Speed: 1.5, Frame: 50 * time.Millisecond, Pause: 3 * time.Second}
}

// Boomerang scrolls content from top to bottom and back, pausing at each end.
// Position is 0 at the top and viewport-content at the bottom, so it is never
// positive. Every Measure or Stop bumps the generation; frames scheduled under
// an older generation must be dropped.
type Boomerang struct {
	cfg Config

	generation uint64
	content    int
	viewport   int
	position   float64
	phase      Phase
	resumeAt   time.Time
}

func New(cfg Config) *Boomerang {
	defaults := DefaultConfig()
	if cfg.Speed <= 0 {
		cfg.Speed = defaults.Speed
	}
	if cfg.Frame <= 0 {
		cfg.Frame = defaults.Frame
	}
	if cfg.Pause < 0 {
		cfg.Pause = 0
	}

	return &Boomerang{cfg: cfg}
}

// Measure cancels any running animation and starts over at the top for new
// content. It reports whether frames must be scheduled; false means the
// content fits and the position is pinned at 0.
func (b *Boomerang) Measure(content, viewport int, now time.Time) bool {
	b.generation++
	b.content = content
	b.viewport = viewport
	b.position = 0

	if content <= viewport {
		b.phase = PhaseIdle
		return false
	}

	b.pauseAt(PhaseAtTop, now)
	return true
}

// Resize re-evaluates the bounds for content whose height changed in place,
// such as after a language switch. A running cycle keeps its phase and
// direction; it reports true only when a new frame chain must be scheduled.
func (b *Boomerang) Resize(content, viewport int, now time.Time) bool {
	if b.phase == PhaseIdle {
		return b.Measure(content, viewport, now)
	}

	b.content = content
	b.viewport = viewport
	if content <= viewport {
		b.Stop()
		b.position = 0
		return false
	}

	b.position = math.Max(b.position, b.Bound())
	return false
}

// Advance moves one frame forward and reports whether another frame is
// wanted.
func (b *Boomerang) Advance(now time.Time) bool {
	switch b.phase {
	case PhaseIdle:
		return false
	case PhaseAtTop:
		if now.Before(b.resumeAt) {
			return true
		}
		b.phase = PhaseScrollingDown
	case PhaseAtBottom:
		if now.Before(b.resumeAt) {
			return true
		}
		b.phase = PhaseScrollingUp
	}

	step := b.cfg.Speed * b.cfg.Frame.Seconds()
	bound := b.Bound()

	switch b.phase {
	case PhaseScrollingDown:
		b.position -= step
		if b.position <= bound {
			b.position = bound
			b.pauseAt(PhaseAtBottom, now)
		}
	case PhaseScrollingUp:
		b.position += step
		if b.position >= 0 {
			b.position = 0
			b.pauseAt(PhaseAtTop, now)
		}
	}

	return true
}

// Stop cancels the animation and leaves the position where it is.
func (b *Boomerang) Stop() {
	b.generation++
	b.phase = PhaseIdle
}

func (b *Boomerang) pauseAt(phase Phase, now time.Time) {
	b.phase = phase
	b.resumeAt = now.Add(b.cfg.Pause)
}

func (b *Boomerang) Generation() uint64 {
	return b.generation
}

func (b *Boomerang) Phase() Phase {
	return b.phase
}

func (b *Boomerang) Active() bool {
	return b.phase != PhaseIdle
}

func (b *Boomerang) Position() float64 {
	return b.position
}

// Bound is the lowest position, viewport minus content, or 0 when it fits.
func (b *Boomerang) Bound() float64 {
	return math.Min(0, float64(b.viewport-b.content))
}

// Offset is the number of lines scrolled past the top.
func (b *Boomerang) Offset() int {
	return int(math.Round(-b.position))
}

func (b *Boomerang) FrameInterval() time.Duration {
	return b.cfg.Frame
}

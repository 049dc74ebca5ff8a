package services

import "time"

// MinSwipeDistance is how far, in pixels, a touch must travel to change slide
const MinSwipeDistance = 50

// Carousel tracks which project slide is shown and whether autoplay may advance it.
// Index is always within [0, Len), or 0 when there are no slides.
type Carousel struct {
	Len          int           `json:"len"`
	Index        int           `json:"index"`
	Loop         bool          `json:"loop"`
	Autoplay     bool          `json:"autoplay"`
	Delay        time.Duration `json:"-"`
	PauseOnHover bool          `json:"pause_on_hover"`
	PauseOnModal bool          `json:"pause_on_modal"`
	Hovering     bool          `json:"hovering"`
	ModalOpen    bool          `json:"modal_open"`
	Held         bool          `json:"held"`
	WentBack     bool          `json:"went_back"`
}

// NewCarousel creates a carousel that pauses on hover and while a modal is open
func NewCarousel(n int, loop, autoplay bool, delay time.Duration) *Carousel {
	return &Carousel{
		Len:          max(n, 0),
		Loop:         loop,
		Autoplay:     autoplay,
		Delay:        delay,
		PauseOnHover: true,
		PauseOnModal: true,
	}
}

// Next moves forward one slide
func (c *Carousel) Next() {
	if c.Len == 0 {
		return
	}
	c.WentBack = false
	if c.Loop {
		c.Index = (c.Index + 1) % c.Len
		return
	}
	c.Index = min(c.Index+1, c.Len-1)
}

// Prev moves back one slide
func (c *Carousel) Prev() {
	if c.Len == 0 {
		return
	}
	c.WentBack = true
	if c.Loop {
		c.Index = (c.Index - 1 + c.Len) % c.Len
		return
	}
	c.Index = max(c.Index-1, 0)
}

// GoTo jumps to slide i; out of range indexes are ignored
func (c *Carousel) GoTo(i int) bool {
	if i < 0 || i >= c.Len {
		return false
	}
	c.WentBack = i < c.Index
	c.Index = i
	return true
}

// Swipe applies a completed touch gesture. A zero start or end means the
// gesture never registered movement and is ignored.
func (c *Carousel) Swipe(startX, endX float64) {
	if startX == 0 || endX == 0 {
		return
	}
	distance := startX - endX
	switch {
	case distance > MinSwipeDistance:
		c.Next()
	case distance < -MinSwipeDistance:
		c.Prev()
	}
}

func (c *Carousel) SetHover(on bool) {
	c.Hovering = on
}

func (c *Carousel) SetModalOpen(open bool) {
	c.ModalOpen = open
}

// Pause holds autoplay until Resume, independent of hover and modal state
func (c *Carousel) Pause() {
	c.Held = true
}

func (c *Carousel) Resume() {
	c.Held = false
}

// Paused reports whether autoplay is currently suspended
func (c *Carousel) Paused() bool {
	return c.Held ||
		(c.PauseOnHover && c.Hovering) ||
		(c.PauseOnModal && c.ModalOpen)
}

// Tick is one autoplay step. It reports whether the index changed.
func (c *Carousel) Tick() bool {
	if !c.Autoplay || c.Paused() || c.Len == 0 {
		return false
	}
	before := c.Index
	c.Next()
	return c.Index != before
}

// Reset points the carousel at a new slide set, starting from the first slide
func (c *Carousel) Reset(n int) {
	c.Len = max(n, 0)
	c.Index = 0
	c.WentBack = false
}

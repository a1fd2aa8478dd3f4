package dashboard

// ViewCount is the number of panels each swipe controller moves between.
const ViewCount = 2

// Swipe is a two-position panel switcher driven by horizontal drags and
// indicator-dot jumps.
type Swipe struct {
	threshold int
	index     int

	dragging bool
	startX   int
	lastX    int
}

// NewSwipe returns a controller on panel 0. A drag must cover strictly more
// than threshold pixels to switch.
func NewSwipe(threshold int) Swipe {
	return Swipe{threshold: threshold}
}

// Index is the active panel.
func (s *Swipe) Index() int {
	return s.index
}

// Dragging reports whether a press is in progress.
func (s *Swipe) Dragging() bool {
	return s.dragging
}

// Jump activates panel i directly, as an indicator click does. Out of
// range values are ignored.
func (s *Swipe) Jump(i int) bool {
	if i < 0 || i >= ViewCount || i == s.index {
		return false
	}
	s.index = i
	return true
}

func (s *Swipe) Press(x int) {
	s.dragging = true
	s.startX = x
	s.lastX = x
}

func (s *Swipe) Move(x int) {
	if s.dragging {
		s.lastX = x
	}
}

// Release ends the drag at x and reports whether the panel changed.
func (s *Swipe) Release(x int) bool {
	if !s.dragging {
		return false
	}
	s.lastX = x
	return s.finish()
}

// Leave ends the drag where the pointer was last seen.
func (s *Swipe) Leave() bool {
	if !s.dragging {
		return false
	}
	return s.finish()
}

func (s *Swipe) finish() bool {
	s.dragging = false
	delta := s.startX - s.lastX
	switch {
	case delta > s.threshold && s.index < ViewCount-1:
		s.index++
		return true
	case -delta > s.threshold && s.index > 0:
		s.index--
		return true
	}
	return false
}

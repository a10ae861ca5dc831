// Package carousel drives a horizontally scrolling strip: manual step
// scrolling, a hover-paused auto-advance that wraps at the end, and in-page
// anchor navigation.
package carousel

// Strip is a horizontal viewport over wider content.
type Strip struct {
	Offset       float64
	ContentWidth float64
	ClientWidth  float64
}

// MaxOffset is the largest reachable scroll offset.
func (s Strip) MaxOffset() float64 {
	if s.ContentWidth <= s.ClientWidth {
		return 0
	}
	return s.ContentWidth - s.ClientWidth
}

// ScrollTo moves to offset, clamped to the reachable range.
func (s *Strip) ScrollTo(offset float64) {
	switch limit := s.MaxOffset(); {
	case offset < 0:
		s.Offset = 0
	case offset > limit:
		s.Offset = limit
	default:
		s.Offset = offset
	}
}

// ScrollBy moves by delta, clamped.
func (s *Strip) ScrollBy(delta float64) {
	s.ScrollTo(s.Offset + delta)
}

// NearEnd reports whether the offset is within slack of the end.
func (s Strip) NearEnd(slack float64) bool {
	return s.Offset >= s.MaxOffset()-slack
}

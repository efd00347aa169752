package vcam

// Sink copies the fixed source frame into session-manager supplied regions
// on each capture tick.
type Sink struct {
	frame []byte
}

// NewSink wraps the packed source frame. The frame is not copied; it must
// stay unmodified for the sink's lifetime.
func NewSink(frame []byte) *Sink {
	return &Sink{frame: frame}
}

// Deliver fills dst with as much of the source frame as fits and returns
// the number of bytes copied. A region smaller than the frame receives a
// truncated prefix; rejecting undersized regions is the consumer's job
// during buffer negotiation, not the sink's.
func (s *Sink) Deliver(dst []byte) int {
	return copy(dst, s.frame)
}

// FrameSize returns the length of the source frame.
func (s *Sink) FrameSize() int { return len(s.frame) }

package vcam

import "errors"

var (
	// ErrBadFormat indicates a video format that cannot describe a frame.
	ErrBadFormat = errors.New("vcam: invalid video format")

	// ErrFrameSize indicates a source frame whose length does not match the
	// advertised format's rectangle.
	ErrFrameSize = errors.New("vcam: source frame length does not match format")

	// ErrUnexpectedState indicates an event with no entry in the negotiation
	// transition table for the current state. The session manager's event
	// ordering is not contractually guaranteed, so this is logged and
	// ignored, never fatal.
	ErrUnexpectedState = errors.New("vcam: event does not apply to the current negotiation state")
)

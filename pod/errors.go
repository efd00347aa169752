package pod

import "errors"

var (
	// ErrOverflow indicates a write ran past the buffer's capacity and growth
	// was unavailable or failed. The message being built is unusable.
	ErrOverflow = errors.New("pod: buffer overflow, message truncated")

	// ErrInvalidValue indicates a value that cannot be represented in its
	// tag's fixed-width encoding.
	ErrInvalidValue = errors.New("pod: value does not fit its tag encoding")

	// ErrNoOpenFrame indicates a property write with no object frame open.
	ErrNoOpenFrame = errors.New("pod: property written outside an open object")

	// ErrFrameMismatch indicates a Pop of a frame that is not the innermost
	// open frame. Frames obey strict stack discipline.
	ErrFrameMismatch = errors.New("pod: popped frame is not the innermost open frame")

	// ErrUnclosedFrame indicates Finish was called with an object still open.
	ErrUnclosedFrame = errors.New("pod: finish with an object frame still open")

	// ErrTruncated indicates the data ended before the declared object did.
	ErrTruncated = errors.New("pod: truncated object")

	// ErrUnknownTag indicates a value tag the decoder does not understand.
	ErrUnknownTag = errors.New("pod: unknown value tag")

	// ErrBadValueLength indicates a value whose declared length does not
	// match its tag's fixed payload size.
	ErrBadValueLength = errors.New("pod: value length does not match its tag")

	// ErrTrailingData indicates non-zero bytes after the end of the object.
	ErrTrailingData = errors.New("pod: non-zero trailing data after object")
)

package vcam

// Host is the stream's view of the session manager: the channel over which
// encoded parameter objects travel back to the negotiating consumer.
//
// All stream handlers are invoked from the host's event loop, one at a time,
// to completion. Host implementations must tolerate UpdateParams being
// called from inside a handler they themselves invoked.
type Host interface {
	// UpdateParams hands zero or more encoded parameter objects to the
	// session manager. An empty call acknowledges a parameter change that
	// needs no response payload.
	UpdateParams(params [][]byte) error
}

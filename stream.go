// Package vcam implements the core of a virtual camera: it advertises a
// single fixed video format to a multimedia session manager, answers the
// capability queries a downstream consumer raises during negotiation, and
// fills session-manager supplied buffers with the source frame on each
// capture tick.
//
// The package is callback-driven and single-threaded: the host invokes one
// handler at a time, to completion, on its event loop. Parameter responses
// are encoded with the pod package; each outgoing message gets a fresh
// buffer and is discarded after hand-off.
package vcam

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"

	"github.com/oy3o/vcam/pod"
)

// State is the negotiation progress of the stream. It is owned by the
// stream and mutated only from parameter and process handlers.
type State int

const (
	StateIdle State = iota
	StateFormatAdvertised
	StateFormatNegotiated
	StateBuffersNegotiated
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFormatAdvertised:
		return "format-advertised"
	case StateFormatNegotiated:
		return "format-negotiated"
	case StateBuffersNegotiated:
		return "buffers-negotiated"
	case StateStreaming:
		return "streaming"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config carries the fixed stream parameters.
type Config struct {
	Format   VideoFormat
	NodeName string

	// Logger receives negotiation traces. The zero value is silent.
	Logger zerolog.Logger

	// OnStateChanged, if set, is invoked after every state transition.
	OnStateChanged func(old, next State)
}

// Stream is one virtual camera stream. It reacts to the events the host
// delivers; it never blocks or spans work across handler invocations.
type Stream struct {
	id      uuid.UUID
	host    Host
	format  VideoFormat
	sink    *Sink
	state   State
	buffers *xsync.Map[uint32, struct{}]
	onState func(old, next State)
	log     zerolog.Logger
}

// New creates the stream and advertises the format upfront. A format that
// cannot be encoded or delivered is fatal: a camera that cannot advertise
// any mode has no reason to run.
func New(host Host, frame []byte, cfg Config) (*Stream, error) {
	if host == nil {
		return nil, fmt.Errorf("vcam: nil host")
	}
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}
	if len(frame) != cfg.Format.FrameSize() {
		return nil, fmt.Errorf("%w: got %d bytes, format needs %d",
			ErrFrameSize, len(frame), cfg.Format.FrameSize())
	}
	name := cfg.NodeName
	if name == "" {
		name = "vcam"
	}
	id := uuid.New()
	s := &Stream{
		id:      id,
		host:    host,
		format:  cfg.Format,
		sink:    NewSink(frame),
		state:   StateIdle,
		buffers: xsync.NewMap[uint32, struct{}](),
		onState: cfg.OnStateChanged,
		log: cfg.Logger.With().
			Str("node", name).
			Str("stream", id.String()).
			Logger(),
	}
	data, err := cfg.Format.FormatObject().Marshal()
	if err != nil {
		return nil, fmt.Errorf("vcam: advertise format: %w", err)
	}
	if err := host.UpdateParams([][]byte{data}); err != nil {
		return nil, fmt.Errorf("vcam: advertise format: %w", err)
	}
	s.log.Debug().
		Uint32("width", cfg.Format.Width).
		Uint32("height", cfg.Format.Height).
		Msg("format advertised upfront")
	return s, nil
}

// ID returns the stream's instance identity.
func (s *Stream) ID() uuid.UUID { return s.id }

// State returns the current negotiation state.
func (s *Stream) State() State { return s.state }

// Format returns the advertised format.
func (s *Stream) Format() VideoFormat { return s.format }

// BufferCount returns the number of host buffers currently attached.
func (s *Stream) BufferCount() int { return s.buffers.Size() }

// ParamChanged handles one parameter-change event. The transition function
// is total: every (state, param) pair has a defined outcome, and pairs with
// no table entry are the ignore branch. Queries already answered are
// re-answered with an identical encoding rather than faulted; the session
// manager's event ordering is not under this producer's control.
func (s *Stream) ParamChanged(param uint32, payload []byte) {
	switch param {
	case pod.ParamEnumFormat, pod.ParamEnumFormatAlias:
		if s.sendFormat() {
			s.setState(StateFormatAdvertised)
		}
	case pod.ParamFormat:
		if s.state != StateFormatAdvertised {
			s.ignore(param)
			return
		}
		// The selection needs no response payload beyond acknowledgement.
		if err := s.host.UpdateParams(nil); err != nil {
			s.log.Warn().Err(err).Msg("format acknowledgement failed")
			return
		}
		s.setState(StateFormatNegotiated)
	case pod.ParamBuffers:
		if s.state != StateFormatNegotiated && s.state != StateBuffersNegotiated {
			s.ignore(param)
			return
		}
		if s.sendBuffers() {
			s.setState(StateBuffersNegotiated)
		}
	default:
		s.log.Debug().Uint32("param", param).Msg("unrecognized parameter, no response")
	}
}

// BufferAdded records a host buffer attachment.
func (s *Stream) BufferAdded(handle uint32) {
	s.buffers.Store(handle, struct{}{})
	s.log.Debug().Uint32("buffer", handle).Int("attached", s.BufferCount()).Msg("buffer added")
}

// BufferRemoved records a host buffer detachment.
func (s *Stream) BufferRemoved(handle uint32) {
	s.buffers.Delete(handle)
	s.log.Debug().Uint32("buffer", handle).Int("attached", s.BufferCount()).Msg("buffer removed")
}

// Process handles one capture tick: it fills dst with as much of the source
// frame as fits and returns the byte count. The first tick after buffer
// negotiation moves the stream to StateStreaming.
func (s *Stream) Process(dst []byte) int {
	n := s.sink.Deliver(dst)
	if s.state == StateBuffersNegotiated {
		s.setState(StateStreaming)
	}
	return n
}

// sendFormat encodes and sends the format object. A failed build or send
// drops the message; the step is retried on the next matching query.
func (s *Stream) sendFormat() bool {
	data, err := s.format.FormatObject().Marshal()
	if err != nil {
		s.log.Warn().Err(err).Msg("format object dropped")
		return false
	}
	if err := s.host.UpdateParams([][]byte{data}); err != nil {
		s.log.Warn().Err(err).Msg("format object dropped")
		return false
	}
	return true
}

func (s *Stream) sendBuffers() bool {
	data, err := s.format.BufferConfig().BuffersObject().Marshal()
	if err != nil {
		s.log.Warn().Err(err).Msg("buffers object dropped")
		return false
	}
	if err := s.host.UpdateParams([][]byte{data}); err != nil {
		s.log.Warn().Err(err).Msg("buffers object dropped")
		return false
	}
	return true
}

func (s *Stream) ignore(param uint32) {
	s.log.Warn().
		Err(ErrUnexpectedState).
		Uint32("param", param).
		Stringer("state", s.state).
		Msg("ignoring parameter event")
}

func (s *Stream) setState(next State) {
	if s.state == next {
		return
	}
	old := s.state
	s.state = next
	s.log.Info().Stringer("from", old).Stringer("to", next).Msg("negotiation state changed")
	if s.onState != nil {
		s.onState(old, next)
	}
}

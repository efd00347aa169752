// Package hostsim is an in-process stand-in for the session manager. It
// records every parameter update a stream sends and can drive the canonical
// event sequence a real consumer attach produces, which makes it the far end
// for the demo binary and for integration-style tests.
package hostsim

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oy3o/vcam"
	"github.com/oy3o/vcam/pod"
)

// Update is one UpdateParams call as seen by the host, with every payload
// decoded back into its declarative form.
type Update struct {
	Raw     [][]byte
	Objects []*pod.Object
}

// Host implements vcam.Host. Every payload it receives must parse; a stream
// that hands the session manager undecodable bytes is broken.
type Host struct {
	log     zerolog.Logger
	updates []Update
}

// New creates an idle host double.
func New(log zerolog.Logger) *Host {
	return &Host{log: log}
}

// UpdateParams records and decodes one parameter update.
func (h *Host) UpdateParams(params [][]byte) error {
	u := Update{Raw: params}
	for _, raw := range params {
		o, err := pod.Parse(raw)
		if err != nil {
			return fmt.Errorf("hostsim: undecodable param update: %w", err)
		}
		u.Objects = append(u.Objects, o)
		h.log.Debug().
			Uint32("type", o.Type).
			Uint32("id", o.ID).
			Int("props", len(o.Props)).
			Int("bytes", len(raw)).
			Msg("param update received")
	}
	h.updates = append(h.updates, u)
	return nil
}

// Updates returns every update received so far, oldest first.
func (h *Host) Updates() []Update { return h.updates }

// LastObject returns the most recently received object, or nil.
func (h *Host) LastObject() *pod.Object {
	for i := len(h.updates) - 1; i >= 0; i-- {
		if n := len(h.updates[i].Objects); n > 0 {
			return h.updates[i].Objects[n-1]
		}
	}
	return nil
}

// NegotiatedBufferSize returns the block-size property of the last buffers
// object the stream sent, or 0 if none arrived yet.
func (h *Host) NegotiatedBufferSize() int {
	for i := len(h.updates) - 1; i >= 0; i-- {
		for _, o := range h.updates[i].Objects {
			if o.Type != pod.ObjectParamBuffers {
				continue
			}
			for _, p := range o.Props {
				if p.Key == pod.KeyBuffersSize {
					return int(p.Value.ID)
				}
			}
		}
	}
	return 0
}

// RunNegotiation drives s through the event order a consumer attach
// produces: a format enumeration query, the format selection, the buffers
// query, one buffer attachment, then ticks capture ticks into a region
// sized from the negotiated buffers object. It returns the region after the
// last tick.
func (h *Host) RunNegotiation(s *vcam.Stream, ticks int) ([]byte, error) {
	s.ParamChanged(pod.ParamEnumFormatAlias, nil)
	s.ParamChanged(pod.ParamFormat, nil)
	s.ParamChanged(pod.ParamBuffers, nil)

	size := h.NegotiatedBufferSize()
	if size == 0 {
		return nil, fmt.Errorf("hostsim: stream sent no buffers object")
	}
	s.BufferAdded(0)

	region := make([]byte, size)
	for i := 0; i < ticks; i++ {
		s.Process(region)
	}
	if got := s.State(); got != vcam.StateStreaming {
		return nil, fmt.Errorf("hostsim: negotiation ended in state %s, want %s",
			got, vcam.StateStreaming)
	}
	return region, nil
}

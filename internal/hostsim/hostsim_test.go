package hostsim

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/vcam"
	"github.com/oy3o/vcam/pod"
)

func TestRunNegotiation(t *testing.T) {
	format := vcam.VideoFormat{Width: 640, Height: 480, RateNum: 30, RateDen: 1}
	frame := make([]byte, format.FrameSize())
	for i := range frame {
		frame[i] = byte(i)
	}

	host := New(zerolog.Nop())
	stream, err := vcam.New(host, frame, vcam.Config{Format: format})
	require.NoError(t, err)

	region, err := host.RunNegotiation(stream, 2)
	require.NoError(t, err)

	assert.Equal(t, vcam.StateStreaming, stream.State())
	assert.Equal(t, format.FrameSize(), len(region))
	assert.Equal(t, frame, region)
	assert.Equal(t, 1, stream.BufferCount())

	// Upfront advertisement, enumeration answer, selection ack, buffers
	// answer: four updates in order.
	updates := host.Updates()
	require.Len(t, updates, 4)
	assert.Equal(t, pod.ObjectFormat, updates[0].Objects[0].Type)
	assert.Equal(t, pod.ObjectFormat, updates[1].Objects[0].Type)
	assert.Empty(t, updates[2].Objects)
	assert.Equal(t, pod.ObjectParamBuffers, updates[3].Objects[0].Type)

	assert.Equal(t, format.FrameSize(), host.NegotiatedBufferSize())
}

func TestUpdateParamsRejectsGarbage(t *testing.T) {
	host := New(zerolog.Nop())
	err := host.UpdateParams([][]byte{{1, 2, 3}})
	assert.Error(t, err)
	assert.Empty(t, host.Updates())
}

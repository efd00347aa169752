package vcam

import (
	"fmt"

	"github.com/oy3o/vcam/pod"
)

// VideoFormat is the single fixed capture mode the stream advertises:
// packed BGRA at a fixed rectangle and frame rate. There is no renegotiation
// once a consumer selects it.
type VideoFormat struct {
	Width   uint32
	Height  uint32
	RateNum uint32
	RateDen uint32
}

// Validate rejects formats that cannot describe a frame.
func (f VideoFormat) Validate() error {
	if f.Width == 0 || f.Height == 0 {
		return fmt.Errorf("%w: %dx%d rectangle", ErrBadFormat, f.Width, f.Height)
	}
	if f.RateDen == 0 {
		return fmt.Errorf("%w: zero frame-rate denominator", ErrBadFormat)
	}
	return nil
}

// FrameSize returns the byte length of one packed BGRA frame.
func (f VideoFormat) FrameSize() int {
	return int(f.Width) * int(f.Height) * 4
}

// FormatObject builds the format advertisement sent in response to a format
// enumeration query. Property order is fixed; the consumer reads it
// positionally.
func (f VideoFormat) FormatObject() *pod.Object {
	return &pod.Object{
		Type: pod.ObjectFormat,
		ID:   pod.ParamEnumFormat,
		Props: []pod.Property{
			{Key: pod.KeyMediaType, Value: pod.ID(pod.MediaTypeVideo)},
			{Key: pod.KeyMediaSubtype, Value: pod.ID(pod.MediaSubtypeRaw)},
			{Key: pod.KeyVideoFormat, Value: pod.ID(pod.VideoFormatBGRA)},
			{Key: pod.KeyVideoSize, Value: pod.Rectangle(f.Width, f.Height)},
			{Key: pod.KeyVideoRate, Value: pod.Fraction(f.RateNum, f.RateDen)},
		},
	}
}

// BufferConfig is the fixed buffer layout advertised during capacity
// negotiation: one buffer holding one full frame. Block accounting is in
// bytes and the stride slot carries the frame rate, matching what the
// session manager accepts from this producer.
type BufferConfig struct {
	Count  uint32
	Blocks uint32
	Size   uint32
	Stride uint32
	Align  uint32
}

// BufferConfig derives the advertised layout from the format.
func (f VideoFormat) BufferConfig() BufferConfig {
	size := uint32(f.FrameSize())
	return BufferConfig{
		Count:  1,
		Blocks: size,
		Size:   size,
		Stride: f.RateNum,
		Align:  0,
	}
}

// BuffersObject builds the buffer-requirements object sent in response to a
// buffers query.
func (c BufferConfig) BuffersObject() *pod.Object {
	return &pod.Object{
		Type: pod.ObjectParamBuffers,
		ID:   pod.ParamBuffers,
		Props: []pod.Property{
			{Key: pod.KeyBuffersCount, Value: pod.ID(c.Count)},
			{Key: pod.KeyBuffersBlocks, Value: pod.ID(c.Blocks)},
			{Key: pod.KeyBuffersSize, Value: pod.ID(c.Size)},
			{Key: pod.KeyBuffersStride, Value: pod.ID(c.Stride)},
			{Key: pod.KeyBuffersAlign, Value: pod.ID(c.Align)},
		},
	}
}

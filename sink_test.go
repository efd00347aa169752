package vcam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkDeliver(t *testing.T) {
	frame := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	sink := NewSink(frame)

	t.Run("ExactFit", func(t *testing.T) {
		dst := make([]byte, 8)
		assert.Equal(t, 8, sink.Deliver(dst))
		assert.Equal(t, frame, dst)
	})

	t.Run("TruncatedPrefix", func(t *testing.T) {
		dst := make([]byte, 3)
		assert.Equal(t, 3, sink.Deliver(dst))
		assert.Equal(t, []byte{1, 2, 3}, dst)
	})

	t.Run("OversizedRegion", func(t *testing.T) {
		dst := make([]byte, 16)
		assert.Equal(t, 8, sink.Deliver(dst))
		assert.Equal(t, frame, dst[:8])
	})

	t.Run("EmptyRegion", func(t *testing.T) {
		assert.Equal(t, 0, sink.Deliver(nil))
	})
}

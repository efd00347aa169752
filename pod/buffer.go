package pod

// Buffer is the owned backing storage for one in-flight message. A Buffer
// belongs to exactly one Builder; it is created fresh per outgoing message
// and discarded once the encoded bytes are handed off.
//
// Grow may relocate the storage. The Builder observes every relocation
// synchronously (see OverflowFunc) and never keeps a reference to storage
// from before the last Grow.
type Buffer struct {
	data []byte
}

// NewBuffer creates a zero-filled buffer of the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Grow extends the logical length to at least size bytes, zero-filling the
// new tail. Existing bytes are preserved. The backing array may move.
func (b *Buffer) Grow(size int) {
	if size <= len(b.data) {
		return
	}
	grown := make([]byte, size)
	copy(grown, b.data)
	b.data = grown
}

// Bytes returns the current backing storage. The slice is invalidated by the
// next Grow.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the buffer's logical length.
func (b *Buffer) Len() int { return len(b.data) }

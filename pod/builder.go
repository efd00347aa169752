package pod

// OverflowFunc is invoked synchronously from inside a write when the next
// field does not fit the current storage. It must make the storage at least
// size bytes long, zero-filling any new tail, and return the (possibly
// relocated) storage. Returning an error latches ErrOverflow on the builder.
//
// The hook runs on the builder's own stack, in the middle of an interrupted
// write; it must not re-enter the builder it was invoked for.
type OverflowFunc func(size int) ([]byte, error)

// frame records one open object scope: where its size field lives and, for
// nested objects, where the enclosing value's length field lives.
type frame struct {
	sizeOff int
	lenOff  int // -1 for a top-level object
}

// Frame is the caller's handle for one open object scope. It is valid only
// for the builder that returned it, until the matching Pop.
type Frame struct {
	b     *Builder
	index int
}

// Builder encodes one outgoing message cursor-style. All control state
// (cursor, frame stack, the current storage address) lives in this one
// heap-allocated struct, so the storage is free to relocate during growth:
// the overflow hook hands back the fresh storage and the builder stores it
// by value before the interrupted write resumes. Nothing else may retain the
// old storage.
//
// The builder latches the first error; every later operation is a no-op and
// Finish reports the latched error.
type Builder struct {
	data     []byte
	offset   int
	frames   []frame
	overflow OverflowFunc
	err      error
}

// NewBuilder creates a builder bound to a fresh buffer of the given initial
// capacity. Growth past that capacity is transparent.
func NewBuilder(capacity int) *Builder {
	buf := NewBuffer(capacity)
	return &Builder{
		data: buf.Bytes(),
		overflow: func(size int) ([]byte, error) {
			buf.Grow(size)
			return buf.Bytes(), nil
		},
	}
}

// NewFixedBuilder creates a builder that writes into p and latches
// ErrOverflow instead of growing when p is exhausted.
func NewFixedBuilder(p []byte) *Builder {
	return &Builder{data: p}
}

// NewBuilderWithOverflow creates a builder over p with a caller-supplied
// growth hook.
func NewBuilderWithOverflow(p []byte, overflow OverflowFunc) *Builder {
	return &Builder{data: p, overflow: overflow}
}

// Err returns the first error encountered, if any.
func (b *Builder) Err() error { return b.err }

// Offset returns the number of bytes encoded so far.
func (b *Builder) Offset() int { return b.offset }

// setError latches the first non-nil error.
func (b *Builder) setError(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// reserve ensures n more bytes fit, growing the storage through the overflow
// hook if needed. On failure it latches ErrOverflow; already written bytes
// and frame bookkeeping stay intact so the caller can observe the failure
// through Finish without corrupting memory.
func (b *Builder) reserve(n int) bool {
	if b.err != nil {
		return false
	}
	need := b.offset + n
	if need <= len(b.data) {
		return true
	}
	if b.overflow == nil {
		b.setError(ErrOverflow)
		return false
	}
	grown, err := b.overflow(need)
	if err != nil || len(grown) < need {
		b.setError(ErrOverflow)
		return false
	}
	b.data = grown
	return true
}

func (b *Builder) writeUint32(v uint32) {
	if !b.reserve(4) {
		return
	}
	Order.PutUint32(b.data[b.offset:], v)
	b.offset += 4
}

// pad advances the cursor to the next 8-byte boundary, zeroing the skipped
// bytes. Caller-provided fixed storage is not assumed clean.
func (b *Builder) pad() {
	n := Roundup(b.offset, fieldAlign) - b.offset
	if n == 0 || !b.reserve(n) {
		return
	}
	for i := 0; i < n; i++ {
		b.data[b.offset+i] = 0
	}
	b.offset += n
}

// PushObject begins an object scope, writing a placeholder size header that
// Pop backpatches. Inside an already open object the scope is written as a
// nested object value, including its value header.
func (b *Builder) PushObject(typ, id uint32) (*Frame, error) {
	if b.err != nil {
		return nil, b.err
	}
	lenOff := -1
	if len(b.frames) > 0 {
		b.writeUint32(TagObject)
		lenOff = b.offset
		b.writeUint32(0)
	}
	sizeOff := b.offset
	b.writeUint32(0)
	b.writeUint32(typ)
	b.writeUint32(id)
	if b.err != nil {
		return nil, b.err
	}
	b.frames = append(b.frames, frame{sizeOff: sizeOff, lenOff: lenOff})
	return &Frame{b: b, index: len(b.frames) - 1}, nil
}

// Pop closes the object scope f, backpatching its size (and, for a nested
// object, the enclosing value length). f must be the innermost open frame.
func (b *Builder) Pop(f *Frame) error {
	if b.err != nil {
		return b.err
	}
	if f == nil || f.b != b || f.index != len(b.frames)-1 {
		b.setError(ErrFrameMismatch)
		return b.err
	}
	fr := b.frames[f.index]
	end := b.offset
	Order.PutUint32(b.data[fr.sizeOff:], uint32(end-(fr.sizeOff+4)))
	if fr.lenOff >= 0 {
		Order.PutUint32(b.data[fr.lenOff:], uint32(end-(fr.lenOff+4)))
	}
	b.frames = b.frames[:f.index]
	b.pad()
	return b.err
}

// Prop appends a property header. The typed value must follow immediately.
func (b *Builder) Prop(key, flags uint32) error {
	if b.err != nil {
		return b.err
	}
	if len(b.frames) == 0 {
		b.setError(ErrNoOpenFrame)
		return b.err
	}
	b.writeUint32(key)
	b.writeUint32(flags)
	return b.err
}

// WriteID appends an identifier value.
func (b *Builder) WriteID(v uint32) error {
	b.writeUint32(TagID)
	b.writeUint32(4)
	b.writeUint32(v)
	b.pad()
	return b.err
}

// WriteRectangle appends a rectangle value. A zero-sized rectangle cannot
// describe a frame and is rejected.
func (b *Builder) WriteRectangle(width, height uint32) error {
	if width == 0 || height == 0 {
		b.setError(ErrInvalidValue)
		return b.err
	}
	b.writeUint32(TagRectangle)
	b.writeUint32(8)
	b.writeUint32(width)
	b.writeUint32(height)
	b.pad()
	return b.err
}

// WriteFraction appends a fraction value. The denominator must be non-zero.
func (b *Builder) WriteFraction(num, den uint32) error {
	if den == 0 {
		b.setError(ErrInvalidValue)
		return b.err
	}
	b.writeUint32(TagFraction)
	b.writeUint32(8)
	b.writeUint32(num)
	b.writeUint32(den)
	b.pad()
	return b.err
}

// Finish returns the completed message. It fails if any error was latched or
// any object frame is still open.
func (b *Builder) Finish() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.frames) > 0 {
		b.setError(ErrUnclosedFrame)
		return nil, b.err
	}
	return b.data[:b.offset], nil
}

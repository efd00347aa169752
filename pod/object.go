package pod

// Object is the declarative form of one wire object: an ordered property
// list under a type/id pair. Property order is preserved exactly as
// authored; the consumer assigns meaning to position for some encodings.
type Object struct {
	Type  uint32
	ID    uint32
	Props []Property
}

// Property is one (key, flags, typed value) triple inside an object.
type Property struct {
	Key   uint32
	Flags uint32
	Value Value
}

// Value is one typed property payload. Tag selects which of the remaining
// fields are meaningful.
type Value struct {
	Tag uint32

	// TagID
	ID uint32

	// TagRectangle
	Width, Height uint32

	// TagFraction
	Num, Den uint32

	// TagObject
	Object *Object
}

// ID returns an identifier value.
func ID(v uint32) Value { return Value{Tag: TagID, ID: v} }

// Rectangle returns a width/height value.
func Rectangle(width, height uint32) Value {
	return Value{Tag: TagRectangle, Width: width, Height: height}
}

// Fraction returns a numerator/denominator value.
func Fraction(num, den uint32) Value { return Value{Tag: TagFraction, Num: num, Den: den} }

// Nested returns a nested object value.
func Nested(o *Object) Value { return Value{Tag: TagObject, Object: o} }

// end returns the absolute offset after encoding v at off, including
// trailing padding. Padding depends on the absolute position, so sizes are
// computed by walking the same offsets the builder will.
func (v Value) end(off int) int {
	switch v.Tag {
	case TagID:
		off += 8 + 4
	case TagRectangle, TagFraction:
		off += 8 + 8
	case TagObject:
		if v.Object == nil {
			return off
		}
		return v.Object.end(off + 8)
	}
	return Roundup(off, fieldAlign)
}

// end returns the absolute offset after encoding o's record at off,
// including the trailing padding Pop emits.
func (o *Object) end(off int) int {
	off += 12
	for _, p := range o.Props {
		off += 8
		off = p.Value.end(off)
	}
	return Roundup(off, fieldAlign)
}

// Size returns the exact encoded length of o as a top-level message.
func (o *Object) Size() int { return o.end(0) }

// Encode writes o through b in authored property order, stopping at the
// first failure.
func (o *Object) Encode(b *Builder) error {
	f, err := b.PushObject(o.Type, o.ID)
	if err != nil {
		return err
	}
	for _, p := range o.Props {
		if err := b.Prop(p.Key, p.Flags); err != nil {
			return err
		}
		if err := p.Value.encode(b); err != nil {
			return err
		}
	}
	return b.Pop(f)
}

func (v Value) encode(b *Builder) error {
	switch v.Tag {
	case TagID:
		return b.WriteID(v.ID)
	case TagRectangle:
		return b.WriteRectangle(v.Width, v.Height)
	case TagFraction:
		return b.WriteFraction(v.Num, v.Den)
	case TagObject:
		if v.Object == nil {
			return ErrInvalidValue
		}
		return v.Object.Encode(b)
	default:
		return ErrUnknownTag
	}
}

// Marshal encodes o into a fresh, exactly sized buffer and returns the
// completed message. Either the whole object encodes or nothing is returned:
// a failure at any step aborts the message.
func (o *Object) Marshal() ([]byte, error) {
	b := NewBuilder(o.Size())
	if err := o.Encode(b); err != nil {
		return nil, err
	}
	return b.Finish()
}

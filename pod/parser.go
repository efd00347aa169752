package pod

// Parse decodes a single top-level object message, the inverse of
// Object.Marshal. Bytes past the object's declared end must be zero padding.
func Parse(data []byte) (*Object, error) {
	p := &parser{data: data}
	o, err := p.object()
	if err != nil {
		return nil, err
	}
	for _, b := range p.data[p.off:] {
		if b != 0 {
			return nil, ErrTrailingData
		}
	}
	return o, nil
}

// parser is a cursor over a complete in-memory message.
type parser struct {
	data []byte
	off  int
}

func (p *parser) u32() (uint32, error) {
	if p.off+4 > len(p.data) {
		return 0, ErrTruncated
	}
	v := Order.Uint32(p.data[p.off:])
	p.off += 4
	return v, nil
}

// pad skips to the next 8-byte boundary, mirroring the padding the builder
// emits after each fixed-width value payload.
func (p *parser) pad() error {
	next := Roundup(p.off, fieldAlign)
	if next > len(p.data) {
		return ErrTruncated
	}
	p.off = next
	return nil
}

func (p *parser) object() (*Object, error) {
	size, err := p.u32()
	if err != nil {
		return nil, err
	}
	if size < 8 {
		return nil, ErrTruncated
	}
	end := p.off + int(size)
	if end > len(p.data) {
		return nil, ErrTruncated
	}
	typ, err := p.u32()
	if err != nil {
		return nil, err
	}
	id, err := p.u32()
	if err != nil {
		return nil, err
	}
	o := &Object{Type: typ, ID: id}
	for p.off < end {
		key, err := p.u32()
		if err != nil {
			return nil, err
		}
		flags, err := p.u32()
		if err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		o.Props = append(o.Props, Property{Key: key, Flags: flags, Value: v})
	}
	if p.off != end {
		return nil, ErrTruncated
	}
	return o, nil
}

func (p *parser) value() (Value, error) {
	tag, err := p.u32()
	if err != nil {
		return Value{}, err
	}
	length, err := p.u32()
	if err != nil {
		return Value{}, err
	}
	switch tag {
	case TagID:
		if length != 4 {
			return Value{}, ErrBadValueLength
		}
		v, err := p.u32()
		if err != nil {
			return Value{}, err
		}
		return ID(v), p.pad()
	case TagRectangle, TagFraction:
		if length != 8 {
			return Value{}, ErrBadValueLength
		}
		a, err := p.u32()
		if err != nil {
			return Value{}, err
		}
		b, err := p.u32()
		if err != nil {
			return Value{}, err
		}
		if tag == TagRectangle {
			return Rectangle(a, b), p.pad()
		}
		return Fraction(a, b), p.pad()
	case TagObject:
		start := p.off
		o, err := p.object()
		if err != nil {
			return Value{}, err
		}
		if p.off-start != int(length) {
			return Value{}, ErrBadValueLength
		}
		// The nested length excludes the closing padding Pop emits.
		return Nested(o), p.pad()
	default:
		return Value{}, ErrUnknownTag
	}
}

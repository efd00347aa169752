// Package pod implements the tagged binary object format the session manager
// uses to carry negotiated stream parameters. An object is a length-prefixed
// record of (key, flags, typed value) properties; values are identifiers,
// rectangles, fractions or nested objects. Objects are built with a
// cursor-based Builder over a growable buffer and decoded again with Parse.
package pod

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// Order is the byte order of every integer on the wire. Parameter objects
// travel over local IPC between processes on the same machine, so the format
// is native-endian.
var Order = binary.NativeEndian

// fieldAlign is the wire alignment: every value payload is padded so the
// next field starts on an 8-byte boundary from the start of the message.
const fieldAlign = 8

// Value tags.
const (
	TagID        uint32 = 3
	TagRectangle uint32 = 10
	TagFraction  uint32 = 11
	TagObject    uint32 = 15
)

// Object types published by the session manager.
const (
	ObjectFormat       uint32 = 0x40003
	ObjectParamBuffers uint32 = 0x40004
)

// Parameter ids delivered through param-changed events and used as object
// ids on the corresponding responses.
const (
	ParamEnumFormat uint32 = 3
	ParamFormat     uint32 = 4
	ParamBuffers    uint32 = 7

	// ParamEnumFormatAlias is the id the session manager uses when asking an
	// already connected stream to re-enumerate its formats.
	ParamEnumFormatAlias uint32 = 15
)

// Media identifier codes used in format objects.
const (
	MediaTypeVideo  uint32 = 2
	MediaSubtypeRaw uint32 = 1
	VideoFormatBGRA uint32 = 12
)

// Format object property keys.
const (
	KeyMediaType    uint32 = 1
	KeyMediaSubtype uint32 = 2
	KeyVideoFormat  uint32 = 0x20001
	KeyVideoSize    uint32 = 0x20003
	KeyVideoRate    uint32 = 0x20004
)

// Buffers object property keys.
const (
	KeyBuffersCount  uint32 = 1
	KeyBuffersBlocks uint32 = 2
	KeyBuffersSize   uint32 = 3
	KeyBuffersStride uint32 = 4
	KeyBuffersAlign  uint32 = 5
)

// Roundup rounds n up to the nearest multiple of align.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

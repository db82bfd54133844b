// Package codec reads and writes the compiled .simpledatac format: the
// protobuf wire encoding of the SimpleDataDesc message.
//
//	message Vector3 { float x = 1; float y = 2; float z = 3; }
//	message SimpleDataDesc {
//	  required string  name      = 1;
//	  optional float   f32       = 2;
//	  optional uint32  u32       = 3;
//	  optional int32   i32       = 4;
//	  optional uint64  u64       = 5;
//	  optional int64   i64       = 6;
//	  optional Vector3 v3        = 7;
//	  repeated float   array_f32 = 8 [packed = true];
//	}
package codec

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"

	"simpledata/internal/loader/schema"
)

// ErrFormat reports bytes that do not conform to the SimpleDataDesc schema.
var ErrFormat = errors.New("format error")

const (
	fieldName     protowire.Number = 1
	fieldF32      protowire.Number = 2
	fieldU32      protowire.Number = 3
	fieldI32      protowire.Number = 4
	fieldU64      protowire.Number = 5
	fieldI64      protowire.Number = 6
	fieldV3       protowire.Number = 7
	fieldArrayF32 protowire.Number = 8

	fieldX protowire.Number = 1
	fieldY protowire.Number = 2
	fieldZ protowire.Number = 3
)

var fieldNames = map[protowire.Number]string{
	fieldName:     "name",
	fieldF32:      "f32",
	fieldU32:      "u32",
	fieldI32:      "i32",
	fieldU64:      "u64",
	fieldI64:      "i64",
	fieldV3:       "v3",
	fieldArrayF32: "array_f32",
}

type formatError struct {
	offset int
	field  string
	reason string
}

func (e *formatError) Error() string {
	if e.field == "" {
		return fmt.Sprintf("%s at offset %d: %s", ErrFormat, e.offset, e.reason)
	}
	return fmt.Sprintf("%s at offset %d (field %q): %s", ErrFormat, e.offset, e.field, e.reason)
}

func (e *formatError) Unwrap() error {
	return ErrFormat
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) fail(num protowire.Number, reason string) error {
	return &formatError{offset: d.off, field: fieldNames[num], reason: reason}
}

func (d *decoder) failN(num protowire.Number, n int) error {
	return d.fail(num, protowire.ParseError(n).Error())
}

// Unmarshal decodes a compiled description. Unknown fields are skipped.
func Unmarshal(b []byte) (*schema.Desc, error) {
	d := &decoder{buf: b}
	desc := &schema.Desc{}
	var hasName bool

	for d.off < len(d.buf) {
		num, typ, n := protowire.ConsumeTag(d.buf[d.off:])
		if n < 0 {
			return nil, d.failN(0, n)
		}
		d.off += n
		rest := d.buf[d.off:]

		switch num {
		case fieldName:
			if typ != protowire.BytesType {
				return nil, d.fail(num, "expected length-delimited string")
			}
			v, n := protowire.ConsumeString(rest)
			if n < 0 {
				return nil, d.failN(num, n)
			}
			if !utf8.ValidString(v) {
				return nil, d.fail(num, "invalid UTF-8")
			}
			desc.Name = v
			hasName = true
			d.off += n

		case fieldF32:
			v, err := d.fixed32(num, typ, rest)
			if err != nil {
				return nil, err
			}
			desc.F32 = math.Float32frombits(v)

		case fieldU32, fieldI32, fieldU64, fieldI64:
			if typ != protowire.VarintType {
				return nil, d.fail(num, "expected varint")
			}
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return nil, d.failN(num, n)
			}
			d.off += n
			switch num {
			case fieldU32:
				desc.U32 = uint32(v)
			case fieldI32:
				desc.I32 = int32(v)
			case fieldU64:
				desc.U64 = v
			case fieldI64:
				desc.I64 = int64(v)
			}

		case fieldV3:
			if typ != protowire.BytesType {
				return nil, d.fail(num, "expected embedded Vector3 message")
			}
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return nil, d.failN(num, n)
			}
			start := d.off + n - len(v)
			v3, err := unmarshalVector3(v, start)
			if err != nil {
				return nil, err
			}
			desc.V3 = v3
			d.off += n

		case fieldArrayF32:
			switch typ {
			case protowire.BytesType:
				v, n := protowire.ConsumeBytes(rest)
				if n < 0 {
					return nil, d.failN(num, n)
				}
				if len(v)%4 != 0 {
					return nil, d.fail(num, fmt.Sprintf("packed length %d is not a multiple of 4", len(v)))
				}
				for i := 0; i < len(v); i += 4 {
					bits, _ := protowire.ConsumeFixed32(v[i:])
					desc.ArrayF32 = append(desc.ArrayF32, math.Float32frombits(bits))
				}
				d.off += n
			case protowire.Fixed32Type:
				bits, err := d.fixed32(num, typ, rest)
				if err != nil {
					return nil, err
				}
				desc.ArrayF32 = append(desc.ArrayF32, math.Float32frombits(bits))
			default:
				return nil, d.fail(num, "expected packed or fixed32 float")
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, rest)
			if n < 0 {
				return nil, d.failN(num, n)
			}
			d.off += n
		}
	}

	if !hasName {
		return nil, &formatError{offset: d.off, field: "name", reason: "missing required field"}
	}
	return desc, nil
}

func (d *decoder) fixed32(num protowire.Number, typ protowire.Type, b []byte) (uint32, error) {
	if typ != protowire.Fixed32Type {
		return 0, d.fail(num, "expected fixed32")
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, d.failN(num, n)
	}
	d.off += n
	return v, nil
}

func unmarshalVector3(b []byte, base int) (schema.Vector3, error) {
	var v schema.Vector3
	off := 0
	for off < len(b) {
		num, typ, n := protowire.ConsumeTag(b[off:])
		if n < 0 {
			return v, &formatError{offset: base + off, field: "v3", reason: protowire.ParseError(n).Error()}
		}
		off += n
		if num < fieldX || num > fieldZ {
			n = protowire.ConsumeFieldValue(num, typ, b[off:])
			if n < 0 {
				return v, &formatError{offset: base + off, field: "v3", reason: protowire.ParseError(n).Error()}
			}
			off += n
			continue
		}
		if typ != protowire.Fixed32Type {
			return v, &formatError{offset: base + off, field: "v3", reason: "expected fixed32 component"}
		}
		bits, n := protowire.ConsumeFixed32(b[off:])
		if n < 0 {
			return v, &formatError{offset: base + off, field: "v3", reason: protowire.ParseError(n).Error()}
		}
		off += n
		f := math.Float32frombits(bits)
		switch num {
		case fieldX:
			v.X = f
		case fieldY:
			v.Y = f
		case fieldZ:
			v.Z = f
		}
	}
	return v, nil
}

// Marshal encodes desc. Zero scalars are omitted; name is always written.
func Marshal(desc *schema.Desc) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, desc.Name)

	if desc.F32 != 0 {
		b = protowire.AppendTag(b, fieldF32, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(desc.F32))
	}
	if desc.U32 != 0 {
		b = protowire.AppendTag(b, fieldU32, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(desc.U32))
	}
	if desc.I32 != 0 {
		// int32 is sign-extended to 64 bits on the wire
		b = protowire.AppendTag(b, fieldI32, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(int64(desc.I32)))
	}
	if desc.U64 != 0 {
		b = protowire.AppendTag(b, fieldU64, protowire.VarintType)
		b = protowire.AppendVarint(b, desc.U64)
	}
	if desc.I64 != 0 {
		b = protowire.AppendTag(b, fieldI64, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(desc.I64))
	}
	if desc.V3 != (schema.Vector3{}) {
		var v []byte
		v = appendFloat(v, fieldX, desc.V3.X)
		v = appendFloat(v, fieldY, desc.V3.Y)
		v = appendFloat(v, fieldZ, desc.V3.Z)
		b = protowire.AppendTag(b, fieldV3, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	if len(desc.ArrayF32) > 0 {
		packed := make([]byte, 0, 4*len(desc.ArrayF32))
		for _, f := range desc.ArrayF32 {
			packed = protowire.AppendFixed32(packed, math.Float32bits(f))
		}
		b = protowire.AppendTag(b, fieldArrayF32, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

func appendFloat(b []byte, num protowire.Number, f float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(f))
}

/*
Package oxm implements the OpenFlow extensible match TLV framing.

An OXM TLV is a 4 byte header (class:16, field:7, hasmask:1, length:8)
followed by length bytes of value, and the mask of the same width when
hasmask is set.
*/
package oxm

import (
	"encoding/binary"
	"github.com/pkg/errors"
)

var (
	ErrShortOxm   = errors.New("oxm truncated")
	ErrOxmLength  = errors.New("oxm length does not fit the field")
	ErrEmptyField = errors.New("empty oxm field")
)

type Header uint32

func (self Header) Class() uint16 {
	return uint16(self >> OXM_CLASS_SHIFT)
}

func (self Header) Field() uint8 {
	return uint8(self>>OXM_FIELD_SHIFT) & 0x7f
}

func (self Header) HasMask() bool {
	return self&(1<<OXM_HASMASK_SHIFT) != 0
}

// Length is the payload length, value and mask together.
func (self Header) Length() int {
	return int(self & 0xff)
}

// Type drops the mask bit and length, which is the form of OXM_OF_* constants.
func (self Header) Type() uint32 {
	return uint32(self) &^ 0x1ff
}

func (self *Header) SetMask(mask bool) {
	if mask {
		*self |= 1 << OXM_HASMASK_SHIFT
	} else {
		*self &^= 1 << OXM_HASMASK_SHIFT
	}
}

func (self *Header) SetLength(length int) {
	*self = *self&^0xff | Header(length&0xff)
}

// Oxm is a byte sequence of one or more OXM TLVs.
type Oxm []byte

func (self Oxm) Header() Header {
	return Header(binary.BigEndian.Uint32(self))
}

func (self Oxm) Value() []byte {
	hdr := self.Header()
	length := hdr.Length()
	if hdr.HasMask() {
		length = length / 2
	}
	return self[4 : 4+length]
}

func (self Oxm) Mask() []byte {
	hdr := self.Header()
	if !hdr.HasMask() {
		return nil
	}
	length := hdr.Length() / 2
	return self[4+length : 4+2*length]
}

// Iter splits a validated sequence. Use Split for bytes from the wire.
func (self Oxm) Iter() []Oxm {
	var seq []Oxm
	for cur := 0; cur < len(self); {
		o := Oxm(self[cur:])
		n := 4 + o.Header().Length()
		seq = append(seq, o[:n])
		cur += n
	}
	return seq
}

// Split checks the TLV framing of data and returns each TLV.
func Split(data []byte) ([]Oxm, error) {
	var seq []Oxm
	for cur := 0; cur < len(data); {
		if len(data)-cur < 4 {
			return nil, errors.Wrapf(ErrShortOxm, "header at offset %d", cur)
		}
		o := Oxm(data[cur:])
		hdr := o.Header()
		n := 4 + hdr.Length()
		if len(o) < n {
			return nil, errors.Wrapf(ErrShortOxm, "need %d bytes at offset %d", n, cur)
		}
		if hdr.HasMask() && hdr.Length()%2 != 0 {
			return nil, errors.Wrapf(ErrOxmLength, "odd masked length %d", hdr.Length())
		}
		if hdr.Class() == OFPXMC_OPENFLOW_BASIC {
			if want, ok := FieldLength(hdr.Field()); ok {
				if hdr.HasMask() {
					want *= 2
				}
				if want != hdr.Length() {
					return nil, errors.Wrapf(ErrOxmLength, "field %d has length %d, want %d",
						hdr.Field(), hdr.Length(), want)
				}
			}
		}
		seq = append(seq, o[:n])
		cur += n
	}
	return seq, nil
}

// Make builds one unmasked TLV for the header type oxmType.
func Make(oxmType uint32, value []byte) Oxm {
	hdr := Header(oxmType)
	hdr.SetLength(len(value))
	buf := make([]byte, 4+len(value))
	binary.BigEndian.PutUint32(buf, uint32(hdr))
	copy(buf[4:], value)
	return buf
}

// MakeMasked builds one masked TLV; value and mask must have the same width.
func MakeMasked(oxmType uint32, value, mask []byte) Oxm {
	hdr := Header(oxmType)
	hdr.SetMask(true)
	hdr.SetLength(len(value) + len(mask))
	buf := make([]byte, 4+len(value)+len(mask))
	binary.BigEndian.PutUint32(buf, uint32(hdr))
	copy(buf[4:], value)
	copy(buf[4+len(value):], mask)
	return buf
}

// FieldLength returns the unmasked value width of an openflow basic field.
func FieldLength(field uint8) (int, bool) {
	if def, ok := basicFields[field]; ok {
		return def.length, true
	}
	return 0, false
}

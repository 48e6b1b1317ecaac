package ofp4

import (
	"encoding/binary"
	"github.com/pkg/errors"
)

// reader is a cursor over one action record. The first failure sticks and
// every later read returns zero values.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.off+n > len(r.data) {
		r.fail(errors.Wrapf(ErrUnexpectedEOF, "need %d bytes at offset %d, have %d", n, r.off, len(r.data)-r.off))
		return false
	}
	return true
}

func (r *reader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

func (r *reader) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	v := append([]byte(nil), r.data[r.off:r.off+n]...)
	r.off += n
	return v
}

func (r *reader) skip(n int) {
	if r.need(n) {
		r.off += n
	}
}

func (r *reader) expect16(want uint16, what string) {
	if v := r.u16(); r.err == nil && v != want {
		r.fail(errors.Wrapf(ErrConstantMismatch, "%s is %d, want %d", what, v, want))
	}
}

func (r *reader) expect32(want uint32, what string) {
	if v := r.u32(); r.err == nil && v != want {
		r.fail(errors.Wrapf(ErrConstantMismatch, "%s is 0x%x, want 0x%x", what, v, want))
	}
}

// header consumes the common type and length fields.
func (r *reader) header(atype uint16) {
	r.expect16(atype, "action type")
	r.u16()
}

// finish checks that the record was consumed exactly as its length field says.
func (r *reader) finish() error {
	if r.err != nil {
		return r.err
	}
	if len(r.data) < 4 {
		return errors.Wrap(ErrUnexpectedEOF, "action header")
	}
	if length := int(binary.BigEndian.Uint16(r.data[2:])); length != r.off {
		return errors.Wrapf(ErrLengthMismatch, "length field %d, decoded %d bytes", length, r.off)
	}
	return nil
}

type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	w.buf = append(w.buf, uint8(v>>8), uint8(v))
}

func (w *writer) u32(v uint32) {
	w.buf = append(w.buf, uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
}

func (w *writer) bytes(v []byte) {
	w.buf = append(w.buf, v...)
}

func (w *writer) pad(n int) {
	w.buf = append(w.buf, make([]byte, n)...)
}

// header writes the type and a placeholder length that finish rewrites.
func (w *writer) header(atype uint16) {
	w.u16(atype)
	w.u16(0)
}

func (w *writer) finish() []byte {
	w.pad(align8(len(w.buf)) - len(w.buf))
	binary.BigEndian.PutUint16(w.buf[2:], uint16(len(w.buf)))
	return w.buf
}

// Encode returns the wire bytes of a. The result is always a multiple of
// 8 bytes long and the length field matches.
func Encode(a Action) []byte {
	w := &writer{}
	a.encode(w)
	return w.finish()
}

// recordLength validates the length field of the record at the head of data.
func recordLength(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, errors.Wrap(ErrUnexpectedEOF, "action header")
	}
	length := int(binary.BigEndian.Uint16(data[2:]))
	if length < 8 || length%8 != 0 {
		return 0, errors.Wrapf(ErrBadLength, "length %d", length)
	}
	if length > len(data) {
		return 0, errors.Wrapf(ErrUnexpectedEOF, "length %d exceeds %d bytes", length, len(data))
	}
	return length, nil
}

func unmarshal(a Action, data []byte) error {
	length, err := recordLength(data)
	if err != nil {
		return err
	}
	r := &reader{data: data[:length]}
	a.decode(r)
	return r.finish()
}

// DecodeAction decodes the action record at the head of data. Trailing bytes
// after the record are ignored; use DecodeActions for a sequence.
func DecodeAction(data []byte) (Action, error) {
	length, err := recordLength(data)
	if err != nil {
		return nil, err
	}
	data = data[:length]
	atype := binary.BigEndian.Uint16(data)
	var a Action
	switch atype {
	case OFPAT_OUTPUT:
		a = new(ActionOutput)
	case OFPAT_COPY_TTL_OUT:
		a = new(ActionCopyTtlOut)
	case OFPAT_COPY_TTL_IN:
		a = new(ActionCopyTtlIn)
	case OFPAT_SET_MPLS_TTL:
		a = new(ActionSetMplsTtl)
	case OFPAT_DEC_MPLS_TTL:
		a = new(ActionDecMplsTtl)
	case OFPAT_PUSH_VLAN:
		a = new(ActionPushVlan)
	case OFPAT_POP_VLAN:
		a = new(ActionPopVlan)
	case OFPAT_PUSH_MPLS:
		a = new(ActionPushMpls)
	case OFPAT_POP_MPLS:
		a = new(ActionPopMpls)
	case OFPAT_SET_QUEUE:
		a = new(ActionSetQueue)
	case OFPAT_GROUP:
		a = new(ActionGroup)
	case OFPAT_SET_NW_TTL:
		a = new(ActionSetNwTtl)
	case OFPAT_DEC_NW_TTL:
		a = new(ActionDecNwTtl)
	case OFPAT_SET_FIELD:
		a = new(ActionSetField)
	case OFPAT_PUSH_PBB:
		a = new(ActionPushPbb)
	case OFPAT_POP_PBB:
		a = new(ActionPopPbb)
	case OFPAT_EXPERIMENTER:
		exp, err := newExperimenter(data)
		if err != nil {
			return nil, err
		}
		a = exp
	default:
		return nil, errors.Wrapf(ErrUnknownActionType, "type %d", atype)
	}
	if err := unmarshal(a, data); err != nil {
		return nil, err
	}
	return a, nil
}

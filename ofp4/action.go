/*
Package ofp4 implements the OpenFlow 1.3 action records.

Every action is a distinct type behind the Action interface. Encode and
DecodeAction convert between those values and the wire form, and
ParseAction / String between those values and the text notation used by
ofaction, like "output=2" or "set_tcp_src=2000".
*/
package ofp4

import (
	"encoding"
	"github.com/floodlight/oftest-sub002/oxm"
)

// Action is one of the action types of this package.
type Action interface {
	Type() uint16
	String() string
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	encode(w *writer)
	decode(r *reader)
}

type ActionOutput struct {
	Port   uint32
	MaxLen uint16
}

func (self *ActionOutput) Type() uint16 { return OFPAT_OUTPUT }

func (self *ActionOutput) encode(w *writer) {
	w.header(OFPAT_OUTPUT)
	w.u32(self.Port)
	w.u16(self.MaxLen)
	w.pad(6)
}

func (self *ActionOutput) decode(r *reader) {
	r.header(OFPAT_OUTPUT)
	self.Port = r.u32()
	self.MaxLen = r.u16()
	r.skip(6)
}

func (self *ActionOutput) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionOutput) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

// header only actions

func encodeEmpty(w *writer, atype uint16) {
	w.header(atype)
	w.pad(4)
}

func decodeEmpty(r *reader, atype uint16) {
	r.header(atype)
	r.skip(4)
}

type ActionCopyTtlOut struct{}

func (self *ActionCopyTtlOut) Type() uint16 { return OFPAT_COPY_TTL_OUT }

func (self *ActionCopyTtlOut) encode(w *writer) { encodeEmpty(w, OFPAT_COPY_TTL_OUT) }

func (self *ActionCopyTtlOut) decode(r *reader) { decodeEmpty(r, OFPAT_COPY_TTL_OUT) }

func (self *ActionCopyTtlOut) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionCopyTtlOut) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionCopyTtlIn struct{}

func (self *ActionCopyTtlIn) Type() uint16 { return OFPAT_COPY_TTL_IN }

func (self *ActionCopyTtlIn) encode(w *writer) { encodeEmpty(w, OFPAT_COPY_TTL_IN) }

func (self *ActionCopyTtlIn) decode(r *reader) { decodeEmpty(r, OFPAT_COPY_TTL_IN) }

func (self *ActionCopyTtlIn) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionCopyTtlIn) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionDecMplsTtl struct{}

func (self *ActionDecMplsTtl) Type() uint16 { return OFPAT_DEC_MPLS_TTL }

func (self *ActionDecMplsTtl) encode(w *writer) { encodeEmpty(w, OFPAT_DEC_MPLS_TTL) }

func (self *ActionDecMplsTtl) decode(r *reader) { decodeEmpty(r, OFPAT_DEC_MPLS_TTL) }

func (self *ActionDecMplsTtl) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionDecMplsTtl) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionPopVlan struct{}

func (self *ActionPopVlan) Type() uint16 { return OFPAT_POP_VLAN }

func (self *ActionPopVlan) encode(w *writer) { encodeEmpty(w, OFPAT_POP_VLAN) }

func (self *ActionPopVlan) decode(r *reader) { decodeEmpty(r, OFPAT_POP_VLAN) }

func (self *ActionPopVlan) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionPopVlan) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionDecNwTtl struct{}

func (self *ActionDecNwTtl) Type() uint16 { return OFPAT_DEC_NW_TTL }

func (self *ActionDecNwTtl) encode(w *writer) { encodeEmpty(w, OFPAT_DEC_NW_TTL) }

func (self *ActionDecNwTtl) decode(r *reader) { decodeEmpty(r, OFPAT_DEC_NW_TTL) }

func (self *ActionDecNwTtl) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionDecNwTtl) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionPopPbb struct{}

func (self *ActionPopPbb) Type() uint16 { return OFPAT_POP_PBB }

func (self *ActionPopPbb) encode(w *writer) { encodeEmpty(w, OFPAT_POP_PBB) }

func (self *ActionPopPbb) decode(r *reader) { decodeEmpty(r, OFPAT_POP_PBB) }

func (self *ActionPopPbb) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionPopPbb) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

// ttl actions

func encodeTtl(w *writer, atype uint16, ttl uint8) {
	w.header(atype)
	w.u8(ttl)
	w.pad(3)
}

func decodeTtl(r *reader, atype uint16) uint8 {
	r.header(atype)
	ttl := r.u8()
	r.skip(3)
	return ttl
}

type ActionSetMplsTtl struct {
	Ttl uint8
}

func (self *ActionSetMplsTtl) Type() uint16 { return OFPAT_SET_MPLS_TTL }

func (self *ActionSetMplsTtl) encode(w *writer) { encodeTtl(w, OFPAT_SET_MPLS_TTL, self.Ttl) }

func (self *ActionSetMplsTtl) decode(r *reader) { self.Ttl = decodeTtl(r, OFPAT_SET_MPLS_TTL) }

func (self *ActionSetMplsTtl) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionSetMplsTtl) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionSetNwTtl struct {
	Ttl uint8
}

func (self *ActionSetNwTtl) Type() uint16 { return OFPAT_SET_NW_TTL }

func (self *ActionSetNwTtl) encode(w *writer) { encodeTtl(w, OFPAT_SET_NW_TTL, self.Ttl) }

func (self *ActionSetNwTtl) decode(r *reader) { self.Ttl = decodeTtl(r, OFPAT_SET_NW_TTL) }

func (self *ActionSetNwTtl) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionSetNwTtl) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

// ethertype actions

func encodeEthertype(w *writer, atype uint16, ethertype uint16) {
	w.header(atype)
	w.u16(ethertype)
	w.pad(2)
}

func decodeEthertype(r *reader, atype uint16) uint16 {
	r.header(atype)
	ethertype := r.u16()
	r.skip(2)
	return ethertype
}

type ActionPushVlan struct {
	Ethertype uint16
}

func (self *ActionPushVlan) Type() uint16 { return OFPAT_PUSH_VLAN }

func (self *ActionPushVlan) encode(w *writer) { encodeEthertype(w, OFPAT_PUSH_VLAN, self.Ethertype) }

func (self *ActionPushVlan) decode(r *reader) { self.Ethertype = decodeEthertype(r, OFPAT_PUSH_VLAN) }

func (self *ActionPushVlan) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionPushVlan) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionPushMpls struct {
	Ethertype uint16
}

func (self *ActionPushMpls) Type() uint16 { return OFPAT_PUSH_MPLS }

func (self *ActionPushMpls) encode(w *writer) { encodeEthertype(w, OFPAT_PUSH_MPLS, self.Ethertype) }

func (self *ActionPushMpls) decode(r *reader) { self.Ethertype = decodeEthertype(r, OFPAT_PUSH_MPLS) }

func (self *ActionPushMpls) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionPushMpls) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

// ActionPopMpls carries the ethertype written when the bottom of stack is popped.
type ActionPopMpls struct {
	Ethertype uint16
}

func (self *ActionPopMpls) Type() uint16 { return OFPAT_POP_MPLS }

func (self *ActionPopMpls) encode(w *writer) { encodeEthertype(w, OFPAT_POP_MPLS, self.Ethertype) }

func (self *ActionPopMpls) decode(r *reader) { self.Ethertype = decodeEthertype(r, OFPAT_POP_MPLS) }

func (self *ActionPopMpls) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionPopMpls) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionPushPbb struct {
	Ethertype uint16
}

func (self *ActionPushPbb) Type() uint16 { return OFPAT_PUSH_PBB }

func (self *ActionPushPbb) encode(w *writer) { encodeEthertype(w, OFPAT_PUSH_PBB, self.Ethertype) }

func (self *ActionPushPbb) decode(r *reader) { self.Ethertype = decodeEthertype(r, OFPAT_PUSH_PBB) }

func (self *ActionPushPbb) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionPushPbb) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

// 32 bit id actions

type ActionSetQueue struct {
	QueueId uint32
}

func (self *ActionSetQueue) Type() uint16 { return OFPAT_SET_QUEUE }

func (self *ActionSetQueue) encode(w *writer) {
	w.header(OFPAT_SET_QUEUE)
	w.u32(self.QueueId)
}

func (self *ActionSetQueue) decode(r *reader) {
	r.header(OFPAT_SET_QUEUE)
	self.QueueId = r.u32()
}

func (self *ActionSetQueue) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionSetQueue) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type ActionGroup struct {
	GroupId uint32
}

func (self *ActionGroup) Type() uint16 { return OFPAT_GROUP }

func (self *ActionGroup) encode(w *writer) {
	w.header(OFPAT_GROUP)
	w.u32(self.GroupId)
}

func (self *ActionGroup) decode(r *reader) {
	r.header(OFPAT_GROUP)
	self.GroupId = r.u32()
}

func (self *ActionGroup) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionGroup) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

// ActionSetField holds exactly one OXM TLV, kept as received.
type ActionSetField struct {
	Field oxm.Oxm
}

func (self *ActionSetField) Type() uint16 { return OFPAT_SET_FIELD }

func (self *ActionSetField) encode(w *writer) {
	w.header(OFPAT_SET_FIELD)
	w.bytes(self.Field)
}

func (self *ActionSetField) decode(r *reader) {
	r.header(OFPAT_SET_FIELD)
	if !r.need(4) {
		return
	}
	n := 4 + int(r.data[r.off+3])
	self.Field = r.bytes(n)
	if r.err == nil {
		if _, err := oxm.Split(self.Field); err != nil {
			r.fail(err)
		}
	}
	r.skip(align8(4+n) - (4 + n))
}

func (self *ActionSetField) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *ActionSetField) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

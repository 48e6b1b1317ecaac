package ofp4

import (
	"encoding/binary"
	"github.com/pkg/errors"
)

// ActionExperimenter is an OFPAT_EXPERIMENTER action of a known vendor.
type ActionExperimenter interface {
	Action
	Experimenter() uint32
	Subtype() uint32
}

// newExperimenter picks the experimenter action type by peeking at the
// experimenter id and the vendor specific subtype.
func newExperimenter(data []byte) (ActionExperimenter, error) {
	if len(data) < 8 {
		return nil, errors.Wrap(ErrUnexpectedEOF, "experimenter id")
	}
	switch exp := binary.BigEndian.Uint32(data[4:]); exp {
	case BSN_EXPERIMENTER_ID:
		if len(data) < 12 {
			return nil, errors.Wrap(ErrUnexpectedEOF, "bsn subtype")
		}
		switch subtype := binary.BigEndian.Uint32(data[8:]); subtype {
		case BSN_ACTION_MIRROR:
			return new(BsnMirror), nil
		case BSN_ACTION_SET_TUNNEL_DST:
			return new(BsnSetTunnelDst), nil
		default:
			return nil, errors.Wrapf(ErrUnknownSubtype, "bsn subtype %d", subtype)
		}
	case NX_EXPERIMENTER_ID:
		if len(data) < 10 {
			return nil, errors.Wrap(ErrUnexpectedEOF, "nx subtype")
		}
		switch subtype := binary.BigEndian.Uint16(data[8:]); subtype {
		case NXAST_DEC_TTL:
			return new(NxDecTtl), nil
		default:
			return nil, errors.Wrapf(ErrUnknownSubtype, "nx subtype %d", subtype)
		}
	default:
		return nil, errors.Wrapf(ErrUnknownExperimenter, "experimenter 0x%08x", exp)
	}
}

func encodeBsn(w *writer, subtype uint32) {
	w.header(OFPAT_EXPERIMENTER)
	w.u32(BSN_EXPERIMENTER_ID)
	w.u32(subtype)
}

func decodeBsn(r *reader, subtype uint32) {
	r.header(OFPAT_EXPERIMENTER)
	r.expect32(BSN_EXPERIMENTER_ID, "experimenter")
	r.expect32(subtype, "bsn subtype")
}

// BsnMirror sends a copy of the packet to DestPort. A non-zero VlanTag is
// inserted into the copy as a raw 802.1Q tag (TPID and TCI).
type BsnMirror struct {
	DestPort  uint32
	VlanTag   uint32
	CopyStage uint8
}

func (self *BsnMirror) Type() uint16 { return OFPAT_EXPERIMENTER }

func (self *BsnMirror) Experimenter() uint32 { return BSN_EXPERIMENTER_ID }

func (self *BsnMirror) Subtype() uint32 { return BSN_ACTION_MIRROR }

func (self *BsnMirror) encode(w *writer) {
	encodeBsn(w, BSN_ACTION_MIRROR)
	w.u32(self.DestPort)
	w.u32(self.VlanTag)
	w.u8(self.CopyStage)
	w.pad(3)
}

func (self *BsnMirror) decode(r *reader) {
	decodeBsn(r, BSN_ACTION_MIRROR)
	self.DestPort = r.u32()
	self.VlanTag = r.u32()
	self.CopyStage = r.u8()
	r.skip(3)
}

func (self *BsnMirror) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *BsnMirror) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

// BsnSetTunnelDst sets the IPv4 tunnel destination used on egress.
type BsnSetTunnelDst struct {
	Dst uint32
}

func (self *BsnSetTunnelDst) Type() uint16 { return OFPAT_EXPERIMENTER }

func (self *BsnSetTunnelDst) Experimenter() uint32 { return BSN_EXPERIMENTER_ID }

func (self *BsnSetTunnelDst) Subtype() uint32 { return BSN_ACTION_SET_TUNNEL_DST }

func (self *BsnSetTunnelDst) encode(w *writer) {
	encodeBsn(w, BSN_ACTION_SET_TUNNEL_DST)
	w.u32(self.Dst)
}

func (self *BsnSetTunnelDst) decode(r *reader) {
	decodeBsn(r, BSN_ACTION_SET_TUNNEL_DST)
	self.Dst = r.u32()
}

func (self *BsnSetTunnelDst) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *BsnSetTunnelDst) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

type NxDecTtl struct{}

func (self *NxDecTtl) Type() uint16 { return OFPAT_EXPERIMENTER }

func (self *NxDecTtl) Experimenter() uint32 { return NX_EXPERIMENTER_ID }

func (self *NxDecTtl) Subtype() uint32 { return NXAST_DEC_TTL }

func (self *NxDecTtl) encode(w *writer) {
	w.header(OFPAT_EXPERIMENTER)
	w.u32(NX_EXPERIMENTER_ID)
	w.u16(NXAST_DEC_TTL)
	w.pad(2)
	w.pad(4)
}

func (self *NxDecTtl) decode(r *reader) {
	r.header(OFPAT_EXPERIMENTER)
	r.expect32(NX_EXPERIMENTER_ID, "experimenter")
	r.expect16(NXAST_DEC_TTL, "nx subtype")
	r.skip(2)
	r.skip(4)
}

func (self *NxDecTtl) MarshalBinary() ([]byte, error) { return Encode(self), nil }

func (self *NxDecTtl) UnmarshalBinary(data []byte) error { return unmarshal(self, data) }

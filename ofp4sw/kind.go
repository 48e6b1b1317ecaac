package ofp4sw

import (
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/floodlight/oftest-sub002/oxm"
	"github.com/pkg/errors"
)

// Kind is the slot an action takes in an action set. Kinds are declared in
// execution order.
type Kind int

const (
	KindCopyTtlIn Kind = iota
	KindPopMpls
	KindPopVlan
	KindPopPbb
	KindPushMpls
	KindPushPbb
	KindPushVlan
	KindDecMplsTtl
	KindDecNwTtl
	KindCopyTtlOut
	KindSetDlDst
	KindSetDlSrc
	KindSetMplsLabel
	KindSetMplsTc
	KindSetMplsTtl
	KindSetNwDst
	KindSetNwEcn
	KindSetNwSrc
	KindSetNwTos
	KindSetNwTtl
	KindSetQueue
	KindSetTpDst
	KindSetTpSrc
	KindSetVlanPcp
	KindSetVlanVid
	KindGroup
	KindExperimenter
	KindOutput
	kindCount
)

var kindNames = [...]string{
	"copy_ttl_in",
	"pop_mpls",
	"pop_vlan",
	"pop_pbb",
	"push_mpls",
	"push_pbb",
	"push_vlan",
	"dec_mpls_ttl",
	"dec_nw_ttl",
	"copy_ttl_out",
	"set_dl_dst",
	"set_dl_src",
	"set_mpls_label",
	"set_mpls_tc",
	"set_mpls_ttl",
	"set_nw_dst",
	"set_nw_ecn",
	"set_nw_src",
	"set_nw_tos",
	"set_nw_ttl",
	"set_queue",
	"set_tp_dst",
	"set_tp_src",
	"set_vlan_pcp",
	"set_vlan_vid",
	"group",
	"experimenter",
	"output",
}

func (self Kind) String() string {
	if self >= 0 && self < kindCount {
		return kindNames[self]
	}
	return "unknown"
}

var setFieldKinds = map[uint8]Kind{
	oxm.OFPXMT_OFB_ETH_DST:     KindSetDlDst,
	oxm.OFPXMT_OFB_ETH_SRC:     KindSetDlSrc,
	oxm.OFPXMT_OFB_VLAN_VID:    KindSetVlanVid,
	oxm.OFPXMT_OFB_VLAN_PCP:    KindSetVlanPcp,
	oxm.OFPXMT_OFB_MPLS_LABEL:  KindSetMplsLabel,
	oxm.OFPXMT_OFB_MPLS_TC:     KindSetMplsTc,
	oxm.OFPXMT_OFB_IPV4_SRC:    KindSetNwSrc,
	oxm.OFPXMT_OFB_IPV6_SRC:    KindSetNwSrc,
	oxm.OFPXMT_OFB_IPV4_DST:    KindSetNwDst,
	oxm.OFPXMT_OFB_IPV6_DST:    KindSetNwDst,
	oxm.OFPXMT_OFB_IP_DSCP:     KindSetNwTos,
	oxm.OFPXMT_OFB_IP_ECN:      KindSetNwEcn,
	oxm.OFPXMT_OFB_TCP_SRC:     KindSetTpSrc,
	oxm.OFPXMT_OFB_UDP_SRC:     KindSetTpSrc,
	oxm.OFPXMT_OFB_SCTP_SRC:    KindSetTpSrc,
	oxm.OFPXMT_OFB_ICMPV4_TYPE: KindSetTpSrc,
	oxm.OFPXMT_OFB_ICMPV6_TYPE: KindSetTpSrc,
	oxm.OFPXMT_OFB_TCP_DST:     KindSetTpDst,
	oxm.OFPXMT_OFB_UDP_DST:     KindSetTpDst,
	oxm.OFPXMT_OFB_SCTP_DST:    KindSetTpDst,
	oxm.OFPXMT_OFB_ICMPV4_CODE: KindSetTpDst,
	oxm.OFPXMT_OFB_ICMPV6_CODE: KindSetTpDst,
}

// KindOf returns the action set slot of a. set_field is classified by its
// OXM field; fields the engine cannot rewrite fail with ofp4.ErrUnsupportedField.
func KindOf(a ofp4.Action) (Kind, error) {
	switch act := a.(type) {
	case *ofp4.ActionCopyTtlIn:
		return KindCopyTtlIn, nil
	case *ofp4.ActionPopMpls:
		return KindPopMpls, nil
	case *ofp4.ActionPopVlan:
		return KindPopVlan, nil
	case *ofp4.ActionPopPbb:
		return KindPopPbb, nil
	case *ofp4.ActionPushMpls:
		return KindPushMpls, nil
	case *ofp4.ActionPushPbb:
		return KindPushPbb, nil
	case *ofp4.ActionPushVlan:
		return KindPushVlan, nil
	case *ofp4.ActionDecMplsTtl:
		return KindDecMplsTtl, nil
	case *ofp4.ActionDecNwTtl:
		return KindDecNwTtl, nil
	case *ofp4.ActionCopyTtlOut:
		return KindCopyTtlOut, nil
	case *ofp4.ActionSetMplsTtl:
		return KindSetMplsTtl, nil
	case *ofp4.ActionSetNwTtl:
		return KindSetNwTtl, nil
	case *ofp4.ActionSetQueue:
		return KindSetQueue, nil
	case *ofp4.ActionGroup:
		return KindGroup, nil
	case *ofp4.ActionOutput:
		return KindOutput, nil
	case ofp4.ActionExperimenter:
		return KindExperimenter, nil
	case *ofp4.ActionSetField:
		seq, err := oxm.Split(act.Field)
		if err != nil {
			return 0, err
		}
		if len(seq) != 1 {
			return 0, errors.Wrapf(ofp4.ErrUnsupportedField, "set_field with %d fields", len(seq))
		}
		hdr := seq[0].Header()
		if hdr.Class() != oxm.OFPXMC_OPENFLOW_BASIC || hdr.HasMask() {
			return 0, errors.Wrapf(ofp4.ErrUnsupportedField, "oxm 0x%08x", uint32(hdr))
		}
		if k, ok := setFieldKinds[hdr.Field()]; ok {
			return k, nil
		}
		return 0, errors.Wrap(ofp4.ErrUnsupportedField, oxm.FieldName(hdr.Field()))
	}
	return 0, errors.Wrapf(ofp4.ErrUnknownActionType, "%T", a)
}

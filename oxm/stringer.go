package oxm

import (
	"encoding/binary"
	"fmt"
	"github.com/pkg/errors"
	"net"
	"strconv"
	"strings"
	"unicode"
)

type valueFormat int

const (
	formatDec valueFormat = iota
	formatHex
	formatEtherType
	formatMac
	formatIPv4
	formatIPv6
)

type fieldDef struct {
	name   string
	length int
	format valueFormat
}

var basicFields = map[uint8]fieldDef{
	OFPXMT_OFB_IN_PORT:        {"in_port", 4, formatDec},
	OFPXMT_OFB_IN_PHY_PORT:    {"in_phy_port", 4, formatDec},
	OFPXMT_OFB_METADATA:       {"metadata", 8, formatHex},
	OFPXMT_OFB_ETH_DST:        {"eth_dst", 6, formatMac},
	OFPXMT_OFB_ETH_SRC:        {"eth_src", 6, formatMac},
	OFPXMT_OFB_ETH_TYPE:       {"eth_type", 2, formatEtherType},
	OFPXMT_OFB_VLAN_VID:       {"vlan_vid", 2, formatHex},
	OFPXMT_OFB_VLAN_PCP:       {"vlan_pcp", 1, formatDec},
	OFPXMT_OFB_IP_DSCP:        {"ip_dscp", 1, formatHex},
	OFPXMT_OFB_IP_ECN:         {"ip_ecn", 1, formatHex},
	OFPXMT_OFB_IP_PROTO:       {"ip_proto", 1, formatDec},
	OFPXMT_OFB_IPV4_SRC:       {"ipv4_src", 4, formatIPv4},
	OFPXMT_OFB_IPV4_DST:       {"ipv4_dst", 4, formatIPv4},
	OFPXMT_OFB_TCP_SRC:        {"tcp_src", 2, formatDec},
	OFPXMT_OFB_TCP_DST:        {"tcp_dst", 2, formatDec},
	OFPXMT_OFB_UDP_SRC:        {"udp_src", 2, formatDec},
	OFPXMT_OFB_UDP_DST:        {"udp_dst", 2, formatDec},
	OFPXMT_OFB_SCTP_SRC:       {"sctp_src", 2, formatDec},
	OFPXMT_OFB_SCTP_DST:       {"sctp_dst", 2, formatDec},
	OFPXMT_OFB_ICMPV4_TYPE:    {"icmpv4_type", 1, formatDec},
	OFPXMT_OFB_ICMPV4_CODE:    {"icmpv4_code", 1, formatDec},
	OFPXMT_OFB_ARP_OP:         {"arp_op", 2, formatDec},
	OFPXMT_OFB_ARP_SPA:        {"arp_spa", 4, formatIPv4},
	OFPXMT_OFB_ARP_TPA:        {"arp_tpa", 4, formatIPv4},
	OFPXMT_OFB_ARP_SHA:        {"arp_sha", 6, formatMac},
	OFPXMT_OFB_ARP_THA:        {"arp_tha", 6, formatMac},
	OFPXMT_OFB_IPV6_SRC:       {"ipv6_src", 16, formatIPv6},
	OFPXMT_OFB_IPV6_DST:       {"ipv6_dst", 16, formatIPv6},
	OFPXMT_OFB_IPV6_FLABEL:    {"ipv6_flabel", 4, formatHex},
	OFPXMT_OFB_ICMPV6_TYPE:    {"icmpv6_type", 1, formatDec},
	OFPXMT_OFB_ICMPV6_CODE:    {"icmpv6_code", 1, formatDec},
	OFPXMT_OFB_IPV6_ND_TARGET: {"ipv6_nd_target", 16, formatIPv6},
	OFPXMT_OFB_IPV6_ND_SLL:    {"ipv6_nd_sll", 6, formatMac},
	OFPXMT_OFB_IPV6_ND_TLL:    {"ipv6_nd_tll", 6, formatMac},
	OFPXMT_OFB_MPLS_LABEL:     {"mpls_label", 4, formatHex},
	OFPXMT_OFB_MPLS_TC:        {"mpls_tc", 1, formatDec},
	OFPXMT_OFB_MPLS_BOS:       {"mpls_bos", 1, formatDec},
	OFPXMT_OFB_PBB_ISID:       {"pbb_isid", 3, formatHex},
	OFPXMT_OFB_TUNNEL_ID:      {"tunnel_id", 8, formatHex},
	OFPXMT_OFB_IPV6_EXTHDR:    {"ipv6_exthdr", 2, formatHex},
}

var fieldsByName = func() map[string]uint8 {
	ret := make(map[string]uint8)
	for field, def := range basicFields {
		ret[def.name] = field
	}
	return ret
}()

// FieldName returns the text label of an openflow basic field, like "tcp_src".
func FieldName(field uint8) string {
	if def, ok := basicFields[field]; ok {
		return def.name
	}
	return fmt.Sprintf("field%d", field)
}

func toUint(value []byte) uint64 {
	var v uint64
	for _, c := range value {
		v = v<<8 | uint64(c)
	}
	return v
}

func fromUint(v uint64, width int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf[8-width:]
}

func (f valueFormat) format(value []byte) string {
	switch f {
	case formatHex:
		return fmt.Sprintf("0x%x", toUint(value))
	case formatEtherType:
		return fmt.Sprintf("0x%04x", toUint(value))
	case formatMac:
		return net.HardwareAddr(value).String()
	case formatIPv4, formatIPv6:
		return net.IP(value).String()
	default:
		return strconv.FormatUint(toUint(value), 10)
	}
}

func (f valueFormat) parse(txt string, width int) ([]byte, error) {
	switch f {
	case formatMac:
		hw, err := net.ParseMAC(txt)
		if err != nil {
			return nil, err
		}
		if len(hw) != width {
			return nil, errors.Errorf("%s is not a %d byte address", txt, width)
		}
		return []byte(hw), nil
	case formatIPv4:
		ip := net.ParseIP(txt).To4()
		if ip == nil {
			return nil, errors.Errorf("IP parse error %s", txt)
		}
		return []byte(ip), nil
	case formatIPv6:
		ip := net.ParseIP(txt)
		if ip == nil || ip.To4() != nil && !strings.Contains(txt, ":") {
			return nil, errors.Errorf("IPv6 parse error %s", txt)
		}
		return []byte(ip.To16()), nil
	default:
		n, err := strconv.ParseUint(txt, 0, width*8)
		if err != nil {
			return nil, err
		}
		return fromUint(n, width), nil
	}
}

func (self Oxm) String() string {
	seq, err := Split(self)
	if err != nil {
		return "?"
	}
	var ret []string
	for _, s := range seq {
		ret = append(ret, single(s))
	}
	return strings.Join(ret, ",")
}

func single(o Oxm) string {
	hdr := o.Header()
	if hdr.Class() != OFPXMC_OPENFLOW_BASIC {
		return "?"
	}
	def, ok := basicFields[hdr.Field()]
	if !ok {
		return "?"
	}
	s := def.name + "=" + def.format.format(o.Value())
	if hdr.HasMask() {
		s += "/" + def.format.format(o.Mask())
	}
	return s
}

func IsSeparator(c rune) bool {
	return c == ',' || unicode.IsSpace(c)
}

// LabeledValue splits the leading "label=value" token of txt. eatLen
// covers the token and the separators that follow it.
func LabeledValue(txt string) (label, value string, eatLen int) {
	feed := txt
	if idx := strings.IndexFunc(txt, IsSeparator); idx >= 0 {
		feed = txt[:idx]
	}
	eatLen = len(feed)
	for _, c := range txt[len(feed):] {
		if !IsSeparator(c) {
			break
		}
		eatLen += len(string(c))
	}
	kv := strings.SplitN(feed, "=", 2)
	if len(kv) > 1 {
		return kv[0], kv[1], eatLen
	}
	return kv[0], "", eatLen
}

// ParseOne parses the leading "field=value[/mask]" token of txt into a TLV.
func ParseOne(txt string) (Oxm, int, error) {
	label, value, eatLen := LabeledValue(txt)
	field, ok := fieldsByName[label]
	if !ok {
		return nil, 0, errors.Errorf("unknown oxm field %q", label)
	}
	if value == "" {
		return nil, 0, errors.Wrap(ErrEmptyField, label)
	}
	def := basicFields[field]
	oxmType := uint32(OFPXMC_OPENFLOW_BASIC)<<OXM_CLASS_SHIFT | uint32(field)<<OXM_FIELD_SHIFT

	vm := strings.SplitN(value, "/", 2)
	v, err := def.format.parse(vm[0], def.length)
	if err != nil {
		return nil, 0, errors.Wrap(err, label)
	}
	if len(vm) == 1 {
		return Make(oxmType, v), eatLen, nil
	}
	m, err := parseMask(def, vm[1])
	if err != nil {
		return nil, 0, errors.Wrap(err, label)
	}
	return MakeMasked(oxmType, v, m), eatLen, nil
}

// parseMask also accepts a prefix length for address fields, as in 10.0.0.0/8.
func parseMask(def fieldDef, txt string) ([]byte, error) {
	if def.format == formatIPv4 || def.format == formatIPv6 {
		if bits, err := strconv.Atoi(txt); err == nil {
			if bits < 0 || bits > def.length*8 {
				return nil, errors.Errorf("prefix length %d out of range", bits)
			}
			return []byte(net.CIDRMask(bits, def.length*8)), nil
		}
	}
	return def.format.parse(txt, def.length)
}

// Parse parses a separated list of fields.
func Parse(txt string) (Oxm, int, error) {
	var buf []byte
	cur := 0
	for cur < len(txt) {
		o, n, err := ParseOne(txt[cur:])
		if err != nil {
			return nil, cur, err
		}
		buf = append(buf, o...)
		cur += n
	}
	return buf, cur, nil
}

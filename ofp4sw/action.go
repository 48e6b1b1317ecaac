package ofp4sw

import (
	"encoding/binary"
	"github.com/floodlight/oftest-sub002/oxm"
)

// Header rewrites. Each is a silent no-op when the header it touches is
// missing, including the Ethernet header of a runt frame. Length changing ones go through replace, which reparses.

func (self *Packet) pushVlan(ethertype uint16) {
	if self.hdr.etherType < 0 {
		return
	}
	tag := make([]byte, 4)
	binary.BigEndian.PutUint16(tag, ethertype)
	if off := self.hdr.vlan; off >= 0 {
		copy(tag[2:], self.data[off:off+2])
	}
	self.replace(insertBytes(self.data, 12, tag))
}

func (self *Packet) popVlan() {
	if off := self.hdr.vlan; off >= 0 {
		self.replace(removeBytes(self.data, off-2, 4))
	}
}

// ipTtlOffset returns the offset of the IPv4 TTL or the IPv6 hop limit.
func (self *Packet) ipTtlOffset() int {
	switch self.hdr.ipVersion {
	case 4:
		return self.hdr.ip + 8
	case 6:
		return self.hdr.ip + 7
	}
	return -1
}

func (self *Packet) pushMpls(ethertype uint16) {
	if self.hdr.etherType < 0 {
		return
	}
	entry := make([]byte, 4)
	if off := self.hdr.mpls; off >= 0 {
		copy(entry, self.data[off:off+4])
		entry[2] &^= 0x01
	} else {
		entry[2] = 0x01
		if ttl := self.ipTtlOffset(); ttl >= 0 {
			entry[3] = self.data[ttl]
		}
	}
	at := self.hdr.etherType + 2
	data := insertBytes(self.data, at, entry)
	binary.BigEndian.PutUint16(data[self.hdr.etherType:], ethertype)
	self.replace(data)
}

func (self *Packet) popMpls(ethertype uint16) {
	off := self.hdr.mpls
	if off < 0 {
		return
	}
	bos := self.data[off+2]&0x01 != 0
	data := removeBytes(self.data, off, 4)
	if bos {
		binary.BigEndian.PutUint16(data[self.hdr.etherType:], ethertype)
	}
	self.replace(data)
}

// pushPbb encapsulates the frame behind a new I-TAG. The backbone addresses
// start as copies of the customer addresses.
func (self *Packet) pushPbb(ethertype uint16) {
	if self.hdr.etherType < 0 {
		return
	}
	tag := make([]byte, 18) // TPID, I-TAG TCI, C-DA, C-SA
	binary.BigEndian.PutUint16(tag, ethertype)
	if off := self.hdr.pbb; off >= 0 {
		copy(tag[2:6], self.data[off:off+4])
	}
	copy(tag[6:18], self.data[0:12])
	self.replace(insertBytes(self.data, 12, tag))
}

func (self *Packet) popPbb() {
	off := self.hdr.pbb
	if off < 0 {
		return
	}
	data := removeBytes(self.data, off-2, pbbLength)
	copy(data[0:12], self.data[off+4:off+16])
	self.replace(data)
}

// TTL operations

func (self *Packet) setMplsTtl(ttl uint8) {
	if off := self.hdr.mpls; off >= 0 {
		self.data[off+3] = ttl
	}
}

func (self *Packet) decMplsTtl() {
	if off := self.hdr.mpls; off >= 0 {
		self.data[off+3]--
	}
}

func (self *Packet) setNwTtl(ttl uint8) {
	if off := self.ipTtlOffset(); off >= 0 {
		self.data[off] = ttl
	}
}

func (self *Packet) decNwTtl() {
	if off := self.ipTtlOffset(); off >= 0 {
		self.data[off]--
	}
}

// innerTtlOffset is the TTL right below the outermost MPLS entry: the next
// entry, or the IP header at the bottom of the stack.
func (self *Packet) innerTtlOffset() int {
	off := self.hdr.mpls
	if off < 0 {
		return -1
	}
	if self.data[off+2]&0x01 == 0 {
		if off+8 <= len(self.data) {
			return off + 7
		}
		return -1
	}
	return self.ipTtlOffset()
}

func (self *Packet) copyTtlOut() {
	if inner := self.innerTtlOffset(); inner >= 0 {
		self.data[self.hdr.mpls+3] = self.data[inner]
	}
}

func (self *Packet) copyTtlIn() {
	if inner := self.innerTtlOffset(); inner >= 0 {
		self.data[inner] = self.data[self.hdr.mpls+3]
	}
}

// set_field

func (self *Packet) setField(field oxm.Oxm) {
	hdr := field.Header()
	value := field.Value()
	switch hdr.Field() {
	case oxm.OFPXMT_OFB_ETH_DST:
		if self.hdr.etherType >= 0 {
			copy(self.data[0:6], value)
		}
	case oxm.OFPXMT_OFB_ETH_SRC:
		if self.hdr.etherType >= 0 {
			copy(self.data[6:12], value)
		}
	case oxm.OFPXMT_OFB_VLAN_VID:
		if off := self.hdr.vlan; off >= 0 {
			tci := binary.BigEndian.Uint16(self.data[off:])
			vid := binary.BigEndian.Uint16(value) & 0x0fff
			binary.BigEndian.PutUint16(self.data[off:], tci&0xf000|vid)
		}
	case oxm.OFPXMT_OFB_VLAN_PCP:
		if off := self.hdr.vlan; off >= 0 {
			self.data[off] = (value[0]&0x7)<<5 | self.data[off]&0x1f
		}
	case oxm.OFPXMT_OFB_MPLS_LABEL:
		if off := self.hdr.mpls; off >= 0 {
			word := binary.BigEndian.Uint32(self.data[off:])
			label := binary.BigEndian.Uint32(value) & 0xfffff
			binary.BigEndian.PutUint32(self.data[off:], word&0xfff|label<<12)
		}
	case oxm.OFPXMT_OFB_MPLS_TC:
		if off := self.hdr.mpls; off >= 0 {
			self.data[off+2] = self.data[off+2]&0xf1 | (value[0]&0x7)<<1
		}
	case oxm.OFPXMT_OFB_IPV4_SRC:
		self.setIp(4, 12, value)
	case oxm.OFPXMT_OFB_IPV4_DST:
		self.setIp(4, 16, value)
	case oxm.OFPXMT_OFB_IPV6_SRC:
		self.setIp(6, 8, value)
	case oxm.OFPXMT_OFB_IPV6_DST:
		self.setIp(6, 24, value)
	case oxm.OFPXMT_OFB_IP_DSCP:
		if tc, ok := self.trafficClass(); ok {
			self.setTrafficClass(value[0]<<2 | tc&0x03)
		}
	case oxm.OFPXMT_OFB_IP_ECN:
		if tc, ok := self.trafficClass(); ok {
			self.setTrafficClass(tc&0xfc | value[0]&0x03)
		}
	case oxm.OFPXMT_OFB_TCP_SRC:
		self.setL4(ipProtoTCP, 0, value)
	case oxm.OFPXMT_OFB_TCP_DST:
		self.setL4(ipProtoTCP, 2, value)
	case oxm.OFPXMT_OFB_UDP_SRC:
		self.setL4(ipProtoUDP, 0, value)
	case oxm.OFPXMT_OFB_UDP_DST:
		self.setL4(ipProtoUDP, 2, value)
	case oxm.OFPXMT_OFB_SCTP_SRC:
		self.setL4(ipProtoSCTP, 0, value)
	case oxm.OFPXMT_OFB_SCTP_DST:
		self.setL4(ipProtoSCTP, 2, value)
	case oxm.OFPXMT_OFB_ICMPV4_TYPE:
		self.setL4(ipProtoICMPv4, 0, value)
	case oxm.OFPXMT_OFB_ICMPV4_CODE:
		self.setL4(ipProtoICMPv4, 1, value)
	case oxm.OFPXMT_OFB_ICMPV6_TYPE:
		self.setL4(ipProtoICMPv6, 0, value)
	case oxm.OFPXMT_OFB_ICMPV6_CODE:
		self.setL4(ipProtoICMPv6, 1, value)
	}
}

func (self *Packet) setIp(version, off int, value []byte) {
	if self.hdr.ip >= 0 && self.hdr.ipVersion == version {
		copy(self.data[self.hdr.ip+off:], value)
	}
}

// trafficClass is the IPv4 TOS byte or the IPv6 traffic class, DSCP in the
// upper 6 bits and ECN in the lower 2.
func (self *Packet) trafficClass() (uint8, bool) {
	off := self.hdr.ip
	switch self.hdr.ipVersion {
	case 4:
		return self.data[off+1], true
	case 6:
		return self.data[off]<<4 | self.data[off+1]>>4, true
	}
	return 0, false
}

func (self *Packet) setTrafficClass(tc uint8) {
	off := self.hdr.ip
	switch self.hdr.ipVersion {
	case 4:
		self.data[off+1] = tc
	case 6:
		self.data[off] = self.data[off]&0xf0 | tc>>4
		self.data[off+1] = self.data[off+1]&0x0f | tc<<4
	}
}

// setL4 overwrites the port, or the ICMP type/code which share that space.
func (self *Packet) setL4(proto uint8, off int, value []byte) {
	if self.hdr.l4 >= 0 && self.hdr.ipProto == proto {
		copy(self.data[self.hdr.l4+off:], value)
	}
}

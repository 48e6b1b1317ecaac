package ofp4sw

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	ipProtoICMPv4 = 1
	ipProtoTCP    = 6
	ipProtoUDP    = 17
	ipProtoICMPv6 = 58
	ipProtoSCTP   = 132
)

// headers is the offset index of one buffer. It is only built by parse, and
// any change to the buffer length replaces it, so offsets never go stale.
type headers struct {
	etherType int // type field in front of the first non L2 header
	vlan      int // TCI of the outermost 802.1Q tag
	pbb       int // I-TAG TCI
	mpls      int // outermost label stack entry
	ip        int
	l4        int
	ipVersion int
	ipProto   uint8 // from the transport layer found, not the next header field
}

func parse(data []byte) headers {
	hdr := headers{
		etherType: -1,
		vlan:      -1,
		pbb:       -1,
		mpls:      -1,
		ip:        -1,
		l4:        -1,
	}
	off := 0
	for _, layer := range gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.NoCopy).Layers() {
		l2 := hdr.mpls < 0 && hdr.ip < 0
		switch layer.(type) {
		case *layers.Ethernet:
			hdr.etherType = off + 12
		case *layers.Dot1Q:
			if hdr.vlan < 0 {
				hdr.vlan = off
			}
			if l2 {
				hdr.etherType = off + 2
			}
		case *PBB:
			if hdr.pbb < 0 {
				hdr.pbb = off
			}
			if l2 {
				hdr.etherType = off + 16
			}
		case *layers.MPLS:
			if hdr.mpls < 0 && hdr.ip < 0 {
				hdr.mpls = off
			}
		case *layers.IPv4:
			if hdr.ip < 0 {
				hdr.ip = off
				hdr.ipVersion = 4
			}
		case *layers.IPv6:
			if hdr.ip < 0 {
				hdr.ip = off
				hdr.ipVersion = 6
			}
		case *layers.TCP:
			hdr.setL4(off, ipProtoTCP)
		case *layers.UDP:
			hdr.setL4(off, ipProtoUDP)
		case *layers.SCTP:
			hdr.setL4(off, ipProtoSCTP)
		case *layers.ICMPv4:
			hdr.setL4(off, ipProtoICMPv4)
		case *layers.ICMPv6:
			hdr.setL4(off, ipProtoICMPv6)
		}
		off += len(layer.LayerContents())
	}
	return hdr
}

func (self *headers) setL4(off int, proto uint8) {
	if self.l4 < 0 && self.ip >= 0 {
		self.l4 = off
		self.ipProto = proto
	}
}

// Packet is a frame under action processing.
type Packet struct {
	data []byte
	hdr  headers

	InPort    uint32
	QueueId   uint32 // written by set_queue
	TunnelDst uint32 // written by bsn_set_tunnel_dst
}

// NewPacket copies data, so the caller keeps ownership of its buffer.
func NewPacket(data []byte, inPort uint32) *Packet {
	buf := append([]byte(nil), data...)
	return &Packet{
		data:   buf,
		hdr:    parse(buf),
		InPort: inPort,
	}
}

// Data returns the current frame bytes. Treat them as read only.
func (self *Packet) Data() []byte {
	return self.data
}

// replace installs a new buffer after a length changing mutation.
func (self *Packet) replace(data []byte) {
	self.data = data
	self.hdr = parse(data)
}

func offset(off int) (int, bool) {
	return off, off >= 0
}

// VlanOffset is the offset of the outermost 802.1Q TCI.
func (self *Packet) VlanOffset() (int, bool) { return offset(self.hdr.vlan) }

// PbbOffset is the offset of the I-TAG TCI.
func (self *Packet) PbbOffset() (int, bool) { return offset(self.hdr.pbb) }

func (self *Packet) MplsOffset() (int, bool) { return offset(self.hdr.mpls) }

func (self *Packet) IpOffset() (int, bool) { return offset(self.hdr.ip) }

func (self *Packet) L4Offset() (int, bool) { return offset(self.hdr.l4) }

// EtherTypeOffset is the type field that describes what follows the L2 headers.
func (self *Packet) EtherTypeOffset() (int, bool) { return offset(self.hdr.etherType) }

func insertBytes(data []byte, off int, b []byte) []byte {
	ret := make([]byte, 0, len(data)+len(b))
	ret = append(ret, data[:off]...)
	ret = append(ret, b...)
	return append(ret, data[off:]...)
}

func removeBytes(data []byte, off, n int) []byte {
	ret := make([]byte, 0, len(data)-n)
	ret = append(ret, data[:off]...)
	return append(ret, data[off+n:]...)
}

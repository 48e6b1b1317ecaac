package ofp4sw

import (
	"github.com/floodlight/oftest-sub002/oxm"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"net"
)

// Match is a snapshot of the header fields of a Packet. VlanVid carries
// OFPVID_PRESENT when the frame is tagged. TpSrc and TpDst hold the ICMP
// type and code for ICMP packets.
type Match struct {
	EthDst  net.HardwareAddr
	EthSrc  net.HardwareAddr
	EthType uint16

	VlanVid uint16
	VlanPcp uint8

	PbbIsid uint32

	MplsLabel uint32
	MplsTc    uint8
	MplsBos   bool
	MplsTtl   uint8

	IpSrc   net.IP
	IpDst   net.IP
	IpProto uint8
	IpDscp  uint8
	IpEcn   uint8
	IpTtl   uint8

	TpSrc uint16
	TpDst uint16
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}

// Match decodes the current bytes, so it reflects every mutation so far.
func (self *Packet) Match() Match {
	var m Match
	var vlan, pbb, mpls, ip, l4 bool
	setL4 := func(proto uint8, src, dst uint16) {
		if ip && !l4 {
			l4 = true
			m.IpProto = proto
			m.TpSrc = src
			m.TpDst = dst
		}
	}
	for _, layer := range gopacket.NewPacket(self.data, layers.LayerTypeEthernet, gopacket.NoCopy).Layers() {
		l2 := !mpls && !ip
		switch l := layer.(type) {
		case *layers.Ethernet:
			m.EthDst = cloneBytes(l.DstMAC)
			m.EthSrc = cloneBytes(l.SrcMAC)
			m.EthType = uint16(l.EthernetType)
		case *layers.Dot1Q:
			if !vlan {
				vlan = true
				m.VlanVid = l.VLANIdentifier | oxm.OFPVID_PRESENT
				m.VlanPcp = l.Priority
			}
			if l2 {
				m.EthType = uint16(l.Type)
			}
		case *PBB:
			if !pbb {
				pbb = true
				m.PbbIsid = l.ServiceIdentifier
			}
			if l2 {
				m.EthType = uint16(l.Type)
			}
		case *layers.MPLS:
			if !mpls && !ip {
				mpls = true
				m.MplsLabel = l.Label
				m.MplsTc = l.TrafficClass
				m.MplsBos = l.StackBottom
				m.MplsTtl = l.TTL
			}
		case *layers.IPv4:
			if !ip {
				ip = true
				m.IpSrc = cloneBytes(l.SrcIP)
				m.IpDst = cloneBytes(l.DstIP)
				m.IpProto = uint8(l.Protocol)
				m.IpDscp = l.TOS >> 2
				m.IpEcn = l.TOS & 0x3
				m.IpTtl = l.TTL
			}
		case *layers.IPv6:
			if !ip {
				ip = true
				m.IpSrc = cloneBytes(l.SrcIP)
				m.IpDst = cloneBytes(l.DstIP)
				m.IpProto = uint8(l.NextHeader)
				m.IpDscp = l.TrafficClass >> 2
				m.IpEcn = l.TrafficClass & 0x3
				m.IpTtl = l.HopLimit
			}
		case *layers.TCP:
			setL4(ipProtoTCP, uint16(l.SrcPort), uint16(l.DstPort))
		case *layers.UDP:
			setL4(ipProtoUDP, uint16(l.SrcPort), uint16(l.DstPort))
		case *layers.SCTP:
			setL4(ipProtoSCTP, uint16(l.SrcPort), uint16(l.DstPort))
		case *layers.ICMPv4:
			setL4(ipProtoICMPv4, uint16(l.TypeCode.Type()), uint16(l.TypeCode.Code()))
		case *layers.ICMPv6:
			setL4(ipProtoICMPv6, uint16(l.TypeCode.Type()), uint16(l.TypeCode.Code()))
		}
	}
	return m
}

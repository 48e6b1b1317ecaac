package ofp4sw

import (
	"encoding/binary"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
	"net"
)

func init() {
	layers.MPLSPayloadDecoder = gopacket.DecodeFunc(decodeMPLS)
	layers.EthernetTypeMetadata[ethernetTypeDot1QSTag] = layers.EthernetTypeMetadata[layers.EthernetTypeDot1Q]
	layers.EthernetTypeMetadata[ethernetTypeDot1QITag] = layers.EnumMetadata{
		DecodeWith: gopacket.DecodeFunc(decodePBB),
		Name:       "PBB",
		LayerType:  LayerTypePBB,
	}
}

// LayerTypePBB is the 802.1ah I-TAG layer. gopacket keeps ids below 1000
// for its own layers, so 1500 stays clear of them.
var LayerTypePBB = gopacket.RegisterLayerType(1500, gopacket.LayerTypeMetadata{
	Name:    "PBB",
	Decoder: gopacket.DecodeFunc(decodePBB),
})

// MPLS does not carry the payload type, so guess from the first nibble and
// fall back to an opaque payload.
func decodeMPLS(data []byte, p gopacket.PacketBuilder) error {
	g := layers.ProtocolGuessingDecoder{}
	if err := g.Decode(data, p); err != nil {
		return gopacket.DecodePayload.Decode(data, p)
	}
	return nil
}

const (
	// 802.1Q S-Tag
	ethernetTypeDot1QSTag layers.EthernetType = 0x88a8
	// 802.1Q I-Tag
	ethernetTypeDot1QITag layers.EthernetType = 0x88e7
)

const pbbLength = 18 // I-TAG TCI with I-SID, C-DA, C-SA, type

// PBB is the 802.1ah I-TAG and the customer addresses behind it.
type PBB struct {
	layers.BaseLayer
	Priority           uint8
	DropEligible       bool
	UseCustomerAddress bool
	ServiceIdentifier  uint32
	DstMAC             net.HardwareAddr
	SrcMAC             net.HardwareAddr
	Type               layers.EthernetType
}

func (p *PBB) LayerType() gopacket.LayerType     { return LayerTypePBB }
func (p *PBB) CanDecode() gopacket.LayerClass    { return LayerTypePBB }
func (p *PBB) NextLayerType() gopacket.LayerType { return p.Type.LayerType() }

func (p *PBB) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(pbbLength)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(bytes[0:4], p.ServiceIdentifier&0xffffff)
	firstByte := p.Priority << 5
	if p.DropEligible {
		firstByte |= 0x10
	}
	if p.UseCustomerAddress {
		firstByte |= 0x08
	}
	bytes[0] = firstByte
	copy(bytes[4:10], p.DstMAC)
	copy(bytes[10:16], p.SrcMAC)
	binary.BigEndian.PutUint16(bytes[16:18], uint16(p.Type))
	return nil
}

func decodePBB(data []byte, p gopacket.PacketBuilder) error {
	if len(data) < pbbLength {
		return errors.Errorf("PBB length %d too short", len(data))
	}
	if data[0]&0x3 != 0 {
		return errors.New("I-TAG TCI Res2 must be zero")
	}
	pbb := &PBB{
		Priority:           data[0] >> 5,
		DropEligible:       data[0]&0x10 != 0,
		UseCustomerAddress: data[0]&0x08 != 0,
		ServiceIdentifier:  binary.BigEndian.Uint32(data[0:4]) & 0xffffff,
		DstMAC:             net.HardwareAddr(data[4:10]),
		SrcMAC:             net.HardwareAddr(data[10:16]),
		Type:               layers.EthernetType(binary.BigEndian.Uint16(data[16:18])),
		BaseLayer:          layers.BaseLayer{Contents: data[:pbbLength], Payload: data[pbbLength:]},
	}
	p.AddLayer(pbb)
	return p.NextDecoder(pbb.Type)
}

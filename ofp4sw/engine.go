/*
Package ofp4sw applies OpenFlow 1.3 actions to frames.

A Packet owns the frame bytes and an offset index that is rebuilt whenever
a tag push or pop changes the frame length. Engine runs an ActionSet in
the fixed order of its kinds, or an ActionList in list order, and hands
the resulting frames to an OutputSink.
*/
package ofp4sw

import (
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/sirupsen/logrus"
)

// OutputSink receives the frames leaving the action processing. Each call
// gets its own copy of the bytes. Delivery failures are the sink's business.
type OutputSink interface {
	Send(port uint32, data []byte)
	SendToAllExcept(ingress uint32, data []byte)
	SendToGroup(group uint32, data []byte)
}

// Checksummer fixes up checksums before a frame is delivered.
type Checksummer interface {
	Update(pkt *Packet)
}

type NopChecksum struct{}

func (NopChecksum) Update(*Packet) {}

type Engine struct {
	Sink     OutputSink
	Checksum Checksummer
	Log      logrus.FieldLogger
}

func (self Engine) logger() logrus.FieldLogger {
	if self.Log == nil {
		return logrus.StandardLogger()
	}
	return self.Log
}

// ApplySet executes the set in kind order, so output sees every rewrite and
// group comes before output.
func (self Engine) ApplySet(pkt *Packet, set *ActionSet) {
	for _, a := range set.Actions() {
		self.apply(pkt, a)
	}
}

// ApplyList executes the actions in list order. The list is checked before
// anything runs, so an error leaves pkt untouched.
func (self Engine) ApplyList(pkt *Packet, list ofp4.ActionList) error {
	for _, a := range list {
		if _, err := KindOf(a); err != nil {
			return err
		}
	}
	for _, a := range list {
		self.apply(pkt, a)
	}
	return nil
}

func (self Engine) apply(pkt *Packet, a ofp4.Action) {
	switch act := a.(type) {
	case *ofp4.ActionCopyTtlIn:
		pkt.copyTtlIn()
	case *ofp4.ActionCopyTtlOut:
		pkt.copyTtlOut()
	case *ofp4.ActionPopMpls:
		pkt.popMpls(act.Ethertype)
	case *ofp4.ActionPopVlan:
		pkt.popVlan()
	case *ofp4.ActionPopPbb:
		pkt.popPbb()
	case *ofp4.ActionPushMpls:
		pkt.pushMpls(act.Ethertype)
	case *ofp4.ActionPushPbb:
		pkt.pushPbb(act.Ethertype)
	case *ofp4.ActionPushVlan:
		pkt.pushVlan(act.Ethertype)
	case *ofp4.ActionDecMplsTtl:
		pkt.decMplsTtl()
	case *ofp4.ActionDecNwTtl:
		pkt.decNwTtl()
	case *ofp4.ActionSetMplsTtl:
		pkt.setMplsTtl(act.Ttl)
	case *ofp4.ActionSetNwTtl:
		pkt.setNwTtl(act.Ttl)
	case *ofp4.ActionSetField:
		pkt.setField(act.Field)
	case *ofp4.ActionSetQueue:
		pkt.QueueId = act.QueueId
	case *ofp4.ActionGroup:
		self.logger().WithFields(logrus.Fields{
			"group": act.GroupId,
			"len":   len(pkt.data),
		}).Debug("to group")
		if self.Sink != nil {
			self.Sink.SendToGroup(act.GroupId, self.frame(pkt))
		}
	case *ofp4.ActionOutput:
		self.output(pkt, act.Port)
	case *ofp4.NxDecTtl:
		pkt.decNwTtl()
	case *ofp4.BsnSetTunnelDst:
		pkt.TunnelDst = act.Dst
	case *ofp4.BsnMirror:
		self.mirror(pkt, act)
	default:
		self.logger().WithField("action", a.String()).Debug("action not handled")
	}
}

// frame returns a private copy of the frame for a sink.
func (self Engine) frame(pkt *Packet) []byte {
	if self.Checksum != nil {
		self.Checksum.Update(pkt)
	}
	return append([]byte(nil), pkt.data...)
}

func (self Engine) output(pkt *Packet, port uint32) {
	self.logger().WithFields(logrus.Fields{
		"port":    port,
		"in_port": pkt.InPort,
		"len":     len(pkt.data),
	}).Debug("output")
	if self.Sink == nil {
		return
	}
	switch port {
	case ofp4.OFPP_ALL, ofp4.OFPP_FLOOD:
		self.Sink.SendToAllExcept(pkt.InPort, self.frame(pkt))
	case ofp4.OFPP_IN_PORT:
		self.Sink.Send(pkt.InPort, self.frame(pkt))
	default:
		self.Sink.Send(port, self.frame(pkt))
	}
}

// mirror sends a copy to the mirror port, tagged with VlanTag when set.
// Frames without an Ethernet header are not mirrored.
func (self Engine) mirror(pkt *Packet, act *ofp4.BsnMirror) {
	if pkt.hdr.etherType < 0 {
		return
	}
	data := self.frame(pkt)
	if act.VlanTag != 0 {
		tag := []byte{
			uint8(act.VlanTag >> 24),
			uint8(act.VlanTag >> 16),
			uint8(act.VlanTag >> 8),
			uint8(act.VlanTag),
		}
		data = insertBytes(data, 12, tag)
	}
	self.logger().WithFields(logrus.Fields{
		"port":       act.DestPort,
		"copy_stage": act.CopyStage,
		"len":        len(data),
	}).Debug("mirror")
	if self.Sink != nil {
		self.Sink.Send(act.DestPort, data)
	}
}

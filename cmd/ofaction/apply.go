package main

import (
	"fmt"
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/floodlight/oftest-sub002/ofp4sw"
	"github.com/floodlight/oftest-sub002/pcap"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"io"
	"strings"
)

type printSink struct {
	out io.Writer
}

func (self printSink) Send(port uint32, data []byte) {
	fmt.Fprintf(self.out, "port %d %x\n", port, data)
}

func (self printSink) SendToAllExcept(ingress uint32, data []byte) {
	fmt.Fprintf(self.out, "all-except %d %x\n", ingress, data)
}

func (self printSink) SendToGroup(group uint32, data []byte) {
	fmt.Fprintf(self.out, "group %d %x\n", group, data)
}

type teeSink []ofp4sw.OutputSink

func (self teeSink) Send(port uint32, data []byte) {
	for _, s := range self {
		s.Send(port, data)
	}
}

func (self teeSink) SendToAllExcept(ingress uint32, data []byte) {
	for _, s := range self {
		s.SendToAllExcept(ingress, data)
	}
}

func (self teeSink) SendToGroup(group uint32, data []byte) {
	for _, s := range self {
		s.SendToGroup(group, data)
	}
}

func (self *app) applyCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "apply FRAME ACTIONS...",
		Short: "Run actions over a hex frame and print what leaves",
		Long: `Run actions over a hex frame. By default the actions are written into an
action set and executed in action set order; with --list they run as an
apply-actions list, in the order given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			actions, err := ofp4.ParseActions(strings.Join(args[1:], ","))
			if err != nil {
				return err
			}
			return self.apply(cmd.OutOrStdout(), data, actions, list)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&list, "list", false, "run as an action list")
	flags.Uint32("in-port", 1, "ingress port of the frame")
	flags.String("capture", "", "also write the frames to this pcap file")
	flags.Uint32("snaplen", 65535, "capture snaplen")
	bindFlag(self.v, "packet.in_port", flags, "in-port")
	bindFlag(self.v, "capture.file", flags, "capture")
	bindFlag(self.v, "capture.snaplen", flags, "snaplen")
	return cmd
}

func (self *app) apply(out io.Writer, data []byte, actions ofp4.ActionList, list bool) (err error) {
	var sinks teeSink
	sinks = append(sinks, printSink{out})

	if name := self.v.GetString("capture.file"); name != "" {
		var f io.WriteCloser
		if f, err = self.create(name); err != nil {
			return errors.Wrap(err, "capture")
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "capture")
			}
		}()
		var capture *pcap.Sink
		if capture, err = pcap.NewSink(f, self.v.GetUint32("capture.snaplen"), self.log); err != nil {
			return err
		}
		sinks = append(sinks, capture)
	}

	engine := ofp4sw.Engine{
		Sink:     sinks,
		Checksum: ofp4sw.NopChecksum{},
		Log:      self.log,
	}
	pkt := ofp4sw.NewPacket(data, self.v.GetUint32("packet.in_port"))
	if list {
		if err := engine.ApplyList(pkt, actions); err != nil {
			return actionError(err)
		}
	} else {
		set := ofp4sw.NewActionSet()
		if err := set.Write(actions...); err != nil {
			return actionError(err)
		}
		self.log.WithField("set", set.String()).Debug("action set")
		engine.ApplySet(pkt, set)
	}
	self.log.WithFields(logrus.Fields{
		"queue":      pkt.QueueId,
		"tunnel_dst": pkt.TunnelDst,
	}).Debug("applied")
	fmt.Fprintf(out, "frame %x\n", pkt.Data())
	return nil
}

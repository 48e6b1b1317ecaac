/*
Package pcap captures the frames leaving the action engine into a pcap
stream. The pcap record format has no place for the egress port, so the
destination of each record is kept in Records, in write order.
*/
package pcap

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"io"
	"sync"
	"time"
)

const DefaultSnaplen = 65535

const (
	ToPort  = "port"
	ToAll   = "all"
	ToGroup = "group"
)

// Record describes one captured frame. Id is the port, the ingress port
// excluded by a flood, or the group.
type Record struct {
	To     string
	Id     uint32
	Length int
}

type Sink struct {
	Log logrus.FieldLogger

	lock    sync.Mutex
	writer  *pcapgo.Writer
	snaplen uint32
	records []Record
	now     func() time.Time
}

// NewSink writes the file header to w. A zero snaplen means DefaultSnaplen.
func NewSink(w io.Writer, snaplen uint32, log logrus.FieldLogger) (*Sink, error) {
	if snaplen == 0 {
		snaplen = DefaultSnaplen
	}
	writer := pcapgo.NewWriter(w)
	if err := writer.WriteFileHeader(snaplen, layers.LinkTypeEthernet); err != nil {
		return nil, errors.Wrap(err, "pcap file header")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sink{
		Log:     log,
		writer:  writer,
		snaplen: snaplen,
		now:     time.Now,
	}, nil
}

// Put writes one record, truncated to the snaplen.
func (self *Sink) Put(to string, id uint32, data []byte) error {
	self.lock.Lock()
	defer self.lock.Unlock()

	capture := data
	if uint32(len(capture)) > self.snaplen {
		capture = capture[:self.snaplen]
	}
	ci := gopacket.CaptureInfo{
		Timestamp:     self.now(),
		CaptureLength: len(capture),
		Length:        len(data),
	}
	if err := self.writer.WritePacket(ci, capture); err != nil {
		return errors.Wrapf(err, "pcap record %s %d", to, id)
	}
	self.records = append(self.records, Record{To: to, Id: id, Length: len(data)})
	return nil
}

func (self *Sink) put(to string, id uint32, data []byte) {
	if err := self.Put(to, id, data); err != nil {
		self.Log.WithError(err).Warn("capture failed")
	}
}

func (self *Sink) Send(port uint32, data []byte) {
	self.put(ToPort, port, data)
}

func (self *Sink) SendToAllExcept(ingress uint32, data []byte) {
	self.put(ToAll, ingress, data)
}

func (self *Sink) SendToGroup(group uint32, data []byte) {
	self.put(ToGroup, group, data)
}

// Records returns the destinations of the frames written so far.
func (self *Sink) Records() []Record {
	self.lock.Lock()
	defer self.lock.Unlock()
	return append([]Record(nil), self.records...)
}

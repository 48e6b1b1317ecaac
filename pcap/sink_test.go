package pcap

import (
	"bytes"
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/floodlight/oftest-sub002/ofp4sw"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
	"time"
)

var _ ofp4sw.OutputSink = (*Sink)(nil)

func frame(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = uint8(i)
	}
	return data
}

func readAll(t *testing.T, buf *bytes.Buffer) [][]byte {
	r, err := pcapgo.NewReader(buf)
	require.NoError(t, err)
	assert.Equal(t, layers.LinkTypeEthernet, r.LinkType())
	var ret [][]byte
	for {
		data, ci, err := r.ReadPacketData()
		if err == io.EOF {
			return ret
		}
		require.NoError(t, err)
		assert.Equal(t, len(data), ci.CaptureLength)
		ret = append(ret, data)
	}
}

func TestSink(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewSink(&buf, 0, nil)
	require.NoError(t, err)
	sink.now = func() time.Time { return time.Unix(1500000000, 0) }

	sink.Send(2, frame(60))
	sink.SendToAllExcept(1, frame(64))
	sink.SendToGroup(7, frame(70))

	assert.Equal(t, []Record{
		{To: ToPort, Id: 2, Length: 60},
		{To: ToAll, Id: 1, Length: 64},
		{To: ToGroup, Id: 7, Length: 70},
	}, sink.Records())

	frames := readAll(t, &buf)
	require.Len(t, frames, 3)
	assert.Equal(t, frame(60), frames[0])
	assert.Equal(t, frame(64), frames[1])
	assert.Equal(t, frame(70), frames[2])
}

func TestSnaplen(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewSink(&buf, 32, nil)
	require.NoError(t, err)
	require.NoError(t, sink.Put(ToPort, 3, frame(60)))

	frames := readAll(t, &buf)
	require.Len(t, frames, 1)
	assert.Equal(t, frame(32), frames[0])
	assert.Equal(t, 60, sink.Records()[0].Length)
}

type shortWriter struct {
	room int
}

var errFull = errors.New("full")

func (self *shortWriter) Write(p []byte) (int, error) {
	if len(p) > self.room {
		return 0, errFull
	}
	self.room -= len(p)
	return len(p), nil
}

func TestWriteFailure(t *testing.T) {
	_, err := NewSink(&shortWriter{}, 0, nil)
	assert.Equal(t, errFull, errors.Cause(err))

	logger, hook := test.NewNullLogger()
	sink, err := NewSink(&shortWriter{room: 24}, 0, logger)
	require.NoError(t, err)
	sink.Send(1, frame(60))

	assert.Empty(t, sink.Records())
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "capture failed", hook.LastEntry().Message)
}

func TestEngineCapture(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewSink(&buf, 0, nil)
	require.NoError(t, err)

	list, err := ofp4.ParseActions("push_vlan=0x8100,group=3,output=all")
	require.NoError(t, err)
	set := ofp4sw.NewActionSet()
	require.NoError(t, set.Write(list...))

	pkt := ofp4sw.NewPacket(frame(60), 9)
	ofp4sw.Engine{Sink: sink}.ApplySet(pkt, set)

	assert.Equal(t, []Record{
		{To: ToGroup, Id: 3, Length: 64},
		{To: ToAll, Id: 9, Length: 64},
	}, sink.Records())
	frames := readAll(t, &buf)
	require.Len(t, frames, 2)
	assert.Equal(t, pkt.Data(), frames[1])
}

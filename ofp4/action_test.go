package ofp4

import (
	"encoding/binary"
	"github.com/floodlight/oftest-sub002/oxm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func allActions() []Action {
	return []Action{
		&ActionOutput{Port: 2, MaxLen: OFPCML_NO_BUFFER},
		&ActionOutput{Port: OFPP_ALL, MaxLen: OFPCML_MAX},
		&ActionCopyTtlOut{},
		&ActionCopyTtlIn{},
		&ActionSetMplsTtl{Ttl: 3},
		&ActionDecMplsTtl{},
		&ActionPushVlan{Ethertype: 0x8100},
		&ActionPopVlan{},
		&ActionPushMpls{Ethertype: 0x8847},
		&ActionPopMpls{Ethertype: 0x0800},
		&ActionSetQueue{QueueId: 9},
		&ActionGroup{GroupId: 7},
		&ActionSetNwTtl{Ttl: 64},
		&ActionDecNwTtl{},
		&ActionSetField{Field: oxm.Make(oxm.OXM_OF_TCP_SRC, []byte{0x07, 0xd0})},
		&ActionSetField{Field: oxm.Make(oxm.OXM_OF_IPV6_DST, make([]byte, 16))},
		&ActionPushPbb{Ethertype: 0x88e7},
		&ActionPopPbb{},
		&BsnMirror{DestPort: 5, VlanTag: 0x81000007, CopyStage: 1},
		&BsnSetTunnelDst{Dst: 0x0a000001},
		&NxDecTtl{},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, a := range allActions() {
		data := Encode(a)
		assert.Equal(t, a.Type(), binary.BigEndian.Uint16(data), a.String())
		assert.Equal(t, len(data), int(binary.BigEndian.Uint16(data[2:])), a.String())
		assert.Zero(t, len(data)%8, a.String())

		b, err := DecodeAction(data)
		require.NoError(t, err, a.String())
		assert.Equal(t, a, b)

		// trailing bytes belong to the next record
		b, err = DecodeAction(append(data, 0xff, 0xff))
		require.NoError(t, err, a.String())
		assert.Equal(t, a, b)
	}
}

func TestWireLayout(t *testing.T) {
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x00, 0x02,
		0xff, 0xff, 0, 0, 0, 0, 0, 0,
	}, Encode(&ActionOutput{Port: 2, MaxLen: OFPCML_NO_BUFFER}))

	assert.Equal(t, []byte{
		0x00, 0x11, 0x00, 0x08,
		0x81, 0x00, 0, 0,
	}, Encode(&ActionPushVlan{Ethertype: 0x8100}))

	assert.Equal(t, []byte{
		0x00, 0x19, 0x00, 0x10,
		0x80, 0x00, 0x1a, 0x02, 0x07, 0xd0,
		0, 0, 0, 0, 0, 0,
	}, Encode(&ActionSetField{Field: oxm.Make(oxm.OXM_OF_TCP_SRC, []byte{0x07, 0xd0})}))

	assert.Equal(t, []byte{
		0xff, 0xff, 0x00, 0x18,
		0x00, 0x5c, 0x16, 0xc7,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x05,
		0x81, 0x00, 0x00, 0x07,
		0x01, 0, 0, 0,
	}, Encode(&BsnMirror{DestPort: 5, VlanTag: 0x81000007, CopyStage: 1}))

	assert.Equal(t, []byte{
		0xff, 0xff, 0x00, 0x10,
		0x00, 0x00, 0x23, 0x20,
		0x00, 0x12, 0, 0,
		0, 0, 0, 0,
	}, Encode(&NxDecTtl{}))

	data, err := (&ActionGroup{GroupId: 7}).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x16, 0x00, 0x08, 0, 0, 0, 7}, data)
}

func TestDecodeErrors(t *testing.T) {
	output := Encode(&ActionOutput{Port: 2})
	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrUnexpectedEOF},
		{"short header", []byte{0x00, 0x00, 0x00}, ErrUnexpectedEOF},
		{"unknown type", []byte{0x00, 0x05, 0x00, 0x08, 0, 0, 0, 0}, ErrUnknownActionType},
		{"truncated", output[:12], ErrUnexpectedEOF},
		{"zero length", []byte{0x00, 0x12, 0x00, 0x00, 0, 0, 0, 0}, ErrBadLength},
		{"unaligned length", append([]byte{0x00, 0x00, 0x00, 0x0c}, output[4:]...), ErrBadLength},
		{"output in 8 bytes", []byte{0x00, 0x00, 0x00, 0x08, 0, 0, 0, 2}, ErrUnexpectedEOF},
		{"pop_vlan in 16 bytes", []byte{0x00, 0x12, 0x00, 0x10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, ErrLengthMismatch},
		{"unknown experimenter", []byte{
			0xff, 0xff, 0x00, 0x10, 0x00, 0x00, 0x00, 0x01,
			0, 0, 0, 1, 0, 0, 0, 0}, ErrUnknownExperimenter},
		{"unknown bsn subtype", []byte{
			0xff, 0xff, 0x00, 0x10, 0x00, 0x5c, 0x16, 0xc7,
			0, 0, 0, 99, 0, 0, 0, 0}, ErrUnknownSubtype},
		{"unknown nx subtype", []byte{
			0xff, 0xff, 0x00, 0x10, 0x00, 0x00, 0x23, 0x20,
			0, 99, 0, 0, 0, 0, 0, 0}, ErrUnknownSubtype},
		{"short experimenter", []byte{0xff, 0xff, 0x00, 0x08, 0x00, 0x5c}, ErrUnexpectedEOF},
		{"bsn header cut by length", []byte{
			0xff, 0xff, 0x00, 0x08, 0x00, 0x5c, 0x16, 0xc7,
			0x00, 0x12, 0x00, 0x08, 0, 0, 0, 0}, ErrUnexpectedEOF},
		{"nx header cut by length", []byte{
			0xff, 0xff, 0x00, 0x08, 0x00, 0x00, 0x23, 0x20,
			0x00, 0x12, 0x00, 0x08, 0, 0, 0, 0}, ErrUnexpectedEOF},
		{"experimenter bad length", []byte{
			0xff, 0xff, 0x00, 0x0c, 0x00, 0x5c, 0x16, 0xc7,
			0, 0, 0, 1, 0, 0, 0, 0}, ErrBadLength},
		{"set_field padding", []byte{
			0x00, 0x19, 0x00, 0x18,
			0x80, 0x00, 0x1a, 0x02, 0x07, 0xd0,
			0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, ErrLengthMismatch},
		{"set_field oxm length", []byte{
			0x00, 0x19, 0x00, 0x10,
			0x80, 0x00, 0x1a, 0x03, 0x07, 0xd0, 0x00,
			0, 0, 0, 0, 0}, oxm.ErrOxmLength},
	}
	for _, c := range cases {
		_, err := DecodeAction(c.data)
		assert.Equal(t, c.want, errors.Cause(err), c.name)
	}
}

func TestConstantMismatch(t *testing.T) {
	err := new(ActionPushVlan).UnmarshalBinary(Encode(&ActionPopMpls{Ethertype: 0x0800}))
	assert.Equal(t, ErrConstantMismatch, errors.Cause(err))

	err = new(BsnMirror).UnmarshalBinary(Encode(&BsnSetTunnelDst{Dst: 1}))
	assert.Equal(t, ErrConstantMismatch, errors.Cause(err))

	err = new(NxDecTtl).UnmarshalBinary(Encode(&BsnSetTunnelDst{Dst: 1}))
	assert.Equal(t, ErrConstantMismatch, errors.Cause(err))

	var mirror BsnMirror
	require.NoError(t, mirror.UnmarshalBinary(Encode(&BsnMirror{DestPort: 3})))
	assert.Equal(t, uint32(3), mirror.DestPort)
}

func TestDecodeActions(t *testing.T) {
	list := ActionList(allActions())
	data, err := list.MarshalBinary()
	require.NoError(t, err)

	var decoded ActionList
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, list, decoded)

	_, err = DecodeActions(data[:len(data)-4])
	assert.Equal(t, ErrUnexpectedEOF, errors.Cause(err))

	empty, err := DecodeActions(nil)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBadActionError(t *testing.T) {
	cases := map[error]uint16{
		ErrUnknownActionType:   OFPBAC_BAD_TYPE,
		ErrBadLength:           OFPBAC_BAD_LEN,
		ErrLengthMismatch:      OFPBAC_BAD_LEN,
		ErrUnexpectedEOF:       OFPBAC_BAD_LEN,
		ErrUnknownExperimenter: OFPBAC_BAD_EXPERIMENTER,
		ErrUnknownSubtype:      OFPBAC_BAD_EXP_TYPE,
		ErrUnsupportedField:    OFPBAC_BAD_SET_TYPE,
		oxm.ErrOxmLength:       OFPBAC_BAD_SET_LEN,
	}
	for cause, code := range cases {
		e := BadActionError(errors.Wrap(cause, "context"))
		assert.Equal(t, uint16(OFPET_BAD_ACTION), e.Type, cause.Error())
		assert.Equal(t, code, e.Code, cause.Error())
	}

	data, err := Error{Type: OFPET_BAD_ACTION, Code: OFPBAC_BAD_LEN, Data: []byte{1}}.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 2, 0, 1, 1}, data)
}

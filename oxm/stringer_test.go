package oxm

import (
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	tokens := []string{
		"in_port=10",
		"metadata=0x5/0xff",
		"eth_src=00:00:00:00:00:00",
		"eth_src=00:00:00:00:00:00/01:00:00:00:00:00",
		"eth_type=0x0800",
		"ipv4_src=192.168.0.1",
		"ipv4_src=192.168.0.1/255.255.255.0",
		"ipv4_src=192.168.0.1/255.0.255.255",
		"ipv6_src=::/ffff::",
		"vlan_vid=0x1005",
		"vlan_vid=0x1000/0x1000",
		"mpls_label=0xfefef",
		"pbb_isid=0x5",
		"tcp_src=2000",
	}
	for _, token := range tokens {
		o, n, err := ParseOne(token)
		require.NoError(t, err, token)
		assert.Equal(t, len(token), n, token)
		assert.Equal(t, token, o.String())
	}

	all := strings.Join(tokens, ",")
	o, n, err := Parse(all)
	require.NoError(t, err)
	assert.Equal(t, len(all), n)
	assert.Len(t, o.Iter(), len(tokens))
	assert.Equal(t, all, o.String())
}

func TestPrefixMask(t *testing.T) {
	token := "ipv4_src=192.168.0.1/24"
	o, n, err := ParseOne(token)
	require.NoError(t, err)
	assert.Equal(t, len(token), n)
	assert.Equal(t, []byte{192, 168, 0, 1, 255, 255, 255, 0}, []byte(o[4:]))
	assert.True(t, o.Header().HasMask())
	assert.Equal(t, 8, o.Header().Length())
}

func TestParseErrors(t *testing.T) {
	_, _, err := ParseOne("no_such_field=1")
	assert.Error(t, err)

	_, _, err = ParseOne("tcp_src")
	assert.Equal(t, ErrEmptyField, errors.Cause(err))

	_, _, err = ParseOne("tcp_src=70000")
	assert.Error(t, err)

	_, _, err = ParseOne("ipv4_src=fe80::1")
	assert.Error(t, err)
}

func TestHeader(t *testing.T) {
	o := Make(OXM_OF_TCP_SRC, []byte{0x07, 0xd0})
	assert.Equal(t, []byte{0x80, 0x00, 0x1a, 0x02, 0x07, 0xd0}, []byte(o))

	hdr := o.Header()
	assert.Equal(t, uint16(OFPXMC_OPENFLOW_BASIC), hdr.Class())
	assert.Equal(t, uint8(OFPXMT_OFB_TCP_SRC), hdr.Field())
	assert.False(t, hdr.HasMask())
	assert.Equal(t, 2, hdr.Length())
	assert.Equal(t, uint32(OXM_OF_TCP_SRC), hdr.Type())
	assert.Equal(t, []byte{0x07, 0xd0}, o.Value())
	assert.Nil(t, o.Mask())

	m := MakeMasked(OXM_OF_VLAN_VID, []byte{0x10, 0x00}, []byte{0x10, 0x00})
	assert.True(t, m.Header().HasMask())
	assert.Equal(t, []byte{0x10, 0x00}, m.Mask())
	assert.Equal(t, "vlan_vid=0x1000/0x1000", m.String())
}

func TestSplit(t *testing.T) {
	data := append(Make(OXM_OF_IP_PROTO, []byte{6}), Make(OXM_OF_TCP_DST, []byte{0, 80})...)
	seq, err := Split(data)
	require.NoError(t, err)
	require.Len(t, seq, 2)
	assert.Equal(t, "ip_proto=6", seq[0].String())
	assert.Equal(t, "tcp_dst=80", seq[1].String())

	_, err = Split(data[:len(data)-1])
	assert.Equal(t, ErrShortOxm, errors.Cause(err))

	_, err = Split([]byte{0x80, 0x00})
	assert.Equal(t, ErrShortOxm, errors.Cause(err))

	// tcp_src with a 3 byte value
	_, err = Split([]byte{0x80, 0x00, 0x1a, 0x03, 0, 0, 0})
	assert.Equal(t, ErrOxmLength, errors.Cause(err))

	// experimenter classes are not checked against the basic table
	_, err = Split([]byte{0xff, 0xff, 0x00, 0x05, 0, 0, 0x23, 0x20, 1})
	assert.NoError(t, err)

	assert.Equal(t, "tcp_src", FieldName(OFPXMT_OFB_TCP_SRC))
}

package ofp4

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestActionStrings(t *testing.T) {
	for _, a := range allActions() {
		txt := a.String()
		b, n, err := ParseAction(txt)
		require.NoError(t, err, txt)
		assert.Equal(t, len(txt), n, txt)
		assert.Equal(t, a, b, txt)
	}
}

func TestParseAction(t *testing.T) {
	tokens := []string{
		"output=2",
		"output=in_port",
		"output=all:0xffe5",
		"output=controller:0x80",
		"push_vlan=0x8100",
		"pop_mpls=0x0800",
		"set_mpls_ttl=3",
		"group=7",
		"set_queue=9",
		"copy_ttl_in",
		"dec_nw_ttl",
		"set_tcp_src=2000",
		"set_eth_dst=00:11:22:33:44:55",
		"set_vlan_vid=0x1005",
		"bsn_mirror=5:0x81000007:1",
		"bsn_set_tunnel_dst=10.0.0.1",
		"nx_dec_ttl",
	}
	for _, token := range tokens {
		a, n, err := ParseAction(token)
		require.NoError(t, err, token)
		assert.Equal(t, len(token), n, token)
		assert.Equal(t, token, a.String())
	}

	a, _, err := ParseAction("output=in_port")
	require.NoError(t, err)
	assert.Equal(t, &ActionOutput{Port: OFPP_IN_PORT, MaxLen: OFPCML_NO_BUFFER}, a)

	a, _, err = ParseAction("bsn_set_tunnel_dst=10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, &BsnSetTunnelDst{Dst: 0x0a000001}, a)
}

func TestParseActions(t *testing.T) {
	list, err := ParseActions(" output=1, push_vlan=0x8100 set_vlan_vid=0x1005,group=3")
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, &ActionOutput{Port: 1, MaxLen: OFPCML_NO_BUFFER}, list[0])
	assert.Equal(t, &ActionPushVlan{Ethertype: 0x8100}, list[1])
	assert.Equal(t, "set_vlan_vid=0x1005", list[2].String())
	assert.Equal(t, &ActionGroup{GroupId: 3}, list[3])
	assert.Equal(t, "output=1,push_vlan=0x8100,set_vlan_vid=0x1005,group=3", list.String())

	for _, bad := range []string{
		"unknown=1",
		"output=",
		"set_queue=abc",
		"set_mpls_ttl=256",
		"set_vlan_vid=0x1000/0x1000",
		"pop_vlan=1",
		"bsn_mirror=1:2",
		"bsn_set_tunnel_dst=::1",
		"set_no_such_field=1",
	} {
		_, err := ParseActions(bad)
		assert.Error(t, err, bad)
	}
}

package ofp4sw

import (
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/floodlight/oftest-sub002/oxm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func setField(t *testing.T, txt string) *ofp4.ActionSetField {
	field, _, err := oxm.Parse(txt)
	require.NoError(t, err, txt)
	return &ofp4.ActionSetField{Field: field}
}

func TestActionSetLastWriteWins(t *testing.T) {
	set := NewActionSet()
	require.NoError(t, set.Write(mustParse(t, "output=1,set_tcp_src=10")...))
	require.NoError(t, set.Write(mustParse(t, "output=2,set_udp_src=20")...))

	assert.Equal(t, 2, set.Len())
	a, ok := set.Get(KindOutput)
	require.True(t, ok)
	assert.Equal(t, uint32(2), a.(*ofp4.ActionOutput).Port)
	a, ok = set.Get(KindSetTpSrc)
	require.True(t, ok)
	assert.Equal(t, "set_udp_src=20", a.String())

	_, ok = set.Get(KindGroup)
	assert.False(t, ok)
}

func TestActionSetOrder(t *testing.T) {
	set := mustSet(t, "output=3,group=7,set_queue=1,set_eth_dst=00:00:00:00:00:01,push_vlan=0x8100,pop_mpls=0x0800,copy_ttl_in,copy_ttl_out,dec_nw_ttl")
	var kinds []string
	for _, a := range set.Actions() {
		k, err := KindOf(a)
		require.NoError(t, err)
		kinds = append(kinds, k.String())
	}
	assert.Equal(t, []string{
		"copy_ttl_in",
		"pop_mpls",
		"push_vlan",
		"dec_nw_ttl",
		"copy_ttl_out",
		"set_dl_dst",
		"set_queue",
		"group",
		"output",
	}, kinds)
	assert.Equal(t, set.Actions().String(), set.String())
}

func TestActionSetWriteAtomic(t *testing.T) {
	set := NewActionSet()
	err := set.Write(mustParse(t, "output=1,set_arp_op=2")...)
	require.Error(t, err)
	assert.Equal(t, ofp4.ErrUnsupportedField, errors.Cause(err))
	assert.Equal(t, 0, set.Len())

	require.NoError(t, set.Write(mustParse(t, "output=1,pop_vlan")...))
	assert.Equal(t, 2, set.Len())
	set.Clear()
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Actions())
}

func TestActionSetZeroValue(t *testing.T) {
	var set ActionSet
	assert.Equal(t, 0, set.Len())
	require.NoError(t, set.Write(&ofp4.ActionGroup{GroupId: 4}))
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, "group=4", set.String())
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		action ofp4.Action
		kind   Kind
	}{
		{setField(t, "tcp_src=1"), KindSetTpSrc},
		{setField(t, "udp_src=1"), KindSetTpSrc},
		{setField(t, "icmpv4_type=3"), KindSetTpSrc},
		{setField(t, "icmpv6_code=0"), KindSetTpDst},
		{setField(t, "ipv6_dst=2001:db8::1"), KindSetNwDst},
		{setField(t, "ipv4_src=10.0.0.1"), KindSetNwSrc},
		{setField(t, "ip_dscp=10"), KindSetNwTos},
		{setField(t, "ip_ecn=1"), KindSetNwEcn},
		{setField(t, "vlan_vid=0x1001"), KindSetVlanVid},
		{setField(t, "mpls_tc=1"), KindSetMplsTc},
		{&ofp4.NxDecTtl{}, KindExperimenter},
		{&ofp4.BsnSetTunnelDst{Dst: 1}, KindExperimenter},
		{&ofp4.BsnMirror{DestPort: 1}, KindExperimenter},
		{&ofp4.ActionPushPbb{Ethertype: 0x88e7}, KindPushPbb},
		{&ofp4.ActionSetNwTtl{Ttl: 1}, KindSetNwTtl},
	}
	for _, c := range cases {
		k, err := KindOf(c.action)
		if assert.NoError(t, err, c.action.String()) {
			assert.Equal(t, c.kind, k, c.action.String())
		}
	}

	for _, txt := range []string{
		"ipv4_src=10.0.0.0/8",
		"tcp_src=1,tcp_dst=2",
		"arp_op=1",
		"ipv6_nd_target=2001:db8::1",
	} {
		_, err := KindOf(setField(t, txt))
		assert.Equal(t, ofp4.ErrUnsupportedField, errors.Cause(err), txt)
	}

	_, err := KindOf(&ofp4.ActionSetField{Field: oxm.Oxm{0x80, 0x00}})
	assert.Equal(t, oxm.ErrShortOxm, errors.Cause(err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "output", KindOutput.String())
	assert.Equal(t, "copy_ttl_in", KindCopyTtlIn.String())
	assert.Equal(t, "unknown", kindCount.String())
	assert.Equal(t, "unknown", Kind(-1).String())
}

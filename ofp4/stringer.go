package ofp4

import (
	"encoding/binary"
	"fmt"
	"github.com/floodlight/oftest-sub002/oxm"
	"github.com/pkg/errors"
	"net"
	"strconv"
	"strings"
)

func parseInt(txt string, value interface{}) error {
	bitSize := 0
	switch value.(type) {
	case *uint8:
		bitSize = 8
	case *uint16:
		bitSize = 16
	case *uint32:
		bitSize = 32
	default:
		return errors.Errorf("unsupported type %T", value)
	}
	n, err := strconv.ParseUint(txt, 0, bitSize)
	if err != nil {
		return err
	}
	switch p := value.(type) {
	case *uint8:
		*p = uint8(n)
	case *uint16:
		*p = uint16(n)
	case *uint32:
		*p = uint32(n)
	}
	return nil
}

func parsePort(txt string, port *uint32) error {
	for p, name := range portNames {
		if name == txt {
			*port = p
			return nil
		}
	}
	return parseInt(txt, port)
}

// ParseAction parses the leading action token of txt, like "output=2" or
// "set_tcp_src=2000", and returns the consumed length including separators.
func ParseAction(txt string) (Action, int, error) {
	label, value, eatLen := oxm.LabeledValue(txt)

	var a Action
	var err error
	noArg := func(act Action) {
		a = act
		if value != "" {
			err = errors.Errorf("takes no argument")
		}
	}
	switch label {
	case "copy_ttl_out":
		noArg(&ActionCopyTtlOut{})
	case "copy_ttl_in":
		noArg(&ActionCopyTtlIn{})
	case "dec_mpls_ttl":
		noArg(&ActionDecMplsTtl{})
	case "pop_vlan":
		noArg(&ActionPopVlan{})
	case "dec_nw_ttl":
		noArg(&ActionDecNwTtl{})
	case "pop_pbb":
		noArg(&ActionPopPbb{})
	case "nx_dec_ttl":
		noArg(&NxDecTtl{})
	case "output":
		out := &ActionOutput{MaxLen: OFPCML_NO_BUFFER}
		vs := strings.SplitN(value, ":", 2)
		if err = parsePort(vs[0], &out.Port); err == nil && len(vs) > 1 {
			err = parseInt(vs[1], &out.MaxLen)
		}
		a = out
	case "set_mpls_ttl":
		v := &ActionSetMplsTtl{}
		err = parseInt(value, &v.Ttl)
		a = v
	case "set_nw_ttl":
		v := &ActionSetNwTtl{}
		err = parseInt(value, &v.Ttl)
		a = v
	case "push_vlan":
		v := &ActionPushVlan{}
		err = parseInt(value, &v.Ethertype)
		a = v
	case "push_mpls":
		v := &ActionPushMpls{}
		err = parseInt(value, &v.Ethertype)
		a = v
	case "pop_mpls":
		v := &ActionPopMpls{}
		err = parseInt(value, &v.Ethertype)
		a = v
	case "push_pbb":
		v := &ActionPushPbb{}
		err = parseInt(value, &v.Ethertype)
		a = v
	case "group":
		v := &ActionGroup{}
		err = parseInt(value, &v.GroupId)
		a = v
	case "set_queue":
		v := &ActionSetQueue{}
		err = parseInt(value, &v.QueueId)
		a = v
	case "bsn_mirror":
		v := &BsnMirror{}
		if vs := strings.Split(value, ":"); len(vs) != 3 {
			err = errors.Errorf("want dest_port:vlan_tag:copy_stage, got %q", value)
		} else if err = parsePort(vs[0], &v.DestPort); err == nil {
			if err = parseInt(vs[1], &v.VlanTag); err == nil {
				err = parseInt(vs[2], &v.CopyStage)
			}
		}
		a = v
	case "bsn_set_tunnel_dst":
		v := &BsnSetTunnelDst{}
		if ip := net.ParseIP(value).To4(); ip == nil {
			err = errors.Errorf("IP parse error %s", value)
		} else {
			v.Dst = binary.BigEndian.Uint32(ip)
		}
		a = v
	default:
		if !strings.HasPrefix(label, "set_") {
			return nil, 0, errors.Errorf("unknown action %q", label)
		}
		setLen := len("set_")
		o, n, e := oxm.ParseOne(txt[setLen:])
		if e != nil {
			err = e
		} else if o.Header().HasMask() {
			err = errors.Errorf("set_field takes no mask")
		} else {
			a = &ActionSetField{Field: o}
			eatLen = setLen + n
		}
	}
	if err != nil {
		return nil, 0, errors.Wrap(err, label)
	}
	return a, eatLen, nil
}

// ParseActions parses a comma or space separated action list.
func ParseActions(txt string) (ActionList, error) {
	txt = strings.TrimLeftFunc(txt, oxm.IsSeparator)
	var ret ActionList
	for cur := 0; cur < len(txt); {
		a, n, err := ParseAction(txt[cur:])
		if err != nil {
			return nil, err
		}
		ret = append(ret, a)
		cur += n
	}
	return ret, nil
}

func portString(port uint32) string {
	if name, ok := portNames[port]; ok {
		return name
	}
	return strconv.FormatUint(uint64(port), 10)
}

func (self *ActionOutput) String() string {
	if self.MaxLen == OFPCML_NO_BUFFER {
		return fmt.Sprintf("output=%s", portString(self.Port))
	}
	return fmt.Sprintf("output=%s:0x%x", portString(self.Port), self.MaxLen)
}

func (self *ActionCopyTtlOut) String() string { return "copy_ttl_out" }

func (self *ActionCopyTtlIn) String() string { return "copy_ttl_in" }

func (self *ActionDecMplsTtl) String() string { return "dec_mpls_ttl" }

func (self *ActionPopVlan) String() string { return "pop_vlan" }

func (self *ActionDecNwTtl) String() string { return "dec_nw_ttl" }

func (self *ActionPopPbb) String() string { return "pop_pbb" }

func (self *ActionSetMplsTtl) String() string {
	return fmt.Sprintf("set_mpls_ttl=%d", self.Ttl)
}

func (self *ActionSetNwTtl) String() string {
	return fmt.Sprintf("set_nw_ttl=%d", self.Ttl)
}

func (self *ActionPushVlan) String() string {
	return fmt.Sprintf("push_vlan=0x%04x", self.Ethertype)
}

func (self *ActionPushMpls) String() string {
	return fmt.Sprintf("push_mpls=0x%04x", self.Ethertype)
}

func (self *ActionPopMpls) String() string {
	return fmt.Sprintf("pop_mpls=0x%04x", self.Ethertype)
}

func (self *ActionPushPbb) String() string {
	return fmt.Sprintf("push_pbb=0x%04x", self.Ethertype)
}

func (self *ActionSetQueue) String() string {
	return fmt.Sprintf("set_queue=%d", self.QueueId)
}

func (self *ActionGroup) String() string {
	return fmt.Sprintf("group=%d", self.GroupId)
}

func (self *ActionSetField) String() string {
	return "set_" + self.Field.String()
}

func (self *BsnMirror) String() string {
	return fmt.Sprintf("bsn_mirror=%s:0x%x:%d", portString(self.DestPort), self.VlanTag, self.CopyStage)
}

func (self *BsnSetTunnelDst) String() string {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, self.Dst)
	return "bsn_set_tunnel_dst=" + ip.String()
}

func (self *NxDecTtl) String() string { return "nx_dec_ttl" }

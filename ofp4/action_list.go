package ofp4

import (
	"encoding/binary"
	"github.com/pkg/errors"
	"strings"
)

// ActionList is an ordered action sequence, as in apply-actions or packet-out.
// Duplicates are kept.
type ActionList []Action

// DecodeActions walks a concatenated sequence of action records.
func DecodeActions(data []byte) (ActionList, error) {
	var ret ActionList
	for cur := 0; cur < len(data); {
		a, err := DecodeAction(data[cur:])
		if err != nil {
			return nil, errors.Wrapf(err, "action at offset %d", cur)
		}
		ret = append(ret, a)
		cur += int(binary.BigEndian.Uint16(data[cur+2:]))
	}
	return ret, nil
}

func (self ActionList) MarshalBinary() ([]byte, error) {
	var data []byte
	for _, a := range self {
		data = append(data, Encode(a)...)
	}
	return data, nil
}

func (self *ActionList) UnmarshalBinary(data []byte) error {
	actions, err := DecodeActions(data)
	if err != nil {
		return err
	}
	*self = actions
	return nil
}

func (self ActionList) String() string {
	var ret []string
	for _, a := range self {
		ret = append(ret, a.String())
	}
	return strings.Join(ret, ",")
}

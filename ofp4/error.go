package ofp4

import (
	"encoding/binary"
	"fmt"
	"github.com/floodlight/oftest-sub002/oxm"
	"github.com/pkg/errors"
)

var (
	ErrUnknownActionType   = errors.New("unknown action type")
	ErrUnknownExperimenter = errors.New("unknown experimenter")
	ErrUnknownSubtype      = errors.New("unknown experimenter subtype")
	ErrUnexpectedEOF       = errors.New("unexpected end of action")
	ErrConstantMismatch    = errors.New("constant field mismatch")
	ErrBadLength           = errors.New("bad action length")
	ErrLengthMismatch      = errors.New("action length does not match its body")
	ErrUnsupportedField    = errors.New("unsupported set_field type")
)

// Error is an OpenFlow error type/code pair. It can be used as error.
type Error struct {
	Type uint16
	Code uint16
	Data []byte
}

func (self Error) Error() string {
	return fmt.Sprintf("type=%d code=%d", self.Type, self.Code)
}

func (self Error) MarshalBinary() ([]byte, error) {
	data := append(make([]byte, 4), self.Data...)
	binary.BigEndian.PutUint16(data[0:2], self.Type)
	binary.BigEndian.PutUint16(data[2:4], self.Code)
	return data, nil
}

// BadActionError maps an action decode failure to the OFPET_BAD_ACTION code
// a switch sends back on the control channel.
func BadActionError(err error) Error {
	code := uint16(OFPBAC_BAD_ARGUMENT)
	switch errors.Cause(err) {
	case ErrUnknownActionType, ErrConstantMismatch:
		code = OFPBAC_BAD_TYPE
	case ErrBadLength, ErrLengthMismatch, ErrUnexpectedEOF:
		code = OFPBAC_BAD_LEN
	case ErrUnknownExperimenter:
		code = OFPBAC_BAD_EXPERIMENTER
	case ErrUnknownSubtype:
		code = OFPBAC_BAD_EXP_TYPE
	case ErrUnsupportedField:
		code = OFPBAC_BAD_SET_TYPE
	case oxm.ErrShortOxm, oxm.ErrOxmLength:
		code = OFPBAC_BAD_SET_LEN
	}
	return Error{
		Type: OFPET_BAD_ACTION,
		Code: code,
	}
}

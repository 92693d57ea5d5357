package dislog

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Bytes33Size is the length of a compressed point encoding.
const Bytes33Size = 33

// Bytes33 is an exact 33-byte buffer, the wire form of a compressed point.
type Bytes33 [Bytes33Size]byte

// IdentityBytes33 is the reserved encoding of the group identity. Its prefix
// byte 0x01 is never produced by SEC1 point compression.
var IdentityBytes33 = Bytes33{1}

// Bytes33FromSlice copies b into a Bytes33. It fails with ErrParse unless b
// is exactly 33 bytes long.
func Bytes33FromSlice(b []byte) (Bytes33, error) {
	var out Bytes33
	if len(b) != Bytes33Size {
		return out, errors.Wrapf(ErrParse, "expected %d bytes, got %d", Bytes33Size, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Bytes33FromHex decodes a hex string of either case.
func Bytes33FromHex(s string) (Bytes33, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Bytes33{}, errors.Wrap(ErrParse, err.Error())
	}
	return Bytes33FromSlice(raw)
}

// Equal compares two buffers byte by byte.
func (b Bytes33) Equal(other Bytes33) bool {
	return b == other
}

// IsIdentity reports whether b is the identity sentinel.
func (b Bytes33) IsIdentity() bool {
	return b == IdentityBytes33
}

// Hex returns the upper-case hex encoding.
func (b Bytes33) Hex() string {
	return strings.ToUpper(hex.EncodeToString(b[:]))
}

func (b Bytes33) String() string {
	return b.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (b Bytes33) MarshalText() ([]byte, error) {
	return []byte(b.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes33) UnmarshalText(text []byte) error {
	v, err := Bytes33FromHex(string(text))
	if err != nil {
		return ErrInvalidEncoding
	}
	*b = v
	return nil
}

package dislog

import (
	"encoding/hex"
	"strings"
)

// EncodeHex returns the upper-case hex encoding of b.
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// ScalarFromHex decodes the text form of a scalar. It accepts the same
// lengths as Group.ScalarFromBytes; any failure is reported as
// ErrInvalidEncoding.
func ScalarFromHex(g Group, s string) (Scalar, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	v, err := g.ScalarFromBytes(raw)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return v, nil
}

// PointFromHex decodes the text form of a point. Any failure, including an
// encoding the curve rejects, is reported as ErrInvalidEncoding.
func PointFromHex(g Group, s string) (Point, error) {
	b, err := Bytes33FromHex(s)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	p, err := g.PointFromBytes(b)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return p, nil
}

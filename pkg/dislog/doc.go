// Package dislog defines the algebra of a prime-order discrete-log group:
// scalars modulo the group order, group elements, and their canonical byte
// encodings. Protocols written against these interfaces run unchanged on any
// curve backend that implements Group.
//
// Wire formats:
//
//	scalar: 32 bytes, little-endian, always reduced mod the group order
//	point:  33 bytes, SEC1 compressed (prefix 0x02 or 0x03); the identity,
//	        which has no SEC1 compressed form, is the sentinel 0x01 || 0x00*32
//
// Text forms are the upper-case hex of the byte encodings.
package dislog

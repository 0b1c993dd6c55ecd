package suuid

import (
	"encoding/base64"
	"encoding/hex"
)

// The compact form is a 22-character base-64 rendition of the 16 raw bytes.
// Instead of the RFC 4648 alphabet it uses SortableAlphabet, whose symbols
// appear in ASCII order, so the 6-bit value order and the character order
// coincide. Compact strings therefore sort exactly like the raw bytes and
// like canonical strings. The two trailing padding characters (a space
// stands in for '=') are trimmed on output.
const (
	// StandardAlphabet is the RFC 4648 base-64 alphabet.
	StandardAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	// SortableAlphabet encodes 6-bit value i as SortableAlphabet[i]. Its
	// symbols are in ascending ASCII order; changing it breaks sort
	// compatibility with every compact string ever emitted.
	SortableAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz~"

	compactPad = ' ' // sorts below every alphabet symbol, trimmed on output
	compactLen = 22
)

var compactEncoding = base64.NewEncoding(SortableAlphabet).WithPadding(compactPad)

// Compact returns the 22-character sort-preserving compact form of the UUID
func (u UUID) Compact() string {
	var buf [24]byte
	compactEncoding.Encode(buf[:], u[:])
	return string(buf[:compactLen])
}

// EncodeToHex encodes the UUID to a hexadecimal string without hyphens
func (u UUID) EncodeToHex() string {
	return hex.EncodeToString(u[:])
}

// DecodeFromCompact decodes a 22-character compact string to UUID
func DecodeFromCompact(s string) (UUID, error) {
	var uuid UUID
	if len(s) != compactLen {
		return uuid, ErrInvalidFormat
	}
	var buf [24]byte
	copy(buf[:], s)
	buf[22], buf[23] = compactPad, compactPad
	if _, err := compactEncoding.Decode(uuid[:], buf[:]); err != nil {
		return Nil, ErrInvalidFormat
	}
	return uuid, nil
}

// DecodeFromHex decodes a hexadecimal string to UUID
func DecodeFromHex(s string) (UUID, error) {
	var uuid UUID
	if len(s) != 32 {
		return uuid, ErrInvalidFormat
	}
	_, err := hex.Decode(uuid[:], []byte(s))
	if err != nil {
		return uuid, ErrInvalidFormat
	}
	return uuid, nil
}

// DecodeString parses a UUID from either of its two textual wire forms,
// detected by length and content rather than an explicit tag:
//   - exactly 22 characters from SortableAlphabet: compact form
//   - 32 hex digits after stripping braces, hyphens and urn:uuid:: canonical,
//     braced, URN or bare-hex form
//
// Anything else yields ErrInvalidFormat together with the nil UUID, so a
// caller that chooses to ignore the error falls back to Nil; a strict caller
// treats the error as fatal.
func DecodeString(s string) (UUID, error) {
	if len(s) == compactLen {
		return DecodeFromCompact(s)
	}
	return Parse(s)
}

// Decode parses a UUID from any of the three wire forms. Exactly 16 bytes
// are taken as the raw binary form; everything else goes through
// DecodeString.
func Decode(b []byte) (UUID, error) {
	if len(b) == 16 {
		var uuid UUID
		copy(uuid[:], b)
		return uuid, nil
	}
	return DecodeString(string(b))
}

// Compress parses s in any textual form and re-encodes it in the compact
// form. On a parse failure the result is the compact form of the nil UUID,
// alongside the error.
func Compress(s string) (string, error) {
	uuid, err := DecodeString(s)
	return uuid.Compact(), err
}

// CompressToBytes parses s in any textual form and returns the raw 16
// bytes. On a parse failure the result is the nil UUID's bytes, alongside
// the error.
func CompressToBytes(s string) ([]byte, error) {
	uuid, err := DecodeString(s)
	return uuid.Bytes(), err
}

// Expand parses s in any textual form and re-encodes it in the canonical
// form. On a parse failure the result is the canonical nil UUID, alongside
// the error.
func Expand(s string) (string, error) {
	uuid, err := DecodeString(s)
	return uuid.String(), err
}

// FromBytes creates a UUID from a byte slice
func FromBytes(b []byte) (UUID, error) {
	var uuid UUID
	if len(b) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], b)
	return uuid, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}

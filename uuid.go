package suuid

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strings"
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122 and
// RFC 9562. The UUID is a 128-bit (16 byte) value that is used to uniquely
// identify information.
type UUID [16]byte

// Version represents the UUID version. 0 and 15 are the nil and max
// sentinels rather than true versions.
type Version byte

const (
	VersionNil           Version = 0 // all-zero sentinel
	VersionTimeBased     Version = 1
	VersionDCESecurity   Version = 2
	VersionNameBasedMD5  Version = 3
	VersionRandom        Version = 4
	VersionNameBasedSHA1 Version = 5
	VersionTimeOrdered   Version = 6  // field-reordered, sortable variant of v1
	VersionTimeSorted    Version = 7  // UUIDv7
	VersionMax           Version = 15 // all-one sentinel
)

// DefaultVersion is generated when no version, or an unsupported one, is
// requested.
const DefaultVersion = VersionTimeSorted

// Variant represents the UUID variant
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

var (
	// Nil is the nil UUID (all zeros)
	Nil UUID

	// Max is the max UUID (all ones)
	Max = UUID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
)

// Canonical string forms of the two sentinel UUIDs.
const (
	NilUUID = "00000000-0000-0000-0000-000000000000"
	MaxUUID = "ffffffff-ffff-ffff-ffff-ffffffffffff"
)

// Version returns the version of the UUID, read directly from the stored
// bits. Foreign or future versions are returned as-is, not validated.
func (u UUID) Version() Version {
	return Version(u[6] >> 4)
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	switch {
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [36]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

// encodeHex encodes UUID to its canonical hex representation
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

var hexStripper = strings.NewReplacer("{", "", "}", "", "-", "")

// Parse parses a UUID from its hexadecimal string representation.
// Braces, hyphens and the urn:uuid: prefix are stripped first, so it
// accepts the canonical, braced, URN and bare-hex forms:
//   - xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//   - urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//   - {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
//   - xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx (without hyphens)
//
// For the 22-character compact form or raw bytes, use DecodeString or
// Decode instead.
func Parse(s string) (UUID, error) {
	var uuid UUID

	s = strings.TrimPrefix(s, "urn:uuid:")
	s = hexStripper.Replace(s)

	// Whatever the decoration was, exactly 32 hex digits must remain.
	if len(s) != 32 {
		return uuid, ErrInvalidFormat
	}
	if _, err := hex.Decode(uuid[:], []byte(s)); err != nil {
		return uuid, ErrInvalidFormat
	}
	return uuid, nil
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("suuid: Parse(%q): %v", s, err))
	}
	return uuid
}

// Bytes returns the UUID as a byte slice
func (u UUID) Bytes() []byte {
	return u[:]
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// IsMax returns true if the UUID is the max UUID (all ones)
func (u UUID) IsMax() bool {
	return u == Max
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [36]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// Both the canonical and compact forms are accepted.
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := DecodeString(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return ErrInvalidLength
	}
	copy(u[:], data)
	return nil
}

// Scan implements the sql.Scanner interface for database compatibility.
// It accepts any of the three wire forms.
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		id, err := DecodeString(src)
		if err != nil {
			return err
		}
		*u = id
		return nil
	case []byte:
		if len(src) == 0 {
			return nil
		}
		id, err := Decode(src)
		if err != nil {
			return err
		}
		*u = id
		return nil
	default:
		return fmt.Errorf("suuid: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface for database compatibility
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
// Byte-wise order agrees with canonical-string and compact-string order.
func (u UUID) Compare(other UUID) int {
	for i := 0; i < 16; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}

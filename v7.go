package suuid

import (
	"encoding/binary"
	"io"
	"time"
)

// New generates a new UUIDv7 with the current timestamp.
// This method is thread-safe and ensures monotonic ordering of UUIDs
// generated within the same millisecond.
func (g *Generator) New() (UUID, error) {
	return g.NewWithTime(g.timeNow())
}

// NewV7 is an alias for New() for explicit version specification
func (g *Generator) NewV7() (UUID, error) {
	return g.New()
}

// NewWithTime generates a new UUIDv7 with the specified timestamp.
// This method is thread-safe and ensures monotonic ordering: within one
// millisecond the rand_a field carries the low 12 bits of a dedicated
// counter, and when that counter wraps the timestamp is bumped instead.
// Instants outside the 48-bit millisecond range yield the nil or max
// sentinel together with ErrTimestampOutOfRange.
func (g *Generator) NewWithTime(t time.Time) (UUID, error) {
	ms, err := unixMilliTicks(t)
	if err != nil {
		return rangeFallback(ms)
	}
	ts, ctr, err := g.clock.nextMilli(g.randReader, ms)
	if err != nil {
		return Nil, err
	}

	var uuid UUID

	// Encode timestamp (48 bits) - bytes 0-5
	binary.BigEndian.PutUint64(uuid[0:8], uint64(ts)<<16)

	// Version nibble plus the 12-bit intra-millisecond counter - bytes 6-7
	uuid[6] = 0x70 | byte(ctr>>8)&0x0f
	uuid[7] = byte(ctr)

	// 62 bits of fresh randomness per call - bytes 8-15
	if _, err := io.ReadFull(g.randReader, uuid[8:]); err != nil {
		return Nil, err
	}

	// Set variant to RFC 4122 (10xx xxxx)
	uuid[8] = (uuid[8] & 0x3F) | 0x80

	return uuid, nil
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = suuid.Must(generator.New())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// New generates a new UUIDv7 using the default generator.
// This is a convenience function that uses the package-level generator.
func New() (UUID, error) {
	return defaultGenerator.New()
}

// NewV7 is an alias for New() for explicit version specification
func NewV7() (UUID, error) {
	return defaultGenerator.New()
}

// Timestamp extracts the version-specific integer timestamp from a
// time-based UUID: unix milliseconds for v7, 100ns gregorian ticks for
// v1/v2/v6. For v2 the low 32 timestamp bits are lost to the local
// identifier, so the value has roughly 7-minute precision. Other versions
// yield 0.
func (u UUID) Timestamp() int64 {
	switch u.Version() {
	case VersionTimeSorted:
		return int64(binary.BigEndian.Uint64(u[0:8]) >> 16)
	case VersionTimeBased:
		return int64(uint64(binary.BigEndian.Uint16(u[6:8])&0x0fff)<<48 |
			uint64(binary.BigEndian.Uint16(u[4:6]))<<32 |
			uint64(binary.BigEndian.Uint32(u[0:4])))
	case VersionDCESecurity:
		return int64(uint64(binary.BigEndian.Uint16(u[6:8])&0x0fff)<<48 |
			uint64(binary.BigEndian.Uint16(u[4:6]))<<32)
	case VersionTimeOrdered:
		return int64(uint64(binary.BigEndian.Uint32(u[0:4]))<<28 |
			uint64(binary.BigEndian.Uint16(u[4:6]))<<12 |
			uint64(binary.BigEndian.Uint16(u[6:8])&0x0fff))
	default:
		return 0
	}
}

// Time returns the timestamp of a time-based UUID as a time.Time, or the
// zero time for versions that carry none.
func (u UUID) Time() time.Time {
	switch u.Version() {
	case VersionTimeSorted:
		ms := u.Timestamp()
		return time.Unix(ms/1000, (ms%1000)*1000000)
	case VersionTimeBased, VersionDCESecurity, VersionTimeOrdered:
		ticks := u.Timestamp()
		sec := ticks/ticksPerSec - gregorianToUnixSec
		nsec := (ticks % ticksPerSec) * 100
		return time.Unix(sec, nsec)
	default:
		return time.Time{}
	}
}

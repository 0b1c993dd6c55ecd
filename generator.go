package suuid

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"
	"sync"
	"time"
)

// Input carries the per-version argument of Generate. It is a closed set:
// Name for the name-based versions, Timestamp or DateText for the
// time-based ones, V2Params for the DCE security version. A nil Input
// means "now" for time-based versions and is an error for name-based ones.
type Input interface {
	isInput()
}

// Name is the input of the name-based versions 3 and 5.
type Name string

// Timestamp is an explicit instant for the time-based versions. The zero
// time means "now".
type Timestamp time.Time

// DateText is a date-like token resolved on a best-effort basis: "now",
// epoch seconds (fractions allowed) or one of the known date layouts.
// Unresolvable text falls back to the current time.
type DateText string

// V2Params is the input of the DCE security version. ID overrides the
// domain-resolved local identifier; the zero Time means "now".
type V2Params struct {
	Domain int
	ID     *uint32
	Time   time.Time
}

func (Name) isInput()      {}
func (Timestamp) isInput() {}
func (DateText) isInput()  {}
func (V2Params) isInput()  {}

// DCE security domains understood by NewV2.
const (
	DomainPerson = 0
	DomainGroup  = 1
	DomainOrg    = 2
)

// Generator produces UUIDs of every supported version. It owns the shared
// clock state behind the time-based versions and the namespace binding
// behind the name-based ones, so distinct generators are fully independent;
// all methods are safe for concurrent use.
type Generator struct {
	clock      clock
	randReader io.Reader
	now        func() time.Time // test hook, nil means time.Now

	nsMu  sync.RWMutex
	ns    UUID
	nsSet bool
}

// NewGenerator creates a new generator with crypto/rand as the random source
func NewGenerator() *Generator {
	return &Generator{
		randReader: rand.Reader,
	}
}

// NewGeneratorWithReader creates a new generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{
		randReader: r,
	}
}

// defaultGenerator is the package-level generator used by the New* functions
var defaultGenerator = NewGenerator()

// Overridable in tests; some platforms report no group ID.
var (
	osGetuid = os.Getuid
	osGetgid = os.Getgid
)

func (g *Generator) timeNow() time.Time {
	if g.now != nil {
		return g.now()
	}
	return time.Now()
}

// timeOf resolves the instant a time-based version should encode.
func (g *Generator) timeOf(in Input) time.Time {
	switch v := in.(type) {
	case Timestamp:
		if time.Time(v).IsZero() {
			return g.timeNow()
		}
		return time.Time(v)
	case DateText:
		return resolveDateText(string(v), g.timeNow)
	case V2Params:
		if v.Time.IsZero() {
			return g.timeNow()
		}
		return v.Time
	default:
		return g.timeNow()
	}
}

// Generate produces a UUID of the requested version. Version 0 and 15
// yield the nil and max sentinels. An unsupported version falls back to
// DefaultVersion: the returned UUID is valid and err is
// ErrUnsupportedVersion, so the caller decides whether the condition is
// worth surfacing. The same contract applies to every recoverable
// condition documented on the errors: the returned UUID is a well-defined
// sentinel, never garbage.
func (g *Generator) Generate(version Version, in Input) (UUID, error) {
	switch version {
	case VersionNil:
		return Nil, nil
	case VersionMax:
		return Max, nil
	case VersionTimeBased:
		return g.NewV1WithTime(g.timeOf(in))
	case VersionDCESecurity:
		p, ok := in.(V2Params)
		if !ok {
			p = V2Params{Domain: DomainPerson}
		}
		return g.NewV2(p)
	case VersionNameBasedMD5:
		name, _ := in.(Name)
		return g.NewV3(string(name))
	case VersionRandom:
		return g.NewV4()
	case VersionNameBasedSHA1:
		name, _ := in.(Name)
		return g.NewV5(string(name))
	case VersionTimeOrdered:
		return g.NewV6WithTime(g.timeOf(in))
	case VersionTimeSorted:
		return g.NewWithTime(g.timeOf(in))
	default:
		uuid, err := g.NewWithTime(g.timeOf(in))
		if err != nil {
			return uuid, err
		}
		return uuid, ErrUnsupportedVersion
	}
}

// NewV1 generates a time-based (version 1) UUID with the current time.
func (g *Generator) NewV1() (UUID, error) {
	return g.NewV1WithTime(g.timeNow())
}

// NewV1WithTime generates a time-based (version 1) UUID for the given
// instant. Instants outside the 60-bit gregorian tick range yield the nil
// or max sentinel together with ErrTimestampOutOfRange.
func (g *Generator) NewV1WithTime(t time.Time) (UUID, error) {
	ticks, err := gregorianTicks(t)
	if err != nil {
		return rangeFallback(ticks)
	}
	ts, seq, node, err := g.clock.next(g.randReader, ticks)
	if err != nil {
		return Nil, err
	}

	// time-low(32) | time-mid(16) | version+time-high(12) |
	// variant+clock-seq(14) | node(48)
	var uuid UUID
	binary.BigEndian.PutUint32(uuid[0:4], uint32(ts))
	binary.BigEndian.PutUint16(uuid[4:6], uint16(ts>>32))
	binary.BigEndian.PutUint16(uuid[6:8], uint16(ts>>48)&0x0fff|0x1000)
	binary.BigEndian.PutUint16(uuid[8:10], seq&0x3fff|0x8000)
	copy(uuid[10:16], node[:])
	return uuid, nil
}

// NewV2 generates a DCE security (version 2) UUID. When p.ID is nil the
// identifier is resolved from the domain: the calling user for
// DomainPerson, the calling group for DomainGroup, and the top 32 bits of
// the namespace binding for DomainOrg. On platforms without group IDs the
// group falls back to the user and the returned UUID is accompanied by
// ErrGroupIDUnavailable. A negative domain yields Nil with
// ErrInvalidDomain; a domain no identifier can be resolved for, or one
// that does not fit the 8-bit domain field, yields Nil with
// ErrUnknownDomain.
func (g *Generator) NewV2(p V2Params) (UUID, error) {
	if p.Domain < 0 {
		return Nil, ErrInvalidDomain
	}
	if p.Domain > 0xff {
		return Nil, ErrUnknownDomain
	}

	var warn error
	var id uint32
	if p.ID != nil {
		id = *p.ID
	} else {
		switch p.Domain {
		case DomainPerson:
			id = uint32(osGetuid())
		case DomainGroup:
			gid := osGetgid()
			if gid < 0 {
				gid = osGetuid()
				warn = ErrGroupIDUnavailable
			}
			id = uint32(gid)
		case DomainOrg:
			ns := g.namespace()
			id = binary.BigEndian.Uint32(ns[0:4])
		default:
			return Nil, ErrUnknownDomain
		}
	}

	t := p.Time
	if t.IsZero() {
		t = g.timeNow()
	}
	ticks, err := gregorianTicks(t)
	if err != nil {
		return rangeFallback(ticks)
	}
	ts, seq, _, err := g.clock.next(g.randReader, ticks)
	if err != nil {
		return Nil, err
	}
	// The local identifier replaces time-low, so v2 values from one
	// process would collide for ~7 minutes; a fresh node per call keeps
	// them apart.
	node, err := randomNode(g.randReader)
	if err != nil {
		return Nil, err
	}

	// id(32) | time-mid(16) | version+time-high(12) |
	// variant+clock-seq-high(6) | domain(8) | node(48)
	var uuid UUID
	binary.BigEndian.PutUint32(uuid[0:4], id)
	binary.BigEndian.PutUint16(uuid[4:6], uint16(ts>>32))
	binary.BigEndian.PutUint16(uuid[6:8], uint16(ts>>48)&0x0fff|0x2000)
	uuid[8] = 0x80 | byte(seq>>8)&0x3f
	uuid[9] = byte(p.Domain)
	copy(uuid[10:16], node[:])
	return uuid, warn
}

// NewV3 generates a name-based MD5 (version 3) UUID of name under the
// generator's namespace binding. An empty name yields Nil with
// ErrMissingName.
func (g *Generator) NewV3(name string) (UUID, error) {
	if name == "" {
		return Nil, ErrMissingName
	}
	return NewMD5(g.namespace(), name), nil
}

// NewV4 generates a random (version 4) UUID.
func (g *Generator) NewV4() (UUID, error) {
	var uuid UUID
	if _, err := io.ReadFull(g.randReader, uuid[:]); err != nil {
		return Nil, err
	}
	uuid[6] = uuid[6]&0x0f | 0x40
	uuid[8] = uuid[8]&0x3f | 0x80
	return uuid, nil
}

// NewV5 generates a name-based SHA-1 (version 5) UUID of name under the
// generator's namespace binding. An empty name yields Nil with
// ErrMissingName.
func (g *Generator) NewV5(name string) (UUID, error) {
	if name == "" {
		return Nil, ErrMissingName
	}
	return NewSHA1(g.namespace(), name), nil
}

// NewV6 generates a time-ordered (version 6) UUID with the current time.
func (g *Generator) NewV6() (UUID, error) {
	return g.NewV6WithTime(g.timeNow())
}

// NewV6WithTime generates a time-ordered (version 6) UUID for the given
// instant. The 60-bit gregorian timestamp is stored most significant bits
// first, so byte-wise order of the values matches chronological order.
func (g *Generator) NewV6WithTime(t time.Time) (UUID, error) {
	ticks, err := gregorianTicks(t)
	if err != nil {
		return rangeFallback(ticks)
	}
	ts, seq, node, err := g.clock.next(g.randReader, ticks)
	if err != nil {
		return Nil, err
	}

	// time-high(32) | time-mid(16) | version+time-low(12) |
	// variant+clock-seq(14) | node(48)
	var uuid UUID
	binary.BigEndian.PutUint32(uuid[0:4], uint32(ts>>28))
	binary.BigEndian.PutUint16(uuid[4:6], uint16(ts>>12))
	binary.BigEndian.PutUint16(uuid[6:8], uint16(ts)&0x0fff|0x6000)
	binary.BigEndian.PutUint16(uuid[8:10], seq&0x3fff|0x8000)
	copy(uuid[10:16], node[:])
	return uuid, nil
}

// SetNamespace binds the namespace used by the name-based versions (and
// DomainOrg identifier resolution). Any textual form is accepted. An
// invalid string leaves the binding unchanged and returns
// ErrInvalidNamespace: a silently corrupted namespace would corrupt every
// subsequent name-based UUID.
func (g *Generator) SetNamespace(s string) error {
	ns, err := DecodeString(s)
	if err != nil {
		return ErrInvalidNamespace
	}
	g.nsMu.Lock()
	g.ns = ns
	g.nsSet = true
	g.nsMu.Unlock()
	return nil
}

// Namespace returns the canonical form of the current namespace binding,
// NamespaceDNS unless one was set.
func (g *Generator) Namespace() string {
	return g.namespace().String()
}

// ResetNamespace drops an explicit binding, restoring the default.
func (g *Generator) ResetNamespace() {
	g.nsMu.Lock()
	g.ns = Nil
	g.nsSet = false
	g.nsMu.Unlock()
}

func (g *Generator) namespace() UUID {
	g.nsMu.RLock()
	defer g.nsMu.RUnlock()
	if g.nsSet {
		return g.ns
	}
	return NamespaceDNS
}

// SetNodeID installs an explicit 48-bit node identifier for v1/v6, for
// deployments that assign node IDs externally instead of using the random
// default. The multicast bit is forced since the value is not a MAC
// address. id must be 6 bytes.
func (g *Generator) SetNodeID(id []byte) error {
	return g.clock.setNode(id)
}

// reset clears the generator's clock state. Test hook only.
func (g *Generator) reset() {
	g.clock.reset()
}

// NewV1 generates a version 1 UUID using the default generator.
func NewV1() (UUID, error) { return defaultGenerator.NewV1() }

// NewV2 generates a version 2 UUID using the default generator.
func NewV2(p V2Params) (UUID, error) { return defaultGenerator.NewV2(p) }

// NewV3 generates a version 3 UUID using the default generator.
func NewV3(name string) (UUID, error) { return defaultGenerator.NewV3(name) }

// NewV4 generates a version 4 UUID using the default generator.
func NewV4() (UUID, error) { return defaultGenerator.NewV4() }

// NewV5 generates a version 5 UUID using the default generator.
func NewV5(name string) (UUID, error) { return defaultGenerator.NewV5(name) }

// NewV6 generates a version 6 UUID using the default generator.
func NewV6() (UUID, error) { return defaultGenerator.NewV6() }

// Generate produces a UUID of the requested version using the default
// generator.
func Generate(version Version, in Input) (UUID, error) {
	return defaultGenerator.Generate(version, in)
}

// SetNamespace binds the default generator's namespace.
func SetNamespace(s string) error { return defaultGenerator.SetNamespace(s) }

// Namespace returns the default generator's namespace binding.
func Namespace() string { return defaultGenerator.Namespace() }

// ResetNamespace restores the default generator's default namespace.
func ResetNamespace() { defaultGenerator.ResetNamespace() }

// SetNodeID installs the default generator's node identifier.
func SetNodeID(id []byte) error { return defaultGenerator.SetNodeID(id) }

package suuid

import (
	"crypto/md5"
	"crypto/sha1"
	"hash"
)

// Predefined namespace UUIDs from RFC 4122 appendix C.
var (
	NamespaceDNS  = MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	NamespaceURL  = MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	NamespaceOID  = MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
	NamespaceX500 = MustParse("6ba7b814-9dad-11d1-80b4-00c04fd430c8")
)

// hashUUID digests the namespace's binary form followed by the name and
// keeps the first 128 bits, then overwrites the version and variant bits
// per RFC 4122 section 4.3.
func hashUUID(h hash.Hash, ns UUID, name string, v Version) UUID {
	h.Write(ns[:])
	h.Write([]byte(name))
	sum := h.Sum(nil)

	var uuid UUID
	copy(uuid[:], sum[:16])
	uuid[6] = uuid[6]&0x0f | byte(v)<<4
	uuid[8] = uuid[8]&0x3f | 0x80
	return uuid
}

// NewMD5 returns the version 3 UUID of name within the given namespace.
// The result is deterministic: the same namespace and name always hash to
// the same UUID.
func NewMD5(ns UUID, name string) UUID {
	return hashUUID(md5.New(), ns, name, VersionNameBasedMD5)
}

// NewSHA1 returns the version 5 UUID of name within the given namespace.
func NewSHA1(ns UUID, name string) UUID {
	return hashUUID(sha1.New(), ns, name, VersionNameBasedSHA1)
}

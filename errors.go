package suuid

import "errors"

var (
	// ErrInvalidFormat indicates that the input is none of the three wire
	// forms (canonical/hex text, 22-character compact text, 16 raw bytes)
	ErrInvalidFormat = errors.New("suuid: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("suuid: invalid UUID length (expected 16 bytes)")

	// ErrUnsupportedVersion indicates that Generate was asked for a version
	// outside the supported set; the returned UUID is a default-version fallback
	ErrUnsupportedVersion = errors.New("suuid: unsupported UUID version")

	// ErrMissingName indicates that a name-based version (3 or 5) was requested
	// without a name; the returned UUID is Nil
	ErrMissingName = errors.New("suuid: name-based UUID requested without a name")

	// ErrInvalidDomain indicates a negative DCE security domain; the returned
	// UUID is Nil
	ErrInvalidDomain = errors.New("suuid: negative DCE security domain")

	// ErrUnknownDomain indicates a DCE security domain for which no local
	// identifier can be resolved, or one that does not fit the 8-bit domain
	// field; the returned UUID is Nil
	ErrUnknownDomain = errors.New("suuid: unknown DCE security domain")

	// ErrGroupIDUnavailable indicates that the platform reports no group ID
	// and the calling user's ID was substituted; the returned UUID is valid
	ErrGroupIDUnavailable = errors.New("suuid: group ID unavailable, substituted user ID")

	// ErrTimestampOutOfRange indicates that the requested instant does not fit
	// the version's timestamp field; the returned UUID is Nil (before the
	// epoch) or Max (past the end of the encodable range)
	ErrTimestampOutOfRange = errors.New("suuid: timestamp outside the encodable range")

	// ErrInvalidNamespace indicates that SetNamespace was given a string that
	// does not parse as a UUID; the binding is left unchanged
	ErrInvalidNamespace = errors.New("suuid: invalid namespace UUID")
)

package suuid_test

import (
	"bytes"
	"testing"

	guuid "github.com/google/uuid"

	"github.com/lab2439/suuid"
)

// Cross-validation against github.com/google/uuid: the canonical and
// binary forms must be interchangeable between the two implementations.

func TestInterop_CanonicalStrings(t *testing.T) {
	gen := suuid.NewGenerator()

	constructors := map[string]func() (suuid.UUID, error){
		"v1": gen.NewV1,
		"v4": gen.NewV4,
		"v6": gen.NewV6,
		"v7": gen.New,
	}

	for name, newUUID := range constructors {
		t.Run(name, func(t *testing.T) {
			ours, err := newUUID()
			if err != nil {
				t.Fatalf("generation error = %v", err)
			}

			theirs, err := guuid.Parse(ours.String())
			if err != nil {
				t.Fatalf("google/uuid rejected %q: %v", ours.String(), err)
			}
			if !bytes.Equal(theirs[:], ours.Bytes()) {
				t.Errorf("byte mismatch: %x vs %x", theirs[:], ours.Bytes())
			}
			if byte(theirs.Version()) != byte(ours.Version()) {
				t.Errorf("version mismatch: %d vs %d", theirs.Version(), ours.Version())
			}
		})
	}
}

func TestInterop_ParseTheirs(t *testing.T) {
	theirs := guuid.New() // v4

	ours, err := suuid.Parse(theirs.String())
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", theirs.String(), err)
	}
	if !bytes.Equal(ours.Bytes(), theirs[:]) {
		t.Errorf("byte mismatch: %x vs %x", ours.Bytes(), theirs[:])
	}
	if ours.String() != theirs.String() {
		t.Errorf("canonical mismatch: %q vs %q", ours.String(), theirs.String())
	}
}

func TestInterop_NameBased(t *testing.T) {
	names := []string{"example.com", "python.org", "widgets.example"}

	for _, name := range names {
		ourV5 := suuid.NewSHA1(suuid.NamespaceDNS, name)
		theirV5 := guuid.NewSHA1(guuid.NameSpaceDNS, []byte(name))
		if ourV5.String() != theirV5.String() {
			t.Errorf("v5(%q): %v vs %v", name, ourV5, theirV5)
		}

		ourV3 := suuid.NewMD5(suuid.NamespaceDNS, name)
		theirV3 := guuid.NewMD5(guuid.NameSpaceDNS, []byte(name))
		if ourV3.String() != theirV3.String() {
			t.Errorf("v3(%q): %v vs %v", name, ourV3, theirV3)
		}
	}
}

func TestInterop_CompactSurvivesForeignValues(t *testing.T) {
	// Values minted elsewhere round-trip through the compact codec.
	for i := 0; i < 100; i++ {
		theirs := guuid.New()
		ours, err := suuid.FromBytes(theirs[:])
		if err != nil {
			t.Fatalf("FromBytes() error = %v", err)
		}
		back, err := suuid.DecodeFromCompact(ours.Compact())
		if err != nil {
			t.Fatalf("DecodeFromCompact() error = %v", err)
		}
		if back != ours {
			t.Errorf("compact round trip lost %v", ours)
		}
	}
}

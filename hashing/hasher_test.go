package hashing_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/bcrypt-identity/hashing"
)

func TestParseHash_Valid(t *testing.T) {
	info, err := hashing.ParseHash(legacyHash)
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	want := hashing.HashInfo{
		Version:  "2a",
		Cost:     10,
		Salt:     "SpIhzEv3ATLa0CmTz4L7ou",
		Checksum: "An/w5NyedFic5X3fKaI9eu0xhW97OUC",
	}
	if info != want {
		t.Errorf("ParseHash = %+v, want %+v", info, want)
	}
}

func TestParseHash_Versions(t *testing.T) {
	payload := legacyHash[len("$2a$10$"):]
	for _, v := range []string{"2", "2a", "2b", "2x", "2y"} {
		info, err := hashing.ParseHash("$" + v + "$10$" + payload)
		if err != nil {
			t.Errorf("version %s: %v", v, err)
			continue
		}
		if info.Version != v {
			t.Errorf("version %s: got %s", v, info.Version)
		}
	}
}

func TestParseHash_Malformed(t *testing.T) {
	payload := legacyHash[len("$2a$10$"):]
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"no leading dollar", "2a$10$" + payload},
		{"unknown version", "$3a$10$" + payload},
		{"argon2", "$argon2id$v=19$m=65536,t=3,p=2$abc$def"},
		{"single digit cost", "$2a$9$" + payload},
		{"non-numeric cost", "$2a$1x$" + payload},
		{"signed cost", "$2a$+9$" + payload},
		{"negative cost", "$2a$-9$" + payload},
		{"spaced cost", "$2a$ 9$" + payload},
		{"cost below minimum", "$2a$03$" + payload},
		{"cost above maximum", "$2a$32$" + payload},
		{"payload too short", "$2a$10$" + payload[1:]},
		{"payload too long", "$2a$10$" + payload + "A"},
		{"invalid character", "$2a$10$" + strings.Replace(payload, "S", "+", 1)},
		{"extra segment", "$2a$10$" + payload + "$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hashing.ParseHash(tt.hash)
			if !errors.Is(err, hashing.ErrMalformedHash) {
				t.Errorf("expected ErrMalformedHash, got %v", err)
			}
			if hashing.IsBcrypt(tt.hash) {
				t.Error("IsBcrypt = true for malformed hash")
			}
		})
	}
}

func TestIsBcrypt(t *testing.T) {
	if !hashing.IsBcrypt(legacyHash) {
		t.Error("IsBcrypt = false for valid hash")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome     hashing.Outcome
		str         string
		ok          bool
		needsRehash bool
	}{
		{hashing.Failed, "failed", false, false},
		{hashing.Success, "success", true, false},
		{hashing.SuccessRehashNeeded, "success_rehash_needed", true, true},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if tt.outcome.OK() != tt.ok {
			t.Errorf("%s: OK() = %v", tt.str, !tt.ok)
		}
		if tt.outcome.NeedsRehash() != tt.needsRehash {
			t.Errorf("%s: NeedsRehash() = %v", tt.str, !tt.needsRehash)
		}
	}
	var zero hashing.Outcome
	if zero != hashing.Failed {
		t.Error("zero Outcome must be Failed")
	}
}

func TestArgumentError_Message(t *testing.T) {
	err := &hashing.ArgumentError{Param: "hash"}
	if !strings.Contains(err.Error(), `"hash"`) {
		t.Errorf("Error() = %q, want parameter name", err.Error())
	}
}

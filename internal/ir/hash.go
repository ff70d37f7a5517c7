package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainDefinitions is the domain prefix for the definitions fingerprint.
// The version suffix enables future algorithm migration.
const DomainDefinitions = "astgen/definitions/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes a content-addressed identity for a Definitions
// value over its canonical JSON form. The fingerprint is stable across
// runs and token-map insertion order, so downstream regeneration tooling
// can detect whether a compiled schema actually changed.
func Fingerprint(d *Definitions) (string, error) {
	canonical, err := MarshalCanonical(d)
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainDefinitions, canonical), nil
}

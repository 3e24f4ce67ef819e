// Package signer provides the keyed-hash primitives and nonce source used
// to authenticate exchange requests. The exact message composition is
// venue-specific and lives in each adapter; this package only guarantees
// correct HMAC computation and a strictly increasing nonce.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
)

// Hash identifies the digest of an HMAC signature.
type Hash int

// Supported digests.
const (
	// SHA256 is the most common signing digest.
	SHA256 Hash = iota
	// SHA384 is used by a handful of venues.
	SHA384
	// SHA512 is used by venues with base64-encoded signatures.
	SHA512
)

func (h Hash) new() func() hash.Hash {
	switch h {
	case SHA384:
		return sha512.New384
	case SHA512:
		return sha512.New
	default:
		return sha256.New
	}
}

// HMAC computes the keyed hash of message.
func HMAC(h Hash, message, secret []byte) []byte {
	mac := hmac.New(h.new(), secret)
	mac.Write(message)
	return mac.Sum(nil)
}

// HexHMAC computes the keyed hash of message, hex-encoded.
func HexHMAC(h Hash, message, secret string) string {
	return hex.EncodeToString(HMAC(h, []byte(message), []byte(secret)))
}

// Base64HMAC computes the keyed hash of message, base64-encoded.
func Base64HMAC(h Hash, message, secret string) string {
	return base64.StdEncoding.EncodeToString(HMAC(h, []byte(message), []byte(secret)))
}

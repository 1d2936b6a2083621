// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import "crypto/sha1"

// sha1Sum computes the FIPS-180-1 SHA-1 digest of data. SPEC_FULL.md
// §9 Decision D4: uses the standard library directly since no
// third-party SHA-1 package appears anywhere in the examples pack, and
// Go's crypto/sha1 is a conformant implementation.
func sha1Sum(data []byte) [20]byte {
	return sha1.Sum(data)
}

// publicKeyToken derives the canonical .NET public-key token from a
// full public key: the last 8 bytes of its SHA-1 hash, reversed.
// spec.md §4.8.
func publicKeyToken(publicKey []byte) [8]byte {
	digest := sha1Sum(publicKey)
	var token [8]byte
	for i := 0; i < 8; i++ {
		token[i] = digest[19-i]
	}
	return token
}

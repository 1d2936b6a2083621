// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package clrmeta

import (
	"encoding/hex"
	"testing"
)

// TestSHA1Vectors covers spec.md §8 scenarios (a) and (b).
func TestSHA1Vectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
	}
	for _, tt := range tests {
		got := sha1Sum([]byte(tt.in))
		if hex.EncodeToString(got[:]) != tt.want {
			t.Errorf("sha1Sum(%q) = %x, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPublicKeyToken(t *testing.T) {
	token := publicKeyToken([]byte("abc"))
	want := []byte{0x9d, 0xd8, 0xd0, 0x9c, 0x6c, 0xc2, 0x50, 0x78}
	if string(token[:]) != string(want) {
		t.Errorf("publicKeyToken(\"abc\") = %x, want %x", token, want)
	}
}

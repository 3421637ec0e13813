// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/corplan/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies a hashed password checks out against its
original plaintext and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", digest))
	assert.False(t, sec.CheckPasswordHash("correct horse battery stapleX", digest))
	assert.False(t, sec.CheckPasswordHash("", digest))
}

/*
TestHashPassword_SaltIsRandom confirms two hashes of the same plaintext differ.
*/
func TestHashPassword_SaltIsRandom(t *testing.T) {
	first, err := sec.HashPassword("same-input")
	require.NoError(t, err)
	second, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same-input", first))
	assert.True(t, sec.CheckPasswordHash("same-input", second))
}

/*
TestCheckPasswordHash_FailsClosed covers malformed and empty digests.
*/
func TestCheckPasswordHash_FailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty_digest", ""},
		{"not_bcrypt", "plaintext-stored-by-accident"},
		{"truncated_digest", "$2a$10$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("anything", tt.digest))
		})
	}
}

/*
TestBurnPasswordCheck only asserts the burn path completes; its purpose is
timing parity on the unknown-email path, which is a property of bcrypt cost,
not something a wall-clock assertion could check reliably in CI.
*/
func TestBurnPasswordCheck(t *testing.T) {
	assert.NotPanics(t, func() {
		sec.BurnPasswordCheck("any password at all")
		sec.BurnPasswordCheck("")
	})
}

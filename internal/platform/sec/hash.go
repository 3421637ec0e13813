// Copyright (c) 2026 Corplan. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyDigest is a valid bcrypt digest of a throwaway value. The credential
// verifier compares against it when an email lookup misses, so the
// lookup-miss and hash-mismatch paths cost comparable wall-clock time and
// account enumeration via timing is not possible.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The salt is randomized per call: hashing the same plaintext twice yields
// different digests.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// It fails closed: a mismatch, an empty digest, or a malformed digest
// (e.g. from data corruption) all return false. It never returns an error
// to the caller.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// BurnPasswordCheck performs a bcrypt comparison against the dummy digest.
//
// Called on the unknown-email path of authentication so its cost matches a
// real password check. The result is always a mismatch and is discarded.
func BurnPasswordCheck(plainTextPassword string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(plainTextPassword))
}

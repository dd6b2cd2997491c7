// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package idgen makes short identifiers for requests and cache busting.
*/
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// entropyBytes is the number of random bytes appended to the timestamp.
const entropyBytes = 3

// Make makes a short ID with a 6 character timestamp and 3 bytes of entropy.
func Make() string {
	return makeAt(time.Now())
}

func makeAt(t time.Time) string {
	var entropy [entropyBytes]byte

	_, _ = rand.Read(entropy[:])

	return timePart(t) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

// timePart renders the wall clock as HHMMSS.
func timePart(t time.Time) string {
	return t.Format("150405")
}

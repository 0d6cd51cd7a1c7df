// Package identity derives the stable dedup keys for a job posting.
//
// Both keys are pure functions of the visible content fields, never of
// observation time or URL, so identical posting text hashes to the identical
// key on every run. MD5 is a dedup key here, not a security boundary.
package identity

import (
	"crypto/md5"
	"encoding/hex"
)

// JobIDLength is the truncated hex length of a job id.
const JobIDLength = 12

// Fingerprint returns the content-addressed dedup key over
// (title, location, team). This is the primary uniqueness key.
func Fingerprint(title, location, team string) string {
	sum := md5.Sum([]byte(title + location + team))
	return hex.EncodeToString(sum[:])
}

// JobID returns the short identifier over (title, location). It approximates
// "same job slot" and is allowed to collide across distinct postings that
// share title+location text; callers that hit a collision can fall back to
// WidenJobID.
func JobID(title, location string) string {
	sum := md5.Sum([]byte(title + location))
	return hex.EncodeToString(sum[:])[:JobIDLength]
}

// WidenJobID derives an alternative job id from a fingerprint. Used when the
// (title, location) id collides with a record holding a different
// fingerprint: the fingerprint prefix keys off team as well, so two postings
// with distinct content get distinct widened ids. Still deterministic.
func WidenJobID(fingerprint string) string {
	if len(fingerprint) < JobIDLength {
		return fingerprint
	}
	return fingerprint[:JobIDLength]
}

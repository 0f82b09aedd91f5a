package auth

import "time"

// DefaultExpiresInMins is the validity window used when a caller passes 0.
const DefaultExpiresInMins = 5

// ExpiryPolicy computes the credential expiry field from the current time
// and a validity window in minutes.
type ExpiryPolicy func(now time.Time, expiresInMins int) int64

// CompatExpiry reproduces the arithmetic deployed fleets were provisioned
// against: sixty units per minute added to an epoch-millisecond clock. The
// result is neither milliseconds nor seconds; receivers that accept these
// credentials compare against the same arithmetic. It is the default policy.
func CompatExpiry(now time.Time, expiresInMins int) int64 {
	return now.UnixMilli() + int64(expiresInMins)*60
}

// CorrectedExpiry is the conventional shared-access-signature arithmetic:
// epoch seconds plus sixty seconds per minute. Use it only against receivers
// that validate real timestamps.
func CorrectedExpiry(now time.Time, expiresInMins int) int64 {
	return now.Unix() + int64(expiresInMins)*60
}

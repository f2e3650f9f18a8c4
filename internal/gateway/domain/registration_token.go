package domain

import "time"

// RegistrationToken gates passkey enrollment: each token admits exactly one
// registration ceremony. Valid iff UsedAt is unset and ExpiresAt is in the
// future. The token string itself is the primary key; it is random enough
// (256 bits) that storing it raw is acceptable for a single-operator host.
type RegistrationToken struct {
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// Valid reports whether the token is still consumable at the given instant.
// This is advisory only; consumption itself is a conditional write in the
// store so concurrent redeemers cannot double-spend.
func (t RegistrationToken) Valid(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

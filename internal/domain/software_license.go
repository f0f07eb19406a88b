package domain

import "time"

// SoftwareLicense is a purchasable license that can be installed on assets.
// A nil MaxInstallations means unlimited seats.
type SoftwareLicense struct {
	ID               int64
	SoftwareName     string
	MaxInstallations *int32
	ExpirationDate   time.Time
}

// Expired reports whether the license has lapsed at the given instant.
func (l *SoftwareLicense) Expired(now time.Time) bool {
	return l.ExpirationDate.Before(now)
}

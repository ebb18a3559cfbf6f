// Package timeutil provides Korea Standard Time helpers for user-facing
// timestamps. Token expiry math stays in UTC and does not go through here.
package timeutil

import "time"

var kst = loadKST()

// loadKST resolves Asia/Seoul from the tz database, falling back to a fixed
// UTC+9 zone on systems without tzdata.
func loadKST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}

// Location returns the KST location.
func Location() *time.Location {
	return kst
}

// Now returns the current time in KST.
func Now() time.Time {
	return time.Now().In(kst)
}

// Today returns the current KST date as YYYY-MM-DD.
func Today() string {
	return Now().Format("2006-01-02")
}

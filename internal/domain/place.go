package domain

import "time"

// A cached geocoding result keyed by the exact address string.
// Coords stays nil until a lookup succeeds; a row with nil Coords means a
// lookup was already attempted and failed, and no retry will happen for the
// lifetime of the row.
type Place struct {
	Address      string
	Coords       *Coordinates
	RegisteredAt time.Time
}

package models

import "time"

// Listing is implemented by *Job and *Internship.
type Listing interface {
	PublicID() string
	Stamp(id string, now time.Time)
}

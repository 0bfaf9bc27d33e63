package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership durations offered to vendors.
const (
	DurationSixMonths = "6 months"
	DurationOneYear   = "1 year"
	DurationTwoYears  = "2 years"
)

// Membership statuses.
const (
	MembershipActive    = "active"
	MembershipCancelled = "cancelled"
	MembershipExpired   = "expired"
)

// Membership represents a vendor's subscription window. A vendor may hold
// more than one membership record; no uniqueness is enforced.
type Membership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VendorID  primitive.ObjectID `bson:"vendor_id" json:"vendor_id"`
	StartDate time.Time          `bson:"start_date" json:"start_date"`
	EndDate   time.Time          `bson:"end_date" json:"end_date"`
	Duration  string             `bson:"duration" json:"duration"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// DurationEnd returns the end date for a membership starting at start with
// the given duration. Month and year arithmetic is calendar-aware, not a
// fixed day count. An unknown duration falls back to 6 months.
func DurationEnd(start time.Time, duration string) time.Time {
	switch duration {
	case DurationOneYear:
		return start.AddDate(1, 0, 0)
	case DurationTwoYears:
		return start.AddDate(2, 0, 0)
	default:
		return start.AddDate(0, 6, 0)
	}
}

// ExtendEnd pushes end forward by the given number of months. The extension
// is applied to the current end date, not to the present time.
func ExtendEnd(end time.Time, months int) time.Time {
	return end.AddDate(0, months, 0)
}

// DaysRemaining returns the number of whole days until end, rounded up.
// Negative values mean the membership window has already passed.
func DaysRemaining(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

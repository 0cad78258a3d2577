package models

import "time"

// Booking request statuses.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
)

// Booking is a request from a user to a vendor for one of the listing
// categories. Details is free-form; its shape depends on the category.
type Booking struct {
	BookingID string         `json:"id" bson:"bookingid"`
	UserID    string         `json:"userId" bson:"userid"`
	VendorID  string         `json:"vendorId" bson:"vendorid"`
	ListingID string         `json:"listingId,omitempty" bson:"listingid,omitempty"`
	Category  string         `json:"category" bson:"category"`
	Status    string         `json:"status" bson:"status"`
	Message   string         `json:"message,omitempty" bson:"message,omitempty"`
	Details   map[string]any `json:"details" bson:"details"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

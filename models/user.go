package models

import "time"

// User roles.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// Vendor approval statuses share the listing status vocabulary.
const (
	VendorPending  = "pending"
	VendorApproved = "approved"
	VendorRejected = "rejected"
)

// VendorProfile is embedded in vendor users. Categories is the non-empty
// subset of listing categories the vendor is allowed to publish under.
type VendorProfile struct {
	Categories     []string   `json:"categories" bson:"categories"`
	ApprovalStatus string     `json:"approvalStatus" bson:"approvalStatus"`
	ApprovedAt     *time.Time `json:"approvedAt" bson:"approvedAt"`
}

type User struct {
	UserID     string         `json:"userId" bson:"userid"`
	FirstName  string         `json:"firstName" bson:"firstName"`
	LastName   string         `json:"lastName" bson:"lastName"`
	Email      string         `json:"email" bson:"email"`
	Phone      string         `json:"phone" bson:"phone"`
	Password   string         `json:"-" bson:"password"`
	Role       string         `json:"role" bson:"role"`
	Vendor     *VendorProfile `json:"vendor,omitempty" bson:"vendor,omitempty"`
	IsVerified bool           `json:"isVerified" bson:"isVerified"`
	IsActive   bool           `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}

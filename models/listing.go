package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Listing categories. The set is closed; details validation dispatches on it.
const (
	CategoryHotel      = "hotel"
	CategoryShortlet   = "shortlet"
	CategoryRestaurant = "restaurant"
	CategoryServices   = "services"
	CategoryEvent      = "event"
)

// Categories returns the fixed category enumeration.
func Categories() []string {
	return []string{CategoryHotel, CategoryShortlet, CategoryRestaurant, CategoryServices, CategoryEvent}
}

func IsValidCategory(c string) bool {
	switch c {
	case CategoryHotel, CategoryShortlet, CategoryRestaurant, CategoryServices, CategoryEvent:
		return true
	}
	return false
}

// Listing statuses. Listings are created pending and moved by an admin.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Location struct {
	Address     string       `json:"address" bson:"address"`
	Area        string       `json:"area" bson:"area"`
	Geolocation *Coordinates `json:"geolocation,omitempty" bson:"geolocation,omitempty"`
}

type ContactInformation struct {
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
}

// ImageRef is an image reference in its canonical structured form. Historical
// records stored bare URL strings; both encodings decode into this type, and
// only the structured form is ever written back.
type ImageRef struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id,omitempty" bson:"public_id,omitempty"`
}

// UnmarshalJSON accepts either a bare URL string (legacy) or the structured
// {url, public_id} object.
func (ir *ImageRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		ir.URL = url
		ir.PublicID = ""
		return nil
	}
	type plain ImageRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*ir = ImageRef(p)
	return nil
}

// UnmarshalBSONValue accepts both the legacy string encoding and the
// structured document encoding found in older collections.
func (ir *ImageRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		rv := bson.RawValue{Type: t, Value: data}
		url, ok := rv.StringValueOK()
		if !ok {
			return fmt.Errorf("image: malformed string value")
		}
		ir.URL = url
		ir.PublicID = ""
		return nil
	case bsontype.EmbeddedDocument:
		type plain ImageRef
		var p plain
		if err := bson.Unmarshal(data, &p); err != nil {
			return err
		}
		*ir = ImageRef(p)
		return nil
	default:
		return fmt.Errorf("image: unsupported bson type %s", t)
	}
}

// Listing is a vendor-published offering in one of the fixed categories.
// Details carries the category-specific payload validated by the details
// package before any write.
type Listing struct {
	ListingID   string             `json:"id" bson:"listingid"`
	VendorID    string             `json:"vendorId" bson:"vendorid"`
	Category    string             `json:"category" bson:"category"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Location    Location           `json:"location" bson:"location"`
	Contact     ContactInformation `json:"contactInformation" bson:"contactInformation"`
	Images      []ImageRef         `json:"images" bson:"images"`
	Status      string             `json:"status" bson:"status"`
	ApprovedAt  *time.Time         `json:"approvedAt" bson:"approvedAt"`
	Details     map[string]any     `json:"details" bson:"details"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ListingInput is the caller-facing create/update payload.
type ListingInput struct {
	Category    string             `json:"category"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Location    Location           `json:"location"`
	Contact     ContactInformation `json:"contactInformation"`
	Images      []ImageRef         `json:"images"`
	Details     map[string]any     `json:"details"`
}

package listings

import (
	"time"

	"soko/apperrors"
	"soko/models"
)

// UpdatePatch is the partial update payload. Nil fields are left untouched.
// Category is accepted but never applied: naive clients resubmit the full
// record, and changing the category would invalidate the stored details.
type UpdatePatch struct {
	Category    *string                    `json:"category"`
	Title       *string                    `json:"title"`
	Description *string                    `json:"description"`
	Price       *float64                   `json:"price"`
	Location    *models.Location           `json:"location"`
	Contact     *models.ContactInformation `json:"contactInformation"`
	Images      []models.ImageRef          `json:"images"`
	Details     map[string]any             `json:"details"`
}

// Apply merges the patch into a copy of the existing listing. The category
// stays whatever it was at creation time.
func (p UpdatePatch) Apply(existing models.Listing, now time.Time) models.Listing {
	merged := existing

	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.Price != nil {
		merged.Price = *p.Price
	}
	if p.Location != nil {
		merged.Location = *p.Location
	}
	if p.Contact != nil {
		merged.Contact = *p.Contact
	}
	if p.Images != nil {
		merged.Images = p.Images
	}
	if p.Details != nil {
		merged.Details = p.Details
	}
	merged.UpdatedAt = now

	return merged
}

// Transition moves a listing between moderation statuses. Only pending
// listings have defined transitions; approval stamps approvedAt, rejection
// clears it.
func Transition(l *models.Listing, to string, now time.Time) error {
	if l.Status != models.StatusPending {
		return apperrors.Validation("status", "only pending listings can be moderated")
	}
	switch to {
	case models.StatusApproved:
		l.Status = models.StatusApproved
		l.ApprovedAt = &now
	case models.StatusRejected:
		l.Status = models.StatusRejected
		l.ApprovedAt = nil
	default:
		return apperrors.Validation("status", "unknown target status "+to)
	}
	return nil
}

package listings

import (
	"fmt"
	"strings"

	"soko/apperrors"
	"soko/config"
	"soko/details"
	"soko/images"
	"soko/models"
	"soko/utils"
)

// ValidateInput checks every field-level invariant on a create/update
// payload and validates the category details. All problems are collected
// into one ValidationError; the returned map is the normalized details
// payload to persist. Nothing is written when an error comes back.
func ValidateInput(input models.ListingInput, limits config.Limits) (map[string]any, error) {
	ve := &apperrors.ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		ve.Add("title", "title is required")
	}

	descLen := len(strings.TrimSpace(input.Description))
	if descLen < limits.DescMinLen || descLen > limits.DescMaxLen {
		ve.Add("description", fmt.Sprintf("description must be between %d and %d characters", limits.DescMinLen, limits.DescMaxLen))
	}

	if input.Price < limits.PriceFloor {
		ve.Add("price", fmt.Sprintf("price must be at least %v", limits.PriceFloor))
	}

	if n := len(input.Images); n < limits.MinImages || n > limits.MaxImages {
		ve.Add("images", fmt.Sprintf("between %d and %d images are required", limits.MinImages, limits.MaxImages))
	} else {
		for i, img := range input.Images {
			if img.PublicID == "" && !images.IsURLShaped(img.URL) {
				ve.Add(fmt.Sprintf("images[%d]", i), "must be a valid image URL or carry an identifier")
			}
		}
	}

	if strings.TrimSpace(input.Location.Address) == "" {
		ve.Add("location.address", "address is required")
	}
	if strings.TrimSpace(input.Location.Area) == "" {
		ve.Add("location.area", "area is required")
	}

	phone := strings.TrimSpace(input.Contact.Phone)
	whatsapp := strings.TrimSpace(input.Contact.WhatsApp)
	if phone == "" && whatsapp == "" {
		ve.Add("contactInformation", "a phone or whatsapp number is required")
	}
	if phone != "" && !utils.IsPhoneLike(phone) {
		ve.Add("contactInformation.phone", "must be a valid phone number")
	}
	if whatsapp != "" && !utils.IsPhoneLike(whatsapp) {
		ve.Add("contactInformation.whatsapp", "must be a valid phone number")
	}

	normalized, detailErrs := details.Validate(input.Category, input.Details)
	ve.Fields = append(ve.Fields, detailErrs...)

	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return normalized, nil
}

// CanonicalImages normalizes image references where possible. References
// with no derivable identifier are kept as-is: they remain displayable even
// though the store can never delete them.
func CanonicalImages(refs []models.ImageRef) []models.ImageRef {
	out := make([]models.ImageRef, 0, len(refs))
	for _, ref := range refs {
		if n, ok := images.Normalize(ref); ok {
			out = append(out, n)
		} else {
			out = append(out, ref)
		}
	}
	return out
}

package listings

import (
	"errors"
	"fmt"
	"testing"

	"soko/apperrors"
	"soko/config"
	"soko/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = config.Limits{
	DescMinLen:      10,
	DescMaxLen:      500,
	PriceFloor:      1000,
	PageSizeDefault: 10,
	PageSizeMax:     100,
	MinImages:       1,
	MaxImages:       4,
}

func validShortletInput() models.ListingInput {
	return models.ListingInput{
		Category:    models.CategoryShortlet,
		Title:       "Cosy 2-bed shortlet",
		Description: "A comfortable two bedroom apartment close to the beach.",
		Price:       15000,
		Location: models.Location{
			Address: "12 Admiralty Way",
			Area:    "Lekki",
		},
		Contact: models.ContactInformation{Phone: "+2348012345678"},
		Images: []models.ImageRef{
			{URL: "https://res.cloudinary.com/demo/image/upload/v1700000000/uploads/front.jpg"},
		},
		Details: map[string]any{
			"pricePerNight": 15000.0,
			"maxGuests":     4.0,
			"amenities":     []any{"wifi"},
		},
	}
}

func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	paths := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		paths = append(paths, f.Field)
	}
	return paths
}

func TestValidateInputAcceptsValidListing(t *testing.T) {
	normalized, err := ValidateInput(validShortletInput(), testLimits)
	require.NoError(t, err)
	assert.Equal(t, float64(15000), normalized["pricePerNight"])
}

func TestValidateInputImageCountBounds(t *testing.T) {
	img := models.ImageRef{URL: "https://res.cloudinary.com/demo/image/upload/v1/uploads/a.jpg"}

	for n := 0; n <= 6; n++ {
		t.Run(fmt.Sprintf("count_%d", n), func(t *testing.T) {
			input := validShortletInput()
			input.Images = nil
			for i := 0; i < n; i++ {
				input.Images = append(input.Images, img)
			}

			_, err := ValidateInput(input, testLimits)
			if n >= 1 && n <= 4 {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, fieldPaths(t, err), "images")
			}
		})
	}
}

func TestValidateInputRejectsMalformedImage(t *testing.T) {
	input := validShortletInput()
	input.Images = []models.ImageRef{{URL: "not-a-url"}}

	_, err := ValidateInput(input, testLimits)
	require.Error(t, err)
	assert.Contains(t, fieldPaths(t, err), "images[0]")
}

func TestValidateInputIdentifierBearingImageAccepted(t *testing.T) {
	input := validShortletInput()
	input.Images = []models.ImageRef{{URL: "", PublicID: "uploads/abc"}}

	_, err := ValidateInput(input, testLimits)
	assert.NoError(t, err)
}

func TestValidateInputPriceFloor(t *testing.T) {
	input := validShortletInput()
	input.Price = 999

	_, err := ValidateInput(input, testLimits)
	require.Error(t, err)
	assert.Contains(t, fieldPaths(t, err), "price")
}

func TestValidateInputDescriptionBounds(t *testing.T) {
	input := validShortletInput()
	input.Description = "too short"

	_, err := ValidateInput(input, testLimits)
	require.Error(t, err)
	assert.Contains(t, fieldPaths(t, err), "description")
}

func TestValidateInputContactRequired(t *testing.T) {
	input := validShortletInput()
	input.Contact = models.ContactInformation{}

	_, err := ValidateInput(input, testLimits)
	require.Error(t, err)
	assert.Contains(t, fieldPaths(t, err), "contactInformation")

	input.Contact = models.ContactInformation{WhatsApp: "+2348098765432"}
	_, err = ValidateInput(input, testLimits)
	assert.NoError(t, err)

	input.Contact = models.ContactInformation{Phone: "hello world"}
	_, err = ValidateInput(input, testLimits)
	require.Error(t, err)
	assert.Contains(t, fieldPaths(t, err), "contactInformation.phone")
}

func TestValidateInputLocationRequired(t *testing.T) {
	input := validShortletInput()
	input.Location = models.Location{}

	_, err := ValidateInput(input, testLimits)
	require.Error(t, err)
	paths := fieldPaths(t, err)
	assert.Contains(t, paths, "location.address")
	assert.Contains(t, paths, "location.area")
}

func TestValidateInputMissingDetailField(t *testing.T) {
	input := validShortletInput()
	delete(input.Details, "pricePerNight")

	_, err := ValidateInput(input, testLimits)
	require.Error(t, err)
	assert.Equal(t, []string{"details.pricePerNight"}, fieldPaths(t, err))
}

func TestValidateInputCollectsAcrossConcerns(t *testing.T) {
	input := validShortletInput()
	input.Title = ""
	input.Price = 5
	delete(input.Details, "amenities")

	_, err := ValidateInput(input, testLimits)
	require.Error(t, err)
	paths := fieldPaths(t, err)
	assert.Contains(t, paths, "title")
	assert.Contains(t, paths, "price")
	assert.Contains(t, paths, "details.amenities")
}

func TestCanonicalImagesKeepsUnparseable(t *testing.T) {
	refs := []models.ImageRef{
		{URL: "https://res.cloudinary.com/demo/image/upload/v1/uploads/a.jpg"},
		{URL: "https://example.com/plain.jpg"},
	}

	out := CanonicalImages(refs)
	require.Len(t, out, 2)
	assert.Equal(t, "uploads/a", out[0].PublicID)
	assert.Empty(t, out[1].PublicID)
	assert.Equal(t, "https://example.com/plain.jpg", out[1].URL)
}
